// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func collectListing(t *testing.T, l *Lister) Listing {
	t.Helper()
	select {
	case listing := <-l.Results():
		return listing
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for listing")
		return Listing{}
	}
}

func TestListerSortsDirectoriesFirst(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "zeta"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "alpha.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l := NewLister()
	l.Start()
	defer l.Stop()

	token := l.Request(dir, false)
	listing := collectListing(t, l)

	if listing.Token != token {
		t.Fatalf("token mismatch")
	}
	if listing.Err != nil {
		t.Fatalf("listing error: %v", listing.Err)
	}
	if len(listing.Entries) != 2 {
		t.Fatalf("entry count = %d, want 2", len(listing.Entries))
	}
	if !listing.Entries[0].IsDir || listing.Entries[0].Name != "zeta" {
		t.Fatalf("directories must sort first, got %+v", listing.Entries[0])
	}
}

func TestListerHidesDotfilesByDefault(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".secret"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "plain"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l := NewLister()
	l.Start()
	defer l.Stop()

	l.Request(dir, false)
	listing := collectListing(t, l)
	if len(listing.Entries) != 1 || listing.Entries[0].Name != "plain" {
		t.Fatalf("expected dotfiles hidden, got %d entries", len(listing.Entries))
	}

	l.Request(dir, true)
	listing = collectListing(t, l)
	if len(listing.Entries) != 2 {
		t.Fatalf("expected dotfiles shown, got %d entries", len(listing.Entries))
	}
	if !listing.Entries[0].Hidden {
		t.Fatalf("dotfile should be flagged hidden")
	}
}

func TestListingSlotDiscardsStaleResults(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	if err := os.WriteFile(filepath.Join(dirB, "b.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l := NewLister()
	l.Start()
	defer l.Stop()

	var slot ListingSlot
	staleToken := l.Request(dirA, false)
	slot.Expect(staleToken)
	freshToken := l.Request(dirB, false)
	slot.Expect(freshToken)

	first := collectListing(t, l)
	second := collectListing(t, l)

	applied := 0
	for _, listing := range []Listing{first, second} {
		if slot.Apply(listing) {
			applied++
		}
	}
	if applied != 1 {
		t.Fatalf("applied %d listings, want 1 (stale discarded)", applied)
	}
	if slot.Path() != dirB {
		t.Fatalf("slot path = %q, want the fresh request %q", slot.Path(), dirB)
	}
}

func TestListingSlotKeepsEntriesOnError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l := NewLister()
	l.Start()
	defer l.Stop()

	var slot ListingSlot
	token := l.Request(dir, false)
	slot.Expect(token)
	if !slot.Apply(collectListing(t, l)) {
		t.Fatalf("fresh listing should apply")
	}

	missing := filepath.Join(dir, "gone")
	token = l.Request(missing, false)
	slot.Expect(token)
	if !slot.Apply(collectListing(t, l)) {
		t.Fatalf("error listing should still apply as a notice")
	}

	if slot.Notice() == nil {
		t.Fatalf("expected a notice for the failed listing")
	}
	if slot.Path() != dir || len(slot.Entries()) != 1 {
		t.Fatalf("failed listing must keep the last valid entries")
	}
}
