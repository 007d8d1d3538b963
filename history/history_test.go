// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestLog(t *testing.T) *SQLiteVisitLog {
	t.Helper()
	v, err := New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { v.Close() })
	return v
}

func TestRecordAndRank(t *testing.T) {
	v := openTestLog(t)
	now := time.Now()

	for i := 0; i < 5; i++ {
		if err := v.RecordVisit("/projects", now.Add(-time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}
	if err := v.RecordVisit("/rarely", now.Add(-30*24*time.Hour)); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}

	locs, err := v.TopLocations(10)
	if err != nil {
		t.Fatalf("TopLocations: %v", err)
	}
	if len(locs) != 2 {
		t.Fatalf("locations = %d, want 2", len(locs))
	}
	if locs[0].Path != "/projects" {
		t.Fatalf("top location = %q, want /projects", locs[0].Path)
	}
	if locs[0].Visits != 5 {
		t.Fatalf("visits = %d, want 5", locs[0].Visits)
	}
	if locs[0].Score <= locs[1].Score {
		t.Fatalf("frecency score not ordered: %v vs %v", locs[0].Score, locs[1].Score)
	}
}

func TestFrequentButStaleRanksBelowFresh(t *testing.T) {
	v := openTestLog(t)
	now := time.Now()

	stale := now.Add(-60 * 24 * time.Hour)
	for i := 0; i < 10; i++ {
		if err := v.RecordVisit("/old-haunt", stale); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		if err := v.RecordVisit("/fresh", now); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}

	locs, err := v.TopLocations(2)
	if err != nil {
		t.Fatalf("TopLocations: %v", err)
	}
	if locs[0].Path != "/fresh" {
		t.Fatalf("top location = %q, want /fresh", locs[0].Path)
	}
}

func TestTopLocationsLimit(t *testing.T) {
	v := openTestLog(t)
	now := time.Now()
	for _, p := range []string{"/a", "/b", "/c", "/d"} {
		if err := v.RecordVisit(p, now); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}
	locs, err := v.TopLocations(2)
	if err != nil {
		t.Fatalf("TopLocations: %v", err)
	}
	if len(locs) != 2 {
		t.Fatalf("locations = %d, want 2", len(locs))
	}
}

func TestPruneBoundsTable(t *testing.T) {
	v := openTestLog(t)
	now := time.Now()
	for i := 0; i < 20; i++ {
		if err := v.RecordVisit("/spam", now.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}
	if err := v.RecordVisit("/keeper", now.Add(time.Hour)); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}

	if err := v.Prune(5); err != nil {
		t.Fatalf("Prune: %v", err)
	}

	var count int
	if err := v.db.QueryRow(`SELECT COUNT(*) FROM visits`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Fatalf("row count = %d, want 5", count)
	}

	locs, err := v.TopLocations(10)
	if err != nil {
		t.Fatalf("TopLocations: %v", err)
	}
	found := false
	for _, l := range locs {
		if l.Path == "/keeper" {
			found = true
		}
	}
	if !found {
		t.Fatalf("newest visit pruned away")
	}
}
