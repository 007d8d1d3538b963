// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDirWatcherReportsChangedDirectory(t *testing.T) {
	dir := t.TempDir()

	dw, err := NewDirWatcher()
	if err != nil {
		t.Fatalf("NewDirWatcher: %v", err)
	}
	defer dw.Close()

	if err := dw.Watch(dir); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case changed := <-dw.Changed():
		if changed != dir {
			t.Fatalf("changed dir = %q, want %q", changed, dir)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for change notification")
	}
}

func TestDirWatcherRefCounting(t *testing.T) {
	dir := t.TempDir()

	dw, err := NewDirWatcher()
	if err != nil {
		t.Fatalf("NewDirWatcher: %v", err)
	}
	defer dw.Close()

	if err := dw.Watch(dir); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := dw.Watch(dir); err != nil {
		t.Fatalf("Watch again: %v", err)
	}

	dw.Unwatch(dir)
	// Still referenced by the second watcher; changes must flow.
	if err := os.WriteFile(filepath.Join(dir, "still.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case <-dw.Changed():
	case <-time.After(5 * time.Second):
		t.Fatalf("watch dropped while still referenced")
	}

	dw.Unwatch(dir)
	dw.Unwatch(dir) // extra release is a no-op
}
