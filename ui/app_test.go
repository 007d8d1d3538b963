// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/app_test.go
// Summary: Tests for pane refresh and watcher bookkeeping.

package ui

import (
	"testing"

	"github.com/filegrid/filegrid/grid"
)

func testApp(t *testing.T) *App {
	t.Helper()
	watcher, err := grid.NewDirWatcher()
	if err != nil {
		t.Fatalf("NewDirWatcher: %v", err)
	}
	t.Cleanup(func() { watcher.Close() })
	lister := grid.NewLister()
	lister.Start()
	t.Cleanup(lister.Stop)
	return &App{
		lister:  lister,
		watcher: watcher,
		views:   make(map[*grid.PaneController]*paneView),
		quit:    make(chan struct{}),
	}
}

func TestRefreshPaneRetargetsWatch(t *testing.T) {
	app := testApp(t)
	first := t.TempDir()
	second := t.TempDir()

	pane := grid.NewPaneController(first, nil)
	app.refreshPane(pane)
	if !app.watcher.Watching(first) {
		t.Fatalf("pane directory %s should be watched", first)
	}

	// Re-listing the same directory must not stack references.
	app.refreshPane(pane)

	pane.Navigate(second)
	app.refreshPane(pane)
	if app.watcher.Watching(first) {
		t.Fatalf("old directory %s still watched after navigation", first)
	}
	if !app.watcher.Watching(second) {
		t.Fatalf("new directory %s should be watched", second)
	}
}

func TestRefreshAllPanesReleasesPrunedWatches(t *testing.T) {
	app := testApp(t)
	home := t.TempDir()
	app.groups = grid.NewGroupController(home, nil)
	app.refreshAllPanes()
	if !app.watcher.Watching(home) {
		t.Fatalf("visible pane directory %s should be watched", home)
	}

	staleDir := t.TempDir()
	stale := grid.NewPaneController(staleDir, nil)
	app.views[stale] = &paneView{watched: staleDir}
	if err := app.watcher.Watch(staleDir); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	app.refreshAllPanes()
	if _, ok := app.views[stale]; ok {
		t.Fatalf("stale view should be pruned")
	}
	if app.watcher.Watching(staleDir) {
		t.Fatalf("pruned view's directory %s still watched", staleDir)
	}
	if !app.watcher.Watching(home) {
		t.Fatalf("visible pane directory %s must stay watched", home)
	}
}
