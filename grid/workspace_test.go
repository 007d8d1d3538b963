// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"errors"
	"testing"
)

func TestSplitFourFromSingleClonesPaneZero(t *testing.T) {
	ws := NewWorkspace("/data", nil)
	ws.SetSplitLayout(SplitFour)

	if ws.PaneCount() != 4 {
		t.Fatalf("pane count = %d, want 4", ws.PaneCount())
	}
	for i := 0; i < 4; i++ {
		if got := ws.Pane(i).ActiveTab().Path(); got != "/data" {
			t.Fatalf("pane %d path = %q, want /data", i, got)
		}
	}
}

func TestShrinkRetainsHiddenPaneState(t *testing.T) {
	ws := NewWorkspace("/data", nil)
	ws.SetSplitLayout(SplitTwo)
	ws.Pane(1).Navigate("/tmp")

	ws.SetSplitLayout(SplitSingle)
	if ws.PaneCount() != 1 {
		t.Fatalf("pane count = %d, want 1", ws.PaneCount())
	}

	ws.SetSplitLayout(SplitTwo)
	if got := ws.Pane(1).ActiveTab().Path(); got != "/tmp" {
		t.Fatalf("re-expanded pane 1 = %q, want retained /tmp", got)
	}
}

func TestShrinkClampsActivePane(t *testing.T) {
	ws := NewWorkspace("/data", nil)
	ws.SetSplitLayout(SplitFour)
	if err := ws.SetActivePane(3); err != nil {
		t.Fatalf("SetActivePane: %v", err)
	}

	ws.SetSplitLayout(SplitTwo)
	if ws.ActivePaneIndex() != 0 {
		t.Fatalf("active pane = %d, want clamped 0", ws.ActivePaneIndex())
	}
}

func TestSetActivePaneOutOfRange(t *testing.T) {
	ws := NewWorkspace("/data", nil)
	if err := ws.SetActivePane(1); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("SetActivePane(1) on single layout = %v, want ErrInvalidIndex", err)
	}
}

func TestWorkspaceExportImportRoundTrip(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()

	ws := NewWorkspace(dirA, nil)
	ws.SetSplitLayout(SplitTwo)
	ws.Pane(1).Navigate(dirB)
	if err := ws.SetActivePane(1); err != nil {
		t.Fatalf("SetActivePane: %v", err)
	}

	rec := ws.ExportState()

	restored := NewWorkspace(dirA, nil)
	if err := restored.ImportState(rec, dirA); err != nil {
		t.Fatalf("ImportState: %v", err)
	}
	if restored.SplitLayout() != SplitTwo {
		t.Fatalf("layout = %q, want 2-split", restored.SplitLayout())
	}
	if restored.ActivePaneIndex() != 1 {
		t.Fatalf("active pane = %d, want 1", restored.ActivePaneIndex())
	}
	if got := restored.Pane(1).ActiveTab().Path(); got != dirB {
		t.Fatalf("pane 1 path = %q, want %q", got, dirB)
	}
	if got := restored.Pane(0).ActiveTab().Path(); got != dirA {
		t.Fatalf("pane 0 path = %q, want %q", got, dirA)
	}
}

func TestWorkspaceImportRejectsUnknownLayout(t *testing.T) {
	dir := t.TempDir()
	ws := NewWorkspace(dir, nil)
	ws.ActivePane().Navigate("/var")

	rec := WorkspaceRecord{
		SplitLayout: "mosaic",
		Panes: []PaneRecord{
			{Tabs: []TabRecord{{Path: dir, ViewMode: "details", IconZoom: 100}}},
		},
	}
	if err := ws.ImportState(rec, dir); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("ImportState = %v, want ErrSchemaMismatch", err)
	}
	if got := ws.ActivePane().ActiveTab().Path(); got != "/var" {
		t.Fatalf("failed import must leave panes untouched, got %q", got)
	}
}

func TestWorkspaceImportRejectsShortPaneList(t *testing.T) {
	dir := t.TempDir()
	ws := NewWorkspace(dir, nil)

	rec := WorkspaceRecord{
		SplitLayout: string(SplitFour),
		Panes: []PaneRecord{
			{Tabs: []TabRecord{{Path: dir, ViewMode: "details", IconZoom: 100}}},
		},
	}
	if err := ws.ImportState(rec, dir); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("ImportState = %v, want ErrSchemaMismatch", err)
	}
	if ws.SplitLayout() != SplitSingle {
		t.Fatalf("failed import must leave layout untouched, got %q", ws.SplitLayout())
	}
}
