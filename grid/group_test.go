// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"errors"
	"testing"
)

func TestCloseGroupZeroProtected(t *testing.T) {
	gc := NewGroupController("/home/user", nil)
	if err := gc.CloseGroup(0); !errors.Is(err, ErrProtectedGroup) {
		t.Fatalf("CloseGroup(0) = %v, want ErrProtectedGroup", err)
	}
	if gc.GroupCount() != 1 {
		t.Fatalf("group count = %d, want 1", gc.GroupCount())
	}
}

func TestCloseGroupOutOfRange(t *testing.T) {
	gc := NewGroupController("/home/user", nil)
	if err := gc.CloseGroup(3); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("CloseGroup(3) = %v, want ErrInvalidIndex", err)
	}
}

func TestCreateGroupGeneratesUniqueNames(t *testing.T) {
	gc := NewGroupController("/home/user", nil)
	if _, err := gc.CreateGroup(""); err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if _, err := gc.CreateGroup(""); err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if gc.Group(1).Title() != "Group 1" || gc.Group(2).Title() != "Group 2" {
		t.Fatalf("generated titles = %q, %q", gc.Group(1).Title(), gc.Group(2).Title())
	}
}

func TestCreateGroupDuplicateNameRejected(t *testing.T) {
	gc := NewGroupController("/home/user", nil)
	if _, err := gc.CreateGroup("Work"); err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if _, err := gc.CreateGroup("Work"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("duplicate CreateGroup = %v, want ErrDuplicateName", err)
	}
}

func TestRenameGroupRules(t *testing.T) {
	gc := NewGroupController("/home/user", nil)
	gc.CreateGroup("Work")
	gc.CreateGroup("Media")

	if err := gc.RenameGroup(0, "Base"); !errors.Is(err, ErrProtectedGroup) {
		t.Fatalf("RenameGroup(0) = %v, want ErrProtectedGroup", err)
	}
	if err := gc.RenameGroup(2, "Work"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("rename to existing title = %v, want ErrDuplicateName", err)
	}
	if err := gc.RenameGroup(2, "Movies"); err != nil {
		t.Fatalf("RenameGroup: %v", err)
	}
	if gc.Group(2).Title() != "Movies" {
		t.Fatalf("title = %q, want Movies", gc.Group(2).Title())
	}
	if err := gc.RenameGroup(9, "X"); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("RenameGroup(9) = %v, want ErrInvalidIndex", err)
	}
}

func TestHiddenGroupKeepsState(t *testing.T) {
	gc := NewGroupController("/home/user", nil)
	idx, err := gc.CreateGroup("Work")
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	gc.Group(idx).Workspace().ActivePane().Navigate("/tmp")

	if err := gc.SetGroupVisible(idx, false); err != nil {
		t.Fatalf("SetGroupVisible: %v", err)
	}
	if gc.ActiveIndex() != 0 {
		t.Fatalf("hiding the active group should move focus, active = %d", gc.ActiveIndex())
	}

	if err := gc.SetGroupVisible(idx, true); err != nil {
		t.Fatalf("SetGroupVisible: %v", err)
	}
	if got := gc.Group(idx).Workspace().ActivePane().ActiveTab().Path(); got != "/tmp" {
		t.Fatalf("hidden group lost state, path = %q", got)
	}
}

func TestLastVisibleGroupCannotHide(t *testing.T) {
	gc := NewGroupController("/home/user", nil)
	if err := gc.SetGroupVisible(0, false); !errors.Is(err, ErrProtectedGroup) {
		t.Fatalf("hiding the only visible group = %v, want ErrProtectedGroup", err)
	}
}

func TestClosingLastVisibleGroupResetsHome(t *testing.T) {
	gc := NewGroupController("/home/user", nil)
	idx, err := gc.CreateGroup("Work")
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if err := gc.SetGroupVisible(0, false); err != nil {
		t.Fatalf("SetGroupVisible: %v", err)
	}
	gc.Group(0).Workspace().ActivePane().Navigate("/var")

	if err := gc.CloseGroup(idx); err != nil {
		t.Fatalf("CloseGroup: %v", err)
	}
	home := gc.Group(0)
	if !home.Visible() {
		t.Fatalf("group 0 should be shown again")
	}
	if got := home.Workspace().ActivePane().ActiveTab().Path(); got != "/home/user" {
		t.Fatalf("group 0 should reset to home, got %q", got)
	}
	if gc.ActiveIndex() != 0 {
		t.Fatalf("active group = %d, want 0", gc.ActiveIndex())
	}
}

func TestClosingSoleVisibleGroupWithHiddenSiblingsResetsHome(t *testing.T) {
	gc := NewGroupController("/home/user", nil)
	work, err := gc.CreateGroup("Work")
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if _, err := gc.CreateGroup("Play"); err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if err := gc.SetGroupVisible(0, false); err != nil {
		t.Fatalf("SetGroupVisible(0): %v", err)
	}
	if err := gc.SetGroupVisible(2, false); err != nil {
		t.Fatalf("SetGroupVisible(2): %v", err)
	}

	if err := gc.CloseGroup(work); err != nil {
		t.Fatalf("CloseGroup: %v", err)
	}
	home := gc.Group(0)
	if !home.Visible() {
		t.Fatalf("group 0 should be shown when no visible group remains")
	}
	if got := home.Workspace().ActivePane().ActiveTab().Path(); got != "/home/user" {
		t.Fatalf("group 0 should reset to home, got %q", got)
	}
	if gc.ActiveIndex() != 0 {
		t.Fatalf("active group = %d, want 0", gc.ActiveIndex())
	}
	if !gc.ActiveGroup().Visible() {
		t.Fatalf("active group must be visible")
	}
	if hidden := gc.Group(1); hidden.Visible() || hidden.Title() != "Play" {
		t.Fatalf("hidden sibling must stay hidden, got %q visible=%v", hidden.Title(), hidden.Visible())
	}
}

func TestMoveTabsOut(t *testing.T) {
	gc := NewGroupController("/home/user", nil)
	gc.ActiveWorkspace().ActivePane().OpenTab("/tmp")

	idx, err := gc.MoveTabsOut("Work")
	if err != nil {
		t.Fatalf("MoveTabsOut: %v", err)
	}
	if gc.GroupCount() != 2 || idx != 1 {
		t.Fatalf("group count = %d, new index = %d", gc.GroupCount(), idx)
	}
	if got := gc.Group(1).Workspace().ActivePane().TabCount(); got != 2 {
		t.Fatalf("moved workspace tab count = %d, want 2", got)
	}
	if got := gc.Group(0).Workspace().ActivePane().TabCount(); got != 1 {
		t.Fatalf("group 0 should restart with one tab, got %d", got)
	}

	if _, err := gc.MoveTabsOut("Again"); err == nil {
		t.Fatalf("MoveTabsOut with multiple groups should fail")
	}
}

func TestSessionExportImportRoundTrip(t *testing.T) {
	home := t.TempDir()
	tmp := t.TempDir()

	gc := NewGroupController(home, nil)
	idx, err := gc.CreateGroup("Work")
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	ws := gc.Group(idx).Workspace()
	ws.SetSplitLayout(SplitTwo)
	ws.Pane(1).Navigate(tmp)
	if err := ws.SetActivePane(1); err != nil {
		t.Fatalf("SetActivePane: %v", err)
	}

	rec := gc.ExportState()

	restored := NewGroupController(home, nil)
	if err := restored.ImportState(rec); err != nil {
		t.Fatalf("ImportState: %v", err)
	}
	if restored.GroupCount() != 2 {
		t.Fatalf("group count = %d, want 2", restored.GroupCount())
	}
	if restored.ActiveIndex() != idx {
		t.Fatalf("active group = %d, want %d", restored.ActiveIndex(), idx)
	}
	if restored.Group(0).Title() != HomeGroupTitle {
		t.Fatalf("group 0 title = %q, want %q", restored.Group(0).Title(), HomeGroupTitle)
	}
	rws := restored.Group(idx).Workspace()
	if rws.SplitLayout() != SplitTwo {
		t.Fatalf("layout = %q, want 2-split", rws.SplitLayout())
	}
	if got := rws.Pane(1).ActiveTab().Path(); got != tmp {
		t.Fatalf("pane 1 = %q, want %q", got, tmp)
	}

	// Closing the restored "Work" group leaves a lone visible group 0.
	if err := restored.CloseGroup(idx); err != nil {
		t.Fatalf("CloseGroup: %v", err)
	}
	if restored.GroupCount() != 1 || restored.ActiveIndex() != 0 {
		t.Fatalf("after close: count = %d, active = %d", restored.GroupCount(), restored.ActiveIndex())
	}
}

func TestImportUnknownVersionSchemaMismatch(t *testing.T) {
	home := t.TempDir()
	gc := NewGroupController(home, nil)
	gc.CreateGroup("Work")

	rec := gc.ExportState()
	rec.Version = 99

	if err := gc.ImportState(rec); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("ImportState(v99) = %v, want ErrSchemaMismatch", err)
	}
	if gc.GroupCount() != 2 {
		t.Fatalf("failed import must not touch groups, count = %d", gc.GroupCount())
	}
}
