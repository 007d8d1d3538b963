// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/actions.go
// Summary: File operations triggered from the key map.

package ui

import (
	"path/filepath"

	"github.com/filegrid/filegrid/fileops"
	"github.com/filegrid/filegrid/grid"
)

// selectedEntry returns the entry under the cursor, if any.
func (a *App) selectedEntry(view *paneView) (grid.Entry, bool) {
	entries := view.slot.Entries()
	if view.cursor < 0 || view.cursor >= len(entries) {
		return grid.Entry{}, false
	}
	return entries[view.cursor], true
}

// trashSelection moves the entry under the cursor to the trash.
func (a *App) trashSelection(pane *grid.PaneController, view *paneView) {
	entry, ok := a.selectedEntry(view)
	if !ok {
		return
	}
	if _, err := fileops.Trash(entry.Path); err != nil {
		a.showNotice(err.Error())
		return
	}
	a.showNotice("trashed " + entry.Name)
	a.refreshPane(pane)
}

// duplicateSelection clones the entry next to itself.
func (a *App) duplicateSelection(pane *grid.PaneController, view *paneView) {
	entry, ok := a.selectedEntry(view)
	if !ok {
		return
	}
	copied, err := fileops.Duplicate(entry.Path)
	if err != nil {
		a.showNotice(err.Error())
		return
	}
	a.showNotice("created " + filepath.Base(copied))
	a.refreshPane(pane)
}

func (a *App) createFolder(pane *grid.PaneController) {
	created, err := fileops.CreateFolder(pane.ActiveTab().Path(), "")
	if err != nil {
		a.showNotice(err.Error())
		return
	}
	a.showNotice("created " + filepath.Base(created))
	a.refreshPane(pane)
}

func (a *App) createFile(pane *grid.PaneController) {
	created, err := fileops.CreateFile(pane.ActiveTab().Path(), "New File.txt")
	if err != nil {
		a.showNotice(err.Error())
		return
	}
	a.showNotice("created " + filepath.Base(created))
	a.refreshPane(pane)
}

// transferSelection copies or moves the selection into the next pane's
// directory. With a single pane it is a no-op.
func (a *App) transferSelection(ws *grid.Workspace, pane *grid.PaneController, view *paneView, move bool) {
	if ws.PaneCount() < 2 {
		a.showNotice("split the view to transfer between panes")
		return
	}
	entry, ok := a.selectedEntry(view)
	if !ok {
		return
	}
	target := ws.Pane((ws.ActivePaneIndex() + 1) % ws.PaneCount())
	dstDir := target.ActiveTab().Path()

	var err error
	if move {
		_, err = fileops.Move(entry.Path, dstDir)
	} else {
		_, err = fileops.Copy(entry.Path, dstDir)
	}
	if err != nil {
		a.showNotice(err.Error())
		return
	}
	verb := "copied"
	if move {
		verb = "moved"
		a.refreshPane(pane)
	}
	a.showNotice(verb + " " + entry.Name)
	a.refreshPane(target)
}
