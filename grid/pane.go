// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/pane.go
// Summary: Tab strip controller for a single pane.

package grid

import (
	"log"
	"path/filepath"
)

// PaneController owns one pane's ordered tab strip. It always holds at
// least one tab and keeps its active index in range. It is driven from
// the UI loop and is not safe for concurrent use.
type PaneController struct {
	tabs         []*TabState
	active       int
	historyLimit int
	dispatcher   *EventDispatcher
}

// NewPaneController returns a controller with a single tab rooted at path.
func NewPaneController(path string, dispatcher *EventDispatcher) *PaneController {
	pc := &PaneController{
		historyLimit: DefaultHistoryLimit,
		dispatcher:   dispatcher,
	}
	pc.tabs = []*TabState{pc.newTab(path)}
	return pc
}

func (pc *PaneController) newTab(path string) *TabState {
	t := NewTabState(path)
	t.historyLimit = pc.historyLimit
	return t
}

// SetHistoryLimit bounds the back stack of tabs opened from now on.
func (pc *PaneController) SetHistoryLimit(limit int) {
	if limit > 0 {
		pc.historyLimit = limit
	}
}

// TabCount returns the number of tabs.
func (pc *PaneController) TabCount() int { return len(pc.tabs) }

// Tab returns the tab at index, or nil when out of range.
func (pc *PaneController) Tab(index int) *TabState {
	if index < 0 || index >= len(pc.tabs) {
		return nil
	}
	return pc.tabs[index]
}

// ActiveIndex returns the active tab's index.
func (pc *PaneController) ActiveIndex() int { return pc.active }

// ActiveTab returns the active tab.
func (pc *PaneController) ActiveTab() *TabState { return pc.tabs[pc.active] }

// OpenTab appends a tab rooted at path, activates it, and returns its index.
func (pc *PaneController) OpenTab(path string) int {
	pc.tabs = append(pc.tabs, pc.newTab(path))
	pc.active = len(pc.tabs) - 1
	pc.notify(EventTabsChanged)
	return pc.active
}

// CloseTab removes the tab at index. The last remaining tab and pinned
// tabs cannot be closed.
func (pc *PaneController) CloseTab(index int) error {
	if index < 0 || index >= len(pc.tabs) {
		return ErrInvalidIndex
	}
	if len(pc.tabs) == 1 {
		return ErrLastTab
	}
	if pc.tabs[index].Pinned() {
		return ErrPinnedTab
	}
	pc.tabs = append(pc.tabs[:index], pc.tabs[index+1:]...)
	if pc.active >= len(pc.tabs) {
		pc.active = len(pc.tabs) - 1
	} else if index < pc.active {
		pc.active--
	}
	pc.notify(EventTabsChanged)
	return nil
}

// SetActiveTab switches the active tab.
func (pc *PaneController) SetActiveTab(index int) error {
	if index < 0 || index >= len(pc.tabs) {
		return ErrInvalidIndex
	}
	if index != pc.active {
		pc.active = index
		pc.notify(EventTabsChanged)
	}
	return nil
}

// MoveTab reorders the tab strip, keeping the moved tab active.
func (pc *PaneController) MoveTab(from, to int) error {
	if from < 0 || from >= len(pc.tabs) || to < 0 || to >= len(pc.tabs) {
		return ErrInvalidIndex
	}
	if from == to {
		return nil
	}
	moved := pc.tabs[from]
	pc.tabs = append(pc.tabs[:from], pc.tabs[from+1:]...)
	rest := append(pc.tabs[:to:to], moved)
	pc.tabs = append(rest, pc.tabs[to:]...)
	pc.active = to
	pc.notify(EventTabsChanged)
	return nil
}

// ReplaceTabs swaps in a whole new tab strip and activates its first
// tab. An empty strip is rejected so the pane is never left bare.
func (pc *PaneController) ReplaceTabs(tabs []*TabState) error {
	if len(tabs) == 0 {
		return ErrLastTab
	}
	pc.tabs = tabs
	pc.active = 0
	pc.notify(EventTabsChanged)
	return nil
}

// Navigate commits a new path on the active tab. A pinned active tab is
// left in place and the path opens in a new tab instead.
func (pc *PaneController) Navigate(path string) {
	tab := pc.ActiveTab()
	if tab.Pinned() && filepath.Clean(path) != tab.Path() {
		pc.OpenTab(path)
		pc.notify(EventNavigated)
		return
	}
	if tab.Navigate(path) {
		pc.notify(EventNavigated)
	}
}

// GoBack steps the active tab back through its history.
func (pc *PaneController) GoBack() (string, bool) {
	path, ok := pc.ActiveTab().GoBack()
	if ok {
		pc.notify(EventNavigated)
	}
	return path, ok
}

// GoForward steps the active tab forward through its history.
func (pc *PaneController) GoForward() (string, bool) {
	path, ok := pc.ActiveTab().GoForward()
	if ok {
		pc.notify(EventNavigated)
	}
	return path, ok
}

// GoUp navigates the active tab to its parent directory.
func (pc *PaneController) GoUp() bool {
	if pc.ActiveTab().GoUp() {
		pc.notify(EventNavigated)
		return true
	}
	return false
}

// SetViewMode switches the active tab's presentation.
func (pc *PaneController) SetViewMode(mode ViewMode) {
	pc.ActiveTab().SetViewMode(mode)
	pc.notify(EventViewChanged)
}

// ToggleTabPin flips the pinned flag of the tab at index.
func (pc *PaneController) ToggleTabPin(index int) error {
	tab := pc.Tab(index)
	if tab == nil {
		return ErrInvalidIndex
	}
	tab.SetPinned(!tab.Pinned())
	pc.notify(EventTabsChanged)
	return nil
}

// Clone returns an independent controller with copies of every tab.
func (pc *PaneController) Clone() *PaneController {
	out := &PaneController{
		active:       pc.active,
		historyLimit: pc.historyLimit,
		dispatcher:   pc.dispatcher,
	}
	out.tabs = make([]*TabState, len(pc.tabs))
	for i, t := range pc.tabs {
		out.tabs[i] = t.Clone()
	}
	return out
}

// ExportState captures the tab strip as a persistable record.
func (pc *PaneController) ExportState() PaneRecord {
	rec := PaneRecord{
		Tabs:      make([]TabRecord, len(pc.tabs)),
		ActiveTab: pc.active,
	}
	for i, t := range pc.tabs {
		rec.Tabs[i] = captureTab(t)
	}
	return rec
}

// ImportState replaces the tab strip from a record. Tabs whose directory
// no longer exists are dropped with a log line; when nothing survives the
// pane falls back to a single tab at fallbackPath. A record with no tabs
// at all is a schema mismatch and leaves state untouched.
func (pc *PaneController) ImportState(rec PaneRecord, fallbackPath string) error {
	if len(rec.Tabs) == 0 {
		return ErrSchemaMismatch
	}

	tabs := make([]*TabState, 0, len(rec.Tabs))
	dropped := 0
	for _, tr := range rec.Tabs {
		if tr.Path == "" || !dirExists(tr.Path) {
			log.Printf("Pane: Dropping saved tab, directory gone: %q", tr.Path)
			dropped++
			continue
		}
		tabs = append(tabs, applyTabRecord(tr, pc.historyLimit))
	}
	if len(tabs) == 0 {
		tabs = append(tabs, pc.newTab(fallbackPath))
	}

	active := rec.ActiveTab
	if dropped > 0 || active < 0 || active >= len(tabs) {
		active = clampIndex(active, len(tabs))
	}

	pc.tabs = tabs
	pc.active = active
	pc.notify(EventTabsChanged)
	return nil
}

func (pc *PaneController) notify(t EventType) {
	if pc.dispatcher != nil {
		pc.dispatcher.Broadcast(Event{Type: t, Payload: pc})
	}
}
