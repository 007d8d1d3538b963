// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/workspace.go
// Summary: Split-pane workspace holding up to four pane controllers.

package grid

import "log"

// Workspace arranges pane controllers in a split layout. Slots beyond
// the visible count keep their controller so a shrink followed by a
// re-expand restores the previous pane state.
type Workspace struct {
	layout     SplitLayout
	slots      [MaxPanes]*PaneController
	active     int
	dispatcher *EventDispatcher
}

// NewWorkspace returns a single-pane workspace rooted at path.
func NewWorkspace(path string, dispatcher *EventDispatcher) *Workspace {
	ws := &Workspace{
		layout:     SplitSingle,
		dispatcher: dispatcher,
	}
	ws.slots[0] = NewPaneController(path, dispatcher)
	return ws
}

// SplitLayout returns the current layout.
func (ws *Workspace) SplitLayout() SplitLayout { return ws.layout }

// PaneCount returns the number of visible panes.
func (ws *Workspace) PaneCount() int { return ws.layout.PaneCount() }

// Pane returns the visible pane controller at index, or nil out of range.
func (ws *Workspace) Pane(index int) *PaneController {
	if index < 0 || index >= ws.layout.PaneCount() {
		return nil
	}
	return ws.slots[index]
}

// Panes returns the visible pane controllers in slot order.
func (ws *Workspace) Panes() []*PaneController {
	out := make([]*PaneController, ws.layout.PaneCount())
	copy(out, ws.slots[:ws.layout.PaneCount()])
	return out
}

// ActivePaneIndex returns the index of the focused pane.
func (ws *Workspace) ActivePaneIndex() int { return ws.active }

// ActivePane returns the focused pane controller.
func (ws *Workspace) ActivePane() *PaneController { return ws.slots[ws.active] }

// SetActivePane moves focus to the pane at index.
func (ws *Workspace) SetActivePane(index int) error {
	if index < 0 || index >= ws.layout.PaneCount() {
		return ErrInvalidIndex
	}
	if index != ws.active {
		ws.active = index
		ws.notify(EventLayoutChanged)
	}
	return nil
}

// SetSplitLayout resizes the visible pane set. Growing reuses retained
// slot state where present and clones pane 0 into slots that never
// existed; shrinking keeps the leading slots visible and retains the
// rest. Focus is clamped into the new visible range.
func (ws *Workspace) SetSplitLayout(layout SplitLayout) {
	if parsed, ok := ParseSplitLayout(string(layout)); ok {
		layout = parsed
	} else {
		layout = SplitSingle
	}
	if layout == ws.layout {
		return
	}

	count := layout.PaneCount()
	for i := 0; i < count; i++ {
		if ws.slots[i] == nil {
			ws.slots[i] = ws.slots[0].Clone()
		}
	}
	ws.layout = layout
	if ws.active >= count {
		ws.active = 0
	}
	log.Printf("Workspace: Split layout now %s (%d panes)", layout, count)
	ws.notify(EventLayoutChanged)
}

// ExportState captures the visible panes as a persistable record.
// Retained hidden slots are deliberately not persisted.
func (ws *Workspace) ExportState() WorkspaceRecord {
	rec := WorkspaceRecord{
		SplitLayout: string(ws.layout),
		ActivePane:  ws.active,
		Panes:       make([]PaneRecord, ws.layout.PaneCount()),
	}
	for i := 0; i < ws.layout.PaneCount(); i++ {
		rec.Panes[i] = ws.slots[i].ExportState()
	}
	return rec
}

// ImportState replaces the workspace from a record, all or nothing. An
// unknown layout name, a record whose pane count does not match its
// layout, or one with no panes is a schema mismatch and leaves the
// workspace untouched.
func (ws *Workspace) ImportState(rec WorkspaceRecord, fallbackPath string) error {
	layout, ok := ParseSplitLayout(rec.SplitLayout)
	if !ok {
		return ErrSchemaMismatch
	}
	if len(rec.Panes) == 0 || len(rec.Panes) < layout.PaneCount() {
		return ErrSchemaMismatch
	}

	var slots [MaxPanes]*PaneController
	for i := 0; i < layout.PaneCount(); i++ {
		pc := NewPaneController(fallbackPath, ws.dispatcher)
		if err := pc.ImportState(rec.Panes[i], fallbackPath); err != nil {
			return err
		}
		slots[i] = pc
	}

	ws.slots = slots
	ws.layout = layout
	ws.active = clampIndex(rec.ActivePane, layout.PaneCount())
	ws.notify(EventLayoutChanged)
	return nil
}

func (ws *Workspace) notify(t EventType) {
	if ws.dispatcher != nil {
		ws.dispatcher.Broadcast(Event{Type: t, Payload: ws})
	}
}
