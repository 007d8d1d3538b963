// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/snapshot.go
// Summary: Exported state records and import sanitizing.

package grid

import "os"

// SessionVersion is the schema version of exported state documents.
const SessionVersion = 1

// TabRecord is the persisted form of a TabState.
type TabRecord struct {
	Title    string   `json:"title,omitempty"`
	Path     string   `json:"path"`
	Pinned   bool     `json:"pinned,omitempty"`
	ViewMode string   `json:"view_mode"`
	IconZoom int      `json:"icon_zoom"`
	Scroll   int      `json:"scroll,omitempty"`
	Selected []string `json:"selected,omitempty"`
	Back     []string `json:"back,omitempty"`
	Forward  []string `json:"forward,omitempty"`
}

// PaneRecord is the persisted form of a PaneController.
type PaneRecord struct {
	Tabs      []TabRecord `json:"tabs"`
	ActiveTab int         `json:"active_tab"`
}

// WorkspaceRecord is the persisted form of a Workspace.
type WorkspaceRecord struct {
	SplitLayout string       `json:"split_mode"`
	Panes       []PaneRecord `json:"panes"`
	ActivePane  int          `json:"active_pane"`
}

// GroupRecord is the persisted form of one group.
type GroupRecord struct {
	Title     string          `json:"title"`
	Visible   bool            `json:"visible"`
	Workspace WorkspaceRecord `json:"workspace"`
}

// SessionRecord is the persisted form of the whole group controller.
type SessionRecord struct {
	Version     int           `json:"version"`
	ActiveGroup int           `json:"active_group_index"`
	Groups      []GroupRecord `json:"groups"`
}

func captureTab(t *TabState) TabRecord {
	return TabRecord{
		Title:    t.title,
		Path:     t.path,
		Pinned:   t.pinned,
		ViewMode: string(t.viewMode),
		IconZoom: t.iconZoom,
		Scroll:   t.scroll,
		Selected: append([]string(nil), t.selected...),
		Back:     append([]string(nil), t.back...),
		Forward:  append([]string(nil), t.forward...),
	}
}

// applyTabRecord rebuilds a tab from its record. Unknown view modes fall
// back to details and zoom is clamped; the caller decides whether the
// path is still usable.
func applyTabRecord(rec TabRecord, historyLimit int) *TabState {
	mode, _ := ParseViewMode(rec.ViewMode)
	t := &TabState{
		title:        rec.Title,
		path:         rec.Path,
		pinned:       rec.Pinned,
		viewMode:     mode,
		iconZoom:     ClampIconZoom(rec.IconZoom),
		scroll:       rec.Scroll,
		historyLimit: historyLimit,
	}
	if t.scroll < 0 {
		t.scroll = 0
	}
	t.selected = append([]string(nil), rec.Selected...)
	t.back = append([]string(nil), rec.Back...)
	t.forward = append([]string(nil), rec.Forward...)
	return t
}

// dirExists reports whether path currently resolves to a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// clampIndex bounds an index to [0, count); negative or oversized
// indices collapse to 0.
func clampIndex(index, count int) int {
	if index < 0 || index >= count {
		return 0
	}
	return index
}
