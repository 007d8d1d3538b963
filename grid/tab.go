// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/tab.go
// Summary: Per-tab navigation state: path, history stacks, view settings.

package grid

import "path/filepath"

// DefaultHistoryLimit bounds each tab's back stack.
const DefaultHistoryLimit = 100

// TabState holds one tab's current path, navigation history, and view
// settings. It is owned by a PaneController and is not safe for
// concurrent use.
type TabState struct {
	title    string
	path     string
	pinned   bool
	viewMode ViewMode
	iconZoom int
	scroll   int
	selected []string

	back         []string
	forward      []string
	historyLimit int
}

// NewTabState returns a tab rooted at path with empty history.
func NewTabState(path string) *TabState {
	return &TabState{
		path:         filepath.Clean(path),
		viewMode:     ViewDetails,
		iconZoom:     DefaultIconZoom,
		historyLimit: DefaultHistoryLimit,
	}
}

// Path returns the tab's current directory.
func (t *TabState) Path() string { return t.path }

// Title returns the tab's label, derived from the path when unset.
func (t *TabState) Title() string {
	if t.title != "" {
		return t.title
	}
	base := filepath.Base(t.path)
	if base == string(filepath.Separator) || base == "." {
		return t.path
	}
	return base
}

// SetTitle overrides the derived tab label. An empty title restores derivation.
func (t *TabState) SetTitle(title string) { t.title = title }

// Pinned reports whether the tab is pinned.
func (t *TabState) Pinned() bool { return t.pinned }

// SetPinned marks or unmarks the tab as pinned.
func (t *TabState) SetPinned(pinned bool) { t.pinned = pinned }

// ViewMode returns the tab's current view mode.
func (t *TabState) ViewMode() ViewMode { return t.viewMode }

// SetViewMode switches the directory presentation. It never fails;
// state is purely per-tab.
func (t *TabState) SetViewMode(mode ViewMode) {
	if parsed, ok := ParseViewMode(string(mode)); ok {
		t.viewMode = parsed
	}
}

// IconZoom returns the icon zoom percentage.
func (t *TabState) IconZoom() int { return t.iconZoom }

// SetIconZoom stores a clamped icon zoom percentage.
func (t *TabState) SetIconZoom(zoom int) { t.iconZoom = ClampIconZoom(zoom) }

// Scroll returns the stored scroll offset.
func (t *TabState) Scroll() int { return t.scroll }

// SetScroll stores the scroll offset for session restore.
func (t *TabState) SetScroll(offset int) {
	if offset < 0 {
		offset = 0
	}
	t.scroll = offset
}

// Selected returns the stored selection.
func (t *TabState) Selected() []string {
	out := make([]string, len(t.selected))
	copy(out, t.selected)
	return out
}

// SetSelected stores the selected paths for session restore.
func (t *TabState) SetSelected(paths []string) {
	t.selected = append(t.selected[:0], paths...)
}

// Navigate commits a new current path: the old path is pushed onto the
// back stack and the forward stack is cleared. Navigating to the current
// path is a no-op; it returns whether the path changed.
func (t *TabState) Navigate(path string) bool {
	path = filepath.Clean(path)
	if path == t.path {
		return false
	}
	t.back = append(t.back, t.path)
	if t.historyLimit > 0 && len(t.back) > t.historyLimit {
		t.back = t.back[len(t.back)-t.historyLimit:]
	}
	t.forward = t.forward[:0]
	t.path = path
	t.scroll = 0
	t.selected = t.selected[:0]
	return true
}

// CanGoBack reports whether the back stack is non-empty.
func (t *TabState) CanGoBack() bool { return len(t.back) > 0 }

// CanGoForward reports whether the forward stack is non-empty.
func (t *TabState) CanGoForward() bool { return len(t.forward) > 0 }

// GoBack pops the back stack, pushing the current path onto the forward
// stack. It reports false, leaving state untouched, when there is no
// history to go back to.
func (t *TabState) GoBack() (string, bool) {
	if len(t.back) == 0 {
		return t.path, false
	}
	prev := t.back[len(t.back)-1]
	t.back = t.back[:len(t.back)-1]
	t.forward = append(t.forward, t.path)
	t.path = prev
	return t.path, true
}

// GoForward pops the forward stack, pushing the current path onto the
// back stack. It is the exact inverse of GoBack.
func (t *TabState) GoForward() (string, bool) {
	if len(t.forward) == 0 {
		return t.path, false
	}
	next := t.forward[len(t.forward)-1]
	t.forward = t.forward[:len(t.forward)-1]
	t.back = append(t.back, t.path)
	t.path = next
	return t.path, true
}

// GoUp navigates to the parent directory. At the filesystem root it
// reports false and changes nothing.
func (t *TabState) GoUp() bool {
	parent := filepath.Dir(t.path)
	if parent == t.path {
		return false
	}
	return t.Navigate(parent)
}

// Clone returns an independent copy of the tab, history included.
func (t *TabState) Clone() *TabState {
	out := &TabState{
		title:        t.title,
		path:         t.path,
		pinned:       t.pinned,
		viewMode:     t.viewMode,
		iconZoom:     t.iconZoom,
		scroll:       t.scroll,
		historyLimit: t.historyLimit,
	}
	out.selected = append([]string(nil), t.selected...)
	out.back = append([]string(nil), t.back...)
	out.forward = append([]string(nil), t.forward...)
	return out
}
