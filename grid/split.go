// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/split.go
// Summary: Workspace split layouts.

package grid

// SplitLayout selects how many panes a workspace shows.
type SplitLayout string

const (
	SplitSingle SplitLayout = "single"
	SplitTwo    SplitLayout = "2-split"
	SplitFour   SplitLayout = "4-split"
)

// MaxPanes is the largest pane count any layout can show.
const MaxPanes = 4

// PaneCount returns the number of visible pane slots for the layout.
func (l SplitLayout) PaneCount() int {
	switch l {
	case SplitTwo:
		return 2
	case SplitFour:
		return 4
	default:
		return 1
	}
}

// ParseSplitLayout maps a persisted string to a SplitLayout.
// Unknown values fall back to SplitSingle.
func ParseSplitLayout(s string) (SplitLayout, bool) {
	switch SplitLayout(s) {
	case SplitSingle, SplitTwo, SplitFour:
		return SplitLayout(s), true
	}
	return SplitSingle, false
}
