// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/pathbar.go
// Summary: Breadcrumb rendering for the pane path bar.

package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const crumbSep = " › "

// breadcrumbs renders path as segmented crumbs fitting width w.
// When the full trail does not fit, leading segments are replaced
// by an ellipsis so the deepest segments stay visible.
func breadcrumbs(path string, w int) string {
	if path == "/" || path == "" {
		return "/"
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	full := "/" + strings.Join(segments, crumbSep)
	if runewidth.StringWidth(full) <= w {
		return full
	}
	for drop := 1; drop < len(segments); drop++ {
		trail := "…" + crumbSep + strings.Join(segments[drop:], crumbSep)
		if runewidth.StringWidth(trail) <= w {
			return trail
		}
	}
	return runewidth.Truncate("…"+crumbSep+segments[len(segments)-1], w, "…")
}
