// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/viewmode.go
// Summary: Per-tab view mode and icon zoom bounds.

package grid

// ViewMode selects how a tab renders its directory contents.
type ViewMode string

const (
	ViewDetails ViewMode = "details"
	ViewList    ViewMode = "list"
	ViewIcons   ViewMode = "icons"
)

// Icon zoom is a percentage, clamped to this range.
const (
	MinIconZoom     = 50
	MaxIconZoom     = 300
	DefaultIconZoom = 100
)

// ParseViewMode maps a persisted string to a ViewMode.
// Unknown values fall back to ViewDetails.
func ParseViewMode(s string) (ViewMode, bool) {
	switch ViewMode(s) {
	case ViewDetails, ViewList, ViewIcons:
		return ViewMode(s), true
	}
	return ViewDetails, false
}

// ClampIconZoom bounds a zoom percentage to the supported range.
func ClampIconZoom(zoom int) int {
	if zoom < MinIconZoom {
		return MinIconZoom
	}
	if zoom > MaxIconZoom {
		return MaxIconZoom
	}
	return zoom
}
