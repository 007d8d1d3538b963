// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/errors.go
// Summary: Sentinel errors shared by the state-model controllers.

package grid

import "errors"

var (
	// ErrInvalidIndex reports a tab, pane, or group index out of range.
	ErrInvalidIndex = errors.New("grid: index out of range")

	// ErrLastTab reports an attempt to close the only remaining tab.
	ErrLastTab = errors.New("grid: cannot close the last tab")

	// ErrPinnedTab reports an attempt to close a pinned tab.
	ErrPinnedTab = errors.New("grid: tab is pinned")

	// ErrProtectedGroup reports a close or rename of group 0.
	ErrProtectedGroup = errors.New("grid: group is protected")

	// ErrDuplicateName reports a group name that is already in use.
	ErrDuplicateName = errors.New("grid: name already in use")

	// ErrDuplicateEntry reports an entry that is already present.
	ErrDuplicateEntry = errors.New("grid: entry already present")

	// ErrSchemaMismatch reports persisted state with an unknown shape or version.
	ErrSchemaMismatch = errors.New("grid: state schema mismatch")

	// ErrNotDirectory reports a path that does not resolve to a directory.
	ErrNotDirectory = errors.New("grid: not a directory")
)
