// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: navigator/navigator.go
// Summary: Sidebar location model: static groups, drives, user favorites.

package navigator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/filegrid/filegrid/config"
	"github.com/filegrid/filegrid/grid"
)

// SchemaVersion is the navigator file's schema version.
const SchemaVersion = 1

// Entry is one sidebar location. Static entries carry the token they
// were resolved from; user-added entries have none.
type Entry struct {
	Label  string `json:"label"`
	Path   string `json:"path"`
	Icon   string `json:"icon,omitempty"`
	Token  string `json:"token,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
}

// Group is a named block of sidebar entries. A dynamic group accepts
// user-added entries; static groups only toggle visibility.
type Group struct {
	Name        string  `json:"name"`
	Icon        string  `json:"icon,omitempty"`
	Collapsible bool    `json:"collapsible"`
	Expanded    bool    `json:"expanded"`
	Dynamic     bool    `json:"dynamic"`
	Entries     []Entry `json:"entries"`
}

type fileSchema struct {
	Version int     `json:"version"`
	Groups  []Group `json:"groups"`
}

// Navigator holds the sidebar state and knows how to persist it. It is
// driven from the UI loop and is not safe for concurrent use.
type Navigator struct {
	path   string
	groups []Group
}

// Load reads the navigator file at path. A missing, corrupt, or
// version-mismatched file is not an error: the navigator starts from
// the built-in defaults and logs why.
func Load(path string) *Navigator {
	nav := &Navigator{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Navigator: Failed to read %s: %v", path, err)
		}
		nav.groups = defaultGroups()
		return nav
	}

	var doc fileSchema
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("Navigator: Corrupt file %s, using defaults: %v", path, err)
		nav.groups = defaultGroups()
		return nav
	}
	if doc.Version != SchemaVersion || len(doc.Groups) == 0 {
		log.Printf("Navigator: Schema mismatch in %s (version %d), using defaults", path, doc.Version)
		nav.groups = defaultGroups()
		return nav
	}

	nav.groups = doc.Groups
	nav.refreshDrives()
	return nav
}

// Save writes the navigator state atomically.
func (n *Navigator) Save() error {
	doc := fileSchema{Version: SchemaVersion, Groups: n.groups}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(n.path), 0755); err != nil {
		return err
	}
	return config.WriteFileAtomic(n.path, data, 0644)
}

// Groups returns the sidebar groups in display order.
func (n *Navigator) Groups() []Group {
	out := make([]Group, len(n.groups))
	copy(out, n.groups)
	return out
}

// AddDynamicEntry adds a user location to the favorites group. The path
// is canonicalized; it must be an existing directory and must not
// already be present.
func (n *Navigator) AddDynamicEntry(label, path string) error {
	resolved, err := canonicalize(path)
	if err != nil {
		return err
	}
	group := n.dynamicGroup()
	if group == nil {
		return fmt.Errorf("navigator: no dynamic group configured")
	}
	for _, e := range group.Entries {
		if e.Path == resolved {
			return grid.ErrDuplicateEntry
		}
	}
	if label == "" {
		label = filepath.Base(resolved)
	}
	group.Entries = append(group.Entries, Entry{Label: label, Path: resolved})
	return nil
}

// RemoveDynamicEntry drops a user location. Removing an absent path is
// a no-op.
func (n *Navigator) RemoveDynamicEntry(path string) {
	group := n.dynamicGroup()
	if group == nil {
		return
	}
	resolved, err := canonicalize(path)
	if err != nil {
		resolved = filepath.Clean(path)
	}
	for i, e := range group.Entries {
		if e.Path == resolved {
			group.Entries = append(group.Entries[:i], group.Entries[i+1:]...)
			return
		}
	}
}

// RenameEntry relabels the dynamic entry at path.
func (n *Navigator) RenameEntry(path, label string) error {
	group := n.dynamicGroup()
	if group == nil {
		return fmt.Errorf("navigator: no dynamic group configured")
	}
	resolved, err := canonicalize(path)
	if err != nil {
		resolved = filepath.Clean(path)
	}
	for i := range group.Entries {
		if group.Entries[i].Path == resolved {
			group.Entries[i].Label = label
			return nil
		}
	}
	return grid.ErrInvalidIndex
}

// SetEntryHidden toggles a static entry in or out of the sidebar
// without removing it from the model.
func (n *Navigator) SetEntryHidden(groupName, path string, hidden bool) error {
	for gi := range n.groups {
		if n.groups[gi].Name != groupName {
			continue
		}
		for ei := range n.groups[gi].Entries {
			if n.groups[gi].Entries[ei].Path == path {
				n.groups[gi].Entries[ei].Hidden = hidden
				return nil
			}
		}
	}
	return grid.ErrInvalidIndex
}

// SetGroupExpanded stores a collapsible group's expansion state.
func (n *Navigator) SetGroupExpanded(groupName string, expanded bool) {
	for gi := range n.groups {
		if n.groups[gi].Name == groupName && n.groups[gi].Collapsible {
			n.groups[gi].Expanded = expanded
			return
		}
	}
}

// DropRejection explains why one dropped path was not added.
type DropRejection struct {
	Path   string
	Reason error
}

// DropReport summarizes a HandleDrop: what was added, what was skipped
// as a duplicate, and what was rejected with a reason.
type DropReport struct {
	Added      []string
	Duplicates []string
	Rejected   []DropRejection
}

// HandleDrop adds each dropped directory as a favorite. Non-directories
// are rejected individually and duplicates skipped; one bad path never
// aborts the batch.
func (n *Navigator) HandleDrop(paths []string) DropReport {
	var report DropReport
	for _, p := range paths {
		err := n.AddDynamicEntry("", p)
		switch {
		case err == nil:
			resolved, _ := canonicalize(p)
			report.Added = append(report.Added, resolved)
		case errors.Is(err, grid.ErrDuplicateEntry):
			report.Duplicates = append(report.Duplicates, p)
		default:
			report.Rejected = append(report.Rejected, DropRejection{Path: p, Reason: err})
		}
	}
	if len(report.Rejected) > 0 || len(report.Duplicates) > 0 {
		log.Printf("Navigator: Drop added %d, skipped %d duplicates, rejected %d",
			len(report.Added), len(report.Duplicates), len(report.Rejected))
	}
	return report
}

func (n *Navigator) dynamicGroup() *Group {
	for i := range n.groups {
		if n.groups[i].Dynamic {
			return &n.groups[i]
		}
	}
	return nil
}

// canonicalize resolves symlinks and verifies the path is a directory.
func canonicalize(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", grid.ErrNotDirectory, path)
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", grid.ErrNotDirectory, path)
	}
	return filepath.Clean(resolved), nil
}
