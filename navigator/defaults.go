// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: navigator/defaults.go
// Summary: Built-in sidebar groups, token resolution, and drive scan.

package navigator

import (
	"os"
	"path/filepath"
)

// Group names of the built-in sidebar blocks.
const (
	PlacesGroup    = "Places"
	FavoritesGroup = "Favorites"
	CloudGroup     = "Cloud"
	DrivesGroup    = "Drives"
)

// Tokens resolved against the running user's environment.
const (
	TokenHome      = "home"
	TokenDesktop   = "desktop"
	TokenDocuments = "documents"
	TokenDownloads = "downloads"
	TokenTrash     = "trash"
)

var driveRoots = []string{"/mnt", "/media", "/run/media"}

func defaultGroups() []Group {
	places := Group{
		Name:        PlacesGroup,
		Icon:        "places",
		Collapsible: true,
		Expanded:    true,
	}
	for _, token := range []string{TokenHome, TokenDesktop, TokenDocuments, TokenDownloads, TokenTrash} {
		if entry, ok := resolveToken(token); ok {
			places.Entries = append(places.Entries, entry)
		}
	}

	favorites := Group{
		Name:        FavoritesGroup,
		Icon:        "star",
		Collapsible: true,
		Expanded:    true,
		Dynamic:     true,
	}

	groups := []Group{places, favorites}
	if cloud, ok := cloudGroup(); ok {
		groups = append(groups, cloud)
	}
	return append(groups, drivesGroup())
}

// cloudMounts are folder names that sync clients conventionally create
// under the home directory.
var cloudMounts = []string{"Dropbox", "OneDrive", "Google Drive", "Nextcloud", "ownCloud"}

// cloudGroup collects sync-client folders present under the home
// directory. Absent on machines without any.
func cloudGroup() (Group, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Group{}, false
	}
	group := Group{
		Name:        CloudGroup,
		Icon:        "cloud",
		Collapsible: true,
		Expanded:    true,
	}
	for _, name := range cloudMounts {
		path := filepath.Join(home, name)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			group.Entries = append(group.Entries, Entry{Label: name, Path: path, Icon: "cloud"})
		}
	}
	return group, len(group.Entries) > 0
}

// resolveToken maps a symbolic location to a concrete entry. Tokens
// whose directory does not exist on this machine are skipped.
func resolveToken(token string) (Entry, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Entry{}, false
	}

	var label, path string
	switch token {
	case TokenHome:
		label, path = "Home", home
	case TokenDesktop:
		label, path = "Desktop", filepath.Join(home, "Desktop")
	case TokenDocuments:
		label, path = "Documents", filepath.Join(home, "Documents")
	case TokenDownloads:
		label, path = "Downloads", filepath.Join(home, "Downloads")
	case TokenTrash:
		label, path = "Trash", filepath.Join(trashRoot(home), "files")
	default:
		return Entry{}, false
	}

	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return Entry{}, false
	}
	return Entry{Label: label, Path: path, Token: token, Icon: token}, true
}

// trashRoot returns the XDG trash directory for the user.
func trashRoot(home string) string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "Trash")
	}
	return filepath.Join(home, ".local", "share", "Trash")
}

// drivesGroup scans the usual mount roots for attached filesystems.
func drivesGroup() Group {
	group := Group{
		Name:        DrivesGroup,
		Icon:        "drive",
		Collapsible: true,
		Expanded:    true,
	}
	group.Entries = append(group.Entries, Entry{Label: "System", Path: "/", Icon: "drive"})
	for _, root := range driveRoots {
		members, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, m := range members {
			if !m.IsDir() {
				continue
			}
			mount := filepath.Join(root, m.Name())
			if root == "/run/media" {
				// /run/media nests per-user directories above the mounts.
				users, err := os.ReadDir(mount)
				if err != nil {
					continue
				}
				for _, u := range users {
					if u.IsDir() {
						p := filepath.Join(mount, u.Name())
						group.Entries = append(group.Entries, Entry{Label: u.Name(), Path: p, Icon: "drive"})
					}
				}
				continue
			}
			group.Entries = append(group.Entries, Entry{Label: m.Name(), Path: mount, Icon: "drive"})
		}
	}
	return group
}

// refreshDrives rebuilds the drives group on load so unplugged media
// disappears without touching the persisted favorites.
func (n *Navigator) refreshDrives() {
	for i := range n.groups {
		if n.groups[i].Name == DrivesGroup && !n.groups[i].Dynamic {
			expanded := n.groups[i].Expanded
			n.groups[i] = drivesGroup()
			n.groups[i].Expanded = expanded
			return
		}
	}
	n.groups = append(n.groups, drivesGroup())
}
