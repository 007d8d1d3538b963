// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for filegrid configuration and state files.

package config

import (
	"os"
	"path/filepath"
)

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "filegrid"), nil
}

func systemConfigPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

func legacyConfigPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, legacyConfigName), nil
}

// StateDir returns the directory holding mutable application state
// (navigator, session, history database, debug log), creating it if needed.
func StateDir() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", err
	}
	return root, nil
}

// NavigatorPath returns the path of the navigator sidebar state file.
func NavigatorPath() (string, error) {
	root, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "navigator.json"), nil
}

// SessionPath returns the path of the workspace session file.
func SessionPath() (string, error) {
	root, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "session.json"), nil
}

// HistoryPath returns the path of the visit history database.
func HistoryPath() (string, error) {
	root, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "history.db"), nil
}

// LogPath returns the path of the debug log file.
func LogPath() (string, error) {
	root, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "debug.log"), nil
}
