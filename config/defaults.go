// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the filegrid configuration file.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"language": "en",
	})
	cfg.RegisterDefaults("general", Section{
		"show_hidden":    false,
		"confirm_delete": true,
		"default_view":   "details",
		"default_zoom":   100,
	})
	cfg.RegisterDefaults("panes", Section{
		"history_limit": 100,
	})
	cfg.RegisterDefaults("navigator", Section{
		"drives_scan": true,
	})
	cfg.RegisterDefaults("preview", Section{
		"enabled":   true,
		"style":     "monokai",
		"max_bytes": 262144,
	})
}
