// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/migrate.go
// Summary: Legacy config migration helpers.

package config

// migrateFromLegacy copies recognized keys from an older config.json into cfg.
// It returns true if any value was carried over.
func migrateFromLegacy(cfg Config) (bool, error) {
	if cfg == nil {
		return false, nil
	}

	legacyPath, err := legacyConfigPath()
	if err != nil {
		return false, err
	}
	legacyCfg, exists, err := readConfig(legacyPath)
	if err != nil || !exists {
		return false, err
	}

	migrated := false
	if _, ok := cfg["language"]; !ok {
		if val, ok := legacyCfg["language"]; ok {
			cfg["language"] = val
			migrated = true
		}
	}
	for _, name := range []string{"general", "panes", "navigator"} {
		if copySection(cfg, legacyCfg, name) {
			migrated = true
		}
	}
	return migrated, nil
}

func copySection(dst, src Config, name string) bool {
	if dst == nil || src == nil {
		return false
	}
	section := src.Section(name)
	if section == nil {
		return false
	}
	if _, ok := dst[name]; ok {
		return false
	}
	out := make(Section, len(section))
	for key, value := range section {
		out[key] = value
	}
	dst[name] = out
	return true
}
