// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func resetStore() {
	once = sync.Once{}
	system = nil
	loadErr = nil
}

func TestDefaultsWrittenOnFirstRun(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	cfg := System()
	if cfg.GetString("general", "default_view", "") == "" {
		t.Fatalf("expected general.default_view to be set")
	}

	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	if disk.Section("panes") == nil {
		t.Fatalf("expected panes section to be present")
	}
}

func TestSaveSystemWritesUpdates(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	cfg := Config{
		"language": "de",
	}
	SetSystem(cfg)
	if err := SaveSystem(); err != nil {
		t.Fatalf("SaveSystem: %v", err)
	}

	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	if got := disk.GetString("", "language", ""); got != "de" {
		t.Fatalf("expected language to be de, got %q", got)
	}
}

func TestLegacyConfigMigrated(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	resetStore()

	legacy := filepath.Join(home, "filegrid", legacyConfigName)
	if err := os.MkdirAll(filepath.Dir(legacy), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	payload := []byte(`{"language":"fr","general":{"show_hidden":true}}`)
	if err := os.WriteFile(legacy, payload, 0644); err != nil {
		t.Fatalf("write legacy config: %v", err)
	}

	cfg := System()
	if got := cfg.GetString("", "language", ""); got != "fr" {
		t.Fatalf("expected migrated language fr, got %q", got)
	}
	if !cfg.GetBool("general", "show_hidden", false) {
		t.Fatalf("expected migrated general.show_hidden to be true")
	}
}

func TestWriteFileAtomicReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	if err := WriteFileAtomic(path, []byte(`{"v":1}`), 0644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	if err := WriteFileAtomic(path, []byte(`{"v":2}`), 0644); err != nil {
		t.Fatalf("WriteFileAtomic rewrite: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"v":2}` {
		t.Fatalf("unexpected contents: %s", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no leftover temp files, found %d entries", len(entries))
	}
}
