// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"p2pkh-filter/internal/platform"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Output != "attack-addresses-p2pkh.txt" {
		t.Errorf("expected default output, got %q", cfg.Defaults.Output)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("expected default format=text, got %q", cfg.Defaults.Format)
	}
	if cfg.Defaults.DecodeMode != "best-effort" {
		t.Errorf("expected best-effort decoding by default, got %q", cfg.Defaults.DecodeMode)
	}
	if cfg.Defaults.ProgressInterval != 1_000_000 {
		t.Errorf("expected progress every 1,000,000 lines, got %d", cfg.Defaults.ProgressInterval)
	}
	if cfg.Defaults.Workers != 1 {
		t.Errorf("expected sequential processing by default, got %d workers", cfg.Defaults.Workers)
	}
	if cfg.Profiles == nil {
		t.Error("expected profiles map to be initialized")
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	configPath := writeConfig(t, `
defaults:
  output: filtered.txt
  format: json
  decode_mode: strict
profiles:
  fast:
    description: many workers
    workers: 8
    no_color: true
`)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Output != "filtered.txt" {
		t.Errorf("expected output=filtered.txt, got %q", cfg.Defaults.Output)
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("expected format=json, got %q", cfg.Defaults.Format)
	}
	// Keys absent from the file keep their defaults
	if cfg.Defaults.ProgressInterval != DefaultProgressInterval {
		t.Errorf("expected default progress interval to survive, got %d", cfg.Defaults.ProgressInterval)
	}

	settings, err := cfg.Resolve("fast")
	if err != nil {
		t.Fatalf("unexpected error resolving profile: %v", err)
	}
	if settings.Workers != 8 || !settings.NoColor {
		t.Errorf("profile not applied: %+v", settings)
	}
	if settings.DecodeMode != "strict" {
		t.Errorf("profile should inherit defaults, got decode_mode=%q", settings.DecodeMode)
	}
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("empty file should load defaults: %v", err)
	}
	if cfg.Defaults.Format != DefaultFormat {
		t.Errorf("expected default format, got %q", cfg.Defaults.Format)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad yaml":          ":::invalid yaml:::",
		"unknown key":       "defaults:\n  colour: red\n",
		"unknown format":    "defaults:\n  format: xml\n",
		"unknown decode":    "defaults:\n  decode_mode: replace\n",
		"zero interval":     "defaults:\n  progress_interval: -1\n",
		"negative workers":  "defaults:\n  workers: -1\n",
		"bad profile":       "profiles:\n  p:\n    workers: -2\n",
		"empty output path": "defaults:\n  output: \"\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadConfig_AutoWorkers(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "defaults:\n  workers: 0\n"))
	if err != nil {
		t.Fatalf("workers: 0 selects automatic sizing and must load: %v", err)
	}
	if cfg.Defaults.Workers != 0 {
		t.Errorf("expected 0 workers, got %d", cfg.Defaults.Workers)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestResolve_UnknownProfile(t *testing.T) {
	cfg, _ := LoadConfig("")
	if _, err := cfg.Resolve("missing"); err == nil {
		t.Error("expected an error for an unknown profile")
	}
	settings, err := cfg.Resolve("")
	if err != nil || settings != cfg.Defaults {
		t.Errorf("empty profile should return defaults, got %+v (%v)", settings, err)
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(platform.ConfigDirEnv, filepath.Join(dir, "nowhere"))

	if got := FindConfigFile(); got != "" {
		t.Errorf("expected no config file, got %q", got)
	}

	if err := os.WriteFile(".p2pkh-filter.yaml", []byte("defaults: {}\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(); got != ".p2pkh-filter.yaml" {
		t.Errorf("expected project config to be found, got %q", got)
	}
}

func TestListProfilesSorted(t *testing.T) {
	cfg := &Config{Profiles: map[string]Profile{"b": {}, "a": {}, "c": {}}}
	got := cfg.ListProfiles()
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("expected sorted profiles, got %v", got)
	}
}
