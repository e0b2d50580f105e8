// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"p2pkh-filter/internal/paths"
	"p2pkh-filter/internal/textio"

	"gopkg.in/yaml.v3"
)

// Default values used when neither the config file nor flags set a value
const (
	DefaultFormat           = "text"
	DefaultProgressInterval = 1_000_000
	DefaultWorkers          = 1
	DefaultBatchSize        = 8192
)

// ValidFormats lists the summary formats understood by the formatters
var ValidFormats = []string{"text", "json", "yaml", "table"}

// Settings holds every tunable of a filter run
type Settings struct {
	Output           string `yaml:"output"`
	Format           string `yaml:"format"`
	DecodeMode       string `yaml:"decode_mode"`
	ProgressInterval int64  `yaml:"progress_interval"`
	Workers          int    `yaml:"workers"`
	BatchSize        int    `yaml:"batch_size"`
	MaxLineBytes     int    `yaml:"max_line_bytes"`
	NoColor          bool   `yaml:"no_color"`
	Debug            bool   `yaml:"debug"`
}

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults Settings `yaml:"defaults"`

	// Profiles for different filtering scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile overrides a subset of the defaults. Zero values leave the
// default in place; boolean switches can only be turned on.
type Profile struct {
	Description      string `yaml:"description"`
	Output           string `yaml:"output"`
	Format           string `yaml:"format"`
	DecodeMode       string `yaml:"decode_mode"`
	ProgressInterval int64  `yaml:"progress_interval"`
	Workers          int    `yaml:"workers"`
	BatchSize        int    `yaml:"batch_size"`
	MaxLineBytes     int    `yaml:"max_line_bytes"`
	NoColor          bool   `yaml:"no_color"`
	Debug            bool   `yaml:"debug"`
}

// DefaultSettings returns the built-in defaults
func DefaultSettings() Settings {
	return Settings{
		Output:           paths.DefaultOutputFile,
		Format:           DefaultFormat,
		DecodeMode:       textio.DecodeBestEffort.String(),
		ProgressInterval: DefaultProgressInterval,
		Workers:          DefaultWorkers,
		BatchSize:        DefaultBatchSize,
		MaxLineBytes:     textio.DefaultMaxLineBytes,
	}
}

// LoadConfig loads configuration from the specified file path.
// An empty path returns the built-in defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{
		Defaults: DefaultSettings(),
		Profiles: make(map[string]Profile),
	}

	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if config.Profiles == nil {
		config.Profiles = make(map[string]Profile)
	}

	config.Defaults.Output = paths.NormalizePath(config.Defaults.Output)

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	for _, name := range []string{"p2pkh-filter.yaml", "p2pkh-filter.yml", ".p2pkh-filter.yaml", ".p2pkh-filter.yml"} {
		if fileExists(name) {
			return name
		}
	}

	if standardConfig := paths.GetConfigFile(); fileExists(standardConfig) {
		return standardConfig
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns the available profile names in alphabetical order
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// Resolve returns the defaults with the named profile applied on top.
// An empty name returns the defaults.
func (c *Config) Resolve(profileName string) (Settings, error) {
	settings := c.Defaults
	if profileName == "" {
		return settings, nil
	}

	profile := c.GetProfile(profileName)
	if profile == nil {
		return settings, fmt.Errorf("profile '%s' not found in configuration", profileName)
	}
	profile.applyTo(&settings)
	return settings, nil
}

func (p *Profile) applyTo(s *Settings) {
	if p.Output != "" {
		s.Output = paths.NormalizePath(p.Output)
	}
	if p.Format != "" {
		s.Format = p.Format
	}
	if p.DecodeMode != "" {
		s.DecodeMode = p.DecodeMode
	}
	if p.ProgressInterval != 0 {
		s.ProgressInterval = p.ProgressInterval
	}
	if p.Workers != 0 {
		s.Workers = p.Workers
	}
	if p.BatchSize != 0 {
		s.BatchSize = p.BatchSize
	}
	if p.MaxLineBytes != 0 {
		s.MaxLineBytes = p.MaxLineBytes
	}
	if p.NoColor {
		s.NoColor = true
	}
	if p.Debug {
		s.Debug = true
	}
}

// ValidateConfig validates the defaults and every profile
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if err := ValidateSettings(config.Defaults); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	for _, name := range config.ListProfiles() {
		settings, _ := config.Resolve(name)
		if err := ValidateSettings(settings); err != nil {
			return fmt.Errorf("profile '%s': %w", name, err)
		}
	}

	return nil
}

// ValidateSettings checks a fully resolved set of settings
func ValidateSettings(s Settings) error {
	if s.Output == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	if err := paths.ValidatePath(s.Output); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	if !isValidFormat(s.Format) {
		return fmt.Errorf("unknown format %q (valid: %v)", s.Format, ValidFormats)
	}
	if _, err := textio.ParseDecodeMode(s.DecodeMode); err != nil {
		return err
	}
	if s.ProgressInterval <= 0 {
		return fmt.Errorf("progress_interval must be positive, got %d", s.ProgressInterval)
	}
	if s.Workers < 0 {
		return fmt.Errorf("workers must be 0 (auto) or positive, got %d", s.Workers)
	}
	if s.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1, got %d", s.BatchSize)
	}
	if s.MaxLineBytes < 1 {
		return fmt.Errorf("max_line_bytes must be positive, got %d", s.MaxLineBytes)
	}
	return nil
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
