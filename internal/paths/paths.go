// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"path/filepath"

	"p2pkh-filter/internal/platform"
)

// DefaultOutputFile is the output name the brute-force tooling expects
const DefaultOutputFile = "attack-addresses-p2pkh.txt"

// GetConfigDir returns the p2pkh-filter configuration directory
func GetConfigDir() string {
	return platform.GetPlatform().GetConfigDir()
}

// GetConfigFile returns the path to the main config file
func GetConfigFile() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// NormalizePath normalizes a file path for the current platform
// Handles Windows UNC paths, drive letters, and path separators
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}
	return platform.GetPlatform().NormalizePath(path)
}

// LockPath returns the sidecar lock file guarding output on Windows
func LockPath(output string) string {
	return output + ".lock"
}

// ValidatePath validates a path for the current platform
func ValidatePath(path string) error {
	if path == "" {
		return nil // Empty path is valid
	}

	if platform.IsWindows() {
		return validateWindowsPath(path)
	}

	return validateUnixPath(path)
}

// validateWindowsPath validates a Windows path
func validateWindowsPath(path string) error {
	invalidChars := []rune{'<', '>', '"', '|', '?', '*'}
	for i, char := range path {
		// Colon only as part of a drive letter (C:)
		if char == ':' && i != 1 {
			return &PathValidationError{Path: path, Reason: "contains invalid character: :"}
		}
		for _, invalid := range invalidChars {
			if char == invalid {
				return &PathValidationError{Path: path, Reason: "contains invalid character: " + string(char)}
			}
		}
	}

	if len(path) > 32767 {
		return &PathValidationError{
			Path:   path,
			Reason: "path exceeds maximum length of 32,767 characters",
		}
	}

	return nil
}

// validateUnixPath validates a Unix path
func validateUnixPath(path string) error {
	for _, char := range path {
		if char == 0 {
			return &PathValidationError{
				Path:   path,
				Reason: "contains null byte",
			}
		}
	}

	return nil
}

// PathValidationError represents a path validation error
type PathValidationError struct {
	Path   string
	Reason string
}

func (e *PathValidationError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Reason
}
