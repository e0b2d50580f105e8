// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"runtime"
)

// AppName is used for configuration directory names
const AppName = "p2pkh-filter"

// ConfigDirEnv overrides the configuration directory on every platform
const ConfigDirEnv = "P2PKH_FILTER_CONFIG_DIR"

// Platform defines the interface for platform-specific operations
type Platform interface {
	GetConfigDir() string
	NormalizePath(path string) string
}

// GetPlatform returns the appropriate platform implementation for the current OS
func GetPlatform() Platform {
	switch runtime.GOOS {
	case "windows":
		return &WindowsPlatform{}
	default:
		return &UnixPlatform{}
	}
}

// IsWindows returns true if running on Windows
func IsWindows() bool {
	return runtime.GOOS == "windows"
}
