// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"path/filepath"
	"runtime"
	"testing"

	"p2pkh-filter/internal/platform"
)

func TestGetConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(platform.ConfigDirEnv, dir)

	if got, want := GetConfigFile(), filepath.Join(dir, "config.yaml"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNormalizePath(t *testing.T) {
	if NormalizePath("") != "" {
		t.Error("empty path should stay empty")
	}
	if got, want := NormalizePath("a/./b/../c.txt"), filepath.Clean("a/c.txt"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLockPath(t *testing.T) {
	if got := LockPath("out.txt"); got != "out.txt.lock" {
		t.Errorf("unexpected lock path %q", got)
	}
}

func TestValidatePath(t *testing.T) {
	if err := ValidatePath(""); err != nil {
		t.Errorf("empty path should be valid: %v", err)
	}
	if err := ValidatePath("addresses.txt"); err != nil {
		t.Errorf("plain name should be valid: %v", err)
	}
	if runtime.GOOS != "windows" {
		if err := ValidatePath("bad\x00name"); err == nil {
			t.Error("expected null byte to be rejected")
		}
	}
}
