// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"errors"
	"io/fs"
	"path/filepath"
	"syscall"
	"testing"
)

func TestGetConfigDirHonorsOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)

	if got := GetPlatform().GetConfigDir(); got != dir {
		t.Errorf("expected override %q, got %q", dir, got)
	}
}

func TestUnixConfigDirUsesXDG(t *testing.T) {
	t.Setenv(ConfigDirEnv, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	got := (&UnixPlatform{}).GetConfigDir()
	if want := filepath.Join("/xdg", AppName); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestUnixErrorHandler(t *testing.T) {
	h := &UnixErrorHandler{}
	perm := &fs.PathError{Op: "open", Path: "out.txt", Err: fs.ErrPermission}
	missing := &fs.PathError{Op: "open", Path: "in.txt", Err: fs.ErrNotExist}
	full := &fs.PathError{Op: "write", Path: "out.txt", Err: syscall.ENOSPC}

	if !h.IsPermissionError(perm) {
		t.Error("expected permission error to be detected")
	}
	if h.IsPermissionError(missing) {
		t.Error("not-exist is not a permission error")
	}
	if !h.IsNotFoundError(missing) {
		t.Error("expected not-found error to be detected")
	}
	if !h.IsDiskFullError(full) {
		t.Error("expected ENOSPC to be detected")
	}

	wrapped := h.HandleFileError(perm, "out.txt", "create output")
	if !errors.Is(wrapped, fs.ErrPermission) {
		t.Error("wrapped error should still match fs.ErrPermission")
	}
	if h.HandleFileError(nil, "x", "y") != nil {
		t.Error("nil error should stay nil")
	}
}

func TestWindowsErrorHandlerUnwraps(t *testing.T) {
	h := &WindowsErrorHandler{}
	err := h.HandleFileError(ERROR_ACCESS_DENIED, `C:\out.txt`, "create output")

	var winErr *WindowsError
	if !errors.As(err, &winErr) {
		t.Fatalf("expected *WindowsError, got %T", err)
	}
	if winErr.Suggestion == "" {
		t.Error("expected a suggestion for access denied")
	}
	if !errors.Is(err, ERROR_ACCESS_DENIED) {
		t.Error("expected the original errno to be reachable")
	}
}

func TestHandleFileErrorNamesPathAndOperation(t *testing.T) {
	for name, h := range map[string]ErrorHandler{"unix": &UnixErrorHandler{}, "windows": &WindowsErrorHandler{}} {
		t.Run(name, func(t *testing.T) {
			err := h.HandleFileError(errors.New("boom"), "out.txt", "write output")
			if got, want := err.Error(), "write output 'out.txt': boom"; got != want {
				t.Errorf("expected %q, got %q", want, got)
			}
		})
	}
}

func TestWrapFileErrorSuggestsOnDiskFull(t *testing.T) {
	if IsWindows() {
		t.Skip("ENOSPC is a Unix errno")
	}
	err := WrapFileError(syscall.ENOSPC, "out.txt", "write output")
	if !errors.Is(err, syscall.ENOSPC) {
		t.Error("expected ENOSPC to stay reachable")
	}
	if WrapFileError(nil, "out.txt", "write output") != nil {
		t.Error("nil error should stay nil")
	}
}
