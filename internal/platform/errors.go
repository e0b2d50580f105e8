// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"syscall"
)

// Windows error constants
const (
	ERROR_FILE_NOT_FOUND     = syscall.Errno(2)
	ERROR_PATH_NOT_FOUND     = syscall.Errno(3)
	ERROR_ACCESS_DENIED      = syscall.Errno(5)
	ERROR_WRITE_PROTECT      = syscall.Errno(19)
	ERROR_SHARING_VIOLATION  = syscall.Errno(32)
	ERROR_LOCK_VIOLATION     = syscall.Errno(33)
	ERROR_DISK_FULL          = syscall.Errno(112)
	ERROR_PRIVILEGE_NOT_HELD = syscall.Errno(1314)
)

// WindowsError represents a Windows-specific error with enhanced messaging
type WindowsError struct {
	OriginalError error
	Path          string
	Operation     string
	Suggestion    string
}

func (we *WindowsError) Error() string {
	if we.Suggestion != "" {
		return fmt.Sprintf("%s '%s': %s. %s", we.Operation, we.Path, we.OriginalError.Error(), we.Suggestion)
	}
	return fmt.Sprintf("%s '%s': %s", we.Operation, we.Path, we.OriginalError.Error())
}

func (we *WindowsError) Unwrap() error {
	return we.OriginalError
}

// ErrorHandler provides platform-specific error handling
type ErrorHandler interface {
	HandleFileError(err error, filePath string, operation string) error
	IsPermissionError(err error) bool
	IsNotFoundError(err error) bool
	IsDiskFullError(err error) bool
}

// GetErrorHandler returns the appropriate error handler for the current platform
func GetErrorHandler() ErrorHandler {
	if IsWindows() {
		return &WindowsErrorHandler{}
	}
	return &UnixErrorHandler{}
}

// WindowsErrorHandler handles Windows-specific errors
type WindowsErrorHandler struct{}

// HandleFileError provides Windows-specific file error handling
func (w *WindowsErrorHandler) HandleFileError(err error, filePath string, operation string) error {
	if err == nil {
		return nil
	}

	switch {
	case w.IsPermissionError(err):
		return &WindowsError{
			OriginalError: err,
			Path:          filePath,
			Operation:     operation,
			Suggestion:    "Check that the file is not open in another application and that you have access to it",
		}
	case w.IsDiskFullError(err):
		return &WindowsError{
			OriginalError: err,
			Path:          filePath,
			Operation:     operation,
			Suggestion:    "Free up space on the destination drive or choose another output path",
		}
	}

	return &WindowsError{
		OriginalError: err,
		Path:          filePath,
		Operation:     operation,
	}
}

// IsPermissionError checks if the error is a Windows permission error
func (w *WindowsErrorHandler) IsPermissionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fs.ErrPermission) {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case ERROR_ACCESS_DENIED, ERROR_PRIVILEGE_NOT_HELD,
			ERROR_SHARING_VIOLATION, ERROR_LOCK_VIOLATION, ERROR_WRITE_PROTECT:
			return true
		}
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "access is denied") ||
		strings.Contains(errMsg, "permission denied")
}

// IsNotFoundError checks if the error means the file or its directory is missing
func (w *WindowsErrorHandler) IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fs.ErrNotExist) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == ERROR_FILE_NOT_FOUND || errno == ERROR_PATH_NOT_FOUND
	}
	return false
}

// IsDiskFullError checks if the error means the volume is out of space
func (w *WindowsErrorHandler) IsDiskFullError(err error) bool {
	var errno syscall.Errno
	return errors.As(err, &errno) && errno == ERROR_DISK_FULL
}

// UnixErrorHandler provides basic error handling for Unix systems
type UnixErrorHandler struct{}

// HandleFileError provides basic file error handling for Unix systems
func (u *UnixErrorHandler) HandleFileError(err error, filePath string, operation string) error {
	if err == nil {
		return nil
	}

	switch {
	case u.IsPermissionError(err):
		return fmt.Errorf("%s '%s': permission denied: %w", operation, filePath, err)
	case u.IsDiskFullError(err):
		return fmt.Errorf("%s '%s': %w. Free up space or choose another output path", operation, filePath, err)
	}

	return fmt.Errorf("%s '%s': %w", operation, filePath, err)
}

// IsPermissionError checks for Unix permission errors
func (u *UnixErrorHandler) IsPermissionError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, fs.ErrPermission) || os.IsPermission(err) ||
		strings.Contains(strings.ToLower(err.Error()), "read-only file system")
}

// IsNotFoundError checks for a missing file or directory
func (u *UnixErrorHandler) IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, fs.ErrNotExist)
}

// IsDiskFullError checks for ENOSPC
func (u *UnixErrorHandler) IsDiskFullError(err error) bool {
	return err != nil && errors.Is(err, syscall.ENOSPC)
}

// WrapFileError wraps a file operation error with platform-specific handling
func WrapFileError(err error, filePath string, operation string) error {
	if err == nil {
		return nil
	}

	handler := GetErrorHandler()
	return handler.HandleFileError(err, filePath, operation)
}
