// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"errors"
	"fmt"

	"p2pkh-filter/internal/platform"
	"p2pkh-filter/internal/textio"
)

// Kind classifies a failed run
type Kind int

const (
	// KindIO covers read/write failures that are not more specific
	KindIO Kind = iota
	// KindInputNotFound means the input path does not exist
	KindInputNotFound
	// KindPermission means the input could not be read or the output written
	KindPermission
	// KindDecode means strict decoding met an invalid byte
	KindDecode
	// KindLocked means another run holds the output lock
	KindLocked
)

func (k Kind) String() string {
	switch k {
	case KindInputNotFound:
		return "input-not-found"
	case KindPermission:
		return "permission"
	case KindDecode:
		return "decode"
	case KindLocked:
		return "locked"
	default:
		return "io"
	}
}

// Operation names carried by Error.Op
const (
	OpStatInput   = "stat input"
	OpOpenInput   = "open input"
	OpReadInput   = "read input"
	OpLockOutput  = "lock output"
	OpOpenOutput  = "create output"
	OpWriteOutput = "write output"
	OpCloseOutput = "close output"
)

// ErrLocked is the cause of a KindLocked error
var ErrLocked = errors.New("output is locked by another run")

// ErrIsDirectory is the cause when the input path names a directory
var ErrIsDirectory = errors.New("is a directory")

// Error is returned by Run and RunFile for every failure
type Error struct {
	Kind Kind
	Op   string
	Path string // Empty when the failing stream has no file behind it
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s '%s': %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or KindIO when err is not an *Error
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindIO
}

// newError picks the Kind for a raw failure using the platform error handler
func newError(err error, op, path string) *Error {
	handler := platform.GetErrorHandler()

	kind := KindIO
	var invalid *textio.InvalidUTF8Error
	switch {
	case errors.As(err, &invalid):
		kind = KindDecode
	case errors.Is(err, ErrLocked):
		kind = KindLocked
	case handler.IsPermissionError(err):
		kind = KindPermission
	case op == OpStatInput && handler.IsNotFoundError(err):
		kind = KindInputNotFound
	}

	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}
