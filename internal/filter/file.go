// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"

	"p2pkh-filter/internal/paths"
	"p2pkh-filter/internal/platform"
)

// Result describes a file-to-file run
type Result struct {
	InputPath  string        `json:"input_path" yaml:"input_path"`
	OutputPath string        `json:"output_path" yaml:"output_path"`
	Family     string        `json:"family" yaml:"family"`
	Counters   `yaml:",inline"`
	DecodeMode string        `json:"decode_mode" yaml:"decode_mode"`
	Workers    int           `json:"workers" yaml:"workers"`
	Duration   time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// RunFile filters inputPath into outputPath, truncating any existing output.
// Nothing is created when the input is missing or unreadable. A second
// concurrent run targeting the same output fails with KindLocked and leaves
// the output untouched. On failure after the output was opened the lines
// written so far are kept and a Result with the partial counts is returned
// with the error.
func (f *Filter) RunFile(inputPath, outputPath string) (result *Result, err error) {
	start := time.Now()
	inputPath = paths.NormalizePath(inputPath)
	outputPath = paths.NormalizePath(outputPath)

	var finishStep func(bool, string)
	if obs := f.opts.Observer; obs != nil && obs.DebugObserver != nil {
		finishStep = obs.DebugObserver.StartStep("stream_filter", "run_file", inputPath)
		defer func() {
			if err != nil {
				finishStep(false, err.Error())
			} else {
				finishStep(true, fmt.Sprintf("%d/%d lines matched", result.Matched, result.TotalLines))
			}
		}()
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, newError(err, OpStatInput, inputPath)
	}
	if info.IsDir() {
		return nil, &Error{Kind: KindIO, Op: OpOpenInput, Path: inputPath, Err: ErrIsDirectory}
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return nil, newError(err, OpOpenInput, inputPath)
	}
	defer in.Close()

	release, err := lockOutput(outputPath)
	if err != nil {
		return nil, err
	}
	defer release()

	// Truncated only after the lock is held.
	out, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, newError(err, OpOpenOutput, outputPath)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = newError(closeErr, OpCloseOutput, outputPath)
		}
	}()

	counters, runErr := f.Run(in, out)
	result = &Result{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Family:     f.Family(),
		Counters:   counters,
		DecodeMode: f.opts.DecodeMode.String(),
		Workers:    f.opts.Workers,
		Duration:   time.Since(start),
	}
	if runErr != nil {
		return result, attachPath(runErr, inputPath, outputPath)
	}
	return result, nil
}

// lockOutput takes an exclusive lock on outputPath itself, creating the
// file when needed without truncating it. The file is never removed.
func lockOutput(outputPath string) (func(), error) {
	lock := flock.New(lockTarget(outputPath),
		flock.SetFlag(os.O_WRONLY|os.O_CREATE),
		flock.SetPermissions(0o644))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, newError(err, OpLockOutput, outputPath)
	}
	if !locked {
		return nil, &Error{Kind: KindLocked, Op: OpLockOutput, Path: outputPath, Err: ErrLocked}
	}

	return func() {
		lock.Unlock()
	}, nil
}

// lockTarget returns the file to lock for outputPath. LockFileEx locks are
// mandatory, so on Windows a sidecar next to the output is locked instead.
func lockTarget(outputPath string) string {
	if platform.IsWindows() {
		return paths.LockPath(outputPath)
	}
	return outputPath
}

// attachPath fills in the file behind a stream error from Run
func attachPath(err error, inputPath, outputPath string) error {
	var fe *Error
	if !errors.As(err, &fe) {
		return newError(err, OpReadInput, inputPath)
	}
	if fe.Path == "" {
		switch fe.Op {
		case OpReadInput:
			fe.Path = inputPath
		default:
			fe.Path = outputPath
		}
	}
	return fe
}
