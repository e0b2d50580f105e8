// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package filter copies the lines of a text stream that a Classifier accepts
// to an output stream, one trimmed line per record.
package filter

import (
	"bufio"
	"io"

	"p2pkh-filter/internal/detector"
	"p2pkh-filter/internal/observability"
	"p2pkh-filter/internal/parallel"
	"p2pkh-filter/internal/textio"
)

const (
	// DefaultProgressInterval is the number of lines between progress reports
	DefaultProgressInterval = 1_000_000
	// DefaultBatchSize is the number of lines per batch in parallel mode
	DefaultBatchSize = 8192

	outputBufferSize = 64 * 1024
)

// Options tunes a Filter. Zero values select the defaults.
type Options struct {
	DecodeMode       textio.DecodeMode
	ProgressInterval uint64
	MaxLineBytes     int
	Workers          int // Values above 1 enable the ordered worker pool
	BatchSize        int

	// Diagnostics receives progress lines; nil disables them
	Diagnostics io.Writer
	Observer    *observability.StandardObserver
}

// Counters are the totals of a single run
type Counters struct {
	TotalLines uint64 `json:"total_lines" yaml:"total_lines"`
	Matched    uint64 `json:"matched" yaml:"matched"`
}

// Filter streams lines through a Classifier
type Filter struct {
	classifier detector.Classifier
	opts       Options
	progress   progressReporter
}

// New creates a Filter for classifier
func New(classifier detector.Classifier, opts Options) *Filter {
	if opts.ProgressInterval == 0 {
		opts.ProgressInterval = DefaultProgressInterval
	}
	if opts.MaxLineBytes <= 0 {
		opts.MaxLineBytes = textio.DefaultMaxLineBytes
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = DefaultBatchSize
	}

	return &Filter{
		classifier: classifier,
		opts:       opts,
		progress: progressReporter{
			w:        opts.Diagnostics,
			family:   classifier.Name(),
			interval: opts.ProgressInterval,
		},
	}
}

// Options returns the effective options after defaults were applied
func (f *Filter) Options() Options {
	return f.opts
}

// Family returns the name of the classifier being applied
func (f *Filter) Family() string {
	return f.classifier.Name()
}

// Run reads every line of in and writes the matching ones to out. Output is
// flushed before Run returns, including when reading fails part way through.
// Errors are *Error values with an empty Path.
func (f *Filter) Run(in io.Reader, out io.Writer) (Counters, error) {
	var finishTiming func(bool, map[string]interface{})
	if f.opts.Observer != nil {
		finishTiming = f.opts.Observer.StartTiming("stream_filter", "run", "")
	}

	scanner := textio.NewScanner(in, f.opts.DecodeMode, f.opts.MaxLineBytes)
	w := bufio.NewWriterSize(out, outputBufferSize)

	var counters Counters
	var err error
	if f.opts.Workers > 1 {
		counters, err = f.runParallel(scanner, w)
	} else {
		counters, err = f.runSequential(scanner, w)
	}

	if flushErr := w.Flush(); flushErr != nil && err == nil {
		err = newError(flushErr, OpWriteOutput, "")
	}

	if finishTiming != nil {
		metadata := map[string]interface{}{
			"total_lines": counters.TotalLines,
			"matched":     counters.Matched,
			"workers":     f.opts.Workers,
			"decode_mode": f.opts.DecodeMode.String(),
		}
		if err != nil {
			metadata["error"] = err.Error()
		}
		finishTiming(err == nil, metadata)
	}

	return counters, err
}

func (f *Filter) runSequential(scanner *bufio.Scanner, w *bufio.Writer) (Counters, error) {
	var counters Counters
	for scanner.Scan() {
		line := scanner.Text()
		if err := f.record(&counters, line, f.classifier.Classify(line), w); err != nil {
			return counters, err
		}
	}
	if err := scanner.Err(); err != nil {
		return counters, newError(err, OpReadInput, "")
	}
	return counters, nil
}

// runParallel classifies on the worker pool while counting, reporting and
// writing stay on this goroutine in input order.
func (f *Filter) runParallel(scanner *bufio.Scanner, w *bufio.Writer) (Counters, error) {
	batchSize := f.opts.BatchSize
	source := func() (*parallel.Batch, error) {
		lines := make([]string, 0, batchSize)
		for len(lines) < batchSize && scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return parallel.NewBatch(lines), newError(err, OpReadInput, "")
		}
		if len(lines) == 0 {
			return nil, nil
		}
		return parallel.NewBatch(lines), nil
	}

	var counters Counters
	sink := func(b *parallel.Batch) error {
		for i, line := range b.Lines {
			if err := f.record(&counters, line, b.Verdicts[i], w); err != nil {
				return err
			}
		}
		return nil
	}

	pool := parallel.NewWorkerPool(f.opts.Workers, f.classifier, f.opts.Observer)
	_, err := pool.Run(source, sink)
	return counters, err
}

// record accounts for one line and writes it when matched. The progress
// report for line N is taken before line N's match is counted.
func (f *Filter) record(counters *Counters, line string, matched bool, w *bufio.Writer) error {
	counters.TotalLines++
	if f.progress.due(*counters) {
		f.progress.report(*counters)
		if f.opts.Observer != nil && f.opts.Observer.DebugObserver != nil {
			f.opts.Observer.DebugObserver.LogMetric("stream_filter", "lines_processed", counters.TotalLines)
		}
	}

	if matched {
		if _, err := w.WriteString(detector.TrimSpace(line)); err != nil {
			return newError(err, OpWriteOutput, "")
		}
		if err := w.WriteByte('\n'); err != nil {
			return newError(err, OpWriteOutput, "")
		}
		counters.Matched++
	}
	return nil
}
