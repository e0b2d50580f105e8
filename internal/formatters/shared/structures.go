// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"p2pkh-filter/internal/filter"
	"p2pkh-filter/internal/formatters"
)

// StatusComplete is the status of a run that reached end of input
const StatusComplete = "complete"

// Summary is the run summary shared by the structured formatters
type Summary struct {
	Status     string  `json:"status" yaml:"status"`
	RunID      string  `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Family     string  `json:"family" yaml:"family"`
	Input      string  `json:"input" yaml:"input"`
	Output     string  `json:"output" yaml:"output"`
	TotalLines uint64  `json:"total_lines" yaml:"total_lines"`
	Matched    uint64  `json:"matched" yaml:"matched"`
	MatchRate  float64 `json:"match_rate_percent" yaml:"match_rate_percent"`
	DecodeMode string  `json:"decode_mode" yaml:"decode_mode"`
	Workers    int     `json:"workers" yaml:"workers"`
	DurationMs int64   `json:"duration_ms" yaml:"duration_ms"`
}

// NewSummary converts a run result into its reportable form
func NewSummary(result *filter.Result, options formatters.FormatterOptions) Summary {
	return Summary{
		Status:     StatusComplete,
		RunID:      options.RunID,
		Family:     result.Family,
		Input:      result.InputPath,
		Output:     result.OutputPath,
		TotalLines: result.TotalLines,
		Matched:    result.Matched,
		MatchRate:  MatchRate(result.Counters),
		DecodeMode: result.DecodeMode,
		Workers:    result.Workers,
		DurationMs: result.Duration.Milliseconds(),
	}
}

// MatchRate returns matched lines as a percentage of all lines
func MatchRate(c filter.Counters) float64 {
	if c.TotalLines == 0 {
		return 0
	}
	return float64(c.Matched) * 100 / float64(c.TotalLines)
}
