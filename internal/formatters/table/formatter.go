// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package table

import (
	"fmt"
	"time"

	"p2pkh-filter/internal/filter"
	"p2pkh-filter/internal/formatters"
	"p2pkh-filter/internal/formatters/shared"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Formatter renders the run summary as a two-column table
type Formatter struct{}

// NewFormatter creates a new table formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "table"
}

func (f *Formatter) Description() string {
	return "Bordered table summary for terminals"
}

func (f *Formatter) Format(result *filter.Result, options formatters.FormatterOptions) (string, error) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRow(table.Row{"Input", result.InputPath})
	tw.AppendRow(table.Row{"Output", result.OutputPath})
	tw.AppendRow(table.Row{"Total lines", humanize.Comma(int64(result.TotalLines))})
	tw.AppendRow(table.Row{result.Family + " addresses", humanize.Comma(int64(result.Matched))})
	tw.AppendRow(table.Row{"Match rate", fmt.Sprintf("%.4f%%", shared.MatchRate(result.Counters))})
	if options.Verbose {
		tw.AppendRow(table.Row{"Decode mode", result.DecodeMode})
		tw.AppendRow(table.Row{"Workers", result.Workers})
		tw.AppendRow(table.Row{"Elapsed", result.Duration.Round(time.Millisecond).String()})
		if options.RunID != "" {
			tw.AppendRow(table.Row{"Run ID", options.RunID})
		}
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render() + "\n", nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
