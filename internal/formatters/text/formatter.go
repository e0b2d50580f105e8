// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"
	"time"

	"p2pkh-filter/internal/filter"
	"p2pkh-filter/internal/formatters"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct{}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable summary with colors"
}

func (f *Formatter) Format(result *filter.Result, options formatters.FormatterOptions) (string, error) {
	colors := newPalette(options.NoColor)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(colors["green"].Sprint("✓ Filtering complete!"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Total lines processed: %s\n", colors["white"].Sprint(humanize.Comma(int64(result.TotalLines))))
	fmt.Fprintf(&b, "  %s addresses found: %s\n", result.Family, colors["cyan"].Sprint(humanize.Comma(int64(result.Matched))))
	fmt.Fprintf(&b, "  Output saved to: %s\n", result.OutputPath)

	if options.Verbose {
		fmt.Fprintf(&b, "  Decode mode: %s\n", result.DecodeMode)
		fmt.Fprintf(&b, "  Workers: %d\n", result.Workers)
		fmt.Fprintf(&b, "  Elapsed: %s\n", result.Duration.Round(time.Millisecond))
		if options.RunID != "" {
			fmt.Fprintf(&b, "  Run ID: %s\n", colors["yellow"].Sprint(options.RunID))
		}
	}

	return b.String(), nil
}

func newPalette(noColor bool) map[string]*color.Color {
	colors := map[string]*color.Color{
		"green":  color.New(color.FgGreen, color.Bold),
		"cyan":   color.New(color.FgCyan),
		"yellow": color.New(color.FgYellow),
		"white":  color.New(color.FgWhite, color.Bold),
	}
	for _, c := range colors {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return colors
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
