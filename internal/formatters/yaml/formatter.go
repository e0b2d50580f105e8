// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"fmt"

	"p2pkh-filter/internal/filter"
	"p2pkh-filter/internal/formatters"
	"p2pkh-filter/internal/formatters/shared"

	"gopkg.in/yaml.v3"
)

// Formatter implements YAML output formatting
type Formatter struct{}

// NewFormatter creates a new YAML formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "yaml"
}

func (f *Formatter) Description() string {
	return "YAML summary, same fields as the JSON output"
}

func (f *Formatter) Format(result *filter.Result, options formatters.FormatterOptions) (string, error) {
	// Same structure as the JSON formatter
	summary := shared.NewSummary(result, options)

	yamlData, err := yaml.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("error formatting YAML: %w", err)
	}
	return string(yamlData), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
