// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"sort"
	"strings"

	"p2pkh-filter/internal/filter"
)

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	NoColor bool   // Whether to disable colored output
	Verbose bool   // Whether to include run settings and timing
	RunID   string // Observability run identifier, when one exists
}

// Formatter interface defines methods that all summary formatters must implement
type Formatter interface {
	// Format renders the summary of a completed run
	Format(result *filter.Result, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text", "table")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names in sorted order
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns "name: description" lines for every registered formatter
func (r *Registry) Describe() []string {
	names := r.List()
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s: %s", name, r.formatters[name].Description()))
	}
	return lines
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Describe is a convenience function to describe all formatters in the default registry
func Describe() []string {
	return DefaultRegistry.Describe()
}

// Export renders result with the named formatter from the default registry
func Export(format string, result *filter.Result, options FormatterOptions) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(List(), ", "))
	}
	if result == nil {
		return "", fmt.Errorf("no result to format")
	}
	return formatter.Format(result, options)
}
