// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// CheckInfo contains standardized information about a check
type CheckInfo struct {
	Name                string   // Name of the check (e.g., "P2PKH")
	ShortDescription    string   // Short description for the checks list
	DetailedDescription string   // Detailed description of what the check does
	Patterns            []string // Rules the check applies
	SupportedFormats    []string // Input formats handled
	ConfigurationInfo   string   // Information about how to configure the check
	Examples            []string // Sample inputs and their outcome
}

// Provider defines the interface for help content providers
type Provider interface {
	GetCheckInfo() CheckInfo
}

// System manages help content for the application
type System struct {
	providers map[string]Provider
	out       io.Writer
	colors    map[string]*color.Color
}

// NewSystem creates a new help system writing to out
func NewSystem(out io.Writer, noColor bool) *System {
	colors := map[string]*color.Color{
		"title":    color.New(color.FgWhite, color.Bold),
		"header":   color.New(color.FgBlue, color.Bold),
		"item":     color.New(color.FgCyan),
		"emphasis": color.New(color.FgWhite, color.Bold),
		"negative": color.New(color.FgRed),
		"example":  color.New(color.FgMagenta),
	}
	if noColor {
		for _, c := range colors {
			c.DisableColor()
		}
	}

	return &System{
		providers: make(map[string]Provider),
		out:       out,
		colors:    colors,
	}
}

// RegisterProvider adds a help provider to the system
func (h *System) RegisterProvider(provider Provider) {
	info := provider.GetCheckInfo()
	h.providers[strings.ToLower(info.Name)] = provider
}

// CheckNames returns the registered check names in alphabetical order
func (h *System) CheckNames() []string {
	names := make([]string, 0, len(h.providers))
	for _, provider := range h.providers {
		names = append(names, provider.GetCheckInfo().Name)
	}
	sort.Strings(names)
	return names
}

// ShowChecksHelp displays a one-line summary of every registered check
func (h *System) ShowChecksHelp() {
	h.colors["title"].Fprintln(h.out, "Available Checks")
	fmt.Fprintln(h.out, "================")
	fmt.Fprintln(h.out)

	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  CHECK\tDESCRIPTION")
	fmt.Fprintln(w, "  -----\t-----------")
	for _, name := range h.CheckNames() {
		info := h.providers[strings.ToLower(name)].GetCheckInfo()
		fmt.Fprintf(w, "  %s\t%s\n", info.Name, info.ShortDescription)
	}
	w.Flush()
	fmt.Fprintln(h.out)
}

// ShowCheckHelp displays detailed help for a specific check
func (h *System) ShowCheckHelp(checkName string) bool {
	provider, exists := h.providers[strings.ToLower(checkName)]
	if !exists {
		h.colors["negative"].Fprintf(h.out, "Error: Check '%s' not found.\n", checkName)
		return false
	}

	info := provider.GetCheckInfo()

	h.colors["title"].Fprintf(h.out, "%s Check\n", info.Name)
	fmt.Fprintln(h.out, strings.Repeat("=", len(info.Name)+6))
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, info.DetailedDescription)
	fmt.Fprintln(h.out)

	h.list("RULES:", info.Patterns)
	h.list("SUPPORTED INPUT:", info.SupportedFormats)

	if info.ConfigurationInfo != "" {
		h.colors["header"].Fprintln(h.out, "CONFIGURATION:")
		fmt.Fprintln(h.out, info.ConfigurationInfo)
		fmt.Fprintln(h.out)
	}

	if len(info.Examples) > 0 {
		h.colors["header"].Fprintln(h.out, "EXAMPLES:")
		for _, example := range info.Examples {
			fmt.Fprint(h.out, "  ")
			h.colors["example"].Fprintln(h.out, example)
		}
	}

	return true
}

func (h *System) list(header string, items []string) {
	if len(items) == 0 {
		return
	}
	h.colors["header"].Fprintln(h.out, header)
	for _, item := range items {
		fmt.Fprint(h.out, "  - ")
		h.colors["item"].Fprintln(h.out, item)
	}
	fmt.Fprintln(h.out)
}
