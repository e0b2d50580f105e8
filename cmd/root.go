// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"p2pkh-filter/internal/config"
	"p2pkh-filter/internal/filter"
	"p2pkh-filter/internal/formatters"
	"p2pkh-filter/internal/help"
	"p2pkh-filter/internal/observability"
	"p2pkh-filter/internal/parallel"
	"p2pkh-filter/internal/paths"
	"p2pkh-filter/internal/platform"
	"p2pkh-filter/internal/textio"
	"p2pkh-filter/internal/validators/p2pkh"
	"p2pkh-filter/internal/version"

	// Import formatters to register them
	_ "p2pkh-filter/internal/formatters/json"
	_ "p2pkh-filter/internal/formatters/table"
	_ "p2pkh-filter/internal/formatters/text"
	_ "p2pkh-filter/internal/formatters/yaml"
)

// cliFlags holds command line flag values
type cliFlags struct {
	output           string
	configFile       string
	profile          string
	format           string
	noColor          bool
	debug            bool
	verbose          bool
	workers          int
	batchSize        int
	progressInterval int64
	strictDecode     bool
	listChecks       bool
	listProfiles     bool
	listFormats      bool
}

func newRootCommand() *cobra.Command {
	var flags cliFlags

	rootCmd := &cobra.Command{
		Use:   "p2pkh-filter INPUT [-o OUTPUT]",
		Short: "Copy lines shaped like Legacy P2PKH Bitcoin addresses to a new file",
		Long: `p2pkh-filter reads INPUT line by line and writes every line that looks like a
Legacy P2PKH Bitcoin address (starts with '1', 26 to 35 Base58 characters) to
OUTPUT, one address per line. Checksums are not verified.`,
		Example: `  p2pkh-filter addresses.txt
  p2pkh-filter addresses.txt -o p2pkh-only.txt
  p2pkh-filter addresses.txt --workers 8 --format table`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if flags.listChecks || flags.listProfiles || flags.listFormats {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &flags, args)
		},
	}
	rootCmd.SetVersionTemplate(version.Info() + "\n")

	f := rootCmd.Flags()
	f.StringVarP(&flags.output, "output", "o", paths.DefaultOutputFile, "Output file for matching lines")
	f.StringVarP(&flags.configFile, "config", "c", "", "Configuration file path (default: discovered p2pkh-filter.yaml)")
	f.StringVar(&flags.profile, "profile", "", "Configuration profile to apply")
	f.StringVar(&flags.format, "format", config.DefaultFormat, "Summary format: "+strings.Join(config.ValidFormats, ", "))
	f.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	f.BoolVar(&flags.debug, "debug", false, "Emit debug events with timing to stderr")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Include run settings and timing in the summary")
	f.IntVar(&flags.workers, "workers", config.DefaultWorkers, "Classification workers; values above 1 classify batches in parallel, 0 sizes to the CPU count")
	f.IntVar(&flags.batchSize, "batch-size", config.DefaultBatchSize, "Lines per batch when workers > 1")
	f.Int64Var(&flags.progressInterval, "progress-interval", config.DefaultProgressInterval, "Lines between progress reports")
	f.BoolVar(&flags.strictDecode, "strict-decode", false, "Fail on invalid UTF-8 instead of dropping the bad bytes")
	f.BoolVar(&flags.listChecks, "list-checks", false, "Describe the address check and exit")
	f.BoolVar(&flags.listProfiles, "list-profiles", false, "List profiles in the configuration file and exit")
	f.BoolVar(&flags.listFormats, "list-formats", false, "List summary formats and exit")

	return rootCmd
}

func run(cmd *cobra.Command, flags *cliFlags, args []string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	if flags.listFormats {
		fmt.Fprintln(stdout, "Available formats:")
		for _, line := range formatters.Describe() {
			fmt.Fprintf(stdout, "  - %s\n", line)
		}
		return nil
	}

	configPath := flags.configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg := loadConfiguration(configPath, stderr)

	if flags.listProfiles {
		printProfiles(stdout, cfg, configPath)
		return nil
	}

	settings, err := cfg.Resolve(flags.profile)
	if err != nil {
		return err
	}
	applyFlags(cmd, flags, &settings)
	if err := config.ValidateSettings(settings); err != nil {
		return err
	}
	if settings.Workers == 0 {
		settings.Workers = parallel.RecommendedWorkers()
	}

	noColor := colorDisabled(settings.NoColor, stderr)
	classifier := p2pkh.NewValidator()

	if flags.listChecks {
		helpSystem := help.NewSystem(stdout, colorDisabled(settings.NoColor, stdout))
		helpSystem.RegisterProvider(classifier)
		helpSystem.ShowChecksHelp()
		for _, name := range helpSystem.CheckNames() {
			helpSystem.ShowCheckHelp(name)
		}
		return nil
	}

	decodeMode, err := textio.ParseDecodeMode(settings.DecodeMode)
	if err != nil {
		return err
	}

	var observer *observability.StandardObserver
	if settings.Debug {
		observer = observability.NewDebugMode(stderr)
		observer.DebugObserver.LogDetail("config", describeConfigSource(configPath, flags.profile))
	}

	input := paths.NormalizePath(args[0])
	output := paths.NormalizePath(settings.Output)

	if _, err := os.Stat(input); err != nil && platform.GetErrorHandler().IsNotFoundError(err) {
		return &runError{err: err, message: fmt.Sprintf("Error: Input file '%s' does not exist.", input)}
	}

	fmt.Fprintf(stderr, "Filtering %s addresses from '%s'...\n", classifier.Name(), input)
	fmt.Fprintf(stderr, "Output will be saved to '%s'...\n\n", output)

	runFilter := filter.New(classifier, filter.Options{
		DecodeMode:       decodeMode,
		ProgressInterval: uint64(settings.ProgressInterval),
		MaxLineBytes:     settings.MaxLineBytes,
		Workers:          settings.Workers,
		BatchSize:        settings.BatchSize,
		Diagnostics:      stderr,
		Observer:         observer,
	})

	result, err := runFilter.RunFile(input, output)
	if err != nil {
		return &runError{err: err, message: describeRunError(err, input, output)}
	}

	formatOptions := formatters.FormatterOptions{
		NoColor: noColor,
		Verbose: flags.verbose || settings.Debug,
	}
	if observer != nil {
		formatOptions.RunID = observer.RunID()
	}
	summary, err := formatters.Export(settings.Format, result, formatOptions)
	if err != nil {
		return err
	}
	fmt.Fprint(stderr, summary)
	return nil
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configPath string, stderr io.Writer) *config.Config {
	// Load configuration (will use defaults if no file was found)
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("") // Load default config
	}
	return cfg
}

func describeConfigSource(configPath, profile string) string {
	source := "built-in defaults"
	if configPath != "" {
		source = configPath
	}
	if profile != "" {
		return fmt.Sprintf("settings from %s, profile %s", source, profile)
	}
	return "settings from " + source
}

// applyFlags overrides resolved settings with flags the user set explicitly
func applyFlags(cmd *cobra.Command, flags *cliFlags, settings *config.Settings) {
	changed := cmd.Flags().Changed

	if changed("output") {
		settings.Output = flags.output
	}
	if changed("format") {
		settings.Format = flags.format
	}
	if changed("workers") {
		settings.Workers = flags.workers
	}
	if changed("batch-size") {
		settings.BatchSize = flags.batchSize
	}
	if changed("progress-interval") {
		settings.ProgressInterval = flags.progressInterval
	}
	if changed("strict-decode") {
		settings.DecodeMode = textio.DecodeBestEffort.String()
		if flags.strictDecode {
			settings.DecodeMode = textio.DecodeStrict.String()
		}
	}
	if changed("no-color") {
		settings.NoColor = flags.noColor
	}
	if changed("debug") {
		settings.Debug = flags.debug
	}
}

// printProfiles lists the profiles of the loaded configuration
func printProfiles(w io.Writer, cfg *config.Config, configPath string) {
	if configPath == "" {
		fmt.Fprintln(w, "No configuration file found. No profiles available.")
		return
	}

	profiles := cfg.ListProfiles()
	if len(profiles) == 0 {
		fmt.Fprintln(w, "No profiles defined in configuration file.")
		return
	}

	fmt.Fprintln(w, "Available profiles:")
	for _, name := range profiles {
		profile := cfg.GetProfile(name)
		if profile != nil && profile.Description != "" {
			fmt.Fprintf(w, "  - %s: %s\n", name, profile.Description)
		} else {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}
}

// colorDisabled reports whether w should receive plain text
func colorDisabled(requested bool, w io.Writer) bool {
	if requested || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return true
	}
	f, ok := w.(*os.File)
	return !ok || !isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// runError carries the one-line message printed for a failed run
type runError struct {
	err     error
	message string
}

func (e *runError) Error() string {
	return e.message
}

func (e *runError) Unwrap() error {
	return e.err
}

// describeRunError renders a filter failure the way users see it
func describeRunError(err error, input, output string) string {
	switch filter.KindOf(err) {
	case filter.KindInputNotFound:
		return fmt.Sprintf("Error: Input file '%s' does not exist.", input)
	case filter.KindPermission:
		return fmt.Sprintf("Error: Permission denied. Cannot read '%s' or write to '%s'.", input, output)
	case filter.KindLocked:
		return fmt.Sprintf("Error: Output '%s' is locked by another run.", output)
	case filter.KindDecode:
		return fmt.Sprintf("Error: %v", err)
	}

	var fe *filter.Error
	if errors.As(err, &fe) {
		err = platform.WrapFileError(fe.Err, fe.Path, fe.Op)
	}
	return fmt.Sprintf("Error: OS error - %v", err)
}

// errorMessage returns the line printed to stderr for err
func errorMessage(err error) string {
	var re *runError
	if errors.As(err, &re) {
		return re.message
	}
	return fmt.Sprintf("Error: %v", err)
}
