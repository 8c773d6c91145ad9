// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for hatk.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"hatk-cli/internal/config"
	"hatk-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output.
	verbose bool
	// cfgFile allows specifying a custom config file.
	cfgFile string
	// manifestPath allows specifying a custom manifest file.
	manifestPath string

	// configProvider loads the configuration at startup. Tests substitute
	// stub providers to run commands against fixed configs.
	configProvider config.Provider = config.NewProvider()

	// loadedConfig is the configuration loaded at startup; nil when
	// loading failed.
	loadedConfig *config.Config

	// rootCmd represents the base command when called without any subcommands.
	rootCmd = &cobra.Command{
		Use:   "hatk",
		Short: "Harmonic analysis toolkit for weekly power quality reports",
		Long: TitleStyle.Render("hatk") + SubtitleStyle.Render(" - Harmonic analysis toolkit") + `

hatk analyzes weekly (7-day) power quality harmonic reports: report
metadata, daily THD/TDD compliance, harmonic tables with regulatory
limit checks, voltage event summaries, and graph extraction from DOCX
documents, with Excel and CSV exports.

A toolkit manifest ('hatkfile' in CUE or TOML format) describes the
analysis session: its modules, helper commands, setup hooks and
dependencies.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a hatkfile in your project directory: hatk init
  2. Drop weekly report PDFs into the reports directory
  3. Start an analysis session with: hatk serve

` + SubtitleStyle.Render("Examples:") + `
  hatk serve                       Start the analysis session server
  hatk analyze "7 Days report.pdf" One-shot weekly summary in the terminal
  hatk tables report1.pdf          Extract harmonic tables to Excel
  hatk graphs report.docx          Extract graph images from a DOCX
  hatk check                       Validate manifest and dependencies`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/hatk/config.cue)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(graphsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in the config file and HATK_* environment
// variables.
func initRootConfig() {
	cfg, err := configProvider.Load(context.Background(), config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	loadedConfig = cfg

	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
}

// currentConfig returns the loaded configuration, falling back to the
// defaults when loading failed.
func currentConfig() *config.Config {
	if loadedConfig != nil {
		return loadedConfig
	}
	return config.DefaultConfig()
}

// newLogger builds the CLI logger; debug level is gated by --verbose.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: prefix})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// formatErrorForDisplay formats an error for user display. ActionableError
// values render with their suggestions; verbose mode shows the full chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderIssue prints the catalog help page for a known fatal condition.
func renderIssue(id issue.Id) {
	known := issue.Lookup(id)
	if known == nil {
		return
	}
	page, err := known.Render("dark")
	if err != nil {
		fmt.Fprintln(os.Stderr, string(known.MarkdownMsg()))
		return
	}
	fmt.Fprintln(os.Stderr, page)
}
