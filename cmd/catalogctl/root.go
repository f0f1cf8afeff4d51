// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for catalogctl.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"catalogctl/internal/config"

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

	// verbose enables debug logging
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// repoRoot anchors roots, docs dirs and the target document
	repoRoot string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "catalogctl",
		Short: "Repository maintenance for script catalogs",
		Long: TitleStyle.Render("catalogctl") + SubtitleStyle.Render(" - repository maintenance for script catalogs") + `

catalogctl keeps a repository's script index honest. It scans the
configured script roots, extracts one-line synopses from PowerShell
comment-help blocks, shell comment headers, and Python docstrings, and
regenerates the marker-delimited catalog block in the README.

` + SubtitleStyle.Render("Examples:") + `
  catalogctl build            Regenerate the catalog block in the README
  catalogctl build --dry-run  Print the rendered block without writing
  catalogctl lint             Fail when scripts lack synopsis headers
  catalogctl stamp            Replace the commit placeholder with the short SHA
  catalogctl config show      Show the effective configuration`,
	}
)

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <repo>/catalogctl.toml)")
	rootCmd.PersistentFlags().StringVarP(&repoRoot, "repo", "r", ".", "repository root to operate on")

	// Add subcommands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(stampCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initLogging routes slog through the charm logger so library warnings share
// the CLI's look.
func initLogging() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Level:           log.WarnLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	slog.SetDefault(slog.New(logger))
}

// loadConfig resolves the effective configuration for the --repo root,
// honoring the --config override.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}
	cfg, err := config.Load(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}
