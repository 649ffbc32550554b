// SPDX-License-Identifier: MPL-2.0

// Package cli contains all CLI commands for flsorter.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"flsorter/internal/config"

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

	// verbose enables verbose output
	verbose bool
	// cfgDir allows specifying a custom config directory
	cfgDir string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "flsorter",
		Short: "Sort plugins into FL Studio plugin database groups",
		Long: TitleStyle.Render("flsorter") + SubtitleStyle.Render(" - FL Studio plugin sorter") + `

flsorter keeps named groups of plugins as TOML definition files and
materializes them inside the FL Studio plugin database by copying the
.fst shim of every installed plugin a group names. The unsort command
reverses the operation.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'flsorter generate <folder>' to build groups from a plugin folder
  2. Run 'flsorter sort' to copy the shims into the plugin database
  3. Run 'flsorter unsort' to undo a previous sort`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default is platform-specific, e.g. ~/.config/flsorter)")

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(unsortCmd)
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

// loadConfig builds the process-wide configuration and surfaces any
// duplicate-group warnings recorded while loading the registries.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigDir: cfgDir})
	if err != nil {
		return nil, err
	}

	for _, reg := range cfg.Registries() {
		for _, w := range reg.Warnings() {
			log.Warn("duplicate plugin group name, later definition wins",
				"category", reg.Category().DisplayName(),
				"name", w.Name,
				"kept", w.File,
				"replaced", w.Replaced)
		}
	}

	return cfg, nil
}
