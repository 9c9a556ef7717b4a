// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"uberjar-cli/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "uberjar",
		Short: "Bundle an Eclipse update site into an executable uber jar",
		Long: TitleStyle.Render("uberjar") + SubtitleStyle.Render(" - update site to executable jar") + `

uberjar merges the plugin jars of a self-contained Eclipse update site
into a single executable uber jar (no shading), optionally split into
per-platform variants when platform-specific SWT fragments are present,
and optionally wrapped in self-executing launcher scripts.

Same-path collisions between plugins are resolved by pattern-based
policies: known mergeable files are appended, known duplicates keep the
first writer, and anything else is reported as a conflict that aborts
the build.

` + SubtitleStyle.Render("Examples:") + `
  uberjar build ./site mytool org.example.Main ./dist ./build
  uberjar build -s --java8 ./site mytool org.example.Main ./dist ./build
  uberjar config show`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/uberjar/config.toml)")

	// Add subcommands
	rootCmd.AddCommand(buildCmd)
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
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig wires the --config flag into the config loader.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}
}

// newLogger builds the logger used by the build pipeline. Warnings and
// progress go to stderr; --verbose lowers the level to debug.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "uberjar",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
