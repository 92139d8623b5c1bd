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

	"plugpack/internal/config"
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
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg holds the loaded packaging defaults; flags override per invocation.
	cfg = config.DefaultConfig()

	// logger is the shared CLI logger. Failure logs always carry platform
	// and stage fields.
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "plugpack",
	})

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "plugpack",
		Short: "Release packaging for audio-plugin builds",
		Long: TitleStyle.Render("plugpack") + SubtitleStyle.Render(" - Release packaging for audio-plugin builds") + `

plugpack turns a version-control tag plus per-platform build outputs into
correctly named, correctly permissioned ZIP archives ready for publication.

Windows build outputs are a single renamed dynamic library and get plain
deflate compression. macOS build outputs are a .vst3 directory bundle whose
symbolic links and executable bits must survive the archive — plugpack
stores links as links and keeps POSIX permission bits on every member.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Build the plugin for each target platform
  2. Bundle each build output:  plugpack bundle --tag v1.0.4 ...
  3. Or do the whole set:       plugpack release --tag v1.0.4 ...

` + SubtitleStyle.Render("Examples:") + `
  plugpack resolve v1.0.4                   Print the resolved version
  plugpack name --tag v1.0.4 \
    --product tape_delay --platform macos   Print the canonical archive name
  plugpack bundle --tag v1.0.4 \
    --product tape_delay --platform macos \
    --source ./bundled/tape_delay.vst3      Produce one platform archive
  plugpack release --tag v1.0.4 \
    --product tape_delay \
    --source macos=./mac/tape_delay.vst3 \
    --source windows=./win/tape_delay.vst3  Produce and compose the full set`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./plugpack.toml)")

	// Add subcommands
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(releaseCmd)
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
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitError *ExitError
		if errors.As(err, &exitError) {
			os.Exit(exitError.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user; defaults still apply.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+err.Error())
		return
	}
	cfg = loaded

	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
}
