// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for hoards.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/config"
	"hoards-cli/internal/issue"
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

	// appConfig is the loaded configuration, shared by all commands.
	appConfig = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "hoards",
		Short: "A catalog and lifecycle manager for CLI tools",
		Long: TitleStyle.Render("hoards") + SubtitleStyle.Render(" - A catalog and lifecycle manager for CLI tools") + `

hoards tracks every CLI tool on your system regardless of how it was
installed: cargo, apt, pip, npm, brew, flatpak, or by hand. It scans
package managers and PATH, keeps descriptions and categories, records
shell usage, and plans safe install/uninstall/upgrade commands.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'hoards scan' to discover what is already installed
  2. Browse with 'hoards list' and 'hoards search <query>'
  3. Install something new with 'hoards install <tool>'

` + SubtitleStyle.Render("Examples:") + `
  hoards scan               Discover installed tools
  hoards list --installed   List tools that are present
  hoards show ripgrep       Show one tool in detail
  hoards usage scan         Ingest shell history into usage stats
  hoards discover "fuzzy finder"   Search external registries`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/hoards/config.toml)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(labelCmd)
	rootCmd.AddCommand(labelsCmd)
	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(fetchDescriptionsCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(checkUpdatesCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(cheatsheetCmd)
	rootCmd.AddCommand(statsCmd)
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

// initRootConfig loads the configuration before any command runs.
func initRootConfig() {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	cfg, err := config.NewProvider().Load(context.Background(), config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
	if err != nil {
		renderIssue(issue.ConfigLoadFailedId)
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return
	}
	appConfig = cfg

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// renderIssue prints the rendered help text for a known failure mode to
// stderr, ahead of the error itself.
func renderIssue(id issue.Id) {
	if rendered, err := issue.Get(id).Render(glamourStyle()); err == nil {
		fmt.Fprint(os.Stderr, rendered)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// openStore opens the catalog database at its default location.
func openStore() (*catalog.Store, error) {
	path, err := catalog.DefaultPath()
	if err != nil {
		return nil, issue.WrapWithOperation(err, "locate catalog database")
	}
	store, err := catalog.Open(path)
	if err != nil {
		renderIssue(issue.DatabaseInitFailedId)
		return nil, issue.NewErrorContext().
			WithOperation("open catalog database").
			WithResource(path).
			WithSuggestion("Check that the directory is writable").
			WithSuggestion("Run 'hoards scan' to create a fresh catalog").
			Wrap(err).
			BuildError()
	}
	return store, nil
}

// withStore wraps a RunE handler with catalog open/close bookkeeping.
func withStore(fn func(cmd *cobra.Command, args []string, store *catalog.Store) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		return fn(cmd, args, store)
	}
}
