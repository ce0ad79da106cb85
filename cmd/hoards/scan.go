// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/scan"
)

var (
	scanDryRun bool

	scanCmd = &cobra.Command{
		Use:   "scan",
		Short: "Discover installed tools and add them to the catalog",
		Long: `Discover installed tools and add them to the catalog.

A scan layers three passes: a curated table of well-known tools, every
enabled package manager (cargo, apt, pip, npm, brew, flatpak), and a
sweep of common binary directories for anything untracked. Newly found
tools get a description from their registry, man page, or --help.`,
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			report, err := scan.Scan(cmd.Context(), store, appConfig.Sources, scanDryRun)
			if err != nil {
				return err
			}
			for _, f := range report.Added {
				fmt.Printf("%s %-24s %s\n", SuccessStyle.Render("+"), CmdStyle.Render(f.Tool.Name), SubtitleStyle.Render(f.Origin))
			}
			verb := "added"
			if scanDryRun {
				verb = "would add"
			}
			fmt.Printf("%s %d tools (%d already tracked, %d descriptions fetched)\n",
				verb, len(report.Added), report.Skipped, report.Described)
			return nil
		}),
	}

	syncDryRun bool

	syncCmd = &cobra.Command{
		Use:   "sync",
		Short: "Reconcile installed flags with what is actually on PATH",
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			changes, err := scan.SyncStatus(cmd.Context(), store, syncDryRun)
			if err != nil {
				return err
			}
			if len(changes) == 0 {
				fmt.Println(SuccessStyle.Render("Catalog is in sync."))
				return nil
			}
			for _, c := range changes {
				if c.Installed {
					fmt.Printf("%s %s is now installed\n", SuccessStyle.Render("+"), CmdStyle.Render(c.Name))
				} else {
					fmt.Printf("%s %s is gone from PATH\n", ErrorStyle.Render("-"), CmdStyle.Render(c.Name))
				}
			}
			if syncDryRun {
				fmt.Println(SubtitleStyle.Render("dry run: nothing written"))
			}
			return nil
		}),
	}

	fetchDryRun bool

	fetchDescriptionsCmd = &cobra.Command{
		Use:   "fetch-descriptions",
		Short: "Fill in missing descriptions from registries, man pages, and --help",
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			updates, err := scan.FetchDescriptions(cmd.Context(), store, fetchDryRun)
			if err != nil {
				return err
			}
			if len(updates) == 0 {
				fmt.Println(SuccessStyle.Render("Every tool has a description."))
				return nil
			}
			found := 0
			for _, u := range updates {
				if u.Description == "" {
					continue
				}
				found++
				fmt.Printf("%-24s %s %s\n", CmdStyle.Render(u.Name), u.Description, SubtitleStyle.Render("("+u.Origin+")"))
			}
			fmt.Printf("%d of %d descriptions found\n", found, len(updates))
			return nil
		}),
	}
)

func init() {
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "report what would change without writing")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "report what would change without writing")
	fetchDescriptionsCmd.Flags().BoolVar(&fetchDryRun, "dry-run", false, "report what would change without writing")
}
