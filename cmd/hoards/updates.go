// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/issue"
	"hoards-cli/internal/update"
)

var (
	checkUpdatesSource string

	checkUpdatesCmd = &cobra.Command{
		Use:   "check-updates",
		Short: "Check package managers for available upgrades",
		Long: `Check package managers for available upgrades.

Also consults crates.io, PyPI, and npm for tools installed through apt
or snap: distribution packages often lag, and a newer version on a
language registry is worth a migration.`,
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			ctx := cmd.Context()

			var updates []update.Update
			if checkUpdatesSource != "" {
				src := catalog.ParseSource(checkUpdatesSource)
				if src == catalog.SourceUnknown {
					return fmt.Errorf("unknown source %q", checkUpdatesSource)
				}
				var err error
				updates, err = update.CheckOutdated(ctx, src)
				if err != nil {
					renderIssue(issue.RegistryUnreachableId)
					return err
				}
			} else {
				updates = update.CheckAllOutdated(ctx, appConfig.Sources)
			}

			if len(updates) == 0 {
				fmt.Println(SuccessStyle.Render("Everything is up to date."))
			}
			for _, u := range updates {
				fmt.Printf("%-24s %s -> %s %s\n", CmdStyle.Render(u.Name), u.Current,
					SuccessStyle.Render(u.Latest), SubtitleStyle.Render("("+u.Source.String()+")"))
			}

			// Cross-source opportunities for distribution-packaged tools.
			suggestions := update.CheckCrossSource(ctx, distroTools(cmd, store))
			if len(suggestions) > 0 {
				fmt.Println(TitleStyle.Render("Available from other sources"))
				for _, s := range suggestions {
					fmt.Printf("%-24s %s %s -> %s %s  %s\n", CmdStyle.Render(s.Name),
						s.CurrentSource, s.CurrentVersion,
						s.BetterSource, SuccessStyle.Render(s.BetterVersion),
						SubtitleStyle.Render("(hoards upgrade "+s.Name+" --to "+s.BetterSource.String()+")"))
				}
			}
			return nil
		}),
	}

	migrateFrom  string
	migrateTo    string
	migrateApply bool

	migrateCmd = &cobra.Command{
		Use:   "migrate --from <source> --to <source>",
		Short: "Move tools between package managers",
		Long: `Move tools between package managers, e.g. from apt packages to
cargo-installed binaries. Without --apply this only lists candidates:
tools installed via --from that the --to registry serves at the same or
a newer version.`,
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			ctx := cmd.Context()
			from := catalog.ParseSource(migrateFrom)
			to := catalog.ParseSource(migrateTo)
			if from == catalog.SourceUnknown || to == catalog.SourceUnknown {
				return fmt.Errorf("--from and --to must name known sources")
			}

			tools, err := store.ListTools(true, "")
			if err != nil {
				return err
			}
			var installed []update.InstalledTool
			for _, t := range tools {
				if t.Source != from {
					continue
				}
				installed = append(installed, update.InstalledTool{
					Name:    t.Name,
					Version: installedVersionOrEmpty(ctx, t),
					Source:  t.Source,
				})
			}

			candidates := update.MigrationCandidates(ctx, installed, from, to)
			if len(candidates) == 0 {
				fmt.Printf("Nothing to migrate from %s to %s.\n", from, to)
				return nil
			}

			if !migrateApply {
				for _, c := range candidates {
					fmt.Printf("%-24s %s %s -> %s %s\n", CmdStyle.Render(c.Name),
						c.CurrentSource, c.CurrentVersion, c.BetterSource, c.BetterVersion)
				}
				fmt.Println(SubtitleStyle.Render("Re-run with --apply to migrate."))
				return nil
			}

			// Batch semantics: one failed migration does not stop the rest.
			failed := 0
			for _, c := range candidates {
				fmt.Println(TitleStyle.Render("Migrating " + c.Name))
				if err := runPlannedUninstall(ctx, store, c.Name, from); err != nil {
					failed++
					fmt.Println(ErrorStyle.Render("  uninstall failed: ") + formatErrorForDisplay(err, verbose))
					continue
				}
				if err := runPlannedInstall(ctx, store, c.Name, to, ""); err != nil {
					failed++
					fmt.Println(ErrorStyle.Render("  install failed: ") + formatErrorForDisplay(err, verbose))
					continue
				}
				if _, err := store.UpdateSource(c.Name, to); err != nil {
					return err
				}
			}
			fmt.Printf("%d migrated, %d failed\n", len(candidates)-failed, failed)
			if failed > 0 {
				return &ExitError{Code: 1}
			}
			return nil
		}),
	}
)

func init() {
	checkUpdatesCmd.Flags().StringVar(&checkUpdatesSource, "source", "", "only check this package manager")
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source to migrate away from")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "source to migrate to")
	migrateCmd.Flags().BoolVar(&migrateApply, "apply", false, "run the migrations instead of listing them")
	_ = migrateCmd.MarkFlagRequired("from")
	_ = migrateCmd.MarkFlagRequired("to")
}

// distroTools lists installed apt/snap tools with their versions for
// the cross-source check.
func distroTools(cmd *cobra.Command, store *catalog.Store) []update.InstalledTool {
	tools, err := store.ListTools(true, "")
	if err != nil {
		return nil
	}
	var out []update.InstalledTool
	for _, t := range tools {
		if t.Source != catalog.SourceApt && t.Source != catalog.SourceSnap {
			continue
		}
		out = append(out, update.InstalledTool{
			Name:    t.Name,
			Version: installedVersionOrEmpty(cmd.Context(), t),
			Source:  t.Source,
		})
	}
	return out
}
