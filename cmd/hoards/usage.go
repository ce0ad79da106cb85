// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/history"
	"hoards-cli/internal/issue"
)

var (
	usageCmd = &cobra.Command{
		Use:   "usage",
		Short: "Track how often cataloged tools actually get used",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	usageScanReset bool

	usageScanCmd = &cobra.Command{
		Use:   "scan",
		Short: "Ingest usage counts from shell history",
		Long: `Ingest usage counts from shell history.

Parses fish, bash, and zsh history files, matches each command against
the catalog's binary names, and adds the counts to the usage tables.
Counts accumulate across scans; pass --reset to start from zero first.`,
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			if usageScanReset {
				if err := store.ClearUsage(); err != nil {
					return err
				}
			}
			counts := history.ParseAll()
			if len(counts) == 0 {
				renderIssue(issue.HistoryNotFoundId)
				return nil
			}
			matched, total := 0, int64(0)
			for cmdName, count := range counts {
				tool, ok, err := store.MatchCommand(cmdName)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				if _, err := store.RecordUsage(tool, count, ""); err != nil {
					return err
				}
				matched++
				total += count
			}
			fmt.Printf("Recorded %d invocations across %d tools.\n", total, matched)
			return nil
		}),
	}

	usageShowCmd = &cobra.Command{
		Use:   "show",
		Short: "List usage counts for all tracked tools",
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			usage, err := store.AllUsage()
			if err != nil {
				return err
			}
			if len(usage) == 0 {
				fmt.Println("No usage recorded yet. Run " + CmdStyle.Render("hoards usage scan") + " first.")
				return nil
			}
			for _, u := range usage {
				last := u.LastUsed
				if last == "" {
					last = "never"
				}
				fmt.Printf("%-24s %6dx  last used %s\n", CmdStyle.Render(u.Name), u.UseCount, last)
			}
			return nil
		}),
	}

	usageToolCmd = &cobra.Command{
		Use:   "tool <name>",
		Short: "Show usage detail for one tool",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			name := args[0]
			if ok, err := store.HasTool(name); err != nil {
				return err
			} else if !ok {
				return toolNotFound(name)
			}
			u, err := store.Usage(name)
			if err != nil {
				return err
			}
			fmt.Println(TitleStyle.Render(name))
			fmt.Printf("  Total uses: %d\n", u.UseCount)
			if u.LastUsed != "" {
				fmt.Printf("  Last used:  %s\n", u.LastUsed)
			}
			if u.FirstSeen != "" {
				fmt.Printf("  First seen: %s\n", u.FirstSeen)
			}
			daily, err := store.DailyUsage(name, 14)
			if err != nil {
				return err
			}
			fmt.Printf("  Last 14 days: %s\n", sparkline(daily))
			return nil
		}),
	}

	usageUnusedCmd = &cobra.Command{
		Use:   "unused",
		Short: "List installed tools with no recorded usage",
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			tools, err := store.UnusedTools()
			if err != nil {
				return err
			}
			if len(tools) == 0 {
				fmt.Println(SuccessStyle.Render("Every installed tool has been used. Nice."))
				return nil
			}
			fmt.Println(TitleStyle.Render("Installed but never used"))
			for _, t := range tools {
				desc := t.Description
				if desc == "" {
					desc = "-"
				}
				fmt.Printf("  %-24s %s\n", CmdStyle.Render(t.Name), SubtitleStyle.Render(desc))
			}
			return nil
		}),
	}

	usageRecommendCmd = &cobra.Command{
		Use:   "recommend",
		Short: "Suggest modern replacements for heavily used traditional tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := history.ParseAllEntries()
			if len(entries) == 0 {
				renderIssue(issue.HistoryNotFoundId)
				return nil
			}
			counts := history.CountSuggestible(entries)
			suggestions := history.Suggest(counts, history.AllAliases())
			if len(suggestions) == 0 {
				fmt.Println(SuccessStyle.Render("No recommendations: you are already using modern tooling."))
				return nil
			}
			sort.SliceStable(suggestions, func(i, j int) bool {
				return suggestions[i].Uses > suggestions[j].Uses
			})
			for _, s := range suggestions {
				fmt.Printf("%-8s used %dx -> try %s  %s\n", s.Traditional, s.Uses,
					CmdStyle.Render(s.Modern),
					SubtitleStyle.Render("(hoards install "+s.Modern+")"))
			}
			return nil
		},
	}
)

func init() {
	usageScanCmd.Flags().BoolVar(&usageScanReset, "reset", false, "clear recorded usage before scanning")
	usageCmd.AddCommand(usageScanCmd, usageShowCmd, usageToolCmd, usageUnusedCmd, usageRecommendCmd)
}

// sparkline renders daily counts oldest-first as unicode bars.
func sparkline(counts []int64) string {
	bars := []rune("▁▂▃▄▅▆▇█")
	var max int64
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	if max == 0 {
		return strings.Repeat("·", len(counts))
	}
	var b strings.Builder
	for _, c := range counts {
		if c == 0 {
			b.WriteRune('·')
			continue
		}
		idx := int(c * int64(len(bars)-1) / max)
		b.WriteRune(bars[idx])
	}
	return b.String()
}
