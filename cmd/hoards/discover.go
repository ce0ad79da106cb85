// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/discover"
	"hoards-cli/internal/gh"
	"hoards-cli/internal/issue"
)

// searchHistoryKeep caps the saved discover history.
const searchHistoryKeep = 50

var (
	discoverLimit        int
	discoverShowHistory  bool
	discoverClearHistory bool

	discoverCmd = &cobra.Command{
		Use:   "discover <query>",
		Short: "Search package registries for new tools",
		Long: `Search package registries for new tools.

Queries crates.io, npm, PyPI, Homebrew, apt, and GitHub in one pass,
restricted to the sources enabled in your config. Hits for the same
tool across registries are merged, with install options from each.`,
		Args: cobra.ArbitraryArgs,
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			if discoverClearHistory {
				if err := store.ClearSearches(); err != nil {
					return err
				}
				fmt.Println("Search history cleared.")
				return nil
			}
			if discoverShowHistory {
				return printSearchHistory(store)
			}
			if len(args) == 0 {
				return fmt.Errorf("a search query is required")
			}
			query := strings.Join(args, " ")

			if !gh.Available() {
				renderIssue(issue.GhCliMissingId)
			}
			results, err := discover.Run(cmd.Context(), store, appConfig.Sources, query, discoverLimit)
			if err != nil {
				return err
			}
			if err := store.PruneSearches(searchHistoryKeep); err != nil {
				log.Warn("failed to prune search history", "err", err)
			}
			if len(results) == 0 {
				fmt.Printf("No results for %q.\n", query)
				return nil
			}
			for _, r := range results {
				printDiscoverResult(r)
			}
			return nil
		}),
	}
)

func init() {
	discoverCmd.Flags().IntVar(&discoverLimit, "limit", 10, "maximum results per registry")
	discoverCmd.Flags().BoolVar(&discoverShowHistory, "history", false, "show recent searches instead of searching")
	discoverCmd.Flags().BoolVar(&discoverClearHistory, "clear-history", false, "delete the saved search history")
}

func printDiscoverResult(r discover.Result) {
	header := CmdStyle.Render(r.Name)
	if r.Stars >= 0 {
		header += SubtitleStyle.Render(fmt.Sprintf("  ★ %d", r.Stars))
	}
	header += SubtitleStyle.Render("  [" + r.Origin + "]")
	fmt.Println(header)
	if r.Description != "" {
		fmt.Println("  " + r.Description)
	}
	if r.URL != "" {
		fmt.Println("  " + SubtitleStyle.Render(r.URL))
	}
	for _, opt := range r.Options {
		fmt.Printf("  %s %s\n", SuccessStyle.Render("install:"), opt.Command)
	}
	fmt.Println()
}

func printSearchHistory(store *catalog.Store) error {
	records, err := store.RecentSearches(searchHistoryKeep)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No searches recorded yet.")
		return nil
	}
	for _, r := range records {
		line := fmt.Sprintf("%s  %s", SubtitleStyle.Render(r.CreatedAt), r.Query)
		if r.SourceFilters != "" {
			line += SubtitleStyle.Render("  (" + r.SourceFilters + ")")
		}
		fmt.Println(line)
	}
	return nil
}
