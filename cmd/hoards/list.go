// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"hoards-cli/internal/catalog"
)

var (
	listInstalled bool
	listCategory  string
	listLabel     string

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List cataloged tools",
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			var (
				tools []catalog.Tool
				err   error
			)
			if listLabel != "" {
				tools, err = store.ToolsByLabel(listLabel)
			} else {
				tools, err = store.ListTools(listInstalled, listCategory)
			}
			if err != nil {
				return err
			}
			if len(tools) == 0 {
				fmt.Println(SubtitleStyle.Render("No tools found. Run 'hoards scan' to discover installed tools."))
				return nil
			}
			printToolTable(tools)
			return nil
		}),
	}

	searchCmd = &cobra.Command{
		Use:   "search <query>",
		Short: "Search tools by name, description, or category",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			tools, err := store.SearchTools(args[0])
			if err != nil {
				return err
			}
			if len(tools) == 0 {
				fmt.Printf("No tools matching %q. Try 'hoards discover %q' to search registries.\n", args[0], args[0])
				return nil
			}
			printToolTable(tools)
			return nil
		}),
	}

	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			stats, err := store.ToolStats()
			if err != nil {
				return err
			}
			fmt.Println(TitleStyle.Render("Catalog"))
			fmt.Printf("  %d tools, %d installed, %d favorites\n", stats.Total, stats.Installed, stats.Favorites)

			if counts, err := store.CategoryCounts(); err == nil && len(counts) > 0 {
				names := make([]string, 0, len(counts))
				for name := range counts {
					names = append(names, name)
				}
				sort.Strings(names)
				fmt.Println(TitleStyle.Render("Categories"))
				for _, name := range names {
					fmt.Printf("  %-16s %d\n", name, counts[name])
				}
			}

			if last, err := store.LastSyncTime(); err == nil && !last.IsZero() {
				fmt.Println(SubtitleStyle.Render("Last sync: " + last.Format("2006-01-02 15:04")))
			}
			return nil
		}),
	}

	labelsCmd = &cobra.Command{
		Use:   "labels",
		Short: "List all labels and how many tools carry each",
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			counts, err := store.LabelCounts()
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				fmt.Println(SubtitleStyle.Render("No labels yet. Add one with 'hoards label add <tool> <label>'."))
				return nil
			}
			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%-20s %d\n", name, counts[name])
			}
			return nil
		}),
	}
)

func init() {
	listCmd.Flags().BoolVar(&listInstalled, "installed", false, "only installed tools")
	listCmd.Flags().StringVar(&listCategory, "category", "", "filter by category")
	listCmd.Flags().StringVar(&listLabel, "label", "", "filter by label")
}

func printToolTable(tools []catalog.Tool) {
	for _, t := range tools {
		marker := " "
		if t.IsFavorite {
			marker = FavoriteStyle.Render("★")
		}
		status := SubtitleStyle.Render("·")
		if t.IsInstalled {
			status = SuccessStyle.Render("✓")
		}
		line := fmt.Sprintf("%s %s %-24s %-10s %s", marker, status, CmdStyle.Render(t.Name), t.Source, t.Description)
		fmt.Println(line)
	}
	fmt.Println(SubtitleStyle.Render(fmt.Sprintf("%d tools", len(tools))))
}
