// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/config"
)

var (
	cheatsheetRaw bool

	cheatsheetCmd = &cobra.Command{
		Use:   "cheatsheet <tool-or-bundle>",
		Short: "Show a cached cheatsheet",
		Long: `Show a cached cheatsheet.

Cheatsheets live in the catalog's cache under "cheatsheet:<name>" and
are rendered as Markdown. Nothing generates them on the fly here;
anything that writes that cache key shows up.`,
		Args: cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			name := args[0]
			content, err := store.Cached("cheatsheet:" + name)
			if errors.Is(err, catalog.ErrNotFound) {
				fmt.Printf("No cheatsheet cached for %q.\n", name)
				return nil
			}
			if err != nil {
				return err
			}
			if cheatsheetRaw {
				fmt.Println(content)
				return nil
			}
			rendered, err := glamour.Render(content, glamourStyle())
			if err != nil {
				// Unrenderable markdown is still readable as text.
				fmt.Println(content)
				return nil
			}
			fmt.Println(rendered)
			return nil
		}),
	}
)

func init() {
	cheatsheetCmd.Flags().BoolVar(&cheatsheetRaw, "raw", false, "print the raw markdown without rendering")
}

// glamourStyle maps the configured color scheme onto a glamour style
// name.
func glamourStyle() string {
	switch appConfig.UI.ColorScheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}
