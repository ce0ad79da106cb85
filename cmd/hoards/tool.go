// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/invoke"
	"hoards-cli/internal/issue"
)

var (
	addSource     string
	addDesc       string
	addCategory   string
	addBinary     string
	addInstallCmd string

	addCmd = &cobra.Command{
		Use:   "add <name>",
		Short: "Add a tool to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			name := args[0]
			if err := invoke.ValidatePackageName(name); err != nil {
				renderIssue(issue.InvalidPackageNameId)
				return issue.NewErrorContext().
					WithOperation("add tool").
					WithResource(name).
					WithSuggestion("Names may contain letters, digits, and . - _ @ /").
					Wrap(err).
					BuildError()
			}
			if addBinary != "" {
				if err := invoke.ValidateBinaryName(addBinary); err != nil {
					return err
				}
			}

			src := catalog.SourceManual
			if addSource != "" {
				src = catalog.ParseSource(addSource)
			}
			t := catalog.NewTool(name).
				WithSource(src).
				WithDescription(addDesc).
				WithCategory(addCategory).
				WithBinary(addBinary)
			if addInstallCmd != "" {
				t = t.WithInstallCommand(addInstallCmd)
			} else if display := invoke.DisplayInstallCommand(name, src, ""); display != "" {
				t = t.WithInstallCommand(display)
			}

			if err := store.InsertTool(t); err != nil {
				if errors.Is(err, catalog.ErrDuplicate) {
					return fmt.Errorf("%s is already in the catalog (see 'hoards show %s')", name, name)
				}
				return err
			}
			fmt.Println(SuccessStyle.Render("Added ") + CmdStyle.Render(name))
			return nil
		}),
	}

	removeCmd = &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a tool from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			name := args[0]
			if err := store.DeleteTool(name); err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					return toolNotFound(name)
				}
				return err
			}
			fmt.Println(SuccessStyle.Render("Removed ") + CmdStyle.Render(name))
			return nil
		}),
	}

	showCmd = &cobra.Command{
		Use:   "show <name>",
		Short: "Show a tool in detail",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			t, err := store.GetTool(args[0])
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					return toolNotFound(args[0])
				}
				return err
			}
			printTool(store, t)
			return nil
		}),
	}

	favoriteRemove bool

	favoriteCmd = &cobra.Command{
		Use:   "favorite <name>",
		Short: "Mark a tool as a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			name := args[0]
			if ok, err := store.HasTool(name); err != nil {
				return err
			} else if !ok {
				return toolNotFound(name)
			}
			if err := store.SetFavorite(name, !favoriteRemove); err != nil {
				return err
			}
			if favoriteRemove {
				fmt.Println("Unfavorited " + CmdStyle.Render(name))
			} else {
				fmt.Println(FavoriteStyle.Render("★ ") + CmdStyle.Render(name))
			}
			return nil
		}),
	}

	noteCmd = &cobra.Command{
		Use:   "note <name> [text...]",
		Short: "Attach a note to a tool (no text clears it)",
		Args:  cobra.MinimumNArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			name := args[0]
			if ok, err := store.HasTool(name); err != nil {
				return err
			} else if !ok {
				return toolNotFound(name)
			}
			note := strings.Join(args[1:], " ")
			if err := store.SetNotes(name, note); err != nil {
				return err
			}
			if note == "" {
				fmt.Println("Cleared note on " + CmdStyle.Render(name))
			} else {
				fmt.Println(SuccessStyle.Render("Noted ") + CmdStyle.Render(name))
			}
			return nil
		}),
	}
)

func init() {
	addCmd.Flags().StringVar(&addSource, "source", "", "install source (cargo, apt, pip, npm, brew, flatpak, manual)")
	addCmd.Flags().StringVar(&addDesc, "description", "", "short description")
	addCmd.Flags().StringVar(&addCategory, "category", "", "category")
	addCmd.Flags().StringVar(&addBinary, "binary", "", "executable name when it differs from the tool name")
	addCmd.Flags().StringVar(&addInstallCmd, "install-cmd", "", "install command to record")

	favoriteCmd.Flags().BoolVar(&favoriteRemove, "remove", false, "clear the favorite mark")
}

func toolNotFound(name string) error {
	renderIssue(issue.ToolNotFoundId)
	return issue.NewErrorContext().
		WithOperation("look up tool").
		WithResource(name).
		WithSuggestion("Run 'hoards search " + name + "' to find similar names").
		WithSuggestion("Run 'hoards scan' if the tool was installed recently").
		Wrap(catalog.ErrNotFound).
		BuildError()
}

func printTool(store *catalog.Store, t catalog.Tool) {
	fmt.Println(TitleStyle.Render(t.Name))
	if t.Description != "" {
		fmt.Println("  " + t.Description)
	}
	fmt.Printf("  source: %s", t.Source)
	if t.Category != "" {
		fmt.Printf("  category: %s", t.Category)
	}
	if t.IsFavorite {
		fmt.Print("  " + FavoriteStyle.Render("★"))
	}
	fmt.Println()
	if t.BinaryName != "" && t.BinaryName != t.Name {
		fmt.Println("  binary: " + t.BinaryName)
	}
	if t.InstallCommand != "" {
		fmt.Println("  install: " + CmdStyle.Render(t.InstallCommand))
	}
	if t.IsInstalled {
		fmt.Println("  " + SuccessStyle.Render("installed"))
	} else {
		fmt.Println("  " + SubtitleStyle.Render("not installed"))
	}
	if t.Notes != "" {
		fmt.Println("  note: " + t.Notes)
	}

	if labels, err := store.Labels(t.Name); err == nil && len(labels) > 0 {
		fmt.Println("  labels: " + strings.Join(labels, ", "))
	}
	if usage, err := store.Usage(t.Name); err == nil && usage.UseCount > 0 {
		fmt.Printf("  used %d times", usage.UseCount)
		if usage.LastUsed != "" {
			fmt.Printf(", last %s", usage.LastUsed)
		}
		fmt.Println()
	}
	if info, err := store.GitHubInfoFor(t.Name); err == nil && info.RepoName != "" {
		fmt.Printf("  github: %s/%s (%d stars)\n", info.RepoOwner, info.RepoName, info.Stars)
	}
}
