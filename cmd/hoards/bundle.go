// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hoards-cli/internal/catalog"
)

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Group related tools into bundles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var bundleDesc string

func init() {
	createCmd := &cobra.Command{
		Use:   "create <name> [tool...]",
		Short: "Create a bundle",
		Args:  cobra.MinimumNArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			if err := store.CreateBundle(args[0], bundleDesc, args[1:]); err != nil {
				if errors.Is(err, catalog.ErrDuplicate) {
					return fmt.Errorf("bundle %s already exists", args[0])
				}
				return err
			}
			fmt.Println(SuccessStyle.Render("Created bundle ") + CmdStyle.Render(args[0]))
			return nil
		}),
	}
	createCmd.Flags().StringVar(&bundleDesc, "description", "", "bundle description")
	bundleCmd.AddCommand(createCmd)

	bundleCmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show a bundle and its tools",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			b, err := store.GetBundle(args[0])
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					return fmt.Errorf("no bundle named %s (see 'hoards bundle list')", args[0])
				}
				return err
			}
			printBundle(b)
			return nil
		}),
	})

	bundleCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all bundles",
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			bundles, err := store.ListBundles()
			if err != nil {
				return err
			}
			if len(bundles) == 0 {
				fmt.Println(SubtitleStyle.Render("No bundles yet. Create one with 'hoards bundle create <name>'."))
				return nil
			}
			for _, b := range bundles {
				printBundle(b)
			}
			return nil
		}),
	})

	bundleCmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a bundle (tools stay cataloged)",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			if err := store.DeleteBundle(args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted bundle " + CmdStyle.Render(args[0]))
			return nil
		}),
	})

	bundleCmd.AddCommand(&cobra.Command{
		Use:   "add <name> <tool>...",
		Short: "Add tools to a bundle",
		Args:  cobra.MinimumNArgs(2),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			if err := store.AddBundleTools(args[0], args[1:]); err != nil {
				return err
			}
			fmt.Printf("Added %s to %s\n", strings.Join(args[1:], ", "), CmdStyle.Render(args[0]))
			return nil
		}),
	})

	bundleCmd.AddCommand(&cobra.Command{
		Use:   "rm <name> <tool>...",
		Short: "Remove tools from a bundle",
		Args:  cobra.MinimumNArgs(2),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			if err := store.RemoveBundleTools(args[0], args[1:]); err != nil {
				return err
			}
			fmt.Printf("Removed %s from %s\n", strings.Join(args[1:], ", "), CmdStyle.Render(args[0]))
			return nil
		}),
	})
}

func printBundle(b catalog.Bundle) {
	fmt.Println(TitleStyle.Render(b.Name))
	if b.Description != "" {
		fmt.Println("  " + b.Description)
	}
	if len(b.Tools) == 0 {
		fmt.Println("  " + SubtitleStyle.Render("empty"))
		return
	}
	fmt.Println("  " + strings.Join(b.Tools, ", "))
}
