// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hoards-cli/internal/catalog"
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Manage tool labels",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	labelCmd.AddCommand(&cobra.Command{
		Use:   "add <tool> <label>...",
		Short: "Add labels to a tool",
		Args:  cobra.MinimumNArgs(2),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			ok, err := store.AddLabels(args[0], args[1:])
			if err != nil {
				return err
			}
			if !ok {
				return toolNotFound(args[0])
			}
			fmt.Printf("Labeled %s with %s\n", CmdStyle.Render(args[0]), strings.Join(args[1:], ", "))
			return nil
		}),
	})

	labelCmd.AddCommand(&cobra.Command{
		Use:   "rm <tool> <label>",
		Short: "Remove one label from a tool",
		Args:  cobra.ExactArgs(2),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			if err := store.RemoveLabel(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Removed label %s from %s\n", args[1], CmdStyle.Render(args[0]))
			return nil
		}),
	})

	labelCmd.AddCommand(&cobra.Command{
		Use:   "clear <tool>",
		Short: "Remove all labels from a tool",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			if err := store.ClearLabels(args[0]); err != nil {
				return err
			}
			fmt.Println("Cleared labels on " + CmdStyle.Render(args[0]))
			return nil
		}),
	})

	labelCmd.AddCommand(&cobra.Command{
		Use:   "ls <tool>",
		Short: "List a tool's labels",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			labels, err := store.Labels(args[0])
			if err != nil {
				return err
			}
			if len(labels) == 0 {
				fmt.Println(SubtitleStyle.Render("no labels"))
				return nil
			}
			fmt.Println(strings.Join(labels, "\n"))
			return nil
		}),
	})
}
