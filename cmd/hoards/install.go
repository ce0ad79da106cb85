// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/invoke"
	"hoards-cli/internal/issue"
	"hoards-cli/internal/update"
)

var (
	installSource  string
	installVersion string

	installCmd = &cobra.Command{
		Use:   "install <name>",
		Short: "Install a tool through its package manager",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			name := args[0]
			src, err := resolveSource(store, name, installSource)
			if err != nil {
				return err
			}
			if err := runPlannedInstall(cmd.Context(), store, name, src, installVersion); err != nil {
				return err
			}
			fmt.Println(SuccessStyle.Render("Installed ") + CmdStyle.Render(name))
			return nil
		}),
	}

	uninstallCmd = &cobra.Command{
		Use:   "uninstall <name>",
		Short: "Uninstall a tool through its package manager",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			name := args[0]
			src, err := resolveSource(store, name, "")
			if err != nil {
				return err
			}
			if err := runPlannedUninstall(cmd.Context(), store, name, src); err != nil {
				return err
			}
			fmt.Println(SuccessStyle.Render("Uninstalled ") + CmdStyle.Render(name))
			return nil
		}),
	}

	upgradeTo string

	upgradeCmd = &cobra.Command{
		Use:   "upgrade <name>",
		Short: "Upgrade a tool, optionally moving it to another source",
		Long: `Upgrade a tool in place, or move it to a different package manager
with --to. A cross-source upgrade uninstalls from the current source
first; if that fails, the install is not attempted.`,
		Args: cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *catalog.Store) error {
			name := args[0]
			current, err := resolveSource(store, name, "")
			if err != nil {
				return err
			}

			if upgradeTo == "" || catalog.ParseSource(upgradeTo) == current {
				if err := runPlannedInstall(cmd.Context(), store, name, current, ""); err != nil {
					return err
				}
				fmt.Println(SuccessStyle.Render("Upgraded ") + CmdStyle.Render(name))
				return nil
			}

			target := catalog.ParseSource(upgradeTo)
			if target == catalog.SourceUnknown {
				return fmt.Errorf("unknown source %q", upgradeTo)
			}
			// Uninstall first; a failure here aborts the move.
			if err := runPlannedUninstall(cmd.Context(), store, name, current); err != nil {
				return fmt.Errorf("uninstall from %s failed, not installing via %s: %w", current, target, err)
			}
			if err := runPlannedInstall(cmd.Context(), store, name, target, ""); err != nil {
				return err
			}
			if _, err := store.UpdateSource(name, target); err != nil {
				return err
			}
			fmt.Printf("%s %s (%s -> %s)\n", SuccessStyle.Render("Upgraded"), CmdStyle.Render(name), current, target)
			return nil
		}),
	}
)

func init() {
	installCmd.Flags().StringVar(&installSource, "source", "", "package manager to install with")
	installCmd.Flags().StringVar(&installVersion, "version", "", "version to pin (managers that support it)")
	upgradeCmd.Flags().StringVar(&upgradeTo, "to", "", "move the tool to this source (uninstall-then-install)")
}

// resolveSource picks the source for an operation: the explicit flag,
// else the cataloged source, else an error asking for --source.
func resolveSource(store *catalog.Store, name, flag string) (catalog.Source, error) {
	if flag != "" {
		src := catalog.ParseSource(flag)
		if src == catalog.SourceUnknown {
			return src, fmt.Errorf("unknown source %q", flag)
		}
		return src, nil
	}
	t, err := store.GetTool(name)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return catalog.SourceUnknown, issue.NewErrorContext().
				WithOperation("plan install").
				WithResource(name).
				WithSuggestion("Pass --source to install a tool that is not cataloged yet").
				WithSuggestion("Run 'hoards discover " + name + "' to find it in a registry").
				Wrap(err).
				BuildError()
		}
		return catalog.SourceUnknown, err
	}
	return t.Source, nil
}

func runPlannedInstall(ctx context.Context, store *catalog.Store, name string, src catalog.Source, version string) error {
	plan, err := invoke.InstallCommand(name, src, version)
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("%s tools have no managed install path", src)
	}
	if err := streamPlan(ctx, plan, name, src.String()); err != nil {
		return err
	}

	// Post-conditions: the tool is present and its recorded install
	// command matches how it would be reinstalled today.
	if ok, _ := store.HasTool(name); ok {
		if err := store.SetInstalled(name, true); err != nil {
			return err
		}
		t, err := store.GetTool(name)
		if err == nil {
			t.Source = src
			t.InstallCommand = invoke.DisplayInstallCommand(name, src, version)
			if err := store.UpdateTool(t); err != nil {
				return err
			}
		}
	} else {
		t := catalog.NewTool(name).
			WithSource(src).
			WithInstallCommand(invoke.DisplayInstallCommand(name, src, version)).
			Installed()
		if err := store.InsertTool(t); err != nil && !errors.Is(err, catalog.ErrDuplicate) {
			return err
		}
	}
	// A fresh binary invalidates any cached cheatsheet.
	if err := store.DeleteCached("cheatsheet:" + name); err != nil && !errors.Is(err, catalog.ErrNotFound) {
		return err
	}
	return nil
}

func runPlannedUninstall(ctx context.Context, store *catalog.Store, name string, src catalog.Source) error {
	plan, err := invoke.UninstallCommand(name, src)
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("%s tools have no managed uninstall path", src)
	}
	if err := streamPlan(ctx, plan, name, src.String()); err != nil {
		return err
	}
	if ok, _ := store.HasTool(name); ok {
		if err := store.SetInstalled(name, false); err != nil {
			return err
		}
	}
	return nil
}

// streamPlan runs a planned command with live output and a log file.
// Failures carry the most diagnostic stderr lines plus the log path.
func streamPlan(ctx context.Context, plan *invoke.SafeCommand, tool, source string) error {
	opts := invoke.StreamOptions{Tool: tool, Source: source}
	if plan.NeedsSudo() {
		password, err := readPassword("sudo password: ")
		if err != nil {
			renderIssue(issue.SudoRequiredId)
			return err
		}
		opts.SudoPassword = password
	}

	fmt.Println(CmdStyle.Render("$ " + plan.Display))
	op, err := plan.Stream(ctx, opts)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			renderIssue(issue.PackageManagerMissingId)
		}
		return err
	}
	for line := range op.Lines {
		if line.Kind == invoke.LineStderr {
			fmt.Fprintln(os.Stderr, VerboseStyle.Render(line.Text))
		} else {
			fmt.Println(line.Text)
		}
	}

	code, err := op.Wait()
	if err != nil {
		if errors.Is(err, invoke.ErrCancelled) {
			return fmt.Errorf("cancelled (log: %s)", op.LogPath())
		}
		return err
	}
	if code != 0 {
		renderIssue(issue.InstallFailedId)
		tail := strings.Join(op.StderrTail(15), "\n")
		return &ExitError{Code: code, Err: fmt.Errorf(
			"%s exited with code %d\n%s\nfull log: %s", plan.Program, code, tail, op.LogPath())}
	}
	return nil
}

func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("could not read password: %w", err)
	}
	return string(b), nil
}

// installedVersionOrEmpty is shared by the update commands.
func installedVersionOrEmpty(ctx context.Context, t catalog.Tool) string {
	return update.InstalledVersion(ctx, t.Name, t.Source)
}
