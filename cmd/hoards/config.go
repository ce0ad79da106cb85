// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"hoards-cli/internal/config"
)

// configCmd is the `hoards config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage hoards configuration",
	Long: `Manage hoards configuration.

Configuration is stored in:
  - Linux: ~/.config/hoards/config.toml
  - macOS: ~/Library/Application Support/hoards/config.toml
  - Windows: %APPDATA%\hoards\config.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showResolvedConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			if err := config.CreateDefaultConfig(); err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			fmt.Printf("%s Created default configuration at %s\n",
				SuccessStyle.Render("✓"), filepath.Join(cfgDir, "config.toml"))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Printf("Config directory: %s\n", cfgDir)
			fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, "config.toml"))
			promptsDir, err := config.PromptsDir()
			if err == nil {
				fmt.Printf("Prompts directory: %s\n", promptsDir)
			}
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(args[0], args[1])
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.GenerateTOML(appConfig)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	})
}

func showResolvedConfig() error {
	cfg := appConfig
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	if cfgDir, err := config.ConfigDir(); err == nil {
		cfgPath := filepath.Join(cfgDir, "config.toml")
		if info, statErr := os.Stat(cfgPath); statErr == nil && !info.IsDir() {
			fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
		} else {
			fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
		}
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s:\n", keyStyle.Render("sources"))
	for _, name := range config.AllSourceNames() {
		marker := ErrorStyle.Render("disabled")
		if cfg.Sources.IsEnabled(name) {
			marker = valueStyle.Render("enabled")
		}
		fmt.Printf("  %-8s %s\n", name, marker)
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("usage"))
	fmt.Printf("  mode: %s\n", valueStyle.Render(cfg.Usage.Mode.String()))
	shell := cfg.Usage.Shell
	if shell == "" {
		shell = "(auto)"
	}
	fmt.Printf("  shell: %s\n", valueStyle.Render(shell))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func setConfigValue(key, value string) error {
	cfg := appConfig

	switch {
	case strings.HasPrefix(key, "sources."):
		name := strings.TrimPrefix(key, "sources.")
		enable, err := parseBoolValue(value)
		if err != nil {
			return err
		}
		if !validSourceName(name) {
			return fmt.Errorf("unknown source %q\nValid sources: %s",
				name, strings.Join(config.AllSourceNames(), ", "))
		}
		if cfg.Sources.IsEnabled(name) != enable {
			cfg.Sources.Toggle(name)
		}

	case key == "usage.mode":
		mode := config.UsageMode(value)
		if ok, errs := mode.IsValid(); !ok {
			return errs[0]
		}
		cfg.Usage.Mode = mode

	case key == "usage.shell":
		cfg.Usage.Shell = value

	case key == "ui.color_scheme":
		scheme := config.ColorScheme(value)
		if ok, errs := scheme.IsValid(); !ok {
			return errs[0]
		}
		cfg.UI.ColorScheme = scheme

	case key == "ui.verbose":
		enable, err := parseBoolValue(value)
		if err != nil {
			return err
		}
		cfg.UI.Verbose = enable

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: sources.<name>, usage.mode, usage.shell, ui.color_scheme, ui.verbose", key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

func parseBoolValue(value string) (bool, error) {
	switch value {
	case "true", "1", "on", "yes":
		return true, nil
	case "false", "0", "off", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected a boolean value, got %q", value)
	}
}

func validSourceName(name string) bool {
	for _, n := range config.AllSourceNames() {
		if n == name {
			return true
		}
	}
	return false
}
