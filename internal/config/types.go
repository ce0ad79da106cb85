// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// UsageModeScan ingests usage counts from shell history on demand.
	UsageModeScan UsageMode = "scan"
	// UsageModeHook records usage in real time via shell hooks.
	UsageModeHook UsageMode = "hook"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidUsageMode is returned when a UsageMode value is not recognized.
	ErrInvalidUsageMode = errors.New("invalid usage mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// UsageMode specifies how command usage is collected.
	UsageMode string

	// InvalidUsageModeError is returned when a UsageMode value is not recognized.
	// It wraps ErrInvalidUsageMode for errors.Is() compatibility.
	InvalidUsageModeError struct {
		Value UsageMode
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Sources toggles which package managers scans and update
		// checks consult.
		Sources SourcesConfig `toml:"sources" mapstructure:"sources"`
		// Usage configures command usage tracking.
		Usage UsageConfig `toml:"usage" mapstructure:"usage"`
		// UI configures the user interface.
		UI UIConfig `toml:"ui" mapstructure:"ui"`
	}

	// SourcesConfig enables or disables individual package sources.
	// Disabled sources are skipped by scans and update checks but tools
	// already cataloged under them stay visible.
	SourcesConfig struct {
		Cargo   bool `toml:"cargo" mapstructure:"cargo"`
		Apt     bool `toml:"apt" mapstructure:"apt"`
		Pip     bool `toml:"pip" mapstructure:"pip"`
		Npm     bool `toml:"npm" mapstructure:"npm"`
		Brew    bool `toml:"brew" mapstructure:"brew"`
		Flatpak bool `toml:"flatpak" mapstructure:"flatpak"`
		Manual  bool `toml:"manual" mapstructure:"manual"`
	}

	// UsageConfig configures usage tracking.
	UsageConfig struct {
		// Mode selects scan (on-demand history ingestion) or hook
		// (real-time shell hooks).
		Mode UsageMode `toml:"mode" mapstructure:"mode"`
		// Shell names the shell for hook mode (fish, bash, zsh).
		Shell string `toml:"shell" mapstructure:"shell"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `toml:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `toml:"verbose" mapstructure:"verbose"`
	}
)

// sourceNames lists every toggleable source in display order.
var sourceNames = []string{"cargo", "apt", "pip", "npm", "brew", "flatpak", "manual"}

// AllSourceNames returns the names of every toggleable source.
func AllSourceNames() []string {
	return append([]string(nil), sourceNames...)
}

// Enabled returns the names of all enabled sources in display order.
func (s SourcesConfig) Enabled() []string {
	var enabled []string
	for _, name := range sourceNames {
		if s.IsEnabled(name) {
			enabled = append(enabled, name)
		}
	}
	return enabled
}

// IsEnabled reports whether the named source is enabled. Unknown names
// are disabled.
func (s SourcesConfig) IsEnabled(name string) bool {
	switch strings.ToLower(name) {
	case "cargo":
		return s.Cargo
	case "apt":
		return s.Apt
	case "pip":
		return s.Pip
	case "npm":
		return s.Npm
	case "brew":
		return s.Brew
	case "flatpak":
		return s.Flatpak
	case "manual":
		return s.Manual
	default:
		return false
	}
}

// Toggle flips the named source. Unknown names are ignored.
func (s *SourcesConfig) Toggle(name string) {
	switch strings.ToLower(name) {
	case "cargo":
		s.Cargo = !s.Cargo
	case "apt":
		s.Apt = !s.Apt
	case "pip":
		s.Pip = !s.Pip
	case "npm":
		s.Npm = !s.Npm
	case "brew":
		s.Brew = !s.Brew
	case "flatpak":
		s.Flatpak = !s.Flatpak
	case "manual":
		s.Manual = !s.Manual
	}
}

// String returns the string representation of the UsageMode.
func (m UsageMode) String() string { return string(m) }

// IsValid returns whether the UsageMode is one of the defined modes,
// and a list of validation errors if it is not.
func (m UsageMode) IsValid() (bool, []error) {
	switch m {
	case UsageModeScan, UsageModeHook:
		return true, nil
	default:
		return false, []error{&InvalidUsageModeError{Value: m}}
	}
}

// Error implements the error interface for InvalidUsageModeError.
func (e *InvalidUsageModeError) Error() string {
	return fmt.Sprintf("invalid usage mode %q (valid: scan, hook)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidUsageModeError) Unwrap() error {
	return ErrInvalidUsageMode
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// IsValid returns whether the Config has valid fields.
// It delegates to Usage.Mode.IsValid() and UI.ColorScheme.IsValid();
// the source toggles are plain bools and need no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Usage.Mode.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			Cargo:   true,
			Apt:     true,
			Pip:     false,
			Npm:     false,
			Brew:    false,
			Flatpak: true,
			Manual:  true,
		},
		Usage: UsageConfig{
			Mode:  UsageModeScan,
			Shell: "",
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
