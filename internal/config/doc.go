// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as the file format.
//
// Configuration is loaded from ~/.config/hoards/config.toml (or XDG equivalent on Linux,
// ~/Library/Application Support/hoards/config.toml on macOS, %APPDATA%\hoards\config.toml
// on Windows). The package provides type-safe configuration access covering which package
// sources are scanned, how command usage is tracked, and UI settings. Missing files fall
// back to defaults; Save regenerates the TOML file from the typed Config.
package config
