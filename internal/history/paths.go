// SPDX-License-Identifier: MPL-2.0

// Package history mines shell history files for tool usage counts and
// reads alias definitions so usage analysis can see through them.
package history

import (
	"os"
	"path/filepath"
)

// FishHistoryPath returns fish's history location, honoring
// XDG_DATA_HOME.
func FishHistoryPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "fish", "fish_history")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "fish", "fish_history")
}

func BashHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bash_history")
}

func ZshHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".zsh_history")
}

// AliasFiles lists the rc files alias definitions are read from.
// Only files that exist are returned.
func AliasFiles() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	candidates := []string{
		filepath.Join(home, ".bashrc"),
		filepath.Join(home, ".bash_aliases"),
		filepath.Join(home, ".zshrc"),
		filepath.Join(home, ".zsh_aliases"),
		filepath.Join(home, ".config", "fish", "config.fish"),
	}
	var files []string
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			files = append(files, path)
		}
	}
	return files
}
