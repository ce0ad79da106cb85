// SPDX-License-Identifier: MPL-2.0

// Package prompt assembles the text prompts used by the enrichment
// commands (categorize, describe, cheatsheets, discovery, migrate).
// Every template ships as an embedded default and can be overridden by
// dropping a file at <config-dir>/hoards/prompts/<name>.txt; templates
// substitute {{PLACEHOLDER}} markers literally.
package prompt

import (
	"embed"
	"os"
	"path/filepath"
	"unicode/utf8"

	"hoards-cli/internal/config"
)

//go:embed prompts/*.txt
var defaults embed.FS

// Load returns the template for name. A user override at
// <config-dir>/hoards/prompts/<name>.txt wins over the embedded
// default; unreadable overrides fall back silently.
func Load(name string) string {
	dir, err := config.PromptsDir()
	if err != nil {
		return embeddedDefault(name)
	}
	data, err := os.ReadFile(filepath.Join(dir, name+".txt"))
	if err != nil {
		return embeddedDefault(name)
	}
	return string(data)
}

// Names lists the available template names, for override discovery.
func Names() []string {
	entries, err := defaults.ReadDir("prompts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name()[:len(e.Name())-len(".txt")])
	}
	return names
}

func embeddedDefault(name string) string {
	data, err := defaults.ReadFile("prompts/" + name + ".txt")
	if err != nil {
		return ""
	}
	return string(data)
}

// truncate cuts s at the nearest rune boundary at or below limit bytes
// and appends marker so the reader knows the input was cut.
func truncate(s string, limit int, marker string) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit] + marker
}
