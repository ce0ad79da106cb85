// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"hoards-cli/internal/catalog"
)

// DefaultCategories seeds the categorize prompt when the catalog has no
// categories of its own yet.
const DefaultCategories = "dev, shell, files, search, git, network, system, editor, data, security, misc"

// Categorize builds a prompt asking for one category per tool, chosen
// from existing (or DefaultCategories when existing is empty).
func Categorize(tools []catalog.Tool, existing []string) string {
	lines := make([]string, 0, len(tools))
	for _, t := range tools {
		if t.Description != "" {
			lines = append(lines, fmt.Sprintf("- %s : %s", t.Name, t.Description))
		} else {
			lines = append(lines, "- "+t.Name)
		}
	}
	categories := DefaultCategories
	if len(existing) > 0 {
		categories = strings.Join(existing, ", ")
	}
	tmpl := Load("categorize")
	tmpl = strings.ReplaceAll(tmpl, "{{CATEGORIES}}", categories)
	return strings.ReplaceAll(tmpl, "{{TOOLS}}", strings.Join(lines, "\n"))
}

// Describe builds a prompt asking for a short description per tool.
func Describe(tools []catalog.Tool) string {
	lines := make([]string, 0, len(tools))
	for _, t := range tools {
		lines = append(lines, "- "+t.Name)
	}
	return strings.ReplaceAll(Load("describe"), "{{TOOLS}}", strings.Join(lines, "\n"))
}

// SuggestBundles builds a prompt asking for count new bundles over the
// tools not already in a bundle, listed most-used first.
func SuggestBundles(tools []catalog.Tool, bundles []catalog.Bundle, usage map[string]int64, count int) string {
	bundled := make(map[string]struct{})
	for _, b := range bundles {
		for _, name := range b.Tools {
			bundled[name] = struct{}{}
		}
	}
	free := make([]catalog.Tool, 0, len(tools))
	for _, t := range tools {
		if _, ok := bundled[t.Name]; !ok {
			free = append(free, t)
		}
	}
	sort.SliceStable(free, func(i, j int) bool {
		return usage[free[i].Name] > usage[free[j].Name]
	})

	lines := make([]string, 0, len(free))
	for _, t := range free {
		category := t.Category
		if category == "" {
			category = "uncategorized"
		}
		lines = append(lines, fmt.Sprintf("- %s [%s] (%dx): %s", t.Name, category, usage[t.Name], t.Description))
	}

	existing := "No existing bundles."
	if len(bundles) > 0 {
		parts := make([]string, 0, len(bundles))
		for _, b := range bundles {
			parts = append(parts, fmt.Sprintf("- %s: %s", b.Name, strings.Join(b.Tools, ", ")))
		}
		existing = strings.Join(parts, "\n")
	}

	tmpl := Load("suggest-bundle")
	tmpl = strings.ReplaceAll(tmpl, "{{COUNT}}", strconv.Itoa(count))
	tmpl = strings.ReplaceAll(tmpl, "{{EXISTING_BUNDLES}}", existing)
	return strings.ReplaceAll(tmpl, "{{TOOLS}}", strings.Join(lines, "\n"))
}

// Extract builds a prompt that pulls tool metadata out of a repository
// README. Long READMEs are truncated to leave room for the response.
func Extract(readme string) string {
	readme = truncate(readme, 8000, "...\n[README truncated]")
	return strings.ReplaceAll(Load("extract"), "{{README}}", readme)
}

// Cheatsheet builds a prompt that turns a tool's --help output into a
// Markdown cheatsheet.
func Cheatsheet(tool, helpOutput string) string {
	helpOutput = truncate(helpOutput, 4000, "...\n[truncated]")
	tmpl := Load("cheatsheet")
	tmpl = strings.ReplaceAll(tmpl, "{{TOOL_NAME}}", tool)
	return strings.ReplaceAll(tmpl, "{{HELP_OUTPUT}}", helpOutput)
}

// ToolHelp pairs a tool name with its captured --help output.
type ToolHelp struct {
	Name string
	Help string
}

// BundleCheatsheet builds a combined cheatsheet prompt for a bundle.
// Each help output is truncated individually, then the combined block
// is capped again so the prompt stays within a sane size.
func BundleCheatsheet(bundle string, tools []ToolHelp) string {
	names := make([]string, 0, len(tools))
	var combined strings.Builder
	for _, th := range tools {
		names = append(names, th.Name)
		fmt.Fprintf(&combined, "\n=== %s ===\n", th.Name)
		combined.WriteString(truncate(th.Help, 2000, "...\n[truncated]\n"))
	}
	help := truncate(combined.String(), 12000, "...\n[truncated]")

	tmpl := Load("bundle_cheatsheet")
	tmpl = strings.ReplaceAll(tmpl, "{{BUNDLE_NAME}}", bundle)
	tmpl = strings.ReplaceAll(tmpl, "{{TOOL_LIST}}", strings.Join(names, ", "))
	return strings.ReplaceAll(tmpl, "{{HELP_OUTPUTS}}", help)
}

// Discover builds a tool-discovery prompt from a free-form query, the
// installed tool names, and the enabled install sources.
func Discover(query string, installed, enabledSources []string) string {
	sources := "cargo, pip, npm, apt, brew"
	if len(enabledSources) > 0 {
		sources = strings.Join(enabledSources, ", ")
	}
	tmpl := Load("discovery")
	tmpl = strings.ReplaceAll(tmpl, "{{QUERY}}", query)
	tmpl = strings.ReplaceAll(tmpl, "{{INSTALLED_TOOLS}}", joinOr(installed, "None"))
	return strings.ReplaceAll(tmpl, "{{ENABLED_SOURCES}}", sources)
}

// CommandCount pairs a shell command with its invocation count.
type CommandCount struct {
	Command string
	Count   int64
}

// Analyze builds a usage-analysis prompt from traditional-command
// counts, installed modern replacements, and never-used tools.
func Analyze(traditional []CommandCount, modern, unused []string) string {
	trad := "None detected"
	if len(traditional) > 0 {
		parts := make([]string, 0, len(traditional))
		for _, c := range traditional {
			parts = append(parts, fmt.Sprintf("%s (%dx)", c.Command, c.Count))
		}
		trad = strings.Join(parts, ", ")
	}
	tmpl := Load("analyze")
	tmpl = strings.ReplaceAll(tmpl, "{{TRADITIONAL_USAGE}}", trad)
	tmpl = strings.ReplaceAll(tmpl, "{{MODERN_TOOLS}}", joinOr(modern, "None"))
	return strings.ReplaceAll(tmpl, "{{UNUSED_TOOLS}}", joinOr(unused, "None"))
}

// Move describes one tool changing package manager.
type Move struct {
	Name        string
	FromSource  string
	FromVersion string
	ToSource    string
	ToVersion   string
}

// Migrate builds a prompt asking for a one-line benefit statement per
// migrated tool.
func Migrate(moves []Move) string {
	lines := make([]string, 0, len(moves))
	for _, m := range moves {
		lines = append(lines, fmt.Sprintf("- %s (%s %s -> %s %s)", m.Name, m.FromSource, m.FromVersion, m.ToSource, m.ToVersion))
	}
	return strings.ReplaceAll(Load("migrate"), "{{TOOLS}}", strings.Join(lines, "\n"))
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
