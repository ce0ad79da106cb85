// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/config"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	t.Parallel()

	// Every shipped template must exist and carry its placeholders.
	placeholders := map[string][]string{
		"categorize":        {"{{CATEGORIES}}", "{{TOOLS}}"},
		"describe":          {"{{TOOLS}}"},
		"suggest-bundle":    {"{{COUNT}}", "{{EXISTING_BUNDLES}}", "{{TOOLS}}"},
		"extract":           {"{{README}}"},
		"cheatsheet":        {"{{TOOL_NAME}}", "{{HELP_OUTPUT}}"},
		"bundle_cheatsheet": {"{{BUNDLE_NAME}}", "{{TOOL_LIST}}", "{{HELP_OUTPUTS}}"},
		"discovery":         {"{{QUERY}}", "{{INSTALLED_TOOLS}}", "{{ENABLED_SOURCES}}"},
		"analyze":           {"{{TRADITIONAL_USAGE}}", "{{MODERN_TOOLS}}", "{{UNUSED_TOOLS}}"},
		"migrate":           {"{{TOOLS}}"},
	}
	for name, want := range placeholders {
		tmpl := Load(name)
		if tmpl == "" {
			t.Fatalf("Load(%q) returned empty template", name)
		}
		for _, ph := range want {
			if !strings.Contains(tmpl, ph) {
				t.Errorf("template %q missing placeholder %s", name, ph)
			}
		}
	}
}

func TestLoadUnknownName(t *testing.T) {
	t.Parallel()

	if got := Load("no-such-template"); got != "" {
		t.Errorf("Load of unknown template = %q, want empty", got)
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	names := Names()
	if len(names) != 9 {
		t.Fatalf("Names() returned %d templates, want 9: %v", len(names), names)
	}
	found := make(map[string]bool, len(names))
	for _, n := range names {
		if strings.Contains(n, ".txt") {
			t.Errorf("Names() entry %q still carries extension", n)
		}
		found[n] = true
	}
	for _, want := range []string{"categorize", "describe", "suggest-bundle", "cheatsheet", "discovery"} {
		if !found[want] {
			t.Errorf("Names() missing %q", want)
		}
	}
}

func TestLoadUserOverride(t *testing.T) {
	dir := t.TempDir()
	config.SetConfigDirOverride(dir)
	defer config.Reset()

	promptsDir := filepath.Join(dir, "prompts")
	if err := os.MkdirAll(promptsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	custom := "my categorize template {{TOOLS}}"
	if err := os.WriteFile(filepath.Join(promptsDir, "categorize.txt"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := Load("categorize"); got != custom {
		t.Errorf("Load with override = %q, want %q", got, custom)
	}
	// Other templates keep the embedded defaults.
	if got := Load("describe"); !strings.Contains(got, "max 100 chars") {
		t.Errorf("Load(describe) lost embedded default: %q", got)
	}
}

func TestCategorize(t *testing.T) {
	t.Parallel()

	tools := []catalog.Tool{
		catalog.NewTool("ripgrep").WithDescription("Fast regex search"),
		catalog.NewTool("bat"),
	}
	got := Categorize(tools, nil)
	if !strings.Contains(got, "- ripgrep : Fast regex search") {
		t.Errorf("missing described tool line in:\n%s", got)
	}
	if !strings.Contains(got, "- bat\n") {
		t.Errorf("missing bare tool line in:\n%s", got)
	}
	if !strings.Contains(got, DefaultCategories) {
		t.Errorf("default categories not substituted in:\n%s", got)
	}
	if strings.Contains(got, "{{") {
		t.Errorf("unsubstituted placeholder left in:\n%s", got)
	}

	got = Categorize(tools, []string{"rust", "cli"})
	if !strings.Contains(got, "rust, cli") {
		t.Errorf("existing categories not used in:\n%s", got)
	}
	if strings.Contains(got, DefaultCategories) {
		t.Errorf("default categories should yield to existing ones in:\n%s", got)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	got := Describe([]catalog.Tool{catalog.NewTool("fd"), catalog.NewTool("jq")})
	if !strings.Contains(got, "- fd\n- jq") {
		t.Errorf("tool list not substituted in:\n%s", got)
	}
}

func TestSuggestBundles(t *testing.T) {
	t.Parallel()

	tools := []catalog.Tool{
		catalog.NewTool("cargo-watch").WithCategory("dev").WithDescription("Watch and rebuild"),
		catalog.NewTool("jq").WithDescription("JSON processor"),
		catalog.NewTool("ripgrep"),
	}
	bundles := []catalog.Bundle{
		{Name: "search", Tools: []string{"ripgrep"}},
	}
	usage := map[string]int64{"jq": 12, "cargo-watch": 3}

	got := SuggestBundles(tools, bundles, usage, 2)
	if !strings.Contains(got, "suggest 2 logical bundles") {
		t.Errorf("count not substituted in:\n%s", got)
	}
	if !strings.Contains(got, "- search: ripgrep") {
		t.Errorf("existing bundle not listed in:\n%s", got)
	}
	if strings.Contains(got, "- ripgrep [") {
		t.Errorf("already-bundled tool offered again in:\n%s", got)
	}
	// Most used first.
	jqAt := strings.Index(got, "- jq [uncategorized] (12x): JSON processor")
	watchAt := strings.Index(got, "- cargo-watch [dev] (3x): Watch and rebuild")
	if jqAt < 0 || watchAt < 0 {
		t.Fatalf("tool lines missing in:\n%s", got)
	}
	if jqAt > watchAt {
		t.Errorf("tools not sorted by usage in:\n%s", got)
	}
}

func TestSuggestBundlesNoExisting(t *testing.T) {
	t.Parallel()

	got := SuggestBundles([]catalog.Tool{catalog.NewTool("fd")}, nil, nil, 1)
	if !strings.Contains(got, "No existing bundles.") {
		t.Errorf("empty-bundles marker missing in:\n%s", got)
	}
}

func TestExtractTruncatesReadme(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 9000)
	got := Extract(long)
	if !strings.Contains(got, "[README truncated]") {
		t.Error("long README not truncated")
	}
	if strings.Contains(got, strings.Repeat("x", 8500)) {
		t.Error("README body kept past the truncation limit")
	}

	short := Extract("Install with cargo install fd-find")
	if strings.Contains(short, "[README truncated]") {
		t.Error("short README should not be truncated")
	}
}

func TestCheatsheet(t *testing.T) {
	t.Parallel()

	got := Cheatsheet("ripgrep", "USAGE: rg [OPTIONS] PATTERN")
	if !strings.Contains(got, `"ripgrep"`) {
		t.Errorf("tool name not substituted in:\n%s", got)
	}
	if !strings.Contains(got, "USAGE: rg [OPTIONS] PATTERN") {
		t.Errorf("help output not substituted in:\n%s", got)
	}

	long := Cheatsheet("big", strings.Repeat("h", 5000))
	if !strings.Contains(long, "[truncated]") {
		t.Error("long help output not truncated")
	}
}

func TestBundleCheatsheet(t *testing.T) {
	t.Parallel()

	got := BundleCheatsheet("files", []ToolHelp{
		{Name: "bat", Help: "a cat clone"},
		{Name: "eza", Help: "a modern ls"},
	})
	if !strings.Contains(got, `"files"`) {
		t.Errorf("bundle name not substituted in:\n%s", got)
	}
	if !strings.Contains(got, "bat, eza") {
		t.Errorf("tool list not substituted in:\n%s", got)
	}
	if !strings.Contains(got, "=== bat ===") || !strings.Contains(got, "=== eza ===") {
		t.Errorf("per-tool separators missing in:\n%s", got)
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	got := Discover("fuzzy file finder", []string{"fzf"}, []string{"cargo", "brew"})
	if !strings.Contains(got, "fuzzy file finder") {
		t.Errorf("query not substituted in:\n%s", got)
	}
	if !strings.Contains(got, "cargo, brew") {
		t.Errorf("enabled sources not substituted in:\n%s", got)
	}

	empty := Discover("anything", nil, nil)
	if !strings.Contains(empty, "do NOT suggest these): None") {
		t.Errorf("empty installed list not rendered as None in:\n%s", empty)
	}
	if !strings.Contains(empty, "cargo, pip, npm, apt, brew") {
		t.Errorf("default source list missing in:\n%s", empty)
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	got := Analyze(
		[]CommandCount{{Command: "cat", Count: 42}, {Command: "find", Count: 7}},
		[]string{"bat", "fd"},
		[]string{"tokei"},
	)
	if !strings.Contains(got, "cat (42x), find (7x)") {
		t.Errorf("traditional usage not formatted in:\n%s", got)
	}
	if !strings.Contains(got, "bat, fd") {
		t.Errorf("modern tools not substituted in:\n%s", got)
	}
	if !strings.Contains(got, "never used: tokei") {
		t.Errorf("unused tools not substituted in:\n%s", got)
	}

	empty := Analyze(nil, nil, nil)
	if !strings.Contains(empty, "None detected") {
		t.Errorf("empty traditional usage not rendered in:\n%s", empty)
	}
}

func TestMigrate(t *testing.T) {
	t.Parallel()

	got := Migrate([]Move{
		{Name: "ripgrep", FromSource: "apt", FromVersion: "13.0.0", ToSource: "cargo", ToVersion: "14.1.0"},
	})
	if !strings.Contains(got, "- ripgrep (apt 13.0.0 -> cargo 14.1.0)") {
		t.Errorf("migration line not formatted in:\n%s", got)
	}
}

func TestTruncateRuneBoundary(t *testing.T) {
	t.Parallel()

	// 3-byte runes; a limit inside a rune must back off to the start.
	s := strings.Repeat("日", 10)
	got := truncate(s, 10, "...")
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("marker missing: %q", got)
	}
	body := strings.TrimSuffix(got, "...")
	if len(body) != 9 {
		t.Errorf("truncate kept %d bytes, want 9 (rune boundary below 10)", len(body))
	}
}
