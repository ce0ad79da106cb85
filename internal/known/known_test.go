// SPDX-License-Identifier: MPL-2.0

package known

import (
	"strings"
	"testing"

	"hoards-cli/internal/catalog"
)

func TestTableIsWellFormed(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool, len(tools))
	for _, tool := range tools {
		if tool.Name == "" {
			t.Fatal("entry with empty name")
		}
		if seen[tool.Name] {
			t.Errorf("duplicate entry %q", tool.Name)
		}
		seen[tool.Name] = true

		if tool.Description == "" || tool.Category == "" {
			t.Errorf("%s: missing description or category", tool.Name)
		}
		if tool.Source == catalog.SourceUnknown || tool.Source == "" {
			t.Errorf("%s: curated entries need a concrete source", tool.Name)
		}
		if tool.InstallCommand == "" {
			t.Errorf("%s: missing install command", tool.Name)
		}
		if tool.Source == catalog.SourceManual &&
			!strings.HasPrefix(tool.InstallCommand, "# Manual install required for ") {
			t.Errorf("%s: manual entries carry the placeholder command, got %q",
				tool.Name, tool.InstallCommand)
		}
	}
}

func TestLookupByNameAndBinary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		name  string
	}{
		{"ripgrep", "ripgrep"},
		{"rg", "ripgrep"},
		{"RG", "ripgrep"},
		{"fd", "fd-find"},
		{"btm", "bottom"},
		{"delta", "git-delta"},
		{"bat", "bat"},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.query)
		if !ok || got.Name != tt.name {
			t.Errorf("Lookup(%q) = (%q, %v), want %q", tt.query, got.Name, ok, tt.name)
		}
	}

	if IsKnown("definitely-not-a-tool") {
		t.Error("unexpected hit for unknown name")
	}
}

func TestExecutableDefaultsToName(t *testing.T) {
	t.Parallel()

	tool := Tool{Name: "bat"}
	if tool.Executable() != "bat" {
		t.Errorf("Executable() = %q", tool.Executable())
	}
	tool.Binary = "batcat"
	if tool.Executable() != "batcat" {
		t.Errorf("Executable() = %q", tool.Executable())
	}
}

func TestCatalogToolConversion(t *testing.T) {
	t.Parallel()

	entry, ok := Lookup("ripgrep")
	if !ok {
		t.Fatal("ripgrep missing from table")
	}
	got := entry.CatalogTool()
	if got.Name != "ripgrep" || got.BinaryName != "rg" ||
		got.Source != catalog.SourceCargo || got.Category != "search" {
		t.Errorf("conversion mismatch: %+v", got)
	}
	if got.IsInstalled {
		t.Error("conversion must not presume install state")
	}
}
