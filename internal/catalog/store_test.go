// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "hoards.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.InsertTool(NewTool("ripgrep")); err != nil {
		t.Fatalf("InsertTool: %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hoards.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.InsertTool(NewTool("bat")); err != nil {
		t.Fatalf("InsertTool: %v", err)
	}
	s.Close()

	// Reopening an existing database must reapply the schema without
	// touching existing rows.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	if _, err := s2.GetTool("bat"); err != nil {
		t.Fatalf("GetTool after reopen: %v", err)
	}
}

func TestParseSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Source
	}{
		{"cargo", SourceCargo},
		{"Cargo", SourceCargo},
		{"APT", SourceApt},
		{"pip", SourcePip},
		{"npm", SourceNpm},
		{"brew", SourceBrew},
		{"snap", SourceSnap},
		{"flatpak", SourceFlatpak},
		{"manual", SourceManual},
		{"unknown", SourceUnknown},
		{"", SourceUnknown},
		{"bogus", SourceUnknown},
	}
	for _, tt := range tests {
		if got := ParseSource(tt.in); got != tt.want {
			t.Errorf("ParseSource(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSourceRoundTrip(t *testing.T) {
	t.Parallel()

	for _, src := range AllSources() {
		if got := ParseSource(src.String()); got != src {
			t.Errorf("ParseSource(%q) = %v, want %v", src.String(), got, src)
		}
	}
}

func TestToolBuilder(t *testing.T) {
	t.Parallel()

	tool := NewTool("ripgrep").
		WithSource(SourceCargo).
		WithDescription("Fast recursive grep").
		WithCategory("search").
		WithInstallCommand("cargo install ripgrep").
		WithBinary("rg").
		Installed()

	if tool.Name != "ripgrep" || tool.Source != SourceCargo {
		t.Errorf("unexpected identity: %+v", tool)
	}
	if !tool.IsInstalled {
		t.Error("Installed() did not set the flag")
	}
	if tool.Binary() != "rg" {
		t.Errorf("Binary() = %q, want rg", tool.Binary())
	}
	if NewTool("fd").Binary() != "fd" {
		t.Error("Binary() should default to the tool name")
	}
}
