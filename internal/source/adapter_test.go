// SPDX-License-Identifier: MPL-2.0

package source

import (
	"testing"

	"hoards-cli/internal/catalog"
)

func TestRegistryOrder(t *testing.T) {
	t.Parallel()

	want := []string{"cargo", "pip", "npm", "brew", "apt", "flatpak", "manual"}
	all := All()
	if len(all) != len(want) {
		t.Fatalf("len = %d, want %d", len(all), len(want))
	}
	for i, a := range all {
		if a.Name() != want[i] {
			t.Errorf("registry[%d] = %q, want %q", i, a.Name(), want[i])
		}
	}
}

func TestByName(t *testing.T) {
	t.Parallel()

	if a := ByName("CARGO"); a == nil || a.Variant() != catalog.SourceCargo {
		t.Error("lookup should be case-insensitive")
	}
	// snap has no adapter: its packages are managed through sudo snap
	// directly by the planner.
	if a := ByName("snap"); a != nil {
		t.Errorf("ByName(snap) = %v, want nil", a.Name())
	}
	if a := ByName("nope"); a != nil {
		t.Errorf("ByName(nope) = %v, want nil", a.Name())
	}
}

func TestForVariant(t *testing.T) {
	t.Parallel()

	for _, a := range All() {
		if got := ForVariant(a.Variant()); got != a {
			t.Errorf("ForVariant(%v) = %v", a.Variant(), got)
		}
	}
	if got := ForVariant(catalog.SourceSnap); got != nil {
		t.Errorf("ForVariant(snap) = %v, want nil", got.Name())
	}
	if got := ForVariant(catalog.SourceUnknown); got != nil {
		t.Errorf("ForVariant(unknown) = %v, want nil", got.Name())
	}
}

func TestCommandStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		adapter   string
		install   string
		uninstall string
	}{
		{"cargo", "cargo install ripgrep", "cargo uninstall ripgrep"},
		{"pip", "pip install ripgrep", "pip uninstall -y ripgrep"},
		{"npm", "npm install -g ripgrep", "npm uninstall -g ripgrep"},
		{"brew", "brew install ripgrep", "brew uninstall ripgrep"},
		{"apt", "sudo apt install ripgrep", "sudo apt remove ripgrep"},
		{"flatpak", "flatpak install -y ripgrep", "flatpak uninstall -y ripgrep"},
		{"manual", "# Manual install required for ripgrep", "# Manual uninstall required for ripgrep"},
	}
	for _, tt := range tests {
		a := ByName(tt.adapter)
		if a == nil {
			t.Fatalf("no adapter %q", tt.adapter)
		}
		if got := a.InstallCommand("ripgrep"); got != tt.install {
			t.Errorf("%s install = %q, want %q", tt.adapter, got, tt.install)
		}
		if got := a.UninstallCommand("ripgrep"); got != tt.uninstall {
			t.Errorf("%s uninstall = %q, want %q", tt.adapter, got, tt.uninstall)
		}
	}
}
