// SPDX-License-Identifier: MPL-2.0

package update

import (
	"context"
	"testing"

	"hoards-cli/internal/catalog"
)

func stubLatest(t *testing.T, versions map[catalog.Source]map[string]string) {
	t.Helper()
	old := latestVersion
	latestVersion = func(_ context.Context, src catalog.Source, name string) string {
		return versions[src][name]
	}
	t.Cleanup(func() { latestVersion = old })
}

func TestCheckCrossSourcePrefersCargo(t *testing.T) {
	stubLatest(t, map[catalog.Source]map[string]string{
		catalog.SourceCargo: {"ripgrep": "14.1.0"},
		catalog.SourcePip:   {},
		catalog.SourceNpm:   {},
	})

	tools := []InstalledTool{
		{Name: "ripgrep", Version: "13.0.0", Source: catalog.SourceApt},
		// Not apt/snap: never considered.
		{Name: "ripgrep", Version: "13.0.0", Source: catalog.SourceCargo},
		// No mapping: never considered.
		{Name: "some-daemon", Version: "1.0", Source: catalog.SourceApt},
	}
	upgrades := CheckCrossSource(context.Background(), tools)
	if len(upgrades) != 1 {
		t.Fatalf("len = %d, want 1: %+v", len(upgrades), upgrades)
	}
	u := upgrades[0]
	if u.BetterSource != catalog.SourceCargo || u.BetterVersion != "14.1.0" ||
		u.CurrentSource != catalog.SourceApt {
		t.Errorf("upgrade = %+v", u)
	}
}

func TestCheckCrossSourceFallsThroughRegistries(t *testing.T) {
	stubLatest(t, map[catalog.Source]map[string]string{
		catalog.SourcePip: {"httpie": "3.2.4"},
	})

	tools := []InstalledTool{{Name: "httpie", Version: "3.0.0", Source: catalog.SourceSnap}}
	upgrades := CheckCrossSource(context.Background(), tools)
	if len(upgrades) != 1 || upgrades[0].BetterSource != catalog.SourcePip {
		t.Errorf("upgrades = %+v", upgrades)
	}
}

func TestCheckCrossSourceRequiresNewer(t *testing.T) {
	stubLatest(t, map[catalog.Source]map[string]string{
		catalog.SourceCargo: {"bat": "0.24.0"},
	})

	tools := []InstalledTool{{Name: "bat", Version: "0.24.0", Source: catalog.SourceApt}}
	if upgrades := CheckCrossSource(context.Background(), tools); len(upgrades) != 0 {
		t.Errorf("equal versions should not migrate: %+v", upgrades)
	}
}

func TestCheckCrossSourceNameMapping(t *testing.T) {
	stubLatest(t, map[catalog.Source]map[string]string{
		catalog.SourceCargo: {"du-dust": "1.1.0", "tealdeer": "1.7.0"},
	})

	// Distribution names map to the upstream crate names.
	tools := []InstalledTool{
		{Name: "dust", Version: "0.8.0", Source: catalog.SourceApt},
		{Name: "tldr", Version: "1.0.0", Source: catalog.SourceApt},
	}
	upgrades := CheckCrossSource(context.Background(), tools)
	if len(upgrades) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(upgrades), upgrades)
	}
	if upgrades[0].BetterVersion != "1.1.0" || upgrades[1].BetterVersion != "1.7.0" {
		t.Errorf("upgrades = %+v", upgrades)
	}
}

func TestMigrationCandidatesFilters(t *testing.T) {
	stubLatest(t, map[catalog.Source]map[string]string{
		catalog.SourceCargo: {"ripgrep": "14.1.0"},
		catalog.SourcePip:   {"httpie": "3.2.4"},
	})

	tools := []InstalledTool{
		{Name: "ripgrep", Version: "13.0.0", Source: catalog.SourceApt},
		{Name: "httpie", Version: "3.0.0", Source: catalog.SourceSnap},
	}

	all := MigrationCandidates(context.Background(), tools, "", "")
	if len(all) != 2 {
		t.Fatalf("unfiltered = %+v", all)
	}
	fromApt := MigrationCandidates(context.Background(), tools, catalog.SourceApt, "")
	if len(fromApt) != 1 || fromApt[0].Name != "ripgrep" {
		t.Errorf("fromApt = %+v", fromApt)
	}
	toPip := MigrationCandidates(context.Background(), tools, "", catalog.SourcePip)
	if len(toPip) != 1 || toPip[0].Name != "httpie" {
		t.Errorf("toPip = %+v", toPip)
	}
}
