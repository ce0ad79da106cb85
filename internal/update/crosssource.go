// SPDX-License-Identifier: MPL-2.0

package update

import (
	"context"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/source"
)

// CrossSourceUpgrade reports a package whose upstream moves faster on
// another manager than the one it is installed through.
type CrossSourceUpgrade struct {
	Name           string
	CurrentVersion string
	CurrentSource  catalog.Source
	BetterVersion  string
	BetterSource   catalog.Source
}

// InstalledTool is the minimal tool view the cross-source check needs.
type InstalledTool struct {
	Name    string
	Version string
	Source  catalog.Source
}

// Distribution package names rarely match upstream registry names
// exactly; these tables cover the tools people actually migrate.
var aptToCargo = map[string]string{
	"bat":       "bat",
	"fd-find":   "fd-find",
	"ripgrep":   "ripgrep",
	"exa":       "eza",
	"eza":       "eza",
	"dust":      "du-dust",
	"procs":     "procs",
	"bottom":    "bottom",
	"zoxide":    "zoxide",
	"starship":  "starship",
	"delta":     "git-delta",
	"git-delta": "git-delta",
	"tokei":     "tokei",
	"hyperfine": "hyperfine",
	"just":      "just",
	"sd":        "sd",
	"tealdeer":  "tealdeer",
	"tldr":      "tealdeer",
	"gitui":     "gitui",
	"zellij":    "zellij",
	"helix":     "helix",
	"hx":        "helix",
	"alacritty": "alacritty",
}

var aptToPip = map[string]string{
	"httpie":     "httpie",
	"youtube-dl": "youtube-dl",
	"yt-dlp":     "yt-dlp",
	"black":      "black",
	"ruff":       "ruff",
	"mypy":       "mypy",
	"pylint":     "pylint",
	"ansible":    "ansible",
}

var aptToNpm = map[string]string{
	"prettier":   "prettier",
	"eslint":     "eslint",
	"typescript": "typescript",
}

// latestVersion is swapped out by tests. The default asks the
// registry through the source adapter; passing an empty current makes
// CheckUpdate return the latest outright.
var latestVersion = func(ctx context.Context, src catalog.Source, name string) string {
	a := source.ForVariant(src)
	if a == nil {
		return ""
	}
	return a.CheckUpdate(ctx, name, "")
}

// CheckCrossSource finds apt/snap tools with a newer version on
// crates.io, PyPI, or npm, in that order. The first registry carrying
// a newer version wins.
func CheckCrossSource(ctx context.Context, tools []InstalledTool) []CrossSourceUpgrade {
	var upgrades []CrossSourceUpgrade
	for _, t := range tools {
		if t.Source != catalog.SourceApt && t.Source != catalog.SourceSnap {
			continue
		}
		if u, ok := crossSourceFor(ctx, t); ok {
			upgrades = append(upgrades, u)
		}
	}
	return upgrades
}

func crossSourceFor(ctx context.Context, t InstalledTool) (CrossSourceUpgrade, bool) {
	lookups := []struct {
		names map[string]string
		src   catalog.Source
	}{
		{aptToCargo, catalog.SourceCargo},
		{aptToPip, catalog.SourcePip},
		{aptToNpm, catalog.SourceNpm},
	}
	for _, l := range lookups {
		upstream, ok := l.names[t.Name]
		if !ok {
			continue
		}
		latest := latestVersion(ctx, l.src, upstream)
		if latest != "" && IsNewer(latest, t.Version) {
			return CrossSourceUpgrade{
				Name:           t.Name,
				CurrentVersion: t.Version,
				CurrentSource:  t.Source,
				BetterVersion:  latest,
				BetterSource:   l.src,
			}, true
		}
	}
	return CrossSourceUpgrade{}, false
}

// MigrationCandidates filters the cross-source upgrades by origin and
// destination source. Zero values mean no filter.
func MigrationCandidates(ctx context.Context, tools []InstalledTool, from, to catalog.Source) []CrossSourceUpgrade {
	upgrades := CheckCrossSource(ctx, tools)
	var out []CrossSourceUpgrade
	for _, u := range upgrades {
		if from != "" && u.CurrentSource != from {
			continue
		}
		if to != "" && u.BetterSource != to {
			continue
		}
		out = append(out, u)
	}
	return out
}
