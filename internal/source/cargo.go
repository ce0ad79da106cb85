// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"fmt"
	"strings"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/known"
)

type cargoAdapter struct{}

func (a *cargoAdapter) Name() string            { return "cargo" }
func (a *cargoAdapter) Variant() catalog.Source { return catalog.SourceCargo }
func (a *cargoAdapter) SupportsUpdates() bool   { return true }

func (a *cargoAdapter) InstallCommand(name string) string {
	return "cargo install " + name
}

func (a *cargoAdapter) UninstallCommand(name string) string {
	return "cargo uninstall " + name
}

func (a *cargoAdapter) Scan(ctx context.Context) ([]catalog.Tool, error) {
	if !commandExists("cargo") {
		return nil, fmt.Errorf("cargo is not installed")
	}
	out, err := runOutput(ctx, "cargo", "install", "--list")
	if err != nil {
		return nil, err
	}
	return parseCargoList(out), nil
}

// parseCargoList reads `cargo install --list` output. Header lines are
// `crate v1.2.3:` with the crate's binaries indented beneath. Crates
// already covered by the curated table are skipped, as are crates whose
// binary is not actually on PATH (stale installs).
func parseCargoList(out string) []catalog.Tool {
	var (
		tools   []catalog.Tool
		crate   string
		binSeen bool
	)
	flush := func() {
		crate = ""
		binSeen = false
	}
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, " ") {
			// New crate header.
			flush()
			name, _, ok := strings.Cut(strings.TrimSuffix(line, ":"), " ")
			if !ok || name == "" {
				continue
			}
			if known.IsKnown(name) {
				continue
			}
			crate = name
			continue
		}
		if crate == "" || binSeen {
			continue
		}
		bin := strings.TrimSpace(line)
		if bin == "" || known.IsKnown(bin) {
			continue
		}
		if !commandExists(bin) {
			continue
		}
		binSeen = true
		tool := catalog.NewTool(crate).
			WithSource(catalog.SourceCargo).
			WithCategory("cli").
			WithInstallCommand("cargo install " + crate).
			Installed()
		if bin != crate {
			tool = tool.WithBinary(bin)
		}
		tools = append(tools, tool)
	}
	return tools
}

type cratesIOResponse struct {
	Crate struct {
		Description      string `json:"description"`
		MaxStableVersion string `json:"max_stable_version"`
	} `json:"crate"`
}

// cratesIOBase is swapped out by tests.
var cratesIOBase = "https://crates.io/api/v1/crates"

func (a *cargoAdapter) FetchDescription(ctx context.Context, pkg string) string {
	var resp cratesIOResponse
	if err := fetchJSON(ctx, cratesIOBase+"/"+pkg, &resp); err != nil {
		return ""
	}
	return strings.TrimSpace(resp.Crate.Description)
}

func (a *cargoAdapter) CheckUpdate(ctx context.Context, name, current string) string {
	var resp cratesIOResponse
	if err := fetchJSON(ctx, cratesIOBase+"/"+name, &resp); err != nil {
		return ""
	}
	latest := resp.Crate.MaxStableVersion
	if latest == "" || latest == current {
		return ""
	}
	return latest
}
