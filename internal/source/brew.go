// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"fmt"
	"strings"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/known"
)

type brewAdapter struct{}

func (a *brewAdapter) Name() string            { return "brew" }
func (a *brewAdapter) Variant() catalog.Source { return catalog.SourceBrew }
func (a *brewAdapter) SupportsUpdates() bool   { return true }

func (a *brewAdapter) InstallCommand(name string) string {
	return "brew install " + name
}

func (a *brewAdapter) UninstallCommand(name string) string {
	return "brew uninstall " + name
}

func (a *brewAdapter) Scan(ctx context.Context) ([]catalog.Tool, error) {
	if !commandExists("brew") {
		return nil, fmt.Errorf("brew is not installed")
	}
	out, err := runOutput(ctx, "brew", "list", "--formula", "-1")
	if err != nil {
		return nil, err
	}
	return parseBrewList(out), nil
}

func parseBrewList(out string) []catalog.Tool {
	var tools []catalog.Tool
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if name == "" || known.IsKnown(name) {
			continue
		}
		tools = append(tools, catalog.NewTool(name).
			WithSource(catalog.SourceBrew).
			WithCategory("cli").
			WithInstallCommand("brew install "+name).
			Installed())
	}
	return tools
}

type brewFormulaResponse struct {
	Desc     string `json:"desc"`
	Versions struct {
		Stable string `json:"stable"`
	} `json:"versions"`
}

var brewFormulaBase = "https://formulae.brew.sh/api/formula"

func (a *brewAdapter) FetchDescription(ctx context.Context, pkg string) string {
	var resp brewFormulaResponse
	if err := fetchJSON(ctx, brewFormulaBase+"/"+pkg+".json", &resp); err != nil {
		return ""
	}
	return strings.TrimSpace(resp.Desc)
}

func (a *brewAdapter) CheckUpdate(ctx context.Context, name, current string) string {
	var resp brewFormulaResponse
	if err := fetchJSON(ctx, brewFormulaBase+"/"+name+".json", &resp); err != nil {
		return ""
	}
	latest := resp.Versions.Stable
	if latest == "" || latest == current {
		return ""
	}
	return latest
}
