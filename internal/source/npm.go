// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/known"
)

type npmAdapter struct{}

func (a *npmAdapter) Name() string            { return "npm" }
func (a *npmAdapter) Variant() catalog.Source { return catalog.SourceNpm }
func (a *npmAdapter) SupportsUpdates() bool   { return true }

func (a *npmAdapter) InstallCommand(name string) string {
	return "npm install -g " + name
}

func (a *npmAdapter) UninstallCommand(name string) string {
	return "npm uninstall -g " + name
}

func (a *npmAdapter) Scan(ctx context.Context) ([]catalog.Tool, error) {
	if !commandExists("npm") {
		return nil, fmt.Errorf("npm is not installed")
	}
	out, err := runOutput(ctx, "npm", "list", "-g", "--depth=0", "--json")
	if err != nil && out == "" {
		return nil, err
	}
	return parseNpmList(out)
}

// parseNpmList reads `npm list -g --depth=0 --json` output and returns
// the global dependency names. npm itself is not a catalog entry.
func parseNpmList(out string) ([]catalog.Tool, error) {
	var parsed struct {
		Dependencies map[string]json.RawMessage `json:"dependencies"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse npm list output: %w", err)
	}
	names := make([]string, 0, len(parsed.Dependencies))
	for name := range parsed.Dependencies {
		if name == "npm" || known.IsKnown(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	tools := make([]catalog.Tool, 0, len(names))
	for _, name := range names {
		tools = append(tools, catalog.NewTool(name).
			WithSource(catalog.SourceNpm).
			WithCategory("javascript").
			WithInstallCommand("npm install -g "+name).
			Installed())
	}
	return tools, nil
}

var npmRegistryBase = "https://registry.npmjs.org"

func (a *npmAdapter) FetchDescription(ctx context.Context, pkg string) string {
	var resp struct {
		Description string `json:"description"`
	}
	if err := fetchJSON(ctx, npmRegistryBase+"/"+pkg, &resp); err != nil {
		return ""
	}
	return strings.TrimSpace(resp.Description)
}

func (a *npmAdapter) CheckUpdate(ctx context.Context, name, current string) string {
	var resp struct {
		DistTags struct {
			Latest string `json:"latest"`
		} `json:"dist-tags"`
	}
	if err := fetchJSON(ctx, npmRegistryBase+"/"+name, &resp); err != nil {
		return ""
	}
	latest := resp.DistTags.Latest
	if latest == "" || latest == current {
		return ""
	}
	return latest
}
