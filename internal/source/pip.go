// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"fmt"
	"strings"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/known"
)

type pipAdapter struct{}

func (a *pipAdapter) Name() string            { return "pip" }
func (a *pipAdapter) Variant() catalog.Source { return catalog.SourcePip }
func (a *pipAdapter) SupportsUpdates() bool   { return true }

func (a *pipAdapter) InstallCommand(name string) string {
	return "pip install " + name
}

func (a *pipAdapter) UninstallCommand(name string) string {
	return "pip uninstall -y " + name
}

// pipBinary prefers pip3 where both exist.
func pipBinary() (string, bool) {
	for _, bin := range []string{"pip3", "pip"} {
		if commandExists(bin) {
			return bin, true
		}
	}
	return "", false
}

func (a *pipAdapter) Scan(ctx context.Context) ([]catalog.Tool, error) {
	bin, ok := pipBinary()
	if !ok {
		return nil, fmt.Errorf("pip is not installed")
	}
	out, err := runOutput(ctx, bin, "list", "--format=freeze")
	if err != nil {
		return nil, err
	}
	return parsePipFreeze(out), nil
}

// parsePipFreeze reads `pip list --format=freeze` output, one
// `name==version` per line. Package names are normalized to lowercase
// with underscores folded to dashes, the way PyPI canonicalizes them.
func parsePipFreeze(out string) []catalog.Tool {
	var tools []catalog.Tool
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, _, ok := strings.Cut(line, "==")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.ReplaceAll(name, "_", "-"))
		if name == "" || known.IsKnown(name) {
			continue
		}
		tools = append(tools, catalog.NewTool(name).
			WithSource(catalog.SourcePip).
			WithCategory("python").
			WithInstallCommand("pip install "+name).
			Installed())
	}
	return tools
}

type pypiResponse struct {
	Info struct {
		Summary string `json:"summary"`
		Version string `json:"version"`
	} `json:"info"`
}

var pypiBase = "https://pypi.org/pypi"

func (a *pipAdapter) FetchDescription(ctx context.Context, pkg string) string {
	var resp pypiResponse
	if err := fetchJSON(ctx, pypiBase+"/"+pkg+"/json", &resp); err != nil {
		return ""
	}
	summary := strings.TrimSpace(resp.Info.Summary)
	// PyPI reports literal "UNKNOWN" for packages without metadata.
	if summary == "" || strings.EqualFold(summary, "UNKNOWN") {
		return ""
	}
	return summary
}

func (a *pipAdapter) CheckUpdate(ctx context.Context, name, current string) string {
	var resp pypiResponse
	if err := fetchJSON(ctx, pypiBase+"/"+name+"/json", &resp); err != nil {
		return ""
	}
	latest := resp.Info.Version
	if latest == "" || latest == current {
		return ""
	}
	return latest
}
