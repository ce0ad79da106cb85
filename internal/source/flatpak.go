// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"fmt"
	"strings"

	"hoards-cli/internal/catalog"
)

type flatpakAdapter struct{}

func (a *flatpakAdapter) Name() string            { return "flatpak" }
func (a *flatpakAdapter) Variant() catalog.Source { return catalog.SourceFlatpak }
func (a *flatpakAdapter) SupportsUpdates() bool   { return true }

// Flatpak commands address the full application ID, which the catalog
// stores as the tool's binary name.
func (a *flatpakAdapter) InstallCommand(name string) string {
	return "flatpak install -y " + name
}

func (a *flatpakAdapter) UninstallCommand(name string) string {
	return "flatpak uninstall -y " + name
}

// appNameFromID turns "org.mozilla.firefox" into "firefox".
func appNameFromID(appID string) string {
	name := appID
	if i := strings.LastIndexByte(appID, '.'); i >= 0 {
		name = appID[i+1:]
	}
	return strings.ToLower(name)
}

func originToCategory(origin string) string {
	switch origin {
	case "fedora":
		return "system"
	case "gnome-nightly":
		return "dev"
	default:
		return "app"
	}
}

func (a *flatpakAdapter) Scan(ctx context.Context) ([]catalog.Tool, error) {
	if !commandExists("flatpak") {
		return nil, fmt.Errorf("flatpak is not installed")
	}
	out, err := runOutput(ctx, "flatpak", "list", "--app", "--columns=application,version,origin")
	if err != nil {
		return nil, err
	}
	return parseFlatpakList(out), nil
}

func parseFlatpakList(out string) []catalog.Tool {
	var tools []catalog.Tool
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Split(line, "\t")
		appID := strings.TrimSpace(parts[0])
		if appID == "" {
			continue
		}
		var version, origin string
		if len(parts) > 1 {
			version = strings.TrimSpace(parts[1])
		}
		origin = "flathub"
		if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
			origin = strings.TrimSpace(parts[2])
		}

		tool := catalog.NewTool(appNameFromID(appID)).
			WithSource(catalog.SourceFlatpak).
			WithBinary(appID).
			WithCategory(originToCategory(origin)).
			WithInstallCommand("flatpak install -y " + appID).
			Installed()
		if version != "" {
			tool.Notes = "Version: " + version
		}
		tools = append(tools, tool)
	}
	return tools
}

// FetchDescription reads flatpak info output, preferring the Subject
// line with the Name line as fallback.
func (a *flatpakAdapter) FetchDescription(ctx context.Context, appID string) string {
	out, err := runOutput(ctx, "flatpak", "info", appID)
	if err != nil {
		return ""
	}
	for _, prefix := range []string{"Subject:", "Name:"} {
		for _, line := range strings.Split(out, "\n") {
			line = strings.TrimSpace(line)
			if rest, ok := strings.CutPrefix(line, prefix); ok {
				if desc := strings.TrimSpace(rest); desc != "" {
					return desc
				}
			}
		}
	}
	return ""
}

func (a *flatpakAdapter) CheckUpdate(ctx context.Context, appID, current string) string {
	out, err := runOutput(ctx, "flatpak", "remote-info", "--cached", "flathub", appID)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "Version:"); ok {
			remote := strings.TrimSpace(rest)
			if remote != "" && remote != current {
				return remote
			}
		}
	}
	return ""
}
