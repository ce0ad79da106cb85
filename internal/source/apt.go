// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"fmt"
	"strings"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/known"
)

type aptAdapter struct{}

func (a *aptAdapter) Name() string            { return "apt" }
func (a *aptAdapter) Variant() catalog.Source { return catalog.SourceApt }
func (a *aptAdapter) SupportsUpdates() bool   { return false }

func (a *aptAdapter) InstallCommand(name string) string {
	return "sudo apt install " + name
}

func (a *aptAdapter) UninstallCommand(name string) string {
	return "sudo apt remove " + name
}

// Sections that hold desktop software rather than CLI tools.
var guiSections = []string{
	"x11", "gnome", "kde", "xfce", "lxde", "lxqt", "mate", "cinnamon",
	"graphics", "video", "sound", "games", "fonts", "libdevel",
}

// Library prefixes in apt-cache depends output that mark a package as
// graphical.
var guiDeps = []string{
	"libgtk", "libqt", "libx11", "libwayland", "libgl", "libvulkan",
	"libsdl", "libegl", "libgdk", "libwx", "libfltk", "libcairo",
	"libpango", "libglib", "libgio",
}

var guiPackages = []string{
	"firefox", "thunderbird", "chrome", "chromium", "code", "slack",
	"discord", "telegram", "signal", "spotify", "vlc", "gimp",
	"inkscape", "blender", "libreoffice", "solaar", "claude-desktop",
}

var guiPatterns = []string{
	"-gtk", "-gnome", "-kde", "-qt", "-gui", "-desktop", "-applet",
}

// sectionToCategory maps an apt section like "universe/utils" to a
// catalog category.
func sectionToCategory(section string) string {
	base := section
	if i := strings.LastIndexByte(section, '/'); i >= 0 {
		base = section[i+1:]
	}
	switch base {
	case "admin", "utils", "kernel", "embedded":
		return "system"
	case "devel", "debug", "electronics":
		return "dev"
	case "net", "web", "mail", "comm":
		return "network"
	case "text":
		return "text"
	case "editors":
		return "editor"
	case "shells":
		return "shell"
	case "vcs":
		return "git"
	case "database", "science", "math":
		return "data"
	case "interpreters", "perl", "python", "javascript", "ruby", "rust", "golang":
		return "lang"
	case "doc", "documentation":
		return "docs"
	default:
		return "cli"
	}
}

// skipAptPackage applies the static filters: GUI sections, library and
// doc packages, curated-known names, and GUI naming patterns.
func skipAptPackage(pkg, section string) bool {
	for _, s := range guiSections {
		if strings.Contains(section, s) {
			return true
		}
	}
	if strings.HasPrefix(pkg, "lib") ||
		strings.HasSuffix(pkg, "-dev") ||
		strings.HasSuffix(pkg, "-doc") {
		return true
	}
	for _, p := range guiPackages {
		if strings.Contains(pkg, p) {
			return true
		}
	}
	for _, p := range guiPatterns {
		if strings.Contains(pkg, p) {
			return true
		}
	}
	return known.IsKnown(pkg)
}

// hasGUIDependencies asks apt-cache whether the package pulls in
// graphical libraries.
func hasGUIDependencies(ctx context.Context, pkg string) bool {
	out, err := runOutput(ctx, "apt-cache", "depends", pkg)
	if err != nil {
		return false
	}
	deps := strings.ToLower(out)
	for _, dep := range guiDeps {
		if strings.Contains(deps, dep) {
			return true
		}
	}
	return false
}

func (a *aptAdapter) Scan(ctx context.Context) ([]catalog.Tool, error) {
	if !commandExists("dpkg-query") {
		return nil, fmt.Errorf("dpkg is not installed")
	}
	out, err := runOutput(ctx, "dpkg-query", "-W", "-f", "${Package}\t${Section}\t${binary:Summary}\n")
	if err != nil {
		return nil, err
	}

	var tools []catalog.Tool
	for _, line := range strings.Split(out, "\n") {
		pkg, section, desc, ok := splitAptLine(line)
		if !ok || skipAptPackage(pkg, section) {
			continue
		}
		// Only packages that ship a same-named binary on PATH count as
		// CLI tools.
		if !commandExists(pkg) {
			continue
		}
		if hasGUIDependencies(ctx, pkg) {
			continue
		}
		tools = append(tools, catalog.NewTool(pkg).
			WithSource(catalog.SourceApt).
			WithCategory(sectionToCategory(section)).
			WithDescription(desc).
			WithInstallCommand("sudo apt install "+pkg).
			Installed())
	}
	return tools, nil
}

// splitAptLine splits one dpkg-query line into package, section, and
// summary. The summary field is optional.
func splitAptLine(line string) (pkg, section, desc string, ok bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 2 || parts[0] == "" {
		return "", "", "", false
	}
	pkg, section = parts[0], parts[1]
	if len(parts) == 3 {
		desc = strings.TrimSpace(parts[2])
	}
	return pkg, section, desc, true
}

// FetchDescription reads the local package summary. apt has no remote
// description API worth querying.
func (a *aptAdapter) FetchDescription(ctx context.Context, pkg string) string {
	out, err := runOutput(ctx, "dpkg-query", "-W", "-f", "${binary:Summary}", pkg)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func (a *aptAdapter) CheckUpdate(ctx context.Context, name, current string) string {
	return ""
}
