// SPDX-License-Identifier: MPL-2.0

package update

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/config"
	"hoards-cli/internal/source"
)

// Update is one available version bump within a single manager.
type Update struct {
	Name    string
	Current string
	Latest  string
	Source  catalog.Source
}

// CheckOutdated runs the per-manager check for one source. Managers
// without a check return nothing.
func CheckOutdated(ctx context.Context, src catalog.Source) ([]Update, error) {
	switch src {
	case catalog.SourceCargo:
		return checkCargo(ctx)
	case catalog.SourcePip:
		return checkPip(ctx)
	case catalog.SourceNpm:
		return checkNpm(ctx)
	case catalog.SourceApt:
		return checkApt(ctx)
	case catalog.SourceBrew:
		return checkBrew(ctx)
	default:
		return nil, nil
	}
}

// checkOutdated is a seam for CheckAllOutdated tests.
var checkOutdated = CheckOutdated

// CheckAllOutdated runs the check for every enabled manager, swallowing
// per-manager failures (a missing manager is not an error for the host).
func CheckAllOutdated(ctx context.Context, sources config.SourcesConfig) []Update {
	var all []Update
	for _, src := range []catalog.Source{
		catalog.SourceCargo, catalog.SourcePip, catalog.SourceNpm,
		catalog.SourceApt, catalog.SourceBrew,
	} {
		if !sources.IsEnabled(src.String()) {
			continue
		}
		updates, err := checkOutdated(ctx, src)
		if err != nil {
			continue
		}
		all = append(all, updates...)
	}
	return all
}

func runOutput(ctx context.Context, program string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, program, args...).Output()
	if err != nil {
		return string(out), fmt.Errorf("failed to run %s: %w", program, err)
	}
	return string(out), nil
}

// checkCargo walks `cargo install --list` and asks crates.io for each
// crate's newest stable version.
func checkCargo(ctx context.Context) ([]Update, error) {
	out, err := runOutput(ctx, "cargo", "install", "--list")
	if err != nil {
		return nil, err
	}
	adapter := source.ByName("cargo")

	var updates []Update
	for _, line := range strings.Split(out, "\n") {
		if line == "" || strings.HasPrefix(line, " ") {
			continue
		}
		name, current, ok := parseCargoHeader(line)
		if !ok {
			continue
		}
		latest := adapter.CheckUpdate(ctx, name, current)
		if latest != "" && IsNewer(latest, current) {
			updates = append(updates, Update{Name: name, Current: current, Latest: latest, Source: catalog.SourceCargo})
		}
	}
	return updates, nil
}

// parseCargoHeader reads a "crate v1.2.3:" header line.
func parseCargoHeader(line string) (name, version string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", false
	}
	version = strings.TrimSuffix(strings.TrimPrefix(fields[1], "v"), ":")
	return fields[0], version, true
}

func checkPip(ctx context.Context) ([]Update, error) {
	bin := "pip3"
	if _, err := exec.LookPath(bin); err != nil {
		bin = "pip"
	}
	out, err := runOutput(ctx, bin, "list", "--outdated", "--format=json")
	if err != nil {
		return nil, err
	}
	return parsePipOutdated(out)
}

func parsePipOutdated(out string) ([]Update, error) {
	var parsed []struct {
		Name          string `json:"name"`
		Version       string `json:"version"`
		LatestVersion string `json:"latest_version"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse pip outdated output: %w", err)
	}
	var updates []Update
	for _, p := range parsed {
		if p.Name == "" || p.Version == "" || p.LatestVersion == "" {
			continue
		}
		updates = append(updates, Update{Name: p.Name, Current: p.Version, Latest: p.LatestVersion, Source: catalog.SourcePip})
	}
	return updates, nil
}

// checkNpm reads `npm outdated -g --json`. npm exits 1 when anything
// is outdated, so the exit code is ignored as long as there is output.
func checkNpm(ctx context.Context) ([]Update, error) {
	out, _ := exec.CommandContext(ctx, "npm", "outdated", "-g", "--json").Output()
	return parseNpmOutdated(string(out))
}

func parseNpmOutdated(out string) ([]Update, error) {
	out = strings.TrimSpace(out)
	if out == "" || out == "{}" {
		return nil, nil
	}
	var parsed map[string]struct {
		Current string `json:"current"`
		Latest  string `json:"latest"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse npm outdated output: %w", err)
	}
	names := make([]string, 0, len(parsed))
	for name := range parsed {
		names = append(names, name)
	}
	sort.Strings(names)

	var updates []Update
	for _, name := range names {
		info := parsed[name]
		if info.Current == "" || info.Latest == "" || info.Current == info.Latest {
			continue
		}
		updates = append(updates, Update{Name: name, Current: info.Current, Latest: info.Latest, Source: catalog.SourceNpm})
	}
	return updates, nil
}

func checkApt(ctx context.Context) ([]Update, error) {
	out, err := runOutput(ctx, "apt", "list", "--upgradable")
	if err != nil {
		return nil, err
	}
	return parseAptUpgradable(out), nil
}

// parseAptUpgradable reads lines shaped like
// "pkg/stable 2.0 amd64 [upgradable from: 1.0]", skipping the
// "Listing..." banner.
func parseAptUpgradable(out string) []Update {
	var updates []Update
	lines := strings.Split(out, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}
		name, _, _ := strings.Cut(fields[0], "/")
		latest := fields[1]
		var current string
		for i, f := range fields {
			if f == "from:" && i+1 < len(fields) {
				current = strings.TrimSuffix(fields[i+1], "]")
				break
			}
		}
		if name == "" || current == "" {
			continue
		}
		updates = append(updates, Update{Name: name, Current: current, Latest: latest, Source: catalog.SourceApt})
	}
	return updates
}

func checkBrew(ctx context.Context) ([]Update, error) {
	out, err := runOutput(ctx, "brew", "outdated", "--json")
	if err != nil {
		return nil, err
	}
	return parseBrewOutdated(out)
}

func parseBrewOutdated(out string) ([]Update, error) {
	var parsed struct {
		Formulae []struct {
			Name              string   `json:"name"`
			InstalledVersions []string `json:"installed_versions"`
			CurrentVersion    string   `json:"current_version"`
		} `json:"formulae"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse brew outdated output: %w", err)
	}
	var updates []Update
	for _, f := range parsed.Formulae {
		if f.Name == "" || len(f.InstalledVersions) == 0 || f.CurrentVersion == "" {
			continue
		}
		updates = append(updates, Update{
			Name:    f.Name,
			Current: f.InstalledVersions[0],
			Latest:  f.CurrentVersion,
			Source:  catalog.SourceBrew,
		})
	}
	return updates, nil
}

// InstalledVersion asks the tool's manager what version is present.
// Managers without a version query return "".
func InstalledVersion(ctx context.Context, name string, src catalog.Source) string {
	switch src {
	case catalog.SourceCargo:
		return cargoVersion(ctx, name)
	case catalog.SourcePip:
		return pipVersion(ctx, name)
	case catalog.SourceNpm:
		return npmVersion(ctx, name)
	case catalog.SourceApt:
		return aptVersion(ctx, name)
	default:
		return ""
	}
}

func cargoVersion(ctx context.Context, crate string) string {
	out, err := runOutput(ctx, "cargo", "install", "--list")
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, " ") {
			continue
		}
		name, version, ok := parseCargoHeader(line)
		if ok && name == crate {
			return version
		}
	}
	return ""
}

func pipVersion(ctx context.Context, pkg string) string {
	bin := "pip3"
	if _, err := exec.LookPath(bin); err != nil {
		bin = "pip"
	}
	out, err := runOutput(ctx, bin, "show", pkg)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, "Version:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

func npmVersion(ctx context.Context, pkg string) string {
	out, err := runOutput(ctx, "npm", "list", "-g", pkg, "--depth=0", "--json")
	if err != nil {
		return ""
	}
	var parsed struct {
		Dependencies map[string]struct {
			Version string `json:"version"`
		} `json:"dependencies"`
	}
	if json.Unmarshal([]byte(out), &parsed) != nil {
		return ""
	}
	return parsed.Dependencies[pkg].Version
}

func aptVersion(ctx context.Context, pkg string) string {
	out, err := runOutput(ctx, "dpkg-query", "-W", "-f", "${Version}", pkg)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
