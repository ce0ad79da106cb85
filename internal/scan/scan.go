// SPDX-License-Identifier: MPL-2.0

// Package scan walks the local system for CLI tools and reconciles the
// catalog with what is actually on PATH. A full scan layers three
// passes: the curated known-tools table, every package-manager adapter,
// and a sweep of common binary directories for anything untracked.
package scan

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/config"
	"hoards-cli/internal/known"
	"hoards-cli/internal/source"
)

// Seams for the scan passes, swapped out by tests.
var (
	scanKnown   = known.ScanKnown
	allAdapters = source.All
	scanPath    = ScanPath
)

// StatusChange records an installation-state flip detected by SyncStatus.
type StatusChange struct {
	Name      string
	Installed bool
}

// Found is a tool discovered during a scan, tagged with the pass that
// produced it ("known", an adapter name, or "path").
type Found struct {
	Tool   catalog.Tool
	Origin string
}

// Report summarizes a Scan run.
type Report struct {
	Added     []Found
	Skipped   int // already tracked
	Described int // descriptions fetched for newly added tools
}

// DescriptionUpdate is one result from a description fetch pass. An
// empty Description means nothing usable was found; Origin names where
// the text came from (registry name, "man", or "--help").
type DescriptionUpdate struct {
	Name        string
	Description string
	Origin      string
}

// SyncStatus probes every tracked tool's binary on PATH and flips
// is_installed where the catalog disagrees with reality. With dryRun
// set the drift is reported but not written back.
func SyncStatus(ctx context.Context, store *catalog.Store, dryRun bool) ([]StatusChange, error) {
	tools, err := store.ListTools(false, "")
	if err != nil {
		return nil, err
	}

	var changes []StatusChange
	for _, t := range tools {
		if err := ctx.Err(); err != nil {
			return changes, err
		}
		_, lookErr := exec.LookPath(t.Binary())
		installed := lookErr == nil
		if installed == t.IsInstalled {
			continue
		}
		if !dryRun {
			if err := store.SetInstalled(t.Name, installed); err != nil {
				return changes, err
			}
		}
		changes = append(changes, StatusChange{Name: t.Name, Installed: installed})
	}
	return changes, nil
}

// Scan discovers tools the catalog does not track yet. Passes run in
// order: curated known tools, each enabled package-manager adapter
// (manual is skipped, disabled and missing managers are skipped
// silently), then a PATH sweep for untracked binaries. Newly inserted
// tools without a description get one fetched in parallel afterwards.
func Scan(ctx context.Context, store *catalog.Store, sources config.SourcesConfig, dryRun bool) (Report, error) {
	var report Report

	tracked := make(map[string]struct{})
	existing, err := store.ListTools(false, "")
	if err != nil {
		return report, err
	}
	for _, t := range existing {
		tracked[t.Name] = struct{}{}
		tracked[t.Binary()] = struct{}{}
	}

	// One pass worth of results. Tools already in the catalog count as
	// skipped; the rest are inserted and remembered for the description
	// fan-out below.
	var needDesc []catalog.Tool
	ingest := func(tools []catalog.Tool, origin string) error {
		for _, t := range tools {
			tracked[t.Name] = struct{}{}
			tracked[t.Binary()] = struct{}{}

			has, err := store.HasTool(t.Name)
			if err != nil {
				return err
			}
			if has {
				report.Skipped++
				continue
			}
			if !dryRun {
				if err := store.InsertTool(t); err != nil {
					if errors.Is(err, catalog.ErrDuplicate) {
						report.Skipped++
						continue
					}
					return err
				}
			}
			report.Added = append(report.Added, Found{Tool: t, Origin: origin})
			if t.Description == "" {
				needDesc = append(needDesc, t)
			}
		}
		return nil
	}

	if err := ingest(scanKnown(), "known"); err != nil {
		return report, err
	}

	for _, adapter := range allAdapters() {
		if adapter.Name() == "manual" || !sources.IsEnabled(adapter.Name()) {
			continue
		}
		tools, err := adapter.Scan(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			if !managerMissing(err) {
				log.Warn("source scan failed", "source", adapter.Name(), "err", err)
			}
			continue
		}
		if err := ingest(tools, adapter.Name()); err != nil {
			return report, err
		}
	}

	pathTools, err := scanPath(tracked)
	if err != nil {
		log.Warn("path scan failed", "err", err)
	} else if err := ingest(pathTools, "path"); err != nil {
		return report, err
	}

	if len(needDesc) > 0 && !dryRun {
		updates := fetchAll(ctx, needDesc)
		for _, u := range updates {
			if u.Description == "" {
				continue
			}
			if _, err := store.UpdateDescription(u.Name, u.Description); err != nil {
				return report, err
			}
			report.Described++
		}
	}

	return report, nil
}

// FetchDescriptions fills in descriptions for every tracked tool that
// lacks one. Lookups run in parallel; writes happen serially after all
// fetches complete. Entries with an empty Description found nothing.
func FetchDescriptions(ctx context.Context, store *catalog.Store, dryRun bool) ([]DescriptionUpdate, error) {
	tools, err := store.ListTools(false, "")
	if err != nil {
		return nil, err
	}

	var missing []catalog.Tool
	for _, t := range tools {
		if t.Description == "" {
			missing = append(missing, t)
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}

	updates := fetchAll(ctx, missing)
	if !dryRun {
		for _, u := range updates {
			if u.Description == "" {
				continue
			}
			if _, err := store.UpdateDescription(u.Name, u.Description); err != nil {
				return updates, err
			}
		}
	}
	return updates, nil
}

// fetchAll resolves descriptions for the given tools concurrently, one
// goroutine per tool. Results land in a pre-sized slice so no locking
// is needed; callers do the catalog writes serially.
func fetchAll(ctx context.Context, tools []catalog.Tool) []DescriptionUpdate {
	updates := make([]DescriptionUpdate, len(tools))
	g, ctx := errgroup.WithContext(ctx)
	for i, t := range tools {
		g.Go(func() error {
			desc, origin := Describe(ctx, t)
			updates[i] = DescriptionUpdate{Name: t.Name, Description: desc, Origin: origin}
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors
	return updates
}

// Describe finds a description for a tool: its source's registry first,
// then the man database, then --help output. The second return names
// where the text came from; both are empty when nothing was found.
func Describe(ctx context.Context, t catalog.Tool) (string, string) {
	pkg := packageFromInstallCommand(t.InstallCommand)
	if pkg == "" {
		pkg = t.Name
	}

	if adapter := source.ForVariant(t.Source); adapter != nil {
		if desc := adapter.FetchDescription(ctx, pkg); desc != "" {
			return desc, adapter.Name()
		}
	}

	if desc := source.ManDescription(ctx, t.Binary()); desc != "" {
		return desc, "man"
	}
	if desc := source.HelpDescription(ctx, t.Binary()); desc != "" {
		return desc, "--help"
	}
	return "", ""
}

var installPrefixes = []string{
	"cargo install ",
	"pip install ",
	"npm install -g ",
	"brew install ",
	"sudo apt install ",
}

// packageFromInstallCommand pulls the package name out of a stored
// install command, so "cargo install git-delta" resolves the crate
// git-delta rather than the tool name delta.
func packageFromInstallCommand(cmd string) string {
	for _, prefix := range installPrefixes {
		rest, ok := strings.CutPrefix(cmd, prefix)
		if !ok {
			continue
		}
		pkg, _, _ := strings.Cut(rest, " ")
		if pkg != "" && !strings.HasPrefix(pkg, "-") {
			return pkg
		}
	}
	return ""
}

// managerMissing reports whether a scan error just means the package
// manager itself is absent from this machine.
func managerMissing(err error) bool {
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	return strings.Contains(err.Error(), "is not installed")
}
