// SPDX-License-Identifier: MPL-2.0

// Package discover searches external package registries for tools the
// user does not have yet. Each registry is a Searcher; results from
// all of them are merged by normalized name so the same tool found on
// crates.io and GitHub shows up once with both install options.
package discover

import (
	"context"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/config"
)

// InstallOption is one way to install a discovered tool.
type InstallOption struct {
	Source  catalog.Source
	Command string
}

// Result is one discovered tool. Stars below zero means the registry
// reported no popularity signal. Origin names the Searcher that
// produced the result.
type Result struct {
	Name        string
	Description string
	Source      catalog.Source
	Origin      string
	Stars       int64
	URL         string
	Options     []InstallOption
}

func newResult(origin, name, description string, src catalog.Source, install string) Result {
	return Result{
		Name:        name,
		Description: description,
		Source:      src,
		Origin:      origin,
		Stars:       -1,
		Options:     []InstallOption{{Source: src, Command: install}},
	}
}

// Searcher queries one registry.
type Searcher interface {
	// Name identifies the registry in logs and search history.
	Name() string
	// Search returns up to limit matches for query, best first.
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// Searchers returns the Searcher set for the enabled sources. GitHub
// is always included; its results are filtered against the enabled
// sources afterwards since a repo's language decides its installer.
func Searchers(sources config.SourcesConfig) []Searcher {
	var out []Searcher
	for _, name := range sources.Enabled() {
		switch name {
		case "cargo":
			out = append(out, cratesSearcher{})
		case "npm":
			out = append(out, npmSearcher{})
		case "pip":
			out = append(out, pypiSearcher{})
		case "brew":
			out = append(out, brewSearcher{})
		case "apt":
			out = append(out, aptSearcher{})
		}
	}
	return append(out, githubSearcher{})
}

// Run queries every enabled registry, merges the results, and records
// the query in the search history. A failing registry is logged and
// skipped so one outage never empties the whole search.
func Run(ctx context.Context, store *catalog.Store, sources config.SourcesConfig, query string, limit int) ([]Result, error) {
	searchers := Searchers(sources)
	enabled := make(map[string]bool)
	names := make([]string, 0, len(searchers))
	for _, name := range sources.Enabled() {
		enabled[name] = true
	}

	var all []Result
	for _, s := range searchers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		names = append(names, s.Name())
		results, err := s.Search(ctx, query, limit)
		if err != nil {
			log.Warn("registry search failed", "registry", s.Name(), "err", err)
			continue
		}
		all = append(all, results...)
	}

	merged := Merge(filterByEnabled(all, enabled))
	if store != nil {
		if err := store.SaveSearch(query, false, strings.Join(names, ",")); err != nil {
			log.Warn("could not record search history", "err", err)
		}
	}
	return merged, nil
}

// filterByEnabled drops GitHub hits whose implied installer is not an
// enabled source. Direct registry hits are already filtered by which
// searchers ran.
func filterByEnabled(results []Result, enabled map[string]bool) []Result {
	kept := results[:0]
	for _, r := range results {
		if r.Origin == githubOrigin && !enabled[r.Source.String()] {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// normalizeName collapses the separator styles registries disagree on
// (ripgrep vs rip-grep vs rip_grep).
func normalizeName(name string) string {
	name = strings.ToLower(name)
	return strings.NewReplacer("-", "", "_", "").Replace(name)
}

// Merge deduplicates results by normalized name. The hit with the most
// stars becomes the primary; install options from the others are folded
// in, and a GitHub hit contributes its description and URL since those
// tend to be the best ones. The merged list is ordered stars-desc, with
// starless results last in name order.
func Merge(results []Result) []Result {
	groups := make(map[string][]Result)
	var order []string
	for _, r := range results {
		key := normalizeName(r.Name)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	merged := make([]Result, 0, len(order))
	for _, key := range order {
		group := groups[key]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Stars > group[j].Stars
		})
		primary := group[0]
		for _, other := range group[1:] {
			for _, opt := range other.Options {
				if !hasOption(primary.Options, opt.Source) {
					primary.Options = append(primary.Options, opt)
				}
			}
			if other.Origin == githubOrigin {
				if other.Description != "" {
					primary.Description = other.Description
				}
				if other.URL != "" {
					primary.URL = other.URL
				}
			}
		}
		merged = append(merged, primary)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		switch {
		case a.Stars >= 0 && b.Stars >= 0:
			return a.Stars > b.Stars
		case a.Stars >= 0:
			return true
		case b.Stars >= 0:
			return false
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	})
	return merged
}

func hasOption(opts []InstallOption, src catalog.Source) bool {
	for _, o := range opts {
		if o.Source == src {
			return true
		}
	}
	return false
}
