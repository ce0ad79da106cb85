// SPDX-License-Identifier: MPL-2.0

package discover

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"hoards-cli/internal/catalog"
)

// runSearch is swapped out in tests.
var runSearch = func(ctx context.Context, program string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, program, args...)
	var stdout strings.Builder
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to run %s: %w", program, err)
	}
	return stdout.String(), nil
}

// brewSearcher shells out to the local brew, which searches the full
// formula index without any network round trip of our own.
type brewSearcher struct{}

func (brewSearcher) Name() string { return "Homebrew" }

func (brewSearcher) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	out, err := runSearch(ctx, "brew", "search", query)
	if err != nil {
		// A failing brew (or none installed) is an empty result,
		// not an error.
		return nil, nil
	}

	var results []Result
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "==>") {
			continue
		}
		if len(results) == limit {
			break
		}
		r := newResult("Homebrew", line, "", catalog.SourceBrew, "brew install "+line)
		r.URL = "https://formulae.brew.sh/formula/" + line
		results = append(results, r)
	}
	return results, nil
}

type aptSearcher struct{}

func (aptSearcher) Name() string { return "apt" }

func (aptSearcher) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	out, err := runSearch(ctx, "apt-cache", "search", query)
	if err != nil {
		return nil, nil
	}

	var results []Result
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(results) == limit {
			break
		}
		// apt-cache search format: "package - description"
		name, desc, _ := strings.Cut(line, " - ")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		results = append(results, newResult("apt", name, strings.TrimSpace(desc),
			catalog.SourceApt, "sudo apt install "+name))
	}
	return results, nil
}
