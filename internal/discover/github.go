// SPDX-License-Identifier: MPL-2.0

package discover

import (
	"context"
	"strings"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/gh"
)

const githubOrigin = "GitHub"

// searchRepos is swapped out in tests.
var searchRepos = gh.SearchRepos

type githubSearcher struct{}

func (githubSearcher) Name() string { return githubOrigin }

// Search maps each repository's language to the package manager that
// would install it. Repos in languages without a per-user installer
// (Go, C, ...) are dropped since we could not offer an install command.
func (githubSearcher) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	repos, err := searchRepos(ctx, query, limit)
	if err != nil {
		if strings.Contains(err.Error(), "rate limit") {
			return nil, err
		}
		// gh missing or unauthenticated: skip quietly.
		return nil, nil
	}

	var results []Result
	for _, repo := range repos {
		src, install := installerForLanguage(repo.Name, repo.Language)
		if install == "" {
			continue
		}
		r := newResult(githubOrigin, repo.Name, repo.Description, src, install)
		r.Stars = repo.Stars
		r.URL = repo.URL
		results = append(results, r)
	}
	return results, nil
}

func installerForLanguage(name, language string) (catalog.Source, string) {
	switch strings.ToLower(language) {
	case "rust":
		return catalog.SourceCargo, "cargo install " + name
	case "python":
		return catalog.SourcePip, "pip install " + name
	case "javascript", "typescript":
		return catalog.SourceNpm, "npm install -g " + name
	default:
		return catalog.SourceUnknown, ""
	}
}
