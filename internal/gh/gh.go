// SPDX-License-Identifier: MPL-2.0

// Package gh queries GitHub repository metadata through the `gh` CLI.
// All calls go through gh so the user's existing authentication is
// reused and no token handling lives in this codebase. Callers should
// check Available before issuing queries and Limits before bulk work:
// the search API allows only 30 requests per minute versus the core
// API's 5000 per hour.
package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// runGH is swapped out in tests.
var runGH = func(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("gh %s: %s: %w", args[0], msg, err)
		}
		return "", fmt.Errorf("gh %s: %w", args[0], err)
	}
	return stdout.String(), nil
}

// Available reports whether the gh CLI is on PATH and runnable.
func Available() bool {
	_, err := runGH(context.Background(), "--version")
	return err == nil
}

// RateLimit is one GitHub API quota bucket.
type RateLimit struct {
	Limit     int64 `json:"limit"`
	Remaining int64 `json:"remaining"`
	Reset     int64 `json:"reset"`
	Used      int64 `json:"used"`
}

// ResetIn returns the time until the quota window resets, floored at
// zero.
func (r RateLimit) ResetIn() time.Duration {
	d := time.Until(time.Unix(r.Reset, 0))
	if d < 0 {
		return 0
	}
	return d
}

// HasRemaining reports whether needed calls fit in the current window.
func (r RateLimit) HasRemaining(needed int64) bool {
	return r.Remaining >= needed
}

// RateLimits pairs the two quota buckets this package consumes.
type RateLimits struct {
	Core   RateLimit
	Search RateLimit
}

// Limits fetches the core and search rate limits in one API call.
func Limits(ctx context.Context) (RateLimits, error) {
	out, err := runGH(ctx, "api", "rate_limit", "--jq", "{core: .rate, search: .resources.search}")
	if err != nil {
		return RateLimits{}, err
	}
	var limits struct {
		Core   RateLimit `json:"core"`
		Search RateLimit `json:"search"`
	}
	if err := json.Unmarshal([]byte(out), &limits); err != nil {
		return RateLimits{}, fmt.Errorf("parse rate limit response: %w", err)
	}
	return RateLimits{Core: limits.Core, Search: limits.Search}, nil
}

// RepoInfo is the repository detail set used for enrichment.
type RepoInfo struct {
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description string   `json:"description"`
	Stars       int64    `json:"stargazersCount"`
	Language    string   `json:"language"`
	Homepage    string   `json:"homepage"`
	Topics      []string `json:"topics"`
	Owner       string   `json:"owner"`
}

// SearchResult is one hit from the repository search API.
type SearchResult struct {
	Name        string `json:"name"`
	FullName    string `json:"fullName"`
	Description string `json:"description"`
	Stars       int64  `json:"stargazersCount"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// languageFilter narrows a repo search by the language a package
// manager implies. Unknown sources get no filter.
func languageFilter(source string) string {
	switch source {
	case "cargo":
		return "language:rust"
	case "pip":
		return "language:python"
	case "npm":
		return "language:javascript OR language:typescript"
	case "go":
		return "language:go"
	default:
		return ""
	}
}

// SearchRepo finds the best repository match for a tool name. The
// install source, when known, narrows the search by implementation
// language. Returns nil when nothing matches.
func SearchRepo(ctx context.Context, name, source string) (*SearchResult, error) {
	query := name
	if filter := languageFilter(source); filter != "" {
		query = name + " " + filter
	}
	out, err := runGH(ctx, "search", "repos", query,
		"--json", "name,fullName,description,stargazersCount,owner",
		"--limit", "1")
	if err != nil {
		return nil, err
	}
	var results []SearchResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		return nil, fmt.Errorf("parse gh search output: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// RepoSummary is one hit from a multi-result repository search.
type RepoSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int64  `json:"stargazersCount"`
	Language    string `json:"language"`
	URL         string `json:"url"`
}

// SearchRepos returns up to limit repositories matching query, best
// match first.
func SearchRepos(ctx context.Context, query string, limit int) ([]RepoSummary, error) {
	out, err := runGH(ctx, "search", "repos", query,
		"--limit", strconv.Itoa(limit),
		"--json", "name,description,stargazersCount,language,url")
	if err != nil {
		return nil, err
	}
	var repos []RepoSummary
	if err := json.Unmarshal([]byte(out), &repos); err != nil {
		return nil, fmt.Errorf("parse gh search output: %w", err)
	}
	return repos, nil
}

// Repo fetches full details, including topics, for one repository.
func Repo(ctx context.Context, owner, repo string) (*RepoInfo, error) {
	out, err := runGH(ctx, "api", fmt.Sprintf("repos/%s/%s", owner, repo),
		"--jq", `{name, full_name, description, stargazersCount: .stargazers_count, language, homepage, topics, owner: .owner.login}`)
	if err != nil {
		return nil, err
	}
	var info RepoInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		return nil, fmt.Errorf("parse gh api output: %w", err)
	}
	return &info, nil
}

// FindRepo searches for a tool's repository and, on a hit, fetches its
// full details. Returns nil when the search comes up empty.
func FindRepo(ctx context.Context, name, source string) (*RepoInfo, error) {
	hit, err := SearchRepo(ctx, name, source)
	if err != nil || hit == nil {
		return nil, err
	}
	return Repo(ctx, hit.Owner.Login, hit.Name)
}
