// SPDX-License-Identifier: MPL-2.0

package discover

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/config"
	"hoards-cli/internal/gh"
)

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"ripgrep", "ripgrep"},
		{"rip-grep", "ripgrep"},
		{"rip_grep", "ripgrep"},
		{"Rip-Grep", "ripgrep"},
	}
	for _, tt := range tests {
		if got := normalizeName(tt.in); got != tt.want {
			t.Errorf("normalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	crates := newResult("crates.io", "ripgrep", "Fast grep", catalog.SourceCargo, "cargo install ripgrep")
	crates.Stars = 100
	github := newResult(githubOrigin, "rip-grep", "Line-oriented search tool", catalog.SourceCargo, "cargo install ripgrep")
	github.Stars = 50000
	github.URL = "https://github.com/BurntSushi/ripgrep"

	merged := Merge([]Result{crates, github})
	if len(merged) != 1 {
		t.Fatalf("got %d results, want 1 merged: %+v", len(merged), merged)
	}
	// The starrier hit wins the primary slot.
	if merged[0].Name != "rip-grep" {
		t.Errorf("primary = %q, want the GitHub hit", merged[0].Name)
	}
	if len(merged[0].Options) != 1 {
		t.Errorf("identical sources should not duplicate options: %+v", merged[0].Options)
	}
}

func TestMergeFoldsInstallOptions(t *testing.T) {
	t.Parallel()

	brew := newResult("Homebrew", "fd", "", catalog.SourceBrew, "brew install fd")
	github := newResult(githubOrigin, "fd", "A simple, fast alternative to find", catalog.SourceCargo, "cargo install fd")
	github.Stars = 30000
	github.URL = "https://github.com/sharkdp/fd"

	merged := Merge([]Result{brew, github})
	if len(merged) != 1 {
		t.Fatalf("got %d results, want 1", len(merged))
	}
	got := merged[0]
	if len(got.Options) != 2 {
		t.Fatalf("options = %+v, want cargo and brew", got.Options)
	}
	// Primary is GitHub (more stars) and keeps its own description/URL.
	if got.Description != "A simple, fast alternative to find" {
		t.Errorf("description = %q", got.Description)
	}
}

func TestMergePrefersGitHubMetadata(t *testing.T) {
	t.Parallel()

	crates := newResult("crates.io", "bat", "cat clone", catalog.SourceCargo, "cargo install bat")
	crates.Stars = 99999 // crates wins primary on pseudo-stars
	github := newResult(githubOrigin, "bat", "A cat(1) clone with wings", catalog.SourceCargo, "cargo install bat")
	github.Stars = 40000
	github.URL = "https://github.com/sharkdp/bat"

	merged := Merge([]Result{crates, github})
	if len(merged) != 1 {
		t.Fatalf("got %d results, want 1", len(merged))
	}
	if merged[0].Description != "A cat(1) clone with wings" {
		t.Errorf("GitHub description should win: %q", merged[0].Description)
	}
	if merged[0].URL != "https://github.com/sharkdp/bat" {
		t.Errorf("GitHub URL should win: %q", merged[0].URL)
	}
}

func TestMergeOrdering(t *testing.T) {
	t.Parallel()

	starless := newResult("apt", "zzz-tool", "", catalog.SourceApt, "sudo apt install zzz-tool")
	starless2 := newResult("apt", "aaa-tool", "", catalog.SourceApt, "sudo apt install aaa-tool")
	starred := newResult(githubOrigin, "mid", "", catalog.SourceCargo, "cargo install mid")
	starred.Stars = 5

	merged := Merge([]Result{starless, starred, starless2})
	want := []string{"mid", "aaa-tool", "zzz-tool"}
	for i, name := range want {
		if merged[i].Name != name {
			t.Fatalf("order = %v, want starred first then alphabetical", names(merged))
		}
	}
}

func names(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}
	return out
}

func TestCratesSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "grep" {
			t.Errorf("query = %q, want grep", got)
		}
		fmt.Fprint(w, `{"crates": [
			{"name": "ripgrep", "description": "Fast search", "downloads": 5000000},
			{"name": "grep-lite", "description": null, "downloads": 300}
		]}`)
	}))
	defer srv.Close()

	orig := cratesSearchURL
	cratesSearchURL = srv.URL
	defer func() { cratesSearchURL = orig }()

	results, err := cratesSearcher{}.Search(context.Background(), "grep", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Stars != 5000 {
		t.Errorf("downloads/1000 = %d, want 5000", results[0].Stars)
	}
	if results[0].Options[0].Command != "cargo install ripgrep" {
		t.Errorf("install = %q", results[0].Options[0].Command)
	}
	if results[1].Stars != 0 {
		t.Errorf("low-download crate stars = %d, want 0", results[1].Stars)
	}
}

func TestNpmSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"objects": [
			{"package": {"name": "tldr", "description": "Simplified man pages"},
			 "score": {"final": 0.9123}}
		]}`)
	}))
	defer srv.Close()

	orig := npmSearchURL
	npmSearchURL = srv.URL
	defer func() { npmSearchURL = orig }()

	results, err := npmSearcher{}.Search(context.Background(), "tldr", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Stars != 912 {
		t.Errorf("score*1000 = %d, want 912", results[0].Stars)
	}
	if results[0].Options[0].Command != "npm install -g tldr" {
		t.Errorf("install = %q", results[0].Options[0].Command)
	}
}

func TestPyPISearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>
			<span class="package-snippet__name">httpie</span>
			<p class="package-snippet__description">Modern HTTP client</p>
			<span class="package-snippet__name">requests</span>
			<p class="package-snippet__description"></p>
		</html>`)
	}))
	defer srv.Close()

	orig := pypiSearchURL
	pypiSearchURL = srv.URL
	defer func() { pypiSearchURL = orig }()

	results, err := pypiSearcher{}.Search(context.Background(), "http", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(results), results)
	}
	if results[0].Name != "httpie" || results[0].Description != "Modern HTTP client" {
		t.Errorf("first result = %+v", results[0])
	}
	if results[1].Description != "" {
		t.Errorf("empty description should stay empty: %+v", results[1])
	}
	if results[0].Options[0].Command != "pip install httpie" {
		t.Errorf("install = %q", results[0].Options[0].Command)
	}
}

func TestPyPISearchRespectsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 10; i++ {
			fmt.Fprintf(w, `<span class="package-snippet__name">pkg%d</span>`, i)
		}
	}))
	defer srv.Close()

	orig := pypiSearchURL
	pypiSearchURL = srv.URL
	defer func() { pypiSearchURL = orig }()

	results, err := pypiSearcher{}.Search(context.Background(), "x", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want limit of 3", len(results))
	}
}

func stubRunSearch(t *testing.T, fn func(program string, args ...string) (string, error)) {
	t.Helper()
	orig := runSearch
	runSearch = func(_ context.Context, program string, args ...string) (string, error) {
		return fn(program, args...)
	}
	t.Cleanup(func() { runSearch = orig })
}

func TestBrewSearch(t *testing.T) {
	stubRunSearch(t, func(program string, args ...string) (string, error) {
		if program != "brew" {
			t.Fatalf("program = %q", program)
		}
		return "==> Formulae\nripgrep\nripgrep-all\n\n==> Casks\n", nil
	})

	results, err := brewSearcher{}.Search(context.Background(), "ripgrep", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(results), results)
	}
	if results[0].Options[0].Command != "brew install ripgrep" {
		t.Errorf("install = %q", results[0].Options[0].Command)
	}
}

func TestBrewSearchMissingBrew(t *testing.T) {
	stubRunSearch(t, func(program string, args ...string) (string, error) {
		return "", fmt.Errorf("failed to run brew: executable not found")
	})

	results, err := brewSearcher{}.Search(context.Background(), "x", 10)
	if err != nil || results != nil {
		t.Errorf("missing brew should be an empty result, got (%v, %v)", results, err)
	}
}

func TestAptSearch(t *testing.T) {
	stubRunSearch(t, func(program string, args ...string) (string, error) {
		if program != "apt-cache" {
			t.Fatalf("program = %q", program)
		}
		return "ripgrep - recursively searches directories for a regex pattern\nfd-find - simple, fast and user-friendly alternative to find\n", nil
	})

	results, err := aptSearcher{}.Search(context.Background(), "search", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Name != "ripgrep" ||
		results[0].Description != "recursively searches directories for a regex pattern" {
		t.Errorf("first result = %+v", results[0])
	}
	if results[1].Options[0].Command != "sudo apt install fd-find" {
		t.Errorf("install = %q", results[1].Options[0].Command)
	}
}

func stubSearchRepos(t *testing.T, fn func(query string, limit int) ([]gh.RepoSummary, error)) {
	t.Helper()
	orig := searchRepos
	searchRepos = func(_ context.Context, query string, limit int) ([]gh.RepoSummary, error) {
		return fn(query, limit)
	}
	t.Cleanup(func() { searchRepos = orig })
}

func TestGitHubSearch(t *testing.T) {
	stubSearchRepos(t, func(query string, limit int) ([]gh.RepoSummary, error) {
		return []gh.RepoSummary{
			{Name: "ripgrep", Description: "line-oriented search", Stars: 45000, Language: "Rust", URL: "https://github.com/BurntSushi/ripgrep"},
			{Name: "glow", Description: "markdown on the CLI", Stars: 15000, Language: "Go"},
			{Name: "httpie", Description: "modern HTTP client", Stars: 30000, Language: "Python"},
		}, nil
	})

	results, err := githubSearcher{}.Search(context.Background(), "search", 10)
	if err != nil {
		t.Fatal(err)
	}
	// The Go repo is dropped: no per-user installer to offer.
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(results), results)
	}
	if results[0].Source != catalog.SourceCargo || results[0].Options[0].Command != "cargo install ripgrep" {
		t.Errorf("rust repo mapped wrong: %+v", results[0])
	}
	if results[1].Source != catalog.SourcePip {
		t.Errorf("python repo mapped wrong: %+v", results[1])
	}
}

func TestGitHubSearchRateLimit(t *testing.T) {
	stubSearchRepos(t, func(query string, limit int) ([]gh.RepoSummary, error) {
		return nil, fmt.Errorf("gh search: API rate limit exceeded")
	})
	if _, err := (githubSearcher{}).Search(context.Background(), "x", 10); err == nil {
		t.Fatal("rate limit should surface as an error")
	}

	stubSearchRepos(t, func(query string, limit int) ([]gh.RepoSummary, error) {
		return nil, fmt.Errorf("gh search: executable not found")
	})
	results, err := githubSearcher{}.Search(context.Background(), "x", 10)
	if err != nil || results != nil {
		t.Errorf("missing gh should be an empty result, got (%v, %v)", results, err)
	}
}

func TestSearchers(t *testing.T) {
	t.Parallel()

	var sources config.SourcesConfig
	sources.Cargo = true
	sources.Brew = true

	got := Searchers(sources)
	var gotNames []string
	for _, s := range got {
		gotNames = append(gotNames, s.Name())
	}
	want := []string{"crates.io", "Homebrew", "GitHub"}
	if len(gotNames) != len(want) {
		t.Fatalf("searchers = %v, want %v", gotNames, want)
	}
	for i := range want {
		if gotNames[i] != want[i] {
			t.Fatalf("searchers = %v, want %v", gotNames, want)
		}
	}
}

func TestRunRecordsHistory(t *testing.T) {
	store, err := catalog.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	stubSearchRepos(t, func(query string, limit int) ([]gh.RepoSummary, error) {
		return []gh.RepoSummary{
			{Name: "ripgrep", Stars: 45000, Language: "Rust"},
		}, nil
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"crates": []}`)
	}))
	defer srv.Close()
	origURL := cratesSearchURL
	cratesSearchURL = srv.URL
	defer func() { cratesSearchURL = origURL }()

	var sources config.SourcesConfig
	sources.Cargo = true
	results, err := Run(context.Background(), store, sources, "grep", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Name != "ripgrep" {
		t.Fatalf("results = %+v", results)
	}

	history, err := store.RecentSearches(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Query != "grep" {
		t.Fatalf("history = %+v", history)
	}
	if !strings.Contains(history[0].SourceFilters, "GitHub") {
		t.Errorf("source filters = %q, want searcher names", history[0].SourceFilters)
	}
}

func TestRunFiltersGitHubByEnabledSources(t *testing.T) {
	stubSearchRepos(t, func(query string, limit int) ([]gh.RepoSummary, error) {
		return []gh.RepoSummary{
			{Name: "httpie", Stars: 30000, Language: "Python"},
		}, nil
	})

	var sources config.SourcesConfig
	sources.Apt = true // pip is disabled, so a Python repo has no usable installer
	stubRunSearch(t, func(program string, args ...string) (string, error) {
		return "", nil
	})

	results, err := Run(context.Background(), nil, sources, "http", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("disabled-source GitHub hit should be dropped: %+v", results)
	}
}
