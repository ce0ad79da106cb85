// SPDX-License-Identifier: MPL-2.0

package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hoards-cli/internal/catalog"
)

// Registry searches are best-effort; anything slower than this is a
// miss.
var searchClient = &http.Client{Timeout: 5 * time.Second}

const (
	searchUserAgent = "hoards-cli"
	maxSearchBody   = 1 << 20
)

// Base URLs are vars so tests can point them at httptest servers.
var (
	cratesSearchURL = "https://crates.io/api/v1/crates"
	npmSearchURL    = "https://registry.npmjs.org/-/v1/search"
	pypiSearchURL   = "https://pypi.org/search/"
)

func searchGet(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", searchUserAgent)

	resp, err := searchClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("registry returned %s for %s", resp.Status, rawURL)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxSearchBody))
}

type cratesSearcher struct{}

func (cratesSearcher) Name() string { return "crates.io" }

func (cratesSearcher) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	q := url.Values{"q": {query}, "per_page": {strconv.Itoa(limit)}}
	body, err := searchGet(ctx, cratesSearchURL+"?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var payload struct {
		Crates []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Downloads   int64  `json:"downloads"`
		} `json:"crates"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse crates.io response: %w", err)
	}

	results := make([]Result, 0, len(payload.Crates))
	for _, c := range payload.Crates {
		r := newResult("crates.io", c.Name, c.Description, catalog.SourceCargo, "cargo install "+c.Name)
		// Downloads stand in for stars so crates sort sensibly
		// against GitHub results.
		r.Stars = c.Downloads / 1000
		r.URL = "https://crates.io/crates/" + c.Name
		results = append(results, r)
	}
	return results, nil
}

type npmSearcher struct{}

func (npmSearcher) Name() string { return "npm" }

func (npmSearcher) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	q := url.Values{"text": {query}, "size": {strconv.Itoa(limit)}}
	body, err := searchGet(ctx, npmSearchURL+"?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var payload struct {
		Objects []struct {
			Package struct {
				Name        string `json:"name"`
				Description string `json:"description"`
			} `json:"package"`
			Score struct {
				Final float64 `json:"final"`
			} `json:"score"`
		} `json:"objects"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse npm response: %w", err)
	}

	results := make([]Result, 0, len(payload.Objects))
	for _, obj := range payload.Objects {
		name := obj.Package.Name
		r := newResult("npm", name, obj.Package.Description, catalog.SourceNpm, "npm install -g "+name)
		r.Stars = int64(obj.Score.Final * 1000)
		r.URL = "https://www.npmjs.com/package/" + name
		results = append(results, r)
	}
	return results, nil
}

// PyPI has no search API, so we scrape the search page. The markup has
// been stable for years; if it changes we just return nothing.
var (
	pypiNameRe = regexp.MustCompile(`class="package-snippet__name"[^>]*>([^<]+)</span>`)
	pypiDescRe = regexp.MustCompile(`class="package-snippet__description"[^>]*>([^<]*)</p>`)
)

type pypiSearcher struct{}

func (pypiSearcher) Name() string { return "PyPI" }

func (pypiSearcher) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	q := url.Values{"q": {query}}
	body, err := searchGet(ctx, pypiSearchURL+"?"+q.Encode())
	if err != nil {
		return nil, err
	}

	names := pypiNameRe.FindAllStringSubmatch(string(body), limit)
	descs := pypiDescRe.FindAllStringSubmatch(string(body), -1)

	results := make([]Result, 0, len(names))
	for i, m := range names {
		name := strings.TrimSpace(m[1])
		desc := ""
		if i < len(descs) {
			desc = strings.TrimSpace(descs[i][1])
		}
		r := newResult("PyPI", name, desc, catalog.SourcePip, "pip install "+name)
		r.URL = "https://pypi.org/project/" + name + "/"
		results = append(results, r)
	}
	return results, nil
}
