// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strings"
	"time"
)

// registryClient is shared by every adapter. Registry lookups are
// best-effort: anything slower than this is treated as a miss.
var registryClient = &http.Client{Timeout: 5 * time.Second}

const (
	userAgent = "hoards-cli"
	// maxRegistryBody bounds how much of a registry response we read.
	maxRegistryBody = 1 << 20
)

// fetchJSON issues a GET and decodes the response into v. Non-2xx
// statuses are errors.
func fetchJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := registryClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("registry returned %s for %s", resp.Status, url)
	}
	body := io.LimitReader(resp.Body, maxRegistryBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

// runOutput runs a manager command and returns its stdout. The command
// inherits nothing from the caller but the context.
func runOutput(ctx context.Context, program string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, program, args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.String(), fmt.Errorf("failed to run %s: %w", program, err)
	}
	return stdout.String(), nil
}

// commandExists probes PATH for a manager binary.
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
