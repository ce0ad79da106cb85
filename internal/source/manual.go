// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"

	"hoards-cli/internal/catalog"
)

// manualAdapter covers tools installed outside any package manager
// (go install, curl scripts, release tarballs). It never scans; tools
// land here when added explicitly or found on PATH without provenance.
type manualAdapter struct{}

func (a *manualAdapter) Name() string            { return "manual" }
func (a *manualAdapter) Variant() catalog.Source { return catalog.SourceManual }
func (a *manualAdapter) SupportsUpdates() bool   { return false }

func (a *manualAdapter) InstallCommand(name string) string {
	return "# Manual install required for " + name
}

func (a *manualAdapter) UninstallCommand(name string) string {
	return "# Manual uninstall required for " + name
}

func (a *manualAdapter) Scan(ctx context.Context) ([]catalog.Tool, error) {
	return nil, nil
}

// FetchDescription probes the binary itself: man page first, then its
// help output.
func (a *manualAdapter) FetchDescription(ctx context.Context, binary string) string {
	if desc := ManDescription(ctx, binary); desc != "" {
		return desc
	}
	return HelpDescription(ctx, binary)
}

func (a *manualAdapter) CheckUpdate(ctx context.Context, name, current string) string {
	return ""
}
