// SPDX-License-Identifier: MPL-2.0

// Package source implements per-package-manager adapters. Each adapter
// knows how to enumerate installed tools, fetch upstream descriptions,
// and render the canonical install/uninstall command strings for its
// manager.
package source

import (
	"context"
	"strings"

	"hoards-cli/internal/catalog"
)

// Adapter is the per-manager surface the scanner and planner build on.
type Adapter interface {
	// Name is the lowercase manager name ("cargo", "apt", ...).
	Name() string
	// Variant is the catalog source this adapter feeds.
	Variant() catalog.Source
	// Scan enumerates tools currently installed through this manager.
	// A manager that is not present on the host returns an error the
	// caller is expected to swallow.
	Scan(ctx context.Context) ([]catalog.Tool, error)
	// FetchDescription asks the manager's upstream registry for a short
	// description. Any failure yields the empty string.
	FetchDescription(ctx context.Context, pkg string) string
	// InstallCommand and UninstallCommand render the human-facing
	// command strings stored in the catalog.
	InstallCommand(name string) string
	UninstallCommand(name string) string
	// SupportsUpdates reports whether CheckUpdate is meaningful.
	SupportsUpdates() bool
	// CheckUpdate returns the newest available version, or empty when
	// current is already newest or the check failed.
	CheckUpdate(ctx context.Context, name, current string) string
}

var registry = []Adapter{
	&cargoAdapter{},
	&pipAdapter{},
	&npmAdapter{},
	&brewAdapter{},
	&aptAdapter{},
	&flatpakAdapter{},
	&manualAdapter{},
}

// All returns every adapter in scan order.
func All() []Adapter {
	return registry
}

// ByName finds an adapter case-insensitively. Sources without an
// adapter (snap, unknown) return nil.
func ByName(name string) Adapter {
	name = strings.ToLower(name)
	for _, a := range registry {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

// ForVariant finds the adapter feeding a catalog source, or nil.
func ForVariant(src catalog.Source) Adapter {
	for _, a := range registry {
		if a.Variant() == src {
			return a
		}
	}
	return nil
}
