// SPDX-License-Identifier: MPL-2.0

package scan

import (
	"os"
	"path/filepath"

	"hoards-cli/internal/catalog"
	"hoards-cli/internal/known"
)

// Runtime and toolchain binaries that live in the scanned directories
// but are not worth tracking as tools.
var pathSkipBinaries = map[string]struct{}{
	"activate":   {},
	"deactivate": {},
	"python":     {},
	"python3":    {},
	"pip":        {},
	"pip3":       {},
	"node":       {},
	"npm":        {},
	"npx":        {},
	"cargo":      {},
	"rustc":      {},
	"rustup":     {},
	"go":         {},
	"gofmt":      {},
}

// pathScanDirs lists the directories swept for untracked binaries.
// Entries under the home directory resolve through UserHomeDir; the
// /opt glob expands to every /opt/<pkg>/bin. Variable so tests can
// point the sweep at a fixture directory.
var pathScanDirs = defaultScanDirs

func defaultScanDirs() []string {
	dirs := []string{"/usr/local/bin"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, "go", "bin"),
			filepath.Join(home, ".local", "bin"),
			filepath.Join(home, ".cargo", "bin"),
		)
	}
	if matches, err := filepath.Glob("/opt/*/bin"); err == nil {
		dirs = append(dirs, matches...)
	}
	return dirs
}

// ScanPath sweeps common binary directories for executables nothing
// else tracks. tracked holds names and binaries already accounted for
// by the catalog or an earlier scan pass. Binaries under ~/.cargo/bin
// are attributed to cargo; ~/go/bin entries get the go category.
func ScanPath(tracked map[string]struct{}) ([]catalog.Tool, error) {
	var tools []catalog.Tool
	seen := make(map[string]struct{})

	for _, dir := range pathScanDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if _, dup := seen[name]; dup {
				continue
			}
			if _, skip := pathSkipBinaries[name]; skip {
				continue
			}
			if _, t := tracked[name]; t {
				continue
			}
			if known.IsKnown(name) {
				continue
			}

			// Stat follows symlinks so linked binaries still count.
			info, err := os.Stat(filepath.Join(dir, name))
			if err != nil || !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
				continue
			}

			src := catalog.SourceManual
			category := "cli"
			switch {
			case filepath.Base(filepath.Dir(dir)) == ".cargo":
				src = catalog.SourceCargo
			case filepath.Base(filepath.Dir(dir)) == "go":
				category = "go"
			}

			seen[name] = struct{}{}
			tools = append(tools, catalog.NewTool(name).
				WithSource(src).
				WithBinary(name).
				WithCategory(category).
				Installed())
		}
	}
	return tools, nil
}
