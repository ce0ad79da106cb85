// SPDX-License-Identifier: MPL-2.0

package invoke

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePackageName(t *testing.T) {
	t.Parallel()

	valid := []string{
		"ripgrep", "fd-find", "du_dust", "node.js",
		"@types/node", "@angular/cli", "tool@1.2.3",
	}
	for _, name := range valid {
		if err := ValidatePackageName(name); err != nil {
			t.Errorf("ValidatePackageName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{
		"",
		"tool; rm -rf /",
		"tool && evil",
		"tool | cat",
		"tool`whoami`",
		"tool$(whoami)",
		"tool name",
		"tool\nname",
		"../../etc/passwd",
		strings.Repeat("a", 201),
	}
	for _, name := range invalid {
		if err := ValidatePackageName(name); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ValidatePackageName(%q) = %v, want ErrInvalidInput", name, err)
		}
	}
}

func TestValidateVersion(t *testing.T) {
	t.Parallel()

	valid := []string{"1.2.3", "14.1.0-beta.1", "2.0.0+build5", "v1"}
	for _, v := range valid {
		if err := ValidateVersion(v); err != nil {
			t.Errorf("ValidateVersion(%q) = %v, want nil", v, err)
		}
	}

	invalid := []string{"", "1.2.3; evil", "1.0 2.0", "1.0@latest", strings.Repeat("1", 51)}
	for _, v := range invalid {
		if err := ValidateVersion(v); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ValidateVersion(%q) = %v, want ErrInvalidInput", v, err)
		}
	}
}

func TestValidateBinaryName(t *testing.T) {
	t.Parallel()

	if err := ValidateBinaryName("rg"); err != nil {
		t.Errorf("plain binary: %v", err)
	}
	if err := ValidateBinaryName("git-lfs"); err != nil {
		t.Errorf("dashed binary: %v", err)
	}
	// Binaries never carry the package-only separators.
	for _, name := range []string{"@scope/bin", "bin/ary", "", "bin name"} {
		if err := ValidateBinaryName(name); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ValidateBinaryName(%q) = %v, want ErrInvalidInput", name, err)
		}
	}

	// Binary names cap at 100 characters, tighter than package names.
	if err := ValidateBinaryName(strings.Repeat("a", 100)); err != nil {
		t.Errorf("100-char binary name: %v, want nil", err)
	}
	if err := ValidateBinaryName(strings.Repeat("a", 101)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("101-char binary name: %v, want ErrInvalidInput", err)
	}
}
