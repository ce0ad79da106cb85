// SPDX-License-Identifier: MPL-2.0

// Package invoke plans and executes package-manager commands. Every
// command is built as a program plus argv — nothing is ever routed
// through a shell, so catalog data can never inject into one.
package invoke

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput marks a package name or version that failed
// validation before any command was built.
var ErrInvalidInput = errors.New("invalid input")

const (
	maxPackageNameLen = 200
	maxBinaryNameLen  = 100
	maxVersionLen     = 50
)

// ValidatePackageName accepts names made of alphanumerics plus
// - _ . @ /, rejecting empties, overlong names, and path traversal.
func ValidatePackageName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: package name is empty", ErrInvalidInput)
	}
	if len(name) > maxPackageNameLen {
		return fmt.Errorf("%w: package name exceeds %d characters", ErrInvalidInput, maxPackageNameLen)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("%w: package name contains path traversal", ErrInvalidInput)
	}
	for _, r := range name {
		if !isNameRune(r) {
			return fmt.Errorf("%w: package name contains invalid character %q", ErrInvalidInput, r)
		}
	}
	return nil
}

// ValidateVersion accepts versions made of alphanumerics plus - . +.
func ValidateVersion(version string) error {
	if version == "" {
		return fmt.Errorf("%w: version is empty", ErrInvalidInput)
	}
	if len(version) > maxVersionLen {
		return fmt.Errorf("%w: version exceeds %d characters", ErrInvalidInput, maxVersionLen)
	}
	for _, r := range version {
		if !isVersionRune(r) {
			return fmt.Errorf("%w: version contains invalid character %q", ErrInvalidInput, r)
		}
	}
	return nil
}

// ValidateBinaryName applies the package-name rules minus the
// separators only package identifiers need.
func ValidateBinaryName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: binary name is empty", ErrInvalidInput)
	}
	if len(name) > maxBinaryNameLen {
		return fmt.Errorf("%w: binary name exceeds %d characters", ErrInvalidInput, maxBinaryNameLen)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("%w: binary name contains path traversal", ErrInvalidInput)
	}
	for _, r := range name {
		if !isBinaryRune(r) {
			return fmt.Errorf("%w: binary name contains invalid character %q", ErrInvalidInput, r)
		}
	}
	return nil
}

func isNameRune(r rune) bool {
	return isAlnum(r) || r == '-' || r == '_' || r == '.' || r == '@' || r == '/'
}

func isVersionRune(r rune) bool {
	return isAlnum(r) || r == '-' || r == '.' || r == '+'
}

func isBinaryRune(r rune) bool {
	return isAlnum(r) || r == '-' || r == '_' || r == '.'
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
