// SPDX-License-Identifier: MPL-2.0

// Package update finds newer versions of cataloged tools, both within
// a tool's own package manager and across managers for packages that
// track upstream faster elsewhere.
package update

import (
	"strings"

	"golang.org/x/mod/semver"
)

// IsStable reports whether a version string is a stable release.
// Pre-release markers (alpha, beta, rc, dev, pre, 1.0a1-style tags)
// disqualify it.
func IsStable(v string) bool {
	lower := strings.ToLower(v)
	for _, marker := range []string{"alpha", "beta", "dev", "pre"} {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	if strings.Contains(lower, "rc") && !strings.Contains(lower, "src") {
		return false
	}
	// PEP 440 short forms like 1.0a1 or 2.0b3.
	runes := []rune(lower)
	for i := 0; i+1 < len(runes); i++ {
		if (runes[i] == 'a' || runes[i] == 'b') &&
			runes[i+1] >= '0' && runes[i+1] <= '9' &&
			i > 0 && runes[i-1] >= '0' && runes[i-1] <= '9' {
			return false
		}
	}
	return true
}

// IsNewer reports whether latest is strictly newer than current.
// Proper semver strings compare per the semver rules; anything else
// falls back to a numeric dotted comparison where missing trailing
// components count as older.
func IsNewer(latest, current string) bool {
	l, c := canonical(latest), canonical(current)
	if semver.IsValid(l) && semver.IsValid(c) {
		return semver.Compare(l, c) > 0
	}
	return numericNewer(latest, current)
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

func numericNewer(latest, current string) bool {
	l, c := numericParts(latest), numericParts(current)
	for i := 0; i < len(l) && i < len(c); i++ {
		if l[i] != c[i] {
			return l[i] > c[i]
		}
	}
	return len(l) > len(c)
}

func numericParts(v string) []int {
	var parts []int
	n, inNum := 0, false
	flush := func() {
		if inNum {
			parts = append(parts, n)
			n, inNum = 0, false
		}
	}
	for _, r := range v {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			inNum = true
		} else {
			flush()
		}
	}
	flush()
	return parts
}
