// SPDX-License-Identifier: MPL-2.0

package history

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// aliasLineRE matches POSIX-style definitions the shell parser cannot
// help with (fish's `alias name command` form, partial lines).
var aliasLineRE = regexp.MustCompile(`^\s*alias\s+([A-Za-z0-9_.-]+)[= ]\s*['"]?([^'"]+)['"]?\s*$`)

// ParseAliases reads alias definitions from one rc file and returns
// alias name -> target base command.
func ParseAliases(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias file %s: %w", path, err)
	}

	aliases := make(map[string]string)
	for _, line := range strings.Split(string(content), "\n") {
		name, target, ok := parseAliasLine(line)
		if !ok {
			continue
		}
		aliases[name] = target
	}
	return aliases, nil
}

// AllAliases merges alias definitions from every rc file present.
// Later files win on conflicts, matching shell startup order.
func AllAliases() map[string]string {
	merged := make(map[string]string)
	for _, path := range AliasFiles() {
		aliases, err := ParseAliases(path)
		if err != nil {
			continue
		}
		for name, target := range aliases {
			merged[name] = target
		}
	}
	return merged
}

// parseAliasLine extracts (name, target base command) from an alias
// definition. The target is reduced to its base command so
// `alias ls='eza -la --git'` maps ls -> eza.
func parseAliasLine(line string) (name, target string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "alias ") {
		return "", "", false
	}

	if name, target, ok = parseAliasSyntax(trimmed); ok {
		return name, target, true
	}

	m := aliasLineRE.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	cmd, found := ExtractCommand(m[2])
	if !found {
		// The alias target may itself be a builtin; keep it anyway so
		// suppression checks still see the mapping.
		cmd = splitFirst(m[2])
		if i := strings.LastIndexByte(cmd, '/'); i >= 0 {
			cmd = cmd[i+1:]
		}
		if cmd == "" {
			return "", "", false
		}
	}
	return m[1], cmd, true
}

// parseAliasSyntax handles POSIX `alias name='value'` via the shell
// parser, which deals with quoting properly.
func parseAliasSyntax(line string) (name, target string, ok bool) {
	file, err := syntax.NewParser().Parse(strings.NewReader(line), "")
	if err != nil {
		return "", "", false
	}
	syntax.Walk(file, func(node syntax.Node) bool {
		if ok {
			return false
		}
		call, isCall := node.(*syntax.CallExpr)
		if !isCall || len(call.Args) < 2 || literalWord(call.Args[0]) != "alias" {
			return true
		}
		// Second word is name=value; the value keeps its quoting
		// resolved by the parser's word parts.
		def := literalWord(call.Args[1])
		n, v, found := strings.Cut(def, "=")
		if !found || n == "" || v == "" {
			return true
		}
		base := splitFirst(v)
		if i := strings.LastIndexByte(base, '/'); i >= 0 {
			base = base[i+1:]
		}
		if base == "" {
			return true
		}
		name, target, ok = n, base, true
		return false
	})
	return name, target, ok
}
