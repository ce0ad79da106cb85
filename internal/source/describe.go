// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"os/exec"
	"strings"
	"unicode"
)

// ManDescription extracts a description from the whatis database.
// `man -f tool` prints "tool (1) - description"; the part after the
// dash is returned with its first letter capitalized.
func ManDescription(ctx context.Context, binary string) string {
	out, err := runOutput(ctx, "man", "-f", binary)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(out, "\n") {
		_, desc, ok := strings.Cut(line, " - ")
		if !ok {
			continue
		}
		desc = strings.TrimSpace(desc)
		if desc == "" {
			continue
		}
		r := []rune(desc)
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	}
	return ""
}

// HelpDescription runs the binary's help output and scans it for a
// plausible one-line description.
func HelpDescription(ctx context.Context, binary string) string {
	stdout, stderr, err := helpOutput(ctx, binary)
	if err != nil {
		return ""
	}
	// Some tools print help on stderr; take whichever side said more.
	text := stdout
	if len(stderr) > len(stdout) {
		text = stderr
	}
	return ExtractHelpDescription(text)
}

func helpOutput(ctx context.Context, binary string) (stdout, stderr string, err error) {
	run := func(flag string) (string, string, error) {
		cmd := exec.CommandContext(ctx, binary, flag)
		var out, errBuf strings.Builder
		cmd.Stdout = &out
		cmd.Stderr = &errBuf
		err := cmd.Run()
		return out.String(), errBuf.String(), err
	}
	stdout, stderr, err = run("--help")
	if err != nil && stdout == "" && stderr == "" {
		stdout, stderr, err = run("-h")
	}
	if stdout != "" || stderr != "" {
		err = nil
	}
	return stdout, stderr, err
}

// Prefixes marking a line as usage text rather than a description.
var helpSkipPrefixes = []string{
	"Usage:", "usage:", "USAGE:", "Options:", "Commands:",
	"Arguments:", "FLAGS:", "Error:", "-", "[",
}

// Substrings marking a line as option tables, tree output, ASCII art,
// or ANSI-colored chrome.
var helpSkipContains = []string{
	"[--", "<", "├", "└", "▄", "▀", "[0m", "[38;",
}

// ExtractHelpDescription picks the first line of help text that reads
// like a description. Returns empty when nothing qualifies.
func ExtractHelpDescription(text string) string {
	if len(text) < 10 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 25 {
		lines = lines[:25]
	}
scan:
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 15 {
			continue
		}
		for _, p := range helpSkipPrefixes {
			if strings.HasPrefix(line, p) {
				continue scan
			}
		}
		for _, s := range helpSkipContains {
			if strings.Contains(line, s) {
				continue scan
			}
		}
		if strings.Count(line, "-") > 3 {
			continue
		}

		desc := line
		if pos := strings.Index(line, ". "); pos >= 0 {
			desc = line[:pos]
		} else if r := []rune(line); len(r) > 80 {
			desc = string(r[:80])
		}

		lower := strings.ToLower(desc)
		if strings.Contains(lower, "version") ||
			strings.Contains(lower, "not found") ||
			strings.Contains(lower, "deprecated") ||
			strings.HasPrefix(lower, "error") ||
			strings.Count(desc, " ") < 2 {
			continue
		}
		return desc
	}
	return ""
}
