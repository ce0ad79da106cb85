// SPDX-License-Identifier: MPL-2.0

package history

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Entry is one command pulled from a history file. Timestamp is a Unix
// time, zero when the shell did not record one.
type Entry struct {
	Command   string
	Timestamp int64
}

// ParseFish reads fish's YAML-ish history format:
//
//	- cmd: git status
//	  when: 1704067200
func ParseFish(path string) ([]Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fish history %s: %w", path, err)
	}

	var (
		entries []Entry
		current *Entry
	)
	for _, line := range strings.Split(string(content), "\n") {
		if cmd, ok := strings.CutPrefix(line, "- cmd: "); ok {
			if current != nil {
				entries = append(entries, *current)
			}
			current = &Entry{Command: cmd}
			continue
		}
		if when, ok := strings.CutPrefix(line, "  when: "); ok && current != nil {
			if ts, err := strconv.ParseInt(when, 10, 64); err == nil {
				current.Timestamp = ts
			}
		}
	}
	if current != nil {
		entries = append(entries, *current)
	}
	return entries, nil
}

// ParseBash reads bash's plain one-command-per-line history. Comment
// lines (HISTTIMEFORMAT markers) are skipped.
func ParseBash(path string) ([]Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bash history %s: %w", path, err)
	}

	var entries []Entry
	for _, line := range strings.Split(string(content), "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, Entry{Command: line})
	}
	return entries, nil
}

// ParseZsh reads zsh history, which is either plain commands or the
// extended ": <timestamp>:<duration>;<command>" format.
func ParseZsh(path string) ([]Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read zsh history %s: %w", path, err)
	}

	var entries []Entry
	for _, line := range strings.Split(string(content), "\n") {
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, ": "); ok {
			if meta, cmd, found := strings.Cut(rest, ";"); found {
				e := Entry{Command: cmd}
				tsField, _, _ := strings.Cut(meta, ":")
				if ts, err := strconv.ParseInt(tsField, 10, 64); err == nil {
					e.Timestamp = ts
				}
				entries = append(entries, e)
				continue
			}
		}
		entries = append(entries, Entry{Command: line})
	}
	return entries, nil
}

// CountCommands tallies extracted base commands across entries.
func CountCommands(entries []Entry) map[string]int64 {
	counts := make(map[string]int64)
	for _, e := range entries {
		if cmd, ok := ExtractCommand(e.Command); ok {
			counts[cmd]++
		}
	}
	return counts
}

// ParseAll merges counts from every shell history present on the host.
// A history file that fails to parse is logged and skipped.
func ParseAll() map[string]int64 {
	total := make(map[string]int64)
	for cmd, count := range CountCommands(ParseAllEntries()) {
		total[cmd] += count
	}
	return total
}

// ParseAllEntries merges raw entries from every shell history present on
// the host. A history file that fails to parse is logged and skipped.
func ParseAllEntries() []Entry {
	var all []Entry
	shells := []struct {
		name  string
		path  string
		parse func(string) ([]Entry, error)
	}{
		{"fish", FishHistoryPath(), ParseFish},
		{"bash", BashHistoryPath(), ParseBash},
		{"zsh", ZshHistoryPath(), ParseZsh},
	}
	for _, shell := range shells {
		if shell.path == "" {
			continue
		}
		if _, err := os.Stat(shell.path); err != nil {
			continue
		}
		entries, err := shell.parse(shell.path)
		if err != nil {
			log.Warn("failed to parse shell history", "shell", shell.name, "err", err)
			continue
		}
		all = append(all, entries...)
	}
	return all
}
