// SPDX-License-Identifier: MPL-2.0

package history

import "strings"

// ModernPair maps a traditional Unix tool to its modern replacement.
type ModernPair struct {
	Traditional string
	Modern      string
}

// Traditional tools with drop-in modern replacements, in suggestion
// order.
var modernPairs = []ModernPair{
	{"cat", "bat"},
	{"ls", "eza"},
	{"grep", "rg"},
	{"find", "fd"},
	{"du", "dust"},
	{"df", "duf"},
	{"top", "btop"},
	{"ps", "procs"},
	{"sed", "sd"},
	{"diff", "delta"},
	{"dig", "dog"},
	{"man", "tldr"},
}

// ModernPairs returns the suggestion table.
func ModernPairs() []ModernPair {
	return modernPairs
}

// Suggestion recommends switching a heavily used traditional tool for
// its modern counterpart.
type Suggestion struct {
	ModernPair
	// Uses is how often the traditional tool appeared in history.
	Uses int64
}

// directUseThreshold: someone already running the modern tool this
// often does not need to be told about it.
const directUseThreshold = 5

// CountSuggestible tallies the tools the suggestion table cares about
// without the builtin filter, since several traditional names (ls, cd)
// are builtins ExtractCommand drops.
func CountSuggestible(entries []Entry) map[string]int64 {
	wanted := make(map[string]bool, 2*len(modernPairs))
	for _, pair := range modernPairs {
		wanted[pair.Traditional] = true
		wanted[pair.Modern] = true
	}
	counts := make(map[string]int64)
	for _, e := range entries {
		cmd := firstWord(strings.TrimSpace(e.Command))
		if i := strings.LastIndexByte(cmd, '/'); i >= 0 {
			cmd = cmd[i+1:]
		}
		if wanted[cmd] {
			counts[cmd]++
		}
	}
	return counts
}

// Suggest returns modern-tool suggestions for traditional commands in
// the usage counts. A suggestion is suppressed when an alias already
// redirects the traditional name to the modern tool, or the modern
// tool itself sees regular direct use.
func Suggest(counts map[string]int64, aliases map[string]string) []Suggestion {
	var out []Suggestion
	for _, pair := range modernPairs {
		uses := counts[pair.Traditional]
		if uses == 0 {
			continue
		}
		if aliases[pair.Traditional] == pair.Modern {
			continue
		}
		if counts[pair.Modern] >= directUseThreshold {
			continue
		}
		out = append(out, Suggestion{ModernPair: pair, Uses: uses})
	}
	return out
}
