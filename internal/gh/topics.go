// SPDX-License-Identifier: MPL-2.0

package gh

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"hoards-cli/internal/config"
)

// TopicMapping maps category names to the GitHub topics that vote for
// them.
type TopicMapping struct {
	Categories map[string][]string `toml:"categories"`
}

// LoadTopicMapping reads <config-dir>/hoards/topic-mapping.toml when
// present, falling back to the built-in mapping. A broken file falls
// back too; categorization is best-effort.
func LoadTopicMapping() TopicMapping {
	dir, err := config.ConfigDir()
	if err != nil {
		return DefaultTopicMapping()
	}
	data, err := os.ReadFile(filepath.Join(dir, "topic-mapping.toml"))
	if err != nil {
		return DefaultTopicMapping()
	}
	var mapping TopicMapping
	if err := toml.Unmarshal(data, &mapping); err != nil || len(mapping.Categories) == 0 {
		return DefaultTopicMapping()
	}
	return mapping
}

// Category picks the category with the most topic matches. Ties break
// alphabetically so the result is stable. Empty string means no topic
// matched.
func (m TopicMapping) Category(topics []string) string {
	scores := make(map[string]int)
	for _, topic := range topics {
		lower := strings.ToLower(topic)
		for category, keywords := range m.Categories {
			for _, kw := range keywords {
				if kw == lower {
					scores[category]++
					break
				}
			}
		}
	}

	best := ""
	bestScore := 0
	for category, score := range scores {
		if score > bestScore || (score == bestScore && (best == "" || category < best)) {
			best = category
			bestScore = score
		}
	}
	return best
}

// DefaultTopicMapping is the built-in topic vocabulary.
func DefaultTopicMapping() TopicMapping {
	return TopicMapping{Categories: map[string][]string{
		"search":    {"search", "grep", "regex", "find", "ripgrep", "ag", "ack"},
		"files":     {"files", "filesystem", "ls", "file-manager", "directory", "tree", "disk"},
		"git":       {"git", "github", "gitlab", "version-control", "vcs"},
		"shell":     {"shell", "terminal", "cli", "command-line", "bash", "zsh", "fish", "prompt", "readline"},
		"container": {"docker", "container", "kubernetes", "k8s", "podman", "oci"},
		"editor":    {"editor", "vim", "neovim", "emacs", "text-editor", "ide"},
		"network":   {"network", "http", "curl", "api", "rest", "web", "dns", "proxy"},
		"data":      {"json", "yaml", "csv", "jq", "data", "parsing", "xml", "toml"},
		"system":    {"system", "process", "monitoring", "htop", "top", "performance", "benchmark", "profiling"},
		"security":  {"security", "encryption", "password", "ssh", "gpg", "crypto", "vault", "secrets"},
		"dev":       {"development", "programming", "compiler", "linter", "formatter", "testing", "debugging", "build"},
	}}
}
