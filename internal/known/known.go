// SPDX-License-Identifier: MPL-2.0

// Package known carries the curated table of modern CLI tools the
// catalog recognizes out of the box. Scanners use it to seed the
// catalog and to avoid re-classifying tools whose provenance is
// already understood.
package known

import (
	"os/exec"
	"strings"

	"hoards-cli/internal/catalog"
)

// Tool is one curated entry. Binary is the executable name when it
// differs from Name.
type Tool struct {
	Name           string
	Binary         string
	Description    string
	Category       string
	Source         catalog.Source
	InstallCommand string
}

// Executable returns the name probed on PATH.
func (t Tool) Executable() string {
	if t.Binary != "" {
		return t.Binary
	}
	return t.Name
}

// CatalogTool converts a curated entry into its catalog form.
func (t Tool) CatalogTool() catalog.Tool {
	return catalog.NewTool(t.Name).
		WithSource(t.Source).
		WithDescription(t.Description).
		WithCategory(t.Category).
		WithInstallCommand(t.InstallCommand).
		WithBinary(t.Binary)
}

// IsInstalled reports whether the entry's executable resolves on PATH.
func (t Tool) IsInstalled() bool {
	_, err := exec.LookPath(t.Executable())
	return err == nil
}

// All returns the curated table.
func All() []Tool {
	return tools
}

// Lookup finds an entry by name or binary, case-insensitively.
func Lookup(name string) (Tool, bool) {
	t, ok := index[strings.ToLower(name)]
	return t, ok
}

// IsKnown reports whether a name or binary belongs to the curated table.
func IsKnown(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// ScanKnown returns the curated entries currently installed, with the
// install flag set.
func ScanKnown() []catalog.Tool {
	var found []catalog.Tool
	for _, t := range tools {
		if t.IsInstalled() {
			found = append(found, t.CatalogTool().Installed())
		}
	}
	return found
}

// MissingKnown returns the curated entries not found on PATH.
func MissingKnown() []Tool {
	var missing []Tool
	for _, t := range tools {
		if !t.IsInstalled() {
			missing = append(missing, t)
		}
	}
	return missing
}

var index map[string]Tool

func init() {
	index = make(map[string]Tool, 2*len(tools))
	for _, t := range tools {
		index[strings.ToLower(t.Name)] = t
		index[strings.ToLower(t.Executable())] = t
	}
}

var tools = []Tool{
	// files
	{Name: "eza", Description: "Modern replacement for ls", Category: "files", Source: catalog.SourceCargo, InstallCommand: "cargo install eza"},
	{Name: "bat", Description: "A cat clone with syntax highlighting and git integration", Category: "files", Source: catalog.SourceCargo, InstallCommand: "cargo install bat"},
	{Name: "fd-find", Binary: "fd", Description: "Simple, fast alternative to find", Category: "files", Source: catalog.SourceCargo, InstallCommand: "cargo install fd-find"},
	{Name: "dust", Description: "More intuitive du written in Rust", Category: "files", Source: catalog.SourceCargo, InstallCommand: "cargo install du-dust"},
	{Name: "duf", Description: "Disk usage/free utility with a better UI", Category: "files", Source: catalog.SourceApt, InstallCommand: "sudo apt install duf"},
	{Name: "sd", Description: "Intuitive find and replace (sed alternative)", Category: "files", Source: catalog.SourceCargo, InstallCommand: "cargo install sd"},
	{Name: "choose", Description: "Human-friendly alternative to cut and awk", Category: "files", Source: catalog.SourceCargo, InstallCommand: "cargo install choose"},
	{Name: "zoxide", Description: "Smarter cd that learns your habits", Category: "files", Source: catalog.SourceCargo, InstallCommand: "cargo install zoxide"},

	// search
	{Name: "ripgrep", Binary: "rg", Description: "Recursively search directories for a regex pattern", Category: "search", Source: catalog.SourceCargo, InstallCommand: "cargo install ripgrep"},
	{Name: "fzf", Description: "Command-line fuzzy finder", Category: "search", Source: catalog.SourceApt, InstallCommand: "sudo apt install fzf"},

	// monitoring
	{Name: "btop", Description: "Resource monitor with a modern interface", Category: "monitoring", Source: catalog.SourceApt, InstallCommand: "sudo apt install btop"},
	{Name: "htop", Description: "Interactive process viewer", Category: "monitoring", Source: catalog.SourceApt, InstallCommand: "sudo apt install htop"},
	{Name: "bottom", Binary: "btm", Description: "Graphical process and system monitor", Category: "monitoring", Source: catalog.SourceCargo, InstallCommand: "cargo install bottom"},
	{Name: "procs", Description: "Modern replacement for ps", Category: "monitoring", Source: catalog.SourceCargo, InstallCommand: "cargo install procs"},
	{Name: "bandwhich", Description: "Display network utilization by process", Category: "monitoring", Source: catalog.SourceCargo, InstallCommand: "cargo install bandwhich"},
	{Name: "hyperfine", Description: "Command-line benchmarking tool", Category: "monitoring", Source: catalog.SourceCargo, InstallCommand: "cargo install hyperfine"},

	// git
	{Name: "git-delta", Binary: "delta", Description: "Syntax-highlighting pager for git diffs", Category: "git", Source: catalog.SourceCargo, InstallCommand: "cargo install git-delta"},
	{Name: "lazygit", Description: "Terminal UI for git", Category: "git", Source: catalog.SourceManual, InstallCommand: "# Manual install required for lazygit"},
	{Name: "gitui", Description: "Blazing fast terminal UI for git", Category: "git", Source: catalog.SourceCargo, InstallCommand: "cargo install gitui"},
	{Name: "gh", Description: "GitHub CLI", Category: "git", Source: catalog.SourceApt, InstallCommand: "sudo apt install gh"},
	{Name: "git-lfs", Description: "Git extension for large files", Category: "git", Source: catalog.SourceApt, InstallCommand: "sudo apt install git-lfs"},
	{Name: "git-crypt", Description: "Transparent file encryption in git", Category: "git", Source: catalog.SourceApt, InstallCommand: "sudo apt install git-crypt"},

	// dev
	{Name: "tokei", Description: "Count lines of code quickly", Category: "dev", Source: catalog.SourceCargo, InstallCommand: "cargo install tokei"},
	{Name: "just", Description: "Command runner with make-like syntax", Category: "dev", Source: catalog.SourceCargo, InstallCommand: "cargo install just"},
	{Name: "jq", Description: "Command-line JSON processor", Category: "dev", Source: catalog.SourceApt, InstallCommand: "sudo apt install jq"},
	{Name: "yq", Description: "Command-line YAML processor", Category: "dev", Source: catalog.SourceSnap, InstallCommand: "sudo snap install yq"},
	{Name: "hexyl", Description: "Command-line hex viewer", Category: "dev", Source: catalog.SourceCargo, InstallCommand: "cargo install hexyl"},
	{Name: "watchexec", Description: "Run commands when files change", Category: "dev", Source: catalog.SourceCargo, InstallCommand: "cargo install watchexec-cli"},

	// network
	{Name: "httpie", Binary: "http", Description: "User-friendly HTTP client", Category: "network", Source: catalog.SourcePip, InstallCommand: "pip install httpie"},
	{Name: "curlie", Description: "Frontend to curl with the ease of httpie", Category: "network", Source: catalog.SourceManual, InstallCommand: "# Manual install required for curlie"},
	{Name: "xh", Description: "Fast and friendly HTTP client", Category: "network", Source: catalog.SourceCargo, InstallCommand: "cargo install xh"},
	{Name: "dog", Description: "Command-line DNS client", Category: "network", Source: catalog.SourceManual, InstallCommand: "# Manual install required for dog"},

	// docs
	{Name: "tealdeer", Binary: "tldr", Description: "Fast tldr client in Rust", Category: "docs", Source: catalog.SourceCargo, InstallCommand: "cargo install tealdeer"},
	{Name: "glow", Description: "Render markdown on the CLI", Category: "docs", Source: catalog.SourceManual, InstallCommand: "# Manual install required for glow"},

	// shell
	{Name: "starship", Description: "Minimal, fast, customizable shell prompt", Category: "shell", Source: catalog.SourceCargo, InstallCommand: "cargo install starship"},
	{Name: "fish", Description: "Friendly interactive shell", Category: "shell", Source: catalog.SourceApt, InstallCommand: "sudo apt install fish"},
	{Name: "zsh", Description: "Z shell", Category: "shell", Source: catalog.SourceApt, InstallCommand: "sudo apt install zsh"},
	{Name: "nushell", Binary: "nu", Description: "A new type of shell with structured data", Category: "shell", Source: catalog.SourceCargo, InstallCommand: "cargo install nu"},

	// terminal
	{Name: "alacritty", Description: "GPU-accelerated terminal emulator", Category: "terminal", Source: catalog.SourceCargo, InstallCommand: "cargo install alacritty"},
	{Name: "zellij", Description: "Terminal workspace and multiplexer", Category: "terminal", Source: catalog.SourceCargo, InstallCommand: "cargo install zellij"},
	{Name: "tmux", Description: "Terminal multiplexer", Category: "terminal", Source: catalog.SourceApt, InstallCommand: "sudo apt install tmux"},
	{Name: "wezterm", Description: "GPU-accelerated terminal emulator and multiplexer", Category: "terminal", Source: catalog.SourceFlatpak, InstallCommand: "flatpak install -y org.wezfurlong.wezterm"},
	{Name: "kitty", Description: "Fast, feature-rich GPU-based terminal", Category: "terminal", Source: catalog.SourceApt, InstallCommand: "sudo apt install kitty"},

	// editors
	{Name: "neovim", Binary: "nvim", Description: "Hyperextensible Vim-based text editor", Category: "editors", Source: catalog.SourceApt, InstallCommand: "sudo apt install neovim"},
	{Name: "helix", Binary: "hx", Description: "Post-modern modal text editor", Category: "editors", Source: catalog.SourceManual, InstallCommand: "# Manual install required for helix"},
	{Name: "micro", Description: "Modern and intuitive terminal editor", Category: "editors", Source: catalog.SourceApt, InstallCommand: "sudo apt install micro"},

	// toolchains
	{Name: "rustup", Description: "Rust toolchain installer", Category: "toolchains", Source: catalog.SourceManual, InstallCommand: "# Manual install required for rustup"},
	{Name: "pyenv", Description: "Python version management", Category: "toolchains", Source: catalog.SourceManual, InstallCommand: "# Manual install required for pyenv"},
	{Name: "fnm", Description: "Fast Node.js version manager", Category: "toolchains", Source: catalog.SourceCargo, InstallCommand: "cargo install fnm"},
	{Name: "nvm", Description: "Node.js version manager", Category: "toolchains", Source: catalog.SourceManual, InstallCommand: "# Manual install required for nvm"},

	// containers
	{Name: "docker", Description: "Container runtime and tooling", Category: "containers", Source: catalog.SourceApt, InstallCommand: "sudo apt install docker.io"},
	{Name: "podman", Description: "Daemonless container engine", Category: "containers", Source: catalog.SourceApt, InstallCommand: "sudo apt install podman"},
	{Name: "lazydocker", Description: "Terminal UI for docker", Category: "containers", Source: catalog.SourceManual, InstallCommand: "# Manual install required for lazydocker"},
	{Name: "kubectl", Description: "Kubernetes command-line tool", Category: "containers", Source: catalog.SourceSnap, InstallCommand: "sudo snap install kubectl"},
	{Name: "k9s", Description: "Terminal UI for Kubernetes clusters", Category: "containers", Source: catalog.SourceManual, InstallCommand: "# Manual install required for k9s"},
	{Name: "helm", Description: "Kubernetes package manager", Category: "containers", Source: catalog.SourceSnap, InstallCommand: "sudo snap install helm"},

	// security
	{Name: "age", Description: "Simple, modern file encryption", Category: "security", Source: catalog.SourceApt, InstallCommand: "sudo apt install age"},
}
