// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound indicates the requested tool, bundle, or cache entry
	// does not exist. Callers frequently treat this as benign.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates an insert collided with an existing name.
	ErrDuplicate = errors.New("already exists")
)

// Source identifies the package manager a tool was installed through.
type Source string

const (
	SourceCargo   Source = "cargo"
	SourceApt     Source = "apt"
	SourceSnap    Source = "snap"
	SourceFlatpak Source = "flatpak"
	SourceNpm     Source = "npm"
	SourcePip     Source = "pip"
	SourceBrew    Source = "brew"
	SourceManual  Source = "manual"
	SourceUnknown Source = "unknown"
)

// ParseSource maps a string to a Source, case-insensitively. Unrecognized
// values map to SourceUnknown rather than failing.
func ParseSource(s string) Source {
	switch strings.ToLower(s) {
	case "cargo":
		return SourceCargo
	case "apt":
		return SourceApt
	case "snap":
		return SourceSnap
	case "flatpak":
		return SourceFlatpak
	case "npm":
		return SourceNpm
	case "pip":
		return SourcePip
	case "brew":
		return SourceBrew
	case "manual":
		return SourceManual
	default:
		return SourceUnknown
	}
}

func (s Source) String() string { return string(s) }

// AllSources lists every known source variant in display order.
func AllSources() []Source {
	return []Source{
		SourceCargo, SourceApt, SourceSnap, SourceFlatpak,
		SourceNpm, SourcePip, SourceBrew, SourceManual, SourceUnknown,
	}
}

// Tool is the primary catalog entity. Name is globally unique.
type Tool struct {
	ID             int64
	Name           string
	Description    string
	Category       string
	Source         Source
	InstallCommand string
	// BinaryName is the executable name when it differs from Name
	// (e.g. ripgrep installs "rg"). Empty means Name.
	BinaryName  string
	IsInstalled bool
	IsFavorite  bool
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTool creates a Tool with the given name and unknown source.
// Optional fields are set through the With* builders.
func NewTool(name string) Tool {
	now := time.Now().UTC()
	return Tool{
		Name:      name,
		Source:    SourceUnknown,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (t Tool) WithSource(s Source) Tool {
	t.Source = s
	return t
}

func (t Tool) WithDescription(desc string) Tool {
	t.Description = desc
	return t
}

func (t Tool) WithCategory(cat string) Tool {
	t.Category = cat
	return t
}

func (t Tool) WithInstallCommand(cmd string) Tool {
	t.InstallCommand = cmd
	return t
}

func (t Tool) WithBinary(bin string) Tool {
	t.BinaryName = bin
	return t
}

func (t Tool) Installed() Tool {
	t.IsInstalled = true
	return t
}

// Binary returns the executable name to probe on PATH.
func (t Tool) Binary() string {
	if t.BinaryName != "" {
		return t.BinaryName
	}
	return t.Name
}

// Bundle is a named set of tool names. Membership is by name, not foreign
// key, so members missing from the catalog are tolerated.
type Bundle struct {
	ID          int64
	Name        string
	Description string
	Tools       []string
	CreatedAt   time.Time
}

// UsageStats holds cumulative invocation accounting for one tool.
type UsageStats struct {
	ToolID    int64
	UseCount  int64
	LastUsed  string
	FirstSeen string
	UpdatedAt string
}

// GitHubInfo is per-tool repository metadata. At most one row per tool.
type GitHubInfo struct {
	ToolID      int64
	RepoOwner   string
	RepoName    string
	Description string
	Stars       int64
	Language    string
	Homepage    string
	UpdatedAt   string
}

// Extraction is a cached set of tool fields extracted from a GitHub repo
// at a specific version (release tag or commit SHA).
type Extraction struct {
	RepoOwner      string
	RepoName       string
	Version        string
	Name           string
	Binary         string
	Source         string
	InstallCommand string
	Description    string
	Category       string
	ExtractedAt    string
}

// ConfigLink associates a dotfile with its deployed location and,
// optionally, the tool it configures.
type ConfigLink struct {
	ID          int64
	Name        string
	SourcePath  string
	TargetPath  string
	ToolID      int64
	IsSymlinked bool
	CreatedAt   time.Time
}

// Interest is a topic the user wants tool suggestions for.
type Interest struct {
	ID          int64
	Name        string
	Description string
	Priority    int
}

// SearchRecord is one saved discover query.
type SearchRecord struct {
	ID            int64
	Query         string
	AIEnabled     bool
	SourceFilters string // JSON-encoded list of source names
	CreatedAt     string
}

// Stats summarizes the catalog.
type Stats struct {
	Total     int
	Installed int
	Favorites int
}
