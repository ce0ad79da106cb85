// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"database/sql"
	"errors"
	"fmt"
)

// SetGitHubInfo stores repository metadata for a tool, replacing any
// existing row. Returns false when the tool does not exist.
func (s *Store) SetGitHubInfo(tool string, info GitHubInfo) (bool, error) {
	id, err := s.toolID(tool)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up tool %q: %w", tool, err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO tool_github
			(tool_id, repo_owner, repo_name, description, stars, language, homepage, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, info.RepoOwner, info.RepoName, nullable(info.Description),
		info.Stars, nullable(info.Language), nullable(info.Homepage), now())
	if err != nil {
		return false, fmt.Errorf("failed to set github info for %q: %w", tool, err)
	}
	return true, nil
}

// GitHubInfoFor returns the stored repository metadata for a tool, or
// ErrNotFound when none is recorded.
func (s *Store) GitHubInfoFor(tool string) (GitHubInfo, error) {
	var (
		info                 GitHubInfo
		desc, lang, homepage sql.NullString
	)
	err := s.db.QueryRow(`
		SELECT g.tool_id, g.repo_owner, g.repo_name, g.description, g.stars,
			g.language, g.homepage, g.updated_at
		FROM tool_github g
		JOIN tools t ON t.id = g.tool_id
		WHERE t.name = ?`, tool).
		Scan(&info.ToolID, &info.RepoOwner, &info.RepoName, &desc, &info.Stars,
			&lang, &homepage, &info.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GitHubInfo{}, fmt.Errorf("github info for %q: %w", tool, ErrNotFound)
	}
	if err != nil {
		return GitHubInfo{}, fmt.Errorf("failed to get github info for %q: %w", tool, err)
	}
	info.Description = desc.String
	info.Language = lang.String
	info.Homepage = homepage.String
	return info, nil
}

// HasGitHubInfo reports whether repository metadata exists for a tool.
func (s *Store) HasGitHubInfo(tool string) (bool, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM tool_github g
		JOIN tools t ON t.id = g.tool_id
		WHERE t.name = ?`, tool).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check github info for %q: %w", tool, err)
	}
	return n > 0, nil
}

// ToolsWithoutGitHub lists tools with no repository metadata yet.
func (s *Store) ToolsWithoutGitHub() ([]Tool, error) {
	rows, err := s.db.Query(`
		SELECT ` + toolColumns + ` FROM tools
		WHERE id NOT IN (SELECT tool_id FROM tool_github)
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools without github info: %w", err)
	}
	defer rows.Close()

	var tools []Tool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tool row: %w", err)
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

// AllGitHubInfo returns repository metadata keyed by tool name.
func (s *Store) AllGitHubInfo() (map[string]GitHubInfo, error) {
	rows, err := s.db.Query(`
		SELECT t.name, g.tool_id, g.repo_owner, g.repo_name, g.description,
			g.stars, g.language, g.homepage, g.updated_at
		FROM tool_github g
		JOIN tools t ON t.id = g.tool_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list github info: %w", err)
	}
	defer rows.Close()

	out := make(map[string]GitHubInfo)
	for rows.Next() {
		var (
			name                 string
			info                 GitHubInfo
			desc, lang, homepage sql.NullString
		)
		if err := rows.Scan(&name, &info.ToolID, &info.RepoOwner, &info.RepoName,
			&desc, &info.Stars, &lang, &homepage, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan github info: %w", err)
		}
		info.Description = desc.String
		info.Language = lang.String
		info.Homepage = homepage.String
		out[name] = info
	}
	return out, rows.Err()
}
