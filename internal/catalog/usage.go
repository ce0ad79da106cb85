// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ToolUsage pairs a tool name with its usage stats for ranked listings.
type ToolUsage struct {
	Name      string
	UseCount  int64
	LastUsed  string
	FirstSeen string
}

// ToolBinary pairs a tool name with the executable it answers to.
type ToolBinary struct {
	Name   string
	Binary string
}

// RecordUsage adds delta invocations to a tool's cumulative count and to
// its daily row. An empty lastUsed leaves the stored last-used timestamp
// alone. Recording against an unknown tool is a no-op returning false —
// usage never creates tools.
func (s *Store) RecordUsage(tool string, delta int64, lastUsed string) (bool, error) {
	id, err := s.toolID(tool)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up tool %q: %w", tool, err)
	}

	ts := now()
	res, err := s.db.Exec(`
		UPDATE tool_usage
		SET use_count = use_count + ?, last_used = COALESCE(?, last_used), updated_at = ?
		WHERE tool_id = ?`,
		delta, nullable(lastUsed), ts, id)
	if err != nil {
		return false, fmt.Errorf("failed to update usage for %q: %w", tool, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := s.db.Exec(`
			INSERT INTO tool_usage (tool_id, use_count, last_used, first_seen, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			id, delta, nullable(lastUsed), ts, ts); err != nil {
			return false, fmt.Errorf("failed to insert usage for %q: %w", tool, err)
		}
	}

	// Daily accounting keys on the invocation date when one was given,
	// today otherwise.
	day := today()
	if lastUsed != "" {
		if t, err := time.Parse(time.RFC3339, lastUsed); err == nil {
			day = t.UTC().Format("2006-01-02")
		}
	}
	if _, err := s.db.Exec(`
		INSERT INTO usage_daily (tool_id, date, count) VALUES (?, ?, ?)
		ON CONFLICT(tool_id, date) DO UPDATE SET count = count + ?`,
		id, day, delta, delta); err != nil {
		return false, fmt.Errorf("failed to record daily usage for %q: %w", tool, err)
	}

	return true, nil
}

// Usage returns the usage stats for one tool, or ErrNotFound when none
// have been recorded.
func (s *Store) Usage(tool string) (UsageStats, error) {
	var (
		u        UsageStats
		lastUsed sql.NullString
	)
	err := s.db.QueryRow(`
		SELECT u.tool_id, u.use_count, u.last_used, u.first_seen, u.updated_at
		FROM tool_usage u
		JOIN tools t ON t.id = u.tool_id
		WHERE t.name = ?`, tool).
		Scan(&u.ToolID, &u.UseCount, &lastUsed, &u.FirstSeen, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return UsageStats{}, fmt.Errorf("usage for %q: %w", tool, ErrNotFound)
	}
	if err != nil {
		return UsageStats{}, fmt.Errorf("failed to get usage for %q: %w", tool, err)
	}
	u.LastUsed = lastUsed.String
	return u, nil
}

// AllUsage returns usage for every tracked tool, highest count first.
func (s *Store) AllUsage() ([]ToolUsage, error) {
	rows, err := s.db.Query(`
		SELECT t.name, u.use_count, u.last_used, u.first_seen
		FROM tool_usage u
		JOIN tools t ON t.id = u.tool_id
		ORDER BY u.use_count DESC, t.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage: %w", err)
	}
	defer rows.Close()

	var usage []ToolUsage
	for rows.Next() {
		var (
			u        ToolUsage
			lastUsed sql.NullString
		)
		if err := rows.Scan(&u.Name, &u.UseCount, &lastUsed, &u.FirstSeen); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		u.LastUsed = lastUsed.String
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

// DailyUsage returns exactly days counts for the tool, oldest first.
// Positions map to the dates today-(days-1) .. today; days with no
// recorded use are zero, as is every position for an unknown tool.
func (s *Store) DailyUsage(tool string, days int) ([]int64, error) {
	counts := make([]int64, days)
	if days <= 0 {
		return counts, nil
	}

	start := time.Now().UTC().AddDate(0, 0, -(days - 1))
	rows, err := s.db.Query(`
		SELECT d.date, d.count
		FROM usage_daily d
		JOIN tools t ON t.id = d.tool_id
		WHERE t.name = ? AND d.date >= ?`,
		tool, start.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage for %q: %w", tool, err)
	}
	defer rows.Close()

	byDate := make(map[string]int64)
	for rows.Next() {
		var (
			date  string
			count int64
		)
		if err := rows.Scan(&date, &count); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage: %w", err)
		}
		byDate[date] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		counts[i] = byDate[date]
	}
	return counts, nil
}

// AllDailyUsage returns the daily vectors for every tool with recorded
// usage in the window.
func (s *Store) AllDailyUsage(days int) (map[string][]int64, error) {
	if days <= 0 {
		return map[string][]int64{}, nil
	}

	start := time.Now().UTC().AddDate(0, 0, -(days - 1))
	rows, err := s.db.Query(`
		SELECT t.name, d.date, d.count
		FROM usage_daily d
		JOIN tools t ON t.id = d.tool_id
		WHERE d.date >= ?`,
		start.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage: %w", err)
	}
	defer rows.Close()

	type cell struct {
		date  string
		count int64
	}
	byTool := make(map[string][]cell)
	for rows.Next() {
		var (
			name  string
			c     cell
		)
		if err := rows.Scan(&name, &c.date, &c.count); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage: %w", err)
		}
		byTool[name] = append(byTool[name], c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make(map[string][]int64, len(byTool))
	for name, cells := range byTool {
		counts := make([]int64, days)
		index := make(map[string]int, days)
		for i := 0; i < days; i++ {
			index[start.AddDate(0, 0, i).Format("2006-01-02")] = i
		}
		for _, c := range cells {
			if i, ok := index[c.date]; ok {
				counts[i] = c.count
			}
		}
		out[name] = counts
	}
	return out, nil
}

// MatchCommand resolves a shell command name to a tracked tool, matching
// the binary name first and the tool name second.
func (s *Store) MatchCommand(cmd string) (string, bool, error) {
	var name string
	err := s.db.QueryRow(`SELECT name FROM tools WHERE binary_name = ? OR name = ? LIMIT 1`,
		cmd, cmd).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to match command %q: %w", cmd, err)
	}
	return name, true, nil
}

// ToolBinaries returns every tool paired with the executable it answers
// to (binary_name when set, name otherwise).
func (s *Store) ToolBinaries() ([]ToolBinary, error) {
	rows, err := s.db.Query(`SELECT name, COALESCE(binary_name, name) FROM tools ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tool binaries: %w", err)
	}
	defer rows.Close()

	var binaries []ToolBinary
	for rows.Next() {
		var tb ToolBinary
		if err := rows.Scan(&tb.Name, &tb.Binary); err != nil {
			return nil, fmt.Errorf("failed to scan tool binary: %w", err)
		}
		binaries = append(binaries, tb)
	}
	return binaries, rows.Err()
}

// ClearUsage deletes all cumulative and daily usage rows.
func (s *Store) ClearUsage() error {
	if _, err := s.db.Exec(`DELETE FROM tool_usage`); err != nil {
		return fmt.Errorf("failed to clear usage: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM usage_daily`); err != nil {
		return fmt.Errorf("failed to clear daily usage: %w", err)
	}
	return nil
}

// CountOrphanedUsage counts usage rows whose tool no longer exists.
// Databases created before foreign keys were enforced can carry these.
func (s *Store) CountOrphanedUsage() (int, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM tool_usage
		WHERE tool_id NOT IN (SELECT id FROM tools)`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count orphaned usage: %w", err)
	}
	return n, nil
}

// DeleteOrphanedUsage removes usage rows whose tool no longer exists and
// reports how many were deleted.
func (s *Store) DeleteOrphanedUsage() (int, error) {
	res, err := s.db.Exec(`
		DELETE FROM tool_usage
		WHERE tool_id NOT IN (SELECT id FROM tools)`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphaned usage: %w", err)
	}
	if _, err := s.db.Exec(`
		DELETE FROM usage_daily
		WHERE tool_id NOT IN (SELECT id FROM tools)`); err != nil {
		return 0, fmt.Errorf("failed to delete orphaned daily usage: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// UnusedTools lists installed tools with no recorded invocations.
func (s *Store) UnusedTools() ([]Tool, error) {
	rows, err := s.db.Query(`
		SELECT ` + toolColumns + ` FROM tools
		WHERE is_installed = 1 AND id NOT IN (
			SELECT tool_id FROM tool_usage WHERE use_count > 0
		)
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list unused tools: %w", err)
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
