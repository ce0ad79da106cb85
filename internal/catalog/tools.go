// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// scanTool reads one tools row. The column order must match toolColumns.
const toolColumns = `id, name, description, category, source, install_command,
	binary_name, is_installed, is_favorite, notes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTool(row rowScanner) (Tool, error) {
	var (
		t                        Tool
		desc, cat, cmd, bin, not sql.NullString
		source                   string
		created, updated         string
	)
	err := row.Scan(&t.ID, &t.Name, &desc, &cat, &source, &cmd, &bin,
		&t.IsInstalled, &t.IsFavorite, &not, &created, &updated)
	if err != nil {
		return Tool{}, err
	}
	t.Description = desc.String
	t.Category = cat.String
	t.Source = ParseSource(source)
	t.InstallCommand = cmd.String
	t.BinaryName = bin.String
	t.Notes = not.String
	t.CreatedAt = parseTime(created)
	t.UpdatedAt = parseTime(updated)
	return t, nil
}

// nullable maps an empty string to SQL NULL so optional text columns stay
// distinguishable from empty values.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// InsertTool adds a new tool. A name collision returns ErrDuplicate.
func (s *Store) InsertTool(t Tool) error {
	ts := now()
	created := ts
	if !t.CreatedAt.IsZero() {
		created = t.CreatedAt.UTC().Format(time.RFC3339)
	}

	_, err := s.db.Exec(`
		INSERT INTO tools (name, description, category, source, install_command,
			binary_name, is_installed, is_favorite, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Name, nullable(t.Description), nullable(t.Category), t.Source.String(),
		nullable(t.InstallCommand), nullable(t.BinaryName),
		t.IsInstalled, t.IsFavorite, nullable(t.Notes), created, ts)
	if isUniqueViolation(err) {
		return fmt.Errorf("tool %q: %w", t.Name, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert tool %q: %w", t.Name, err)
	}
	return nil
}

// UpsertTool inserts the tool or, when the name already exists, refreshes
// its source, install command, install state, and updated-at. The stored
// description is deliberately left alone so scans never clobber curated
// or user-edited text.
func (s *Store) UpsertTool(t Tool) error {
	ts := now()
	_, err := s.db.Exec(`
		INSERT INTO tools (name, description, category, source, install_command,
			binary_name, is_installed, is_favorite, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			source = excluded.source,
			install_command = excluded.install_command,
			is_installed = excluded.is_installed,
			updated_at = excluded.updated_at`,
		t.Name, nullable(t.Description), nullable(t.Category), t.Source.String(),
		nullable(t.InstallCommand), nullable(t.BinaryName),
		t.IsInstalled, t.IsFavorite, nullable(t.Notes), ts, ts)
	if err != nil {
		return fmt.Errorf("failed to upsert tool %q: %w", t.Name, err)
	}
	return nil
}

// UpdateTool rewrites every mutable column of the tool identified by name.
func (s *Store) UpdateTool(t Tool) error {
	res, err := s.db.Exec(`
		UPDATE tools SET description = ?, category = ?, source = ?,
			install_command = ?, binary_name = ?, is_installed = ?,
			is_favorite = ?, notes = ?, updated_at = ?
		WHERE name = ?`,
		nullable(t.Description), nullable(t.Category), t.Source.String(),
		nullable(t.InstallCommand), nullable(t.BinaryName), t.IsInstalled,
		t.IsFavorite, nullable(t.Notes), now(), t.Name)
	if err != nil {
		return fmt.Errorf("failed to update tool %q: %w", t.Name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("tool %q: %w", t.Name, ErrNotFound)
	}
	return nil
}

// DeleteTool removes a tool; labels, usage, daily usage, and GitHub
// metadata cascade. Returns ErrNotFound for an unknown name.
func (s *Store) DeleteTool(name string) error {
	res, err := s.db.Exec(`DELETE FROM tools WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete tool %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("tool %q: %w", name, ErrNotFound)
	}
	return nil
}

// GetTool looks up a tool by name. Returns ErrNotFound when absent.
func (s *Store) GetTool(name string) (Tool, error) {
	row := s.db.QueryRow(`SELECT `+toolColumns+` FROM tools WHERE name = ?`, name)
	t, err := scanTool(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Tool{}, fmt.Errorf("tool %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Tool{}, fmt.Errorf("failed to get tool %q: %w", name, err)
	}
	return t, nil
}

// HasTool reports whether a tool with the given name exists.
func (s *Store) HasTool(name string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM tools WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check tool %q: %w", name, err)
	}
	return n > 0, nil
}

// ListTools returns tools ordered by name, optionally restricted to
// installed tools and/or a category.
func (s *Store) ListTools(installedOnly bool, category string) ([]Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools`
	var (
		conds []string
		args  []any
	)
	if installedOnly {
		conds = append(conds, "is_installed = 1")
	}
	if category != "" {
		conds = append(conds, "category = ?")
		args = append(args, category)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
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

// SearchTools matches the query as a substring of name, description, or
// category, case-insensitively.
func (s *Store) SearchTools(query string) ([]Tool, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT `+toolColumns+` FROM tools
		WHERE name LIKE ? OR description LIKE ? OR category LIKE ?
		ORDER BY name`, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search tools: %w", err)
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

// SetInstalled flips the install flag for the named tool.
func (s *Store) SetInstalled(name string, installed bool) error {
	_, err := s.db.Exec(`UPDATE tools SET is_installed = ?, updated_at = ? WHERE name = ?`,
		installed, now(), name)
	if err != nil {
		return fmt.Errorf("failed to set install state for %q: %w", name, err)
	}
	return nil
}

// SetFavorite flips the favorite flag for the named tool.
func (s *Store) SetFavorite(name string, favorite bool) error {
	_, err := s.db.Exec(`UPDATE tools SET is_favorite = ?, updated_at = ? WHERE name = ?`,
		favorite, now(), name)
	if err != nil {
		return fmt.Errorf("failed to set favorite for %q: %w", name, err)
	}
	return nil
}

// SetNotes replaces the free-form notes for the named tool.
func (s *Store) SetNotes(name, notes string) error {
	_, err := s.db.Exec(`UPDATE tools SET notes = ?, updated_at = ? WHERE name = ?`,
		nullable(notes), now(), name)
	if err != nil {
		return fmt.Errorf("failed to set notes for %q: %w", name, err)
	}
	return nil
}

// UpdateDescription sets the description; reports whether a row changed.
func (s *Store) UpdateDescription(name, desc string) (bool, error) {
	res, err := s.db.Exec(`UPDATE tools SET description = ?, updated_at = ? WHERE name = ?`,
		desc, now(), name)
	if err != nil {
		return false, fmt.Errorf("failed to update description for %q: %w", name, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// UpdateCategory sets the category; reports whether a row changed.
func (s *Store) UpdateCategory(name, category string) (bool, error) {
	res, err := s.db.Exec(`UPDATE tools SET category = ?, updated_at = ? WHERE name = ?`,
		category, now(), name)
	if err != nil {
		return false, fmt.Errorf("failed to update category for %q: %w", name, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// UpdateSource reassigns a tool to a different source, e.g. after a
// cross-source upgrade moved it from apt to cargo.
func (s *Store) UpdateSource(name string, src Source) (bool, error) {
	res, err := s.db.Exec(`UPDATE tools SET source = ?, updated_at = ? WHERE name = ?`,
		src.String(), now(), name)
	if err != nil {
		return false, fmt.Errorf("failed to update source for %q: %w", name, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ToolStats returns catalog-wide aggregate counts.
func (s *Store) ToolStats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(is_installed), 0),
			COALESCE(SUM(is_favorite), 0)
		FROM tools`).Scan(&st.Total, &st.Installed, &st.Favorites)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to compute stats: %w", err)
	}
	return st, nil
}

// CategoryCounts returns each category with its tool count, most
// populous first.
func (s *Store) CategoryCounts() (map[string]int, error) {
	rows, err := s.db.Query(`
		SELECT category, COUNT(*) FROM tools
		WHERE category IS NOT NULL AND category != ''
		GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			cat string
			n   int
		)
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		counts[cat] = n
	}
	return counts, rows.Err()
}

// LastSyncTime returns the most recent updated_at across all tools, or
// the zero time for an empty catalog.
func (s *Store) LastSyncTime() (time.Time, error) {
	var ts sql.NullString
	err := s.db.QueryRow(`SELECT MAX(updated_at) FROM tools`).Scan(&ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query last sync time: %w", err)
	}
	if !ts.Valid {
		return time.Time{}, nil
	}
	return parseTime(ts.String), nil
}
