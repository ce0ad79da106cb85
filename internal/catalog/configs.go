// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"database/sql"
	"errors"
	"fmt"
)

// AddConfigLink records a dotfile association. A name collision returns
// ErrDuplicate.
func (s *Store) AddConfigLink(c ConfigLink) error {
	var toolID any
	if c.ToolID != 0 {
		toolID = c.ToolID
	}
	_, err := s.db.Exec(`
		INSERT INTO configs (name, source_path, target_path, tool_id, is_symlinked, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.Name, c.SourcePath, c.TargetPath, toolID, c.IsSymlinked, now())
	if isUniqueViolation(err) {
		return fmt.Errorf("config %q: %w", c.Name, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to add config %q: %w", c.Name, err)
	}
	return nil
}

// GetConfigLink looks up one config association by name.
func (s *Store) GetConfigLink(name string) (ConfigLink, error) {
	var (
		c       ConfigLink
		toolID  sql.NullInt64
		created string
	)
	err := s.db.QueryRow(`
		SELECT id, name, source_path, target_path, tool_id, is_symlinked, created_at
		FROM configs WHERE name = ?`, name).
		Scan(&c.ID, &c.Name, &c.SourcePath, &c.TargetPath, &toolID, &c.IsSymlinked, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return ConfigLink{}, fmt.Errorf("config %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return ConfigLink{}, fmt.Errorf("failed to get config %q: %w", name, err)
	}
	c.ToolID = toolID.Int64
	c.CreatedAt = parseTime(created)
	return c, nil
}

// ListConfigLinks returns every config association, by name.
func (s *Store) ListConfigLinks() ([]ConfigLink, error) {
	rows, err := s.db.Query(`
		SELECT id, name, source_path, target_path, tool_id, is_symlinked, created_at
		FROM configs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list configs: %w", err)
	}
	defer rows.Close()

	var configs []ConfigLink
	for rows.Next() {
		var (
			c       ConfigLink
			toolID  sql.NullInt64
			created string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.SourcePath, &c.TargetPath,
			&toolID, &c.IsSymlinked, &created); err != nil {
			return nil, fmt.Errorf("failed to scan config row: %w", err)
		}
		c.ToolID = toolID.Int64
		c.CreatedAt = parseTime(created)
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

// DeleteConfigLink removes a config association.
func (s *Store) DeleteConfigLink(name string) error {
	res, err := s.db.Exec(`DELETE FROM configs WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete config %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("config %q: %w", name, ErrNotFound)
	}
	return nil
}

// SetSymlinked updates the deployment state of a config association.
func (s *Store) SetSymlinked(name string, linked bool) error {
	_, err := s.db.Exec(`UPDATE configs SET is_symlinked = ? WHERE name = ?`, linked, name)
	if err != nil {
		return fmt.Errorf("failed to update config %q: %w", name, err)
	}
	return nil
}

// AddInterest records a topic the user wants suggestions for.
func (s *Store) AddInterest(name, description string, priority int) error {
	_, err := s.db.Exec(`
		INSERT INTO interests (name, description, priority) VALUES (?, ?, ?)`,
		name, nullable(description), priority)
	if isUniqueViolation(err) {
		return fmt.Errorf("interest %q: %w", name, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to add interest %q: %w", name, err)
	}
	return nil
}

// ListInterests returns interests, highest priority first.
func (s *Store) ListInterests() ([]Interest, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, priority FROM interests
		ORDER BY priority DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}
	defer rows.Close()

	var interests []Interest
	for rows.Next() {
		var (
			in   Interest
			desc sql.NullString
		)
		if err := rows.Scan(&in.ID, &in.Name, &desc, &in.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan interest row: %w", err)
		}
		in.Description = desc.String
		interests = append(interests, in)
	}
	return interests, rows.Err()
}

// DeleteInterest removes an interest by name.
func (s *Store) DeleteInterest(name string) error {
	res, err := s.db.Exec(`DELETE FROM interests WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete interest %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("interest %q: %w", name, ErrNotFound)
	}
	return nil
}
