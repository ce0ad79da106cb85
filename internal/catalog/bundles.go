// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"database/sql"
	"errors"
	"fmt"
)

// CreateBundle creates a bundle and its initial members in one
// transaction. A name collision returns ErrDuplicate.
func (s *Store) CreateBundle(name, description string, tools []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO bundles (name, description, created_at) VALUES (?, ?, ?)`,
		name, nullable(description), now())
	if isUniqueViolation(err) {
		return fmt.Errorf("bundle %q: %w", name, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create bundle %q: %w", name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get bundle id: %w", err)
	}

	for _, tool := range tools {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO bundle_tools (bundle_id, tool_name) VALUES (?, ?)`,
			id, tool); err != nil {
			return fmt.Errorf("failed to add %q to bundle %q: %w", tool, name, err)
		}
	}

	return tx.Commit()
}

// GetBundle fetches a bundle and its members.
func (s *Store) GetBundle(name string) (Bundle, error) {
	var (
		b       Bundle
		desc    sql.NullString
		created string
	)
	err := s.db.QueryRow(`SELECT id, name, description, created_at FROM bundles WHERE name = ?`, name).
		Scan(&b.ID, &b.Name, &desc, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Bundle{}, fmt.Errorf("bundle %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to get bundle %q: %w", name, err)
	}
	b.Description = desc.String
	b.CreatedAt = parseTime(created)

	rows, err := s.db.Query(`SELECT tool_name FROM bundle_tools WHERE bundle_id = ? ORDER BY tool_name`, b.ID)
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to list bundle members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tool string
		if err := rows.Scan(&tool); err != nil {
			return Bundle{}, fmt.Errorf("failed to scan bundle member: %w", err)
		}
		b.Tools = append(b.Tools, tool)
	}
	return b, rows.Err()
}

// ListBundles returns every bundle with its members, using a single
// grouped query.
func (s *Store) ListBundles() ([]Bundle, error) {
	rows, err := s.db.Query(`
		SELECT b.id, b.name, b.description, b.created_at, bt.tool_name
		FROM bundles b
		LEFT JOIN bundle_tools bt ON bt.bundle_id = b.id
		ORDER BY b.name, bt.tool_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bundles: %w", err)
	}
	defer rows.Close()

	var (
		bundles []Bundle
		current *Bundle
	)
	for rows.Next() {
		var (
			id      int64
			name    string
			desc    sql.NullString
			created string
			tool    sql.NullString
		)
		if err := rows.Scan(&id, &name, &desc, &created, &tool); err != nil {
			return nil, fmt.Errorf("failed to scan bundle row: %w", err)
		}
		if current == nil || current.ID != id {
			bundles = append(bundles, Bundle{
				ID:          id,
				Name:        name,
				Description: desc.String,
				CreatedAt:   parseTime(created),
			})
			current = &bundles[len(bundles)-1]
		}
		if tool.Valid {
			current.Tools = append(current.Tools, tool.String)
		}
	}
	return bundles, rows.Err()
}

// DeleteBundle removes a bundle; membership rows cascade.
func (s *Store) DeleteBundle(name string) error {
	res, err := s.db.Exec(`DELETE FROM bundles WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete bundle %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("bundle %q: %w", name, ErrNotFound)
	}
	return nil
}

// AddBundleTools adds members to a bundle, ignoring ones already present.
func (s *Store) AddBundleTools(name string, tools []string) error {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM bundles WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("bundle %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to look up bundle %q: %w", name, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, tool := range tools {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO bundle_tools (bundle_id, tool_name) VALUES (?, ?)`,
			id, tool); err != nil {
			return fmt.Errorf("failed to add %q to bundle %q: %w", tool, name, err)
		}
	}
	return tx.Commit()
}

// RemoveBundleTools drops members from a bundle.
func (s *Store) RemoveBundleTools(name string, tools []string) error {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM bundles WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("bundle %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to look up bundle %q: %w", name, err)
	}

	for _, tool := range tools {
		if _, err := s.db.Exec(`DELETE FROM bundle_tools WHERE bundle_id = ? AND tool_name = ?`,
			id, tool); err != nil {
			return fmt.Errorf("failed to remove %q from bundle %q: %w", tool, name, err)
		}
	}
	return nil
}

// BundleNames lists all bundle names alphabetically.
func (s *Store) BundleNames() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM bundles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bundle names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan bundle name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
