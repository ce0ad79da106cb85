// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"database/sql"
	"fmt"
)

// SaveSearch records one discover query. sourceFilters is the
// JSON-encoded list of source names the search was restricted to.
func (s *Store) SaveSearch(query string, aiEnabled bool, sourceFilters string) error {
	_, err := s.db.Exec(`
		INSERT INTO discover_search_history (query, ai_enabled, source_filters, created_at)
		VALUES (?, ?, ?, ?)`,
		query, aiEnabled, nullable(sourceFilters), now())
	if err != nil {
		return fmt.Errorf("failed to save search %q: %w", query, err)
	}
	return nil
}

// RecentSearches returns the newest n saved queries, newest first.
func (s *Store) RecentSearches(n int) ([]SearchRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, query, ai_enabled, source_filters, created_at
		FROM discover_search_history
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	defer rows.Close()

	var records []SearchRecord
	for rows.Next() {
		var (
			r       SearchRecord
			filters sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Query, &r.AIEnabled, &filters, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search record: %w", err)
		}
		r.SourceFilters = filters.String
		records = append(records, r)
	}
	return records, rows.Err()
}

// ClearSearches deletes the entire search history.
func (s *Store) ClearSearches() error {
	if _, err := s.db.Exec(`DELETE FROM discover_search_history`); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	return nil
}

// PruneSearches keeps only the newest keep entries.
func (s *Store) PruneSearches(keep int) error {
	_, err := s.db.Exec(`
		DELETE FROM discover_search_history
		WHERE id NOT IN (
			SELECT id FROM discover_search_history
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("failed to prune search history: %w", err)
	}
	return nil
}
