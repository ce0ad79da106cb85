// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// toolID resolves a tool name to its id. sql.ErrNoRows passes through so
// callers can distinguish "missing tool" from real failures.
func (s *Store) toolID(name string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM tools WHERE name = ?`, name).Scan(&id)
	return id, err
}

// AddLabels attaches labels to a tool, lowercased and deduplicated.
// Returns false without error when the tool does not exist.
func (s *Store) AddLabels(tool string, labels []string) (bool, error) {
	id, err := s.toolID(tool)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up tool %q: %w", tool, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, label := range labels {
		label = strings.ToLower(strings.TrimSpace(label))
		if label == "" {
			continue
		}
		if _, err := tx.Exec(`INSERT OR IGNORE INTO tool_labels (tool_id, label) VALUES (?, ?)`,
			id, label); err != nil {
			return false, fmt.Errorf("failed to attach label %q: %w", label, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit labels: %w", err)
	}
	return true, nil
}

// Labels returns the labels attached to a tool, alphabetically.
func (s *Store) Labels(tool string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT l.label FROM tool_labels l
		JOIN tools t ON t.id = l.tool_id
		WHERE t.name = ?
		ORDER BY l.label`, tool)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels for %q: %w", tool, err)
	}
	defer rows.Close()
	return collectStrings(rows)
}

// AllLabels returns every distinct label in the catalog.
func (s *Store) AllLabels() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT label FROM tool_labels ORDER BY label`)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()
	return collectStrings(rows)
}

// LabelCounts returns each label with the number of tools bearing it.
func (s *Store) LabelCounts() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT label, COUNT(*) FROM tool_labels GROUP BY label ORDER BY label`)
	if err != nil {
		return nil, fmt.Errorf("failed to count labels: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			label string
			n     int
		)
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("failed to scan label count: %w", err)
		}
		counts[label] = n
	}
	return counts, rows.Err()
}

// ToolsByLabel lists tools bearing the given label. The input is
// lowercased to match storage.
func (s *Store) ToolsByLabel(label string) ([]Tool, error) {
	rows, err := s.db.Query(`
		SELECT `+toolColumns+` FROM tools
		WHERE id IN (SELECT tool_id FROM tool_labels WHERE label = ?)
		ORDER BY name`, strings.ToLower(label))
	if err != nil {
		return nil, fmt.Errorf("failed to list tools by label %q: %w", label, err)
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

// RemoveLabel detaches one label from a tool.
func (s *Store) RemoveLabel(tool, label string) error {
	_, err := s.db.Exec(`
		DELETE FROM tool_labels
		WHERE label = ? AND tool_id IN (SELECT id FROM tools WHERE name = ?)`,
		strings.ToLower(label), tool)
	if err != nil {
		return fmt.Errorf("failed to remove label %q from %q: %w", label, tool, err)
	}
	return nil
}

// ClearLabels detaches all labels from a tool.
func (s *Store) ClearLabels(tool string) error {
	_, err := s.db.Exec(`
		DELETE FROM tool_labels
		WHERE tool_id IN (SELECT id FROM tools WHERE name = ?)`, tool)
	if err != nil {
		return fmt.Errorf("failed to clear labels for %q: %w", tool, err)
	}
	return nil
}

// AllToolLabels returns the label sets for every labeled tool.
func (s *Store) AllToolLabels() (map[string][]string, error) {
	rows, err := s.db.Query(`
		SELECT t.name, l.label FROM tool_labels l
		JOIN tools t ON t.id = l.tool_id
		ORDER BY t.name, l.label`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tool labels: %w", err)
	}
	defer rows.Close()

	labels := make(map[string][]string)
	for rows.Next() {
		var name, label string
		if err := rows.Scan(&name, &label); err != nil {
			return nil, fmt.Errorf("failed to scan tool label: %w", err)
		}
		labels[name] = append(labels[name], label)
	}
	return labels, rows.Err()
}

func collectStrings(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
