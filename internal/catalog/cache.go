// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"database/sql"
	"errors"
	"fmt"
)

// SetExtraction caches extracted tool fields for a repo, replacing any
// previous extraction for the same (owner, repo) regardless of version.
func (s *Store) SetExtraction(e Extraction) error {
	_, err := s.db.Exec(`
		INSERT INTO extraction_cache
			(repo_owner, repo_name, version, name, binary, source,
			 install_command, description, category, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(repo_owner, repo_name) DO UPDATE SET
			version = excluded.version,
			name = excluded.name,
			binary = excluded.binary,
			source = excluded.source,
			install_command = excluded.install_command,
			description = excluded.description,
			category = excluded.category,
			extracted_at = excluded.extracted_at`,
		e.RepoOwner, e.RepoName, e.Version, e.Name, nullable(e.Binary),
		nullable(e.Source), nullable(e.InstallCommand), nullable(e.Description),
		nullable(e.Category), now())
	if err != nil {
		return fmt.Errorf("failed to cache extraction for %s/%s: %w", e.RepoOwner, e.RepoName, err)
	}
	return nil
}

// CachedExtraction returns the cached extraction for (owner, repo) at the
// given version. A stored row at a different version is a miss: the repo
// has moved on and its metadata may no longer apply.
func (s *Store) CachedExtraction(owner, repo, version string) (Extraction, error) {
	var (
		e                              Extraction
		binary, source, cmd, desc, cat sql.NullString
	)
	err := s.db.QueryRow(`
		SELECT repo_owner, repo_name, version, name, binary, source,
			install_command, description, category, extracted_at
		FROM extraction_cache
		WHERE repo_owner = ? AND repo_name = ?`, owner, repo).
		Scan(&e.RepoOwner, &e.RepoName, &e.Version, &e.Name, &binary, &source,
			&cmd, &desc, &cat, &e.ExtractedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Extraction{}, fmt.Errorf("extraction for %s/%s: %w", owner, repo, ErrNotFound)
	}
	if err != nil {
		return Extraction{}, fmt.Errorf("failed to get extraction for %s/%s: %w", owner, repo, err)
	}
	if e.Version != version {
		return Extraction{}, fmt.Errorf("extraction for %s/%s at %s: %w", owner, repo, version, ErrNotFound)
	}
	e.Binary = binary.String
	e.Source = source.String
	e.InstallCommand = cmd.String
	e.Description = desc.String
	e.Category = cat.String
	return e, nil
}

// ClearExtractions empties the extraction cache and reports the number of
// rows removed.
func (s *Store) ClearExtractions() (int, error) {
	res, err := s.db.Exec(`DELETE FROM extraction_cache`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear extraction cache: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// SetCached stores a derived artifact (cheatsheet, suggestion set) under
// a namespaced key, replacing any previous value.
func (s *Store) SetCached(key, content string) error {
	_, err := s.db.Exec(`
		INSERT INTO ai_cache (cache_key, content, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			content = excluded.content,
			created_at = excluded.created_at`,
		key, content, now())
	if err != nil {
		return fmt.Errorf("failed to cache %q: %w", key, err)
	}
	return nil
}

// Cached returns the stored artifact for key, or ErrNotFound.
func (s *Store) Cached(key string) (string, error) {
	var content string
	err := s.db.QueryRow(`SELECT content FROM ai_cache WHERE cache_key = ?`, key).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("cache entry %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get cache entry %q: %w", key, err)
	}
	return content, nil
}

// DeleteCached removes one cache entry. Removing a missing key is not an
// error.
func (s *Store) DeleteCached(key string) error {
	if _, err := s.db.Exec(`DELETE FROM ai_cache WHERE cache_key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete cache entry %q: %w", key, err)
	}
	return nil
}

// ClearCached empties the artifact cache and reports the number of rows
// removed.
func (s *Store) ClearCached() (int, error) {
	res, err := s.db.Exec(`DELETE FROM ai_cache`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
