package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/docsearch"
)

// Compile-time interface verification.
var _ docsearch.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceStore implements docsearch.PreferenceStore using SQLite.
type PreferenceStore struct {
	db *DB
}

// NewPreferenceStore creates a new PreferenceStore.
func NewPreferenceStore(db *DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// Get returns the value stored under key.
func (s *PreferenceStore) Get(ctx context.Context, key docsearch.PreferenceKey) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", docsearch.Errorf(docsearch.ENOTFOUND, "preference %q not set", string(key))
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *PreferenceStore) Set(ctx context.Context, key docsearch.PreferenceKey, value string) error {
	if err := key.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, string(key), value, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Delete removes key.
func (s *PreferenceStore) Delete(ctx context.Context, key docsearch.PreferenceKey) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, string(key))
	return err
}

// List returns every stored preference ordered by key.
func (s *PreferenceStore) List(ctx context.Context) ([]docsearch.Preference, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value, updated_at FROM preferences ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prefs []docsearch.Preference
	for rows.Next() {
		var p docsearch.Preference
		var key, updatedAt string
		if err := rows.Scan(&key, &p.Value, &updatedAt); err != nil {
			return nil, err
		}
		p.Key = docsearch.PreferenceKey(key)
		p.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at")
		if err != nil {
			return nil, err
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}
