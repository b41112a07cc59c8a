package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// LoadBlob returns the value stored under key. The boolean is false when
// the key has never been written.
func (s *Store) LoadBlob(key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: cannot load %s: %w", key, err)
	}
	return data, true, nil
}

// SaveBlob replaces the value stored under key.
func (s *Store) SaveBlob(key string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", key, err)
	}
	return nil
}

// DeleteBlob removes key if present.
func (s *Store) DeleteBlob(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete %s: %w", key, err)
	}
	return nil
}
