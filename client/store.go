package client

import (
	"database/sql"
	"errors"

	_ "modernc.org/sqlite"
)

// ErrKeyNotFound is returned by KV.Get for keys that were never set.
var ErrKeyNotFound = errors.New("key not found")

// KV is a durable key-value store backed by a local sqlite file. It holds
// the persisted client state (identity, session ID) across restarts.
type KV struct {
	db *sql.DB
}

// OpenKV opens (or creates) the store at path.
func OpenKV(path string) (*KV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`); err != nil {
		db.Close()
		return nil, err
	}
	return &KV{db: db}, nil
}

// Close releases the underlying database.
func (s *KV) Close() error { return s.db.Close() }

// Get returns the value stored under key.
func (s *KV) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *KV) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Delete removes key. Deleting an absent key is not an error.
func (s *KV) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}
