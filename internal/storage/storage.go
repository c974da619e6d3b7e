// Package storage is the durable local store behind the shelf and theme
// preference: a small sqlite table of JSON documents keyed by name. Other
// packages never touch the database directly; they go through the owning
// store types and observe each other's writes via Subscribe.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite"
)

// Well-known store keys.
const (
	// KeySavedBooks holds the canonical saved-book collection.
	KeySavedBooks = "savedBooks"
	// KeyTheme holds the UI theme preference ("light" or "dark").
	KeyTheme = "theme"
	// KeyLegacyRead and KeyLegacyWantToRead are deprecated parallel lists
	// imported once into savedBooks and otherwise left untouched.
	KeyLegacyRead       = "readBooks"
	KeyLegacyWantToRead = "wantToReadBooks"
)

const localStoreSchema = `
CREATE TABLE IF NOT EXISTS local_store (
	store_key TEXT PRIMARY KEY NOT NULL,
	value TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Store is a sqlite-backed key-value store of JSON values.
type Store struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
	subs []func(key string)
}

// Open opens (creating if needed) the local store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to local store: %w", err), closeErr)
	}

	if _, err := db.Exec(localStoreSchema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create local store table: %w", err), closeErr)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the raw JSON value stored under key, and whether it exists.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow(`SELECT value FROM local_store WHERE store_key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

// Set writes value under key and notifies subscribers on success.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO local_store (store_key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
	`, key, value)
	subs := s.subs
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}

	notify(subs, key)
	return nil
}

// Delete removes key and notifies subscribers. Missing keys are a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	_, err := s.db.Exec(`DELETE FROM local_store WHERE store_key = ?`, key)
	subs := s.subs
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}

	notify(subs, key)
	return nil
}

// Subscribe registers fn to be called with the key after every successful
// write. Delivery is best-effort and in-process only, mirroring the
// original storage-event contract: views in other processes may never see
// it promptly.
//
// Callbacks run synchronously on the writer's goroutine, which may still
// hold locks above this store. A callback must not call back into the
// component that issued the write; hand the key to another goroutine
// instead.
func (s *Store) Subscribe(fn func(key string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func notify(subs []func(string), key string) {
	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Warn("Storage subscriber panicked", "key", key, "panic", r)
				}
			}()
			fn(key)
		}()
	}
}
