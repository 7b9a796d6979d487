// Package store is the local durable store: a single-file SQLite
// database holding namespaced JSON documents, one row per key.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Document keys. The deal collection and the backup configuration are
// independent documents; the last-sync stamp is a plain string.
const (
	KeyDeals        = "hungers_crm_deals_v1"
	KeyGithubConfig = "hungers_crm_github_config"
	KeyLastSync     = "last_github_sync"
	KeyAuth         = "hungers_crm_auth"
)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at path. Parent directories are
// created as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s := &Store{db: db}
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}
	return s, nil
}

func (s *Store) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	return err
}

// Get returns the document under key. A missing key is not an error:
// ok is false and value is empty.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM documents WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read document %q: %w", key, err)
	}
	return value, true, nil
}

// Put writes the document under key, replacing any previous value.
// Writes are synchronous; there is no batching.
func (s *Store) Put(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO documents (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("write document %q: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
