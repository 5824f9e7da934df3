package lookup

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Cache persists raw lookup responses in a local SQLite database so a query
// answered once never costs quota again, across runs and process restarts.
// Entries never expire.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (or creates) the response cache at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open response cache: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS responses (
		key        TEXT PRIMARY KEY,
		body       BLOB NOT NULL,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init response cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Get returns the cached body for key, if present.
func (c *Cache) Get(key string) ([]byte, bool, error) {
	var body []byte
	err := c.db.QueryRow(`SELECT body FROM responses WHERE key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	return body, true, nil
}

// Put stores body under key, replacing any previous entry.
func (c *Cache) Put(key string, body []byte) error {
	_, err := c.db.Exec(
		`INSERT INTO responses (key, body, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET body = excluded.body`,
		key, body, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}
