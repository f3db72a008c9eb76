package imageload

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS images (
	url        TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
)`

// Cache stores downloaded image bytes in a sqlite database keyed by URL
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if needed) the cache database at path
func OpenCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Get returns the cached bytes for url; ok is false on a miss
func (c *Cache) Get(ctx context.Context, url string) (data []byte, ok bool, err error) {
	err = c.db.QueryRowContext(ctx, "SELECT data FROM images WHERE url = ?", url).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put stores data for url, replacing any previous entry
func (c *Cache) Put(ctx context.Context, url string, data []byte) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO images (url, data, fetched_at) VALUES (?, ?, ?)",
		url, data, time.Now().Unix(),
	)
	return err
}

// Clear drops every cached image
func (c *Cache) Clear(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM images")
	return err
}

// Close closes the database
func (c *Cache) Close() error {
	return c.db.Close()
}
