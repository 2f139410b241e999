package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// PageCache holds scraped page text keyed by URL for the duration of a run.
type PageCache interface {
	Get(ctx context.Context, url string) (content string, ok bool, err error)
	Put(ctx context.Context, url, content string) error
	Reset(ctx context.Context) error
}

// SQLitePageCache is a PageCache backed by an in-memory SQLite database.
// Nothing is written to disk; the data is gone once Close is called.
type SQLitePageCache struct {
	db *sql.DB
}

// NewSQLitePageCache opens a private in-memory database and creates the
// pages table.
func NewSQLitePageCache() (*SQLitePageCache, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// Every connection to ":memory:" is a separate database, so keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS pages (
		url        TEXT PRIMARY KEY,
		content    TEXT NOT NULL,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating pages table: %w", err)
	}

	return &SQLitePageCache{db: db}, nil
}

// Get returns the cached content for url.
func (c *SQLitePageCache) Get(ctx context.Context, url string) (string, bool, error) {
	var content string
	err := c.db.QueryRowContext(ctx, "SELECT content FROM pages WHERE url = ?", url).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading cached page %s: %w", url, err)
	}
	return content, true, nil
}

// Put stores content for url, replacing any previous entry.
func (c *SQLitePageCache) Put(ctx context.Context, url, content string) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO pages (url, content, fetched_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
		url, content)
	if err != nil {
		return fmt.Errorf("caching page %s: %w", url, err)
	}
	return nil
}

// Reset drops every cached page. Called at the start of each run.
func (c *SQLitePageCache) Reset(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM pages"); err != nil {
		return fmt.Errorf("resetting page cache: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (c *SQLitePageCache) Close() error {
	return c.db.Close()
}
