// Package cache stores parse results in a local SQLite database keyed
// by file path and content hash, so unchanged files skip re-parsing on
// subsequent runs.
package cache

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/symscope/symscope/internal/model"
)

const createResultsTable = `
CREATE TABLE IF NOT EXISTS parse_results (
	file_path TEXT PRIMARY KEY,
	content_hash TEXT NOT NULL,
	payload TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
)`

// Cache is a content-addressed parse-result store.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the cache database at dbPath.
func Open(dbPath string) (*Cache, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec(createResultsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached result for the path when the stored content
// hash still matches. A stale or missing entry returns (nil, false).
func (c *Cache) Get(path, contentHash string) (*model.ParseResult, bool) {
	var payload string
	err := sq.Select("payload").
		From("parse_results").
		Where(sq.Eq{"file_path": path, "content_hash": contentHash}).
		RunWith(c.db).
		QueryRow().
		Scan(&payload)
	if err != nil {
		return nil, false
	}

	result, err := model.DecodeParseResult([]byte(payload))
	if err != nil {
		// Undecodable rows are treated as misses and overwritten on Put.
		return nil, false
	}
	return result, true
}

// Put stores a result, replacing any previous entry for the path.
func (c *Cache) Put(path, contentHash string, result *model.ParseResult) error {
	payload, err := model.EncodeParseResult(result)
	if err != nil {
		return fmt.Errorf("failed to encode result for %s: %w", path, err)
	}

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	if _, err := sq.Delete("parse_results").
		Where(sq.Eq{"file_path": path}).
		RunWith(tx).Exec(); err != nil {
		return fmt.Errorf("failed to evict stale entry for %s: %w", path, err)
	}

	if _, err := sq.Insert("parse_results").
		Columns("file_path", "content_hash", "payload", "created_at").
		Values(path, contentHash, string(payload), time.Now().UTC()).
		RunWith(tx).Exec(); err != nil {
		return fmt.Errorf("failed to insert entry for %s: %w", path, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cache transaction: %w", err)
	}
	return nil
}

// Purge removes every cached entry.
func (c *Cache) Purge() error {
	if _, err := sq.Delete("parse_results").RunWith(c.db).Exec(); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}
