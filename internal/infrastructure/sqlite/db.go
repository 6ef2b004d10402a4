// Package sqlite implements bookmark persistence on an embedded SQLite
// database.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/ofseed/nvim-scrollview/internal/log"
)

// schema is the bookmark database schema. Applied idempotently on open.
const schema = `
CREATE TABLE IF NOT EXISTS bookmarks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	guid TEXT NOT NULL UNIQUE,
	path TEXT NOT NULL,
	line INTEGER NOT NULL,
	note TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	UNIQUE (path, line)
);

CREATE INDEX IF NOT EXISTS idx_bookmarks_path ON bookmarks(path);
`

// DB owns the bookmark database connection and its repositories.
type DB struct {
	conn      *sql.DB
	bookmarks *BookmarkRepository
}

// NewDB opens the bookmark database at path, creating the file and its
// parent directories on first run, and applies the schema.
func NewDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	log.Debug(log.CatDB, "Opening database", "path", path)
	conn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		log.ErrorErr(log.CatDB, "Failed to open database", err, "path", path)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		log.ErrorErr(log.CatDB, "Failed to ping database", err, "path", path)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Info(log.CatDB, "Connected to database", "path", path)
	return &DB{conn: conn, bookmarks: newBookmarkRepository(conn)}, nil
}

// NewMemoryDB opens an in-memory database with the schema applied. Used by
// tests and by hosts running without a configured bookmark file.
func NewMemoryDB() (*DB, error) {
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &DB{conn: conn, bookmarks: newBookmarkRepository(conn)}, nil
}

// Bookmarks returns the bookmark repository.
func (d *DB) Bookmarks() *BookmarkRepository {
	return d.bookmarks
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.conn.Close()
}
