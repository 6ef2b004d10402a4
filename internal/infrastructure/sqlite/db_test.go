package sqlite

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNewDB_CreatesDirectory verifies that NewDB creates the parent directory if missing.
func TestNewDB_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "bookmarks.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err, "NewDB should succeed even with nested non-existent directories")
	defer db.Close()

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err, "Directory should exist after NewDB")
	require.True(t, info.IsDir())

	// Windows doesn't support Unix permissions.
	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0700), info.Mode().Perm())
	}
}

// TestNewDB_CreatesDatabaseFile verifies that NewDB creates the database file on first run.
func TestNewDB_CreatesDatabaseFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "bookmarks.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	info, err := os.Stat(dbPath)
	require.NoError(t, err, "Database file should exist after NewDB")
	require.False(t, info.IsDir())
}

// TestNewDB_AppliesSchema verifies that the bookmarks table exists after open.
func TestNewDB_AppliesSchema(t *testing.T) {
	db, err := NewMemoryDB()
	require.NoError(t, err)
	defer db.Close()

	var tableName string
	err = db.conn.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='bookmarks'",
	).Scan(&tableName)
	require.NoError(t, err, "bookmarks table should exist after open")
	require.Equal(t, "bookmarks", tableName)
}

// TestNewDB_ReopenKeepsData verifies the schema application is idempotent and
// preserves existing rows.
func TestNewDB_ReopenKeepsData(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "bookmarks.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	_, err = db1.Bookmarks().Add("/tmp/a.txt", 12, "note")
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	db2, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db2.Close()

	bookmarks, err := db2.Bookmarks().ListForPath("/tmp/a.txt")
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	require.Equal(t, 12, bookmarks[0].Line)
	require.Equal(t, "note", bookmarks[0].Note)
}
