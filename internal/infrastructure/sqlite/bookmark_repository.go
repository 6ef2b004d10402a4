package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ofseed/nvim-scrollview/internal/providers"
)

// bookmarkColumns is the list of columns to select for bookmark queries.
const bookmarkColumns = `id, guid, path, line, note, created_at`

// BookmarkRepository implements providers.BookmarkStore using SQLite.
type BookmarkRepository struct {
	db *sql.DB
}

// newBookmarkRepository creates a new BookmarkRepository instance.
func newBookmarkRepository(db *sql.DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

// Ensure BookmarkRepository implements providers.BookmarkStore.
var _ providers.BookmarkStore = (*BookmarkRepository)(nil)

// scanBookmark scans a row into a bookmarkModel.
func scanBookmark(scanner interface{ Scan(...any) error }) (*bookmarkModel, error) {
	var model bookmarkModel
	err := scanner.Scan(
		&model.ID, &model.GUID, &model.Path, &model.Line, &model.Note, &model.CreatedAt,
	)
	return &model, err
}

// Add persists a bookmark at path:line and returns it. Adding to an already
// bookmarked line is an error; callers wanting flip semantics use Toggle.
func (r *BookmarkRepository) Add(path string, line int, note string) (providers.Bookmark, error) {
	model := bookmarkModel{
		GUID:      uuid.NewString(),
		Path:      path,
		Line:      line,
		Note:      note,
		CreatedAt: time.Now().Unix(),
	}
	_, err := r.db.Exec(
		`INSERT INTO bookmarks (guid, path, line, note, created_at) VALUES (?, ?, ?, ?, ?)`,
		model.GUID, model.Path, model.Line, model.Note, model.CreatedAt,
	)
	if err != nil {
		return providers.Bookmark{}, fmt.Errorf("failed to insert bookmark: %w", err)
	}
	return model.toDomain(), nil
}

// Remove deletes the bookmark at path:line. Reports whether one existed.
func (r *BookmarkRepository) Remove(path string, line int) (bool, error) {
	result, err := r.db.Exec(
		`DELETE FROM bookmarks WHERE path = ? AND line = ?`,
		path, line,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete bookmark: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// Toggle adds a bookmark at path:line, or removes an existing one. Reports
// whether the bookmark exists after the call.
func (r *BookmarkRepository) Toggle(path string, line int) (bool, error) {
	removed, err := r.Remove(path, line)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}
	if _, err := r.Add(path, line, ""); err != nil {
		return false, err
	}
	return true, nil
}

// FindByGUID retrieves a bookmark by its GUID.
func (r *BookmarkRepository) FindByGUID(guid string) (providers.Bookmark, error) {
	row := r.db.QueryRow(
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE guid = ?`,
		guid,
	)
	model, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return providers.Bookmark{}, fmt.Errorf("bookmark %s not found", guid)
	}
	if err != nil {
		return providers.Bookmark{}, fmt.Errorf("failed to find bookmark by guid: %w", err)
	}
	return model.toDomain(), nil
}

// ListForPath retrieves the bookmarks on a file, ordered by line.
func (r *BookmarkRepository) ListForPath(path string) ([]providers.Bookmark, error) {
	rows, err := r.db.Query(
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE path = ? ORDER BY line ASC`,
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bookmarks []providers.Bookmark
	for rows.Next() {
		model, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookmark row: %w", err)
		}
		bookmarks = append(bookmarks, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookmark rows: %w", err)
	}
	return bookmarks, nil
}

// DeleteAllForPath removes every bookmark on a file.
func (r *BookmarkRepository) DeleteAllForPath(path string) error {
	_, err := r.db.Exec(`DELETE FROM bookmarks WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("failed to delete bookmarks for path: %w", err)
	}
	return nil
}
