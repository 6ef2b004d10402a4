package sqlite

import (
	"time"

	"github.com/ofseed/nvim-scrollview/internal/providers"
)

// bookmarkModel represents the database row for the bookmarks table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type bookmarkModel struct {
	ID        int64
	GUID      string
	Path      string
	Line      int
	Note      string
	CreatedAt int64 // Unix timestamp
}

// toDomain converts a database bookmarkModel to a providers.Bookmark.
func (m *bookmarkModel) toDomain() providers.Bookmark {
	return providers.Bookmark{
		GUID:      m.GUID,
		Path:      m.Path,
		Line:      m.Line,
		Note:      m.Note,
		CreatedAt: time.Unix(m.CreatedAt, 0),
	}
}
