package providers

import (
	"time"

	"github.com/ofseed/nvim-scrollview/internal/scrollview"
)

// Bookmark is one persisted bookmark on a file.
type Bookmark struct {
	GUID      string
	Path      string
	Line      int
	Note      string
	CreatedAt time.Time
}

// BookmarkStore is the persistence surface the bookmark provider needs.
// Implemented by the sqlite repository.
type BookmarkStore interface {
	// ListForPath returns the bookmarks on a file, ordered by line.
	ListForPath(path string) ([]Bookmark, error)
	// Toggle adds a bookmark at path:line, or removes an existing one.
	// Reports whether the bookmark exists after the call.
	Toggle(path string, line int) (bool, error)
}

// BookmarksProvider marks persisted bookmark lines for one file.
type BookmarksProvider struct {
	id    int
	store BookmarkStore
	path  string
}

// NewBookmarksProvider registers the bookmark marker group over a store.
func NewBookmarksProvider(reg *scrollview.Registry, store BookmarkStore, path string) (*BookmarksProvider, error) {
	id, err := reg.Register(scrollview.ProviderSpec{
		Group:     "bookmarks",
		Symbol:    "♦",
		Highlight: "ScrollViewBookmark",
		Priority:  50,
	})
	if err != nil {
		return nil, err
	}
	return &BookmarksProvider{id: id, store: store, path: path}, nil
}

// ID returns the provider's registry ID.
func (p *BookmarksProvider) ID() int { return p.id }

// Toggle flips the bookmark on a line. Reports whether the line is
// bookmarked after the call.
func (p *BookmarksProvider) Toggle(line int) (bool, error) {
	return p.store.Toggle(p.path, line)
}

// Lines returns the bookmarked lines for the provider's file.
func (p *BookmarksProvider) Lines() ([]int, error) {
	bookmarks, err := p.store.ListForPath(p.path)
	if err != nil {
		return nil, err
	}
	lines := make([]int, 0, len(bookmarks))
	for _, b := range bookmarks {
		lines = append(lines, b.Line)
	}
	return lines, nil
}

// Entries produces one marker entry per bookmark. Store failures degrade to
// no markers; the indicator must keep rendering without persistence.
func (p *BookmarksProvider) Entries() []scrollview.MarkerEntry {
	lines, err := p.Lines()
	if err != nil {
		return nil
	}
	entries := make([]scrollview.MarkerEntry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, scrollview.MarkerEntry{ProviderID: p.id, Line: line})
	}
	return entries
}
