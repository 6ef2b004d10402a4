package providers

import (
	"github.com/ofseed/nvim-scrollview/internal/scrollview"
)

// CursorProvider marks the cursor's line. Highest priority of the built-in
// providers so the cursor glyph survives row collisions.
type CursorProvider struct {
	id int
}

// NewCursorProvider registers the cursor marker group.
func NewCursorProvider(reg *scrollview.Registry) (*CursorProvider, error) {
	id, err := reg.Register(scrollview.ProviderSpec{
		Group:     "cursor",
		Symbol:    "●",
		Highlight: "ScrollViewCursor",
		Priority:  100,
	})
	if err != nil {
		return nil, err
	}
	return &CursorProvider{id: id}, nil
}

// ID returns the provider's registry ID.
func (p *CursorProvider) ID() int { return p.id }

// Entries produces the single cursor marker.
func (p *CursorProvider) Entries(line int) []scrollview.MarkerEntry {
	if line < 1 {
		return nil
	}
	return []scrollview.MarkerEntry{{ProviderID: p.id, Line: line}}
}
