// Package providers implements the marker producers that feed the position
// indicator: search matches, diff hunks against the content at open time,
// the cursor line, and persisted bookmarks. Each provider registers once
// with the engine's registry and then translates its domain state into
// marker entries on demand.
package providers

import (
	"regexp"

	"github.com/ofseed/nvim-scrollview/internal/doc"
	"github.com/ofseed/nvim-scrollview/internal/log"
	"github.com/ofseed/nvim-scrollview/internal/scrollview"
)

// SearchProvider marks every line matching the active search pattern.
type SearchProvider struct {
	id int
	re *regexp.Regexp
}

// NewSearchProvider registers the search marker group.
func NewSearchProvider(reg *scrollview.Registry) (*SearchProvider, error) {
	id, err := reg.Register(scrollview.ProviderSpec{
		Group:     "search",
		Symbol:    "=",
		Highlight: "ScrollViewSearch",
		Priority:  60,
	})
	if err != nil {
		return nil, err
	}
	return &SearchProvider{id: id}, nil
}

// ID returns the provider's registry ID.
func (p *SearchProvider) ID() int { return p.id }

// SetPattern compiles and activates a search pattern. An empty pattern
// clears the search.
func (p *SearchProvider) SetPattern(pattern string) error {
	if pattern == "" {
		p.re = nil
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		log.Debug(log.CatMarker, "rejected search pattern", "pattern", pattern, "error", err)
		return err
	}
	p.re = re
	return nil
}

// Pattern returns the active pattern, or "" when no search is live.
func (p *SearchProvider) Pattern() string {
	if p.re == nil {
		return ""
	}
	return p.re.String()
}

// MatchLines returns the 1-indexed lines of d matching the active pattern,
// in ascending order.
func (p *SearchProvider) MatchLines(d *doc.Document) []int {
	if p.re == nil {
		return nil
	}
	var lines []int
	for n := 1; n <= d.LineCount(); n++ {
		if p.re.MatchString(d.Line(n)) {
			lines = append(lines, n)
		}
	}
	return lines
}

// Entries produces one marker entry per matching line.
func (p *SearchProvider) Entries(d *doc.Document) []scrollview.MarkerEntry {
	matches := p.MatchLines(d)
	entries := make([]scrollview.MarkerEntry, 0, len(matches))
	for _, line := range matches {
		entries = append(entries, scrollview.MarkerEntry{ProviderID: p.id, Line: line})
	}
	return entries
}
