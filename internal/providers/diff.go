package providers

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/ofseed/nvim-scrollview/internal/doc"
	"github.com/ofseed/nvim-scrollview/internal/scrollview"
)

// DiffProvider marks lines that changed relative to the document content
// captured when the file was opened.
type DiffProvider struct {
	id       int
	dmp      *diffmatchpatch.DiffMatchPatch
	baseline string
}

// NewDiffProvider registers the diff marker group with the opened content
// as the comparison baseline.
func NewDiffProvider(reg *scrollview.Registry, baseline *doc.Document) (*DiffProvider, error) {
	id, err := reg.Register(scrollview.ProviderSpec{
		Group:     "diff",
		Symbol:    "~",
		Highlight: "ScrollViewDiff",
		Priority:  40,
	})
	if err != nil {
		return nil, err
	}
	return &DiffProvider{
		id:       id,
		dmp:      diffmatchpatch.New(),
		baseline: baseline.Text(),
	}, nil
}

// ID returns the provider's registry ID.
func (p *DiffProvider) ID() int { return p.id }

// SetBaseline replaces the comparison baseline.
func (p *DiffProvider) SetBaseline(d *doc.Document) {
	p.baseline = d.Text()
}

// ChangedLines returns the 1-indexed lines of d that differ from the
// baseline: inserted lines directly, and for a pure deletion the line now
// occupying the deleted region's position.
func (p *DiffProvider) ChangedLines(d *doc.Document) []int {
	current := d.Text()
	if current == p.baseline {
		return nil
	}

	// Line-mode diff keeps hunks aligned on line boundaries.
	c1, c2, lineArray := p.dmp.DiffLinesToChars(p.baseline, current)
	diffs := p.dmp.DiffCharsToLines(p.dmp.DiffMain(c1, c2, false), lineArray)

	seen := make(map[int]struct{})
	var changed []int
	mark := func(line int) {
		if line < 1 {
			line = 1
		}
		if line > d.LineCount() {
			line = d.LineCount()
		}
		if _, dup := seen[line]; dup {
			return
		}
		seen[line] = struct{}{}
		changed = append(changed, line)
	}

	line := 1 // current position in d
	for _, df := range diffs {
		n := countLines(df.Text)
		switch df.Type {
		case diffmatchpatch.DiffEqual:
			line += n
		case diffmatchpatch.DiffInsert:
			for i := 0; i < n; i++ {
				mark(line + i)
			}
			line += n
		case diffmatchpatch.DiffDelete:
			mark(line)
		}
	}
	return changed
}

// Entries produces one marker entry per changed line.
func (p *DiffProvider) Entries(d *doc.Document) []scrollview.MarkerEntry {
	lines := p.ChangedLines(d)
	entries := make([]scrollview.MarkerEntry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, scrollview.MarkerEntry{ProviderID: p.id, Line: line})
	}
	return entries
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
