package doc

import (
	"sort"
	"strings"
)

// Fold is a closed fold over the inclusive line range [Start, End].
// A closed fold displays as a single visible row.
type Fold struct {
	Start int
	End   int
}

// Lines returns the number of document lines the fold covers.
func (f Fold) Lines() int {
	return f.End - f.Start + 1
}

// Contains reports whether line falls inside the fold.
func (f Fold) Contains(line int) bool {
	return line >= f.Start && line <= f.End
}

// FoldSet tracks the closed folds of one view. Folds are kept sorted by
// start line and never overlap. The same document may carry different
// fold sets in different views.
type FoldSet struct {
	folds []Fold
}

// NewFoldSet returns an empty fold set.
func NewFoldSet() *FoldSet {
	return &FoldSet{}
}

// Count returns the number of closed folds.
func (fs *FoldSet) Count() int {
	return len(fs.folds)
}

// Folds returns the closed folds in ascending start order.
func (fs *FoldSet) Folds() []Fold {
	copied := make([]Fold, len(fs.folds))
	copy(copied, fs.folds)
	return copied
}

// Close adds a closed fold over [start, end]. Returns false without
// modifying the set when the range is invalid, covers fewer than two
// lines, or overlaps an existing fold.
func (fs *FoldSet) Close(start, end int) bool {
	if start < 1 || end <= start {
		return false
	}
	idx := sort.Search(len(fs.folds), func(i int) bool {
		return fs.folds[i].End >= start
	})
	if idx < len(fs.folds) && fs.folds[idx].Start <= end {
		return false
	}
	fs.folds = append(fs.folds, Fold{})
	copy(fs.folds[idx+1:], fs.folds[idx:])
	fs.folds[idx] = Fold{Start: start, End: end}
	return true
}

// Open removes the closed fold containing line. Returns false when line
// is not inside any closed fold.
func (fs *FoldSet) Open(line int) bool {
	idx, ok := fs.indexAt(line)
	if !ok {
		return false
	}
	fs.folds = append(fs.folds[:idx], fs.folds[idx+1:]...)
	return true
}

// OpenAll removes every closed fold.
func (fs *FoldSet) OpenAll() {
	fs.folds = nil
}

// ClosedAt returns the closed fold containing line, if any.
func (fs *FoldSet) ClosedAt(line int) (Fold, bool) {
	idx, ok := fs.indexAt(line)
	if !ok {
		return Fold{}, false
	}
	return fs.folds[idx], true
}

// NextClosed returns the first closed fold whose start is at or after
// line, if any.
func (fs *FoldSet) NextClosed(line int) (Fold, bool) {
	idx := sort.Search(len(fs.folds), func(i int) bool {
		return fs.folds[i].Start >= line
	})
	if idx == len(fs.folds) {
		return Fold{}, false
	}
	return fs.folds[idx], true
}

// indexAt locates the fold containing line via binary search.
func (fs *FoldSet) indexAt(line int) (int, bool) {
	idx := sort.Search(len(fs.folds), func(i int) bool {
		return fs.folds[i].End >= line
	})
	if idx == len(fs.folds) || fs.folds[idx].Start > line {
		return 0, false
	}
	return idx, true
}

// DetectIndent derives foldable regions from indentation: a run of lines
// indented deeper than a preceding header line forms one candidate fold
// rooted at the header. Runs shorter than minLines are skipped. Blank
// lines inherit the indent of the surrounding block.
func DetectIndent(d *Document, minLines int) []Fold {
	if minLines < 2 {
		minLines = 2
	}
	var folds []Fold
	total := d.LineCount()
	for line := 1; line < total; line++ {
		header := indentOf(d.Line(line))
		if header < 0 {
			continue
		}
		end := line
		for next := line + 1; next <= total; next++ {
			ind := indentOf(d.Line(next))
			if ind < 0 {
				// Blank line: part of the block only if the block continues after it.
				continue
			}
			if ind <= header {
				break
			}
			end = next
		}
		if end-line+1 >= minLines {
			folds = append(folds, Fold{Start: line, End: end})
			line = end
		}
	}
	return folds
}

// indentOf counts leading whitespace columns (tab = 4), or -1 for blank lines.
func indentOf(s string) int {
	if strings.TrimSpace(s) == "" {
		return -1
	}
	indent := 0
	for _, r := range s {
		switch r {
		case ' ':
			indent++
		case '\t':
			indent += 4
		default:
			return indent
		}
	}
	return indent
}
