// Package doc holds the document model for the pager: an immutable snapshot
// of a file's lines plus the per-view set of closed folds.
package doc

import (
	"fmt"
	"os"
	"strings"
)

// Document is an immutable, 1-indexed sequence of text lines.
// Reloading a changed file produces a new Document; existing snapshots
// are never mutated.
type Document struct {
	path  string
	lines []string
}

// Load reads a file from disk and returns its Document snapshot.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user-requested file
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	var lines []string
	if text == "" {
		lines = []string{""}
	} else {
		lines = strings.Split(text, "\n")
	}
	return &Document{path: path, lines: lines}, nil
}

// FromLines builds a Document from in-memory lines. Used by tests and by
// providers that diff against a baseline snapshot.
func FromLines(lines []string) *Document {
	copied := make([]string, len(lines))
	copy(copied, lines)
	return &Document{lines: copied}
}

// Path returns the file path this document was loaded from, or "" for
// in-memory documents.
func (d *Document) Path() string {
	return d.path
}

// LineCount returns the number of lines in the document. Never less than 1.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the 1-indexed line n, or "" when n is out of range.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.lines) {
		return ""
	}
	return d.lines[n-1]
}

// Lines returns a copy of all lines in order.
func (d *Document) Lines() []string {
	copied := make([]string, len(d.lines))
	copy(copied, d.lines)
	return copied
}

// Text returns the document joined back into a single string.
func (d *Document) Text() string {
	return strings.Join(d.lines, "\n")
}
