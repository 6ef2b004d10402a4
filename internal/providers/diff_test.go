package providers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ofseed/nvim-scrollview/internal/doc"
	"github.com/ofseed/nvim-scrollview/internal/scrollview"
)

func newDiffProvider(t *testing.T, baseline []string) *DiffProvider {
	t.Helper()
	reg := scrollview.NewRegistry()
	p, err := NewDiffProvider(reg, doc.FromLines(baseline))
	require.NoError(t, err)
	return p
}

func TestDiffProvider_NoChanges(t *testing.T) {
	lines := []string{"a", "b", "c"}
	p := newDiffProvider(t, lines)
	require.Empty(t, p.ChangedLines(doc.FromLines(lines)))
}

func TestDiffProvider_ModifiedLine(t *testing.T) {
	p := newDiffProvider(t, []string{"a", "b", "c", "d"})

	changed := p.ChangedLines(doc.FromLines([]string{"a", "B", "c", "d"}))
	require.Equal(t, []int{2}, changed)
}

func TestDiffProvider_InsertedLines(t *testing.T) {
	p := newDiffProvider(t, []string{"a", "b", "c"})

	changed := p.ChangedLines(doc.FromLines([]string{"a", "x", "y", "b", "c"}))
	require.Equal(t, []int{2, 3}, changed)
}

func TestDiffProvider_DeletedLines(t *testing.T) {
	p := newDiffProvider(t, []string{"a", "b", "c", "d"})

	// Deleting b and c leaves a marker where they used to be.
	changed := p.ChangedLines(doc.FromLines([]string{"a", "d"}))
	require.Equal(t, []int{2}, changed)
}

func TestDiffProvider_DeletionAtEndClampsIntoDocument(t *testing.T) {
	p := newDiffProvider(t, []string{"a", "b", "c"})

	changed := p.ChangedLines(doc.FromLines([]string{"a"}))
	require.Len(t, changed, 1)
	require.LessOrEqual(t, changed[0], 1)
	require.GreaterOrEqual(t, changed[0], 1)
}

func TestDiffProvider_SetBaseline(t *testing.T) {
	p := newDiffProvider(t, []string{"a", "b"})
	current := doc.FromLines([]string{"a", "x"})
	require.NotEmpty(t, p.ChangedLines(current))

	p.SetBaseline(current)
	require.Empty(t, p.ChangedLines(current))
}

func TestDiffProvider_Entries(t *testing.T) {
	p := newDiffProvider(t, []string{"a", "b", "c"})

	entries := p.Entries(doc.FromLines([]string{"a", "B", "c"}))
	require.Equal(t, []scrollview.MarkerEntry{{ProviderID: p.ID(), Line: 2}}, entries)
}
