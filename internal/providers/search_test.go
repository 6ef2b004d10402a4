package providers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ofseed/nvim-scrollview/internal/doc"
	"github.com/ofseed/nvim-scrollview/internal/scrollview"
)

func TestSearchProvider(t *testing.T) {
	reg := scrollview.NewRegistry()
	p, err := NewSearchProvider(reg)
	require.NoError(t, err)

	d := doc.FromLines([]string{
		"func main() {",
		"	x := 1",
		"	y := 2",
		"}",
		"func helper() {}",
	})

	require.Empty(t, p.MatchLines(d), "no pattern, no matches")
	require.Empty(t, p.Pattern())

	require.NoError(t, p.SetPattern(`^func `))
	require.Equal(t, []int{1, 5}, p.MatchLines(d))
	require.Equal(t, `^func `, p.Pattern())

	entries := p.Entries(d)
	require.Equal(t, []scrollview.MarkerEntry{
		{ProviderID: p.ID(), Line: 1},
		{ProviderID: p.ID(), Line: 5},
	}, entries)

	require.NoError(t, p.SetPattern(""))
	require.Empty(t, p.MatchLines(d))
}

func TestSearchProvider_RejectsBadPattern(t *testing.T) {
	reg := scrollview.NewRegistry()
	p, err := NewSearchProvider(reg)
	require.NoError(t, err)

	require.NoError(t, p.SetPattern("x"))
	require.Error(t, p.SetPattern("(unclosed"))
	require.Equal(t, "x", p.Pattern(), "a bad pattern leaves the previous one active")
}

func TestSearchProvider_DuplicateRegistration(t *testing.T) {
	reg := scrollview.NewRegistry()
	_, err := NewSearchProvider(reg)
	require.NoError(t, err)
	_, err = NewSearchProvider(reg)
	require.Error(t, err)
}
