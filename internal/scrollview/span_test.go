package scrollview

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSpanWalker_NoFolds(t *testing.T) {
	v := newTestView(10, 5)
	walker := NewSpanWalker(v, 1)

	span, looped := walker.Next()
	require.False(t, looped)
	require.Equal(t, Span{Start: 1, End: 10}, span)

	// Walking past the end wraps back to line 1.
	span, looped = walker.Next()
	require.True(t, looped)
	require.Equal(t, Span{Start: 1, End: 10}, span)
}

func TestSpanWalker_AlternatesAtFolds(t *testing.T) {
	v := newTestView(20, 5)
	require.True(t, v.folds.Close(5, 8))
	require.True(t, v.folds.Close(9, 12))

	walker := NewSpanWalker(v, 1)

	span, looped := walker.Next()
	require.False(t, looped)
	require.Equal(t, Span{Start: 1, End: 4}, span)

	span, looped = walker.Next()
	require.False(t, looped)
	require.Equal(t, Span{Start: 5, End: 8, Folded: true}, span)

	span, looped = walker.Next()
	require.False(t, looped)
	require.Equal(t, Span{Start: 9, End: 12, Folded: true}, span, "adjacent folds stay separate spans")

	span, looped = walker.Next()
	require.False(t, looped)
	require.Equal(t, Span{Start: 13, End: 20}, span)
}

func TestSpanWalker_StartInsideFold(t *testing.T) {
	v := newTestView(20, 5)
	require.True(t, v.folds.Close(5, 10))

	walker := NewSpanWalker(v, 7)
	span, looped := walker.Next()
	require.False(t, looped)
	require.Equal(t, Span{Start: 5, End: 10, Folded: true}, span,
		"starting inside a closed fold yields exactly the fold's range")
}

func TestSpanWalker_FoldAtDocumentStart(t *testing.T) {
	v := newTestView(10, 5)
	require.True(t, v.folds.Close(1, 4))

	walker := NewSpanWalker(v, 1)
	span, _ := walker.Next()
	require.Equal(t, Span{Start: 1, End: 4, Folded: true}, span)

	span, _ = walker.Next()
	require.Equal(t, Span{Start: 5, End: 10}, span)
}

func TestSpanWalker_OutOfRangeStartClamps(t *testing.T) {
	v := newTestView(10, 5)

	walker := NewSpanWalker(v, 99)
	span, looped := walker.Next()
	require.False(t, looped)
	require.Equal(t, 1, span.Start)

	walker = NewSpanWalker(v, -3)
	span, _ = walker.Next()
	require.Equal(t, 1, span.Start)
}

func TestProperty_SpansPartitionDocument(t *testing.T) {
	// Spans from line 1 cover every line exactly once, in order, and
	// ordinary spans never abut.
	rapid.Check(t, func(rt *rapid.T) {
		v := drawTestView(rt)
		walker := NewSpanWalker(v, 1)

		next := 1
		prevFolded := true
		for next <= v.LineCount() {
			span, looped := walker.Next()
			require.False(rt, looped)
			require.Equal(rt, next, span.Start, "spans must be contiguous")
			require.GreaterOrEqual(rt, span.End, span.Start)
			if !span.Folded {
				require.True(rt, prevFolded || next == 1, "two ordinary spans must not abut")
			}
			prevFolded = span.Folded
			next = span.End + 1
		}
		require.Equal(rt, v.LineCount()+1, next, "spans cover the document exactly")
	})
}
