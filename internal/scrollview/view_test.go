package scrollview

import (
	"pgregory.net/rapid"

	"github.com/ofseed/nvim-scrollview/internal/doc"
)

// testView is a minimal View over a line count and a fold set.
type testView struct {
	id      int
	baseID  int
	height  int
	topline int
	lines   int
	folds   *doc.FoldSet
}

func newTestView(lines, height int) *testView {
	return &testView{
		id:      1,
		baseID:  1,
		height:  height,
		topline: 1,
		lines:   lines,
		folds:   doc.NewFoldSet(),
	}
}

func (v *testView) ID() int        { return v.id }
func (v *testView) BaseID() int    { return v.baseID }
func (v *testView) Height() int    { return v.height }
func (v *testView) Topline() int   { return v.topline }
func (v *testView) LineCount() int { return v.lines }

func (v *testView) FoldClosed(line int) int {
	if fold, ok := v.folds.ClosedAt(line); ok {
		return fold.Start
	}
	return -1
}

func (v *testView) FoldClosedEnd(line int) int {
	if fold, ok := v.folds.ClosedAt(line); ok {
		return fold.End
	}
	return -1
}

func (v *testView) NextFoldStart(line int) int {
	if fold, ok := v.folds.NextClosed(line); ok {
		return fold.Start
	}
	return -1
}

func (v *testView) ClosedFoldCount() int { return v.folds.Count() }

// drawTestView generates a random document with a random non-overlapping
// fold configuration.
func drawTestView(rt *rapid.T) *testView {
	lines := rapid.IntRange(1, 200).Draw(rt, "lines")
	height := rapid.IntRange(1, 40).Draw(rt, "height")
	v := newTestView(lines, height)

	pos := 1
	for pos < lines {
		gap := rapid.IntRange(0, 12).Draw(rt, "gap")
		start := pos + gap
		length := rapid.IntRange(2, 9).Draw(rt, "length")
		end := start + length - 1
		if end > lines {
			break
		}
		v.folds.Close(start, end)
		pos = end + 1
	}
	return v
}

// forcedEngine returns an engine with a pinned computation strategy so
// results do not depend on the cost model.
func forcedEngine(s Strategy) *Engine {
	cfg := DefaultConfig()
	cfg.CountStrategy = s
	cfg.LookupStrategy = s
	return New(cfg)
}
