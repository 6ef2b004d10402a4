package scrollview

// Span is a maximal contiguous run of document lines that is uniformly
// ordinary (one visible row per line) or collapsed into a single visible
// row by a closed fold. Spans partition any traversed range; two ordinary
// spans never abut.
type Span struct {
	Start  int
	End    int
	Folded bool
}

// Lines returns the number of document lines the span covers.
func (s Span) Lines() int {
	return s.End - s.Start + 1
}

// Rows returns the number of visible rows the span occupies.
func (s Span) Rows() int {
	if s.Folded {
		return 1
	}
	return s.Lines()
}

// SpanWalker enumerates spans moving forward through a view's document,
// wrapping to line 1 after the last line. It keeps no state beyond the
// next line to visit and is restartable from any position.
type SpanWalker struct {
	view View
	line int
}

// NewSpanWalker starts a walker whose first span begins at start.
// Out-of-range starts are clamped into the document.
func NewSpanWalker(v View, start int) *SpanWalker {
	if start < 1 {
		start = 1
	}
	if last := v.LineCount(); start > last {
		start = 1
	}
	return &SpanWalker{view: v, line: start}
}

// Next returns the next span. looped is true when the walker wrapped past
// the document's last line back to line 1 to produce this span.
//
// When the current position is inside a closed fold the span is exactly
// that fold's range; otherwise the span is the ordinary run ending just
// before the next closed fold or at the document end.
func (w *SpanWalker) Next() (span Span, looped bool) {
	last := w.view.LineCount()
	if w.line > last {
		w.line = 1
		looped = true
	}

	if start := w.view.FoldClosed(w.line); start >= 0 {
		end := w.view.FoldClosedEnd(w.line)
		w.line = end + 1
		return Span{Start: start, End: end, Folded: true}, looped
	}

	end := last
	if next := w.view.NextFoldStart(w.line); next >= 0 && next <= last {
		end = next - 1
	}
	span = Span{Start: w.line, End: end}
	w.line = end + 1
	return span, looped
}
