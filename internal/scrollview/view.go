// Package scrollview implements the proportional line-mapping engine behind
// the position indicator: fold-aware virtual line counting, topline lookup
// tables, thumb geometry, marker placement, per-refresh memoization, and the
// pointer drag state machine. The engine never renders anything itself; hosts
// feed it views and consume the geometry it produces.
package scrollview

// View is the engine's window onto one visible viewport of a document.
// Hosts implement it over their own document and fold state. Fold queries
// describe closed folds only: an open fold is indistinguishable from
// ordinary lines.
//
// Implementations must tolerate out-of-range lines by returning the
// "no fold" answer rather than failing; transient document races are the
// host's problem to absorb, not the engine's.
type View interface {
	// ID identifies this view handle.
	ID() int

	// BaseID resolves aliasing: views showing the same document content and
	// fold state report the same base ID so memoized results are shared.
	// A view that is not an alias returns its own ID.
	BaseID() int

	// Height is the number of visible rows, excluding any reserved header row.
	Height() int

	// Topline is the 1-indexed document line shown at the top of the view.
	Topline() int

	// LineCount is the document's total line count.
	LineCount() int

	// FoldClosed returns the start line of the closed fold containing line,
	// or -1 when line is not inside a closed fold.
	FoldClosed(line int) int

	// FoldClosedEnd returns the end line of the closed fold containing line,
	// or -1 when line is not inside a closed fold.
	FoldClosedEnd(line int) int

	// NextFoldStart returns the start line of the first closed fold whose
	// start is at or after line, or -1 when no such fold exists. This is
	// what keeps span traversal proportional to fold count rather than
	// line count.
	NextFoldStart(line int) int

	// ClosedFoldCount is the total number of closed folds in the view.
	// Used as a cheap proxy for in-range fold counts by the strategy
	// selector.
	ClosedFoldCount() int
}
