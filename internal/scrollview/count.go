package scrollview

// VirtualLineCount returns the number of visible rows the line range
// [first, last] occupies in the view, counting each closed fold as one row.
// Malformed ranges are clamped into the document; a reversed range is
// normalized. Results are memoized for the current refresh cycle.
func (e *Engine) VirtualLineCount(v View, first, last int) int {
	first, last = clampRange(v, first, last)

	key := memoKey("count", v.BaseID(), first, last)
	if n, ok := e.memo.getCount(key); ok {
		return n
	}

	var n int
	switch e.countStrategy(v, last-first+1) {
	case StrategySpanwise:
		n = virtualLineCountSpanwise(v, first, last)
	default:
		n = virtualLineCountLinewise(v, first, last)
	}

	e.memo.putCount(key, n)
	return n
}

// countStrategy resolves StrategyAuto for a counting pass over rangeLen
// lines: spanwise when the view's fold count is small relative to the range.
func (e *Engine) countStrategy(v View, rangeLen int) Strategy {
	if e.cfg.CountStrategy != StrategyAuto {
		return e.cfg.CountStrategy
	}
	if float64(v.ClosedFoldCount()) < e.cfg.CountFoldRatio*float64(rangeLen) {
		return StrategySpanwise
	}
	return StrategyLinewise
}

// virtualLineCountSpanwise counts rows by walking spans. Cost is
// proportional to the number of folds touched, not the range length.
func virtualLineCountSpanwise(v View, first, last int) int {
	walker := NewSpanWalker(v, first)
	count := 0
	for {
		span, looped := walker.Next()
		if looped || span.Start > last {
			break
		}
		if span.Folded {
			count++
		} else {
			// Clamp ordinary spans at the range boundaries.
			lo := max(span.Start, first)
			hi := min(span.End, last)
			count += hi - lo + 1
		}
		if span.End >= last {
			break
		}
	}
	return count
}

// virtualLineCountLinewise counts rows by scanning lines, hopping over each
// closed fold in one step. Cost is proportional to the range length.
func virtualLineCountLinewise(v View, first, last int) int {
	count := 0
	line := first
	for line <= last {
		count++
		if end := v.FoldClosedEnd(line); end >= 0 {
			line = end + 1
		} else {
			line++
		}
	}
	return count
}

// clampRange normalizes a possibly malformed line range into the document.
func clampRange(v View, first, last int) (int, int) {
	total := v.LineCount()
	if first > last {
		first, last = last, first
	}
	if first < 1 {
		first = 1
	}
	if first > total {
		first = total
	}
	if last > total {
		last = total
	}
	if last < first {
		last = first
	}
	return first, last
}
