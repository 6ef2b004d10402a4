package scrollview

// ToplineLookup builds the track-row to topline table for a view: entry i
// (0-indexed) is the document line that becomes the topline when the thumb
// occupies row i+1 of a track with rows total rows. The table is
// non-decreasing, every entry is normalized to the start of its enclosing
// closed fold, and entries never exceed the document's last line.
// Results are memoized for the current refresh cycle.
func (e *Engine) ToplineLookup(v View, rows int) []int {
	key := memoKey("lookup", v.BaseID(), rows)
	if table, ok := e.memo.getLookup(key); ok {
		return table
	}

	table := e.buildLookup(v, rows)
	e.memo.putLookup(key, table)
	return table
}

func (e *Engine) buildLookup(v View, rows int) []int {
	last := v.LineCount()
	if rows < 1 {
		return nil
	}

	total := e.VirtualLineCount(v, 1, last)
	if total <= 1 || rows <= 1 {
		// Degenerate: nothing to interpolate over.
		table := make([]int, rows)
		for i := range table {
			table[i] = last
		}
		normalizeTable(v, table)
		return table
	}

	var table []int
	switch e.lookupStrategy(v) {
	case StrategySpanwise:
		table = toplineLookupSpanwise(v, rows, total)
	default:
		table = toplineLookupLinewise(v, rows, total)
	}

	normalizeTable(v, table)
	return table
}

// lookupStrategy resolves StrategyAuto for table construction. Fold queries
// dominate the spanwise walk here more than in counting, so the ratio is
// calibrated separately.
func (e *Engine) lookupStrategy(v View) Strategy {
	if e.cfg.LookupStrategy != StrategyAuto {
		return e.cfg.LookupStrategy
	}
	if float64(v.ClosedFoldCount()) < e.cfg.LookupFoldRatio*float64(v.LineCount()) {
		return StrategySpanwise
	}
	return StrategyLinewise
}

// rowTarget returns the 1-indexed virtual position a track row maps to.
// Row r targets proportion (r-1)/(rows-1) of the virtual range [1, total];
// the exact position is rounded to the nearest integer, half up, so a
// midpoint between an ordinary line and a following fold resolves toward
// including the fold.
func rowTarget(r, rows, total int) int {
	num := (r - 1) * (total - 1)
	den := rows - 1
	return 1 + (2*num+den)/(2*den)
}

// toplineLookupSpanwise builds the table by walking spans once, carrying
// the cumulative virtual offset. Each row's target position is located by
// interpolating inside the span that covers it: for an ordinary span the
// position selects a line directly, for a collapsed span it selects the
// whole fold. Cost is proportional to rows plus folds.
func toplineLookupSpanwise(v View, rows, total int) []int {
	table := make([]int, rows)
	last := v.LineCount()

	walker := NewSpanWalker(v, 1)
	span, _ := walker.Next()
	virtOffset := 0 // virtual rows before the current span

	for r := 1; r <= rows; r++ {
		p := rowTarget(r, rows, total)

		// Advance to the span covering virtual position p.
		exhausted := false
		for virtOffset+span.Rows() < p {
			virtOffset += span.Rows()
			var looped bool
			span, looped = walker.Next()
			if looped {
				exhausted = true
				break
			}
		}
		if exhausted {
			// Document consumed: the remaining rows map to the last line.
			for ; r <= rows; r++ {
				table[r-1] = last
			}
			break
		}

		if span.Folded {
			table[r-1] = span.Start
		} else {
			table[r-1] = span.Start + (p - virtOffset - 1)
		}
	}
	return table
}

// toplineLookupLinewise builds the table by a single forward scan over
// lines, keeping a running virtual count. For each row it advances while
// the achieved proportion keeps getting closer to the row's target and
// stops as soon as the distance starts increasing; the next row's search
// resumes from where this one stopped, which is what keeps the whole scan
// amortized linear in the line count rather than rows*lines.
//
// Distances are compared exactly over the common denominator
// (total-1)*(rows-1); ties advance, matching the spanwise half-up rounding.
func toplineLookupLinewise(v View, rows, total int) []int {
	table := make([]int, rows)
	last := v.LineCount()

	line := 1
	count := 1 // virtual position of line
	for r := 1; r <= rows; r++ {
		num := (r - 1) * (total - 1)
		dist := absInt((count-1)*(rows-1) - num)

		for {
			next := line + 1
			if end := v.FoldClosedEnd(line); end >= 0 {
				next = end + 1
			}
			if next > last {
				break
			}
			nextDist := absInt(count*(rows-1) - num)
			if nextDist > dist {
				break
			}
			line = next
			count++
			dist = nextDist
		}
		table[r-1] = line
	}
	return table
}

// normalizeTable snaps entries to their enclosing fold start and clamps
// them into the document.
func normalizeTable(v View, table []int) {
	last := v.LineCount()
	for i, line := range table {
		if line < 1 {
			line = 1
		}
		if line > last {
			line = last
		}
		if start := v.FoldClosed(line); start >= 0 {
			line = start
		}
		table[i] = line
	}
}

// SearchTable returns the 0-indexed row whose table entry maps to topline:
// the last row whose entry is <= topline, preferring the earliest row among
// equal entries. Returns 0 for toplines before the first entry.
func SearchTable(table []int, topline int) int {
	lo, hi := 0, len(table)
	for lo < hi {
		mid := (lo + hi) / 2
		if table[mid] < topline {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	// lo is the first row with entry >= topline; step back past rows that
	// overshoot the probe.
	if lo == len(table) || table[lo] > topline {
		lo--
	}
	if lo < 0 {
		lo = 0
	}
	return lo
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
