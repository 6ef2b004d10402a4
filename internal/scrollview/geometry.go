package scrollview

// Geometry describes the indicator thumb for one view: 1-indexed top row of
// the thumb within the track, its height in rows, and the screen column the
// host asked it to occupy.
type Geometry struct {
	Row    int
	Height int
	Col    int
}

// Geometry computes the thumb geometry for a view. The second return is
// false when the view is degenerate (zero height or empty document), in
// which case the indicator is suppressed for this cycle rather than drawn
// wrong.
func (e *Engine) Geometry(v View, col int) (Geometry, bool) {
	vh := v.Height()
	lineCount := v.LineCount()
	if vh <= 0 || lineCount <= 0 {
		return Geometry{}, false
	}

	effective := e.effectiveLineCount(v)
	if e.cfg.IncludeEnd {
		// Inflate so the thumb can occupy the bottom region even when the
		// document barely fills the view.
		effective += vh - 1
	}
	if effective < 1 {
		effective = 1
	}

	height := ceilDiv(vh*vh, effective)
	if height < 1 {
		height = 1
	}
	if height > vh {
		height = vh
	}

	targetRows := vh
	if e.cfg.IncludeEnd {
		// Shrink the table so the thumb's top row can still reach a row
		// that maps to the true last line.
		targetRows = vh - (height - 1)
	}

	table := e.ToplineLookup(v, targetRows)
	if len(table) == 0 {
		return Geometry{}, false
	}
	row := SearchTable(table, v.Topline()) + 1

	if !e.cfg.IncludeEnd && e.botline(v) >= lineCount {
		// Bottom of the document is on screen: pin the thumb against the
		// bottom of the track.
		if bottom := vh - height + 1; row < bottom {
			row = bottom
		}
	}
	if maxRow := vh - height + 1; row > maxRow {
		row = maxRow
	}
	if row < 1 {
		row = 1
	}

	return Geometry{Row: row, Height: height, Col: col}, true
}

// effectiveLineCount returns the denominator for proportional sizing:
// the virtual line count by default, or the raw line count in simple mode
// and for documents past the size threshold.
func (e *Engine) effectiveLineCount(v View) int {
	lineCount := v.LineCount()
	if e.cfg.Mode == ModeSimple {
		return lineCount
	}
	if e.cfg.SimpleThreshold > 0 && lineCount > e.cfg.SimpleThreshold {
		return lineCount
	}
	return e.VirtualLineCount(v, 1, lineCount)
}

// botline returns the bottom visible document line of the view, accounting
// for closed folds compressing rows.
func (e *Engine) botline(v View) int {
	last := v.LineCount()
	line := v.Topline()
	for row := 1; row < v.Height(); row++ {
		if end := v.FoldClosedEnd(line); end >= 0 {
			line = end + 1
		} else {
			line++
		}
		if line >= last {
			return last
		}
	}
	if end := v.FoldClosedEnd(line); end >= 0 {
		return end
	}
	return line
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}
