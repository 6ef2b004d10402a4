package pager

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/ofseed/nvim-scrollview/internal/ui/styles"
)

// viewHeight returns the number of document rows on screen: the window
// minus the status bar and the help line.
func (m Model) viewHeight() int {
	vh := m.height - 1 - m.helpHeight()
	if vh < 1 {
		vh = 1
	}
	return vh
}

func (m Model) helpHeight() int {
	if m.height <= 0 {
		return 0
	}
	return lipgloss.Height(m.help.View(m.keys))
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	vh := m.viewHeight()
	textWidth := m.width - 1
	if textWidth < 0 {
		textWidth = 0
	}

	rows := make([]string, 0, vh+2)
	line := m.topline
	for row := 1; row <= vh; row++ {
		var content string
		if line > m.document.LineCount() {
			content = styles.TrackStyle.Render("~")
		} else if f, ok := m.folds.ClosedAt(line); ok {
			label := fmt.Sprintf("+-- %d lines: %s", f.Lines(), strings.TrimSpace(m.document.Line(f.Start)))
			content = styles.FoldStyle.Render(label)
			line = f.End + 1
		} else {
			content = m.renderLine(line)
			line++
		}
		rows = append(rows, padTo(content, textWidth)+m.indicatorCell(row))
	}
	rows = append(rows, m.statusLine())
	rows = append(rows, m.help.View(m.keys))

	return zone.Scan(strings.Join(rows, "\n"))
}

func (m Model) renderLine(line int) string {
	text := strings.ReplaceAll(m.document.Line(line), "\t", "    ")
	style := styles.TextStyle
	if m.isMatch(line) {
		style = styles.SearchMatchStyle
	}
	if line == m.cursor {
		style = style.Inherit(styles.CursorLineStyle)
	}
	return style.Render(text)
}

func (m Model) isMatch(line int) bool {
	i := sort.SearchInts(m.matches, line)
	return i < len(m.matches) && m.matches[i] == line
}

// indicatorCell renders one row of the indicator column: the highest
// priority marker, else the thumb, else the track.
func (m Model) indicatorCell(row int) string {
	cell := " "
	if track := m.cfg.Indicator.TrackCharacter; track != "" {
		cell = styles.TrackStyle.Render(track)
	}
	if m.hasGeo {
		geo := m.update.Geometry
		if row >= geo.Row && row < geo.Row+geo.Height {
			cell = styles.ThumbStyle.Render(m.cfg.Indicator.Character)
		}
		// Markers are sorted by row then priority; the first hit wins.
		for _, pm := range m.update.Markers {
			if pm.Row == row {
				cell = styles.MarkerStyle(pm.Spec.Highlight).Render(pm.Spec.Symbol)
				break
			}
		}
	}
	return zone.Mark(rowZoneID(row), cell)
}

func (m Model) statusLine() string {
	if m.searching {
		return padTo(m.searchInput.View(), m.width)
	}

	path := m.document.Path()
	if path == "" {
		path = "[no name]"
	}
	line := fmt.Sprintf(" %s  %d/%d", path, m.cursor, m.document.LineCount())
	if n := m.folds.Count(); n > 0 {
		line += fmt.Sprintf("  [%d folds]", n)
	}
	if pat := m.search.Pattern(); pat != "" {
		line += fmt.Sprintf("  /%s (%d)", pat, len(m.matches))
	}
	if m.status != "" {
		line += "  " + m.status
	}

	line = padTo(line, m.width)
	if m.statusIsErr {
		return styles.StatusErrorStyle.Render(line)
	}
	return styles.StatusBarStyle.Render(line)
}

// padTo truncates or pads s to exactly width terminal cells.
func padTo(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-w)
}
