// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#CCCCCC"} // Document text
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Track, help text, footers
	TextAccentColor  = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#BBBBBB"} // Thumb, line numbers

	// Fold summary lines
	FoldColor = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // blue

	// Marker colors (Catppuccin Mocha accents)
	SearchMarkerColor   = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"} // yellow
	DiffMarkerColor     = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#A6E3A1"} // green
	CursorMarkerColor   = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#F38BA8"} // red
	BookmarkMarkerColor = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"} // mauve

	// Status bar
	StatusBarColor   = lipgloss.AdaptiveColor{Light: "#EFF1F5", Dark: "#1E1E2E"}
	StatusFgColor    = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#CDD6F4"}
	StatusErrorColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Indicator column styles
	ThumbStyle = lipgloss.NewStyle().Foreground(TextAccentColor)
	TrackStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Document rendering
	TextStyle        = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	FoldStyle        = lipgloss.NewStyle().Foreground(FoldColor)
	SearchMatchStyle = lipgloss.NewStyle().Foreground(SearchMarkerColor).Reverse(true)
	CursorLineStyle  = lipgloss.NewStyle().Bold(true)

	// Status bar styles
	StatusBarStyle   = lipgloss.NewStyle().Foreground(StatusFgColor).Background(StatusBarColor)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Background(StatusBarColor)
)

// markerStyles maps provider highlight names to their styles.
var markerStyles = map[string]lipgloss.Style{
	"ScrollViewSearch":   lipgloss.NewStyle().Foreground(SearchMarkerColor),
	"ScrollViewDiff":     lipgloss.NewStyle().Foreground(DiffMarkerColor),
	"ScrollViewCursor":   lipgloss.NewStyle().Foreground(CursorMarkerColor),
	"ScrollViewBookmark": lipgloss.NewStyle().Foreground(BookmarkMarkerColor),
}

// MarkerStyle resolves a provider highlight name to a style. Unknown names
// fall back to the thumb style so markers never disappear silently.
func MarkerStyle(highlight string) lipgloss.Style {
	if s, ok := markerStyles[highlight]; ok {
		return s
	}
	return ThumbStyle
}
