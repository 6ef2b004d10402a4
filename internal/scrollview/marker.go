package scrollview

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/mattn/go-runewidth"
)

// groupNamePattern is the shape of a valid provider group identifier.
var groupNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ProviderSpec describes one marker producer: a group name, the glyph it
// draws on the track, a highlight name the renderer resolves to a style,
// and a priority used to settle row collisions (higher wins).
type ProviderSpec struct {
	Group     string
	Symbol    string
	Highlight string
	Priority  int
}

// SymbolWidth returns the terminal cell width of the provider's glyph.
func (s ProviderSpec) SymbolWidth() int {
	return runewidth.StringWidth(s.Symbol)
}

// Registry is the append-only store of marker provider specs. A provider
// registers once, receives a stable integer ID, and is never removed; the
// ID doubles as an index into the spec sequence.
type Registry struct {
	specs []ProviderSpec
	ids   map[string]int
}

// NewRegistry returns an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]int)}
}

// Register adds a provider spec and returns its stable ID. A malformed
// group name or a duplicate group is a configuration error, reported
// immediately and never retried.
func (r *Registry) Register(spec ProviderSpec) (int, error) {
	if !groupNamePattern.MatchString(spec.Group) {
		return 0, fmt.Errorf("invalid marker group name %q", spec.Group)
	}
	if _, exists := r.ids[spec.Group]; exists {
		return 0, fmt.Errorf("marker group %q already registered", spec.Group)
	}
	if spec.Symbol == "" {
		spec.Symbol = "*"
	}
	id := len(r.specs)
	r.specs = append(r.specs, spec)
	r.ids[spec.Group] = id
	return id, nil
}

// Spec returns the spec for a provider ID.
func (r *Registry) Spec(id int) (ProviderSpec, bool) {
	if id < 0 || id >= len(r.specs) {
		return ProviderSpec{}, false
	}
	return r.specs[id], true
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	return len(r.specs)
}

// MarkerEntry is one line a provider wants marked.
type MarkerEntry struct {
	ProviderID int
	Line       int
}

// PlacedMarker is a marker resolved onto a track row. Line is the document
// line the surviving entry points at, so a press on the glyph can jump
// straight to it without inverting any table.
type PlacedMarker struct {
	Row  int
	Line int
	Spec ProviderSpec
}

// PlaceMarkers maps provider entries onto track rows through the same
// lookup table the thumb uses, then resolves collisions: markers sharing a
// row are ordered by descending priority and at most MaxMarkersPerRow
// survive per row. Entries outside the document are dropped. The result is
// ordered by row, then by descending priority within a row.
func (e *Engine) PlaceMarkers(v View, entries []MarkerEntry) []PlacedMarker {
	if len(entries) == 0 {
		return nil
	}
	vh := v.Height()
	if vh <= 0 {
		return nil
	}

	targetRows := vh
	if e.cfg.IncludeEnd {
		if geo, ok := e.Geometry(v, 0); ok {
			targetRows = vh - (geo.Height - 1)
		}
	}
	table := e.ToplineLookup(v, targetRows)
	if len(table) == 0 {
		return nil
	}

	byRow := make(map[int][]PlacedMarker)
	for _, entry := range entries {
		if entry.Line < 1 || entry.Line > v.LineCount() {
			continue
		}
		spec, ok := e.registry.Spec(entry.ProviderID)
		if !ok {
			continue
		}
		row := SearchTable(table, entry.Line) + 1
		byRow[row] = append(byRow[row], PlacedMarker{Row: row, Line: entry.Line, Spec: spec})
	}

	limit := e.cfg.MaxMarkersPerRow
	if limit < 1 {
		limit = 1
	}

	rows := make([]int, 0, len(byRow))
	for row := range byRow {
		rows = append(rows, row)
	}
	sort.Ints(rows)

	var placed []PlacedMarker
	for _, row := range rows {
		markers := byRow[row]
		sort.SliceStable(markers, func(i, j int) bool {
			return markers[i].Spec.Priority > markers[j].Spec.Priority
		})
		markers = dedupeGroups(markers)
		if len(markers) > limit {
			markers = markers[:limit]
		}
		placed = append(placed, markers...)
	}
	return placed
}

// dedupeGroups keeps one marker per provider group on a row; several
// entries from the same provider collapsing onto one row draw one glyph.
func dedupeGroups(markers []PlacedMarker) []PlacedMarker {
	seen := make(map[string]struct{}, len(markers))
	out := markers[:0]
	for _, m := range markers {
		if _, dup := seen[m.Spec.Group]; dup {
			continue
		}
		seen[m.Spec.Group] = struct{}{}
		out = append(out, m)
	}
	return out
}
