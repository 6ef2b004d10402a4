package scrollview

import (
	"fmt"

	"github.com/ofseed/nvim-scrollview/internal/log"
)

// Engine binds the mapping computations to a configuration, a memoization
// scope, and the marker provider registry. One engine serves any number of
// views; all computation is synchronous and single-threaded per cycle.
type Engine struct {
	cfg      Config
	memo     *Memo
	registry *Registry
}

// New creates an engine with the given configuration.
func New(cfg Config) *Engine {
	return &Engine{
		cfg:      cfg,
		memo:     NewMemo(),
		registry: NewRegistry(),
	}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetConfig replaces the engine's configuration. Takes effect on the next
// computation; memoized results from the old configuration are dropped.
func (e *Engine) SetConfig(cfg Config) {
	e.cfg = cfg
	e.memo.Reset()
}

// Registry exposes the marker provider registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Memo exposes the memoization scope for hosts that bracket their own
// units of work.
func (e *Engine) Memo() *Memo {
	return e.memo
}

// ViewUpdate is the per-view output of one refresh cycle.
type ViewUpdate struct {
	ViewID   int
	Geometry Geometry
	Markers  []PlacedMarker
}

// RunCycle recomputes geometry and marker placement for every view inside
// one memoization bracket. Views with degenerate geometry are skipped. A
// panic inside computation aborts only this cycle's output; the memo scope
// is reset on the way out so no stale state leaks into the next cycle.
func (e *Engine) RunCycle(views []View, entries func(View) []MarkerEntry, col int) (updates []ViewUpdate, err error) {
	defer func() {
		if r := recover(); r != nil {
			updates = nil
			err = fmt.Errorf("refresh cycle aborted: %v", r)
			log.Error(log.CatEngine, "refresh cycle panic", "panic", r)
			e.memo.Reset()
		}
	}()

	e.memo.Begin()
	defer e.memo.End()

	for _, v := range views {
		geo, ok := e.Geometry(v, col)
		if !ok {
			log.Debug(log.CatEngine, "view skipped", "view", v.ID())
			continue
		}
		var markers []PlacedMarker
		if entries != nil {
			markers = e.PlaceMarkers(v, entries(v))
		}
		updates = append(updates, ViewUpdate{
			ViewID:   v.ID(),
			Geometry: geo,
			Markers:  markers,
		})
	}
	return updates, nil
}
