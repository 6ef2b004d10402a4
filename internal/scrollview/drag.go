package scrollview

import (
	"context"

	"github.com/ofseed/nvim-scrollview/internal/log"
)

// PointerKind classifies raw pointer events.
type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerMotion
	PointerRelease
)

// PointerEvent is one raw input event in track coordinates: Row is the
// 1-indexed track row, Col the screen column.
type PointerEvent struct {
	Kind PointerKind
	Row  int
	Col  int
}

// Target is what a press landed on.
type Target int

const (
	TargetNone Target = iota
	TargetThumb
	TargetMarker
)

// Hit is the host's hit-test verdict for a press: the target kind and, for
// markers, the document line the marker points at.
type Hit struct {
	Target Target
	Line   int
}

// ActionKind enumerates the outputs of the drag machine.
type ActionKind int

const (
	// ActionScroll repositions the view's topline to Action.Line.
	ActionScroll ActionKind = iota
	// ActionJump moves the view to a marker's line.
	ActionJump
	// ActionRedraw asks the host to re-render the indicator.
	ActionRedraw
	// ActionPassThrough replays Action.Event to the host as an ordinary,
	// non-indicator input event.
	ActionPassThrough
)

// Action is one instruction emitted by the drag machine for the host to
// apply.
type Action struct {
	Kind  ActionKind
	Line  int
	Event PointerEvent
}

// DragState is the machine's current state.
type DragState int

const (
	StateIdle DragState = iota
	StateDragging
)

// DragSession is the transient state of one thumb drag.
type DragSession struct {
	viewID     int
	grabOffset int // pointer row minus thumb row at press time
	lastRow    int // last applied thumb row, to suppress redundant updates
	moved      bool
	press      PointerEvent
}

// DragMachine consumes pointer events and, while a thumb drag is live,
// inverts track rows back to document toplines through the same lookup
// table the thumb was drawn from. A drag session opens a memoization
// bracket so every motion step reuses the cycle's tables.
type DragMachine struct {
	engine  *Engine
	state   DragState
	session DragSession
	view    View
	table   []int
}

// NewDragMachine returns an idle machine bound to an engine.
func NewDragMachine(e *Engine) *DragMachine {
	return &DragMachine{engine: e}
}

// State returns the current machine state.
func (m *DragMachine) State() DragState {
	return m.state
}

// Feed advances the machine with one pointer event. hit is consulted only
// for a press arriving in the idle state; motion and release while idle
// pass through to the host untouched.
func (m *DragMachine) Feed(v View, ev PointerEvent, hit Hit) []Action {
	switch m.state {
	case StateIdle:
		return m.feedIdle(v, ev, hit)
	case StateDragging:
		return m.feedDragging(ev)
	}
	return nil
}

func (m *DragMachine) feedIdle(v View, ev PointerEvent, hit Hit) []Action {
	if ev.Kind != PointerPress {
		return []Action{{Kind: ActionPassThrough, Event: ev}}
	}

	switch hit.Target {
	case TargetMarker:
		log.Debug(log.CatDrag, "marker jump", "line", hit.Line)
		return []Action{
			{Kind: ActionJump, Line: hit.Line},
			{Kind: ActionRedraw},
		}

	case TargetThumb:
		geo, ok := m.engine.Geometry(v, 0)
		if !ok {
			// No thumb to grab on a degenerate view; the press keeps its
			// ordinary click semantics.
			return []Action{{Kind: ActionPassThrough, Event: ev}}
		}
		m.engine.memo.Begin()
		m.view = v
		m.table = m.engine.ToplineLookup(v, m.targetRows(v, geo))
		m.session = DragSession{
			viewID:     v.ID(),
			grabOffset: ev.Row - geo.Row,
			lastRow:    geo.Row,
			press:      ev,
		}
		m.state = StateDragging
		log.Debug(log.CatDrag, "drag start", "view", v.ID(), "row", geo.Row, "offset", m.session.grabOffset)
		return nil

	default:
		return []Action{{Kind: ActionPassThrough, Event: ev}}
	}
}

func (m *DragMachine) feedDragging(ev PointerEvent) []Action {
	switch ev.Kind {
	case PointerMotion:
		row := ev.Row - m.session.grabOffset
		if row < 1 {
			row = 1
		}
		if row > len(m.table) {
			row = len(m.table)
		}
		if row == m.session.lastRow {
			// Unchanged row: no recompute, no redraw.
			return nil
		}
		m.session.lastRow = row
		m.session.moved = true
		return []Action{
			{Kind: ActionScroll, Line: m.table[row-1]},
			{Kind: ActionRedraw},
		}

	case PointerRelease:
		moved := m.session.moved
		press := m.session.press
		m.reset()
		log.Debug(log.CatDrag, "drag end", "moved", moved)
		if !moved {
			// A press-and-release with zero movement is an ordinary click;
			// replay it so default click semantics survive.
			return []Action{{Kind: ActionPassThrough, Event: press}}
		}
		return nil
	}
	// A second press mid-drag cannot happen with a single pointer; ignore.
	return nil
}

// Run drives a live drag session by synchronously pulling events from the
// channel until the release arrives, the channel closes, or ctx is
// cancelled. This is the engine's only blocking wait; each action is handed
// to apply as it is produced. No-op unless the machine is dragging.
func (m *DragMachine) Run(ctx context.Context, events <-chan PointerEvent, apply func(Action)) {
	for m.state == StateDragging {
		select {
		case <-ctx.Done():
			m.Cancel()
			return
		case ev, ok := <-events:
			if !ok {
				m.Cancel()
				return
			}
			for _, action := range m.Feed(m.view, ev, Hit{}) {
				apply(action)
			}
		}
	}
}

// Cancel aborts a live drag without replaying any click.
func (m *DragMachine) Cancel() {
	if m.state != StateDragging {
		return
	}
	m.reset()
}

// reset closes the session's memo bracket and returns to idle.
func (m *DragMachine) reset() {
	m.engine.memo.End()
	m.state = StateIdle
	m.session = DragSession{}
	m.view = nil
	m.table = nil
}

// targetRows mirrors the geometry calculator's table sizing so drag
// inversion and thumb placement read the same table.
func (m *DragMachine) targetRows(v View, geo Geometry) int {
	if m.engine.cfg.IncludeEnd {
		return v.Height() - (geo.Height - 1)
	}
	return v.Height()
}
