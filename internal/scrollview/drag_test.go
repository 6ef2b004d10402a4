package scrollview

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDrag_IdleEventsPassThrough(t *testing.T) {
	e := New(DefaultConfig())
	m := NewDragMachine(e)
	v := newTestView(100, 10)

	motion := PointerEvent{Kind: PointerMotion, Row: 4}
	actions := m.Feed(v, motion, Hit{})
	require.Equal(t, []Action{{Kind: ActionPassThrough, Event: motion}}, actions)

	press := PointerEvent{Kind: PointerPress, Row: 4}
	actions = m.Feed(v, press, Hit{Target: TargetNone})
	require.Equal(t, []Action{{Kind: ActionPassThrough, Event: press}}, actions)
	require.Equal(t, StateIdle, m.State())
}

func TestDrag_MarkerPressJumps(t *testing.T) {
	e := New(DefaultConfig())
	m := NewDragMachine(e)
	v := newTestView(100, 10)

	actions := m.Feed(v, PointerEvent{Kind: PointerPress, Row: 5}, Hit{Target: TargetMarker, Line: 42})
	require.Equal(t, []Action{
		{Kind: ActionJump, Line: 42},
		{Kind: ActionRedraw},
	}, actions)
	require.Equal(t, StateIdle, m.State(), "a marker jump is not a drag")
}

func TestDrag_ThumbPressOnDegenerateViewPassesThrough(t *testing.T) {
	e := New(DefaultConfig())
	m := NewDragMachine(e)
	v := newTestView(0, 10)

	press := PointerEvent{Kind: PointerPress, Row: 1}
	actions := m.Feed(v, press, Hit{Target: TargetThumb})
	require.Equal(t, []Action{{Kind: ActionPassThrough, Event: press}}, actions,
		"a press with no thumb to grab keeps its click semantics")
	require.Equal(t, StateIdle, m.State())
	require.False(t, e.Memo().Enabled())
}

func TestDrag_ThumbDragScrolls(t *testing.T) {
	e := New(DefaultConfig())
	m := NewDragMachine(e)

	// Thumb sits at row 5 for topline 45; press lands on it exactly.
	v := newTestView(100, 10)
	v.topline = 45

	actions := m.Feed(v, PointerEvent{Kind: PointerPress, Row: 5}, Hit{Target: TargetThumb})
	require.Empty(t, actions)
	require.Equal(t, StateDragging, m.State())
	require.True(t, e.Memo().Enabled(), "a drag session opens a memo bracket")

	actions = m.Feed(v, PointerEvent{Kind: PointerMotion, Row: 7}, Hit{})
	require.Equal(t, []Action{
		{Kind: ActionScroll, Line: 67},
		{Kind: ActionRedraw},
	}, actions)

	// Same row again: nothing to do.
	require.Empty(t, m.Feed(v, PointerEvent{Kind: PointerMotion, Row: 7}, Hit{}))

	actions = m.Feed(v, PointerEvent{Kind: PointerRelease, Row: 7}, Hit{})
	require.Empty(t, actions, "a moved drag releases silently")
	require.Equal(t, StateIdle, m.State())
	require.False(t, e.Memo().Enabled(), "release closes the memo bracket")
}

func TestDrag_GrabOffsetPreserved(t *testing.T) {
	e := New(DefaultConfig())
	m := NewDragMachine(e)

	// 15 lines in 10 rows: thumb is 7 rows tall starting at row 1.
	// Grabbing its 4th row keeps that grip as the thumb moves.
	v := newTestView(15, 10)

	m.Feed(v, PointerEvent{Kind: PointerPress, Row: 4}, Hit{Target: TargetThumb})
	require.Equal(t, StateDragging, m.State())

	actions := m.Feed(v, PointerEvent{Kind: PointerMotion, Row: 5}, Hit{})
	require.Equal(t, []Action{
		{Kind: ActionScroll, Line: 3},
		{Kind: ActionRedraw},
	}, actions)

	m.Feed(v, PointerEvent{Kind: PointerRelease, Row: 5}, Hit{})
}

func TestDrag_MotionClampsToTrack(t *testing.T) {
	e := New(DefaultConfig())
	m := NewDragMachine(e)
	v := newTestView(100, 10)

	m.Feed(v, PointerEvent{Kind: PointerPress, Row: 1}, Hit{Target: TargetThumb})

	actions := m.Feed(v, PointerEvent{Kind: PointerMotion, Row: 500}, Hit{})
	require.Equal(t, ActionScroll, actions[0].Kind)
	require.Equal(t, 100, actions[0].Line, "past the bottom clamps to the last row")

	actions = m.Feed(v, PointerEvent{Kind: PointerMotion, Row: -20}, Hit{})
	require.Equal(t, 1, actions[0].Line, "past the top clamps to the first row")

	m.Feed(v, PointerEvent{Kind: PointerRelease, Row: 1}, Hit{})
}

func TestDrag_ZeroMovementReplaysClick(t *testing.T) {
	e := New(DefaultConfig())
	m := NewDragMachine(e)
	v := newTestView(100, 10)

	press := PointerEvent{Kind: PointerPress, Row: 1, Col: 80}
	m.Feed(v, press, Hit{Target: TargetThumb})

	actions := m.Feed(v, PointerEvent{Kind: PointerRelease, Row: 1}, Hit{})
	require.Equal(t, []Action{{Kind: ActionPassThrough, Event: press}}, actions,
		"press and release without motion is an ordinary click")
	require.Equal(t, StateIdle, m.State())
	require.False(t, e.Memo().Enabled())
}

func TestDrag_Cancel(t *testing.T) {
	e := New(DefaultConfig())
	m := NewDragMachine(e)
	v := newTestView(100, 10)

	m.Cancel()
	require.Equal(t, StateIdle, m.State(), "cancel while idle is a no-op")

	m.Feed(v, PointerEvent{Kind: PointerPress, Row: 1}, Hit{Target: TargetThumb})
	m.Cancel()
	require.Equal(t, StateIdle, m.State())
	require.False(t, e.Memo().Enabled())
}

func TestDrag_RunDrainsUntilRelease(t *testing.T) {
	e := New(DefaultConfig())
	m := NewDragMachine(e)
	v := newTestView(100, 10)
	v.topline = 45

	m.Feed(v, PointerEvent{Kind: PointerPress, Row: 5}, Hit{Target: TargetThumb})

	events := make(chan PointerEvent, 3)
	events <- PointerEvent{Kind: PointerMotion, Row: 7}
	events <- PointerEvent{Kind: PointerMotion, Row: 9}
	events <- PointerEvent{Kind: PointerRelease, Row: 9}

	var applied []Action
	m.Run(context.Background(), events, func(a Action) {
		applied = append(applied, a)
	})

	require.Equal(t, StateIdle, m.State())
	require.Equal(t, []Action{
		{Kind: ActionScroll, Line: 67},
		{Kind: ActionRedraw},
		{Kind: ActionScroll, Line: 89},
		{Kind: ActionRedraw},
	}, applied)
	require.False(t, e.Memo().Enabled())
}

func TestDrag_RunStopsOnContextCancel(t *testing.T) {
	e := New(DefaultConfig())
	m := NewDragMachine(e)
	v := newTestView(100, 10)

	m.Feed(v, PointerEvent{Kind: PointerPress, Row: 1}, Hit{Target: TargetThumb})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		m.Run(ctx, make(chan PointerEvent), func(Action) {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
	require.Equal(t, StateIdle, m.State())
	require.False(t, e.Memo().Enabled())
}

func TestDrag_RunStopsOnClosedChannel(t *testing.T) {
	e := New(DefaultConfig())
	m := NewDragMachine(e)
	v := newTestView(100, 10)

	m.Feed(v, PointerEvent{Kind: PointerPress, Row: 1}, Hit{Target: TargetThumb})

	events := make(chan PointerEvent)
	close(events)
	m.Run(context.Background(), events, func(Action) {})

	require.Equal(t, StateIdle, m.State())
	require.False(t, e.Memo().Enabled())
}
