// Package pager implements the Bubble Tea host for the position indicator:
// a fold-aware file pager with an indicator column on the right edge,
// marker overlays, and mouse-driven thumb dragging.
package pager

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/ofseed/nvim-scrollview/internal/config"
	"github.com/ofseed/nvim-scrollview/internal/doc"
	"github.com/ofseed/nvim-scrollview/internal/keys"
	"github.com/ofseed/nvim-scrollview/internal/log"
	"github.com/ofseed/nvim-scrollview/internal/providers"
	"github.com/ofseed/nvim-scrollview/internal/pubsub"
	"github.com/ofseed/nvim-scrollview/internal/scrollview"
)

// ReloadEvent is published when the opened file changes on disk. The
// payload is the file path.
type ReloadEvent = pubsub.Event[string]

// RefreshEvent is delivered when a debounced refresh request comes due;
// receiving one runs the engine cycle.
type RefreshEvent = pubsub.Event[struct{}]

// Options configures a pager model.
type Options struct {
	Config   config.Config
	Document *doc.Document
	Store    providers.BookmarkStore
	// Reload carries on-disk change notifications; nil disables live reload.
	Reload *pubsub.Broker[string]
}

// Model is the pager's Bubble Tea model.
type Model struct {
	cfg  config.Config
	keys keys.KeyMap
	help help.Model

	engine *scrollview.Engine
	drag   *scrollview.DragMachine

	document   *doc.Document
	folds      *doc.FoldSet
	candidates []doc.Fold
	topline    int
	cursor     int

	width  int
	height int

	search    *providers.SearchProvider
	diff      *providers.DiffProvider
	cursorPvd *providers.CursorProvider
	bookmarks *providers.BookmarksProvider
	matches   []int

	searching   bool
	searchInput textinput.Model

	update scrollview.ViewUpdate
	hasGeo bool

	refresher       *scrollview.Refresher
	refreshListener *pubsub.ContinuousListener[struct{}]

	listener *pubsub.ContinuousListener[string]
	status   string
	statusIsErr bool
}

// New builds a pager over an opened document.
func New(ctx context.Context, opts Options) (Model, error) {
	engineCfg, err := opts.Config.EngineConfig()
	if err != nil {
		return Model{}, err
	}
	engine := scrollview.New(engineCfg)

	search, err := providers.NewSearchProvider(engine.Registry())
	if err != nil {
		return Model{}, err
	}
	diff, err := providers.NewDiffProvider(engine.Registry(), opts.Document)
	if err != nil {
		return Model{}, err
	}
	cursorPvd, err := providers.NewCursorProvider(engine.Registry())
	if err != nil {
		return Model{}, err
	}
	bookmarks, err := providers.NewBookmarksProvider(engine.Registry(), opts.Store, opts.Document.Path())
	if err != nil {
		return Model{}, err
	}

	input := textinput.New()
	input.Prompt = "/"
	input.CharLimit = 256

	m := Model{
		cfg:         opts.Config,
		keys:        keys.DefaultKeyMap(),
		help:        help.New(),
		engine:      engine,
		drag:        scrollview.NewDragMachine(engine),
		document:    opts.Document,
		folds:       doc.NewFoldSet(),
		topline:     1,
		cursor:      1,
		search:      search,
		diff:        diff,
		cursorPvd:   cursorPvd,
		bookmarks:   bookmarks,
		searchInput: input,
	}
	m.detectFolds()

	// Indicator refreshes are two-phase: events request, the debounce
	// window coalesces, and the fire publishes back into the update loop.
	refreshBroker := pubsub.NewBroker[struct{}]()
	m.refresher = scrollview.NewRefresher(opts.Config.RefreshDebounce, func() {
		refreshBroker.Publish(pubsub.ChangedEvent, struct{}{})
	})
	m.refreshListener = pubsub.NewContinuousListener(ctx, refreshBroker)

	if opts.Reload != nil {
		m.listener = pubsub.NewContinuousListener(ctx, opts.Reload)
	}
	return m, nil
}

// detectFolds recomputes indent-based fold candidates, optionally closing
// them all per configuration.
func (m *Model) detectFolds() {
	m.candidates = doc.DetectIndent(m.document, m.cfg.Folds.MinLines)
	if m.cfg.Folds.CloseOnOpen {
		for _, f := range m.candidates {
			m.folds.Close(f.Start, f.End)
		}
	}
}

// view adapts the current pager state to the engine's View interface.
func (m Model) view() scrollview.View {
	return docView{
		doc:     m.document,
		folds:   m.folds,
		height:  m.viewHeight(),
		topline: m.topline,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.refreshListener.Listen()}
	if m.listener != nil {
		cmds = append(cmds, m.listener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampViewport()
		m.recompute()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case RefreshEvent:
		m.recompute()
		return m, m.refreshListener.Listen()

	case ReloadEvent:
		m.reload(msg.Payload)
		var cmd tea.Cmd
		if m.listener != nil {
			cmd = m.listener.Listen()
		}
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	m.statusIsErr = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.refresher.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.clampViewport()

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.HalfDown):
		m.moveCursor(m.viewHeight() / 2)
	case key.Matches(msg, m.keys.HalfUp):
		m.moveCursor(-(m.viewHeight() / 2))
	case key.Matches(msg, m.keys.Top):
		m.cursor = 1
		m.topline = 1
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = m.document.LineCount()
		m.snapCursor()
		m.ensureVisible()

	case key.Matches(msg, m.keys.ToggleFold):
		m.toggleFold()
	case key.Matches(msg, m.keys.OpenFolds):
		m.folds.OpenAll()
		m.ensureVisible()
	case key.Matches(msg, m.keys.CloseFolds):
		for _, f := range m.candidates {
			m.folds.Close(f.Start, f.End)
		}
		m.snapCursor()
		m.snapTopline()
		m.ensureVisible()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.keys.NextMatch):
		m.gotoMatch(1)
	case key.Matches(msg, m.keys.PrevMatch):
		m.gotoMatch(-1)
	case key.Matches(msg, m.keys.ClearMatch):
		_ = m.search.SetPattern("")
		m.matches = nil

	case key.Matches(msg, m.keys.Bookmark):
		m.toggleBookmark()

	default:
		return m, nil
	}

	m.refresher.Request()
	return m, nil
}

func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case msg.Type == tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		m.commitSearch(m.searchInput.Value())
		m.refresher.Request()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) commitSearch(pattern string) {
	if err := m.search.SetPattern(pattern); err != nil {
		m.status = fmt.Sprintf("bad pattern: %v", err)
		m.statusIsErr = true
		return
	}
	m.matches = m.search.MatchLines(m.document)
	if pattern == "" {
		return
	}
	if len(m.matches) == 0 {
		m.status = fmt.Sprintf("no matches for %s", pattern)
		return
	}
	m.gotoMatch(1)
}

// gotoMatch moves the cursor to the next (dir > 0) or previous match,
// wrapping around the document.
func (m *Model) gotoMatch(dir int) {
	if len(m.matches) == 0 {
		m.status = "no active search"
		return
	}
	target := -1
	if dir > 0 {
		for _, line := range m.matches {
			if line > m.cursor {
				target = line
				break
			}
		}
		if target < 0 {
			target = m.matches[0]
		}
	} else {
		for i := len(m.matches) - 1; i >= 0; i-- {
			if m.matches[i] < m.cursor {
				target = m.matches[i]
				break
			}
		}
		if target < 0 {
			target = m.matches[len(m.matches)-1]
		}
	}
	m.cursor = target
	m.snapCursor()
	m.ensureVisible()
}

func (m *Model) toggleFold() {
	if m.folds.Open(m.cursor) {
		m.ensureVisible()
		return
	}
	for _, f := range m.candidates {
		if f.Contains(m.cursor) {
			if m.folds.Close(f.Start, f.End) {
				m.cursor = f.Start
				m.snapTopline()
				m.ensureVisible()
			}
			return
		}
	}
	m.status = "no fold at cursor"
}

func (m *Model) toggleBookmark() {
	on, err := m.bookmarks.Toggle(m.cursor)
	if err != nil {
		log.ErrorErr(log.CatDB, "bookmark toggle failed", err, "line", m.cursor)
		m.status = "bookmark store unavailable"
		m.statusIsErr = true
		return
	}
	if on {
		m.status = fmt.Sprintf("bookmarked line %d", m.cursor)
	} else {
		m.status = fmt.Sprintf("removed bookmark on line %d", m.cursor)
	}
}

// reload re-reads the document from disk, preserving fold and cursor state
// where it still fits the new content.
func (m *Model) reload(path string) {
	reloaded, err := doc.Load(path)
	if err != nil {
		log.ErrorErr(log.CatWatcher, "reload failed", err, "path", path)
		m.status = "reload failed"
		m.statusIsErr = true
		return
	}
	log.Info(log.CatWatcher, "document reloaded", "path", path, "lines", reloaded.LineCount())
	m.document = reloaded

	// Drop folds that no longer fit, keep the rest.
	for _, f := range m.folds.Folds() {
		if f.End > reloaded.LineCount() {
			m.folds.Open(f.Start)
		}
	}
	m.candidates = doc.DetectIndent(m.document, m.cfg.Folds.MinLines)
	m.matches = m.search.MatchLines(m.document)
	m.clampViewport()
	m.status = "file reloaded"
	m.refresher.Request()
}

// moveCursor moves the cursor delta display rows, hopping closed folds.
func (m *Model) moveCursor(delta int) {
	step := 1
	if delta < 0 {
		step = -1
		delta = -delta
	}
	for i := 0; i < delta; i++ {
		next := m.advance(m.cursor, step)
		if next == m.cursor {
			break
		}
		m.cursor = next
	}
	m.snapCursor()
	m.ensureVisible()
}

// advance returns the line one display row away from line in direction
// step, staying inside the document.
func (m *Model) advance(line, step int) int {
	if step > 0 {
		if end := m.foldEnd(line); end >= 0 {
			line = end
		}
		if line >= m.document.LineCount() {
			return line
		}
		line++
	} else {
		if start := m.foldStart(line); start >= 0 {
			line = start
		}
		if line <= 1 {
			return line
		}
		line--
	}
	if start := m.foldStart(line); start >= 0 {
		return start
	}
	return line
}

func (m *Model) foldStart(line int) int {
	if f, ok := m.folds.ClosedAt(line); ok {
		return f.Start
	}
	return -1
}

func (m *Model) foldEnd(line int) int {
	if f, ok := m.folds.ClosedAt(line); ok {
		return f.End
	}
	return -1
}

// snapCursor keeps the cursor on a fold start rather than inside a fold.
func (m *Model) snapCursor() {
	if m.cursor < 1 {
		m.cursor = 1
	}
	if m.cursor > m.document.LineCount() {
		m.cursor = m.document.LineCount()
	}
	if start := m.foldStart(m.cursor); start >= 0 {
		m.cursor = start
	}
}

func (m *Model) snapTopline() {
	if m.topline < 1 {
		m.topline = 1
	}
	if m.topline > m.document.LineCount() {
		m.topline = m.document.LineCount()
	}
	if start := m.foldStart(m.topline); start >= 0 {
		m.topline = start
	}
}

// botline returns the last document line visible from the current topline.
func (m *Model) botline() int {
	line := m.topline
	for row := 1; row < m.viewHeight(); row++ {
		next := m.advance(line, 1)
		if next == line {
			break
		}
		line = next
	}
	if end := m.foldEnd(line); end >= 0 {
		return end
	}
	return line
}

// ensureVisible scrolls the viewport until the cursor is on screen.
func (m *Model) ensureVisible() {
	for m.cursor < m.topline {
		next := m.advance(m.topline, -1)
		if next == m.topline {
			break
		}
		m.topline = next
	}
	for m.cursor > m.botline() {
		next := m.advance(m.topline, 1)
		if next == m.topline {
			break
		}
		m.topline = next
	}
}

// clampViewport re-validates cursor and topline against the current
// document and window size.
func (m *Model) clampViewport() {
	m.snapCursor()
	m.snapTopline()
	m.ensureVisible()
}

// setTopline scrolls to a new topline and drags the cursor along so it
// stays visible.
func (m *Model) setTopline(line int) {
	m.topline = line
	m.snapTopline()
	if m.cursor < m.topline {
		m.cursor = m.topline
	}
	if bot := m.botline(); m.cursor > bot {
		m.cursor = bot
	}
	m.snapCursor()
}

// recompute runs one engine refresh cycle for the current state.
func (m *Model) recompute() {
	if m.width <= 0 || m.viewHeight() <= 0 {
		m.hasGeo = false
		return
	}
	updates, err := m.engine.RunCycle([]scrollview.View{m.view()}, m.markerEntries, m.width)
	if err != nil {
		log.ErrorErr(log.CatEngine, "refresh cycle failed", err)
		m.hasGeo = false
		return
	}
	if len(updates) == 0 {
		m.hasGeo = false
		return
	}
	m.update = updates[0]
	m.hasGeo = true
}

// markerEntries collects entries from every enabled provider.
func (m *Model) markerEntries(scrollview.View) []scrollview.MarkerEntry {
	var out []scrollview.MarkerEntry
	if m.cfg.Markers.Search {
		out = append(out, m.search.Entries(m.document)...)
	}
	if m.cfg.Markers.Diff {
		out = append(out, m.diff.Entries(m.document)...)
	}
	if m.cfg.Markers.Cursor {
		out = append(out, m.cursorPvd.Entries(m.cursor)...)
	}
	if m.cfg.Markers.Bookmarks {
		out = append(out, m.bookmarks.Entries()...)
	}
	return out
}

// docView adapts pager state to scrollview.View. The pager hosts a single
// view over a single buffer, so both identities are constant.
type docView struct {
	doc     *doc.Document
	folds   *doc.FoldSet
	height  int
	topline int
}

func (v docView) ID() int        { return 1 }
func (v docView) BaseID() int    { return 1 }
func (v docView) Height() int    { return v.height }
func (v docView) Topline() int   { return v.topline }
func (v docView) LineCount() int { return v.doc.LineCount() }

func (v docView) FoldClosed(line int) int {
	if f, ok := v.folds.ClosedAt(line); ok {
		return f.Start
	}
	return -1
}

func (v docView) FoldClosedEnd(line int) int {
	if f, ok := v.folds.ClosedAt(line); ok {
		return f.End
	}
	return -1
}

func (v docView) NextFoldStart(line int) int {
	if f, ok := v.folds.NextClosed(line); ok {
		return f.Start
	}
	return -1
}

func (v docView) ClosedFoldCount() int { return v.folds.Count() }

var _ scrollview.View = docView{}

// Zone IDs for mouse hit testing on the indicator column.
const zoneRowPrefix = "scrollview-row:"

func rowZoneID(row int) string {
	return fmt.Sprintf("%s%d", zoneRowPrefix, row)
}

// handleMouse routes mouse input: wheel scrolling, drag session events, and
// presses on the indicator column.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Wheel scrolling works everywhere, but never mid-drag.
	if m.drag.State() == scrollview.StateIdle {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollBy(-3)
			m.refresher.Request()
			return m, nil
		case tea.MouseButtonWheelDown:
			m.scrollBy(3)
			m.refresher.Request()
			return m, nil
		}
	}

	if m.drag.State() == scrollview.StateDragging {
		switch msg.Action {
		case tea.MouseActionMotion:
			m.applyActions(m.drag.Feed(m.view(), scrollview.PointerEvent{
				Kind: scrollview.PointerMotion,
				Row:  msg.Y + 1,
				Col:  msg.X + 1,
			}, scrollview.Hit{}))
		case tea.MouseActionRelease:
			m.applyActions(m.drag.Feed(m.view(), scrollview.PointerEvent{
				Kind: scrollview.PointerRelease,
				Row:  msg.Y + 1,
				Col:  msg.X + 1,
			}, scrollview.Hit{}))
			m.recompute()
		}
		return m, nil
	}

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		hit, row, onIndicator := m.hitTest(msg)
		if !onIndicator {
			return m, nil
		}
		if hit.Target == scrollview.TargetNone {
			// Track press: jump the thumb straight to the pressed row.
			table := m.engine.ToplineLookup(m.view(), m.viewHeight())
			if row >= 1 && row <= len(table) {
				m.setTopline(table[row-1])
				m.refresher.Request()
			}
			return m, nil
		}
		m.applyActions(m.drag.Feed(m.view(), scrollview.PointerEvent{
			Kind: scrollview.PointerPress,
			Row:  row,
			Col:  msg.X + 1,
		}, hit))
	}
	return m, nil
}

// hitTest resolves a mouse event against the indicator column zones.
func (m Model) hitTest(msg tea.MouseMsg) (scrollview.Hit, int, bool) {
	vh := m.viewHeight()
	for row := 1; row <= vh; row++ {
		z := zone.Get(rowZoneID(row))
		if z == nil || !z.InBounds(msg) {
			continue
		}
		for _, pm := range m.update.Markers {
			if pm.Row == row {
				return scrollview.Hit{Target: scrollview.TargetMarker, Line: pm.Line}, row, true
			}
		}
		if m.hasGeo && row >= m.update.Geometry.Row && row < m.update.Geometry.Row+m.update.Geometry.Height {
			return scrollview.Hit{Target: scrollview.TargetThumb}, row, true
		}
		return scrollview.Hit{Target: scrollview.TargetNone}, row, true
	}
	return scrollview.Hit{}, 0, false
}

// applyActions executes drag machine outputs against the pager state.
func (m *Model) applyActions(actions []scrollview.Action) {
	for _, a := range actions {
		switch a.Kind {
		case scrollview.ActionScroll:
			m.setTopline(a.Line)
		case scrollview.ActionJump:
			m.setTopline(a.Line)
			m.cursor = a.Line
			m.snapCursor()
		case scrollview.ActionRedraw:
			m.recompute()
		case scrollview.ActionPassThrough:
			// A replayed click on the indicator has no default behavior here.
		}
	}
}

// scrollBy moves the viewport delta display rows.
func (m *Model) scrollBy(delta int) {
	step := 1
	if delta < 0 {
		step = -1
		delta = -delta
	}
	for i := 0; i < delta; i++ {
		next := m.advance(m.topline, step)
		if next == m.topline {
			break
		}
		m.topline = next
	}
	if m.cursor < m.topline {
		m.cursor = m.topline
	}
	if bot := m.botline(); m.cursor > bot {
		m.cursor = bot
	}
	m.snapCursor()
}
