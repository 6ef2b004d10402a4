package scrollview

import (
	"strconv"
	"strings"
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ofseed/nvim-scrollview/internal/log"
)

// Memo is the refresh-cycle memoization scope. Both the thumb geometry and
// every marker provider consult the same counts and lookup tables during a
// refresh, so recomputation is avoided by caching results for the duration
// of an explicitly bracketed unit of work.
//
// Callers bracket a refresh pass or a drag session with Begin/End. Brackets
// nest: an inner End inside an outer bracket keeps entries alive, and only
// the outermost End flushes the scope. Outside any bracket nothing is
// cached or served.
type Memo struct {
	mu    sync.Mutex
	depth int
	cache *gocache.Cache
}

// NewMemo returns an inactive memoization scope.
func NewMemo() *Memo {
	// Entries never expire on their own; lifetime is the bracket, not a TTL.
	return &Memo{cache: gocache.New(gocache.NoExpiration, 0)}
}

// Begin enters a memoization bracket.
func (m *Memo) Begin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.depth++
}

// End leaves the current bracket, flushing all entries when the outermost
// bracket exits. End without a matching Begin is a no-op.
func (m *Memo) End() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.depth == 0 {
		return
	}
	m.depth--
	if m.depth == 0 {
		m.cache.Flush()
	}
}

// Enabled reports whether a bracket is currently open.
func (m *Memo) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.depth > 0
}

// Reset force-closes every bracket and drops all entries. Used by cycle
// recovery so a panic inside computation cannot leak a stuck-open scope.
func (m *Memo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.depth = 0
	m.cache.Flush()
}

func (m *Memo) getCount(key string) (int, bool) {
	if !m.Enabled() {
		return 0, false
	}
	value, found := m.cache.Get(key)
	if !found {
		return 0, false
	}
	n, ok := value.(int)
	if !ok {
		log.Error(log.CatMemo, "wrong type assertion when getting count", "key", key)
		return 0, false
	}
	log.Debug(log.CatMemo, "memo hit", "key", key)
	return n, true
}

func (m *Memo) putCount(key string, n int) {
	if !m.Enabled() {
		return
	}
	m.cache.Set(key, n, gocache.NoExpiration)
}

func (m *Memo) getLookup(key string) ([]int, bool) {
	if !m.Enabled() {
		return nil, false
	}
	value, found := m.cache.Get(key)
	if !found {
		return nil, false
	}
	table, ok := value.([]int)
	if !ok {
		log.Error(log.CatMemo, "wrong type assertion when getting lookup table", "key", key)
		return nil, false
	}
	log.Debug(log.CatMemo, "memo hit", "key", key)
	return table, true
}

func (m *Memo) putLookup(key string, table []int) {
	if !m.Enabled() {
		return
	}
	m.cache.Set(key, table, gocache.NoExpiration)
}

// ItemCount returns the number of live entries. Test hook.
func (m *Memo) ItemCount() int {
	return m.cache.ItemCount()
}

// memoKey builds a composite key from the computation kind, the canonical
// base view identity, and the computation parameters. Aliased views share
// keys through their base ID.
func memoKey(kind string, baseID int, params ...int) string {
	var b strings.Builder
	b.WriteString(kind)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(baseID))
	for _, p := range params {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(p))
	}
	return b.String()
}
