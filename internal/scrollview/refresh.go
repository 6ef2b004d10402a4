package scrollview

import (
	"sync"
	"time"
)

// DefaultRefreshDebounce is the coalescing window for refresh requests.
const DefaultRefreshDebounce = 50 * time.Millisecond

// Refresher coalesces bursts of refresh requests into single recomputations.
// A request schedules a deferred callback; a newer request before the timer
// fires supersedes it, so only the latest request of a burst survives.
// Rapid scroll and resize storms cost one recomputation, not one each.
type Refresher struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	fn      func()
	stopped bool

	// fired counts callback invocations. Test hook for coalescing checks.
	fired int
}

// NewRefresher returns a refresher that invokes fn after the debounce
// window. A non-positive delay uses the default.
func NewRefresher(delay time.Duration, fn func()) *Refresher {
	if delay <= 0 {
		delay = DefaultRefreshDebounce
	}
	return &Refresher{delay: delay, fn: fn}
}

// Request schedules a refresh. Pending requests are superseded; only the
// most recent one fires.
func (r *Refresher) Request() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	if r.timer != nil {
		if !r.timer.Stop() {
			// Timer already fired; its callback runs or ran. The new
			// request still schedules its own.
		}
	}
	r.timer = time.AfterFunc(r.delay, r.fire)
}

func (r *Refresher) fire() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	r.fired++
	fn := r.fn
	r.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Flush runs a pending refresh immediately, if any. Used by tests and by
// hosts that need the indicator current before a synchronous operation.
func (r *Refresher) Flush() {
	r.mu.Lock()
	pending := r.timer != nil && r.timer.Stop()
	if pending {
		r.timer = nil
		r.fired++
	}
	fn := r.fn
	r.mu.Unlock()

	if pending && fn != nil {
		fn()
	}
}

// Stop cancels any pending refresh and rejects future requests.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// Fired returns how many refreshes have actually run.
func (r *Refresher) Fired() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fired
}
