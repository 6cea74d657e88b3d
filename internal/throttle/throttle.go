// Package throttle rate-limits a recompute triggered by a stream of events.
//
// A [Throttle] is a two-state machine: idle, or cooling down with a pending
// trailing call. A call while idle whose interval has elapsed fires at once.
// Otherwise one trailing fire is scheduled for when the interval elapses, and
// every call made before it fires only replaces the arguments it will use.
// Calls are never queued.
//
// The throttle does not own a timer. [Throttle.Call] hands back a [Deferred]
// that the host must deliver to [Throttle.Fire] after [Deferred.Delay]; this
// keeps every invocation on the host's own event loop and lets tests drive
// time explicitly.
package throttle

import (
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the minimum spacing between two throttled fires.
const DefaultInterval = 30 * time.Millisecond

// Deferred identifies one scheduled trailing fire.
type Deferred struct {
	Gen   uint64
	At    time.Time
	Delay time.Duration
}

type Throttle[T any] struct {
	interval time.Duration
	limiter  *rate.Limiter
	fn       func(T)

	pending bool
	next    Deferred
	args    T
	gen     uint64
	fired   int

	// res is the limiter reservation held by the pending fire, taken at resAt.
	res   *rate.Reservation
	resAt time.Time
}

// New wraps fn so that it runs at most once per interval.
func New[T any](interval time.Duration, fn func(T)) *Throttle[T] {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Throttle[T]{
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		fn:       fn,
	}
}

func (t *Throttle[T]) Interval() time.Duration { return t.interval }

// Call requests an invocation with args at time now. When schedule is true
// the host must pass d to Fire once d.Delay has elapsed.
func (t *Throttle[T]) Call(now time.Time, args T) (d Deferred, schedule bool) {
	t.args = args
	if t.pending {
		return t.next, false
	}
	r := t.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	if delay <= 0 {
		t.run()
		return Deferred{}, false
	}
	t.gen++
	t.pending = true
	t.res, t.resAt = r, now
	t.next = Deferred{Gen: t.gen, At: now.Add(delay), Delay: delay}
	return t.next, true
}

// Fire runs the trailing invocation scheduled as d with the latest arguments.
// Stale or superseded deferrals are ignored and report false.
func (t *Throttle[T]) Fire(d Deferred) bool {
	if !t.pending || d.Gen != t.gen {
		return false
	}
	t.pending = false
	t.res = nil
	t.run()
	return true
}

// Flush runs fn with args immediately, bypassing the rate limit, and
// cancels any pending trailing fire so nothing stale runs after it. The
// cancelled fire's reservation is returned to the limiter as of the call that
// took it, so the next call sees only the time since the last real fire.
func (t *Throttle[T]) Flush(args T) {
	t.args = args
	if t.pending {
		t.pending = false
		t.gen++
		t.res.CancelAt(t.resAt)
		t.res = nil
	}
	t.run()
}

// Pending returns the scheduled trailing fire, if any.
func (t *Throttle[T]) Pending() (Deferred, bool) {
	return t.next, t.pending
}

// Fired counts every invocation of fn, flushes included.
func (t *Throttle[T]) Fired() int { return t.fired }

func (t *Throttle[T]) run() {
	t.fired++
	args := t.args
	var zero T
	t.args = zero
	t.fn(args)
}
