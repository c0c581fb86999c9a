// Package debounce coalesces rapid bursts of calls into fewer invocations of
// a wrapped target function.
//
// A debounced wrapper collects calls into cycles: the first call after an
// idle period opens a cycle, later calls replace the pending arguments and
// join the cycle as waiters, and a single invocation of the target settles
// every waiter with the same outcome. Two deadline strategies are supported:
// StrategyExtend restarts the clock on every call, StrategyFixedDeadline
// freezes the deadline when the cycle opens. A maxWait ceiling bounds total
// cycle latency under either strategy.
//
// Debouncing is useful when calls may be triggered rapidly, such as in
// response to user input or filesystem events, but the underlying operation
// is expensive and only needs to be performed once per batch of calls.
package debounce

import (
	"context"
	"sync"
	"time"
)

// Strategy selects how the invocation deadline reacts to calls made while a
// cycle is already open.
type Strategy int

const (
	// StrategyExtend restarts the full wait duration on every call, so the
	// target only runs once calls have stopped arriving for wait.
	StrategyExtend Strategy = iota

	// StrategyFixedDeadline freezes the deadline at the cycle's first call
	// plus wait. Later calls in the same cycle replace the pending arguments
	// but never push the deadline out.
	StrategyFixedDeadline
)

// Debouncer wraps a target function and coalesces bursts of calls into
// fewer invocations. One Debouncer manages one logical call-site's cycle of
// coalesced calls; create one per call-site.
//
// All methods are safe for concurrent use.
type Debouncer[T, R any] struct {
	// Configuration
	wait     time.Duration
	maxWait  time.Duration
	leading  bool
	trailing bool
	strategy Strategy
	signal   context.Context
	fn       func(T) (R, error)

	// State
	mux      sync.Mutex
	open     bool
	first    time.Time
	deadline time.Time
	args     T
	waiters  []waiter[R]
	timer    *time.Timer
	gen      uint64
}

// waiter is one outstanding call in the open cycle. stop releases the
// call's abort watcher, and is nil when the call carried no signal.
type waiter[R any] struct {
	fut  *Future[R]
	stop func() bool
}

// New returns a Debouncer that delays invoking fn until after wait has
// elapsed since the last call, by default. The leading/trailing edges, the
// deadline strategy and the maxWait ceiling are set through options.
//
// A negative wait is treated as zero, in which case every call invokes fn
// synchronously. A maxWait below wait is raised to wait. A nil fn panics.
//
// The wrapper does not wait for fn to complete, so fn needs to be
// thread-safe as it may be invoked again before a previous invocation
// completes.
func New[T, R any](
	wait time.Duration,
	fn func(T) (R, error),
	opts ...Option,
) *Debouncer[T, R] {
	if fn == nil {
		panic("debounce: nil target function")
	}

	var c config
	for _, opt := range opts {
		opt(&c)
	}

	// If neither leading nor trailing is set, default to trailing.
	if !c.leading && !c.trailing {
		c.trailing = true
	}

	if wait < 0 {
		wait = 0
	}
	if c.maxWait < 0 {
		c.maxWait = 0
	}
	if c.maxWait > 0 && c.maxWait < wait {
		c.maxWait = wait
	}

	return &Debouncer[T, R]{
		wait:     wait,
		maxWait:  c.maxWait,
		leading:  c.leading,
		trailing: c.trailing,
		strategy: c.strategy,
		signal:   c.signal,
		fn:       fn,
	}
}

// NewExtend returns a Debouncer bound to StrategyExtend: every call restarts
// the full wait duration, so a continuous stream of calls closer together
// than wait defers the invocation until the stream pauses (or maxWait
// expires, if set).
func NewExtend[T, R any](
	wait time.Duration,
	fn func(T) (R, error),
	opts ...Option,
) *Debouncer[T, R] {
	opts = append(opts[:len(opts):len(opts)], WithStrategy(StrategyExtend))

	return New(wait, fn, opts...)
}

// NewWithFixedDeadline returns a Debouncer bound to StrategyFixedDeadline:
// the deadline is frozen at the cycle's first call plus wait, and calls made
// while the cycle is open never extend it.
func NewWithFixedDeadline[T, R any](
	wait time.Duration,
	fn func(T) (R, error),
	opts ...Option,
) *Debouncer[T, R] {
	opts = append(opts[:len(opts):len(opts)], WithStrategy(StrategyFixedDeadline))

	return New(wait, fn, opts...)
}

// Call passes args to the debounced target. The pending arguments of the
// open cycle are replaced by args, so the target is always invoked with the
// most recent arguments seen. The returned Future settles exactly once: with
// the invocation's outcome, with ErrCanceled if the cycle is canceled, or
// with the abort cause of the wrapper's default signal.
func (d *Debouncer[T, R]) Call(args T) *Future[R] {
	return d.call(d.signal, args)
}

// CallContext is like Call, but ties this call's Future to ctx: if ctx is
// done before the cycle invokes, only this call's Future is rejected with
// the context's cause, and sibling calls in the cycle are unaffected. If ctx
// is already done, the Future is rejected immediately and the call never
// joins a cycle.
func (d *Debouncer[T, R]) CallContext(ctx context.Context, args T) *Future[R] {
	if ctx == nil {
		ctx = d.signal
	}

	return d.call(ctx, args)
}

func (d *Debouncer[T, R]) call(ctx context.Context, args T) *Future[R] {
	fut := newFuture[R]()

	if ctx != nil && ctx.Err() != nil {
		fut.reject(context.Cause(ctx))

		return fut
	}

	d.mux.Lock()

	now := time.Now()
	starts := !d.open
	if starts {
		d.open = true
		d.first = now
		if d.strategy == StrategyFixedDeadline {
			d.deadline = now.Add(d.wait)
		}
	}
	d.args = args

	if starts && d.leading {
		// The leading call settles from the immediate invocation and is
		// never added to the waiter list, so a later trailing invocation
		// cannot settle it a second time.
		if !d.trailing {
			// The cycle stays open without a timer: later calls coalesce
			// into it without invoking, until Flush or Cancel ends it.
			d.mux.Unlock()
			fut.settle(d.fn(args))

			return fut
		}

		if delay := d.delayLocked(now); delay > 0 {
			d.armLocked(delay)
			d.mux.Unlock()
			fut.settle(d.fn(args))

			return fut
		}

		// Zero wait: both edges collapse into a single invocation.
		snapArgs, ws := d.takeLocked()
		d.mux.Unlock()
		fut.settle(d.invoke(snapArgs, ws))

		return fut
	}

	w := waiter[R]{fut: fut}
	if ctx != nil {
		w.stop = d.watch(ctx, fut)
	}
	d.waiters = append(d.waiters, w)

	if d.trailing {
		delay := d.delayLocked(now)
		if delay <= 0 {
			// Deadline or maxWait budget already exhausted.
			snapArgs, ws := d.takeLocked()
			d.mux.Unlock()
			d.invoke(snapArgs, ws)

			return fut
		}
		d.armLocked(delay)
	}

	d.mux.Unlock()

	return fut
}

// Cancel ends the open cycle without invoking the target. Every outstanding
// waiter is settled with ErrCanceled. Calling Cancel with no open cycle is a
// no-op.
func (d *Debouncer[T, R]) Cancel() {
	d.mux.Lock()
	if !d.open {
		d.mux.Unlock()

		return
	}
	_, ws := d.takeLocked()
	d.mux.Unlock()

	for _, w := range ws {
		if w.stop != nil {
			w.stop()
		}
		w.fut.reject(ErrCanceled)
	}
}

// Flush forces immediate invocation of the open cycle with the currently
// pending arguments, as if the timer had fired now, and returns the
// target's direct result. All waiters settle through the normal invocation
// path. With no open cycle, Flush returns zero values and has no effect.
func (d *Debouncer[T, R]) Flush() (R, error) {
	d.mux.Lock()
	if !d.open {
		d.mux.Unlock()
		var zero R

		return zero, nil
	}
	args, ws := d.takeLocked()
	d.mux.Unlock()

	return d.invoke(args, ws)
}

// Pending reports whether a cycle is currently open, i.e. a call is staged
// with no invocation yet or a timer is armed. It has no side effects.
func (d *Debouncer[T, R]) Pending() bool {
	d.mux.Lock()
	defer d.mux.Unlock()

	return d.open
}

// delayLocked computes the delay until the next trailing invocation, capped
// so total elapsed time since the cycle's first call never exceeds maxWait.
// It should only be called while the mutex is already locked.
func (d *Debouncer[T, R]) delayLocked(now time.Time) time.Duration {
	var delay time.Duration
	switch d.strategy {
	case StrategyFixedDeadline:
		delay = d.deadline.Sub(now)
	default:
		delay = d.wait
	}

	if d.maxWait > 0 {
		if budget := d.first.Add(d.maxWait).Sub(now); budget < delay {
			delay = budget
		}
	}

	return delay
}

// armLocked (re)arms the single cycle timer. The generation counter lets a
// stale timer callback that lost a race against Cancel, Flush or a re-arm
// detect that its cycle is gone. It should only be called while the mutex is
// already locked.
func (d *Debouncer[T, R]) armLocked(delay time.Duration) {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(delay, func() {
		d.timerFired(gen)
	})
}

func (d *Debouncer[T, R]) timerFired(gen uint64) {
	d.mux.Lock()
	if gen != d.gen || !d.open {
		d.mux.Unlock()

		return
	}
	args, ws := d.takeLocked()
	d.mux.Unlock()

	d.invoke(args, ws)
}

// takeLocked ends the open cycle: it disarms the timer and snapshots and
// clears the pending arguments and waiter list. State is cleared before any
// user-visible callback runs, so the target may call back into the wrapper.
// It should only be called while the mutex is already locked.
func (d *Debouncer[T, R]) takeLocked() (T, []waiter[R]) {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++

	args, ws := d.args, d.waiters
	var zero T
	d.args = zero
	d.waiters = nil
	d.open = false
	d.first = time.Time{}
	d.deadline = time.Time{}

	return args, ws
}

// invoke runs the target outside the lock and broadcasts one outcome to the
// snapshotted waiters, in registration order.
func (d *Debouncer[T, R]) invoke(args T, ws []waiter[R]) (R, error) {
	v, err := d.fn(args)
	for _, w := range ws {
		if w.stop != nil {
			w.stop()
		}
		w.fut.settle(v, err)
	}

	return v, err
}

// watch rejects fut with ctx's cause the moment ctx is done, removing it
// from the waiter list so the rest of the cycle, including its timer,
// proceeds untouched. If an invocation already snapshotted the waiter, the
// invocation's outcome wins.
func (d *Debouncer[T, R]) watch(ctx context.Context, fut *Future[R]) func() bool {
	return context.AfterFunc(ctx, func() {
		d.mux.Lock()
		removed := false
		for i := range d.waiters {
			if d.waiters[i].fut == fut {
				d.waiters = append(d.waiters[:i], d.waiters[i+1:]...)
				removed = true

				break
			}
		}
		d.mux.Unlock()

		if removed {
			fut.reject(context.Cause(ctx))
		}
	})
}
