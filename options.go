package debounce

import (
	"context"
	"time"
)

type config struct {
	leading  bool
	trailing bool
	maxWait  time.Duration
	strategy Strategy
	signal   context.Context
}

// Option configures a Debouncer at construction.
type Option func(*config)

// WithLeading returns an option that causes the call opening a cycle to
// invoke the target immediately with its own arguments. That call's Future
// settles from the leading invocation alone.
//
// When only leading is used, the first call of a cycle invokes immediately
// and subsequent calls coalesce into the cycle without invoking; the cycle
// ends through Flush or Cancel.
func WithLeading() Option {
	return func(c *config) {
		c.leading = true
	}
}

// WithTrailing returns an option that causes the target to be invoked with
// the latest pending arguments once the cycle's deadline is reached. This is
// the default when no edge option is given.
//
// If both WithLeading and WithTrailing are used, a burst immediately invokes
// the target and then invokes it again when the cycle ends, even if no new
// call arrived after the leading one. This dual-edge double invocation is
// classic debounce behavior and is intentional.
func WithTrailing() Option {
	return func(c *config) {
		c.trailing = true
	}
}

// WithMaxWait returns an option that caps total cycle latency: the target is
// invoked no later than maxWait after the cycle's first call, even if calls
// keep arriving within the wait duration.
//
// Without a max wait, a debounced function under StrategyExtend might never
// be invoked if it is called repeatedly within the wait duration.
func WithMaxWait(maxWait time.Duration) Option {
	return func(c *config) {
		c.maxWait = maxWait
	}
}

// WithStrategy returns an option that selects the deadline strategy. The
// default is StrategyExtend.
func WithStrategy(s Strategy) Option {
	return func(c *config) {
		c.strategy = s
	}
}

// WithSignal returns an option that sets a default abort signal for calls
// made through Call. A call made while ctx is already done is rejected
// immediately without joining a cycle. CallContext overrides the default for
// a single call.
func WithSignal(ctx context.Context) Option {
	return func(c *config) {
		c.signal = ctx
	}
}
