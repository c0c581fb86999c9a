package debounce

import (
	"context"
	"sync"
)

// Future is the completion handle for one call to a Debouncer. Every call
// gets its own Future, and the invocation that closes the cycle broadcasts
// one outcome to the whole batch. A Future settles exactly once.
type Future[R any] struct {
	done chan struct{}
	once sync.Once
	val  R
	err  error
}

func newFuture[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

func (f *Future[R]) settle(v R, err error) {
	f.once.Do(func() {
		f.val = v
		f.err = err
		close(f.done)
	})
}

func (f *Future[R]) reject(err error) {
	var zero R
	f.settle(zero, err)
}

// Done returns a channel that is closed once the Future has settled.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Result blocks until the Future settles and returns its outcome. It can be
// called any number of times, from any goroutine, and always returns the
// same outcome.
func (f *Future[R]) Result() (R, error) {
	<-f.done

	return f.val, f.err
}

// Wait is like Result, but gives up waiting when ctx is done and returns the
// context's cause. Giving up only abandons this wait; the pending call and
// the Future itself are unaffected.
func (f *Future[R]) Wait(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero R

		return zero, context.Cause(ctx)
	}
}
