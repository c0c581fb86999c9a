package debounce

import "errors"

// ErrCanceled settles every waiter of a cycle that is ended by Cancel
// without invoking the target. Waiters aborted by their own signal settle
// with that context's cause instead.
var ErrCanceled = errors.New("debounce: pending call canceled")
