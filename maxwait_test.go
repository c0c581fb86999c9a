package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_withMaxWait(t *testing.T) {
	t.Parallel()

	r := newRecorder()
	d := New(150*time.Millisecond, r.target, WithMaxWait(400*time.Millisecond))

	// A continuous stream of calls every 75ms: no gap exceeds wait, but the
	// first invocation is forced no later than maxWait after the first call
	// of the burst.
	for arg := 1; arg <= 10; arg++ {
		d.Call(arg)
		time.Sleep(75 * time.Millisecond)
	}

	time.Sleep(400 * time.Millisecond)

	got := r.invocations()
	if !assert.Len(t, got, 2, "invocations") {
		return
	}

	assert.LessOrEqual(t,
		got[0].at, 400*time.Millisecond+margin,
		"first invocation must not exceed maxWait",
	)

	// The stream ends at 675ms, the second cycle's trailing edge lands at
	// 825ms with the last arguments seen.
	assert.InDelta(t,
		float64(825*time.Millisecond), float64(got[1].at), float64(margin),
	)
	assert.Equal(t, 10, got[1].arg)
}

func TestNew_maxWaitClampedToWait(t *testing.T) {
	t.Parallel()

	r := newRecorder()

	// A maxWait below wait is raised to wait, so the budget runs out one
	// wait after the cycle opens.
	d := New(150*time.Millisecond, r.target, WithMaxWait(100*time.Millisecond))

	d.Call(1)
	time.Sleep(50 * time.Millisecond)
	d.Call(2)
	time.Sleep(50 * time.Millisecond)
	d.Call(3)

	time.Sleep(300 * time.Millisecond)

	assertInvocations(t, r, []invocation{
		{at: 150 * time.Millisecond, arg: 3},
	})
}

func TestNew_maxWaitIdleBurstUnaffected(t *testing.T) {
	t.Parallel()

	r := newRecorder()
	d := New(150*time.Millisecond, r.target, WithMaxWait(time.Second))

	// A short burst settles on the trailing edge well before the ceiling.
	d.Call(1)
	time.Sleep(50 * time.Millisecond)
	d.Call(2)
	time.Sleep(400 * time.Millisecond)

	assertInvocations(t, r, []invocation{
		{at: 200 * time.Millisecond, arg: 2},
	})
}
