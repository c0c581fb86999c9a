package debounce_test

import (
	"fmt"
	"time"

	"github.com/coalesced/debounce"
)

func ExampleNew() {
	// Save the document once edits have paused for 100 milliseconds. Every
	// call gets a future for the shared outcome, and the latest arguments
	// win.
	save := debounce.New(100*time.Millisecond, func(doc string) (string, error) {
		fmt.Println("saving:", doc)

		return doc, nil
	})

	save.Call("v1")
	time.Sleep(50 * time.Millisecond) // +50ms = 50ms
	save.Call("v2")
	time.Sleep(50 * time.Millisecond) // +50ms = 100ms
	fut := save.Call("v3")

	doc, _ := fut.Result() // trailing invocation at 200ms
	fmt.Println("saved:", doc)

	// Output:
	// saving: v3
	// saved: v3
}

func ExampleNewWithFixedDeadline() {
	// With a fixed deadline, the calls at 40ms and 80ms do not push the
	// invocation past the deadline frozen at 100ms by the first call.
	invocations := 0
	tick := debounce.NewWithFixedDeadline(
		100*time.Millisecond,
		func(n int) (int, error) {
			invocations++

			return n, nil
		},
	)

	tick.Call(1)
	time.Sleep(40 * time.Millisecond) // +40ms = 40ms
	tick.Call(2)
	time.Sleep(40 * time.Millisecond) // +40ms = 80ms
	fut := tick.Call(3)

	n, _ := fut.Result() // invocation at 100ms, latest arguments
	fmt.Println(n, invocations)

	// Output:
	// 3 1
}

func ExampleNew_withLeading() {
	// With only the leading edge enabled, the call opening a cycle invokes
	// immediately and later calls coalesce into the cycle without invoking,
	// until Flush (or Cancel) ends it.
	save := debounce.New(100*time.Millisecond, func(doc string) (string, error) {
		fmt.Println("saving:", doc)

		return doc, nil
	}, debounce.WithLeading())

	save.Call("v1") // leading invocation
	save.Call("v2")
	save.Call("v3")

	doc, _ := save.Flush() // force the pending cycle now
	fmt.Println("saved:", doc)

	// Output:
	// saving: v1
	// saving: v3
	// saved: v3
}

func ExampleDebouncer_Cancel() {
	draft := debounce.New(100*time.Millisecond, func(doc string) (string, error) {
		fmt.Println("saving:", doc)

		return doc, nil
	})

	fut := draft.Call("v1")
	draft.Cancel()

	_, err := fut.Result()
	fmt.Println(err)
	fmt.Println(draft.Pending())

	// Output:
	// debounce: pending call canceled
	// false
}
