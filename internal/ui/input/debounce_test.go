package input

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerRunsOnlyLastTrigger(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	got := make(chan int, 4)

	for i := 1; i <= 3; i++ {
		v := i
		d.Trigger(func() { got <- v })
	}

	select {
	case v := <-got:
		if v != 3 {
			t.Fatalf("expected last trigger to win, got %d", v)
		}
	case <-time.After(time.Second):
		t.Fatal("debounced call never ran")
	}

	select {
	case v := <-got:
		t.Fatalf("unexpected extra call with %d", v)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestDebouncerZeroDelayRunsImmediately(t *testing.T) {
	d := NewDebouncer(0)
	var calls int32
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected synchronous call, got %d", calls)
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var calls int32
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Cancel()

	time.Sleep(40 * time.Millisecond)
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("cancelled call ran %d times", n)
	}
}

func TestDebouncerCancelDropsCallAlreadyFired(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var calls int32
	fn := func() { atomic.AddInt32(&calls, 1) }

	d.Trigger(fn)
	scheduled := d.gen
	d.Cancel()
	// The timer goroutine lost the race with Cancel and runs late.
	d.fire(scheduled, fn)
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("stale call ran %d times", n)
	}

	d.Trigger(fn)
	d.fire(d.gen, fn)
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected current call to run once, got %d", n)
	}
	d.Cancel()
}
