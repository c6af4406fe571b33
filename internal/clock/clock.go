// file: internal/clock/clock.go
// version: 1.0.0
// guid: 8450db01-ffb7-4449-b8bf-b95d032577bb

// Package clock abstracts the timer operations used by debounced handlers so
// tests can drive time deterministically.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Clock is the subset of the time package that debouncers need.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop cancels the call. Returns false if it already fired or was stopped.
	Stop() bool
	// Reset reschedules the call d from now. Returns true if it was pending.
	Reset(d time.Duration) bool
}

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// FakeClock only moves when Advance is called. AfterFunc callbacks run
// synchronously inside Advance, in deadline order.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	waiters []*fakeTimer
}

// Fake returns a FakeClock set to initial.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

type fakeTimer struct {
	clock    *FakeClock
	deadline time.Time
	callback func()
	active   bool
	queued   bool
}

// Now returns the fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// AfterFunc registers f to run once the clock passes now+d.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, deadline: c.current.Add(d), callback: f, active: true, queued: true}
	c.waiters = append(c.waiters, t)
	return t
}

// Advance moves time forward by d and fires every due timer.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	now := c.current

	var due []*fakeTimer
	remaining := c.waiters[:0]
	for _, t := range c.waiters {
		switch {
		case !t.active:
			t.queued = false
		case !t.deadline.After(now):
			t.active = false
			t.queued = false
			due = append(due, t)
		default:
			remaining = append(remaining, t)
		}
	}
	c.waiters = remaining
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].deadline.Before(due[j].deadline) })
	for _, t := range due {
		t.callback()
	}
}

// Pending returns the number of timers that have not fired or been stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.waiters {
		if t.active {
			n++
		}
	}
	return n
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := t.active
	t.active = false
	return was
}

func (t *fakeTimer) Reset(d time.Duration) bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	was := t.active
	t.deadline = c.current.Add(d)
	t.active = true
	if !t.queued {
		t.queued = true
		c.waiters = append(c.waiters, t)
	}
	return was
}
