// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"sync"
	"time"
)

// ReferenceTime is the default FakeClock time.
var ReferenceTime = time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)

type (
	// Clock abstracts the current time. Production code passes Now as a
	// func() time.Time; tests pass a FakeClock's Now.
	Clock interface {
		Now() time.Time
	}

	// RealClock reports system time.
	RealClock struct{}

	// FakeClock reports a manually controlled time.
	FakeClock struct {
		mu      sync.Mutex
		current time.Time
		step    time.Duration
	}
)

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// NewFakeClock creates a FakeClock at initial, or at ReferenceTime when initial is zero.
func NewFakeClock(initial time.Time) *FakeClock {
	if initial.IsZero() {
		initial = ReferenceTime
	}
	return &FakeClock{current: initial}
}

// Now returns the fake time, then advances it by the configured step.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Advance moves the fake time forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Set sets the fake time to t.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// AutoAdvance makes every Now call move time forward by step, so consecutive
// timestamps differ.
func (c *FakeClock) AutoAdvance(step time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = step
}
