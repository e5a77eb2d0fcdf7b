package helper

import (
	"sync"
	"time"
)

// FixedClock is a controllable replacement for time.Now.
type FixedClock struct {
	now time.Time
	mu  sync.Mutex
}

func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// Now returns the clock's current time. Pass the method value where a func() time.Time is expected.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// Advance moves the clock forward.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}
