package testutil

import (
	"sync"
	"time"
)

// Clock is a manual session.Clock: time only moves when Sleep is called.
type Clock struct {
	mu      sync.Mutex
	now     time.Time
	slept   time.Duration
	onSleep func(elapsed time.Duration)
}

// NewClock returns a Clock at a fixed instant.
func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now implements session.Clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep implements session.Clock by advancing time by d.
func (c *Clock) Sleep(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.slept += d
	elapsed := c.slept
	hook := c.onSleep
	c.mu.Unlock()
	if hook != nil {
		hook(elapsed)
	}
}

// OnSleep installs a hook run after each Sleep with the total time slept so far.
func (c *Clock) OnSleep(fn func(elapsed time.Duration)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSleep = fn
}

// Elapsed returns the total time slept.
func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slept
}
