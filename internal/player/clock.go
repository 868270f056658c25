// ABOUTME: Wall-clock playback position tracking
// ABOUTME: Pause freezes elapsed time; resume and seek re-anchor the start instant
package player

import (
	"sync"
	"time"
)

// Clock tracks elapsed playback time from wall-clock deltas, independent
// of how many samples the device has actually consumed. Pause, resume
// and seek all reduce to one operation: re-anchoring the start instant
// to now minus the target elapsed time. The position is what the user
// perceives, not a sample-accurate one; scheduling jitter of a few
// milliseconds is accepted.
type Clock struct {
	mu      sync.Mutex
	now     func() time.Time // swapped out in tests
	start   time.Time
	frozen  time.Duration
	paused  bool
	running bool
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// Start resets elapsed time to zero and anchors the clock at now.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = c.now()
	c.frozen = 0
	c.paused = false
	c.running = true
}

// Pause freezes the current elapsed time.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused || !c.running {
		return
	}
	c.frozen = c.now().Sub(c.start)
	c.paused = true
}

// Resume re-anchors the start instant so elapsed time continues from
// the frozen value.
func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.start = c.now().Add(-c.frozen)
	c.paused = false
}

// SeekTo re-anchors the clock at the target elapsed time. The paused
// state is unchanged: a paused clock stays paused at the new position.
func (c *Clock) SeekTo(target time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = c.now().Add(-target)
	c.frozen = target
	c.running = true
}

// Stop resets the clock to zero with nothing playing.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	c.paused = false
	c.frozen = 0
}

// Elapsed returns the frozen value while paused, otherwise the
// wall-clock delta since the anchor.
func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return 0
	}
	if c.paused {
		return c.frozen
	}
	return c.now().Sub(c.start)
}

// Paused reports whether the clock is frozen.
func (c *Clock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}
