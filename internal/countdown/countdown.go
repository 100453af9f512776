// Package countdown tracks a fixed-length interval whose elapsed time stops
// advancing while paused.
package countdown

import (
	"fmt"
	"sync"
	"time"
)

// Clock returns the current time.
type Clock func() time.Time

// Countdown is a pause-aware timer. The zero value is not usable; call New.
type Countdown struct {
	mu       sync.Mutex
	total    time.Duration
	now      Clock
	started  bool
	anchor   time.Time     // start of the current running span
	banked   time.Duration // elapsed time from finished spans
	paused   bool
	onChange func(paused bool)
}

// New returns a stopped countdown of the given length. A nil clock uses time.Now.
func New(total time.Duration, clock Clock) *Countdown {
	if clock == nil {
		clock = time.Now
	}
	if total < 0 {
		total = 0
	}
	return &Countdown{total: total, now: clock}
}

// OnPauseChange registers fn to be called after every pause or resume.
func (c *Countdown) OnPauseChange(fn func(paused bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Start begins counting. Calling Start again has no effect.
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return
	}
	c.started = true
	c.anchor = c.now()
}

// Pause freezes the elapsed time. It reports whether the state changed.
func (c *Countdown) Pause() bool {
	c.mu.Lock()
	if !c.started || c.paused || c.doneLocked() {
		c.mu.Unlock()
		return false
	}
	c.banked += c.now().Sub(c.anchor)
	c.paused = true
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(true)
	}
	return true
}

// Resume continues a paused countdown. It reports whether the state changed.
func (c *Countdown) Resume() bool {
	c.mu.Lock()
	if !c.paused {
		c.mu.Unlock()
		return false
	}
	c.anchor = c.now()
	c.paused = false
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(false)
	}
	return true
}

// Toggle pauses a running countdown or resumes a paused one and returns the new paused state.
func (c *Countdown) Toggle() bool {
	if c.Paused() {
		c.Resume()
	} else {
		c.Pause()
	}
	return c.Paused()
}

// Paused reports whether the countdown is paused.
func (c *Countdown) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Elapsed returns running time so far, excluding paused spans, capped at the configured length.
func (c *Countdown) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsedLocked()
}

// Remaining returns the configured length minus Elapsed.
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total - c.elapsedLocked()
}

// Done reports whether the full length has elapsed.
func (c *Countdown) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doneLocked()
}

// Progress returns the completed fraction in [0, 1].
func (c *Countdown) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.total == 0 {
		return 1
	}
	return float64(c.elapsedLocked()) / float64(c.total)
}

func (c *Countdown) elapsedLocked() time.Duration {
	if !c.started {
		return 0
	}
	elapsed := c.banked
	if !c.paused {
		elapsed += c.now().Sub(c.anchor)
	}
	if elapsed > c.total {
		return c.total
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (c *Countdown) doneLocked() bool {
	return c.started && c.elapsedLocked() >= c.total
}

// Format renders d as MM:SS, or H:MM:SS from one hour up. Partial seconds round up
// so the display reaches 00:00 only when the countdown is done.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64((d + time.Second - 1) / time.Second)
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
