// Package clock drives the globe's spin on a fixed wall-clock interval,
// independent of how often frames are drawn.
package clock

import (
	"time"

	"github.com/Faultbox/midgard-globe/internal/globe/state"
)

// DefaultInterval is roughly one tick per 60 Hz frame.
const DefaultInterval = 16 * time.Millisecond

// DefaultMaxCatchUp bounds how many ticks a single Advance may apply.
const DefaultMaxCatchUp = 30

// Steps are the per-tick angle increments in degrees.
type Steps struct {
	Earth float64
	Cloud float64

	// CloudDrift is added to the clouds on every tick, running or paused.
	CloudDrift float64

	// PauseFreezesClouds stops the drift while paused as well.
	PauseFreezesClouds bool
}

// DefaultSteps returns the stock increments: the earth turns 0.5° per tick
// and the clouds 0.4°, still drifting 0.1° per tick while paused.
func DefaultSteps() Steps {
	return Steps{
		Earth:      0.5,
		Cloud:      0.3,
		CloudDrift: 0.1,
	}
}

// Delta returns the earth and cloud increments for one tick.
func (s Steps) Delta(paused bool) (earth, cloud float64) {
	if !paused {
		return s.Earth, s.Cloud + s.CloudDrift
	}
	if s.PauseFreezesClouds {
		return 0, 0
	}
	return 0, s.CloudDrift
}

// Clock is a fixed-step accumulator. The zero value is not usable; use New.
type Clock struct {
	Interval   time.Duration
	Steps      Steps
	MaxCatchUp int

	next    time.Time
	started bool
	ticks   uint64
}

// New returns a clock ticking every interval.
func New(interval time.Duration, steps Steps) *Clock {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Clock{
		Interval:   interval,
		Steps:      steps,
		MaxCatchUp: DefaultMaxCatchUp,
	}
}

// Start anchors the first tick one interval after now.
func (c *Clock) Start(now time.Time) {
	c.next = now.Add(c.Interval)
	c.started = true
}

// Elapsed returns the number of whole intervals due at now and schedules the
// next one. If the loop stalled for more than MaxCatchUp intervals the excess
// is dropped rather than replayed.
func (c *Clock) Elapsed(now time.Time) int {
	if !c.started {
		c.Start(now)
		return 0
	}
	if now.Before(c.next) {
		return 0
	}

	n := int(now.Sub(c.next)/c.Interval) + 1
	if c.MaxCatchUp > 0 && n > c.MaxCatchUp {
		c.next = now.Add(c.Interval)
		n = c.MaxCatchUp
	} else {
		c.next = c.next.Add(time.Duration(n) * c.Interval)
	}
	c.ticks += uint64(n)
	return n
}

// Advance applies every tick due at now to s and returns how many fired.
// Every tick requests a redraw, even when paused with frozen clouds.
func (c *Clock) Advance(now time.Time, s *state.State) int {
	n := c.Elapsed(now)
	for i := 0; i < n; i++ {
		c.Tick(s)
	}
	return n
}

// Tick applies a single tick to s.
func (c *Clock) Tick(s *state.State) {
	earth, cloud := c.Steps.Delta(s.Paused)
	s.Spin(earth, cloud)
}

// Until returns how long the event loop may sleep before the next tick.
func (c *Clock) Until(now time.Time) time.Duration {
	if !c.started {
		return 0
	}
	d := c.next.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Ticks returns the total number of ticks applied since start.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}
