package clock

import (
	"math"
	"testing"
	"time"

	"github.com/Faultbox/midgard-globe/internal/globe/state"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestElapsed(t *testing.T) {
	tests := []struct {
		name  string
		after time.Duration
		want  int
	}{
		{"before first tick", 15 * time.Millisecond, 0},
		{"exactly one interval", 16 * time.Millisecond, 1},
		{"three intervals", 48 * time.Millisecond, 3},
		{"three and a bit", 50 * time.Millisecond, 3},
		{"stall is capped", 10 * time.Second, DefaultMaxCatchUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(16*time.Millisecond, DefaultSteps())
			c.Start(epoch)
			if got := c.Elapsed(epoch.Add(tt.after)); got != tt.want {
				t.Errorf("Elapsed(+%v) = %d, want %d", tt.after, got, tt.want)
			}
		})
	}
}

func TestElapsedKeepsRemainder(t *testing.T) {
	c := New(16*time.Millisecond, DefaultSteps())
	c.Start(epoch)

	if got := c.Elapsed(epoch.Add(20 * time.Millisecond)); got != 1 {
		t.Fatalf("first Elapsed = %d, want 1", got)
	}
	// The next tick is due at 32ms, not 36ms.
	if got := c.Elapsed(epoch.Add(32 * time.Millisecond)); got != 1 {
		t.Fatalf("second Elapsed = %d, want 1", got)
	}
	if c.Ticks() != 2 {
		t.Errorf("Ticks() = %d, want 2", c.Ticks())
	}
}

func TestFirstElapsedStarts(t *testing.T) {
	c := New(16*time.Millisecond, DefaultSteps())
	if got := c.Elapsed(epoch); got != 0 {
		t.Fatalf("first Elapsed = %d, want 0", got)
	}
	if got := c.Until(epoch); got != 16*time.Millisecond {
		t.Errorf("Until() = %v, want 16ms", got)
	}
}

func TestUntil(t *testing.T) {
	c := New(16*time.Millisecond, DefaultSteps())
	if got := c.Until(epoch); got != 0 {
		t.Errorf("Until() before start = %v, want 0", got)
	}

	c.Start(epoch)
	if got := c.Until(epoch.Add(10 * time.Millisecond)); got != 6*time.Millisecond {
		t.Errorf("Until() = %v, want 6ms", got)
	}
	if got := c.Until(epoch.Add(time.Second)); got != 0 {
		t.Errorf("Until() when overdue = %v, want 0", got)
	}
}

func TestNewRejectsZeroInterval(t *testing.T) {
	if c := New(0, DefaultSteps()); c.Interval != DefaultInterval {
		t.Errorf("Interval = %v, want %v", c.Interval, DefaultInterval)
	}
}

func TestAdvanceRunning(t *testing.T) {
	s := state.New(state.DefaultOptions())
	s.TakeRedraw()

	c := New(16*time.Millisecond, DefaultSteps())
	c.Start(epoch)

	if n := c.Advance(epoch.Add(48*time.Millisecond), s); n != 3 {
		t.Fatalf("Advance() = %d ticks, want 3", n)
	}
	if !approx(s.Camera.EarthSpin, 1.5) {
		t.Errorf("EarthSpin = %v, want 1.5", s.Camera.EarthSpin)
	}
	if !approx(s.Camera.CloudSpin, 1.2) {
		t.Errorf("CloudSpin = %v, want 1.2", s.Camera.CloudSpin)
	}
	if !s.TakeRedraw() {
		t.Error("ticks should request a redraw")
	}
}

func TestPausePolicy(t *testing.T) {
	tests := []struct {
		name      string
		freeze    bool
		wantCloud float64
	}{
		{"clouds keep drifting", false, 0.3},
		{"clouds freeze", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := state.DefaultOptions()
			opts.Paused = true
			s := state.New(opts)
			s.TakeRedraw()

			steps := DefaultSteps()
			steps.PauseFreezesClouds = tt.freeze
			c := New(16*time.Millisecond, steps)
			c.Start(epoch)
			c.Advance(epoch.Add(48*time.Millisecond), s)

			if s.Camera.EarthSpin != 0 {
				t.Errorf("EarthSpin = %v while paused, want 0", s.Camera.EarthSpin)
			}
			if !approx(s.Camera.CloudSpin, tt.wantCloud) {
				t.Errorf("CloudSpin = %v, want %v", s.Camera.CloudSpin, tt.wantCloud)
			}
			if !s.TakeRedraw() {
				t.Error("paused ticks should still request a redraw")
			}
		})
	}
}

func TestTickWraps(t *testing.T) {
	s := state.New(state.DefaultOptions())
	s.Camera.EarthSpin = 359.7

	c := New(16*time.Millisecond, DefaultSteps())
	c.Tick(s)

	if !approx(s.Camera.EarthSpin, 0.2) {
		t.Errorf("EarthSpin = %v, want 0.2", s.Camera.EarthSpin)
	}
}

func TestDelta(t *testing.T) {
	steps := DefaultSteps()

	earth, cloud := steps.Delta(false)
	if earth != 0.5 || !approx(cloud, 0.4) {
		t.Errorf("running Delta = (%v, %v), want (0.5, 0.4)", earth, cloud)
	}

	earth, cloud = steps.Delta(true)
	if earth != 0 || cloud != 0.1 {
		t.Errorf("paused Delta = (%v, %v), want (0, 0.1)", earth, cloud)
	}
}
