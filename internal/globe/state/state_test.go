package state

import (
	"math"
	"testing"
)

func newTestState() *State {
	s := New(DefaultOptions())
	s.SetViewport(800, 600)
	s.TakeRedraw()
	return s
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewRequestsFirstFrame(t *testing.T) {
	s := New(DefaultOptions())
	if !s.TakeRedraw() {
		t.Error("new state should request the first frame")
	}
	if s.TakeRedraw() {
		t.Error("redraw request should be cleared after TakeRedraw")
	}
}

func TestDefaults(t *testing.T) {
	s := New(DefaultOptions())
	if s.Camera.Zoom != 45 {
		t.Errorf("Zoom = %v, want 45", s.Camera.Zoom)
	}
	if s.Drag() != Idle {
		t.Errorf("Drag() = %v, want idle", s.Drag())
	}
	if got := s.Modes.Vector(); got != [5]int32{1, 0, 0, 0, 0} {
		t.Errorf("Modes.Vector() = %v, want [1 0 0 0 0]", got)
	}
	if s.Paused {
		t.Error("should not start paused")
	}
}

func TestDragFullWidthIsOneRevolution(t *testing.T) {
	tests := []struct {
		name       string
		dx, dy     int
		yaw, pitch float64
	}{
		{"full width", 800, 0, 360, 0},
		{"half width", 400, 0, 180, 0},
		{"full height", 0, 600, 0, 360},
		{"quarter height up", 0, -150, 0, -90},
		{"diagonal", 200, 300, 90, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState()
			s.MouseDown(100, 100)
			s.MouseMove(100+tt.dx, 100+tt.dy)

			if !approx(s.Camera.Yaw, tt.yaw) {
				t.Errorf("Yaw = %v, want %v", s.Camera.Yaw, tt.yaw)
			}
			if !approx(s.Camera.Pitch, tt.pitch) {
				t.Errorf("Pitch = %v, want %v", s.Camera.Pitch, tt.pitch)
			}
		})
	}
}

func TestDragAccumulatesFromLastPosition(t *testing.T) {
	s := newTestState()
	s.MouseDown(0, 0)
	s.MouseMove(100, 0)
	s.MouseMove(200, 0)
	s.MouseMove(400, 0)

	// Deltas are 100, 100, 200: half the width in total.
	if !approx(s.Camera.Yaw, 180) {
		t.Errorf("Yaw = %v, want 180", s.Camera.Yaw)
	}
}

func TestMoveWhileIdleDoesNotRotate(t *testing.T) {
	s := newTestState()
	s.MouseMove(500, 500)
	if s.Camera.Yaw != 0 || s.Camera.Pitch != 0 {
		t.Errorf("idle move rotated the globe: yaw=%v pitch=%v", s.Camera.Yaw, s.Camera.Pitch)
	}
	if !s.TakeRedraw() {
		t.Error("pointer moves should still request a redraw")
	}
}

func TestDragStateMachine(t *testing.T) {
	s := newTestState()

	s.MouseDown(10, 10)
	if s.Drag() != Dragging {
		t.Fatalf("after MouseDown: %v, want dragging", s.Drag())
	}
	s.MouseUp()
	if s.Drag() != Idle {
		t.Fatalf("after MouseUp: %v, want idle", s.Drag())
	}

	// A new drag starts from its own anchor, not the previous one.
	s.MouseDown(700, 10)
	s.MouseMove(700, 10)
	if s.Camera.Yaw != 0 {
		t.Errorf("Yaw = %v after zero-length drag, want 0", s.Camera.Yaw)
	}
}

func TestZoomClamped(t *testing.T) {
	s := newTestState()

	for i := 0; i < 100; i++ {
		s.HandleKey(KeyZoomIn)
	}
	if s.Camera.Zoom != 10 {
		t.Errorf("Zoom after repeated zoom-in = %v, want 10", s.Camera.Zoom)
	}

	for i := 0; i < 100; i++ {
		s.HandleKey(KeyZoomOut)
	}
	if s.Camera.Zoom != 170 {
		t.Errorf("Zoom after repeated zoom-out = %v, want 170", s.Camera.Zoom)
	}

	s.HandleKey(KeyZoomIn)
	if s.Camera.Zoom != 165 {
		t.Errorf("Zoom = %v, want 165", s.Camera.Zoom)
	}
}

func TestZoomClampedOnCreate(t *testing.T) {
	opts := DefaultOptions()
	opts.Zoom = 500
	if s := New(opts); s.Camera.Zoom != opts.ZoomMax {
		t.Errorf("Zoom = %v, want clamped to %v", s.Camera.Zoom, opts.ZoomMax)
	}
}

func TestFeatureKeys(t *testing.T) {
	tests := []struct {
		key     Key
		feature Feature
	}{
		{KeyColor, FeatureColor},
		{KeySpecular, FeatureSpecular},
		{KeyNight, FeatureNight},
		{KeyNormal, FeatureNormal},
		{KeyClouds, FeatureClouds},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			s := newTestState()
			before := s.Modes.Enabled(tt.feature)

			s.HandleKey(tt.key)
			if s.Modes.Enabled(tt.feature) == before {
				t.Errorf("%v did not toggle %v", tt.key, tt.feature)
			}
			if !s.TakeRedraw() {
				t.Error("key should request a redraw")
			}

			s.HandleKey(tt.key)
			if s.Modes.Enabled(tt.feature) != before {
				t.Errorf("second %v did not restore %v", tt.key, tt.feature)
			}
		})
	}
}

func TestEveryKeyRequestsRedraw(t *testing.T) {
	for k := KeyColor; k <= KeyQuit; k++ {
		s := newTestState()
		s.HandleKey(k)
		if !s.TakeRedraw() {
			t.Errorf("%v did not request a redraw", k)
		}
	}

	s := newTestState()
	s.HandleKey(KeyNone)
	if s.TakeRedraw() {
		t.Error("unbound key should be ignored")
	}
}

func TestPauseToggle(t *testing.T) {
	s := newTestState()
	s.HandleKey(KeyPause)
	if !s.Paused {
		t.Fatal("expected paused")
	}
	s.HandleKey(KeyPause)
	if s.Paused {
		t.Fatal("expected running")
	}
}

func TestSamplingKeys(t *testing.T) {
	s := newTestState()
	if _, changed := s.TakeSampling(); changed {
		t.Fatal("no sampling change expected before any key")
	}

	s.HandleKey(KeyFilterNearest)
	s.HandleKey(KeyAnisoHigh)
	got, changed := s.TakeSampling()
	if !changed {
		t.Fatal("sampling change not reported")
	}
	want := Sampling{Filter: FilterNearest, Anisotropy: AnisotropyHigh}
	if got != want {
		t.Errorf("Sampling = %+v, want %+v", got, want)
	}
	if _, changed := s.TakeSampling(); changed {
		t.Error("sampling change should be reported once")
	}

	s.HandleKey(KeyAnisoLow)
	s.HandleKey(KeyFilterLinear)
	got, _ = s.TakeSampling()
	if got != (Sampling{Filter: FilterLinear, Anisotropy: AnisotropyLow}) {
		t.Errorf("Sampling = %+v, want linear with anisotropy 1", got)
	}
}

func TestScreenshotAndQuit(t *testing.T) {
	s := newTestState()
	s.HandleKey(KeyScreenshot)
	if !s.TakeScreenshot() {
		t.Error("screenshot request lost")
	}
	if s.TakeScreenshot() {
		t.Error("screenshot request should be cleared")
	}

	if s.QuitRequested() {
		t.Fatal("quit requested too early")
	}
	s.HandleKey(KeyQuit)
	if !s.QuitRequested() {
		t.Error("quit key ignored")
	}
}

func TestSpinWraps(t *testing.T) {
	s := newTestState()
	s.Camera.EarthSpin = 359.7
	s.Camera.CloudSpin = 359.9

	s.Spin(0.5, 0.4)

	if !approx(s.Camera.EarthSpin, 0.2) {
		t.Errorf("EarthSpin = %v, want 0.2", s.Camera.EarthSpin)
	}
	if !approx(s.Camera.CloudSpin, 0.3) {
		t.Errorf("CloudSpin = %v, want 0.3", s.Camera.CloudSpin)
	}
	if !s.TakeRedraw() {
		t.Error("spin should request a redraw")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{720.25, 0.25},
		{-10, 350},
		{-720, 0},
		{1e20, math.Mod(1e20, 360)},
		{math.Inf(1), 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Wrap(tt.in); !approx(got, tt.want) {
			t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRedrawCoalesces(t *testing.T) {
	s := newTestState()
	s.MouseDown(0, 0)
	s.MouseMove(10, 10)
	s.HandleKey(KeyClouds)
	s.Spin(0.5, 0.3)

	if !s.TakeRedraw() {
		t.Fatal("expected a redraw")
	}
	if s.TakeRedraw() {
		t.Error("several changes should coalesce into a single redraw")
	}
}

func TestViewport(t *testing.T) {
	s := New(DefaultOptions())
	s.SetViewport(0, -5)
	if w, h := s.Viewport(); w != 1 || h != 1 {
		t.Errorf("Viewport() = %dx%d, want 1x1 for degenerate sizes", w, h)
	}

	s.SetViewport(1600, 900)
	if got := s.Aspect(); math.Abs(float64(got)-16.0/9.0) > 1e-6 {
		t.Errorf("Aspect() = %v, want 16/9", got)
	}
}

func TestModes(t *testing.T) {
	m := DefaultModes()
	clouds := m.With(FeatureClouds, true)
	if m.Enabled(FeatureClouds) {
		t.Error("With should not modify the receiver")
	}
	if got := clouds.Vector(); got != [5]int32{1, 0, 0, 0, 1} {
		t.Errorf("Vector() = %v, want [1 0 0 0 1]", got)
	}
	if FeatureNight.String() != "night" {
		t.Errorf("FeatureNight.String() = %q", FeatureNight.String())
	}
}
