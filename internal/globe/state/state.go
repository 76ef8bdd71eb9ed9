// Package state holds the viewer's interaction and animation state block.
//
// Input handlers, the animation clock and the renderer all share one *State
// owned by the application. Everything runs on the event loop thread, so no
// locking is done here.
package state

import (
	"math"

	"github.com/Faultbox/midgard-globe/internal/engine/camera"
)

// Camera is the camera state: drag angles, zoom and the two spin angles.
type Camera = camera.State

// DragState is the pointer state machine's current state.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (d DragState) String() string {
	if d == Dragging {
		return "dragging"
	}
	return "idle"
}

// Filter selects texture minification/magnification filtering.
type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest
)

// Anisotropy levels the A and S keys switch between.
const (
	AnisotropyHigh float32 = 16
	AnisotropyLow  float32 = 1
)

// Sampling is the requested texture sampling setup.
type Sampling struct {
	Filter     Filter
	Anisotropy float32
}

// Options configures a new State.
type Options struct {
	Zoom     float64
	ZoomMin  float64
	ZoomMax  float64
	ZoomStep float64

	Modes      Modes
	Paused     bool
	Anisotropy float32
}

// DefaultOptions returns the stock viewer setup: 45° field of view adjustable
// in 5° steps between 10° and 170°, color map only.
func DefaultOptions() Options {
	return Options{
		Zoom:       45,
		ZoomMin:    10,
		ZoomMax:    170,
		ZoomStep:   5,
		Modes:      DefaultModes(),
		Anisotropy: AnisotropyLow,
	}
}

// State is the mutable application state block.
type State struct {
	Camera   Camera
	Modes    Modes
	Paused   bool
	Sampling Sampling

	zoomMin, zoomMax, zoomStep float64

	drag         DragState
	lastX, lastY int
	width        int
	height       int

	redraw          bool
	samplingChanged bool
	screenshot      bool
	quit            bool
}

// New creates a state block. The first frame is requested immediately.
func New(opts Options) *State {
	s := &State{
		Camera:   Camera{Zoom: opts.Zoom},
		Modes:    opts.Modes,
		Paused:   opts.Paused,
		Sampling: Sampling{Filter: FilterLinear, Anisotropy: opts.Anisotropy},
		zoomMin:  opts.ZoomMin,
		zoomMax:  opts.ZoomMax,
		zoomStep: opts.ZoomStep,
		width:    1,
		height:   1,
		redraw:   true,
	}
	s.Camera.Zoom = s.clampZoom(s.Camera.Zoom)
	return s
}

// SetViewport records the window size, in the same units as pointer
// events, used to scale drag deltas.
func (s *State) SetViewport(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s.width, s.height = width, height
	s.redraw = true
}

// Viewport returns the last recorded window size.
func (s *State) Viewport() (width, height int) {
	return s.width, s.height
}

// Aspect returns the viewport's width/height ratio.
func (s *State) Aspect() float32 {
	return float32(s.width) / float32(s.height)
}

// Drag returns the pointer state.
func (s *State) Drag() DragState {
	return s.drag
}

// MouseDown starts a drag anchored at (x, y).
func (s *State) MouseDown(x, y int) {
	s.drag = Dragging
	s.lastX, s.lastY = x, y
	s.redraw = true
}

// MouseMove rotates the globe while dragging. A drag across the whole
// viewport width turns it one full revolution.
func (s *State) MouseMove(x, y int) {
	if s.drag == Dragging {
		dx := x - s.lastX
		dy := y - s.lastY
		s.Camera.Yaw += 360 * float64(dx) / float64(s.width)
		s.Camera.Pitch += 360 * float64(dy) / float64(s.height)
		s.lastX, s.lastY = x, y
	}
	s.redraw = true
}

// MouseUp ends a drag.
func (s *State) MouseUp() {
	s.drag = Idle
	s.redraw = true
}

// HandleKey applies a key binding. Every key requests a redraw, including
// ones that turn out to be no-ops such as zooming past a limit.
func (s *State) HandleKey(k Key) {
	switch k {
	case KeyColor:
		s.Modes.Toggle(FeatureColor)
	case KeySpecular:
		s.Modes.Toggle(FeatureSpecular)
	case KeyNight:
		s.Modes.Toggle(FeatureNight)
	case KeyNormal:
		s.Modes.Toggle(FeatureNormal)
	case KeyClouds:
		s.Modes.Toggle(FeatureClouds)
	case KeyZoomOut:
		s.Camera.Zoom = s.clampZoom(s.Camera.Zoom + s.zoomStep)
	case KeyZoomIn:
		s.Camera.Zoom = s.clampZoom(s.Camera.Zoom - s.zoomStep)
	case KeyPause:
		s.Paused = !s.Paused
	case KeyFilterLinear:
		s.setSampling(Sampling{Filter: FilterLinear, Anisotropy: s.Sampling.Anisotropy})
	case KeyFilterNearest:
		s.setSampling(Sampling{Filter: FilterNearest, Anisotropy: s.Sampling.Anisotropy})
	case KeyAnisoHigh:
		s.setSampling(Sampling{Filter: s.Sampling.Filter, Anisotropy: AnisotropyHigh})
	case KeyAnisoLow:
		s.setSampling(Sampling{Filter: s.Sampling.Filter, Anisotropy: AnisotropyLow})
	case KeyScreenshot:
		s.screenshot = true
	case KeyQuit:
		s.quit = true
	default:
		return
	}
	s.redraw = true
}

// Spin advances the spin angles by the given degrees, wrapping both into
// [0, 360), and requests a redraw.
func (s *State) Spin(earth, cloud float64) {
	s.Camera.EarthSpin = Wrap(s.Camera.EarthSpin + earth)
	s.Camera.CloudSpin = Wrap(s.Camera.CloudSpin + cloud)
	s.redraw = true
}

// RequestRedraw marks the next frame as needed.
func (s *State) RequestRedraw() {
	s.redraw = true
}

// TakeRedraw reports whether a redraw was requested and clears the request,
// so any number of changes between frames cost one render.
func (s *State) TakeRedraw() bool {
	r := s.redraw
	s.redraw = false
	return r
}

// TakeSampling returns the sampling setup if a key changed it since the last call.
func (s *State) TakeSampling() (Sampling, bool) {
	changed := s.samplingChanged
	s.samplingChanged = false
	return s.Sampling, changed
}

// TakeScreenshot reports and clears a pending screenshot request.
func (s *State) TakeScreenshot() bool {
	r := s.screenshot
	s.screenshot = false
	return r
}

// QuitRequested reports whether the user asked to exit.
func (s *State) QuitRequested() bool {
	return s.quit
}

// Quit marks the viewer for exit.
func (s *State) Quit() {
	s.quit = true
}

func (s *State) setSampling(v Sampling) {
	s.Sampling = v
	s.samplingChanged = true
}

func (s *State) clampZoom(z float64) float64 {
	if z < s.zoomMin {
		return s.zoomMin
	}
	if z > s.zoomMax {
		return s.zoomMax
	}
	return z
}

// Wrap folds an angle into [0, 360). Non-finite angles fold to 0.
func Wrap(deg float64) float64 {
	if math.IsInf(deg, 0) || math.IsNaN(deg) {
		return 0
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}
