// Package app wires the globe viewer together and runs its event loop.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/config"
	"github.com/Faultbox/midgard-globe/internal/engine/debug"
	"github.com/Faultbox/midgard-globe/internal/engine/input"
	"github.com/Faultbox/midgard-globe/internal/engine/renderer"
	"github.com/Faultbox/midgard-globe/internal/engine/shader"
	"github.com/Faultbox/midgard-globe/internal/engine/texture"
	"github.com/Faultbox/midgard-globe/internal/engine/window"
	"github.com/Faultbox/midgard-globe/internal/globe/clock"
	"github.com/Faultbox/midgard-globe/internal/globe/shaders"
	"github.com/Faultbox/midgard-globe/internal/globe/sphere"
	"github.com/Faultbox/midgard-globe/internal/globe/state"
	"github.com/Faultbox/midgard-globe/internal/logger"
)

// loadPollInterval caps how long the loop sleeps while textures are loading.
const loadPollInterval = 5 * time.Millisecond

const alertTitle = "Globe"

// App is the viewer instance. It owns every resource and the state block.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	program  *shader.Program
	watcher  *shader.Watcher
	uploader *texture.GLUploader
	textures *texture.Set
	mesh     *sphere.Mesh
	globe    *renderer.Globe

	state       *state.State
	clock       *clock.Clock
	screenshots *debug.ScreenshotCapture

	ctx    context.Context
	cancel context.CancelFunc

	anisotropyWarned bool
}

// New creates the window, GL resources and state. Failures to obtain a
// usable OpenGL context are reported to the user in a dialog.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:         cfg,
		log:         logger.Named("app"),
		input:       input.New(),
		state:       state.New(stateOptions(cfg)),
		clock:       clock.New(cfg.Animation.Interval, clockSteps(cfg)),
		screenshots: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "globe"),
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	if err := a.init(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init() error {
	var err error
	a.window, err = window.New(window.Config{
		Title:      a.cfg.Window.Title,
		Width:      a.cfg.Window.Width,
		Height:     a.cfg.Window.Height,
		Fullscreen: a.cfg.Window.Fullscreen,
		VSync:      a.cfg.Window.VSync,
	})
	if err != nil {
		window.ShowError(nil, alertTitle, "Unable to create an OpenGL 4.1 window.\n\n"+err.Error())
		return fmt.Errorf("failed to create window: %w", err)
	}

	dw, dh := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh})
	if err != nil {
		window.ShowError(a.window, alertTitle, "OpenGL is not available.\n\n"+err.Error())
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	info := a.renderer.Info()
	a.log.Info("OpenGL context",
		zap.String("version", info.Version),
		zap.String("renderer", info.Renderer),
		zap.String("vendor", info.Vendor),
		zap.String("glsl", info.GLSL),
	)
	a.state.SetViewport(a.window.GetSize())

	src := shader.Source{Dir: a.cfg.Shaders.Dir, Embedded: shaders.FS()}
	a.program, err = shader.Load(src, shaders.VertexFile, shaders.FragmentFile)
	if err != nil {
		window.ShowError(a.window, alertTitle, "The globe shaders failed to build.\n\n"+err.Error())
		return fmt.Errorf("failed to build globe program: %w", err)
	}
	a.renderer.UseProgram(a.program.ID)

	if a.cfg.Shaders.HotReload && a.cfg.Shaders.Dir != "" {
		a.watcher, err = shader.Watch(a.cfg.Shaders.Dir, shaders.VertexFile, shaders.FragmentFile)
		if err != nil {
			a.log.Warn("shader hot reload disabled", zap.Error(err))
		}
	}

	a.mesh, err = sphere.Generate(a.cfg.Globe.Subdivisions)
	if err != nil {
		return fmt.Errorf("failed to generate sphere: %w", err)
	}
	if err := a.renderer.UploadMesh(a.mesh); err != nil {
		return fmt.Errorf("failed to upload sphere: %w", err)
	}

	if err := a.initTextures(); err != nil {
		return err
	}

	a.globe = renderer.NewGlobe(composer(a.cfg), a.mesh.Count())
	a.globe.Material = material(a.cfg)
	a.globe.Light = light(a.cfg)
	a.globe.Textures = a.textures.Handles()

	a.log.Info("globe ready",
		zap.Int("subdivisions", a.mesh.Subdivisions),
		zap.Int32("vertices", a.mesh.Count()),
		zap.Int("drawable_width", dw),
		zap.Int("drawable_height", dh),
	)
	return nil
}

// initTextures allocates a texture per map and starts loading them in the
// background. The globe is drawn with blank maps until they arrive.
func (a *App) initTextures() error {
	a.uploader = texture.NewGLUploader()
	a.applySampling(a.state.Sampling, false)

	var err error
	a.textures, err = texture.NewSet(a.uploader, &texture.Loader{MaxSize: a.uploader.MaxSize()})
	if err != nil {
		return fmt.Errorf("failed to create textures: %w", err)
	}

	for k, path := range texturePaths(a.cfg) {
		a.textures.Request(a.ctx, texture.Kind(k), path)
	}
	return nil
}

// Run runs the event loop until the window closes or Escape is pressed.
func (a *App) Run() error {
	a.log.Info("starting event loop")
	a.clock.Start(time.Now())

	frames := 0
	fpsTimer := time.Now()

	for !a.state.QuitRequested() {
		timeout := a.clock.Until(time.Now())
		if a.textures.Pending() && timeout > loadPollInterval {
			timeout = loadPollInterval
		}

		if a.input.Wait(timeout) {
			a.state.Quit()
		}
		for _, e := range a.input.Events() {
			a.handleEvent(e)
		}

		a.update(time.Now())

		if a.state.TakeRedraw() {
			if err := a.render(); err != nil {
				return fmt.Errorf("render error: %w", err)
			}
			frames++
		}

		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("frames", frames), zap.Uint64("ticks", a.clock.Ticks()))
			frames = 0
			fpsTimer = time.Now()
		}
	}

	a.log.Info("event loop stopped")
	return nil
}

func (a *App) handleEvent(e input.Event) {
	switch e.Type {
	case input.EventQuit:
		a.state.Quit()
	case input.EventWindowResize:
		dw, dh := a.window.DrawableSize()
		a.renderer.Resize(dw, dh)
		a.state.SetViewport(a.window.GetSize())
	case input.EventExpose:
		a.state.RequestRedraw()
	case input.EventKeyDown:
		if k := keyFor(e.Key, e.Repeat); k != state.KeyNone {
			a.state.HandleKey(k)
		}
	case input.EventMouseDown:
		if e.Button == sdl.BUTTON_LEFT {
			a.state.MouseDown(e.MouseX, e.MouseY)
		}
	case input.EventMouseUp:
		if e.Button == sdl.BUTTON_LEFT {
			a.state.MouseUp()
		}
	case input.EventMouseMove:
		a.state.MouseMove(e.MouseX, e.MouseY)
	}
}

// update advances everything that changes without user input.
func (a *App) update(now time.Time) {
	a.clock.Advance(now, a.state)

	if a.textures.Poll() > 0 {
		a.state.RequestRedraw()
	}

	if s, changed := a.state.TakeSampling(); changed {
		a.applySampling(s, true)
	}

	if a.watcher != nil {
		select {
		case name := <-a.watcher.Changes():
			a.reloadShaders(name)
		default:
		}
	}
}

func (a *App) render() error {
	a.globe.Render(a.renderer, a.state.Camera, a.state.Modes, a.state.Aspect())

	if a.state.TakeScreenshot() {
		pixels, w, h := a.renderer.ReadPixels()
		name, err := a.screenshots.CaptureFromPixels(pixels, w, h)
		if err != nil {
			a.log.Error("screenshot failed", zap.Error(err))
		} else {
			a.log.Info("screenshot saved", zap.String("file", name))
		}
	}

	a.window.SwapBuffers()
	return nil
}

// applySampling pushes a filter change to the uploader and existing textures.
func (a *App) applySampling(s state.Sampling, existing bool) {
	if s.Anisotropy > 1 && !a.uploader.AnisotropySupported() {
		a.warnAnisotropy()
	}

	var handles []uint32
	if existing && a.textures != nil {
		h := a.textures.Handles()
		handles = h[:]
	}
	a.uploader.SetSampling(s.Filter == state.FilterNearest, s.Anisotropy, handles...)
	a.log.Debug("texture sampling",
		zap.Bool("nearest", s.Filter == state.FilterNearest),
		zap.Float32("anisotropy", s.Anisotropy),
	)
}

func (a *App) warnAnisotropy() {
	if a.anisotropyWarned {
		return
	}
	a.anisotropyWarned = true
	a.log.Warn("anisotropic filtering not supported")
	a.window.ShowWarning(alertTitle, "Anisotropic filtering is not supported by this driver.")
}

func (a *App) reloadShaders(changed string) {
	if err := a.program.Reload(); err != nil {
		a.log.Error("shader reload failed, keeping previous program",
			zap.String("file", changed),
			zap.Error(err),
		)
		return
	}
	a.renderer.UseProgram(a.program.ID)
	a.state.RequestRedraw()
}

// Close releases every resource. Pending texture loads are abandoned.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.cancel != nil {
		a.cancel()
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("closing shader watcher", zap.Error(err))
		}
	}
	if a.textures != nil {
		a.textures.Close()
	}
	if a.program != nil {
		a.program.Delete()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
