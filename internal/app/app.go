// Package app implements the main application loop and state wiring.
package app

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"refsketch/internal/assets"
	"refsketch/internal/config"
	"refsketch/internal/engine/camera"
	"refsketch/internal/engine/debug"
	"refsketch/internal/engine/input"
	"refsketch/internal/engine/renderer"
	"refsketch/internal/engine/window"
	"refsketch/internal/logger"
	"refsketch/internal/refs"
	gomath "refsketch/pkg/math"
)

// Timer readout placement in window coordinates.
const (
	timerRegionName = "timer"
	timerX          = 20
	timerY          = 20
	timerW          = 160
	timerH          = 60
	readoutHeight   = 40
)

// degToRad converts degrees to radians.
func degToRad(deg float32) float32 {
	return deg * math.Pi / 180
}

// App is the main application instance.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	pointer  *input.Pointer
	wrap     input.WrappingCursor
	camera   *camera.OrbitCamera
	capture  *debug.ScreenshotCapture

	set      *refs.Set
	timer    *refs.Timer
	rng      *rand.Rand
	dragging bool

	width  int
	height int

	cursor gomath.Vec2
}

// New creates the application: window, renderer, and reference set.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("references", cfg.References.Folder),
	)

	a := &App{
		cfg:    cfg,
		width:  cfg.Graphics.Width,
		height: cfg.Graphics.Height,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      "refsketch",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the OpenGL context the window created.
	a.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()
	a.pointer = input.NewPointer(input.Region{
		Name: timerRegionName, X: timerX, Y: timerY, W: timerW, H: timerH,
	})
	a.wrap = input.DefaultWrappingCursor()
	a.camera = camera.NewOrbitCamera()
	a.capture = debug.NewScreenshotCapture("screenshots", "refsketch")

	a.set, err = assets.LoadReferences(cfg.References.Folder, assets.Options{
		Thickness: cfg.References.Thickness,
		SharpLow:  degToRad(cfg.References.SharpLowDeg),
		SharpHigh: degToRad(cfg.References.SharpHighDeg),
	})
	if err != nil {
		a.renderer.Close()
		a.window.Close()
		return nil, fmt.Errorf("failed to load references: %w", err)
	}
	if a.set.Len() == 0 {
		logger.Warn("no reference models found", zap.String("folder", cfg.References.Folder))
	}

	interval := time.Duration(cfg.Timer.IntervalSeconds * float64(time.Second))
	a.timer = refs.NewTimer(interval, time.Now())

	logger.Info("initialized", zap.Int("references", a.set.Len()))
	return a, nil
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.advanceReference()

	logger.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			break
		}

		for _, event := range a.input.Events() {
			a.handleEvent(event, now)
		}

		a.update(now)

		if err := a.render(now); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if a.cfg.Viewer.ShowFPS {
				logger.Sugar.Debugf("fps %d (%.2fms)", frameCount, dt*1000)
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up application resources.
func (a *App) Close() {
	logger.Info("closing")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// handleEvent dispatches one input event.
func (a *App) handleEvent(event input.Event, now time.Time) {
	switch event.Type {
	case input.EventQuit:
		a.running = false

	case input.EventWindowResize:
		a.width, a.height = event.Width, event.Height
		a.renderer.Resize(event.Width, event.Height)

	case input.EventKeyDown:
		a.handleKey(event.Key, now)

	case input.EventMouseWheel:
		a.camera.HandleZoom(event.WheelY)

	case input.EventMouseMove, input.EventMouseDown, input.EventMouseUp:
		for _, pe := range a.pointer.Feed(event) {
			a.handlePointer(pe, now)
		}
	}
}

func (a *App) handleKey(key sdl.Scancode, now time.Time) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_SPACE:
		a.timer.TogglePause(now)
	case sdl.SCANCODE_H:
		a.timer.ToggleHide()
	case sdl.SCANCODE_N:
		a.advanceReference()
	case sdl.SCANCODE_S:
		pixels, w, h := a.renderer.ReadPixels()
		path, err := a.capture.CaptureFromPixels(pixels, w, h)
		if err != nil {
			logger.Error("screenshot failed", zap.Error(err))
		} else {
			logger.Info("screenshot saved", zap.String("path", path))
		}
	}
}

// handlePointer applies a synthesized pointer event. Drags on the timer
// readout adjust its interval; drags anywhere else orbit the camera. The
// cursor wraps across window edges so a drag never runs out of room.
func (a *App) handlePointer(pe input.PointerEvent, now time.Time) {
	a.cursor = pe.Pos

	switch pe.Kind {
	case input.PointerUp:
		// Clicks resolve on release, unless the press became a drag.
		if pe.Target == timerRegionName && !a.dragging {
			switch pe.Button {
			case sdl.BUTTON_LEFT:
				a.timer.TogglePause(now)
			case sdl.BUTTON_RIGHT:
				a.timer.ToggleHide()
			}
		}

	case input.PointerDragStart:
		a.dragging = true
		if pe.Target == timerRegionName {
			a.timer.SetAdjusting(true, now)
		}

	case input.PointerDrag:
		if pe.Target == timerRegionName {
			a.timer.AdjustInterval(pe.Delta.X)
		} else {
			a.camera.HandleDrag(pe.Delta.X, pe.Delta.Y)
		}
		a.wrapCursor(pe.Pos)

	case input.PointerDragEnd:
		a.dragging = false
		if pe.Target == timerRegionName {
			a.timer.SetAdjusting(false, now)
		}
	}
}

// wrapCursor teleports the cursor across window edges mid drag.
func (a *App) wrapCursor(pos gomath.Vec2) {
	next, wrapped := a.wrap.Apply(pos, float32(a.width), float32(a.height))
	if !wrapped {
		return
	}
	a.window.WarpMouse(next.X, next.Y)
	a.pointer.SkipNextDelta()
}

// update advances the timer and cycles to the next reference on expiry.
func (a *App) update(now time.Time) {
	_, expired := a.timer.Tick(now)
	if expired {
		a.advanceReference()
	}
}

// advanceReference shows the next enabled reference under a fresh random
// rotation.
func (a *App) advanceReference() {
	next, ok := a.set.Next()
	if !ok {
		return
	}
	a.set.SetCurrent(next)

	ref := a.set.Current()
	ref.Rotation = refs.RandomRotation(a.rng)
	a.window.SetTitle("refsketch - " + ref.Name)
	logger.Debug("showing reference", zap.String("name", ref.Name))
}

// render draws the current reference and the timer overlay.
func (a *App) render(now time.Time) error {
	a.renderer.Begin()

	aspect := float32(a.width) / float32(a.height)
	a.renderer.SetCamera(a.camera.ViewMatrix(), gomath.Perspective(degToRad(45), aspect, 0.1, 100))

	if ref := a.set.Current(); ref != nil {
		model := ref.Rotation.ToMat4()

		if err := a.renderer.DrawMesh(ref.Mesh, model, renderer.ColorSurface); err != nil {
			return err
		}
		if err := a.renderer.DrawShell(ref.Outline, model, renderer.ColorShell); err != nil {
			return err
		}
		a.renderer.DrawLines(ref.Edges, model, renderer.ColorLineArt)

		if a.cfg.Viewer.ShowBounds {
			min, max, err := debug.MeshBounds(ref.Mesh)
			if err == nil {
				wire := debug.BoundsWireframe(min, max, debug.DefaultBoundsPadding)
				a.renderer.DrawLines(wire, model, renderer.ColorOverlay)
			}
		}
	}

	a.renderTimer(now)
	return nil
}

// renderTimer draws the countdown readout in the timer region.
func (a *App) renderTimer(now time.Time) {
	if a.timer.Hidden() {
		return
	}

	// While the interval is being adjusted the readout shows the interval
	// itself, giving immediate feedback during the drag.
	shown := a.timer.Interval()
	if !a.timer.Adjusting() {
		shown -= a.timer.Elapsed(now)
		if shown < 0 {
			shown = 0
		}
	}

	text := fmt.Sprintf("%.1f", shown.Seconds())
	points := renderer.Readout(text, timerX, timerY+(timerH-readoutHeight)/2, readoutHeight)
	a.renderer.DrawOverlayLines(points, renderer.ColorOverlay)
}
