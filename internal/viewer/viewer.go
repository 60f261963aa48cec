// Package viewer runs the interactive meadow window.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/camera"
	"github.com/Faultbox/meadow/internal/engine/debug"
	"github.com/Faultbox/meadow/internal/engine/input"
	"github.com/Faultbox/meadow/internal/engine/renderer/glrender"
	"github.com/Faultbox/meadow/internal/engine/scene"
	"github.com/Faultbox/meadow/internal/engine/window"
	"github.com/Faultbox/meadow/internal/logger"
	"github.com/Faultbox/meadow/pkg/math"
)

const title = "Meadow"

// Viewer owns the window, the GL backend and the scene.
type Viewer struct {
	cfg *config.Config

	window      *window.Window
	gl          *glrender.GL
	input       *input.Input
	camera      *camera.OrbitCamera
	scene       *scene.Scene
	watcher     *config.Watcher
	screenshots *debug.ScreenshotCapture

	running bool
	start   time.Time
}

// New opens the window and sets the scene up. Everything is released if a
// step fails.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{cfg: cfg}

	var err error
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// GL backend needs the context created by the window
	dw, dh := v.window.DrawableSize()
	v.gl, err = glrender.New(dw, dh)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.gl.SetClearColor(cfg.Graphics.ClearColor)

	v.scene = scene.New(cfg.Scene)
	if err := v.scene.Setup(v.gl); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to set up scene: %w", err)
	}

	v.input = input.New()
	v.camera = camera.NewOrbitCamera(camera.Settings{
		FOV:             cfg.Camera.FOV,
		Near:            cfg.Camera.Near,
		Far:             cfg.Camera.Far,
		Distance:        cfg.Camera.Distance,
		Pitch:           cfg.Camera.Pitch,
		Yaw:             cfg.Camera.Yaw,
		DragSensitivity: cfg.Camera.DragSensitivity,
		ZoomSensitivity: cfg.Camera.ZoomSensitivity,
	})
	v.camera.SetViewport(dw, dh)
	if v.scene.Plane != nil {
		dims := v.scene.Plane.Dimensions()
		v.camera.Target = math.Vec3{X: dims.X / 2, Z: dims.Y / 2}
	}

	v.screenshots = debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "meadow",
		debug.Format(cfg.Graphics.ScreenshotFormat))

	if cfg.HotReload && cfg.Path != "" {
		v.watcher, err = config.Watch(cfg.Path)
		if err != nil {
			// the viewer still works without reload
			logger.Warn("config hot reload disabled", zap.String("path", cfg.Path), zap.Error(err))
		}
	}

	return v, nil
}

// Run blocks until the window is closed or ESC is pressed.
func (v *Viewer) Run() error {
	v.running = true
	v.start = time.Now()

	lastTime := v.start
	frameCount := 0
	fpsTimer := v.start

	var frameBudget time.Duration
	if v.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.cfg.Graphics.FPSLimit)
	}

	logger.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			break
		}
		v.handleEvents()
		v.applyConfigChanges()
		v.updateCamera(dt)

		v.gl.Begin()
		// the scene logs each distinct failure and retries next frame
		_ = v.scene.Render(scene.FrameContext{
			ViewProj: v.camera.ViewProj(),
			Time:     float32(now.Sub(v.start).Seconds()),
			Delta:    dt,
		})

		if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
			v.screenshot()
		}

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.window.SetTitle(fmt.Sprintf("%s - %d fps", title, frameCount))
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(now); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := v.window.DrawableSize()
			v.gl.Resize(w, h)
			v.camera.SetViewport(w, h)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_R:
				v.frameField()
			}
		}
	}
}

// applyConfigChanges hands the latest reloaded config, if any, to the scene.
func (v *Viewer) applyConfigChanges() {
	if v.watcher == nil {
		return
	}
	select {
	case cfg := <-v.watcher.Changes():
		logger.Debug("applying reloaded config", zap.String("path", cfg.Path))
		if err := v.scene.ParametersChanged(cfg.Scene); err != nil {
			logger.Error("failed to apply config", zap.Error(err))
		}
		v.gl.SetClearColor(cfg.Graphics.ClearColor)
	default:
	}
}

func (v *Viewer) updateCamera(dt float32) {
	if v.input.IsButtonDown(sdl.BUTTON_LEFT) || v.input.IsButtonDown(sdl.BUTTON_RIGHT) {
		dx, dy := v.input.MouseDelta()
		v.camera.HandleDrag(dx, dy)
	}
	if wheel := v.input.Wheel(); wheel != 0 {
		v.camera.HandleZoom(wheel)
	}

	forward := v.input.Axis(sdl.SCANCODE_W, sdl.SCANCODE_S)
	right := v.input.Axis(sdl.SCANCODE_D, sdl.SCANCODE_A)
	up := v.input.Axis(sdl.SCANCODE_E, sdl.SCANCODE_Q)
	if forward != 0 || right != 0 || up != 0 {
		v.camera.HandleMovement(forward, right, up, dt)
	}
}

// frameField points the camera at the ground plane.
func (v *Viewer) frameField() {
	var dims math.Vec2
	if v.scene.Plane != nil {
		dims = v.scene.Plane.Dimensions()
	}
	v.camera.FitBounds(math.Vec3{}, math.Vec3{X: dims.X, Y: 1, Z: dims.Y})
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.gl.ReadPixels()
	path, err := v.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases the scene, the GL backend and the window in that order.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.watcher != nil {
		if err := v.watcher.Close(); err != nil {
			logger.Warn("closing config watcher", zap.Error(err))
		}
		v.watcher = nil
	}
	if v.scene != nil {
		v.scene.Close()
		v.scene = nil
	}
	if v.gl != nil {
		v.gl.Close()
		v.gl = nil
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
}
