// Package viewer wires the window, renderer, input and camera into the
// interactive viewing loop.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/t0yman/opengl-model-viewer/internal/config"
	"github.com/t0yman/opengl-model-viewer/internal/engine/camera"
	"github.com/t0yman/opengl-model-viewer/internal/engine/debug"
	"github.com/t0yman/opengl-model-viewer/internal/engine/input"
	"github.com/t0yman/opengl-model-viewer/internal/engine/model"
	"github.com/t0yman/opengl-model-viewer/internal/engine/renderer"
	"github.com/t0yman/opengl-model-viewer/internal/engine/window"
	"github.com/t0yman/opengl-model-viewer/internal/logger"
)

const baseTitle = "OpenGL Model Viewer"

// Viewer owns the application state for one viewing session.
type Viewer struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	orbit    camera.Orbit
	showFPS  bool

	screenshots   *debug.Screenshots
	captureQueued bool
}

// New creates the window and GL state and, when a model path is
// configured, loads the mesh. Errors during setup tear down whatever
// was already created.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config:  cfg,
		showFPS: cfg.Scene.ShowFPS,
	}

	win, err := window.New(window.Config{
		Title:      baseTitle,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	v.window = win

	// Render at the drawable resolution, which differs from the window
	// size on HiDPI displays.
	drawableW, drawableH := win.GetDrawableSize()
	rend, err := renderer.New(renderer.Config{
		Width:  drawableW,
		Height: drawableH,
	})
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	v.renderer = rend

	v.input = input.New()
	v.screenshots = debug.NewScreenshots("screenshots")

	v.orbit = camera.NewOrbit()
	v.orbit.Distance = cfg.Camera.Distance
	v.orbit.Azimuth = mgl32.DegToRad(cfg.Camera.Azimuth)
	v.orbit.Elevation = mgl32.DegToRad(cfg.Camera.Elevation)

	if cfg.Scene.Model != "" {
		if err := v.loadModel(cfg.Scene.Model); err != nil {
			v.renderer.Close()
			v.window.Close()
			return nil, err
		}
	}

	logger.Info("viewer initialized")
	return v, nil
}

// loadModel reads an OBJ file, uploads it to the GPU and retitles the
// window after the file.
func (v *Viewer) loadModel(path string) error {
	mesh, err := model.LoadFile(path)
	if err != nil {
		return fmt.Errorf("loading model %s: %w", path, err)
	}

	v.renderer.SetMesh(mesh)
	v.window.SetTitle(fmt.Sprintf("%s - %s", baseTitle, filepath.Base(path)))

	size := mesh.Bounds.Size()
	logger.Info("model loaded",
		zap.String("path", path),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Float32("width", size.X()),
		zap.Float32("height", size.Y()),
		zap.Float32("depth", size.Z()))
	return nil
}

// Run drives the frame loop until the window is closed or Escape is
// pressed.
func (v *Viewer) Run() error {
	v.running = true
	logger.Info("starting viewer loop")

	lastFrame := time.Now()
	fpsTimer := time.Now()
	frameCount := 0

	for v.running {
		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		v.update(float32(dt))
		v.render()
		if v.captureQueued {
			v.captureScreenshot()
			v.captureQueued = false
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if v.showFPS {
				logger.Info("fps", zap.Int("frames", frameCount), zap.Float64("frame_ms", dt*1000))
			} else {
				logger.Debug("fps", zap.Int("frames", frameCount), zap.Float64("frame_ms", dt*1000))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	logger.Info("viewer loop ended")
	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		if event.Type == input.EventWindowResize {
			v.renderer.Resize(v.window.GetDrawableSize())
		}
	}

	if v.input.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		v.running = false
	}
	if v.input.IsKeyPressed(sdl.SCANCODE_B) {
		visible := v.renderer.ToggleBounds()
		logger.Debug("bounding box toggled", zap.Bool("visible", visible))
	}
	if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
		// Capture after this frame renders, before the swap.
		v.captureQueued = true
	}
}

func (v *Viewer) captureScreenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.screenshots.SavePNG(pixels, width, height)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// update advances the orbit from the keys held this frame. A and D
// swing the camera around the model, Q and E raise and lower it, W and
// S move it closer and further.
func (v *Viewer) update(dt float32) {
	intents := camera.Intents{
		RotateLeft:  v.input.IsKeyHeld(sdl.SCANCODE_A),
		RotateRight: v.input.IsKeyHeld(sdl.SCANCODE_D),
		RotateUp:    v.input.IsKeyHeld(sdl.SCANCODE_Q),
		RotateDown:  v.input.IsKeyHeld(sdl.SCANCODE_E),
		ZoomIn:      v.input.IsKeyHeld(sdl.SCANCODE_W),
		ZoomOut:     v.input.IsKeyHeld(sdl.SCANCODE_S),
	}
	v.orbit = v.orbit.Update(intents, dt)
}

func (v *Viewer) render() {
	v.renderer.Begin()
	v.renderer.Draw(v.orbit.ViewMatrix())
}

// Close releases the renderer and window.
func (v *Viewer) Close() {
	logger.Info("shutting down viewer")
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
