// Package app runs the viewer: it owns the window, the render loop and the
// transform session, and wires input commands to them.
package app

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/config"
	"github.com/Faultbox/objviewer/internal/engine/input"
	"github.com/Faultbox/objviewer/internal/engine/renderer"
	"github.com/Faultbox/objviewer/internal/engine/screenshot"
	"github.com/Faultbox/objviewer/internal/engine/watch"
	"github.com/Faultbox/objviewer/internal/engine/window"
	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/internal/viewer"
	"github.com/Faultbox/objviewer/pkg/math"
	"github.com/Faultbox/objviewer/pkg/obj"
)

const title = "OBJ Viewer"

// Shaders holds the GLSL sources for the solid-color pipeline.
type Shaders struct {
	Vertex   string
	Fragment string
}

// App is the running viewer.
type App struct {
	cfg       *config.Config
	modelPath string
	running   bool

	mesh    *obj.Mesh
	fit     math.Mat4
	session *viewer.Session

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	capture  *screenshot.Capture
	watcher  *watch.Watcher

	screenshotPending bool

	log *zap.Logger
}

// New opens the window and uploads mesh. modelPath is used for the window
// title and, when watching is enabled, for reloads.
func New(cfg *config.Config, modelPath string, mesh *obj.Mesh, shaders Shaders) (*App, error) {
	format, err := screenshot.ParseFormat(cfg.Screenshot.Format)
	if err != nil {
		return nil, err
	}

	a := newApp(cfg, modelPath, mesh)
	a.capture = screenshot.New(cfg.Screenshot.Dir, cfg.Screenshot.Prefix, format)

	a.log.Info("initializing viewer",
		zap.String("model", modelPath),
		zap.Int("faces", mesh.FaceCount()),
		zap.Int("vertices", mesh.VertexCount()),
	)

	// Window first: it creates the OpenGL context
	a.window, err = window.New(window.Config{
		Title:      a.windowTitle(),
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := a.window.GetDrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:          width,
		Height:         height,
		Background:     cfg.Graphics.Background,
		VertexShader:   shaders.Vertex,
		FragmentShader: shaders.Fragment,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := a.renderer.SetMesh(mesh); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to upload mesh: %w", err)
	}

	a.input = input.New(input.DefaultBindings())

	if cfg.Model.Watch && modelPath != "" {
		a.watcher, err = watch.New(modelPath, 0)
		if err != nil {
			// Viewing still works without reloads
			a.log.Warn("model watch disabled", zap.Error(err))
		}
	}

	a.log.Info("viewer initialized successfully")
	return a, nil
}

// newApp builds the state that does not need a GL context.
func newApp(cfg *config.Config, modelPath string, mesh *obj.Mesh) *App {
	opts := viewer.DefaultOptions()
	opts.MinScale = cfg.Controls.MinScale
	opts.MaxScale = cfg.Controls.MaxScale
	opts.TranslateXSign = cfg.Controls.TranslateXSign
	if cfg.Model.InitialPose {
		opts.World = viewer.InitialPose()
	}

	return &App{
		cfg:       cfg,
		modelPath: modelPath,
		mesh:      mesh,
		fit:       fitMatrix(mesh, cfg.Model.FitToView),
		session:   viewer.NewSession(opts),
		log:       logger.Named("app"),
	}
}

// Run starts the render loop and returns when the window is closed.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting render loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}
		for _, cmd := range a.input.Commands() {
			a.handle(cmd)
		}
		if !a.running {
			break
		}

		if a.watcher != nil && a.watcher.Changed() {
			a.reload()
		}

		a.session.Update(mouseSample(a.window.MouseOffset(), a.cfg.Controls.InvertY))

		a.render()

		if a.screenshotPending {
			a.screenshotPending = false
			a.saveScreenshot()
		}

		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Stringer("mode", a.session.Mode()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases the watcher, GL resources and the window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("closing watcher", zap.Error(err))
		}
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handle(cmd input.Command) {
	switch cmd.Type {
	case input.CommandQuit:
		a.running = false

	case input.CommandToggleRotate:
		a.modeChanged(a.session.ToggleRotate())
	case input.CommandToggleScale:
		a.modeChanged(a.session.ToggleScale())
	case input.CommandToggleTranslate:
		a.modeChanged(a.session.ToggleTranslate())

	case input.CommandColor:
		if !a.session.SelectColor(cmd.Preset) {
			a.log.Warn("unknown color preset", zap.Int("preset", cmd.Preset))
			return
		}
		a.log.Debug("color selected", zap.Int("preset", cmd.Preset))

	case input.CommandScreenshot:
		a.screenshotPending = true

	case input.CommandResize:
		// The event reports window size; GL wants pixels
		width, height := a.window.GetDrawableSize()
		a.renderer.Resize(width, height)
	}
}

func (a *App) modeChanged(mode viewer.Mode) {
	a.log.Debug("mode changed", zap.Stringer("mode", mode))
	if a.window != nil {
		a.window.SetTitle(a.windowTitle())
	}
}

func (a *App) windowTitle() string {
	name := filepath.Base(a.modelPath)
	if a.modelPath == "" {
		name = "untitled"
	}
	return fmt.Sprintf("%s - %s [%s]", title, name, a.session.Mode())
}

// drawMatrix fits the mesh first, so rotations and scaling act around its center.
func (a *App) drawMatrix() math.Mat4 {
	return a.session.Matrix().Mul(a.fit)
}

func (a *App) render() {
	a.renderer.Begin()
	a.renderer.Draw(a.drawMatrix(), a.session.Color().Array())
}

func (a *App) saveScreenshot() {
	pixels, width, height := a.renderer.ReadPixels()
	path, err := a.capture.CaptureFromPixels(pixels, width, height)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// reload replaces the mesh from disk. On failure the current mesh stays.
func (a *App) reload() {
	mesh, err := obj.Load(a.modelPath)
	if err != nil {
		a.log.Warn("model reload failed, keeping previous mesh", zap.Error(err))
		return
	}
	if err := a.renderer.SetMesh(mesh); err != nil {
		a.log.Warn("model upload failed", zap.Error(err))
		return
	}
	a.mesh = mesh
	a.fit = fitMatrix(mesh, a.cfg.Model.FitToView)
	a.log.Info("model reloaded",
		zap.String("path", a.modelPath),
		zap.Int("faces", mesh.FaceCount()),
	)
}

func fitMatrix(mesh *obj.Mesh, enabled bool) math.Mat4 {
	if !enabled || mesh.FaceCount() == 0 {
		return math.Identity()
	}
	return viewer.FitToView(mesh.Bounds())
}

// mouseSample converts a window offset (Y down) into a session sample.
func mouseSample(offset math.Vec2, invertY bool) math.Vec2 {
	if invertY {
		offset.Y = -offset.Y
	}
	return offset
}
