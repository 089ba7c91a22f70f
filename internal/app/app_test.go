package app

import (
	"testing"

	"github.com/Faultbox/objviewer/internal/config"
	"github.com/Faultbox/objviewer/internal/engine/input"
	"github.com/Faultbox/objviewer/internal/viewer"
	"github.com/Faultbox/objviewer/pkg/math"
	"github.com/Faultbox/objviewer/pkg/obj"
)

const triangle = `
v 0 0 0
v 4 0 0
v 0 2 0
f 1 2 3
`

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	mesh, err := obj.ParseBytes([]byte(triangle))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	return newApp(cfg, "models/tri.obj", mesh)
}

func TestHandleModeCommands(t *testing.T) {
	a := newTestApp(t, config.Default())

	steps := []struct {
		cmd  input.CommandType
		want viewer.Mode
	}{
		{input.CommandToggleRotate, viewer.RotateMode(viewer.AxisX)},
		{input.CommandToggleRotate, viewer.RotateMode(viewer.AxisY)},
		{input.CommandToggleTranslate, viewer.TranslateMode(viewer.AxisX)},
		{input.CommandToggleScale, viewer.ScaleMode()},
		{input.CommandToggleScale, viewer.ViewMode()},
	}

	for i, s := range steps {
		a.handle(input.Command{Type: s.cmd})
		if got := a.session.Mode(); got != s.want {
			t.Fatalf("step %d (%v): mode = %v, want %v", i, s.cmd, got, s.want)
		}
	}
}

func TestHandleColorAndScreenshot(t *testing.T) {
	a := newTestApp(t, config.Default())

	a.handle(input.Command{Type: input.CommandColor, Preset: 2})
	if want, _ := viewer.Preset(2); a.session.Color() != want {
		t.Errorf("color = %v, want %v", a.session.Color(), want)
	}

	a.handle(input.Command{Type: input.CommandColor, Preset: 9})
	if want, _ := viewer.Preset(2); a.session.Color() != want {
		t.Errorf("unknown preset changed color to %v", a.session.Color())
	}

	a.handle(input.Command{Type: input.CommandScreenshot})
	if !a.screenshotPending {
		t.Error("screenshot command should queue a capture")
	}
}

func TestHandleQuit(t *testing.T) {
	a := newTestApp(t, config.Default())
	a.running = true

	a.handle(input.Command{Type: input.CommandQuit})
	if a.running {
		t.Error("quit command should stop the loop")
	}
}

func TestNewAppAppliesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Model.InitialPose = false
	cfg.Model.FitToView = false
	a := newTestApp(t, cfg)

	if a.drawMatrix() != math.Identity() {
		t.Errorf("without pose or fit the draw matrix should be identity, got %v", a.drawMatrix())
	}

	cfg = config.Default()
	a = newTestApp(t, cfg)
	lo, hi := a.mesh.Bounds()
	want := viewer.InitialPose().Mul(viewer.FitToView(lo, hi))
	if !a.drawMatrix().ApproxEqual(want, 1e-6) {
		t.Errorf("draw matrix = %v, want %v", a.drawMatrix(), want)
	}
}

func TestWindowTitle(t *testing.T) {
	a := newTestApp(t, config.Default())
	if got, want := a.windowTitle(), "OBJ Viewer - tri.obj [View]"; got != want {
		t.Errorf("title = %q, want %q", got, want)
	}

	a.handle(input.Command{Type: input.CommandToggleTranslate})
	if got, want := a.windowTitle(), "OBJ Viewer - tri.obj [Translate(X)]"; got != want {
		t.Errorf("title = %q, want %q", got, want)
	}
}

func TestFitMatrixEmptyMesh(t *testing.T) {
	mesh, err := obj.ParseBytes(nil)
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if got := fitMatrix(mesh, true); got != math.Identity() {
		t.Errorf("empty mesh fit = %v, want identity", got)
	}
}

func TestMouseSample(t *testing.T) {
	offset := math.Vec2{X: 3, Y: -4}
	if got := mouseSample(offset, false); got != offset {
		t.Errorf("mouseSample(no invert) = %v", got)
	}
	if got := mouseSample(offset, true); got != (math.Vec2{X: 3, Y: 4}) {
		t.Errorf("mouseSample(invert) = %v", got)
	}
}
