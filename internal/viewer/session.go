// Package viewer implements the interactive transform state of the model viewer:
// the current mode, its axis, and the model matrix it drives.
package viewer

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/objviewer/pkg/math"
)

// Mouse response constants.
const (
	offsetBias       = 0.5  // Added to the signed radius before rotate/translate
	rotateDivisor    = 50.0 // Radius units per radian
	translateDivisor = 75.0 // Radius units per translate step
	translateStep    = 0.25 // Model-space distance per step
	scaleBase        = 0.75 // Scale factor at the screen center
)

// Options configures a Session.
type Options struct {
	MinScale float32 // Lower bound for the accumulated scale
	MaxScale float32 // Upper bound for the accumulated scale

	// TranslateXSign multiplies translation along X. The classic control
	// scheme moves X opposite to Y and Z (-1); 1 unifies the convention.
	TranslateXSign float32

	// World is applied outside the model matrix, e.g. an initial pose.
	World math.Mat4
}

// DefaultOptions returns the standard control limits.
func DefaultOptions() Options {
	return Options{
		MinScale:       0.25,
		MaxScale:       2.0,
		TranslateXSign: -1,
		World:          math.Identity(),
	}
}

// Session is the transform state of one viewer run. It is owned by the render
// loop and is not safe for concurrent use.
type Session struct {
	opts Options

	mode     Mode
	scale    float32   // Accumulated uniform scale
	position math.Vec3 // Accumulated translation
	model    math.Mat4
	color    Color
}

// NewSession creates a session in View mode with an identity model matrix.
func NewSession(opts Options) *Session {
	color, _ := Preset(DefaultPreset)
	return &Session{
		opts:  opts,
		mode:  ViewMode(),
		scale: 1,
		model: math.Identity(),
		color: color,
	}
}

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Scale returns the accumulated uniform scale factor.
func (s *Session) Scale() float32 { return s.scale }

// Position returns the accumulated translation.
func (s *Session) Position() math.Vec3 { return s.position }

// Model returns the model matrix.
func (s *Session) Model() math.Mat4 { return s.model }

// Color returns the selected object color.
func (s *Session) Color() Color { return s.color }

// Matrix returns the matrix handed to the renderer: World * Model.
func (s *Session) Matrix() math.Mat4 {
	return s.opts.World.Mul(s.model)
}

// ToggleRotate steps rotation through X, Y, Z and back to View.
func (s *Session) ToggleRotate() Mode {
	s.mode = s.mode.cycle(KindRotate)
	return s.mode
}

// ToggleTranslate steps translation through X, Y, Z and back to View.
func (s *Session) ToggleTranslate() Mode {
	s.mode = s.mode.cycle(KindTranslate)
	return s.mode
}

// ToggleScale switches between Scale and View. From Rotate or Translate it
// enters Scale.
func (s *Session) ToggleScale() Mode {
	if s.mode.Kind() == KindScale {
		s.mode = ViewMode()
	} else {
		s.mode = ScaleMode()
	}
	return s.mode
}

// SelectColor switches to the 1-based color preset n. It reports false and
// leaves the color unchanged for an unknown preset.
func (s *Session) SelectColor(n int) bool {
	c, ok := Preset(n)
	if ok {
		s.color = c
	}
	return ok
}

// Update applies one frame of mouse input, given as the cursor offset from the
// screen center, and returns the resulting render matrix. A zero offset never
// changes the state.
func (s *Session) Update(offset math.Vec2) math.Mat4 {
	if offset.IsZero() || s.mode.Kind() == KindView {
		return s.Matrix()
	}

	sign := float32(1)
	if offset.X < 0 || offset.Y < 0 {
		sign = -1
	}
	radius := offset.Length()

	switch s.mode.Kind() {
	case KindRotate:
		angle := (radius*sign + offsetBias) / rotateDivisor
		// Post-multiplied like glm::rotate: the rotation acts in model space
		s.model = s.model.Mul(math.RotateAxis(s.mode.Axis().Unit(), angle))

	case KindScale:
		factor := math32.Sqrt(math32.Abs(offset.X*offset.X)+math32.Abs(offset.Y*offset.Y))/2 + scaleBase
		s.applyScale(factor)

	case KindTranslate:
		delta := (radius*sign + offsetBias) / translateDivisor
		axis := s.mode.Axis()
		k := float32(translateStep)
		if axis == AxisX {
			k *= s.opts.TranslateXSign
		}
		unit := axis.Unit()
		s.model = s.model.Mul(math.TranslateVec(unit.Scale(delta * k)))
		s.position = s.position.Add(unit.Scale(delta))
	}

	return s.Matrix()
}

// applyScale multiplies the model by factor unless that would move the
// accumulated scale past the bound it is heading towards.
func (s *Session) applyScale(factor float32) bool {
	next := s.scale * factor
	if factor > 1 && next > s.opts.MaxScale {
		return false
	}
	if factor < 1 && next < s.opts.MinScale {
		return false
	}
	s.model = s.model.Mul(math.ScaleUniform(factor))
	s.scale = next
	return true
}
