package viewer

import (
	"fmt"

	"github.com/Faultbox/objviewer/pkg/math"
)

// Axis selects the unit axis a rotate or translate mode acts on.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

// String returns the axis letter.
func (a Axis) String() string {
	switch a {
	case AxisNone:
		return "None"
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Unit returns the unit vector for the axis, or zero for AxisNone.
func (a Axis) Unit() math.Vec3 {
	switch a {
	case AxisX:
		return math.UnitX
	case AxisY:
		return math.UnitY
	case AxisZ:
		return math.UnitZ
	default:
		return math.Vec3{}
	}
}

// ModeKind identifies the interaction mode without its axis.
type ModeKind int

const (
	KindView ModeKind = iota
	KindRotate
	KindScale
	KindTranslate
)

// String returns a human-readable mode name.
func (k ModeKind) String() string {
	switch k {
	case KindView:
		return "View"
	case KindRotate:
		return "Rotate"
	case KindScale:
		return "Scale"
	case KindTranslate:
		return "Translate"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Mode is the current interaction mode. Rotate and Translate always carry an
// axis in X..Z; View and Scale never carry one. Build values with the
// constructors below.
type Mode struct {
	kind ModeKind
	axis Axis
}

// ViewMode returns the idle mode.
func ViewMode() Mode {
	return Mode{kind: KindView}
}

// ScaleMode returns the uniform scale mode.
func ScaleMode() Mode {
	return Mode{kind: KindScale}
}

// RotateMode returns rotation about axis. AxisNone yields ViewMode.
func RotateMode(axis Axis) Mode {
	return axisMode(KindRotate, axis)
}

// TranslateMode returns translation along axis. AxisNone yields ViewMode.
func TranslateMode(axis Axis) Mode {
	return axisMode(KindTranslate, axis)
}

func axisMode(kind ModeKind, axis Axis) Mode {
	if axis < AxisX || axis > AxisZ {
		return ViewMode()
	}
	return Mode{kind: kind, axis: axis}
}

// Kind returns the mode without its axis.
func (m Mode) Kind() ModeKind {
	return m.kind
}

// Axis returns the active axis, AxisNone for View and Scale.
func (m Mode) Axis() Axis {
	return m.axis
}

// String returns e.g. "Rotate(Y)" or "Scale".
func (m Mode) String() string {
	if m.axis == AxisNone {
		return m.kind.String()
	}
	return fmt.Sprintf("%s(%s)", m.kind, m.axis)
}

// cycle advances an axis-carrying mode X -> Y -> Z -> View. From any other
// mode it enters kind on X.
func (m Mode) cycle(kind ModeKind) Mode {
	if m.kind != kind {
		return axisMode(kind, AxisX)
	}
	return axisMode(kind, m.axis+1)
}
