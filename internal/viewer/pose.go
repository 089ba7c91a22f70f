package viewer

import "github.com/Faultbox/objviewer/pkg/math"

// Start transform applied outside the model matrix when the initial pose is
// enabled. The angle is in radians.
const (
	initialRotation = 45
	initialScale    = 0.5
)

// InitialPose returns the start transform: a rotation about Z followed by a
// uniform half scale.
func InitialPose() math.Mat4 {
	return math.RotateAxis(math.UnitZ, initialRotation).Mul(math.ScaleUniform(initialScale))
}

// FitToView returns a transform that centers the box lo..hi on the origin and
// scales its largest extent to span [-1, 1]. A degenerate box is only centered.
func FitToView(lo, hi math.Vec3) math.Mat4 {
	center := lo.Add(hi).Scale(0.5)
	size := hi.Sub(lo)
	extent := max(size.X, size.Y, size.Z)

	fit := math.TranslateVec(center.Scale(-1))
	if extent <= 0 {
		return fit
	}
	return math.ScaleUniform(2 / extent).Mul(fit)
}
