// Package geom provides the geometry primitives used by the conversion
// pipeline: rotation composition, pivot transforms, axis-aligned boxes
// and subdivision grids. All math is float32 via mgl32.
package geom

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the tolerance used for degeneracy checks on model-space
// extents. Blockbench files carry float round-off from editing, so
// comparisons against zero go through this instead of exact equality.
const Epsilon float32 = 1e-4

// Axis identifies one model-space axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

// ComposeRotation builds the rotation matrix for per-axis Blockbench
// angles given in degrees. The composition is Ry * Rx * Rz, so a column
// vector is rotated about Z first, then X, then Y. This order is part
// of the file-format contract and must not be reordered.
func ComposeRotation(rotDeg mgl32.Vec3) mgl32.Mat3 {
	rx := mgl32.DegToRad(rotDeg.X())
	ry := mgl32.DegToRad(rotDeg.Y())
	rz := mgl32.DegToRad(rotDeg.Z())
	return mgl32.Rotate3DY(ry).Mul3(mgl32.Rotate3DX(rx)).Mul3(mgl32.Rotate3DZ(rz))
}

// TransformPoint applies a rigid transform to p:
//
//	p' = translation + m * (p - pivot)
func TransformPoint(p, pivot, translation mgl32.Vec3, m mgl32.Mat3) mgl32.Vec3 {
	return translation.Add(m.Mul3x1(p.Sub(pivot)))
}

// RotateAboutPivot rotates p about pivot, leaving it in the same space.
// Equivalent to TransformPoint with translation == pivot.
func RotateAboutPivot(p, pivot mgl32.Vec3, m mgl32.Mat3) mgl32.Vec3 {
	return TransformPoint(p, pivot, pivot, m)
}

// IsZeroRotation reports whether all three angles are zero within
// Epsilon, letting callers skip matrix work for the common case.
func IsZeroRotation(rotDeg mgl32.Vec3) bool {
	return absf(rotDeg.X()) < Epsilon && absf(rotDeg.Y()) < Epsilon && absf(rotDeg.Z()) < Epsilon
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
