package bdengine

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a 4x4 affine matrix in row-major order, the layout the
// project format stores. Rotation columns are pre-multiplied by the
// per-axis scales; the fourth column is the translation in blocks.
type Transform [16]float32

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Compose builds a transform from a rotation matrix, per-axis scales
// and a position. Scales below MinScale are raised to it.
func Compose(rot mgl32.Mat3, scale, pos mgl32.Vec3) Transform {
	sx := math32.Max(scale.X(), MinScale)
	sy := math32.Max(scale.Y(), MinScale)
	sz := math32.Max(scale.Z(), MinScale)

	return Transform{
		rot.At(0, 0) * sx, rot.At(0, 1) * sy, rot.At(0, 2) * sz, pos.X(),
		rot.At(1, 0) * sx, rot.At(1, 1) * sy, rot.At(1, 2) * sz, pos.Y(),
		rot.At(2, 0) * sx, rot.At(2, 1) * sy, rot.At(2, 2) * sz, pos.Z(),
		0, 0, 0, 1,
	}
}

// Position returns the translation column.
func (t Transform) Position() mgl32.Vec3 {
	return mgl32.Vec3{t[3], t[7], t[11]}
}

// ScaleOf returns the per-axis scales encoded in the rotation columns.
func (t Transform) ScaleOf() mgl32.Vec3 {
	col := func(i int) float32 {
		return math32.Sqrt(t[i]*t[i] + t[i+4]*t[i+4] + t[i+8]*t[i+8])
	}
	return mgl32.Vec3{col(0), col(1), col(2)}
}
