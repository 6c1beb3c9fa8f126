package geom

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned box with Min componentwise <= Max.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABB builds a box from two opposite corners in any order.
func NewAABB(a, b mgl32.Vec3) AABB {
	var box AABB
	for i := 0; i < 3; i++ {
		if a[i] <= b[i] {
			box.Min[i] = a[i]
			box.Max[i] = b[i]
		} else {
			box.Min[i] = b[i]
			box.Max[i] = a[i]
		}
	}
	return box
}

// Size returns the per-axis extents of the box.
func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the geometric center of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extent returns the extent along a single axis.
func (b AABB) Extent(axis Axis) float32 {
	return b.Max[axis] - b.Min[axis]
}

// Union grows the box to contain other.
func (b AABB) Union(other AABB) AABB {
	out := b
	for i := 0; i < 3; i++ {
		if other.Min[i] < out.Min[i] {
			out.Min[i] = other.Min[i]
		}
		if other.Max[i] > out.Max[i] {
			out.Max[i] = other.Max[i]
		}
	}
	return out
}
