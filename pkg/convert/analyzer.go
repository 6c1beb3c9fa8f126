// Package convert decomposes model elements into player-head
// primitives. Each element is classified by shape, planned into a
// sub-cube grid, sliced into per-face texture tiles and emitted as a
// list of placed heads. Elements are independent, so the converter
// fans the work out across a bounded worker pool.
package convert

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxforge/headcast/pkg/geom"
)

var (
	// ErrSubdivisionOverflow marks a subdivision plan that exceeded the
	// sub-cube ceiling and was capped.
	ErrSubdivisionOverflow = errors.New("convert: subdivision plan exceeds sub-cube ceiling")
	// ErrUnknownStrategy marks an unrecognized strategy name.
	ErrUnknownStrategy = errors.New("convert: unknown strategy")
)

// ShapeKind tags the gross shape of an element's extents.
type ShapeKind int

const (
	ShapeCube ShapeKind = iota
	ShapeFlatSlab
	ShapeElongated
	ShapeDegenerate
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCube:
		return "cube"
	case ShapeFlatSlab:
		return "flat_slab"
	case ShapeElongated:
		return "elongated"
	case ShapeDegenerate:
		return "degenerate"
	default:
		return "unknown"
	}
}

// ShapeClass is the derived classification of one element. Axis names
// the flat axis for flat slabs and the long axis for elongated boxes;
// it is meaningless for the other kinds.
type ShapeClass struct {
	Kind ShapeKind
	Axis geom.Axis
}

func (c ShapeClass) String() string {
	switch c.Kind {
	case ShapeFlatSlab, ShapeElongated:
		return fmt.Sprintf("%s(%s)", c.Kind, c.Axis)
	default:
		return c.Kind.String()
	}
}

// Classify derives the shape class from an element's extents. Exactly
// one class applies: two or more near-zero axes make the element
// degenerate, a single near-zero axis makes a flat slab, a max/min
// extent ratio above the elongation threshold makes an elongated box,
// anything else is a cube.
func Classify(size mgl32.Vec3, epsilon, elongationThreshold float32) ShapeClass {
	flatAxes := 0
	flatAxis := geom.AxisX
	for axis := geom.AxisX; axis <= geom.AxisZ; axis++ {
		if size[axis] <= epsilon {
			flatAxes++
			flatAxis = axis
		}
	}

	switch {
	case flatAxes >= 2:
		return ShapeClass{Kind: ShapeDegenerate}
	case flatAxes == 1:
		return ShapeClass{Kind: ShapeFlatSlab, Axis: flatAxis}
	}

	longAxis := geom.AxisX
	minExtent := size[0]
	for axis := geom.AxisY; axis <= geom.AxisZ; axis++ {
		if size[axis] > size[longAxis] {
			longAxis = axis
		}
		minExtent = math32.Min(minExtent, size[axis])
	}
	if size[longAxis]/minExtent > elongationThreshold {
		return ShapeClass{Kind: ShapeElongated, Axis: longAxis}
	}
	return ShapeClass{Kind: ShapeCube}
}
