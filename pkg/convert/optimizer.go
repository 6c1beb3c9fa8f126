package convert

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxforge/headcast/pkg/geom"
)

// Plan is the per-axis sub-cube counts chosen for one element. A plan
// of all zeros means the element contributes no primitives.
type Plan struct {
	Counts  [3]int
	Clamped bool
}

// Total returns the number of sub-cubes the plan produces.
func (p Plan) Total() int {
	return p.Counts[0] * p.Counts[1] * p.Counts[2]
}

// PlanSubdivision chooses how many sub-cubes per axis so that no
// sub-cube extent exceeds maxHeadSize while keeping the total count
// minimal. Flat axes are never subdivided. Degenerate elements plan a
// single sub-cube when at least one face pair has area, zero
// otherwise. Plans whose total exceeds maxSubCubes are capped by
// coarsening the largest axis until the total fits; Clamped records
// that loss of fidelity.
func PlanSubdivision(size mgl32.Vec3, class ShapeClass, maxHeadSize float32, maxSubCubes int, epsilon float32) Plan {
	switch class.Kind {
	case ShapeDegenerate:
		areaXY := size.X() * size.Y()
		areaYZ := size.Y() * size.Z()
		areaXZ := size.X() * size.Z()
		if areaXY > epsilon*epsilon || areaYZ > epsilon*epsilon || areaXZ > epsilon*epsilon {
			return Plan{Counts: [3]int{1, 1, 1}}
		}
		return Plan{}
	case ShapeFlatSlab:
		plan := Plan{}
		for axis := geom.AxisX; axis <= geom.AxisZ; axis++ {
			if axis == class.Axis {
				plan.Counts[axis] = 1
			} else {
				plan.Counts[axis] = axisCount(size[axis], maxHeadSize)
			}
		}
		return clampPlan(plan, maxSubCubes)
	default:
		// Cube and elongated boxes use the same per-axis rule; an
		// elongated long axis simply needs more slices.
		plan := Plan{Counts: [3]int{
			axisCount(size.X(), maxHeadSize),
			axisCount(size.Y(), maxHeadSize),
			axisCount(size.Z(), maxHeadSize),
		}}
		return clampPlan(plan, maxSubCubes)
	}
}

// axisCount is ceil(extent/budget), at least 1. Extents that are an
// exact multiple of the budget do not gain an extra slice; anything
// over does, so no sub-cube ever exceeds the budget.
func axisCount(extent, maxHeadSize float32) int {
	n := int(math32.Ceil(extent / maxHeadSize))
	if n < 1 {
		return 1
	}
	return n
}

// clampPlan coarsens the largest axis until the total fits the
// ceiling. Ties break toward the lowest axis index, keeping plans
// deterministic.
func clampPlan(plan Plan, maxSubCubes int) Plan {
	for plan.Total() > maxSubCubes {
		largest := 0
		for axis := 1; axis < 3; axis++ {
			if plan.Counts[axis] > plan.Counts[largest] {
				largest = axis
			}
		}
		if plan.Counts[largest] <= 1 {
			break
		}
		plan.Counts[largest]--
		plan.Clamped = true
	}
	return plan
}
