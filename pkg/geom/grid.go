package geom

import "github.com/go-gl/mathgl/mgl32"

// GridCell is one sub-box of a subdivision grid, carrying both its
// local-space bounds and its integer coordinates within the grid.
type GridCell struct {
	Box   AABB
	Index [3]int
}

// SubdivisionGrid partitions box into counts[0] x counts[1] x counts[2]
// equal sub-boxes in local (pre-rotation) space. Cells are enumerated in
// a fixed X-outer, Y-middle, Z-inner order so conversion output is
// reproducible. Counts below 1 are treated as 1.
func SubdivisionGrid(box AABB, counts [3]int) []GridCell {
	for i := range counts {
		if counts[i] < 1 {
			counts[i] = 1
		}
	}

	size := box.Size()
	step := mgl32.Vec3{
		size.X() / float32(counts[0]),
		size.Y() / float32(counts[1]),
		size.Z() / float32(counts[2]),
	}

	cells := make([]GridCell, 0, counts[0]*counts[1]*counts[2])
	for ix := 0; ix < counts[0]; ix++ {
		for iy := 0; iy < counts[1]; iy++ {
			for iz := 0; iz < counts[2]; iz++ {
				min := mgl32.Vec3{
					box.Min.X() + float32(ix)*step.X(),
					box.Min.Y() + float32(iy)*step.Y(),
					box.Min.Z() + float32(iz)*step.Z(),
				}
				max := mgl32.Vec3{
					min.X() + step.X(),
					min.Y() + step.Y(),
					min.Z() + step.Z(),
				}
				// Snap the last cell per axis to the box edge so float
				// accumulation cannot leave a sliver.
				if ix == counts[0]-1 {
					max[0] = box.Max.X()
				}
				if iy == counts[1]-1 {
					max[1] = box.Max.Y()
				}
				if iz == counts[2]-1 {
					max[2] = box.Max.Z()
				}
				cells = append(cells, GridCell{
					Box:   AABB{Min: min, Max: max},
					Index: [3]int{ix, iy, iz},
				})
			}
		}
	}
	return cells
}
