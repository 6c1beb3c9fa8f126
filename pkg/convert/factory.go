package convert

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxforge/headcast/pkg/bbmodel"
	"github.com/voxforge/headcast/pkg/bdengine"
	"github.com/voxforge/headcast/pkg/geom"
	"github.com/voxforge/headcast/pkg/texture"
)

// Primitive is one output head: world placement plus the painted skin
// assembled from its visible-face tiles. Immutable once built.
type Primitive struct {
	Element   string
	GridIndex [3]int
	// Position is the head anchor (center of the top face) in blocks,
	// relative to the model center.
	Position mgl32.Vec3
	// Scale is the sub-cube extents over the head's native size,
	// clamped to the engine minimum.
	Scale mgl32.Vec3
	// Rotation is the element's composed rotation, shared by every
	// sub-cube of the element.
	Rotation mgl32.Mat3
	// Texture is the painted 64x64 head skin.
	Texture *image.RGBA
	Tiles   map[bbmodel.FaceID]*texture.Tile
	// Degraded is set when any tile fell back to the placeholder.
	Degraded bool
}

// Factory builds primitives from planned sub-cubes and their tiles.
type Factory struct {
	filter texture.Filter
}

// NewFactory returns a factory painting head skins with the given
// resample filter.
func NewFactory(filter texture.Filter) *Factory {
	return &Factory{filter: filter}
}

// Build places one sub-cube as a head primitive. The sub-cube center
// is rotated about the element pivot, then moved up half the sub-cube
// height along the rotated Y axis to reach the head's top-face anchor.
func (f *Factory) Build(el bbmodel.Element, cell geom.GridCell, tiles map[bbmodel.FaceID]*texture.Tile, modelCenter mgl32.Vec3) Primitive {
	rot := mgl32.Ident3()
	if rotDeg := el.RotationVec(); !geom.IsZeroRotation(rotDeg) {
		rot = geom.ComposeRotation(rotDeg)
	}
	worldCenter := geom.RotateAboutPivot(cell.Box.Center(), el.Pivot(), rot)

	halfUp := mgl32.Vec3{0, cell.Box.Extent(geom.AxisY) / 2, 0}
	anchor := worldCenter.Add(rot.Mul3x1(halfUp))
	position := anchor.Sub(modelCenter).Mul(1.0 / bdengine.PixelsPerBlock)

	size := cell.Box.Size()
	scale := mgl32.Vec3{
		math32.Max(size.X()/bdengine.HeadNativeSize, bdengine.MinScale),
		math32.Max(size.Y()/bdengine.HeadNativeSize, bdengine.MinScale),
		math32.Max(size.Z()/bdengine.HeadNativeSize, bdengine.MinScale),
	}

	degraded := false
	for _, tile := range tiles {
		if tile != nil && tile.Degraded {
			degraded = true
			break
		}
	}

	return Primitive{
		Element:   el.Name,
		GridIndex: cell.Index,
		Position:  position,
		Scale:     scale,
		Rotation:  rot,
		Texture:   texture.PaintHead(tiles, f.filter),
		Tiles:     tiles,
		Degraded:  degraded,
	}
}

// ModelCenter returns the reference point output positions are
// relative to: the footprint center of all elements, at base height,
// so a converted model stands on its origin.
func ModelCenter(elements []bbmodel.Element) mgl32.Vec3 {
	if len(elements) == 0 {
		return mgl32.Vec3{}
	}

	bounds := elementBounds(elements[0])
	for _, el := range elements[1:] {
		bounds = bounds.Union(elementBounds(el))
	}

	c := bounds.Center()
	return mgl32.Vec3{c.X(), bounds.Min.Y(), c.Z()}
}

func elementBounds(el bbmodel.Element) geom.AABB {
	n := el.Normalized()
	return geom.NewAABB(
		mgl32.Vec3{n.From[0], n.From[1], n.From[2]},
		mgl32.Vec3{n.To[0], n.To[1], n.To[2]},
	)
}
