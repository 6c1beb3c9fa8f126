package texture

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
	xdraw "golang.org/x/image/draw"

	"github.com/voxforge/headcast/pkg/bbmodel"
	"github.com/voxforge/headcast/pkg/geom"
)

// Tile is one 32x32 resampled texture patch for a single face of a
// single sub-cube, with provenance of where its pixels came from.
type Tile struct {
	Face       bbmodel.FaceID
	Image      *image.RGBA
	TextureID  int // -1 when the fallback was substituted
	SourceRect image.Rectangle
	GridIndex  [3]int
	Degraded   bool
}

// Subdivider slices element face textures into per-sub-cube tiles.
type Subdivider struct {
	mgr    *Manager
	filter Filter
}

// NewSubdivider builds a subdivider over mgr using the given filter.
func NewSubdivider(mgr *Manager, filter Filter) *Subdivider {
	return &Subdivider{mgr: mgr, filter: filter}
}

// ResolveTile produces the tile for one face of one sub-cube. The
// fractional sub-rectangle within the face's UV rectangle is
// proportional to the sub-cube's position and extent along the two axes
// spanning that face.
//
// Returns (nil, nil) when the face is absent from the element, and
// ErrDegenerateUVRect when the declared UV rectangle has zero area.
// A missing source texture degrades to the fallback with Degraded set.
func (s *Subdivider) ResolveTile(el bbmodel.Element, face bbmodel.FaceID, cell geom.GridCell, bounds geom.AABB) (*Tile, error) {
	f := el.VisibleFace(face)
	if f == nil {
		return nil, nil
	}
	span := faceSpan(face, cell, bounds)
	return s.slice(f, face, span, cell.Index)
}

// StretchTile produces the tile for one face of the whole element: the
// full UV rectangle resampled (distorted, not cropped) to the tile
// size. This is the stretch strategy's slicing path.
func (s *Subdivider) StretchTile(el bbmodel.Element, face bbmodel.FaceID) (*Tile, error) {
	f := el.VisibleFace(face)
	if f == nil {
		return nil, nil
	}
	return s.slice(f, face, uvSpan{0, 1, 0, 1}, [3]int{})
}

func (s *Subdivider) slice(f *bbmodel.Face, face bbmodel.FaceID, span uvSpan, index [3]int) (*Tile, error) {
	umin, vmin, umax, vmax, mirrorU, mirrorV := f.UVRect()
	if (umax-umin)*(vmax-vmin) <= 0 {
		return nil, fmt.Errorf("%w: face %s", ErrDegenerateUVRect, face)
	}

	// A mirrored face runs across the normalized rect in reverse, so a
	// sub-cube's window sits at the far side of it. The flip below then
	// restores pixel order within the tile.
	if mirrorU {
		span.x0, span.x1 = 1-span.x1, 1-span.x0
	}
	if mirrorV {
		span.y0, span.y1 = 1-span.y1, 1-span.y0
	}

	src, err := s.mgr.Resolve(f.Texture)
	resolved := err == nil
	textureID := -1
	if resolved {
		textureID = f.Texture.ID
	}

	rect := pixelRect(src.Bounds(), umin, vmin, umax, vmax, span)
	if rect.Empty() {
		return nil, fmt.Errorf("%w: face %s maps outside the source", ErrDegenerateUVRect, face)
	}

	tileImg := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	s.filter.scaler().Scale(tileImg, tileImg.Bounds(), src, rect, xdraw.Src, nil)

	// Inverted UV corners declare a mirrored face.
	if mirrorU {
		tileImg = transform.FlipH(tileImg)
	}
	if mirrorV {
		tileImg = transform.FlipV(tileImg)
	}

	return &Tile{
		Face:       face,
		Image:      tileImg,
		TextureID:  textureID,
		SourceRect: rect,
		GridIndex:  index,
		Degraded:   !resolved,
	}, nil
}

// uvSpan is the fractional window [x0,x1]x[y0,y1] of a face's UV
// rectangle covered by one sub-cube.
type uvSpan struct {
	x0, x1 float32
	y0, y1 float32
}

// faceSpan maps a sub-cube's local bounds onto the face's UV window.
// The mirrored X mappings for north/east/up/down come from viewing
// those faces from outside the cuboid. A zero extent on a spanning axis
// (flat slabs) widens the window to the full face.
func faceSpan(face bbmodel.FaceID, cell geom.GridCell, bounds geom.AABB) uvSpan {
	size := bounds.Size()
	cx := cell.Box.Min.X() - bounds.Min.X()
	cy := cell.Box.Min.Y() - bounds.Min.Y()
	cz := cell.Box.Min.Z() - bounds.Min.Z()
	cw := cell.Box.Extent(geom.AxisX)
	ch := cell.Box.Extent(geom.AxisY)
	cd := cell.Box.Extent(geom.AxisZ)
	w, h, d := size.X(), size.Y(), size.Z()

	frac := func(lo, span, total float32, invert bool) (float32, float32) {
		if total <= geom.Epsilon {
			return 0, 1
		}
		a := lo / total
		b := (lo + span) / total
		if invert {
			a, b = 1-b, 1-a
		}
		return a, b
	}

	var span uvSpan
	switch face {
	case bbmodel.FaceNorth:
		span.x0, span.x1 = frac(cx, cw, w, true)
		span.y0, span.y1 = frac(cy, ch, h, true)
	case bbmodel.FaceSouth:
		span.x0, span.x1 = frac(cx, cw, w, false)
		span.y0, span.y1 = frac(cy, ch, h, true)
	case bbmodel.FaceEast:
		span.x0, span.x1 = frac(cz, cd, d, true)
		span.y0, span.y1 = frac(cy, ch, h, true)
	case bbmodel.FaceWest:
		span.x0, span.x1 = frac(cz, cd, d, false)
		span.y0, span.y1 = frac(cy, ch, h, true)
	case bbmodel.FaceUp:
		span.x0, span.x1 = frac(cx, cw, w, true)
		span.y0, span.y1 = frac(cz, cd, d, false)
	case bbmodel.FaceDown:
		span.x0, span.x1 = frac(cx, cw, w, true)
		span.y0, span.y1 = frac(cz, cd, d, true)
	default:
		span = uvSpan{0, 1, 0, 1}
	}
	return span
}

// pixelRect converts a UV window into an integer source rectangle,
// clamped to the image and at least one pixel on each side.
func pixelRect(src image.Rectangle, umin, vmin, umax, vmax float32, span uvSpan) image.Rectangle {
	uvW := umax - umin
	uvH := vmax - vmin

	left := int(umin + span.x0*uvW)
	right := int(roundf(umin + span.x1*uvW))
	top := int(vmin + span.y0*uvH)
	bottom := int(roundf(vmin + span.y1*uvH))

	if left < src.Min.X {
		left = src.Min.X
	}
	if top < src.Min.Y {
		top = src.Min.Y
	}
	if right > src.Max.X {
		right = src.Max.X
	}
	if bottom > src.Max.Y {
		bottom = src.Max.Y
	}
	if right <= left {
		right = left + 1
	}
	if bottom <= top {
		bottom = top + 1
	}
	return image.Rect(left, top, right, bottom).Intersect(src)
}

func roundf(v float32) float32 {
	if v >= 0 {
		return float32(int(v + 0.5))
	}
	return float32(int(v - 0.5))
}
