package bbmodel

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TextureRef is a texture id that Blockbench writes either as a JSON
// number or as a string, or leaves null for untextured faces.
type TextureRef struct {
	ID    int
	Valid bool
}

// UnmarshalJSON accepts a number, a numeric string, or null.
func (r *TextureRef) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*r = TextureRef{}
		return nil
	case float64:
		*r = TextureRef{ID: int(v), Valid: true}
		return nil
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: texture id %q", ErrBadTextureSource, v)
		}
		*r = TextureRef{ID: id, Valid: true}
		return nil
	default:
		return fmt.Errorf("%w: texture id of type %T", ErrBadTextureSource, raw)
	}
}

// MarshalJSON writes the id back as a number, or null when unset.
func (r TextureRef) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// Normalized returns a copy of the element with From componentwise <=
// To. Blockbench allows corners in either order; downstream geometry
// assumes they are sorted.
func (e Element) Normalized() Element {
	out := e
	for i := 0; i < 3; i++ {
		if out.From[i] > out.To[i] {
			out.From[i], out.To[i] = out.To[i], out.From[i]
		}
	}
	return out
}

// Validate rejects elements whose geometry cannot be converted. It
// expects a normalized element, so any remaining inversion or
// non-finite coordinate is a hard error for this element only.
func (e Element) Validate() error {
	for i := 0; i < 3; i++ {
		if math32.IsNaN(e.From[i]) || math32.IsInf(e.From[i], 0) ||
			math32.IsNaN(e.To[i]) || math32.IsInf(e.To[i], 0) {
			return fmt.Errorf("%w: %q has non-finite corner coordinates", ErrInvalidElement, e.Name)
		}
		if e.To[i] < e.From[i] {
			return fmt.Errorf("%w: %q has to < from on axis %d", ErrInvalidElement, e.Name, i)
		}
		if math32.IsNaN(e.Rotation[i]) || math32.IsInf(e.Rotation[i], 0) {
			return fmt.Errorf("%w: %q has non-finite rotation", ErrInvalidElement, e.Name)
		}
	}
	return nil
}

// Size returns the per-axis extents to - from.
func (e Element) Size() mgl32.Vec3 {
	return mgl32.Vec3{
		e.To[0] - e.From[0],
		e.To[1] - e.From[1],
		e.To[2] - e.From[2],
	}
}

// Pivot returns the rotation center: the declared origin when present,
// otherwise the element's geometric center.
func (e Element) Pivot() mgl32.Vec3 {
	if e.Origin != nil {
		return mgl32.Vec3{e.Origin[0], e.Origin[1], e.Origin[2]}
	}
	return mgl32.Vec3{
		(e.From[0] + e.To[0]) / 2,
		(e.From[1] + e.To[1]) / 2,
		(e.From[2] + e.To[2]) / 2,
	}
}

// RotationVec returns the rotation angles as a vector, in degrees.
func (e Element) RotationVec() mgl32.Vec3 {
	return mgl32.Vec3{e.Rotation[0], e.Rotation[1], e.Rotation[2]}
}

// VisibleFace returns the face entry for id, or nil when the face is
// absent or explicitly hidden.
func (e Element) VisibleFace(id FaceID) *Face {
	f, ok := e.Faces[id]
	if !ok {
		return nil
	}
	return f
}

// UVRect returns the face's UV rectangle normalized to umin <= umax,
// vmin <= vmax, plus mirror flags for axes declared inverted.
func (f *Face) UVRect() (umin, vmin, umax, vmax float32, mirrorU, mirrorV bool) {
	umin, umax = f.UV[0], f.UV[2]
	if umin > umax {
		umin, umax = umax, umin
		mirrorU = true
	}
	vmin, vmax = f.UV[1], f.UV[3]
	if vmin > vmax {
		vmin, vmax = vmax, vmin
		mirrorV = true
	}
	return
}

// UVArea returns the pixel area of the face's UV rectangle.
func (f *Face) UVArea() float32 {
	umin, vmin, umax, vmax, _, _ := f.UVRect()
	return (umax - umin) * (vmax - vmin)
}
