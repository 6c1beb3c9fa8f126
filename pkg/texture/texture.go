// Package texture resolves per-face UV rectangles of model elements
// into fixed-size tiles and paints them into the 64x64 player-head
// layout consumed by the output format.
//
// Source images are treated as immutable once registered; every tile is
// a freshly allocated copy, so slicing is safe to run concurrently
// across elements.
package texture

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/voxforge/headcast/pkg/bbmodel"
)

// Slicing errors. Both are recoverable: a missing texture degrades to
// the fallback, a degenerate UV rectangle skips the face.
var (
	ErrMissingTexture   = errors.New("texture: source texture not loaded")
	ErrDegenerateUVRect = errors.New("texture: zero-area uv rectangle")
)

// TileSize is the fixed edge length of every produced tile, matching
// the paintable head's active resolution.
const TileSize = 32

// Filter selects the resampling kernel used when scaling face regions.
type Filter string

const (
	// FilterNearest preserves blocky pixel-art edges and is the default.
	FilterNearest Filter = "nearest"
	// FilterArea averages source pixels; softer, fewer aliasing artifacts.
	FilterArea Filter = "area"
)

// ParseFilter validates a config string.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case FilterNearest, FilterArea:
		return Filter(s), nil
	case "":
		return FilterNearest, nil
	}
	return "", fmt.Errorf("texture: unknown resample filter %q", s)
}

func (f Filter) scaler() xdraw.Scaler {
	if f == FilterArea {
		return xdraw.ApproxBiLinear
	}
	return xdraw.NearestNeighbor
}

// Manager holds the read-only source images of one conversion pass,
// keyed by texture id, plus the fallback substituted for missing ids.
type Manager struct {
	sources  map[int]*image.RGBA
	fallback *image.RGBA
}

// NewManager builds a manager over decoded model textures. A nil
// fallback installs the built-in placeholder.
func NewManager(sources map[int]*image.RGBA, fallback *image.RGBA) *Manager {
	if fallback == nil {
		fallback = FallbackTexture()
	}
	if sources == nil {
		sources = map[int]*image.RGBA{}
	}
	return &Manager{sources: sources, fallback: fallback}
}

// Resolve maps a face's texture reference to a source image. The
// returned image is always usable: unresolvable references come back
// as the fallback together with an ErrMissingTexture error, so callers
// degrade rather than abort.
func (m *Manager) Resolve(ref bbmodel.TextureRef) (*image.RGBA, error) {
	if !ref.Valid {
		return m.fallback, fmt.Errorf("%w: face has no texture reference", ErrMissingTexture)
	}
	if img, ok := m.sources[ref.ID]; ok {
		return img, nil
	}
	return m.fallback, fmt.Errorf("%w: id %d", ErrMissingTexture, ref.ID)
}
