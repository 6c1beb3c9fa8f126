package convert

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/voxforge/headcast/pkg/bbmodel"
	"github.com/voxforge/headcast/pkg/geom"
	"github.com/voxforge/headcast/pkg/texture"
)

// Strategy names accepted by Options.Strategy.
const (
	StrategySmartCube = "smart_cube"
	StrategyStretch   = "stretch"
)

// ElementOutput is one element's conversion outcome.
type ElementOutput struct {
	Primitives []Primitive
	// Clamped is set when the subdivision plan hit the sub-cube ceiling.
	Clamped bool
	// SkipReason is non-empty when the element legitimately produced no
	// primitives (degenerate geometry, no visible faces).
	SkipReason string
}

// Strategy converts a single normalized element into primitives.
// Identical input yields an identical ordered primitive list.
type Strategy interface {
	Name() string
	Convert(el bbmodel.Element, modelCenter mgl32.Vec3) (ElementOutput, error)
}

func newStrategy(opts Options, sub *texture.Subdivider, factory *Factory, log *zap.SugaredLogger) (Strategy, error) {
	switch opts.Strategy {
	case StrategySmartCube:
		return &smartCubeStrategy{opts: opts, sub: sub, factory: factory, log: log}, nil
	case StrategyStretch:
		return &stretchStrategy{sub: sub, factory: factory, log: log}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, opts.Strategy)
	}
}

// stretchStrategy emits one head per element with each face's full UV
// rectangle distorted into its tile. Fast, low fidelity on non-square
// aspect ratios.
type stretchStrategy struct {
	sub     *texture.Subdivider
	factory *Factory
	log     *zap.SugaredLogger
}

func (s *stretchStrategy) Name() string { return StrategyStretch }

func (s *stretchStrategy) Convert(el bbmodel.Element, modelCenter mgl32.Vec3) (ElementOutput, error) {
	tiles := make(map[bbmodel.FaceID]*texture.Tile)
	for _, face := range bbmodel.FaceOrder {
		tile, err := s.sub.StretchTile(el, face)
		if err != nil {
			if errors.Is(err, texture.ErrDegenerateUVRect) {
				s.log.Debugw("skipping zero-area face", "element", el.Name, "face", face)
				continue
			}
			return ElementOutput{}, err
		}
		if tile != nil {
			tiles[face] = tile
		}
	}

	if len(tiles) == 0 {
		return ElementOutput{SkipReason: "no visible faces"}, nil
	}

	cell := geom.GridCell{Box: elementBounds(el)}
	return ElementOutput{
		Primitives: []Primitive{s.factory.Build(el, cell, tiles, modelCenter)},
	}, nil
}

// smartCubeStrategy subdivides the element into a grid of sub-cubes
// sized within the head budget, slicing each boundary face's texture
// into the matching tile. Interior grid faces are culled.
type smartCubeStrategy struct {
	opts    Options
	sub     *texture.Subdivider
	factory *Factory
	log     *zap.SugaredLogger
}

func (s *smartCubeStrategy) Name() string { return StrategySmartCube }

func (s *smartCubeStrategy) Convert(el bbmodel.Element, modelCenter mgl32.Vec3) (ElementOutput, error) {
	size := el.Size()
	class := Classify(size, s.opts.DegenerateEpsilon, s.opts.ElongationThreshold)
	plan := PlanSubdivision(size, class, s.opts.MaxHeadSize, s.opts.MaxSubCubes, s.opts.DegenerateEpsilon)

	if plan.Total() == 0 {
		s.log.Debugw("element contributes no volume", "element", el.Name, "class", class.String())
		return ElementOutput{SkipReason: "degenerate element with no face area"}, nil
	}
	if plan.Clamped {
		s.log.Warnw("capping subdivision plan",
			"element", el.Name,
			"counts", plan.Counts,
			"reason", ErrSubdivisionOverflow)
	}

	bounds := elementBounds(el)
	out := ElementOutput{Clamped: plan.Clamped}
	for _, cell := range geom.SubdivisionGrid(bounds, plan.Counts) {
		tiles := make(map[bbmodel.FaceID]*texture.Tile)
		for _, face := range visibleFaces(cell.Index, plan.Counts) {
			tile, err := s.sub.ResolveTile(el, face, cell, bounds)
			if err != nil {
				if errors.Is(err, texture.ErrDegenerateUVRect) {
					s.log.Debugw("skipping zero-area face", "element", el.Name, "face", face)
					continue
				}
				return ElementOutput{}, err
			}
			if tile != nil {
				tiles[face] = tile
			}
		}
		if len(tiles) == 0 {
			// Fully interior sub-cube, occluded by its neighbors.
			continue
		}
		out.Primitives = append(out.Primitives, s.factory.Build(el, cell, tiles, modelCenter))
	}

	if len(out.Primitives) == 0 {
		out.SkipReason = "no visible faces"
	}
	return out, nil
}

// visibleFaces returns the faces of a sub-cube that lie on the
// subdivision boundary. Faces between neighboring sub-cubes are never
// visible and produce no tiles.
func visibleFaces(index, counts [3]int) []bbmodel.FaceID {
	faces := make([]bbmodel.FaceID, 0, 6)
	if index[2] == 0 {
		faces = append(faces, bbmodel.FaceNorth)
	}
	if index[2] == counts[2]-1 {
		faces = append(faces, bbmodel.FaceSouth)
	}
	if index[0] == counts[0]-1 {
		faces = append(faces, bbmodel.FaceEast)
	}
	if index[0] == 0 {
		faces = append(faces, bbmodel.FaceWest)
	}
	if index[1] == counts[1]-1 {
		faces = append(faces, bbmodel.FaceUp)
	}
	if index[1] == 0 {
		faces = append(faces, bbmodel.FaceDown)
	}
	return faces
}
