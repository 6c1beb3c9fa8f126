package convert

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/png" // fallback textures are PNG files
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/voxforge/headcast/pkg/bbmodel"
	"github.com/voxforge/headcast/pkg/texture"
)

// Options are the conversion parameters. Immutable for the duration of
// a conversion pass.
type Options struct {
	Strategy            string
	MaxHeadSize         float32
	ElongationThreshold float32
	DegenerateEpsilon   float32
	Filter              texture.Filter
	// FallbackTexture optionally names a PNG substituted for missing
	// texture ids; empty selects the built-in placeholder.
	FallbackTexture string
	MaxSubCubes     int
	// Workers bounds the per-element goroutines; 0 means one per CPU.
	Workers int
}

// DefaultOptions returns the conversion defaults.
func DefaultOptions() Options {
	return Options{
		Strategy:            StrategySmartCube,
		MaxHeadSize:         32,
		ElongationThreshold: 3.0,
		DegenerateEpsilon:   1e-4,
		Filter:              texture.FilterNearest,
		MaxSubCubes:         4096,
	}
}

// Result is a completed conversion: the ordered primitive list plus
// the run report.
type Result struct {
	Primitives []Primitive
	Report     Report
}

// Converter runs the element pipeline over a whole model.
type Converter struct {
	opts Options
	log  *zap.SugaredLogger
}

// New builds a converter. A nil logger disables logging.
func New(opts Options, log *zap.SugaredLogger) *Converter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Converter{opts: opts, log: log}
}

// Convert decomposes every element of the model into head primitives.
// Element failures are isolated and reported; only unusable inputs and
// cancellation abort the run. Output order follows element order
// regardless of worker scheduling.
func (c *Converter) Convert(ctx context.Context, model *bbmodel.Model) (*Result, error) {
	start := time.Now()

	sources, err := model.DecodeTextures()
	if err != nil {
		// Unreadable sources degrade those faces to the fallback.
		c.log.Warnw("some textures failed to decode", "error", err)
	}
	fallback, err := c.loadFallback()
	if err != nil {
		return nil, err
	}

	mgr := texture.NewManager(sources, fallback)
	sub := texture.NewSubdivider(mgr, c.opts.Filter)
	factory := NewFactory(c.opts.Filter)
	strategy, err := newStrategy(c.opts, sub, factory, c.log)
	if err != nil {
		return nil, err
	}

	center := ModelCenter(model.Elements)
	c.log.Infow("starting conversion",
		"model", model.Name,
		"elements", len(model.Elements),
		"strategy", strategy.Name(),
		"center", center)

	outcomes := c.runElements(ctx, strategy, model.Elements, center)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	result := &Result{Report: NewReport(model.Name, len(model.Elements))}
	for i, outcome := range outcomes {
		name := model.Elements[i].Name
		switch {
		case outcome.err != nil:
			c.log.Warnw("skipping element", "element", name, "error", outcome.err)
			result.Report.Skipped = append(result.Report.Skipped, SkippedElement{
				Name: name, Reason: outcome.err.Error(),
			})
		case outcome.out.SkipReason != "":
			c.log.Debugw("element produced no primitives", "element", name, "reason", outcome.out.SkipReason)
			result.Report.Skipped = append(result.Report.Skipped, SkippedElement{
				Name: name, Reason: outcome.out.SkipReason,
			})
		default:
			if outcome.out.Clamped {
				result.Report.Clamped = append(result.Report.Clamped, name)
			}
			for _, p := range outcome.out.Primitives {
				if p.Degraded {
					result.Report.DegradedHeads++
				}
			}
			result.Primitives = append(result.Primitives, outcome.out.Primitives...)
		}
	}

	result.Report.Primitives = len(result.Primitives)
	result.Report.Duration = time.Since(start)
	c.log.Infow("conversion finished",
		"run", result.Report.RunID,
		"primitives", result.Report.Primitives,
		"skipped", len(result.Report.Skipped),
		"duration", result.Report.Duration)
	return result, nil
}

type elementOutcome struct {
	out ElementOutput
	err error
}

// runElements fans element conversion out over a bounded worker pool
// and collects outcomes indexed by element position. Cancellation is
// cooperative between elements.
func (c *Converter) runElements(ctx context.Context, strategy Strategy, elements []bbmodel.Element, center mgl32.Vec3) []elementOutcome {
	workers := c.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(elements) {
		workers = len(elements)
	}

	outcomes := make([]elementOutcome, len(elements))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				outcomes[i] = c.convertElement(strategy, elements[i], center)
			}
		}()
	}

	for i := range elements {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

func (c *Converter) convertElement(strategy Strategy, el bbmodel.Element, center mgl32.Vec3) elementOutcome {
	normalized := el.Normalized()
	if err := normalized.Validate(); err != nil {
		return elementOutcome{err: err}
	}
	out, err := strategy.Convert(normalized, center)
	return elementOutcome{out: out, err: err}
}

// loadFallback reads the configured fallback skin, or returns nil to
// select the built-in placeholder.
func (c *Converter) loadFallback() (*image.RGBA, error) {
	if c.opts.FallbackTexture == "" {
		return nil, nil
	}

	f, err := os.Open(c.opts.FallbackTexture)
	if err != nil {
		return nil, fmt.Errorf("convert: opening fallback texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("convert: decoding fallback texture %s: %w", c.opts.FallbackTexture, err)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}
