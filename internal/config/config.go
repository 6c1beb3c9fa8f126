// Package config handles converter configuration loading and
// management. The resulting Config is treated as immutable for the
// duration of a conversion pass and is passed explicitly into every
// pipeline stage.
package config

import "fmt"

// Config holds all converter settings.
type Config struct {
	Conversion ConversionConfig `yaml:"conversion"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ConversionConfig holds the geometry and texture pipeline parameters.
type ConversionConfig struct {
	// Strategy selects the element conversion strategy: "smart_cube"
	// (subdivide, sliced textures) or "stretch" (one head per element,
	// distorted textures).
	Strategy string `yaml:"strategy"`
	// MaxHeadSize is the per-axis model-unit budget one head may cover
	// before the element is subdivided.
	MaxHeadSize float32 `yaml:"max_head_size"`
	// ElongationThreshold is the max/min extent ratio above which a box
	// counts as elongated.
	ElongationThreshold float32 `yaml:"elongation_threshold"`
	// DegenerateEpsilon is the extent below which an axis counts as flat.
	DegenerateEpsilon float32 `yaml:"degenerate_epsilon"`
	// ResampleFilter is "nearest" or "area".
	ResampleFilter string `yaml:"resample_filter"`
	// FallbackTexture optionally points at a PNG substituted for missing
	// texture ids; empty selects the built-in placeholder.
	FallbackTexture string `yaml:"fallback_texture"`
	// MaxSubCubes caps how many sub-cubes one element may decompose into
	// before the plan is clamped.
	MaxSubCubes int `yaml:"max_sub_cubes"`
	// Workers bounds the per-element conversion goroutines; 0 means one
	// per CPU.
	Workers int `yaml:"workers"`
}

// OutputConfig holds output file settings.
type OutputConfig struct {
	Dir       string `yaml:"dir"`       // output directory; empty writes next to the input
	Overwrite bool   `yaml:"overwrite"` // replace existing output files
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Strategy names accepted in ConversionConfig.Strategy.
const (
	StrategySmartCube = "smart_cube"
	StrategyStretch   = "stretch"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Conversion: ConversionConfig{
			Strategy:            StrategySmartCube,
			MaxHeadSize:         32,
			ElongationThreshold: 3.0,
			DegenerateEpsilon:   1e-4,
			ResampleFilter:      "nearest",
			MaxSubCubes:         4096,
			Workers:             0,
		},
		Output: OutputConfig{
			Overwrite: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	cv := c.Conversion
	if cv.Strategy != StrategySmartCube && cv.Strategy != StrategyStretch {
		return fmt.Errorf("config: unknown strategy %q", cv.Strategy)
	}
	if cv.MaxHeadSize <= 0 {
		return fmt.Errorf("config: max_head_size must be positive, got %v", cv.MaxHeadSize)
	}
	if cv.ElongationThreshold < 1 {
		return fmt.Errorf("config: elongation_threshold must be >= 1, got %v", cv.ElongationThreshold)
	}
	if cv.DegenerateEpsilon <= 0 {
		return fmt.Errorf("config: degenerate_epsilon must be positive, got %v", cv.DegenerateEpsilon)
	}
	if cv.ResampleFilter != "nearest" && cv.ResampleFilter != "area" {
		return fmt.Errorf("config: unknown resample_filter %q", cv.ResampleFilter)
	}
	if cv.MaxSubCubes < 1 {
		return fmt.Errorf("config: max_sub_cubes must be >= 1, got %d", cv.MaxSubCubes)
	}
	if cv.Workers < 0 {
		return fmt.Errorf("config: workers must be >= 0, got %d", cv.Workers)
	}
	return nil
}
