package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagStrategy    = flag.String("strategy", "", "Conversion strategy: smart_cube or stretch")
	flagFilter      = flag.String("filter", "", "Resample filter: nearest or area")
	flagMaxHeadSize = flag.Float64("max-head-size", 0, "Per-axis head budget in model units")
	flagWorkers     = flag.Int("workers", -1, "Conversion worker count (0 = one per CPU)")
	flagOutDir      = flag.String("out", "", "Output directory")
)

// ParseFlags parses the flags following the subcommand. Remaining
// positional arguments stay available through flag.Args.
func ParseFlags(args []string) {
	flag.CommandLine.Parse(args)
}

// ConfigPath returns the explicit config path if provided via --config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagStrategy != "" {
		cfg.Conversion.Strategy = *flagStrategy
	}
	if *flagFilter != "" {
		cfg.Conversion.ResampleFilter = *flagFilter
	}
	if *flagMaxHeadSize > 0 {
		cfg.Conversion.MaxHeadSize = float32(*flagMaxHeadSize)
	}
	if *flagWorkers >= 0 {
		cfg.Conversion.Workers = *flagWorkers
	}
	if *flagOutDir != "" {
		cfg.Output.Dir = *flagOutDir
	}
}
