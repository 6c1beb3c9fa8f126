// headcast converts Blockbench voxel models into BDEngine player-head
// scenes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/voxforge/headcast/internal/config"
	"github.com/voxforge/headcast/internal/logger"
	"github.com/voxforge/headcast/pkg/bbmodel"
	"github.com/voxforge/headcast/pkg/bdengine"
	"github.com/voxforge/headcast/pkg/convert"
	"github.com/voxforge/headcast/pkg/texture"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "convert", "c":
		cmdConvert(args)
	case "info":
		cmdInfo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`headcast - Blockbench model to BDEngine head converter

Usage:
  headcast <command> [options] <file.bbmodel>...

Commands:
  convert <file.bbmodel>...  Convert models to .bdengine head scenes
  info <file.bbmodel>        Show model statistics without converting

Options (convert):
  -config <path>        Config file (default: ./headcast.yaml)
  -strategy <name>      smart_cube or stretch
  -filter <name>        nearest or area
  -max-head-size <n>    Per-axis head budget in model units
  -workers <n>          Conversion worker count (0 = one per CPU)
  -out <dir>            Output directory
  -debug                Enable debug logging

Examples:
  headcast convert chair.bbmodel
  headcast convert -strategy stretch -out ./dist chair.bbmodel table.bbmodel
  headcast info chair.bbmodel`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func cmdConvert(args []string) {
	config.ParseFlags(args)
	files := flag.Args()
	if len(files) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: headcast convert [options] <file.bbmodel>...")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fail("%v", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fail("initializing logger: %v", err)
	}
	defer logger.Sync()

	opts, err := conversionOptions(cfg)
	if err != nil {
		fail("%v", err)
	}

	if cfg.Output.Dir != "" {
		if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
			fail("creating output directory: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	conv := convert.New(opts, logger.Sugar)
	failed := 0
	for _, file := range files {
		if err := convertFile(ctx, conv, cfg, file); err != nil {
			if ctx.Err() != nil {
				fail("interrupted")
			}
			logger.Sugar.Errorw("conversion failed", "file", file, "error", err)
			failed++
		}
	}
	if failed > 0 {
		fail("%d of %d files failed", failed, len(files))
	}
}

func convertFile(ctx context.Context, conv *convert.Converter, cfg *config.Config, path string) error {
	model, err := bbmodel.Open(path)
	if err != nil {
		return err
	}

	result, err := conv.Convert(ctx, model)
	if err != nil {
		return err
	}

	root, err := convert.BuildProject(model.Name, result.Primitives)
	if err != nil {
		return err
	}

	out := bdengine.OutputPath(path, cfg.Output.Dir)
	if err := bdengine.WriteFile(out, root, cfg.Output.Overwrite); err != nil {
		return err
	}

	fmt.Print(result.Report.Summary())
	fmt.Printf("Wrote %s\n", out)
	return nil
}

func conversionOptions(cfg *config.Config) (convert.Options, error) {
	filter, err := texture.ParseFilter(cfg.Conversion.ResampleFilter)
	if err != nil {
		return convert.Options{}, err
	}
	return convert.Options{
		Strategy:            cfg.Conversion.Strategy,
		MaxHeadSize:         cfg.Conversion.MaxHeadSize,
		ElongationThreshold: cfg.Conversion.ElongationThreshold,
		DegenerateEpsilon:   cfg.Conversion.DegenerateEpsilon,
		Filter:              filter,
		FallbackTexture:     cfg.Conversion.FallbackTexture,
		MaxSubCubes:         cfg.Conversion.MaxSubCubes,
		Workers:             cfg.Conversion.Workers,
	}, nil
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: headcast info <file.bbmodel>")
		os.Exit(1)
	}

	model, err := bbmodel.Open(args[0])
	if err != nil {
		fail("%v", err)
	}

	opts := convert.DefaultOptions()
	classes := make(map[string]int)
	totalHeads := 0
	faces := 0
	for _, el := range model.Elements {
		n := el.Normalized()
		class := convert.Classify(n.Size(), opts.DegenerateEpsilon, opts.ElongationThreshold)
		classes[class.String()]++
		plan := convert.PlanSubdivision(n.Size(), class, opts.MaxHeadSize, opts.MaxSubCubes, opts.DegenerateEpsilon)
		totalHeads += plan.Total()
		for _, f := range n.Faces {
			if f != nil {
				faces++
			}
		}
	}

	fmt.Printf("Model:      %s\n", model.Name)
	fmt.Printf("Resolution: %dx%d\n", model.Resolution.Width, model.Resolution.Height)
	fmt.Printf("Elements:   %d (%d textured faces)\n", len(model.Elements), faces)
	fmt.Printf("Textures:   %d\n", len(model.Textures))
	fmt.Println()
	fmt.Println("Shapes:")
	names := make([]string, 0, len(classes))
	for class := range classes {
		names = append(names, class)
	}
	sort.Strings(names)
	for _, class := range names {
		fmt.Printf("  %-14s %d\n", class, classes[class])
	}
	fmt.Printf("\nEstimated heads (smart_cube, budget %v): %d\n", opts.MaxHeadSize, totalHeads)
}
