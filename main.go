package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-raytracer/pkg/imageio"
	"github.com/df07/go-raytracer/pkg/progress"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// cliConfig holds the parsed command line options
type cliConfig struct {
	SceneType string
	Width     int
	Samples   int // 0 = scene default
	MaxDepth  int // -1 = scene default
	Workers   int // 0 = use CPU count
	Seed      int64
	SeedSet   bool   // -seed was given; otherwise the scene's seed is kept
	Output    string // empty = output/<scene>/render_<timestamp>.<format>
	Format    string
	Serial    bool
	Quiet     bool
}

func main() {
	// Parse command line flags
	var cfg cliConfig
	flag.StringVar(&cfg.SceneType, "scene", "default", "Scene name or path to a JSON scene file")
	flag.IntVar(&cfg.Width, "width", 400, "Image width in pixels (height follows the camera aspect ratio)")
	flag.IntVar(&cfg.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flag.IntVar(&cfg.MaxDepth, "depth", -1, "Maximum ray bounce depth (-1 = scene default)")
	flag.IntVar(&cfg.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.Int64Var(&cfg.Seed, "seed", 42, "Base random seed")
	flag.StringVar(&cfg.Output, "output", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	flag.StringVar(&cfg.Format, "format", "png", "Output format when -output is not set: 'png' or 'ppm'")
	flag.BoolVar(&cfg.Serial, "serial", false, "Render on a single goroutine")
	flag.BoolVar(&cfg.Quiet, "quiet", false, "Hide the progress bar")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.SeedSet = true
		}
	})

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Go Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-15s %s\n", info.ID, info.Description)
	}
	fmt.Println("  <file>.json     Scene description file")
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

// createScene resolves a built-in scene name or a JSON scene file
func createScene(sceneType string, seed int64) (*scene.Scene, error) {
	if strings.HasSuffix(strings.ToLower(sceneType), ".json") {
		s, err := scene.Load(sceneType)
		if err != nil {
			return nil, fmt.Errorf("failed to load scene file %s: %w", sceneType, err)
		}
		return s, nil
	}
	return scene.Lookup(sceneType, seed)
}

// outputPath returns the file the render is written to
func outputPath(cfg cliConfig, sceneName string, now time.Time) (string, error) {
	if cfg.Output != "" {
		return cfg.Output, nil
	}

	format, err := imageio.ParseFormat(cfg.Format)
	if err != nil {
		return "", err
	}

	// Create timestamped filename
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.%s", timestamp, format)), nil
}

// renderOptions overlays command line settings on the scene's recommended options
func renderOptions(cfg cliConfig, s *scene.Scene) renderer.RenderOptions {
	opts := s.Options
	if cfg.Samples > 0 {
		opts.SamplesPerPixel = cfg.Samples
	}
	if cfg.MaxDepth >= 0 {
		opts.MaxDepth = cfg.MaxDepth
	}
	if cfg.SeedSet {
		opts.Seed = cfg.Seed
	}
	return opts
}

func run(cfg cliConfig, stdout io.Writer) error {
	if cfg.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", cfg.Width)
	}

	selectedScene, err := createScene(cfg.SceneType, cfg.Seed)
	if err != nil {
		return err
	}

	filename, err := outputPath(cfg, selectedScene.Name, time.Now())
	if err != nil {
		return err
	}

	width := cfg.Width
	height := selectedScene.ImageHeight(width)
	opts := renderOptions(cfg, selectedScene)

	fmt.Fprintf(stdout, "Rendering scene %q (%d primitives) at %dx%d, %d samples/pixel, depth %d\n",
		selectedScene.Name, selectedScene.GetPrimitiveCount(), width, height, opts.SamplesPerPixel, opts.MaxDepth)

	var bar *progress.Bar
	if !cfg.Quiet {
		bar = progress.NewBar(stdout)
		opts.Progress = bar.Update
	}

	logger := &writerLogger{out: stdout}
	var rt renderer.Renderer
	if cfg.Serial {
		rt = renderer.NewRaytracer(selectedScene.Camera, selectedScene.World, logger)
	} else {
		config := renderer.DefaultParallelConfig()
		config.NumWorkers = cfg.Workers
		rt = renderer.NewParallelRaytracer(selectedScene.Camera, selectedScene.World, config, logger)
	}

	img := renderer.NewImage(width, height)
	stats, err := rt.Render(opts, img)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if err := imageio.Save(filename, img); err != nil {
		return fmt.Errorf("failed to save render: %w", err)
	}

	fmt.Fprintf(stdout, "Render completed in %v\n", stats.Duration.Round(time.Millisecond))
	fmt.Fprintf(stdout, "Render saved as %s\n", filename)
	return nil
}

// writerLogger implements core.Logger on top of an io.Writer
type writerLogger struct {
	out io.Writer
}

func (l *writerLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(l.out, format, args...)
}
