package renderer

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
)

// ParallelConfig contains configuration for row-partitioned rendering
type ParallelConfig struct {
	NumWorkers   int           // Number of worker goroutines (0 = use CPU count)
	PollInterval time.Duration // How often progress is sampled (0 = default)
}

// DefaultParallelConfig returns sensible default values
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		NumWorkers:   0,
		PollInterval: 100 * time.Millisecond,
	}
}

// rowRange is a half-open range of rows [start, end) owned by one worker
type rowRange struct {
	start, end int
}

// partitionRows splits height rows into numWorkers contiguous ranges.
// The first height%numWorkers ranges get one extra row. Workers beyond
// the row count receive empty ranges.
func partitionRows(height, numWorkers int) []rowRange {
	ranges := make([]rowRange, numWorkers)
	base := height / numWorkers
	extra := height % numWorkers

	start := 0
	for i := range ranges {
		size := base
		if i < extra {
			size++
		}
		ranges[i] = rowRange{start: start, end: start + size}
		start += size
	}
	return ranges
}

// ParallelRaytracer renders with a fixed set of goroutines, each owning a
// contiguous block of rows. Workers are started and joined within each Render.
type ParallelRaytracer struct {
	camera     *Camera
	world      geometry.Shape
	integrator integrator.Integrator
	config     ParallelConfig
	logger     core.Logger
}

// NewParallelRaytracer creates a row-partitioned parallel raytracer using path tracing
func NewParallelRaytracer(camera *Camera, world geometry.Shape, config ParallelConfig, logger core.Logger) *ParallelRaytracer {
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultParallelConfig().PollInterval
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &ParallelRaytracer{
		camera:     camera,
		world:      world,
		integrator: integrator.NewPathTracingIntegrator(),
		config:     config,
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (pr *ParallelRaytracer) SetIntegrator(integ integrator.Integrator) {
	pr.integrator = integ
}

// NumWorkers returns the number of worker goroutines used per render
func (pr *ParallelRaytracer) NumWorkers() int {
	return pr.config.NumWorkers
}

// Render partitions the rows, renders them concurrently and blocks until every row is written.
// Worker i draws from its own random stream seeded with opts.Seed + i.
func (pr *ParallelRaytracer) Render(opts RenderOptions, img PixelBuffer) (RenderStats, error) {
	if err := opts.Validate(img); err != nil {
		return RenderStats{}, err
	}

	start := time.Now()
	height := img.Height()
	numWorkers := min(pr.config.NumWorkers, height)
	ranges := partitionRows(height, numWorkers)

	pr.logger.Printf("Rendering %dx%d with %d workers...\n", img.Width(), height, numWorkers)

	var rowsDone atomic.Int64
	var wg sync.WaitGroup
	done := make(chan struct{})

	for i, r := range ranges {
		wg.Add(1)
		go func(workerID int, r rowRange) {
			defer wg.Done()
			sampler := core.NewSeededSampler(opts.Seed + int64(workerID))
			for row := r.start; row < r.end; row++ {
				renderRow(pr.camera, pr.world, pr.integrator, opts, img, row, sampler)
				rowsDone.Add(1)
			}
		}(i, r)
	}

	go func() {
		wg.Wait()
		close(done)
	}()

	opts.reportProgress(0)
	ticker := time.NewTicker(pr.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			opts.reportProgress(float64(rowsDone.Load()) / float64(height))
		case <-done:
			opts.reportProgress(1)
			stats := newRenderStats(img, opts, numWorkers, time.Since(start))
			pr.logger.Printf("Rendered %s\n", stats)
			return stats, nil
		}
	}
}
