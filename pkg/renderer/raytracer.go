package renderer

import (
	"time"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
)

// Raytracer renders an image on the calling goroutine, one row at a time
type Raytracer struct {
	camera     *Camera
	world      geometry.Shape
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a single-threaded raytracer using path tracing
func NewRaytracer(camera *Camera, world geometry.Shape, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integrator.NewPathTracingIntegrator(),
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integ integrator.Integrator) {
	rt.integrator = integ
}

// Render renders every row from top to bottom, reporting progress after each row
func (rt *Raytracer) Render(opts RenderOptions, img PixelBuffer) (RenderStats, error) {
	if err := opts.Validate(img); err != nil {
		return RenderStats{}, err
	}

	start := time.Now()
	sampler := core.NewSeededSampler(opts.Seed)
	height := img.Height()

	opts.reportProgress(0)
	for row := 0; row < height; row++ {
		renderRow(rt.camera, rt.world, rt.integrator, opts, img, row, sampler)
		opts.reportProgress(float64(row+1) / float64(height))
	}

	stats := newRenderStats(img, opts, 1, time.Since(start))
	rt.logger.Printf("Rendered %s\n", stats)
	return stats, nil
}

// renderRow samples and writes every pixel of one row. Row 0 is the top scanline.
func renderRow(camera *Camera, world geometry.Shape, integ integrator.Integrator, opts RenderOptions, img PixelBuffer, row int, sampler core.Sampler) {
	width := img.Width()
	height := img.Height()
	j := height - 1 - row // scanline index counted from the bottom

	for i := 0; i < width; i++ {
		colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}

		for sample := 0; sample < opts.SamplesPerPixel; sample++ {
			// Convert pixel coordinates to normalized coordinates with jitter
			jitter := sampler.Get2D()
			s := (float64(i) + jitter.X) / float64(width)
			t := (float64(j) + jitter.Y) / float64(height)

			ray := camera.GetRay(s, t, sampler)
			colorAccum = colorAccum.Add(integ.RayColor(ray, world, opts.MaxDepth, sampler))
		}

		img.SetPixel(row, i, ToPixel(colorAccum, opts.SamplesPerPixel))
	}
}
