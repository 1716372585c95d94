package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of primary rays traced
	SamplesPerPixel int           // Samples taken for every pixel
	MaxDepth        int           // Bounce budget per primary ray
	Workers         int           // Goroutines that rendered rows
	Duration        time.Duration // Wall-clock render time
}

func newRenderStats(img PixelBuffer, opts RenderOptions, workers int, duration time.Duration) RenderStats {
	pixels := img.Width() * img.Height()
	return RenderStats{
		Width:           img.Width(),
		Height:          img.Height(),
		TotalPixels:     pixels,
		TotalSamples:    pixels * opts.SamplesPerPixel,
		SamplesPerPixel: opts.SamplesPerPixel,
		MaxDepth:        opts.MaxDepth,
		Workers:         workers,
		Duration:        duration,
	}
}

// SamplesPerSecond returns the primary ray throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%dx%d, %d samples/pixel, depth %d, %d workers in %v (%.0f samples/s)",
		s.Width, s.Height, s.SamplesPerPixel, s.MaxDepth, s.Workers,
		s.Duration.Round(time.Millisecond), s.SamplesPerSecond())
}
