package renderer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOptions is returned when render options are out of range
	ErrInvalidOptions = errors.New("invalid render options")
	// ErrImageSize is returned when the pixel buffer has no cells
	ErrImageSize = errors.New("invalid image size")
)

// ProgressFunc receives the completed fraction of a render, in [0, 1].
// It has no effect on the render.
type ProgressFunc func(fraction float64)

// RenderOptions contains per-render configuration
type RenderOptions struct {
	SamplesPerPixel int          // Number of jittered rays per pixel, >= 1
	MaxDepth        int          // Maximum ray bounce depth, >= 0
	Seed            int64        // Base seed for the random streams
	Progress        ProgressFunc // Optional progress callback
}

// DefaultRenderOptions returns sensible default values
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
	}
}

// Validate checks the options against the buffer they will render into
func (o RenderOptions) Validate(img PixelBuffer) error {
	if o.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidOptions, o.SamplesPerPixel)
	}
	if o.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must be non-negative, got %d", ErrInvalidOptions, o.MaxDepth)
	}
	if img == nil || img.Width() <= 0 || img.Height() <= 0 {
		return ErrImageSize
	}
	return nil
}

func (o RenderOptions) reportProgress(fraction float64) {
	if o.Progress != nil {
		o.Progress(fraction)
	}
}

// Renderer fills a pixel buffer with a rendered image. Render is synchronous;
// on success every cell of img holds a gamma-corrected, quantized color.
type Renderer interface {
	Render(opts RenderOptions, img PixelBuffer) (RenderStats, error)
}
