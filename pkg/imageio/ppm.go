package imageio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-raytracer/pkg/renderer"
)

// WritePPM writes the image as plain-text PPM (P3): a header followed by one
// "R G B" line per pixel, top row first
func WritePPM(w io.Writer, img *renderer.Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width(), img.Height()); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for row := 0; row < img.Height(); row++ {
		for col := 0; col < img.Width(); col++ {
			p := img.Pixel(row, col)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B); err != nil {
				return fmt.Errorf("failed to write PPM pixel: %w", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}

// maxPPMDimension bounds each side of a decoded image so the pixel count fits in memory
const maxPPMDimension = 1 << 15

// DecodePPM reads a plain-text PPM (P3) image with a maximum value of 255
func DecodePPM(r io.Reader) (*renderer.Image, error) {
	br := bufio.NewReader(r)

	var magic string
	var width, height, maxVal int
	if _, err := fmt.Fscan(br, &magic, &width, &height, &maxVal); err != nil {
		return nil, fmt.Errorf("failed to read PPM header: %w", err)
	}
	if magic != "P3" {
		return nil, fmt.Errorf("%w: PPM magic %q", ErrUnsupportedFormat, magic)
	}
	if width <= 0 || height <= 0 || width > maxPPMDimension || height > maxPPMDimension || maxVal != 255 {
		return nil, fmt.Errorf("%w: PPM header %dx%d max %d", ErrUnsupportedFormat, width, height, maxVal)
	}

	img := renderer.NewImage(width, height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			var r, g, b uint8
			if _, err := fmt.Fscan(br, &r, &g, &b); err != nil {
				return nil, fmt.Errorf("failed to read PPM pixel (%d,%d): %w", row, col, err)
			}
			img.SetPixel(row, col, renderer.Pixel{R: r, G: g, B: b})
		}
	}
	return img, nil
}
