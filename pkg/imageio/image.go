package imageio

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-raytracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for unknown file extensions or headers
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format identifies an output encoding
type Format string

const (
	FormatPNG Format = "png"
	FormatPPM Format = "ppm"
)

// ParseFormat maps a format name or file extension to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return FormatPNG, nil
	case "ppm":
		return FormatPPM, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Encode writes the image to w in the given format
func Encode(w io.Writer, img *renderer.Image, format Format) error {
	switch format {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
		return nil
	case FormatPPM:
		return WritePPM(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save writes the image to path, creating parent directories.
// The format is chosen from the file extension.
func Save(path string, img *renderer.Image) error {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close image file: %w", err)
	}
	return nil
}

// Load reads a PPM, PNG or JPEG image
func Load(path string) (*renderer.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".ppm") {
		return DecodePPM(file)
	}

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), nil
}

// FromImage converts any image to 8-bit pixels, dropping alpha
func FromImage(src image.Image) *renderer.Image {
	bounds := src.Bounds()
	img := renderer.NewImage(bounds.Dx(), bounds.Dy())

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			r, g, b, _ := src.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			img.SetPixel(y, x, renderer.Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)})
		}
	}
	return img
}
