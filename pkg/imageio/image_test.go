package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-raytracer/pkg/renderer"
)

// createTestImage creates a 2x2 image: white, red on top; green, blue below
func createTestImage() *renderer.Image {
	img := renderer.NewImage(2, 2)
	img.SetPixel(0, 0, renderer.Pixel{R: 255, G: 255, B: 255})
	img.SetPixel(0, 1, renderer.Pixel{R: 255, G: 0, B: 0})
	img.SetPixel(1, 0, renderer.Pixel{R: 0, G: 255, B: 0})
	img.SetPixel(1, 1, renderer.Pixel{R: 0, G: 0, B: 255})
	return img
}

func assertSameImage(t *testing.T, expected, got *renderer.Image) {
	t.Helper()
	if got.Width() != expected.Width() || got.Height() != expected.Height() {
		t.Fatalf("Expected %dx%d image, got %dx%d", expected.Width(), expected.Height(), got.Width(), got.Height())
	}
	for row := 0; row < expected.Height(); row++ {
		for col := 0; col < expected.Width(); col++ {
			if got.Pixel(row, col) != expected.Pixel(row, col) {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", row, col, expected.Pixel(row, col), got.Pixel(row, col))
			}
		}
	}
}

func TestWritePPM_Layout(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, createTestImage()); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	expected := "P3\n2 2\n255\n255 255 255\n255 0 0\n0 255 0\n0 0 255\n"
	if buf.String() != expected {
		t.Errorf("Unexpected PPM output:\n%q\nexpected:\n%q", buf.String(), expected)
	}

	decoded, err := DecodePPM(&buf)
	if err != nil {
		t.Fatalf("DecodePPM failed: %v", err)
	}
	assertSameImage(t, createTestImage(), decoded)
}

func TestDecodePPM_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"binary magic", "P6\n1 1\n255\n"},
		{"bad max value", "P3\n1 1\n65535\n0 0 0\n"},
		{"truncated pixels", "P3\n2 1\n255\n1 2 3\n"},
		{"empty", ""},
		{"zero width", "P3\n0 1\n255\n"},
		{"oversized header", "P3\n4000000000 4000000000\n255\n0 0 0\n"},
		{"width over limit", "P3\n40000 1\n255\n0 0 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodePPM(strings.NewReader(tt.input))
			if err == nil {
				t.Error("Expected error, got nil")
			}
			if img != nil {
				t.Errorf("Expected no image on error, got %dx%d", img.Width(), img.Height())
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	for _, ext := range []string{"png", "ppm"} {
		t.Run(ext, func(t *testing.T) {
			// Nested directory is created on save
			path := filepath.Join(t.TempDir(), "out", "render."+ext)
			if err := Save(path, createTestImage()); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			assertSameImage(t, createTestImage(), loaded)
		})
	}
}

func TestSave_UnsupportedFormat(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "render.gif"), createTestImage())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoad_JPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "gray.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := jpeg.Encode(f, src, &jpeg.Options{Quality: 100}); err != nil {
		f.Close()
		t.Fatalf("Failed to encode JPEG: %v", err)
	}
	f.Close()

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Width() != 4 || img.Height() != 3 {
		t.Fatalf("Expected 4x3 image, got %dx%d", img.Width(), img.Height())
	}

	// JPEG is lossy; allow a small tolerance
	p := img.Pixel(1, 2)
	for _, c := range []uint8{p.R, p.G, p.B} {
		if c < 124 || c > 132 {
			t.Errorf("Expected gray pixel near 128, got %v", p)
			break
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"png", FormatPNG, false},
		{".PNG", FormatPNG, false},
		{"ppm", FormatPPM, false},
		{".ppm", FormatPPM, false},
		{"bmp", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %t", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
