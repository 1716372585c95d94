package renderer

import (
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestToPixel(t *testing.T) {
	tests := []struct {
		name     string
		sum      core.Vec3
		samples  int
		expected Pixel
	}{
		{"black", core.NewVec3(0, 0, 0), 1, Pixel{0, 0, 0}},
		{"white clamps below 256", core.NewVec3(1, 1, 1), 1, Pixel{255, 255, 255}},
		{"over-bright clamps", core.NewVec3(40, 2, 1.5), 1, Pixel{255, 255, 255}},
		{"quarter is gamma corrected to half", core.NewVec3(0.25, 0.25, 0.25), 1, Pixel{128, 128, 128}},
		{"sum is averaged over samples", core.NewVec3(1, 4, 0), 4, Pixel{128, 255, 0}},
		{"channels are independent", core.NewVec3(0.01, 0.04, 0.09), 1, Pixel{25, 51, 76}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPixel(tt.sum, tt.samples)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
