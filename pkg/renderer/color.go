package renderer

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// maxChannel keeps the quantized value below 256
const maxChannel = 0.999

// ToPixel converts an accumulated color sum into a display pixel:
// average over the samples, gamma 2 correction, clamp, quantize to [0, 255].
func ToPixel(colorSum core.Vec3, samplesPerPixel int) Pixel {
	c := colorSum.Multiply(1.0 / float64(samplesPerPixel)).Sqrt().Clamp(0.0, maxChannel)
	return Pixel{
		R: uint8(256 * c.X),
		G: uint8(256 * c.Y),
		B: uint8(256 * c.Z),
	}
}
