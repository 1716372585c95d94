package integrator

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the light arriving along ray from the world, allowing at most
	// depth bounces. The sampler is owned by the calling goroutine.
	RayColor(ray core.Ray, world geometry.Shape, depth int, sampler core.Sampler) core.Vec3
}
