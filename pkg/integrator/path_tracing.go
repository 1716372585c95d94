package integrator

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// ShadowAcneEpsilon is the minimum t accepted when intersecting the world.
// It excludes self-intersections at the origin of a bounced ray and is sized
// for scenes built in units around 1.
const ShadowAcneEpsilon = 0.001

// BackgroundFunc returns the color seen along a ray that hits nothing
type BackgroundFunc func(ray core.Ray) core.Vec3

// PathTracingIntegrator implements unidirectional path tracing with a sky background
type PathTracingIntegrator struct {
	Background BackgroundFunc
}

// NewPathTracingIntegrator creates a path tracer that uses the sky gradient background
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{Background: BackgroundGradient}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return pt.background(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		// Material absorbed the ray
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	return scatter.Attenuation.MultiplyVec(pt.RayColor(scatter.Scattered, world, depth-1, sampler))
}

func (pt *PathTracingIntegrator) background(ray core.Ray) core.Vec3 {
	if pt.Background == nil {
		return BackgroundGradient(ray)
	}
	return pt.Background(ray)
}

// BackgroundGradient blends from white (ray pointing down) to sky blue (ray pointing up)
func BackgroundGradient(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)

	white := core.NewVec3(1.0, 1.0, 1.0)
	blue := core.NewVec3(0.5, 0.7, 1.0)
	return white.Multiply(1.0 - t).Add(blue.Multiply(t))
}
