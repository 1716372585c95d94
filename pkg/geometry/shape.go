package geometry

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// parallelEpsilon is the smallest |normal · direction| accepted by planar shapes.
// Anything smaller is treated as a ray parallel to the surface.
const parallelEpsilon = 1e-8

// Shape interface for objects that can be hit by rays.
//
// Hit reports whether the ray intersects the shape with t in [tMin, tMax] and
// returns the record of the nearest such intersection. The record is only
// meaningful when the boolean is true. Implementations must not mutate shared
// state, so a Shape can be hit from many goroutines at once.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)
}
