package geometry

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Rectangle is a convex quadrilateral given by four coplanar vertices.
// Vertices must wind clockwise when viewed from the side the normal points to;
// coplanarity is not checked.
type Rectangle struct {
	Vertices [4]core.Vec3
	Normal   core.Vec3 // Unit normal vector
	Material material.Material

	edges [4]core.Vec3 // edges[i] = Vertices[i+1] - Vertices[i]
}

// NewRectangle creates a new rectangle from its ordered vertices and normal
func NewRectangle(vertices [4]core.Vec3, normal core.Vec3, material material.Material) *Rectangle {
	r := &Rectangle{
		Vertices: vertices,
		Normal:   normal.Normalize(),
		Material: material,
	}
	for i := range vertices {
		r.edges[i] = vertices[(i+1)%4].Subtract(vertices[i])
	}
	return r
}

// Hit tests if a ray intersects with the rectangle
func (r *Rectangle) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	denominator := ray.Direction.Dot(r.Normal)
	if math.Abs(denominator) < parallelEpsilon {
		return material.HitRecord{}, false
	}

	t := r.Vertices[0].Subtract(ray.Origin).Dot(r.Normal) / denominator
	if t < tMin || t > tMax {
		return material.HitRecord{}, false
	}

	hitPoint := ray.At(t)
	if !r.contains(hitPoint) {
		return material.HitRecord{}, false
	}

	hitRecord := material.HitRecord{
		T:        t,
		Point:    hitPoint,
		Material: r.Material,
	}
	hitRecord.SetFaceNormal(ray, r.Normal)

	return hitRecord, true
}

// contains reports whether a point on the rectangle's plane lies strictly inside it
func (r *Rectangle) contains(point core.Vec3) bool {
	for i := range r.edges {
		cross := r.edges[i].Cross(point.Subtract(r.Vertices[i]))
		if cross.Dot(r.Normal) >= 0 {
			return false
		}
	}
	return true
}
