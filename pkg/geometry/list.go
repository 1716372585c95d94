package geometry

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// List aggregates shapes and reports the nearest hit among them.
// Shapes are held by reference and may be shared with other lists.
//
// Hit is a linear scan. An acceleration structure can replace a List
// by implementing the same Shape contract.
type List struct {
	Shapes []Shape
}

// NewList creates a list holding the given shapes
func NewList(shapes ...Shape) *List {
	return &List{Shapes: shapes}
}

// Add appends shapes to the list. Not safe to call while a render is running.
func (l *List) Add(shapes ...Shape) {
	l.Shapes = append(l.Shapes, shapes...)
}

// Len returns the number of shapes in the list
func (l *List) Len() int {
	return len(l.Shapes)
}

// Hit returns the closest intersection among all shapes in the list
func (l *List) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closestHit material.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
