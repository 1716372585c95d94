package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// cornellBoxPoints are the corners of the 10x10x10 box centered on the origin
var cornellBoxPoints = [8]core.Vec3{
	{X: -5, Y: -5, Z: -5}, {X: 5, Y: -5, Z: -5}, {X: 5, Y: 5, Z: -5}, {X: -5, Y: 5, Z: -5},
	{X: -5, Y: -5, Z: 5}, {X: 5, Y: -5, Z: 5}, {X: 5, Y: 5, Z: 5}, {X: -5, Y: 5, Z: 5},
}

// NewCornellBoxScene creates a box of five rectangle walls, open towards the camera,
// holding diffuse, metal and glass spheres. Z is up in this scene.
func NewCornellBoxScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(10, 0, 1),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 0, 1),
		VFov:          50.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.01,
		FocusDistance: 8.0,
	}

	// Create materials
	whiteWall := material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.96)
	redWall := material.NewLambertian(core.NewVec3(1, 0.01, 0.01))
	greenWall := material.NewLambertian(core.NewVec3(0.01, 1, 0.01))

	world := geometry.NewList()

	// Vertex indices wind clockwise seen from the side the normal points to
	wall := func(indices [4]int, normal core.Vec3, mat material.Material) {
		var vertices [4]core.Vec3
		for i, idx := range indices {
			vertices[i] = cornellBoxPoints[idx]
		}
		world.Add(geometry.NewRectangle(vertices, normal, mat))
	}
	wall([4]int{0, 1, 5, 4}, core.NewVec3(0, 1, 0), redWall)    // left
	wall([4]int{2, 3, 7, 6}, core.NewVec3(0, -1, 0), greenWall) // right
	wall([4]int{0, 4, 7, 3}, core.NewVec3(1, 0, 0), whiteWall)  // back
	wall([4]int{0, 3, 2, 1}, core.NewVec3(0, 0, 1), whiteWall)  // floor
	wall([4]int{4, 5, 6, 7}, core.NewVec3(0, 0, -1), whiteWall) // ceiling

	// Balls
	glass := material.NewDielectric(0.9)
	smooth := material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))
	metal := material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)
	world.Add(
		geometry.NewSphere(core.NewVec3(-3, -2, -3.5), 1.5, smooth),
		geometry.NewSphere(core.NewVec3(-3, 2, -3.5), 1.5, metal),
		geometry.NewSphere(core.NewVec3(0, 0, -3.5), 1.5, glass),
	)

	return New("cornell-box", cameraConfig, world, renderer.RenderOptions{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
	})
}
