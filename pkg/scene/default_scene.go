package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// NewDefaultScene creates a default scene with spheres on a ground plane,
// including a hollow glass sphere
func NewDefaultScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.05,
		FocusDistance: 0.0, // Focus on the look-at point
	}

	// Create materials
	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)

	world := geometry.NewList(
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), lambertianGreen),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, materialGlass),
	)

	// Hollow glass sphere with a blue sphere inside; the negative radius flips the inner normals
	world.Add(
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, materialGlass),
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), -0.24, materialGlass),
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue),
	)

	return New("default", cameraConfig, world, renderer.RenderOptions{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
	})
}

// NewSingleSphereScene creates a diffuse sphere of radius 0.5 at (0,0,-1) seen from the origin
func NewSingleSphereScene() *Scene {
	cameraConfig := renderer.DefaultCameraConfig()

	world := geometry.NewList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	return New("single-sphere", cameraConfig, world, renderer.RenderOptions{
		SamplesPerPixel: 50,
		MaxDepth:        10,
		Seed:            42,
	})
}
