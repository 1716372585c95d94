package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// NewRandomSpheresScene creates a ground plane covered with a grid of small randomly
// placed spheres and three large ones. The layout depends only on seed.
func NewRandomSpheresScene(seed int64) *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	sampler := core.NewSeededSampler(seed)
	// randomRange returns a value in [lo, hi)
	randomRange := func(lo, hi float64) float64 {
		return lo + (hi-lo)*sampler.Get1D()
	}

	world := geometry.NewList(
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			// Keep the area around the metal sphere clear
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var sphereMaterial material.Material
			switch {
			case chooseMat < 0.8:
				albedo := sampler.Get3D().MultiplyVec(sampler.Get3D())
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.NewVec3(randomRange(0.5, 1), randomRange(0.5, 1), randomRange(0.5, 1))
				sphereMaterial = material.NewMetal(albedo, randomRange(0, 0.5))
			default:
				sphereMaterial = material.NewDielectric(1.5)
			}

			world.Add(geometry.NewSphere(center, 0.2, sphereMaterial))
		}
	}

	world.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return New("random-spheres", cameraConfig, world, renderer.RenderOptions{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            seed,
	})
}
