package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, DummyMaterial{})
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_AnalyticNearRoot(t *testing.T) {
	tests := []struct {
		name   string
		center core.Vec3
		radius float64
	}{
		{"unit sphere at -3", core.NewVec3(0, 0, -3), 1.0},
		{"half sphere at -1", core.NewVec3(0, 0, -1), 0.5},
		{"large sphere far away", core.NewVec3(0, 0, -100), 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, tt.radius, DummyMaterial{})
			ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

			hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			expectedT := tt.center.Length() - tt.radius
			if math.Abs(hit.T-expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", expectedT, hit.T)
			}

			if hit.Material == nil {
				t.Error("Expected hit record to carry the sphere material")
			}
		})
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, DummyMaterial{})

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			if !vecClose(hit.Normal, tt.expectedNormal) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_NegativeRadius(t *testing.T) {
	// A negative radius turns the sphere inside out
	sphere := NewSphere(core.NewVec3(0, 0, 0), -1.0, DummyMaterial{})
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if hit.FrontFace {
		t.Error("Expected outer surface of a hollow sphere to register as back face")
	}

	if !vecClose(hit.Normal, core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected normal to still oppose the ray, got %v", hit.Normal)
	}
}

func TestSphere_Hit_PointOnSurface(t *testing.T) {
	sampler := core.NewSeededSampler(42)
	center := core.NewVec3(1, -2, -5)
	radius := 1.5
	sphere := NewSphere(center, radius, DummyMaterial{})

	hits := 0
	for i := 0; i < 500; i++ {
		origin := core.SampleOnUnitSphere(sampler.Get2D()).Multiply(10).Add(center)
		target := core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(radius).Add(center)
		ray := core.NewRay(origin, target.Subtract(origin))

		hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
		if !isHit {
			continue
		}
		hits++

		distance := hit.Point.Subtract(center).Length()
		if math.Abs(distance-radius) > 1e-9 {
			t.Errorf("Hit point %v is %f from center, expected %f", hit.Point, distance, radius)
		}

		if ray.Direction.Dot(hit.Normal) >= 0 {
			t.Errorf("Normal %v does not oppose ray direction %v", hit.Normal, ray.Direction)
		}
	}

	if hits == 0 {
		t.Fatal("Expected rays aimed inside the sphere to hit it")
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, DummyMaterial{})
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 0.5)
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	hit, isHit = sphere.Hit(ray, 3.5, 1000.0)
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Near root excluded, far root accepted
	hit, isHit = sphere.Hit(ray, 1.5, 1000.0)
	if !isHit {
		t.Fatal("Expected far intersection when near root is below tMin")
	}
	if math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected far root t=3, got t=%f", hit.T)
	}
}
