package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestPlane_Hit_BasicIntersection(t *testing.T) {
	// Create a horizontal plane at y=0
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), DummyMaterial{})

	// Ray shooting down from above
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	hit, isHit := plane.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	expectedT := 1.0
	if math.Abs(hit.T-expectedT) > 1e-9 {
		t.Errorf("Expected t=%f, got t=%f", expectedT, hit.T)
	}

	if !vecClose(hit.Point, core.NewVec3(0, 0, 0)) {
		t.Errorf("Expected hit point at origin, got %v", hit.Point)
	}
}

func TestPlane_NormalizesNormal(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 5, 0), DummyMaterial{})
	ray := core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0))

	hit, isHit := plane.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.Normal.Length()-1.0) > 1e-12 {
		t.Errorf("Expected unit normal, got %v", hit.Normal)
	}
	if math.Abs(hit.T-2.0) > 1e-9 {
		t.Errorf("Expected t=2, got t=%f", hit.T)
	}
}

func TestPlane_Hit_ParallelRay(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), DummyMaterial{})

	// Ray parallel to the plane
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0))

	hit, isHit := plane.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss for parallel ray, but got hit at t=%f", hit.T)
	}
}

func TestPlane_Hit_BehindRay(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), DummyMaterial{})

	// Ray shooting up from above (intersection behind ray origin)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))

	hit, isHit := plane.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss for intersection behind ray, but got hit at t=%f", hit.T)
	}
}

func TestPlane_Hit_FaceNormal(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), DummyMaterial{})

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit (from above)",
			rayOrigin:      core.NewVec3(0, 1, 0),
			rayDirection:   core.NewVec3(0, -1, 0),
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 1, 0),
		},
		{
			name:           "back face hit (from below)",
			rayOrigin:      core.NewVec3(0, -1, 0),
			rayDirection:   core.NewVec3(0, 1, 0),
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, -1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := plane.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
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

func TestPlane_Hit_TiltedPlane(t *testing.T) {
	// Plane y + z = 2, passing through (0, 2, 0)
	plane := NewPlane(core.NewVec3(0, 2, 0), core.NewVec3(0, 1, 1), DummyMaterial{})
	n := core.NewVec3(0, 1, 1).Normalize()

	tests := []struct {
		name          string
		ray           core.Ray
		tMax          float64
		expectHit     bool
		expectedT     float64
		expectedPoint core.Vec3
	}{
		{"axis aligned ray", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), 1000, true, 3, core.NewVec3(0, 0, 2)},
		{"diagonal ray", core.NewRay(core.NewVec3(1, 5, 0), core.NewVec3(1, -1, 0)), 1000, true, 3, core.NewVec3(4, 2, 0)},
		{"hit beyond tMax", core.NewRay(core.NewVec3(1, 5, 0), core.NewVec3(1, -1, 0)), 2.5, false, 0, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := plane.Hit(tt.ray, 0.001, tt.tMax)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if !vecClose(hit.Point, tt.expectedPoint) {
				t.Errorf("Expected point %v, got %v", tt.expectedPoint, hit.Point)
			}
			if !hit.FrontFace || !vecClose(hit.Normal, n) {
				t.Errorf("Expected front face with normal %v, got %v (front=%t)", n, hit.Normal, hit.FrontFace)
			}
		})
	}
}
