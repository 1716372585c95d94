package core

import (
	"math"
	"testing"
)

func TestVec3_Cross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{"X cross Y", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1)},
		{"Y cross Z", NewVec3(0, 1, 0), NewVec3(0, 0, 1), NewVec3(1, 0, 0)},
		{"Z cross X", NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"Parallel vectors", NewVec3(2, 0, 0), NewVec3(5, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.a.Cross(tt.b)
			if !result.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()
	if math.Abs(v.Length()-1.0) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}
	if !v.ApproxEquals(NewVec3(0.6, 0.8, 0), 1e-12) {
		t.Errorf("Expected (0.6, 0.8, 0), got %v", v)
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"zero", NewVec3(0, 0, 0), true},
		{"tiny", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"one component large", NewVec3(1e-9, 1e-3, 0), false},
		{"unit", NewVec3(1, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.NearZero() != tt.expected {
				t.Errorf("NearZero(%v) = %t, expected %t", tt.v, !tt.expected, tt.expected)
			}
		})
	}
}

func TestVec3_ClampAndSqrt(t *testing.T) {
	v := NewVec3(-0.5, 0.25, 4).Clamp(0, 0.999)
	if !v.Equals(NewVec3(0, 0.25, 0.999)) {
		t.Errorf("Unexpected clamp result %v", v)
	}

	s := NewVec3(0.25, 1, 0).Sqrt()
	if !s.Equals(NewVec3(0.5, 1, 0)) {
		t.Errorf("Unexpected sqrt result %v", s)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))

	point := ray.At(1.5)
	if !point.Equals(NewVec3(1, 2, 0)) {
		t.Errorf("Expected (1, 2, 0), got %v", point)
	}

	if !ray.At(0).Equals(ray.Origin) {
		t.Errorf("At(0) should return the origin")
	}
}
