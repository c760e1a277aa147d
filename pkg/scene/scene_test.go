package scene

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func TestScene_AddPrimitive_PreservesOrder(t *testing.T) {
	s := NewScene()
	s.AddPrimitive(geometry.NewSpherePrimitive(geometry.NewSphere(core.NewVec3(0, 0, 0), 1), material.Default()))
	s.AddPrimitive(geometry.NewSpherePrimitive(geometry.NewSphere(core.NewVec3(5, 0, 0), 2), material.Default()))

	prims := s.Primitives()
	if len(prims) != 2 {
		t.Fatalf("Expected 2 primitives, got %d", len(prims))
	}
	if prims[0].Sphere.Radius != 1 || prims[1].Sphere.Radius != 2 {
		t.Error("Expected primitives in insertion order")
	}
}

func TestScene_AddLight(t *testing.T) {
	s := NewScene()
	s.AddLight(NewLight(core.NewVec3(0, 10, 0), core.NewColor(1, 1, 1)))

	lights := s.Lights()
	if len(lights) != 1 {
		t.Fatalf("Expected 1 light, got %d", len(lights))
	}
	if lights[0].Position.Y != 10 {
		t.Errorf("Expected light at y=10, got %v", lights[0].Position)
	}
}

func TestScene_Bounds(t *testing.T) {
	s := NewScene()
	s.AddPrimitive(geometry.NewSpherePrimitive(geometry.NewSphere(core.NewVec3(0, 0, 0), 1), material.Default()))
	s.AddPrimitive(geometry.NewSpherePrimitive(geometry.NewSphere(core.NewVec3(5, 0, 0), 1), material.Default()))

	bounds := s.Bounds()

	const tolerance = 1e-9
	if bounds.Min.Subtract(core.NewVec3(-1, -1, -1)).Length() > tolerance {
		t.Errorf("Expected min (-1,-1,-1), got %v", bounds.Min)
	}
	if bounds.Max.Subtract(core.NewVec3(6, 1, 1)).Length() > tolerance {
		t.Errorf("Expected max (6,1,1), got %v", bounds.Max)
	}
}

func TestScene_Bounds_Empty(t *testing.T) {
	bounds := NewScene().Bounds()
	if !bounds.Min.IsZero() || !bounds.Max.IsZero() {
		t.Errorf("Expected empty bounds at origin, got %v to %v", bounds.Min, bounds.Max)
	}
}
