package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func xyTriangle() Triangle {
	return NewTriangle(
		NewVertex(core.NewVec3(0, 0, 0)),
		NewVertex(core.NewVec3(1, 0, 0)),
		NewVertex(core.NewVec3(0, 1, 0)),
	)
}

func TestTriangle_Intersect(t *testing.T) {
	triangle := xyTriangle()

	tests := []struct {
		name             string
		rayOrigin        core.Vec3
		rayDirection     core.Vec3
		shouldHit        bool
		expectedDistance float64
	}{
		{
			name:             "ray hits triangle interior",
			rayOrigin:        core.NewVec3(0.25, 0.25, -1),
			rayDirection:     core.NewVec3(0, 0, 1),
			shouldHit:        true,
			expectedDistance: 1.0,
		},
		{
			name:             "ray hits triangle edge",
			rayOrigin:        core.NewVec3(0.5, 0, -1),
			rayDirection:     core.NewVec3(0, 0, 1),
			shouldHit:        true,
			expectedDistance: 1.0,
		},
		{
			name:             "ray hits triangle vertex",
			rayOrigin:        core.NewVec3(0, 0, 2),
			rayDirection:     core.NewVec3(0, 0, -1),
			shouldHit:        true,
			expectedDistance: 2.0,
		},
		{
			name:         "ray passes outside triangle",
			rayOrigin:    core.NewVec3(1, 1, -1),
			rayDirection: core.NewVec3(0, 0, 1),
			shouldHit:    false,
		},
		{
			name:         "ray parallel to triangle plane",
			rayOrigin:    core.NewVec3(0.25, 0.25, 1),
			rayDirection: core.NewVec3(1, 0, 0),
			shouldHit:    false,
		},
		{
			name:         "triangle behind ray origin",
			rayOrigin:    core.NewVec3(0.25, 0.25, -1),
			rayDirection: core.NewVec3(0, 0, -1),
			shouldHit:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			distance, isHit := triangle.Intersect(ray)

			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got hit=%t", tt.shouldHit, isHit)
			}
			if !tt.shouldHit {
				return
			}
			if math.Abs(distance-tt.expectedDistance) > 1e-9 {
				t.Errorf("Expected distance=%f, got distance=%f", tt.expectedDistance, distance)
			}
		})
	}
}

func TestTriangle_Intersect_Degenerate(t *testing.T) {
	// All three vertices collinear, so the plane normal vanishes
	triangle := NewTriangle(
		NewVertex(core.NewVec3(0, 0, 0)),
		NewVertex(core.NewVec3(1, 0, 0)),
		NewVertex(core.NewVec3(2, 0, 0)),
	)
	ray := core.NewRay(core.NewVec3(1, 0, -1), core.NewVec3(0, 0, 1))

	if _, isHit := triangle.Intersect(ray); isHit {
		t.Error("Expected degenerate triangle to miss")
	}
}

func TestTriangle_Area(t *testing.T) {
	triangle := xyTriangle()
	if math.Abs(triangle.Area()-0.5) > 1e-9 {
		t.Errorf("Expected area=0.5, got %f", triangle.Area())
	}
}

func TestTriangle_FaceNormal(t *testing.T) {
	triangle := xyTriangle()
	normal := triangle.FaceNormal()

	expected := core.NewVec3(0, 0, 1)
	if normal.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", expected, normal)
	}
}

func TestTriangle_HasShadingNormals(t *testing.T) {
	up := core.NewVec3(0, 0, 1)
	full := NewTriangle(
		NewVertexWithNormal(core.NewVec3(0, 0, 0), up),
		NewVertexWithNormal(core.NewVec3(1, 0, 0), up),
		NewVertexWithNormal(core.NewVec3(0, 1, 0), up),
	)
	if !full.HasShadingNormals() {
		t.Error("Expected shading normals when every vertex has one")
	}

	partial := NewTriangle(
		NewVertexWithNormal(core.NewVec3(0, 0, 0), up),
		NewVertexWithNormal(core.NewVec3(1, 0, 0), up),
		NewVertex(core.NewVec3(0, 1, 0)),
	)
	if partial.HasShadingNormals() {
		t.Error("Expected no shading normals when one vertex lacks one")
	}
}

func TestTriangle_InterpolateNormal(t *testing.T) {
	triangle := NewTriangle(
		NewVertexWithNormal(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)),
		NewVertexWithNormal(core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)),
		NewVertexWithNormal(core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1)),
	)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{
			name:     "at first vertex",
			point:    core.NewVec3(0, 0, 0),
			expected: core.NewVec3(1, 0, 0),
		},
		{
			name:     "at second vertex",
			point:    core.NewVec3(1, 0, 0),
			expected: core.NewVec3(0, 1, 0),
		},
		{
			name:     "at centroid",
			point:    core.NewVec3(1.0/3.0, 1.0/3.0, 0),
			expected: core.NewVec3(1, 1, 1).Normalize(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normal := triangle.InterpolateNormal(tt.point)
			if normal.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expected, normal)
			}
		})
	}
}

func TestTriangle_InterpolateNormal_DegenerateFallsBack(t *testing.T) {
	up := core.NewVec3(0, 0, 1)
	triangle := NewTriangle(
		NewVertexWithNormal(core.NewVec3(0, 0, 0), up),
		NewVertexWithNormal(core.NewVec3(1, 0, 0), up),
		NewVertexWithNormal(core.NewVec3(2, 0, 0), up),
	)

	// Degenerate triangles have zero area, so interpolation is undefined
	// and the face normal (itself zero, normalized to zero) is returned.
	normal := triangle.InterpolateNormal(core.NewVec3(1, 0, 0))
	if normal.Subtract(triangle.FaceNormal()).Length() > 1e-9 {
		t.Errorf("Expected face normal fallback, got %v", normal)
	}
}

func TestTriangle_Bounds(t *testing.T) {
	triangle := NewTriangle(
		NewVertex(core.NewVec3(-1, 0, 2)),
		NewVertex(core.NewVec3(3, -2, 0)),
		NewVertex(core.NewVec3(0, 1, -1)),
	)
	bounds := triangle.Bounds()

	expectedMin := core.NewVec3(-1, -2, -1)
	expectedMax := core.NewVec3(3, 1, 2)

	const tolerance = 1e-9
	if bounds.Min.Subtract(expectedMin).Length() > tolerance {
		t.Errorf("Expected min %v, got %v", expectedMin, bounds.Min)
	}
	if bounds.Max.Subtract(expectedMax).Length() > tolerance {
		t.Errorf("Expected max %v, got %v", expectedMax, bounds.Max)
	}
}
