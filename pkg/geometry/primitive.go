package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Kind identifies the shape stored in a primitive
type Kind int

const (
	// KindSphere marks a primitive backed by a sphere
	KindSphere Kind = iota
	// KindTriangle marks a primitive backed by a triangle
	KindTriangle
)

// Primitive pairs a shape with its surface material. Exactly one of Sphere
// or Triangle is meaningful, selected by Kind.
type Primitive struct {
	Kind     Kind
	Sphere   Sphere
	Triangle Triangle
	Material material.Material
}

// NewSpherePrimitive creates a primitive from a sphere and its material
func NewSpherePrimitive(sphere Sphere, mat material.Material) Primitive {
	return Primitive{Kind: KindSphere, Sphere: sphere, Material: mat}
}

// NewTrianglePrimitive creates a primitive from a triangle and its material
func NewTrianglePrimitive(triangle Triangle, mat material.Material) Primitive {
	return Primitive{Kind: KindTriangle, Triangle: triangle, Material: mat}
}

// Intersect tests if a ray intersects the primitive's shape and returns the
// hit distance
func (p Primitive) Intersect(ray core.Ray) (float64, bool) {
	switch p.Kind {
	case KindSphere:
		return p.Sphere.Intersect(ray)
	default:
		return p.Triangle.Intersect(ray)
	}
}

// NormalAt returns the unit shading normal at a hit point, flipped when
// necessary so it always faces against the incoming ray direction. Triangles
// interpolate vertex normals only when every vertex carries one.
func (p Primitive) NormalAt(point, direction core.Vec3) core.Vec3 {
	var normal core.Vec3
	switch p.Kind {
	case KindSphere:
		normal = point.Subtract(p.Sphere.Center).Normalize()
	default:
		if p.Triangle.HasShadingNormals() {
			normal = p.Triangle.InterpolateNormal(point)
		} else {
			normal = p.Triangle.FaceNormal()
		}
	}

	if direction.Dot(normal) > 0 {
		normal = normal.Negate()
	}
	return normal
}

// Bounds returns the axis-aligned bounding box of the primitive's shape
func (p Primitive) Bounds() Bounds {
	switch p.Kind {
	case KindSphere:
		return p.Sphere.Bounds()
	default:
		return p.Triangle.Bounds()
	}
}
