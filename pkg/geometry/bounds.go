package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Bounds is an axis-aligned bounding box. The tracer never culls by bounds
// (intersection is a deliberate linear scan); boxes exist for scene
// statistics and camera framing.
type Bounds struct {
	Min core.Vec3
	Max core.Vec3
}

// NewBoundsFromPoints creates a box that bounds all given points
func NewBoundsFromPoints(points ...core.Vec3) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return Bounds{Min: min, Max: max}
}

// Union returns the smallest box containing both boxes
func (b Bounds) Union(other Bounds) Bounds {
	return NewBoundsFromPoints(b.Min, b.Max, other.Min, other.Max)
}

// Center returns the midpoint of the box
func (b Bounds) Center() core.Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// Size returns the extent of the box along each axis
func (b Bounds) Size() core.Vec3 {
	return b.Max.Subtract(b.Min)
}
