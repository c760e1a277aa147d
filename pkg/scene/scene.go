package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Light represents a point light source
type Light struct {
	Position  core.Vec3
	Intensity core.Color
}

// NewLight creates a new point light
func NewLight(position core.Vec3, intensity core.Color) Light {
	return Light{Position: position, Intensity: intensity}
}

// Scene contains all the elements needed for rendering. Primitives and
// lights are appended during loading and read-only while rendering, so a
// scene may be shared across render workers.
type Scene struct {
	primitives []geometry.Primitive
	lights     []Light
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{}
}

// AddPrimitive appends a primitive to the scene
func (s *Scene) AddPrimitive(primitive geometry.Primitive) {
	s.primitives = append(s.primitives, primitive)
}

// AddLight appends a point light to the scene
func (s *Scene) AddLight(light Light) {
	s.lights = append(s.lights, light)
}

// Primitives returns the primitives in insertion order
func (s *Scene) Primitives() []geometry.Primitive {
	return s.primitives
}

// Lights returns the point lights in insertion order
func (s *Scene) Lights() []Light {
	return s.lights
}

// Bounds returns the axis-aligned bounding box enclosing every primitive.
// An empty scene returns an empty box at the origin.
func (s *Scene) Bounds() geometry.Bounds {
	if len(s.primitives) == 0 {
		return geometry.Bounds{}
	}
	bounds := s.primitives[0].Bounds()
	for _, primitive := range s.primitives[1:] {
		bounds = bounds.Union(primitive.Bounds())
	}
	return bounds
}
