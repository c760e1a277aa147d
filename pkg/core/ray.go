package core

// Epsilon is the shared comparison tolerance for intersection distances and
// other floating-point tests.
const Epsilon = 1e-10

// Bias is the offset applied to secondary ray origins so they do not
// immediately re-hit the surface they spawned from. It must stay well above
// Epsilon for the offset to clear the intersection tolerance.
const Bias = 1e-8

// Ray represents a ray with a unit direction and per-traversal state. Rays
// live for a single trace; they are never shared between pixels.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Distance  float64 // distance to the last hit, written by the intersector
	Inside    bool    // true while traveling inside a refractive medium
}

// NewRay creates a new ray, normalizing the direction
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
