package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// Intersect tests if a ray intersects the sphere and returns the hit
// distance. Ray directions are unit length, so the quadratic's leading
// coefficient is one.
func (s Sphere) Intersect(ray core.Ray) (float64, bool) {
	oc := ray.Origin.Subtract(s.Center)
	b := 2 * ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := b*b - 4*c
	if discriminant < 0 {
		return 0, false
	}

	// Compute the root on b's side of the parabola first, then derive the
	// other from the product of roots. Subtracting nearly equal magnitudes
	// here would lose most of the significant digits.
	sqrtD := math.Sqrt(discriminant)
	signB := 1.0
	if b < -core.Epsilon {
		signB = -1.0
	}
	t0 := -(b + signB*sqrtD) / 2
	t1 := c / t0

	if t1 < t0-core.Epsilon {
		t0, t1 = t1, t0
	}

	if t0 > core.Epsilon {
		return t0, true
	}
	if t1 > core.Epsilon {
		// The origin is inside the sphere; the far root is the exit point.
		return t1, true
	}
	return 0, false
}

// Bounds returns the axis-aligned bounding box of the sphere
func (s Sphere) Bounds() Bounds {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return Bounds{
		Min: s.Center.Subtract(radius),
		Max: s.Center.Add(radius),
	}
}
