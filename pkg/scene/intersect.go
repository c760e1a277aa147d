package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Intersect finds the closest primitive hit by the ray and records the hit
// distance on the ray itself. On a miss the recorded distance is zero. A
// later primitive replaces the current closest only when it is nearer by
// more than the shared tolerance, so ties keep the earliest primitive in
// insertion order.
func (s *Scene) Intersect(ray *core.Ray) (*geometry.Primitive, bool) {
	var closest *geometry.Primitive
	var minDistance float64

	for i := range s.primitives {
		distance, isHit := s.primitives[i].Intersect(*ray)
		if !isHit {
			continue
		}
		if closest == nil || distance < minDistance-core.Epsilon {
			closest = &s.primitives[i]
			minDistance = distance
		}
	}

	ray.Distance = minDistance
	return closest, closest != nil
}
