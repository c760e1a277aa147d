package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Whitted computes radiance with classic recursive ray tracing: local
// Phong lighting with shadow rays, plus mirror reflection and Snell
// refraction for materials whose illumination model asks for them.
type Whitted struct {
	scene    *scene.Scene
	maxDepth int
}

// NewWhitted creates a Whitted integrator for the given scene. Rays deeper
// than maxDepth contribute black, which bounds the recursion.
func NewWhitted(s *scene.Scene, maxDepth int) *Whitted {
	return &Whitted{scene: s, maxDepth: maxDepth}
}

// RayColor computes the radiance carried back along a camera ray
func (w *Whitted) RayColor(ray core.Ray) core.Color {
	return w.trace(&ray, 1)
}

// trace intersects the ray against the scene and shades the nearest hit.
// The hit distance is recorded on the ray itself, which reflection shading
// reads back to place its virtual light.
func (w *Whitted) trace(ray *core.Ray, depth int) core.Color {
	if depth > w.maxDepth {
		return core.Color{}
	}

	prim, isHit := w.scene.Intersect(ray)
	if !isHit {
		return core.Color{}
	}

	return w.shade(*ray, prim, depth)
}

func (w *Whitted) shade(ray core.Ray, prim *geometry.Primitive, depth int) core.Color {
	point := ray.At(ray.Distance)
	normal := prim.NormalAt(point, ray.Direction)
	mat := prim.Material

	if ray.Inside {
		return w.shadeInside(ray, prim, point, normal, depth)
	}

	color := mat.Ka.Add(mat.Ke)

	for _, light := range w.scene.Lights() {
		if !w.lightVisible(light, point, normal) {
			continue
		}
		toLight := light.Position.Subtract(point).Normalize()
		color = color.Add(diffuse(mat, light.Intensity, normal, toLight))
		color = color.Add(specular(mat, light.Intensity, normal, toLight, ray.Direction))
	}

	if !mat.Reflective() {
		return color
	}

	reflected := reflectRay(ray, normal, point)
	intensity := w.trace(&reflected, depth+1)

	// Light the surface from wherever the reflected ray landed, as if a
	// point light of the returned radiance sat at that spot. A miss leaves
	// the radiance black, so the contribution vanishes on its own.
	lightPoint := reflected.At(reflected.Distance)
	toVirtual := lightPoint.Subtract(point).Normalize()
	color = color.Add(diffuse(mat, intensity, normal, toVirtual))
	color = color.Add(specular(mat, intensity, normal, toVirtual, ray.Direction))

	if mat.Transparent() {
		refracted, ok := refractRay(ray, normal, 1, mat.Ni, point)
		if ok {
			refracted.Inside = true
		} else {
			refracted = reflectRay(ray, normal, point)
		}
		color = color.Add(w.trace(&refracted, depth+1).Multiply(mat.Tr))
	}

	return color
}

// shadeInside handles rays traveling through a refractive medium. Opaque
// interiors shade like their outside surface; transparent ones bend the ray
// back out with no local lighting added while inside.
func (w *Whitted) shadeInside(ray core.Ray, prim *geometry.Primitive, point, normal core.Vec3, depth int) core.Color {
	mat := prim.Material

	if !mat.Transparent() {
		outside := ray
		outside.Inside = false
		return w.shade(outside, prim, depth)
	}

	refracted, ok := refractRay(ray, normal, mat.Ni, 1, point)
	if !ok {
		// Total internal reflection keeps the ray inside the medium.
		refracted = reflectRay(ray, normal, point)
		refracted.Inside = true
	}
	return w.trace(&refracted, depth+1)
}

// lightVisible reports whether a point light reaches the hit point. The
// light must sit on the normal-facing side, and nothing may block the
// shadow ray strictly before the light's distance. The shadow origin is
// pushed off the surface along the normal to avoid immediate
// self-intersection.
func (w *Whitted) lightVisible(light scene.Light, point, normal core.Vec3) bool {
	toLight := light.Position.Subtract(point)
	if normal.Dot(toLight) < -core.Epsilon {
		return false
	}

	shadowRay := core.NewRay(point.Add(normal.Multiply(core.Bias)), toLight)
	if _, isHit := w.scene.Intersect(&shadowRay); isHit && shadowRay.Distance < toLight.Length()-core.Epsilon {
		return false
	}
	return true
}

// diffuse returns the Lambertian contribution of one light
func diffuse(mat material.Material, intensity core.Color, normal, toLight core.Vec3) core.Color {
	return mat.Kd.MultiplyColor(intensity).Multiply(math.Max(0, normal.Dot(toLight)))
}

// specular returns the Phong contribution of one light, mirroring the light
// direction about the normal and comparing it against the direction back
// toward the viewer. The dot product is clamped so fractional exponents
// never see a negative base.
func specular(mat material.Material, intensity core.Color, normal, toLight, viewDirection core.Vec3) core.Color {
	reflected := normal.Multiply(2 * normal.Dot(toLight)).Subtract(toLight)
	toViewer := viewDirection.Negate()
	return mat.Ks.MultiplyColor(intensity).Multiply(math.Pow(math.Max(0, reflected.Dot(toViewer)), mat.Ns))
}

// reflectRay builds the mirror ray leaving a surface, with its origin pushed
// off the surface along the new direction to avoid immediate
// self-intersection.
func reflectRay(ray core.Ray, normal, point core.Vec3) core.Ray {
	falling := ray.Direction.Negate()
	direction := normal.Multiply(2 * falling.Dot(normal)).Subtract(falling).Normalize()
	return core.NewRay(point.Add(direction.Multiply(core.Bias)), direction)
}

// refractRay bends a ray across the boundary between refractive indices n1
// and n2 using Snell's law. It reports false when no refracted ray exists,
// either because n2 is zero or because the angle passes the critical angle
// (total internal reflection); callers substitute full reflection.
func refractRay(ray core.Ray, normal core.Vec3, n1, n2 float64, point core.Vec3) (core.Ray, bool) {
	if n2 == 0 {
		return core.Ray{}, false
	}

	cos1 := -ray.Direction.Dot(normal)
	sin1 := math.Sqrt(math.Max(0, 1-cos1*cos1))

	sin2 := n1 * sin1 / n2
	if sin2 > 1+core.Epsilon {
		return core.Ray{}, false
	}
	cos2 := math.Sqrt(math.Max(0, 1-sin2*sin2))

	direction := ray.Direction.Add(normal.Multiply(cos1)).Multiply(n1 / n2).
		Subtract(normal.Multiply(cos2)).Normalize()
	return core.NewRay(point.Add(direction.Multiply(core.Bias)), direction), true
}
