package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Material holds the optical properties of a surface, following the Wavefront
// MTL naming conventions.
type Material struct {
	Ka    core.Color // ambient color
	Ke    core.Color // emissive color
	Kd    core.Color // diffuse color
	Ks    core.Color // specular color
	Ns    float64    // specular exponent
	Tr    float64    // transparency, 0 means fully opaque
	Ni    float64    // refractive index
	Illum int        // illumination model indicator
}

// Default returns the material applied to primitives that reference none.
// Everything is black and opaque; the refractive index matches air.
func Default() Material {
	return Material{Ni: 1}
}

// Reflective reports whether the illumination model selects the
// mirror/dielectric shading path.
func (m Material) Reflective() bool {
	return m.Illum > 2
}

// Transparent reports whether the material transmits any light
func (m Material) Transparent() bool {
	return m.Tr != 0
}
