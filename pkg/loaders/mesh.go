package loaders

import (
	"fmt"
	"path/filepath"

	"github.com/udhos/gwob"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// LoadMesh reads a triangulated Wavefront OBJ model and returns its faces
// as primitives. Materials come from the model's own library when it names
// one; groups without a material entry render as plain white diffuse.
func LoadMesh(path string) ([]geometry.Primitive, error) {
	options := &gwob.ObjParserOptions{}

	obj, err := gwob.NewObjFromFile(path, options)
	if err != nil {
		return nil, fmt.Errorf("reading mesh: %w", err)
	}

	matlib := gwob.NewMaterialLib()
	if obj.Mtllib != "" {
		matlib, err = gwob.ReadMaterialLibFromFile(filepath.Join(filepath.Dir(path), obj.Mtllib), options)
		if err != nil {
			return nil, fmt.Errorf("reading mesh materials: %w", err)
		}
	}

	// The vertex buffer is strided float32 records; offsets are in bytes.
	stride := obj.StrideSize / 4
	positionOffset := obj.StrideOffsetPosition / 4
	normalOffset := obj.StrideOffsetNormal / 4

	var prims []geometry.Primitive
	for _, group := range obj.Groups {
		mat := meshMaterial(matlib, group.Usemtl)

		for face := 0; face < group.IndexCount/3; face++ {
			var verts [3]geometry.Vertex
			for v := 0; v < 3; v++ {
				index := obj.Indices[group.IndexBegin+3*face+v]
				position := core.NewVec3(
					obj.Coord64(stride*index+positionOffset),
					obj.Coord64(stride*index+positionOffset+1),
					obj.Coord64(stride*index+positionOffset+2),
				)
				if obj.NormCoordFound {
					normal := core.NewVec3(
						obj.Coord64(stride*index+normalOffset),
						obj.Coord64(stride*index+normalOffset+1),
						obj.Coord64(stride*index+normalOffset+2),
					).Normalize()
					verts[v] = geometry.NewVertexWithNormal(position, normal)
				} else {
					verts[v] = geometry.NewVertex(position)
				}
			}
			prims = append(prims, geometry.NewTrianglePrimitive(
				geometry.NewTriangle(verts[0], verts[1], verts[2]), mat))
		}
	}
	return prims, nil
}

// meshMaterial converts a material library entry into render properties
func meshMaterial(matlib gwob.MaterialLib, name string) material.Material {
	mat := material.Default()
	mat.Kd = core.NewColor(1, 1, 1)
	mat.Illum = 2

	entry, ok := matlib.Lib[name]
	if !ok {
		return mat
	}
	mat.Ka = core.NewColor(float64(entry.Ka[0]), float64(entry.Ka[1]), float64(entry.Ka[2]))
	mat.Kd = core.NewColor(float64(entry.Kd[0]), float64(entry.Kd[1]), float64(entry.Kd[2]))
	mat.Ks = core.NewColor(float64(entry.Ks[0]), float64(entry.Ks[1]), float64(entry.Ks[2]))
	mat.Ns = float64(entry.Ns)
	return mat
}
