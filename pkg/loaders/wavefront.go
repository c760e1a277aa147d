package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// LoadScene reads a scene description from disk. Material libraries and
// meshes referenced by the scene are resolved relative to its directory.
func LoadScene(path string) (*scene.Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scene: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// ParseScene parses the wavefront-style scene dialect from r: mtllib names
// the material library and must come first, v/vn/f build triangles with fan
// triangulation, S adds a sphere, P adds a point light, usemtl selects the
// material for the primitives that follow, and mesh pulls in an external
// OBJ model. Unknown statements are ignored, but a malformed known
// statement is an error naming its line.
func ParseScene(r io.Reader, dir string) (*scene.Scene, error) {
	parser := &sceneParser{
		dir:       dir,
		scene:     scene.NewScene(),
		materials: map[string]material.Material{},
		current:   material.Default(),
	}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := parser.handle(fields); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	return parser.scene, nil
}

// sceneParser accumulates state while walking the scene file
type sceneParser struct {
	dir       string
	scene     *scene.Scene
	vertices  []core.Vec3
	normals   []core.Vec3
	materials map[string]material.Material
	current   material.Material
	started   bool
	loadedMtl bool
}

func (p *sceneParser) handle(fields []string) error {
	if !p.started {
		p.started = true
		if fields[0] != "mtllib" {
			return fmt.Errorf("scene must begin with mtllib")
		}
	}

	switch fields[0] {
	case "mtllib":
		if p.loadedMtl {
			return fmt.Errorf("duplicate mtllib")
		}
		if len(fields) != 2 {
			return fmt.Errorf("mtllib needs a file name")
		}
		materials, err := LoadMaterials(filepath.Join(p.dir, fields[1]))
		if err != nil {
			return err
		}
		p.materials = materials
		p.loadedMtl = true

	case "v":
		values, err := parseFloats(fields[1:])
		if err != nil {
			return fmt.Errorf("v: %w", err)
		}
		if len(values) != 3 {
			return fmt.Errorf("v needs 3 coordinates, got %d", len(values))
		}
		p.vertices = append(p.vertices, core.NewVec3(values[0], values[1], values[2]))

	case "vn":
		values, err := parseFloats(fields[1:])
		if err != nil {
			return fmt.Errorf("vn: %w", err)
		}
		if len(values) != 3 {
			return fmt.Errorf("vn needs 3 coordinates, got %d", len(values))
		}
		p.normals = append(p.normals, core.NewVec3(values[0], values[1], values[2]))

	case "usemtl":
		if len(fields) != 2 {
			return fmt.Errorf("usemtl needs a material name")
		}
		mat, ok := p.materials[fields[1]]
		if !ok {
			return fmt.Errorf("unknown material %q", fields[1])
		}
		p.current = mat

	case "f":
		if len(fields) < 4 {
			return fmt.Errorf("f needs at least 3 vertices, got %d", len(fields)-1)
		}
		verts := make([]geometry.Vertex, 0, len(fields)-1)
		for _, ref := range fields[1:] {
			vertex, err := p.parseFaceVertex(ref)
			if err != nil {
				return fmt.Errorf("f: %w", err)
			}
			verts = append(verts, vertex)
		}
		for i := 1; i+1 < len(verts); i++ {
			p.scene.AddPrimitive(geometry.NewTrianglePrimitive(
				geometry.NewTriangle(verts[0], verts[i], verts[i+1]), p.current))
		}

	case "S":
		values, err := parseFloats(fields[1:])
		if err != nil {
			return fmt.Errorf("S: %w", err)
		}
		if len(values) != 4 {
			return fmt.Errorf("S needs x y z radius, got %d values", len(values))
		}
		p.scene.AddPrimitive(geometry.NewSpherePrimitive(
			geometry.NewSphere(core.NewVec3(values[0], values[1], values[2]), values[3]), p.current))

	case "P":
		values, err := parseFloats(fields[1:])
		if err != nil {
			return fmt.Errorf("P: %w", err)
		}
		if len(values) != 6 {
			return fmt.Errorf("P needs x y z r g b, got %d values", len(values))
		}
		p.scene.AddLight(scene.NewLight(
			core.NewVec3(values[0], values[1], values[2]),
			core.NewColor(values[3], values[4], values[5])))

	case "mesh":
		if len(fields) != 2 {
			return fmt.Errorf("mesh needs a file path")
		}
		prims, err := LoadMesh(filepath.Join(p.dir, fields[1]))
		if err != nil {
			return fmt.Errorf("loading mesh %s: %w", fields[1], err)
		}
		for _, prim := range prims {
			p.scene.AddPrimitive(prim)
		}
	}

	// unknown statements are ignored
	return nil
}

// parseFaceVertex resolves one face vertex reference of the form v, v/vt,
// v//vn or v/vt/vn. Texture coordinates are validated and discarded.
func (p *sceneParser) parseFaceVertex(ref string) (geometry.Vertex, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return geometry.Vertex{}, fmt.Errorf("malformed vertex %q", ref)
	}

	vi, err := resolveIndex(parts[0], len(p.vertices))
	if err != nil {
		return geometry.Vertex{}, fmt.Errorf("vertex %q: %w", ref, err)
	}

	if len(parts) >= 2 && parts[1] != "" {
		if _, err := strconv.Atoi(parts[1]); err != nil {
			return geometry.Vertex{}, fmt.Errorf("vertex %q: invalid texture index", ref)
		}
	}

	if len(parts) == 3 && parts[2] != "" {
		ni, err := resolveIndex(parts[2], len(p.normals))
		if err != nil {
			return geometry.Vertex{}, fmt.Errorf("normal %q: %w", ref, err)
		}
		return geometry.NewVertexWithNormal(p.vertices[vi], p.normals[ni]), nil
	}

	return geometry.NewVertex(p.vertices[vi]), nil
}

// resolveIndex converts a 1-based or negative relative index into a slice
// position
func resolveIndex(field string, count int) (int, error) {
	idx, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", field)
	}
	switch {
	case idx > 0:
		if idx > count {
			return 0, fmt.Errorf("index %d out of range (%d defined)", idx, count)
		}
		return idx - 1, nil
	case idx < 0:
		if -idx > count {
			return 0, fmt.Errorf("index %d out of range (%d defined)", idx, count)
		}
		return count + idx, nil
	}
	return 0, fmt.Errorf("index 0 is not valid")
}

// parseFloats parses every field as a float64
func parseFloats(fields []string) ([]float64, error) {
	values := make([]float64, len(fields))
	for i, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", field)
		}
		values[i] = value
	}
	return values, nil
}
