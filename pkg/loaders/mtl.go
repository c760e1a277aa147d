package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// LoadMaterials reads a wavefront material library from disk
func LoadMaterials(path string) (map[string]material.Material, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening material library: %w", err)
	}
	defer file.Close()

	materials, err := ParseMaterials(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return materials, nil
}

// ParseMaterials parses a wavefront material library from r. Color keys
// accept a single value replicated across channels or three explicit
// channels; dissolve (d) is stored as its transparency complement.
func ParseMaterials(r io.Reader) (map[string]material.Material, error) {
	materials := map[string]material.Material{}
	var name string
	var current material.Material

	flush := func() {
		if name != "" {
			materials[name] = current
		}
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

		if fields[0] == "newmtl" {
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: newmtl needs a name", lineNum)
			}
			flush()
			name = fields[1]
			current = material.Default()
			continue
		}

		if name == "" {
			return nil, fmt.Errorf("line %d: %s before newmtl", lineNum, fields[0])
		}
		if err := applyMaterialKey(&current, fields); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading material library: %w", err)
	}
	flush()
	return materials, nil
}

// applyMaterialKey sets one material property from a statement. Unknown
// keys are ignored.
func applyMaterialKey(mat *material.Material, fields []string) error {
	key := fields[0]
	switch key {
	case "Ka", "Ke", "Kd", "Ks":
		color, err := parseColor(fields[1:])
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case "Ka":
			mat.Ka = color
		case "Ke":
			mat.Ke = color
		case "Kd":
			mat.Kd = color
		case "Ks":
			mat.Ks = color
		}

	case "Ns", "Tr", "Ni", "d", "illum":
		values, err := parseFloats(fields[1:])
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if len(values) != 1 {
			return fmt.Errorf("%s needs one value, got %d", key, len(values))
		}
		switch key {
		case "Ns":
			mat.Ns = values[0]
		case "Tr":
			mat.Tr = values[0]
		case "Ni":
			mat.Ni = values[0]
		case "d":
			mat.Tr = 1 - values[0]
		case "illum":
			mat.Illum = int(values[0])
		}
	}
	return nil
}

// parseColor reads one replicated value or three channel values
func parseColor(fields []string) (core.Color, error) {
	values, err := parseFloats(fields)
	if err != nil {
		return core.Color{}, err
	}
	switch len(values) {
	case 1:
		return core.NewColor(values[0], values[0], values[0]), nil
	case 3:
		return core.NewColor(values[0], values[1], values[2]), nil
	}
	return core.Color{}, fmt.Errorf("needs 1 or 3 values, got %d", len(values))
}
