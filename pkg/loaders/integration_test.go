package loaders

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

type quietLogger struct{}

func (quietLogger) Printf(format string, args ...interface{}) {}

func renderScene(t *testing.T, mtlText, sceneText string, options renderer.Options) *renderer.Film {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "scene.mtl"), []byte(mtlText), 0o644); err != nil {
		t.Fatal(err)
	}
	scenePath := filepath.Join(dir, "scene.obj")
	if err := os.WriteFile(scenePath, []byte(sceneText), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScene(scenePath)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	return renderer.NewRenderer(s, options, quietLogger{}).Render()
}

func singlePixelOptions(lookFrom, lookTo core.Vec3) renderer.Options {
	return renderer.Options{
		Camera: renderer.CameraOptions{
			LookFrom: lookFrom,
			LookTo:   lookTo,
			FOV:      math.Pi / 2,
			Width:    1,
			Height:   1,
		},
		MaxDepth: 4,
		Workers:  1,
	}
}

// A mirror sphere bounces the camera ray onto an emitting triangle; the
// rendered pixel carries the emitter's color through tone mapping.
func TestRenderLoadedScene_MirrorReflection(t *testing.T) {
	mtlText := `newmtl mirror
Kd 1 1 1
illum 3

newmtl emitter
Ke 1 0 0
`
	sceneText := `mtllib scene.mtl
usemtl mirror
S 0 0 0 1
usemtl emitter
v 5 -5 -5
v 5 5 -5
v 5 0 5
f 1 2 3
`

	x := math.Sqrt(2) / 2
	film := renderScene(t, mtlText, sceneText,
		singlePixelOptions(core.NewVec3(x, 0, 5), core.NewVec3(x, 0, 0)))

	radiance := film.At(0, 0)
	if radiance.G != 0 || radiance.B != 0 {
		t.Errorf("Expected a pure red reflection, got %v", radiance)
	}
	if math.Abs(radiance.R-x) > 1e-6 {
		t.Errorf("Expected reflected red near %f, got %f", x, radiance.R)
	}

	// The hottest channel maps to full brightness.
	img := renderer.Tonemap(film)
	pixel := img.RGBAAt(0, 0)
	if pixel.R != 255 || pixel.G != 0 || pixel.B != 0 || pixel.A != 255 {
		t.Errorf("Expected tone mapped pixel (255,0,0,255), got %+v", pixel)
	}
}

// A second sphere between the surface and the light blocks all direct
// illumination, leaving only the ambient term.
func TestRenderLoadedScene_ShadowLeavesAmbient(t *testing.T) {
	mtlText := `newmtl matte
Ka 0.1
Kd 0.9
`
	sceneText := `mtllib scene.mtl
usemtl matte
S 0 0 0 1
S 0 3 0 2
P 0 10 0 1 1 1
`

	film := renderScene(t, mtlText, sceneText,
		singlePixelOptions(core.NewVec3(0, 0.5, 5), core.NewVec3(0, 0.5, 0)))

	radiance := film.At(0, 0)
	expected := core.NewColor(0.1, 0.1, 0.1)
	if math.Abs(radiance.R-expected.R) > 1e-12 ||
		math.Abs(radiance.G-expected.G) > 1e-12 ||
		math.Abs(radiance.B-expected.B) > 1e-12 {
		t.Errorf("Expected shadowed ambient %v, got %v", expected, radiance)
	}
}

// A head-on lit sphere renders brighter in the middle of the image than at
// its unlit background corners.
func TestRenderLoadedScene_CenterBrighterThanEdge(t *testing.T) {
	mtlText := `newmtl clay
Kd 0.8 0.2 0.2
`
	sceneText := `mtllib scene.mtl
usemtl clay
S 0 0 -5 1
P 0 0 0 1 1 1
`

	options := renderer.Options{
		Camera: renderer.CameraOptions{
			LookFrom: core.NewVec3(0, 0, 0),
			LookTo:   core.NewVec3(0, 0, -1),
			FOV:      math.Pi / 3,
			Width:    15,
			Height:   15,
		},
		MaxDepth: 4,
		Workers:  2,
	}
	film := renderScene(t, mtlText, sceneText, options)
	img := renderer.Tonemap(film)

	center := img.RGBAAt(7, 7)
	corner := img.RGBAAt(0, 0)
	if center.R == 0 {
		t.Fatal("Expected the sphere to cover the center pixel")
	}
	if corner.R != 0 || corner.G != 0 || corner.B != 0 {
		t.Errorf("Expected an unlit background corner, got %+v", corner)
	}
	if corner.A != 255 || center.A != 255 {
		t.Error("Expected opaque pixels everywhere")
	}
}
