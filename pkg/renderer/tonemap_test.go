package renderer

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestTonemap_BlackFilmStaysBlack(t *testing.T) {
	img := Tonemap(NewFilm(4, 4))

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			pixel := img.RGBAAt(col, row)
			if pixel.R != 0 || pixel.G != 0 || pixel.B != 0 {
				t.Fatalf("Expected black pixel at (%d,%d), got %v", row, col, pixel)
			}
			if pixel.A != 255 {
				t.Fatalf("Expected opaque pixel at (%d,%d), got alpha %d", row, col, pixel.A)
			}
		}
	}
}

func TestTonemap_MaxChannelMapsToWhitePoint(t *testing.T) {
	film := NewFilm(2, 1)
	film.Set(0, 0, core.NewColor(2, 1, 0.5))
	film.Set(0, 1, core.NewColor(0.1, 0.1, 0.1))

	img := Tonemap(film)

	// The curve sends the film's maximum channel exactly to 255.
	if got := img.RGBAAt(0, 0).R; got != 255 {
		t.Errorf("Expected max channel to map to 255, got %d", got)
	}

	bright := img.RGBAAt(0, 0)
	if bright.G >= bright.R || bright.B >= bright.G {
		t.Errorf("Expected channel order preserved, got %v", bright)
	}
	if bright.B == 0 {
		t.Error("Expected positive radiance to stay above black")
	}
}

func TestTonemap_MonotoneAcrossPixels(t *testing.T) {
	film := NewFilm(3, 1)
	film.Set(0, 0, core.NewColor(0.2, 0.2, 0.2))
	film.Set(0, 1, core.NewColor(1, 1, 1))
	film.Set(0, 2, core.NewColor(5, 5, 5))

	img := Tonemap(film)

	dim := img.RGBAAt(0, 0).R
	mid := img.RGBAAt(1, 0).R
	hot := img.RGBAAt(2, 0).R
	if !(dim < mid && mid < hot) {
		t.Errorf("Expected increasing brightness, got %d, %d, %d", dim, mid, hot)
	}
	if hot != 255 {
		t.Errorf("Expected brightest pixel at 255, got %d", hot)
	}
}

func TestPreview_ScalesDown(t *testing.T) {
	film := NewFilm(64, 32)
	film.Set(0, 0, core.NewColor(1, 1, 1))

	preview := Preview(Tonemap(film), 16)

	bounds := preview.Bounds()
	if bounds.Dx() != 16 || bounds.Dy() != 8 {
		t.Errorf("Expected 16x8 preview, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}
