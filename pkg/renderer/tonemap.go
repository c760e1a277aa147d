package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/nfnt/resize"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Tonemap converts a film of unbounded radiance into an 8-bit image. An
// extended Reinhard curve calibrated to the film's maximum channel maps
// radiance into [0,1] so the brightest channel lands exactly on white, then
// gamma correction is applied. A film with no energy stays black, which
// also avoids dividing by a zero maximum.
func Tonemap(film *Film) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, film.Width, film.Height))

	maxPix := film.MaxChannel()
	if math.Abs(maxPix) < core.Epsilon {
		for row := 0; row < film.Height; row++ {
			for col := 0; col < film.Width; col++ {
				img.SetRGBA(col, row, color.RGBA{A: 255})
			}
		}
		return img
	}

	white := core.NewColor(1, 1, 1)
	for row := 0; row < film.Height; row++ {
		for col := 0; col < film.Width; col++ {
			pixel := film.At(row, col)

			mapped := pixel.MultiplyColor(white.Add(pixel.Multiply(1 / (maxPix * maxPix)))).
				DivideColor(white.Add(pixel))
			mapped = mapped.Pow(1 / 2.2).Multiply(255)

			img.SetRGBA(col, row, color.RGBA{
				R: clampChannel(mapped.R),
				G: clampChannel(mapped.G),
				B: clampChannel(mapped.B),
				A: 255,
			})
		}
	}
	return img
}

// clampChannel truncates a mapped channel to an 8-bit value
func clampChannel(value float64) uint8 {
	if value < 0 {
		return 0
	}
	if value > 255 {
		return 255
	}
	return uint8(value)
}

// Preview scales a tone mapped image down to the given width, keeping the
// aspect ratio
func Preview(img image.Image, width uint) image.Image {
	return resize.Resize(width, 0, img, resize.Bilinear)
}
