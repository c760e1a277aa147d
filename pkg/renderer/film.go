package renderer

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Film stores the unbounded radiance of every pixel in row-major order.
// Workers write disjoint rows, so no locking is needed during a render.
type Film struct {
	Width  int
	Height int
	pixels []core.Color
}

// NewFilm creates a black film of the given dimensions
func NewFilm(width, height int) *Film {
	return &Film{
		Width:  width,
		Height: height,
		pixels: make([]core.Color, width*height),
	}
}

// Set stores the radiance for pixel (row, col)
func (f *Film) Set(row, col int, color core.Color) {
	f.pixels[row*f.Width+col] = color
}

// At returns the radiance of pixel (row, col)
func (f *Film) At(row, col int) core.Color {
	return f.pixels[row*f.Width+col]
}

// MaxChannel returns the largest channel value across the whole film
func (f *Film) MaxChannel() float64 {
	if len(f.pixels) == 0 {
		return 0
	}
	maxPix := f.pixels[0].R
	for _, pixel := range f.pixels {
		maxPix = math.Max(maxPix, pixel.MaxChannel())
	}
	return maxPix
}

var radianceMagic = [4]byte{'W', 'R', 'A', 'D'}

const radianceVersion uint16 = 1

type radianceHeader struct {
	Magic   [4]byte
	Version uint16
	Width   uint32
	Height  uint32
}

// WriteRadiance writes the film's raw radiance to w, zstd-compressed, so a
// finished render can be tone mapped again later without re-tracing.
func (f *Film) WriteRadiance(w io.Writer) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating radiance encoder: %w", err)
	}

	header := radianceHeader{
		Magic:   radianceMagic,
		Version: radianceVersion,
		Width:   uint32(f.Width),
		Height:  uint32(f.Height),
	}
	if err := binary.Write(enc, binary.LittleEndian, header); err != nil {
		enc.Close()
		return fmt.Errorf("writing radiance header: %w", err)
	}

	samples := make([]float64, 0, len(f.pixels)*3)
	for _, pixel := range f.pixels {
		samples = append(samples, pixel.R, pixel.G, pixel.B)
	}
	if err := binary.Write(enc, binary.LittleEndian, samples); err != nil {
		enc.Close()
		return fmt.Errorf("writing radiance samples: %w", err)
	}

	return enc.Close()
}

// ReadRadiance reads a film previously written by WriteRadiance
func ReadRadiance(r io.Reader) (*Film, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("creating radiance decoder: %w", err)
	}
	defer dec.Close()

	var header radianceHeader
	if err := binary.Read(dec, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("reading radiance header: %w", err)
	}
	if header.Magic != radianceMagic {
		return nil, fmt.Errorf("not a radiance file")
	}
	if header.Version != radianceVersion {
		return nil, fmt.Errorf("unsupported radiance version %d", header.Version)
	}
	if header.Width == 0 || header.Height == 0 {
		return nil, fmt.Errorf("invalid radiance dimensions %dx%d", header.Width, header.Height)
	}

	film := NewFilm(int(header.Width), int(header.Height))
	samples := make([]float64, len(film.pixels)*3)
	if err := binary.Read(dec, binary.LittleEndian, samples); err != nil {
		return nil, fmt.Errorf("reading radiance samples: %w", err)
	}
	for i := range film.pixels {
		film.pixels[i] = core.NewColor(samples[i*3], samples[i*3+1], samples[i*3+2])
	}
	return film, nil
}
