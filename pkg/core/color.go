package core

import "math"

// Color is an RGB radiance triple. Channels are unbounded until tone mapping
// compresses them into a displayable range.
type Color struct {
	R, G, B float64
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the componentwise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the componentwise product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// DivideColor returns the componentwise quotient of two colors
func (c Color) DivideColor(other Color) Color {
	return Color{c.R / other.R, c.G / other.G, c.B / other.B}
}

// Pow raises each channel to the given exponent
func (c Color) Pow(exponent float64) Color {
	return Color{
		R: math.Pow(c.R, exponent),
		G: math.Pow(c.G, exponent),
		B: math.Pow(c.B, exponent),
	}
}

// MaxChannel returns the largest of the three channels
func (c Color) MaxChannel() float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}
