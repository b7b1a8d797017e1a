package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGB triple. Components are unbounded while light is
// accumulated and are clamped only when converted for display.
type Color struct {
	R, G, B float64
}

// RGB creates a color from float components.
func RGB(r, g, b float64) Color {
	return Color{r, g, b}
}

// RGB8 creates a color from 8-bit components.
func RGB8(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

// Colors for convenience
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// Add returns the component-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul returns the component-wise product (surface tinting).
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale multiplies every component by s.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Lerp linearly interpolates from c to o by t.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}
}

// Clamp limits every component to [0, 1]. NaN becomes 0.
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// IsBlack reports whether no component carries positive energy.
func (c Color) IsBlack() bool {
	return c.R <= 0 && c.G <= 0 && c.B <= 0
}

// RGBA converts to an opaque 8-bit color, clamping first and truncating.
func (c Color) RGBA() color.RGBA {
	c = c.Clamp()
	return color.RGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: 255,
	}
}

// ParseHex parses a "#rrggbb" string.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return Color{c.R, c.G, c.B}, nil
}

// Hex formats the clamped color as "#rrggbb".
func (c Color) Hex() string {
	c = c.Clamp()
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Hex()
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(1, x))
}
