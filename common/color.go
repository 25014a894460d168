package common

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorTransparent is the style keyword for a fully transparent colour.
const ColorTransparent = "transparent"

// Color is a linear RGBA colour with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// ParseColor parses a CSS-like colour string: "#rgb", "#rrggbb" or "transparent".
//
// Parameters:
//   - s: the colour string
//
// Returns:
//   - Color: the parsed colour with alpha 1 (alpha 0 for "transparent")
//   - error: error if the string is not a recognised colour
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == ColorTransparent {
		return Color{}, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// MustColor is like ParseColor but falls back to opaque white on error.
// Intended for style defaults that are known to be valid.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		return Color{R: 1, G: 1, B: 1, A: 1}
	}
	return c
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Lerp blends c toward o by t in RGB space. Alpha is interpolated linearly.
func (c Color) Lerp(o Color, t float64) Color {
	b := colorful.Color{R: c.R, G: c.G, B: c.B}.BlendRgb(colorful.Color{R: o.R, G: o.G, B: o.B}, t)
	return Color{R: b.R, G: b.G, B: b.B, A: c.A + (o.A-c.A)*t}
}

// Hex formats the RGB part of c as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// Float32 returns the colour as a [4]float32 for uniform uploads.
func (c Color) Float32() [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}
