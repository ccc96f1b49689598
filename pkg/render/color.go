package render

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an alias for color.RGBA for convenience.
// The zero value (alpha 0) means "inherit": no color is applied to the cell.
type Color = color.RGBA

// Inherit leaves the cell in the display surface's own foreground color.
var Inherit = Color{}

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// ParseHex parses a "#rrggbb" or "#rgb" color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Inherit, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// mustHex is used for the fixed palette only.
func mustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the "#rrggbb" form of c, or "" for Inherit.
func Hex(c Color) string {
	if c.A == 0 {
		return ""
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

// toColor converts a cell color to the color.Color interface, nil when the
// cell inherits.
func toColor(c Color) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}
