package models

import (
	"github.com/taigrr/glyphcube/pkg/math3d"
)

// Side describes one face of the cube: its outward normal before rotation,
// the glyph and color it is drawn with, and its parametric mapping.
type Side struct {
	Name   string
	Normal math3d.Vec3
	Glyph  rune
	Color  string // hex, e.g. "#e53935"

	// point maps surface coordinates (u, v) in [-h, h) to a point on the
	// side of a cube with half width h.
	point func(h, u, v float64) math3d.Vec3
}

// Sides lists the six cube faces in drawing order.
var Sides = [6]Side{
	{
		Name: "front", Normal: math3d.V3(0, 0, -1), Glyph: '@', Color: "#e53935",
		point: func(h, u, v float64) math3d.Vec3 { return math3d.V3(u, v, -h) },
	},
	{
		Name: "right", Normal: math3d.V3(1, 0, 0), Glyph: '$', Color: "#43a047",
		point: func(h, u, v float64) math3d.Vec3 { return math3d.V3(h, v, u) },
	},
	{
		Name: "left", Normal: math3d.V3(-1, 0, 0), Glyph: '~', Color: "#fbc02d",
		point: func(h, u, v float64) math3d.Vec3 { return math3d.V3(-h, v, -u) },
	},
	{
		Name: "back", Normal: math3d.V3(0, 0, 1), Glyph: '#', Color: "#1e88e5",
		point: func(h, u, v float64) math3d.Vec3 { return math3d.V3(-u, v, h) },
	},
	{
		Name: "bottom", Normal: math3d.V3(0, -1, 0), Glyph: ';', Color: "#8e24aa",
		point: func(h, u, v float64) math3d.Vec3 { return math3d.V3(u, -h, -v) },
	},
	{
		Name: "top", Normal: math3d.V3(0, 1, 0), Glyph: '*', Color: "#fb8c00",
		point: func(h, u, v float64) math3d.Vec3 { return math3d.V3(u, h, v) },
	},
}

// Edge glyph and color. Neither is used by any side.
const (
	EdgeGlyph = '+'
	EdgeColor = "#e0e0e0"
)

// Edges are the 12 cube edges as pairs of indices into Cube.Vertices.
var Edges = [12][2]int{
	// Front side (z = -h)
	{0, 1},
	{1, 2},
	{2, 3},
	{3, 0},
	// Back side (z = +h)
	{4, 5},
	{5, 6},
	{6, 7},
	{7, 4},
	// Connecting edges
	{0, 4},
	{1, 5},
	{2, 6},
	{3, 7},
}

// Cube is an axis-aligned cube centered at the origin.
type Cube struct {
	HalfWidth float64
}

// NewCube creates a cube with the given half width.
func NewCube(halfWidth float64) Cube {
	return Cube{HalfWidth: halfWidth}
}

// Vertices returns the 8 corners of the cube.
func (c Cube) Vertices() [8]math3d.Vec3 {
	h := c.HalfWidth
	return [8]math3d.Vec3{
		{X: -h, Y: -h, Z: -h}, // 0
		{X: h, Y: -h, Z: -h},  // 1
		{X: h, Y: h, Z: -h},   // 2
		{X: -h, Y: h, Z: -h},  // 3
		{X: -h, Y: -h, Z: h},  // 4
		{X: h, Y: -h, Z: h},   // 5
		{X: h, Y: h, Z: h},    // 6
		{X: -h, Y: h, Z: h},   // 7
	}
}

// SidePoint returns the point at surface coordinates (u, v) on the given side.
func (c Cube) SidePoint(side int, u, v float64) math3d.Vec3 {
	return Sides[side].point(c.HalfWidth, u, v)
}

// EdgeEndpoints returns the two corners joined by edge i.
func (c Cube) EdgeEndpoints(i int) (a, b math3d.Vec3) {
	verts := c.Vertices()
	e := Edges[i]
	return verts[e[0]], verts[e[1]]
}
