package render

import (
	"math"

	"github.com/taigrr/glyphcube/pkg/math3d"
)

// Grid size in character cells.
const (
	Width  = 120
	Height = 60
)

// Projector maps rotated, camera-relative points onto the character grid.
// The camera sits at the origin looking toward +Z; geometry is pushed
// Distance units along +Z before projection.
type Projector struct {
	Width, Height int
	Distance      float64 // camera distance
	Scale         float64 // projection constant K
	toCamera      math3d.Mat4
}

// NewProjector creates a projector for a width x height grid.
func NewProjector(width, height int, distance, scale float64) Projector {
	return Projector{
		Width:    width,
		Height:   height,
		Distance: distance,
		Scale:    scale,
		toCamera: math3d.Translate(math3d.V3(0, 0, distance)),
	}
}

// ToCamera translates a rotated point along the camera axis.
func (p Projector) ToCamera(v math3d.Vec3) math3d.Vec3 {
	return p.toCamera.MulVec3(v)
}

// Project projects a camera-space point (already translated) to a grid cell.
// It returns the cell, the inverse depth 1/z, and false when the point is
// behind the camera, not finite, or outside the grid. Character cells are
// about twice as tall as wide, so x is stretched by 2.
func (p Projector) Project(v math3d.Vec3) (x, y int, ooz float64, ok bool) {
	if !(v.Z > 0) || !v.IsFinite() {
		return 0, 0, 0, false
	}
	ooz = 1 / v.Z

	fx := math.Floor(float64(p.Width)/2 + p.Scale*ooz*v.X*2)
	fy := math.Floor(float64(p.Height)/2 + p.Scale*ooz*v.Y)
	// NaN fails both comparisons.
	if !(fx >= 0 && fx < float64(p.Width)) || !(fy >= 0 && fy < float64(p.Height)) {
		return 0, 0, 0, false
	}
	return int(fx), int(fy), ooz, true
}
