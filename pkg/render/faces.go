package render

import (
	"github.com/taigrr/glyphcube/pkg/math3d"
	"github.com/taigrr/glyphcube/pkg/models"
)

// drawFaces samples every side of the cube on a (u, v) grid and writes the
// projected points through the depth test.
func (r *Renderer) drawFaces(fb *Framebuffer, angles math3d.Angles) {
	rot := angles.Matrix()
	facing := angles.FacingMatrix()

	for i, side := range models.Sides {
		if r.cfg.BackfaceCulling && facesAway(facing, side.Normal) {
			continue
		}

		c := Inherit
		if r.cfg.Color {
			c = r.sideColor[i]
		}

		r.sampleSide(fb, rot, i, side.Glyph, c)
	}
}

// facesAway reports whether a side normal, rotated by facing, points along
// +Z, away from the camera.
func facesAway(facing math3d.Mat4, normal math3d.Vec3) bool {
	return facing.MulVec3Dir(normal).Z > 0
}

// sampleSide scans [-h, h) x [-h, h) in steps of the configured density.
// Coordinates are computed from the step index so rounding does not build up.
func (r *Renderer) sampleSide(fb *Framebuffer, rot math3d.Mat4, side int, glyph rune, c Color) {
	h := r.cube.HalfWidth
	step := r.cfg.Density

	for i := 0; ; i++ {
		u := -h + float64(i)*step
		if u >= h {
			break
		}
		for j := 0; ; j++ {
			v := -h + float64(j)*step
			if v >= h {
				break
			}
			p := r.proj.ToCamera(rot.MulVec3Dir(r.cube.SidePoint(side, u, v)))
			if x, y, ooz, ok := r.proj.Project(p); ok {
				fb.Plot(x, y, ooz, glyph, c)
			}
		}
	}
}
