package render

import (
	"github.com/taigrr/glyphcube/pkg/math3d"
	"github.com/taigrr/glyphcube/pkg/models"
)

// drawEdges draws the 12 cube edges. Both endpoints are rotated and moved
// in front of the camera, then samples are interpolated between them.
func (r *Renderer) drawEdges(fb *Framebuffer, angles math3d.Angles) {
	rot := angles.Matrix()
	verts := r.cube.Vertices()

	// Transform vertices
	var camVerts [8]math3d.Vec3
	for i, v := range verts {
		camVerts[i] = r.proj.ToCamera(rot.MulVec3Dir(v))
	}

	for _, edge := range models.Edges {
		r.drawLine3D(fb, camVerts[edge[0]], camVerts[edge[1]])
	}
}

// drawLine3D samples the segment a-b in camera space.
func (r *Renderer) drawLine3D(fb *Framebuffer, a, b math3d.Vec3) {
	for s := 0; s <= EdgeSteps; s++ {
		t := float64(s) / EdgeSteps
		if x, y, ooz, ok := r.proj.Project(a.Lerp(b, t)); ok {
			fb.Plot(x, y, ooz+EdgeBias, models.EdgeGlyph, r.edgeColor)
		}
	}
}
