package render

import (
	"fmt"

	"github.com/taigrr/glyphcube/pkg/math3d"
	"github.com/taigrr/glyphcube/pkg/models"
)

// EdgeBias is added to the inverse depth of edge samples so that an edge
// wins over a face sample at exactly the same depth.
const EdgeBias = 1e-6

// EdgeSteps is the number of interpolation steps per edge; each edge gets
// EdgeSteps+1 samples including both endpoints.
const EdgeSteps = 160

// Renderer draws the cube for a fixed configuration. It holds no per-frame
// state, so one Renderer may serve any number of Render calls.
type Renderer struct {
	cfg       Config
	cube      models.Cube
	proj      Projector
	sideColor [len(models.Sides)]Color
	edgeColor Color
}

// NewRenderer validates cfg and creates a renderer bound to it.
func NewRenderer(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r := &Renderer{
		cfg:       cfg,
		cube:      models.NewCube(cfg.HalfWidth),
		proj:      NewProjector(Width, Height, cfg.Distance, cfg.Scale),
		edgeColor: mustHex(models.EdgeColor),
	}
	for i, side := range models.Sides {
		r.sideColor[i] = mustHex(side.Color)
	}
	return r, nil
}

// Config returns the configuration the renderer was built with.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Render draws one frame at the given angles into fresh buffers and returns
// the snapshot.
func (r *Renderer) Render(angles math3d.Angles) *Frame {
	fb := NewFramebuffer(r.proj.Width, r.proj.Height)
	r.Draw(fb, angles)
	return fb.Frame()
}

// Draw runs the face and edge samplers into fb.
func (r *Renderer) Draw(fb *Framebuffer, angles math3d.Angles) {
	if !r.cfg.Wireframe {
		r.drawFaces(fb, angles)
	}
	if r.cfg.Edges {
		r.drawEdges(fb, angles)
	}
}
