// Package render provides the software glyph rasterizer for the cube.
package render

// Blank is the glyph of a cell nothing was drawn into.
const Blank = ' '

// Framebuffer holds the per-tick depth, glyph and color buffers.
// All three are row-major and indexed by y*Width+x.
type Framebuffer struct {
	Width  int
	Height int
	Depth  []float64 // inverse depth; 0 means nothing drawn
	Glyphs []rune
	Colors []Color
}

// NewFramebuffer creates cleared buffers for a width x height grid.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Depth:  make([]float64, width*height),
		Glyphs: make([]rune, width*height),
		Colors: make([]Color, width*height),
	}
	for i := range fb.Glyphs {
		fb.Glyphs[i] = Blank
	}
	return fb
}

// Plot writes a glyph at (x, y) if ooz is strictly greater than the inverse
// depth already stored there. It is the only way anything reaches the
// buffers. Reports whether the write was committed.
func (fb *Framebuffer) Plot(x, y int, ooz float64, glyph rune, c Color) bool {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return false
	}
	idx := y*fb.Width + x
	if !(ooz > fb.Depth[idx]) {
		return false
	}
	fb.Depth[idx] = ooz
	fb.Glyphs[idx] = glyph
	fb.Colors[idx] = c
	return true
}

// DepthAt returns the inverse depth at (x, y), or 0 if out of bounds.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0
	}
	return fb.Depth[y*fb.Width+x]
}

// Frame snapshots the glyph and color buffers into an immutable Frame.
// Blank cells never carry a color.
func (fb *Framebuffer) Frame() *Frame {
	cells := make([]Cell, len(fb.Glyphs))
	for i, g := range fb.Glyphs {
		if g == Blank {
			cells[i] = Cell{Glyph: Blank}
			continue
		}
		cells[i] = Cell{Glyph: g, Color: fb.Colors[i]}
	}
	return &Frame{width: fb.Width, height: fb.Height, cells: cells}
}
