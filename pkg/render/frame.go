package render

import (
	"strings"
)

// Cell is one character of a rendered frame.
type Cell struct {
	Glyph rune
	Color Color // Inherit for blank cells and monochrome faces
}

// IsBlank reports whether nothing was drawn into the cell.
func (c Cell) IsBlank() bool {
	return c.Glyph == Blank
}

// Frame is an immutable grid of cells, row-major with the origin at the top
// left. It is the only thing the renderer hands to a display surface.
type Frame struct {
	width, height int
	cells         []Cell
}

// Width returns the frame width in cells.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in cells.
func (f *Frame) Height() int { return f.height }

// At returns the cell at (x, y). Out-of-range positions are blank.
func (f *Frame) At(x, y int) Cell {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return Cell{Glyph: Blank}
	}
	return f.cells[y*f.width+x]
}

// Row returns row y as a string of glyphs.
func (f *Frame) Row(y int) string {
	if y < 0 || y >= f.height {
		return ""
	}
	var sb strings.Builder
	sb.Grow(f.width)
	for _, c := range f.cells[y*f.width : (y+1)*f.width] {
		sb.WriteRune(c.Glyph)
	}
	return sb.String()
}

// Rows returns every row as a string of glyphs.
func (f *Frame) Rows() []string {
	rows := make([]string, f.height)
	for y := range rows {
		rows[y] = f.Row(y)
	}
	return rows
}

// String returns the glyphs of the frame, one line per row.
func (f *Frame) String() string {
	return strings.Join(f.Rows(), "\n")
}

// Count returns how many cells hold the given glyph.
func (f *Frame) Count(glyph rune) int {
	n := 0
	for _, c := range f.cells {
		if c.Glyph == glyph {
			n++
		}
	}
	return n
}

// Diff returns the number of cells whose glyph or color differ between f
// and o. Frames of different sizes differ in every cell.
func (f *Frame) Diff(o *Frame) int {
	if f.width != o.width || f.height != o.height {
		return max(len(f.cells), len(o.cells))
	}
	n := 0
	for i := range f.cells {
		if f.cells[i] != o.cells[i] {
			n++
		}
	}
	return n
}
