package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Draw implements uv.Drawable. The frame is centered in area; glyphs are
// bold and colored cells set the foreground only.
func (f *Frame) Draw(scr uv.Screen, area uv.Rectangle) {
	offX := area.Min.X + max((area.Dx()-f.width)/2, 0)
	offY := area.Min.Y + max((area.Dy()-f.height)/2, 0)

	for y := 0; y < f.height && offY+y < area.Max.Y; y++ {
		for x := 0; x < f.width && offX+x < area.Max.X; x++ {
			c := f.At(x, y)
			cell := &uv.Cell{Content: " ", Width: 1}
			if !c.IsBlank() {
				cell.Content = string(c.Glyph)
				cell.Style = uv.Style{Fg: toColor(c.Color), Attrs: uv.AttrBold}
			}
			scr.SetCell(offX+x, offY+y, cell)
		}
	}
}
