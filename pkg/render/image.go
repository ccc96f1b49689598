package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph cell size in pixels when rasterizing a frame with the 7x13 font.
const (
	CellPixelWidth  = 7
	CellPixelHeight = 13
)

// ToImage draws the frame with a fixed 7x13 bitmap font. Cells that inherit
// their color are drawn in fg; the background is filled with bg.
func (f *Frame) ToImage(fg, bg Color) *image.RGBA {
	face := basicfont.Face7x13
	img := image.NewRGBA(image.Rect(0, 0, f.width*CellPixelWidth, f.height*CellPixelHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Face: face}
	for y := range f.height {
		baseline := y*CellPixelHeight + face.Ascent
		for x := range f.width {
			c := f.At(x, y)
			if c.IsBlank() {
				continue
			}
			col := fg
			if c.Color.A != 0 {
				col = c.Color
			}
			d.Src = image.NewUniform(col)
			d.Dot = fixed.P(x*CellPixelWidth, baseline)
			d.DrawString(string(c.Glyph))
		}
	}
	return img
}

// SavePNG saves the frame as a PNG file.
func (f *Frame) SavePNG(path string, fg, bg Color) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, f.ToImage(fg, bg)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return file.Close()
}
