package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/glyphcube/pkg/math3d"
)

func smallFrame() *Frame {
	fb := NewFramebuffer(4, 2)
	fb.Plot(0, 0, 1, '@', Inherit)
	fb.Plot(3, 1, 1, '#', RGB(30, 136, 229))
	return fb.Frame()
}

func TestFrameDrawCentersInArea(t *testing.T) {
	f := smallFrame()
	scr := uv.NewScreenBuffer(10, 6)
	f.Draw(scr, scr.Bounds())

	// (10-4)/2 = 3, (6-2)/2 = 2
	if c := scr.CellAt(3, 2); c == nil || c.Content != "@" {
		t.Errorf("cell (3, 2) = %+v, want @", c)
	}
	if c := scr.CellAt(3, 2); c.Style.Fg != nil {
		t.Errorf("inherited cell has foreground %v", c.Style.Fg)
	}
	c := scr.CellAt(6, 3)
	if c == nil || c.Content != "#" {
		t.Fatalf("cell (6, 3) = %+v, want #", c)
	}
	if c.Style.Fg != RGB(30, 136, 229) {
		t.Errorf("cell (6, 3) foreground = %v", c.Style.Fg)
	}
	if c.Style.Attrs&uv.AttrBold == 0 {
		t.Error("glyph not bold")
	}
	if c := scr.CellAt(4, 2); c == nil || c.Content != " " {
		t.Errorf("blank cell = %+v, want space", c)
	}
}

func TestFrameDrawClipsToArea(t *testing.T) {
	f := mustRenderer(t, DefaultConfig()).Render(math3d.Angles{})
	scr := uv.NewScreenBuffer(20, 10)
	// Must not panic when the area is smaller than the frame.
	f.Draw(scr, scr.Bounds())
}

func TestToImage(t *testing.T) {
	f := smallFrame()
	bg := RGB(0, 0, 0)
	fg := RGB(255, 255, 255)
	img := f.ToImage(fg, bg)

	b := img.Bounds()
	if b.Dx() != 4*CellPixelWidth || b.Dy() != 2*CellPixelHeight {
		t.Fatalf("image size %v", b)
	}

	countInCell := func(cx, cy int) int {
		n := 0
		for y := cy * CellPixelHeight; y < (cy+1)*CellPixelHeight; y++ {
			for x := cx * CellPixelWidth; x < (cx+1)*CellPixelWidth; x++ {
				if img.RGBAAt(x, y) != bg {
					n++
				}
			}
		}
		return n
	}

	if countInCell(0, 0) == 0 {
		t.Error("no pixels drawn for '@'")
	}
	if countInCell(3, 1) == 0 {
		t.Error("no pixels drawn for '#'")
	}
	if n := countInCell(1, 0); n != 0 {
		t.Errorf("blank cell has %d drawn pixels", n)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := smallFrame().SavePNG(path, RGB(255, 255, 255), RGB(0, 0, 0)); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	cfg, err := png.DecodeConfig(file)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 4*CellPixelWidth || cfg.Height != 2*CellPixelHeight {
		t.Errorf("png size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestHex(t *testing.T) {
	if Hex(Inherit) != "" {
		t.Errorf("Hex(Inherit) = %q, want empty", Hex(Inherit))
	}
	c, err := ParseHex("#1e88e5")
	if err != nil {
		t.Fatal(err)
	}
	if c != RGB(0x1e, 0x88, 0xe5) {
		t.Errorf("ParseHex = %v", c)
	}
	if got := Hex(c); got != "#1e88e5" {
		t.Errorf("Hex = %q", got)
	}
	if _, err := ParseHex("red"); err == nil {
		t.Error("ParseHex(\"red\") should fail")
	}
}
