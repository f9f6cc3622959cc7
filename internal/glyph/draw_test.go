package glyph

import (
	"image"
	"testing"

	"github.com/gonewx/glyphrain/internal/raster"
)

func TestRenderGlyphSheetThenBuild(t *testing.T) {
	const fontSize = 32
	face, err := raster.LoadFace("goregular", fontSize)
	if err != nil {
		t.Fatalf("LoadFace() error = %v", err)
	}

	sheet := RenderGlyphSheet("H.", face, fontSize, 0)
	if sheet.Width() != 2*fontSize || sheet.Height() != fontSize {
		t.Fatalf("sheet size = %dx%d", sheet.Width(), sheet.Height())
	}

	mm, err := BuildExact("H.", PixelBufferFromSurface(sheet), fontSize)
	if err != nil {
		t.Fatalf("BuildExact() error = %v", err)
	}
	h, _ := mm.Lookup('H')
	dot, _ := mm.Lookup('.')
	if h.InkCount() == 0 {
		t.Error("'H' produced no ink")
	}
	if dot.InkCount() >= h.InkCount() {
		t.Errorf("'.' ink %d should be less than 'H' ink %d", dot.InkCount(), h.InkCount())
	}
}

func TestRenderGlyphSheetColumns(t *testing.T) {
	face, err := raster.LoadFace("", 8)
	if err != nil {
		t.Fatalf("LoadFace() error = %v", err)
	}
	sheet := RenderGlyphSheet("abcd", face, 8, 2)
	if sheet.Width() != 16 || sheet.Height() != 16 {
		t.Errorf("sheet size = %dx%d, want 16x16", sheet.Width(), sheet.Height())
	}

	empty := RenderGlyphSheet("", face, 8, 2)
	if empty.Width() != 0 {
		t.Errorf("empty text width = %d", empty.Width())
	}
}

func TestDrawPointMatrix(t *testing.T) {
	s := raster.NewSurface(40, 20)
	s.SetFillColor(raster.NewColor(255, 0, 0, 1))

	m := Matrix{{true, false}, {false, true}}
	DrawPointMatrix(s, m, 5, 5, 10, 2)

	px := s.ReadPixels(image.Rect(0, 0, 40, 20))
	if c := px.NRGBAAt(5, 5); c.R != 255 || c.A == 0 {
		t.Errorf("ink cell (0,0) not drawn: %+v", c)
	}
	if c := px.NRGBAAt(15, 15); c.R != 255 || c.A == 0 {
		t.Errorf("ink cell (1,1) not drawn: %+v", c)
	}
	if c := px.NRGBAAt(15, 5); c.A != 0 {
		t.Errorf("background cell (0,1) drawn: %+v", c)
	}
}

func TestExtractText(t *testing.T) {
	face, err := raster.LoadFace("goregular", 16)
	if err != nil {
		t.Fatalf("LoadFace() error = %v", err)
	}
	// 3 个字符分 2 列，第二行多出一个空白瓦片
	mm, err := ExtractText("I-I", face, 16, 2)
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if mm.Len() != 3 || mm.Text() != "I-I" {
		t.Fatalf("Len() = %d, Text() = %q", mm.Len(), mm.Text())
	}
	first, _ := mm.At(0)
	last, _ := mm.At(2)
	if first.Matrix.String() != last.Matrix.String() {
		t.Error("the same character should sample to the same matrix")
	}
	if first.Matrix.Rows() != 16 || first.Matrix.Cols() != 16 {
		t.Errorf("matrix size = %dx%d", first.Matrix.Rows(), first.Matrix.Cols())
	}
}
