package glyph

import (
	"image"
	"unicode/utf8"

	"golang.org/x/image/font"

	"github.com/gonewx/glyphrain/internal/raster"
)

// DrawPointMatrix draws every ink cell of m as a dot on dst.
// Cell (row, col) is centred on (ox+col*space, oy+row*space).
func DrawPointMatrix(dst *raster.Surface, m Matrix, ox, oy, space, radius float64) {
	for r, row := range m {
		for c, ink := range row {
			if ink {
				dst.DrawPoint(ox+float64(c)*space, oy+float64(r)*space, radius)
			}
		}
	}
}

// RenderGlyphSheet draws text white on opaque black, one fontSize cell per
// character, columns cells per row. The baseline of each cell sits at its
// bottom edge minus the face descent so glyphs stay inside their tile.
//
// Cells past the end of text stay black; Build needs one character per
// cell, so callers pick columns that divide the text length (or pad text).
func RenderGlyphSheet(text string, face font.Face, fontSize, columns int) *raster.Surface {
	n := utf8.RuneCountInString(text)
	if columns <= 0 || columns > n {
		columns = n
	}
	if columns == 0 || fontSize <= 0 {
		return raster.NewSurface(0, 0)
	}
	rows := (n + columns - 1) / columns

	s := raster.NewSurface(columns*fontSize, rows*fontSize)
	s.SetFillColor(raster.NewColor(0, 0, 0, 1))
	s.FillRect(s.Bounds())

	s.SetFont(face)
	s.SetFillColor(raster.White)
	descent := 0
	if face != nil {
		descent = face.Metrics().Descent.Ceil()
	}

	i := 0
	for _, r := range text {
		col, row := i%columns, i/columns
		cell := image.Rect(col*fontSize, row*fontSize, (col+1)*fontSize, (row+1)*fontSize)
		s.FillText(string(r), float64(cell.Min.X), float64(cell.Max.Y-descent))
		i++
	}
	return s
}

// ExtractText renders text with face and samples the sheet back into one
// matrix per character.
func ExtractText(text string, face font.Face, fontSize, columns int) (*MatrixMap, error) {
	sheet := RenderGlyphSheet(text, face, fontSize, columns)
	return Build(text, PixelBufferFromSurface(sheet), fontSize)
}
