package glyph

import (
	"image"
	"image/color"

	"github.com/gonewx/glyphrain/internal/raster"
)

// PixelBuffer is a flat, row-major RGBA buffer, four bytes per pixel,
// in the same layout as a canvas getImageData result.
type PixelBuffer struct {
	Width  int
	Height int
	Data   []uint8
}

// NewPixelBuffer allocates a transparent buffer of width x height pixels.
func NewPixelBuffer(width, height int) PixelBuffer {
	return PixelBuffer{
		Width:  width,
		Height: height,
		Data:   make([]uint8, 4*width*height),
	}
}

// PixelBufferFromImage copies img into a non-premultiplied flat buffer.
func PixelBufferFromImage(img image.Image) PixelBuffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	buf := NewPixelBuffer(w, h)

	if n, ok := img.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			off := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(buf.Data[y*w*4:(y+1)*w*4], n.Pix[off:off+w*4])
		}
		return buf
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := (y*w + x) * 4
			buf.Data[i], buf.Data[i+1], buf.Data[i+2], buf.Data[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return buf
}

// PixelBufferFromSurface reads back the whole surface.
func PixelBufferFromSurface(s *raster.Surface) PixelBuffer {
	return PixelBufferFromImage(s.ReadPixels(s.Bounds()))
}

// PixelCount is the number of whole pixels in Data.
func (b PixelBuffer) PixelCount() int {
	return len(b.Data) / 4
}

// At returns pixel i in row-major order.
func (b PixelBuffer) At(i int) Pixel {
	o := i * 4
	return Pixel{R: b.Data[o], G: b.Data[o+1], B: b.Data[o+2], A: raster.OpacityByte(b.Data[o+3])}
}

// Set writes the pixel at (x, y).
func (b PixelBuffer) Set(x, y int, p Pixel) {
	o := (y*b.Width + x) * 4
	b.Data[o], b.Data[o+1], b.Data[o+2], b.Data[o+3] = p.R, p.G, p.B, uint8(p.A)
}

// Tile is the square pixel region of one glyph. Rows are in top-to-bottom
// order, each holding the tile's pixels left to right.
type Tile struct {
	Index int
	Rows  [][]Pixel
}

// Empty reports whether no pixel landed in the tile.
func (t Tile) Empty() bool {
	for _, row := range t.Rows {
		if len(row) > 0 {
			return false
		}
	}
	return true
}

// Complete reports whether the tile holds exactly fontSize rows of fontSize pixels.
func (t Tile) Complete(fontSize int) bool {
	if len(t.Rows) != fontSize {
		return false
	}
	for _, row := range t.Rows {
		if len(row) != fontSize {
			return false
		}
	}
	return true
}

// Pixel returns the pixel at (row, col) inside the tile.
func (t Tile) Pixel(row, col int) (Pixel, bool) {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return Pixel{}, false
	}
	return t.Rows[row][col], true
}

// TileCount is the number of whole tiles a width x height buffer holds.
func TileCount(width, height, fontSize int) int {
	if fontSize <= 0 {
		return 0
	}
	return (width / fontSize) * (height / fontSize)
}

// CheckShape verifies buf can be cut into whole fontSize tiles.
func CheckShape(buf PixelBuffer, fontSize int) error {
	shapeErr := func(reason string) error {
		return &InputShapeError{
			Width:    buf.Width,
			Height:   buf.Height,
			FontSize: fontSize,
			Tiles:    TileCount(buf.Width, buf.Height, fontSize),
			Reason:   reason,
		}
	}

	switch {
	case fontSize <= 0:
		return shapeErr("font size must be positive")
	case buf.Width <= 0 || buf.Height <= 0:
		return shapeErr("empty pixel buffer")
	case len(buf.Data) != 4*buf.Width*buf.Height:
		return shapeErr("pixel data length does not match width*height")
	case buf.Width%fontSize != 0:
		return shapeErr("width is not a multiple of font size")
	case buf.Height%fontSize != 0:
		return shapeErr("height is not a multiple of font size")
	}
	return nil
}

// Tiles splits buf into glyph tiles of fontSize x fontSize pixels.
//
// Every pixel is visited once. Its tile is
//
//	col/fontSize + (row/fontSize)*(width/fontSize)
//
// and its row inside the tile is row%fontSize. Tiles and rows are created on
// first use, so malformed input may yield incomplete tiles or empty gaps;
// callers that need whole tiles run CheckShape first.
func Tiles(buf PixelBuffer, fontSize int) []Tile {
	if fontSize <= 0 || buf.Width <= 0 {
		return nil
	}

	tilesPerRow := buf.Width / fontSize
	tiles := make([]Tile, 0, TileCount(buf.Width, buf.Height, fontSize))
	n := buf.PixelCount()

	for p := 0; p < n; p++ {
		row := p / buf.Width
		col := p % buf.Width
		tileIndex := col/fontSize + (row/fontSize)*tilesPerRow
		tileRow := row % fontSize

		for len(tiles) <= tileIndex {
			tiles = append(tiles, Tile{Index: len(tiles)})
		}
		t := &tiles[tileIndex]
		for len(t.Rows) <= tileRow {
			t.Rows = append(t.Rows, make([]Pixel, 0, fontSize))
		}
		t.Rows[tileRow] = append(t.Rows[tileRow], buf.At(p))
	}

	return tiles
}
