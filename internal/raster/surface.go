// Package raster provides the off-screen drawing surface used by glyph
// extraction and sprite generation.
//
// A Surface is a CPU-side RGBA bitmap with a small canvas-like API: fill
// colour, text at a baseline, image and sub-image blits, points and pixel
// read-back. Blits and masks go through golang.org/x/image (draw, font,
// vector) so nothing here needs a graphics driver.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// circleKappa is the cubic Bézier control distance for a quarter circle.
const circleKappa = 0.5522847498

// Surface 离屏画布
type Surface struct {
	img  *image.RGBA
	fill color.NRGBA
	face font.Face
}

// NewSurface creates a transparent surface of the given size.
func NewSurface(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Surface{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		fill: White.NRGBA(),
	}
}

// NewSurfaceFromImage creates a surface sized to src with src drawn at the origin.
func NewSurfaceFromImage(src image.Image) *Surface {
	b := src.Bounds()
	s := NewSurface(b.Dx(), b.Dy())
	s.DrawImage(src, 0, 0)
	return s
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.img.Bounds().Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.img.Bounds().Dy() }

// Bounds returns the surface rectangle.
func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// Image exposes the backing bitmap. Callers must not resize it.
func (s *Surface) Image() *image.RGBA { return s.img }

// SetFillColor sets the colour used by FillText, FillRect and DrawPoint.
func (s *Surface) SetFillColor(c Color) {
	s.fill = c.NRGBA()
}

// SetFillStyle sets the fill colour from any color.Color.
func (s *Surface) SetFillStyle(c color.Color) {
	s.fill = color.NRGBAModel.Convert(c).(color.NRGBA)
}

// FillColor returns the current fill colour.
func (s *Surface) FillColor() color.NRGBA { return s.fill }

// SetFont sets the face used by FillText.
func (s *Surface) SetFont(face font.Face) {
	s.face = face
}

// Font returns the current face, nil if none was set.
func (s *Surface) Font() font.Face { return s.face }

// DrawImage composites src onto the surface with its top-left corner at (x, y).
func (s *Surface) DrawImage(src image.Image, x, y int) {
	sr := src.Bounds()
	draw.Copy(s.img, image.Pt(x, y), src, sr, draw.Over, nil)
}

// DrawSubImage composites the sr region of src with its top-left corner at (dx, dy).
func (s *Surface) DrawSubImage(src image.Image, sr image.Rectangle, dx, dy int) {
	sr = sr.Intersect(src.Bounds())
	if sr.Empty() {
		return
	}
	draw.Copy(s.img, image.Pt(dx, dy), src, sr, draw.Over, nil)
}

// ReadPixels returns a non-premultiplied copy of region r, origin at (0, 0).
// The result's Pix is a flat RGBA buffer when r lies inside the surface.
func (s *Surface) ReadPixels(r image.Rectangle) *image.NRGBA {
	r = r.Intersect(s.img.Bounds())
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), s.img, r.Min, draw.Src)
	return out
}

// FillText draws text with the current font and fill colour, baseline at y.
// Nothing is drawn when no font is set.
func (s *Surface) FillText(text string, x, y float64) {
	if s.face == nil || text == "" {
		return
	}
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(s.fill),
		Face: s.face,
		Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(y)},
	}
	d.DrawString(text)
}

// MeasureText returns the advance width of text in the current font.
func (s *Surface) MeasureText(text string) float64 {
	if s.face == nil {
		return 0
	}
	return fromFixed(font.MeasureString(s.face, text))
}

// FillRect fills r with the current colour.
func (s *Surface) FillRect(r image.Rectangle) {
	draw.Draw(s.img, r, image.NewUniform(s.fill), image.Point{}, draw.Over)
}

// ClearRect makes r fully transparent.
func (s *Surface) ClearRect(r image.Rectangle) {
	draw.Draw(s.img, r, image.Transparent, image.Point{}, draw.Src)
}

// Clear makes the whole surface transparent.
func (s *Surface) Clear() {
	s.ClearRect(s.img.Bounds())
}

// DrawPoint fills a dot of the given radius centred on (x, y).
func (s *Surface) DrawPoint(x, y, radius float64) {
	s.FillCircle(x, y, radius)
}

// FillCircle fills a circle with the current colour.
func (s *Surface) FillCircle(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	box := image.Rect(
		int(math.Floor(cx-r)), int(math.Floor(cy-r)),
		int(math.Ceil(cx+r)), int(math.Ceil(cy+r)),
	)
	clip := box.Intersect(s.img.Bounds())
	if clip.Empty() {
		return
	}

	// 光栅器坐标以 box 左上角为原点
	ox, oy := cx-float64(box.Min.X), cy-float64(box.Min.Y)
	k := r * circleKappa
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	z.MoveTo(f32(ox+r), f32(oy))
	z.CubeTo(f32(ox+r), f32(oy+k), f32(ox+k), f32(oy+r), f32(ox), f32(oy+r))
	z.CubeTo(f32(ox-k), f32(oy+r), f32(ox-r), f32(oy+k), f32(ox-r), f32(oy))
	z.CubeTo(f32(ox-r), f32(oy-k), f32(ox-k), f32(oy-r), f32(ox), f32(oy-r))
	z.CubeTo(f32(ox+k), f32(oy-r), f32(ox+r), f32(oy-k), f32(ox+r), f32(oy))
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	z.DrawOp = draw.Src
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	// 裁剪到画布内
	draw.DrawMask(s.img, clip, image.NewUniform(s.fill), image.Point{}, mask, clip.Min.Sub(box.Min), draw.Over)
}

func f32(v float64) float32 { return float32(v) }

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
