// Package glyph turns a bitmap of tightly packed, equally sized glyph cells
// into per-character boolean point matrices.
//
// The bitmap is expected to hold light glyphs on a dark or transparent
// background (白字黑底), one square cell of fontSize pixels per character,
// cells laid out row-major across the image.
package glyph

import "github.com/gonewx/glyphrain/internal/raster"

const (
	// OpaqueAlpha is the only alpha an ink pixel may have.
	OpaqueAlpha raster.OpacityByte = 255

	// InkChannelMin is the minimum red and green value of an ink pixel.
	InkChannelMin = 200
)

// Pixel is one RGBA sample read back from a surface.
type Pixel struct {
	R, G, B uint8
	A       raster.OpacityByte
}

// IsInk reports whether p belongs to a glyph's foreground.
//
// Blue is not inspected: a pixel with strong red and green counts as ink
// whatever its blue channel holds.
func IsInk(p Pixel) bool {
	if p.A < OpaqueAlpha {
		return false
	}
	if p.R < InkChannelMin {
		return false
	}
	if p.G < InkChannelMin {
		return false
	}
	return p.A >= InkChannelMin
}
