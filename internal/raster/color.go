package raster

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
)

// OpacityByte is alpha on the 0-255 scale used by read-back pixel buffers.
type OpacityByte uint8

// OpacityFraction is alpha on the 0-1 scale used by fill colours.
type OpacityFraction float64

// Fraction converts a byte alpha to the 0-1 scale.
func (a OpacityByte) Fraction() OpacityFraction {
	return OpacityFraction(float64(a) / 255)
}

// Byte converts a 0-1 alpha to the 0-255 scale, clamping out-of-range values.
func (a OpacityFraction) Byte() OpacityByte {
	f := float64(a)
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return OpacityByte(math.Round(f * 255))
}

// Color 填充颜色 (RGB 0-255, alpha 0-1)
//
// Setters clamp to the channel maximum the same way the canvas colour helper did:
// values above 255 (or above 1 for alpha) are cut down, negatives go to zero.
type Color struct {
	R, G, B uint8
	A       OpacityFraction
}

// White is opaque white, the default sprite colour.
var White = Color{R: 255, G: 255, B: 255, A: 1}

// NewColor builds a colour from unclamped channel values.
func NewColor(r, g, b int, a float64) Color {
	var c Color
	c.SetRGBA(r, g, b, a)
	return c
}

// SetRGBA sets all four channels.
func (c *Color) SetRGBA(r, g, b int, a float64) *Color {
	return c.SetR(r).SetG(g).SetB(b).SetA(a)
}

// SetR sets the red channel.
func (c *Color) SetR(v int) *Color {
	c.R = clampChannel(v)
	return c
}

// SetG sets the green channel.
func (c *Color) SetG(v int) *Color {
	c.G = clampChannel(v)
	return c
}

// SetB sets the blue channel.
func (c *Color) SetB(v int) *Color {
	c.B = clampChannel(v)
	return c
}

// SetA sets alpha (0-1).
func (c *Color) SetA(v float64) *Color {
	switch {
	case math.IsNaN(v) || v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	c.A = OpacityFraction(v)
	return c
}

// WithAlpha returns a copy with alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.SetA(a)
	return c
}

// NRGBA converts to the non-premultiplied image/color form.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(c.A.Byte())}
}

// String formats the colour as a CSS rgba() value.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B,
		strconv.FormatFloat(float64(c.A), 'g', -1, 64))
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
