package sprite

import (
	"math"

	"github.com/gonewx/glyphrain/internal/raster"
)

// Target receives sheet cells to draw at a position.
type Target interface {
	DrawFrame(f Frame, x, y float64)
}

// Clearer is implemented by targets that can wipe themselves between frames.
type Clearer interface {
	Clear()
}

// SurfaceTarget blits sheet cells onto a CPU raster surface.
type SurfaceTarget struct {
	Sheet *GradientText
	Dst   *raster.Surface
}

// NewSurfaceTarget returns a target drawing sheet onto dst.
func NewSurfaceTarget(sheet *GradientText, dst *raster.Surface) *SurfaceTarget {
	return &SurfaceTarget{Sheet: sheet, Dst: dst}
}

// DrawFrame copies f.Src with its top-left corner at (x, y).
func (t *SurfaceTarget) DrawFrame(f Frame, x, y float64) {
	t.Dst.DrawSubImage(t.Sheet.Image(), f.Src, int(math.Round(x)), int(math.Round(y)))
}

// Clear makes the whole destination transparent.
func (t *SurfaceTarget) Clear() {
	t.Dst.Clear()
}
