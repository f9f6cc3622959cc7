package scenes

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/glyphrain/pkg/sprite"
)

// EbitenTarget 将精灵表中的帧绘制到离屏画布
//
// 精灵表在构造时上传为 GPU 图像；每帧用 SubImage 取出单元格绘制。
type EbitenTarget struct {
	sheet  *ebiten.Image
	canvas *ebiten.Image
	op     ebiten.DrawImageOptions // 复用，避免每帧分配
	drawn  int
}

// NewEbitenTarget creates a width x height canvas for frames of sheet.
func NewEbitenTarget(sheet *sprite.GradientText, width, height int) *EbitenTarget {
	return &EbitenTarget{
		sheet:  ebiten.NewImageFromImage(sheet.Image()),
		canvas: ebiten.NewImage(width, height),
	}
}

// DrawFrame draws f with its top-left corner at (x, y), rounded to pixels.
func (t *EbitenTarget) DrawFrame(f sprite.Frame, x, y float64) {
	cell := t.sheet.SubImage(f.Src).(*ebiten.Image)
	t.op.GeoM.Reset()
	t.op.GeoM.Translate(math.Round(x), math.Round(y))
	t.canvas.DrawImage(cell, &t.op)
	t.drawn++
}

// Clear wipes the canvas.
func (t *EbitenTarget) Clear() {
	t.canvas.Clear()
	t.drawn = 0
}

// Canvas returns the offscreen image frames are drawn onto.
func (t *EbitenTarget) Canvas() *ebiten.Image { return t.canvas }

// Drawn returns the number of frames drawn since the last Clear.
func (t *EbitenTarget) Drawn() int { return t.drawn }
