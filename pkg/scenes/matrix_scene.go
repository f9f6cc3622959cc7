package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/glyphrain/internal/glyph"
	"github.com/gonewx/glyphrain/pkg/config"
)

// 点间距的调整范围（+/- 键）
const (
	minDotSpace = 2.0
	maxDotSpace = 40.0
)

// dot 一个墨迹点的圆心
type dot struct {
	x, y float32
}

// MatrixScene 点阵预览场景：把每个字符的点阵画成圆点
type MatrixScene struct {
	matrices *glyph.MatrixMap
	cfg      config.MatrixConfig
	width    int

	dots       []dot
	dotColor   color.Color
	background color.Color

	hudFace *text.GoTextFace
	hudOpts text.DrawOptions
}

// NewMatrixScene 创建点阵预览场景，width 为屏幕宽度，用于换行
func NewMatrixScene(matrices *glyph.MatrixMap, cfg config.MatrixConfig, width int) *MatrixScene {
	s := &MatrixScene{
		matrices:   matrices,
		cfg:        cfg,
		width:      width,
		dotColor:   cfg.Color.Color().NRGBA(),
		background: color.White,
	}
	if face, err := newHUDFace(hudFontSize); err == nil {
		s.hudFace = face
	}
	s.relayout()
	return s
}

// layoutDots 计算所有墨迹点的位置
//
// 字符按文本顺序从左到右排列，放不下时换行；字符之间留两个点间距。
// 单个字符内 (row, col) 的圆心为 (bx+col*space, by+row*space)。
func layoutDots(mm *glyph.MatrixMap, cfg config.MatrixConfig, width int) []dot {
	if mm == nil || mm.Len() == 0 {
		return nil
	}
	first, _ := mm.At(0)
	blockW := float64(first.Matrix.Cols())*cfg.Space + 2*cfg.Space
	blockH := float64(first.Matrix.Rows())*cfg.Space + 2*cfg.Space

	perRow := int((float64(width) - cfg.OffsetX) / blockW)
	if perRow < 1 {
		perRow = 1
	}

	var dots []dot
	for i, e := range mm.Entries() {
		bx := cfg.OffsetX + float64(i%perRow)*blockW
		by := cfg.OffsetY + float64(i/perRow)*blockH
		for r, row := range e.Matrix {
			for c, ink := range row {
				if ink {
					dots = append(dots, dot{
						x: float32(bx + float64(c)*cfg.Space),
						y: float32(by + float64(r)*cfg.Space),
					})
				}
			}
		}
	}
	return dots
}

func (s *MatrixScene) relayout() {
	s.dots = layoutDots(s.matrices, s.cfg, s.width)
}

// Update 处理缩放键
func (s *MatrixScene) Update(deltaTime float64) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		s.Zoom(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		s.Zoom(-1)
	}
}

// Zoom 调整点间距，半径按比例变化
func (s *MatrixScene) Zoom(step float64) {
	space := s.cfg.Space + step
	if space < minDotSpace || space > maxDotSpace {
		return
	}
	s.cfg.Radius *= space / s.cfg.Space
	s.cfg.Space = space
	s.relayout()
}

// Draw 绘制点阵
func (s *MatrixScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)
	r := float32(s.cfg.Radius)
	for _, d := range s.dots {
		vector.DrawFilledCircle(screen, d.x, d.y, r, s.dotColor, true)
	}

	if s.hudFace == nil {
		return
	}
	s.hudOpts.GeoM.Reset()
	s.hudOpts.GeoM.Translate(6, float64(screen.Bounds().Dy()-hudFontSize-6))
	s.hudOpts.ColorScale.Reset()
	s.hudOpts.ColorScale.ScaleWithColor(color.Gray{Y: 96})
	info := fmt.Sprintf("%d glyphs  %d dots  space %.0f", s.matrices.Len(), len(s.dots), s.cfg.Space)
	text.Draw(screen, info, s.hudFace, &s.hudOpts)
}

// DotCount returns the number of dots drawn per frame.
func (s *MatrixScene) DotCount() int { return len(s.dots) }

// Space returns the current dot spacing.
func (s *MatrixScene) Space() float64 { return s.cfg.Space }
