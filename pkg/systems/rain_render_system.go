package systems

import (
	"github.com/gonewx/glyphrain/pkg/components"
	"github.com/gonewx/glyphrain/pkg/ecs"
	"github.com/gonewx/glyphrain/pkg/sprite"
)

// RainRenderSystem 把每个运动中的粒子画成精灵表的一格
// 列由运动进度决定（越接近终点越透明），行由 GlyphComponent 决定
type RainRenderSystem struct {
	entityManager *ecs.EntityManager
	sheet         *sprite.GradientText
}

// NewRainRenderSystem 创建渲染系统
func NewRainRenderSystem(em *ecs.EntityManager, sheet *sprite.GradientText) *RainRenderSystem {
	return &RainRenderSystem{
		entityManager: em,
		sheet:         sheet,
	}
}

// Draw 按创建顺序绘制，返回绘制的粒子数
func (s *RainRenderSystem) Draw(target sprite.Target) int {
	if target == nil || s.sheet == nil {
		return 0
	}

	drawn := 0
	entities := ecs.GetEntitiesWith1[*components.MotionComponent](s.entityManager)
	for _, id := range entities {
		mc, _ := ecs.GetComponent[*components.MotionComponent](s.entityManager, id)
		if mc == nil || mc.Motion == nil {
			continue
		}

		row := 0
		if gc, ok := ecs.GetComponent[*components.GlyphComponent](s.entityManager, id); ok {
			row = gc.Row
		}

		m := mc.Motion
		target.DrawFrame(s.sheet.Frame(row, m.Progress()), m.X(), m.Y())
		drawn++
	}
	return drawn
}

// Sheet returns the sprite sheet being drawn from.
func (s *RainRenderSystem) Sheet() *sprite.GradientText { return s.sheet }
