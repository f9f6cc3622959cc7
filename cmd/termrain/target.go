package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/glyphrain/internal/raster"
	"github.com/gonewx/glyphrain/pkg/sprite"
)

// termTarget 把精灵帧画成终端字符
//
// 一个单元格对应画布上的一个单位；帧的行决定字符，透明度分级决定前景亮度。
type termTarget struct {
	screen tcell.Screen
	runes  []rune
	grade  int
	color  raster.Color
	drawn  int
}

func newTermTarget(screen tcell.Screen, sheet *sprite.GradientText) *termTarget {
	opts := sheet.Options()
	return &termTarget{
		screen: screen,
		runes:  []rune(opts.Texts),
		grade:  opts.GradientGrade,
		color:  opts.Color,
	}
}

// style 分级越高越亮；grade 0 仍保留一点亮度，否则完成的粒子在最后一帧不可见
func (t *termTarget) style(grade int) tcell.Style {
	k := float64(grade+1) / float64(t.grade)
	if k > 1 {
		k = 1
	}
	c := tcell.NewRGBColor(
		int32(math.Round(float64(t.color.R)*k)),
		int32(math.Round(float64(t.color.G)*k)),
		int32(math.Round(float64(t.color.B)*k)),
	)
	return tcell.StyleDefault.Foreground(c).Background(tcell.ColorBlack)
}

// DrawFrame 把帧画在 (x, y) 所在的单元格，超出屏幕的忽略
func (t *termTarget) DrawFrame(f sprite.Frame, x, y float64) {
	cx, cy := int(math.Round(x)), int(math.Floor(y))
	w, h := t.screen.Size()
	if cx < 0 || cy < 0 || cx >= w || cy >= h {
		return
	}
	r := t.runes[f.Row%len(t.runes)]
	t.screen.SetContent(cx, cy, r, nil, t.style(f.Grade))
	t.drawn++
}

// Clear 清屏
func (t *termTarget) Clear() {
	t.screen.Clear()
	t.drawn = 0
}
