// Package scenes holds the ebiten scenes of the desktop application: the
// falling text rain and the point-matrix preview, plus the SceneManager that
// switches between them.
package scenes

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Scene is one screen of the application (the rain, the point matrix view).
// Only the active scene is updated and drawn.
type Scene interface {
	// Update advances the scene; deltaTime is in seconds.
	Update(deltaTime float64)

	// Draw renders the scene onto screen.
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：场景在程序退出时保存状态
//
// 返回 false 表示保存失败（程序仍会正常退出）
type Saveable interface {
	SaveOnExit() bool
}

// Switchable 可选接口：场景在被切入/切出时收到通知
type Switchable interface {
	OnEnter()
	OnLeave()
}

// hudFontSize 状态栏字号
const hudFontSize = 14

// newHUDFace 创建状态栏字体（内置 Go Regular）
func newHUDFace(size float64) (*text.GoTextFace, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("无法创建字体源: %w", err)
	}
	return &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}, nil
}
