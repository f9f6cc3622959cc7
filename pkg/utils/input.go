// Package utils 提供与平台和输入设备相关的小工具
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标左键）
// 返回是否按下以及按下位置，触摸优先
func IsPointerJustPressed() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// IsMultiTouchJustStarted 检查本帧是否出现了第 n 个及以上的触摸点
// 移动端没有键盘，用双指点击代替 Tab 切换场景
func IsMultiTouchJustStarted(n int) bool {
	if len(inpututil.AppendJustPressedTouchIDs(nil)) == 0 {
		return false
	}
	return len(ebiten.AppendTouchIDs(nil)) >= n
}
