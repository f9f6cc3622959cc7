//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包，
// 仅在使用 -tags mobile 构建时编译：
//
//	cp -r ../data ./data
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.glyphrain -o build/android/glyphrain.aar ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/ios/GlyphRain.xcframework ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/glyphrain/pkg/app"
	"github.com/gonewx/glyphrain/pkg/embedded"
)

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose: true,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
