// glyphrain 桌面端入口：文字雨和点阵预览
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--config <path>   配置文件（默认内置 data/glyphrain.yaml）
//	--scene <name>    启动场景：rain 或 matrix
//	--verbose         输出日志
//	--no-persist      不保存设置和点阵缓存
//
// Controls:
//
//	Tab          切换场景
//	Space        暂停/继续文字雨
//	Up/Down      加快/减慢下落速度
//	Left/Right   降低/提高生成频率
//	C            清空粒子
//	S            保存设置
//	R            恢复默认设置
//	H            显示/隐藏状态栏
//	+/-          点阵缩放
//	F11          全屏
//	Escape       退出
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/glyphrain/pkg/app"
	"github.com/gonewx/glyphrain/pkg/embedded"
)

var (
	configFlag    = flag.String("config", "", "Path to a config file (default: embedded data/glyphrain.yaml)")
	sceneFlag     = flag.String("scene", "", "Start scene: rain or matrix")
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	noPersistFlag = flag.Bool("no-persist", false, "Do not save settings or cached matrices")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Scene:      *sceneFlag,
		NoPersist:  *noPersistFlag,
	})
	if err != nil {
		// 非 verbose 模式下 log 已被丢弃，错误直接写到 stderr
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	w, h := gameApp.Layout(0, 0)
	ebiten.SetWindowSize(w*2, h*2)
	ebiten.SetWindowTitle("glyphrain")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// 关闭窗口（非 Escape）时也保存设置
	gameApp.Close()
}
