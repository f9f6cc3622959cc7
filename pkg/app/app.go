// Package app 提供桌面应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来，桌面端（main.go）和移动端
// （mobile/mobile.go）共用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/glyphrain/internal/glyph"
	"github.com/gonewx/glyphrain/internal/raster"
	"github.com/gonewx/glyphrain/pkg/config"
	"github.com/gonewx/glyphrain/pkg/game"
	"github.com/gonewx/glyphrain/pkg/rain"
	"github.com/gonewx/glyphrain/pkg/scenes"
	"github.com/gonewx/glyphrain/pkg/utils"
)

// AppName 用于 gdata 存储目录
const AppName = "glyphrain"

// 场景名
const (
	SceneRain   = "rain"
	SceneMatrix = "matrix"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 配置文件路径，为空则使用内置的 data/glyphrain.yaml
	ConfigPath string
	// Scene 启动场景（rain / matrix），为空则为 rain
	Scene string
	// NoPersist 不打开 gdata，设置和点阵缓存只保存在内存中
	NoPersist bool
}

// App 实现 ebiten.Game 接口
type App struct {
	conf         *config.Config
	sceneManager *scenes.SceneManager
	scheduler    *game.Scheduler
	settings     *game.SettingsManager
	rain         *rain.Rain
	verbose      bool
	closed       bool
	now          func() time.Time
}

// NewApp 创建并初始化应用
//
// 调用此函数前，如果使用内置配置，必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	path := cfg.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath
	}
	conf, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	log.Printf("[App] 加载配置: %s", path)

	var gdataManager *gdata.Manager
	if !cfg.NoPersist {
		if err := utils.EnsureStorageDir(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
		gdataManager, err = gdata.Open(gdata.Config{AppName: AppName})
		if err != nil {
			// 无法持久化不是致命错误
			log.Printf("[App] Warning: gdata unavailable: %v (settings will not be saved)", err)
			gdataManager = nil
		} else if dir := utils.GetStoragePath(); dir != "" {
			log.Printf("[App] gdata 存储目录: %s", dir)
		}
	}

	settings := game.NewSettingsManager(gdataManager, game.RainSettingsFrom(conf.Rain))
	scheduler := game.NewScheduler()

	r, err := rain.NewFromConfig(conf.Rain, settings.GetSettings(), scheduler, nil)
	if err != nil {
		return nil, fmt.Errorf("文字雨初始化失败: %w", err)
	}

	cache := game.NewMatrixCache(gdataManager)
	matrices, err := loadMatrices(conf.Extract, cache)
	if err != nil {
		return nil, fmt.Errorf("点阵提取失败: %w", err)
	}
	log.Printf("[App] 点阵提取完成: %d 个字符", matrices.Len())

	sceneManager := scenes.NewSceneManager()
	sceneManager.Register(SceneRain, scenes.NewRainScene(r, settings))
	sceneManager.Register(SceneMatrix, scenes.NewMatrixScene(matrices, conf.Matrix, conf.Rain.Width))

	r.Start()
	if cfg.Scene != "" {
		if err := sceneManager.SwitchTo(cfg.Scene); err != nil {
			return nil, err
		}
	}

	return &App{
		conf:         conf,
		sceneManager: sceneManager,
		scheduler:    scheduler,
		settings:     settings,
		rain:         r,
		verbose:      cfg.Verbose,
		now:          time.Now,
	}, nil
}

// loadMatrices 按配置提取点阵
//
// 从文本渲染的结果通过 cache 缓存；直接给定位图时每次重新采样。
func loadMatrices(ec config.ExtractConfig, cache *game.MatrixCache) (*glyph.MatrixMap, error) {
	if ec.Image != "" {
		img, err := raster.LoadImage(ec.Image)
		if err != nil {
			return nil, err
		}
		return glyph.Build(ec.Text, glyph.PixelBufferFromImage(img), ec.FontSize)
	}

	return cache.GetOrBuild(ec.Text, ec.FontFamily, ec.FontSize, func() (*glyph.MatrixMap, error) {
		face, err := raster.LoadFace(ec.FontFamily, float64(ec.FontSize))
		if err != nil {
			return nil, err
		}
		defer face.Close()
		return glyph.ExtractText(ec.Text, face, ec.FontSize, ec.Columns)
	})
}

// Update 更新逻辑，每个 tick 调用一次
//
// 先推进调度器（生成粒子、渲染文字雨的帧），再更新当前场景。
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.Close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	// 移动端没有键盘：双指点击切换场景
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) || (utils.IsMobile() && utils.IsMultiTouchJustStarted(2)) {
		a.sceneManager.Next()
	}

	a.step(1.0 / 60.0)
	return nil
}

func (a *App) step(deltaTime float64) {
	a.scheduler.Advance(a.now())
	a.sceneManager.Update(deltaTime)
}

// Draw 绘制当前场景
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口，全屏时两侧填黑
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸（画布大小）
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.conf.Rain.Width, a.conf.Rain.Height
}

// Close 停止文字雨并保存所有场景的状态，重复调用无效
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.rain.Stop()
	if !a.sceneManager.SaveAll() {
		log.Printf("[App] 部分场景保存失败")
	}
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *scenes.SceneManager {
	return a.sceneManager
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config {
	return a.conf
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
