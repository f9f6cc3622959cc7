package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/glyphrain/pkg/game"
	"github.com/gonewx/glyphrain/pkg/rain"
	"github.com/gonewx/glyphrain/pkg/utils"
)

// 速度调整倍率（Up/Down 键）
const (
	speedUpFactor   = 1.25
	speedDownFactor = 0.8
)

// rainAction 文字雨场景的键盘操作
type rainAction int

const (
	actionToggle rainAction = iota
	actionFaster
	actionSlower
	actionSpawnMore
	actionSpawnLess
	actionClear
	actionSave
	actionReset
)

// rainKeys 键位映射
var rainKeys = map[ebiten.Key]rainAction{
	ebiten.KeySpace: actionToggle,
	ebiten.KeyUp:    actionFaster,
	ebiten.KeyDown:  actionSlower,
	ebiten.KeyRight: actionSpawnMore,
	ebiten.KeyLeft:  actionSpawnLess,
	ebiten.KeyC:     actionClear,
	ebiten.KeyS:     actionSave,
	ebiten.KeyR:     actionReset,
}

// RainScene 文字雨场景
//
// 粒子在调度器驱动的帧里绘制到离屏画布，Draw 只负责把画布贴到屏幕并叠加状态栏。
// 场景切出时暂停，切回时如果之前在运行则恢复。
type RainScene struct {
	rain     *rain.Rain
	target   *EbitenTarget
	settings *game.SettingsManager

	background color.Color
	hudFace    *text.GoTextFace
	hudOpts    text.DrawOptions
	showHUD    bool

	resumeOnEnter bool
}

// NewRainScene 创建文字雨场景并把 r 的绘制目标设为离屏画布
//
// settings 可以为 nil（不支持调整和保存）。
func NewRainScene(r *rain.Rain, settings *game.SettingsManager) *RainScene {
	opts := r.Pool().Options()
	target := NewEbitenTarget(r.Pool().Sheet(), opts.Width, opts.Height)
	r.SetTarget(target)

	s := &RainScene{
		rain:       r,
		target:     target,
		settings:   settings,
		background: color.Black,
		showHUD:    true,
	}
	face, err := newHUDFace(hudFontSize)
	if err != nil {
		log.Printf("[RainScene] 状态栏字体加载失败: %v", err)
	} else {
		s.hudFace = face
	}
	return s
}

// Update 处理键盘和指针输入；粒子的推进由调度器完成
func (s *RainScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.showHUD = !s.showHUD
	}
	for key, a := range rainKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.apply(a)
		}
	}
	// 点击/触摸处落下一个字符
	if pressed, x, _ := utils.IsPointerJustPressed(); pressed {
		s.spawnAt(float64(x))
	}
}

func (s *RainScene) spawnAt(x float64) {
	if _, err := s.rain.Pool().SpawnAt(x); err != nil {
		log.Printf("[RainScene] 生成粒子失败: %v", err)
	}
}

func (s *RainScene) apply(a rainAction) {
	switch a {
	case actionToggle:
		s.rain.Toggle()
	case actionClear:
		s.rain.Pool().Clear()
		s.target.Clear()
	}

	if s.settings == nil {
		return
	}
	switch a {
	case actionFaster, actionSlower:
		factor := speedUpFactor
		if a == actionSlower {
			factor = speedDownFactor
		}
		r := s.settings.ScaleSpeed(factor)
		if err := s.rain.Pool().SetSpeed(r); err != nil {
			log.Printf("[RainScene] 调整速度失败: %v", err)
		}
	case actionSpawnMore, actionSpawnLess:
		ms := s.settings.GetSettings().SpawnIntervalMs
		if a == actionSpawnMore {
			ms /= 2
		} else {
			ms *= 2
		}
		s.settings.SetSpawnInterval(ms)
		s.rain.SetSpawnInterval(s.settings.GetSettings().SpawnInterval())
	case actionSave:
		if err := s.settings.Save(); err != nil {
			log.Printf("[RainScene] 保存设置失败: %v", err)
		}
	case actionReset:
		s.settings.Reset()
		cur := s.settings.GetSettings()
		if err := s.rain.Pool().SetSpeed(cur.Speed); err != nil {
			log.Printf("[RainScene] 恢复速度失败: %v", err)
		}
		s.rain.SetSpawnInterval(cur.SpawnInterval())
	}
}

// Draw 绘制画布和状态栏
func (s *RainScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)
	screen.DrawImage(s.target.Canvas(), nil)

	if !s.showHUD || s.hudFace == nil {
		return
	}
	s.hudOpts.GeoM.Reset()
	s.hudOpts.GeoM.Translate(6, 4)
	s.hudOpts.ColorScale.Reset()
	s.hudOpts.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, s.statusLine(), s.hudFace, &s.hudOpts)
}

// statusLine 状态栏文本
func (s *RainScene) statusLine() string {
	state := "paused"
	if s.rain.Running() {
		state = "running"
	}
	pool := s.rain.Pool()
	return fmt.Sprintf("%s  drops %d  speed %v  every %v  fps %.0f",
		state, pool.Active(), pool.Options().Speed, s.rain.SpawnInterval(), ebiten.ActualFPS())
}

// OnEnter 切回场景时恢复运行
func (s *RainScene) OnEnter() {
	if s.resumeOnEnter {
		s.rain.Start()
		s.resumeOnEnter = false
	}
}

// OnLeave 切出场景时暂停
func (s *RainScene) OnLeave() {
	if s.rain.Running() {
		s.rain.Stop()
		s.resumeOnEnter = true
	}
}

// SaveOnExit 退出时保存设置
func (s *RainScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[RainScene] 退出时保存设置失败: %v", err)
		return false
	}
	return true
}

// Rain returns the rain driven by this scene.
func (s *RainScene) Rain() *rain.Rain { return s.rain }

// Target returns the offscreen target.
func (s *RainScene) Target() *EbitenTarget { return s.target }
