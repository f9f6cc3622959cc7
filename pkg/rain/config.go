package rain

import (
	"fmt"

	"github.com/gonewx/glyphrain/pkg/config"
	"github.com/gonewx/glyphrain/pkg/game"
	"github.com/gonewx/glyphrain/pkg/sprite"
)

// SheetOptions 由配置和用户设置生成精灵表参数；颜色以用户设置为准
func SheetOptions(cfg config.RainConfig, settings *game.RainSettings) sprite.Options {
	opts := sprite.Options{
		Texts:         cfg.Texts,
		FontFamily:    cfg.FontFamily,
		FontSize:      cfg.FontSize,
		Color:         cfg.Color.Color(),
		GradientGrade: cfg.GradientGrade,
	}
	if settings != nil {
		opts.Color = settings.Color.Color()
	}
	return opts
}

// PoolOptionsFrom 由配置和用户设置生成粒子池参数；速度以用户设置为准
func PoolOptionsFrom(cfg config.RainConfig, settings *game.RainSettings) PoolOptions {
	opts := PoolOptions{
		Width:  cfg.Width,
		Height: cfg.Height,
		Speed:  cfg.Speed,
		Seed:   cfg.Seed,
	}
	if settings != nil {
		opts.Speed = settings.Speed
	}
	return opts
}

// NewFromConfig 构建精灵表、粒子池和文字雨
//
// 返回的 Rain 处于停止状态；target 可以为 nil，之后用 SetTarget 设置。
func NewFromConfig(cfg config.RainConfig, settings *game.RainSettings, scheduler *game.Scheduler, target sprite.Target) (*Rain, error) {
	sheet, err := sprite.New(SheetOptions(cfg, settings))
	if err != nil {
		return nil, fmt.Errorf("failed to build sprite sheet: %w", err)
	}
	pool, err := NewPool(sheet, PoolOptionsFrom(cfg, settings))
	if err != nil {
		return nil, fmt.Errorf("failed to create particle pool: %w", err)
	}

	every := cfg.SpawnInterval()
	if settings != nil {
		every = settings.SpawnInterval()
	}
	return New(pool, scheduler, target, every), nil
}
