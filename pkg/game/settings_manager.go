package game

import (
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/glyphrain/internal/particle"
	"github.com/gonewx/glyphrain/internal/raster"
	"github.com/gonewx/glyphrain/pkg/config"
)

// 生成间隔的取值范围（毫秒）
const (
	MinSpawnIntervalMs = 20
	MaxSpawnIntervalMs = 10000
)

// RainSettings 用户可调整并持久化的文字雨设置
type RainSettings struct {
	Speed           particle.Range     `yaml:"speed"`           // 每帧移动距离，"2" 或 "[1 3]"
	SpawnIntervalMs int                `yaml:"spawnIntervalMs"` // 生成间隔（毫秒）
	Color           config.ColorConfig `yaml:"color"`           // 文字颜色
}

// DefaultRainSettings 返回默认设置：绿色、速度 2、每 500ms 生成一个
func DefaultRainSettings() *RainSettings {
	return &RainSettings{
		Speed:           particle.Fixed(2),
		SpawnIntervalMs: 500,
		Color:           config.ColorConfig{R: 0, G: 180, B: 0, A: 1},
	}
}

// RainSettingsFrom 从配置文件的文字雨部分生成默认设置
func RainSettingsFrom(cfg config.RainConfig) *RainSettings {
	return &RainSettings{
		Speed:           cfg.Speed,
		SpawnIntervalMs: clampSpawnInterval(cfg.SpawnIntervalMs),
		Color:           cfg.Color,
	}
}

// SpawnInterval returns SpawnIntervalMs as a duration.
func (s *RainSettings) SpawnInterval() time.Duration {
	return time.Duration(s.SpawnIntervalMs) * time.Millisecond
}

// SettingsManager 设置管理器
// 负责文字雨设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	defaults     RainSettings
	settings     *RainSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "rain"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - defaults: 没有存档时使用的设置，nil 表示 DefaultRainSettings()
//
// 加载失败不是致命错误，使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager, defaults *RainSettings) *SettingsManager {
	if defaults == nil {
		defaults = DefaultRainSettings()
	}
	sm := &SettingsManager{
		gdataManager: gdataManager,
		defaults:     *defaults,
	}
	sm.reset()

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

func (sm *SettingsManager) reset() {
	s := sm.defaults
	sm.settings = &s
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或存档不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.reset()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.reset()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.reset()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 先填默认值，存档中缺失的字段保持默认
	loaded := sm.defaults
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.reset()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SpawnIntervalMs = clampSpawnInterval(loaded.SpawnIntervalMs)
	if loaded.Speed.Min <= 0 {
		loaded.Speed = sm.defaults.Speed
	}

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *RainSettings {
	return sm.settings
}

// SetSpeed 设置速度范围
// 非正的速度会被忽略，返回 false
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSpeed(r particle.Range) bool {
	if r.Min <= 0 || r.Max < r.Min {
		return false
	}
	sm.settings.Speed = r
	return true
}

// ScaleSpeed 按比例调整速度（Up/Down 键），结果不低于 0.1
func (sm *SettingsManager) ScaleSpeed(factor float64) particle.Range {
	r := sm.settings.Speed
	r.Min *= factor
	r.Max *= factor
	if r.Min < 0.1 {
		r.Max += 0.1 - r.Min
		r.Min = 0.1
	}
	sm.settings.Speed = r
	return r
}

// SetSpawnInterval 设置生成间隔（毫秒），限制在允许范围内
func (sm *SettingsManager) SetSpawnInterval(ms int) {
	sm.settings.SpawnIntervalMs = clampSpawnInterval(ms)
}

// SetColor 设置文字颜色
func (sm *SettingsManager) SetColor(c raster.Color) {
	sm.settings.Color = config.ColorConfigFrom(c)
}

// Reset 恢复默认设置（不会自动保存）
func (sm *SettingsManager) Reset() {
	sm.reset()
}

// clampSpawnInterval 将生成间隔限制在 MinSpawnIntervalMs ~ MaxSpawnIntervalMs
func clampSpawnInterval(ms int) int {
	if ms < MinSpawnIntervalMs {
		return MinSpawnIntervalMs
	}
	if ms > MaxSpawnIntervalMs {
		return MaxSpawnIntervalMs
	}
	return ms
}
