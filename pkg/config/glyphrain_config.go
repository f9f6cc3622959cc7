package config

import (
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/glyphrain/internal/particle"
	"github.com/gonewx/glyphrain/internal/raster"
	"github.com/gonewx/glyphrain/pkg/embedded"
)

// DefaultConfigPath 内置配置文件路径
const DefaultConfigPath = "data/glyphrain.yaml"

// Config glyphrain 配置
//
// 配置文件位置: data/glyphrain.yaml（嵌入）或命令行指定的文件
type Config struct {
	// Rain 文字雨参数
	Rain RainConfig `yaml:"rain"`

	// Extract 点阵提取参数
	Extract ExtractConfig `yaml:"extract"`

	// Matrix 点阵预览参数
	Matrix MatrixConfig `yaml:"matrix"`
}

// ColorConfig 颜色，A 为 0~1 的不透明度
type ColorConfig struct {
	R int     `yaml:"r"`
	G int     `yaml:"g"`
	B int     `yaml:"b"`
	A float64 `yaml:"a"`
}

// Color converts to a clamped raster colour.
func (c ColorConfig) Color() raster.Color {
	return raster.NewColor(c.R, c.G, c.B, c.A)
}

// ColorConfigFrom converts a raster colour.
func ColorConfigFrom(c raster.Color) ColorConfig {
	return ColorConfig{R: int(c.R), G: int(c.G), B: int(c.B), A: float64(c.A)}
}

// RainConfig 文字雨配置
type RainConfig struct {
	Width           int            `yaml:"width"`           // 画布宽度
	Height          int            `yaml:"height"`          // 画布高度
	Texts           string         `yaml:"texts"`           // 雨滴字符，每个字符一行精灵
	FontFamily      string         `yaml:"fontFamily"`      // goregular / gomono / 字体文件路径
	FontSize        int            `yaml:"fontSize"`        // 字号（像素）
	GradientGrade   int            `yaml:"gradientGrade"`   // 透明度分级数
	Color           ColorConfig    `yaml:"color"`           // 文字颜色
	Speed           particle.Range `yaml:"speed"`           // 每帧移动距离，"2" 或 "[1 3]"
	SpawnIntervalMs int            `yaml:"spawnIntervalMs"` // 生成间隔（毫秒）
	Seed            int64          `yaml:"seed"`            // 随机种子，0 表示随机
}

// SpawnInterval returns SpawnIntervalMs as a duration.
func (r RainConfig) SpawnInterval() time.Duration {
	return time.Duration(r.SpawnIntervalMs) * time.Millisecond
}

// ExtractConfig 点阵提取配置
type ExtractConfig struct {
	Text       string `yaml:"text"`       // 要提取的文本
	FontFamily string `yaml:"fontFamily"` // 渲染字体
	FontSize   int    `yaml:"fontSize"`   // 每个字符的瓦片边长
	Columns    int    `yaml:"columns"`    // 渲染时每行字符数，0 表示一行
	Image      string `yaml:"image"`      // 可选：直接从位图提取
}

// MatrixConfig 点阵预览配置
type MatrixConfig struct {
	Space   float64     `yaml:"space"`   // 点间距
	Radius  float64     `yaml:"radius"`  // 点半径
	OffsetX float64     `yaml:"offsetX"` // 起始偏移
	OffsetY float64     `yaml:"offsetY"`
	Color   ColorConfig `yaml:"color"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Rain: RainConfig{
			Width:           400,
			Height:          400,
			Texts:           "01",
			FontFamily:      "goregular",
			FontSize:        14,
			GradientGrade:   100,
			Color:           ColorConfig{R: 0, G: 180, B: 0, A: 1},
			Speed:           particle.Fixed(2),
			SpawnIntervalMs: 500,
		},
		Extract: ExtractConfig{
			Text:       "glyph",
			FontFamily: "goregular",
			FontSize:   16,
		},
		Matrix: MatrixConfig{
			Space:   10,
			Radius:  2,
			OffsetX: 10,
			OffsetY: 10,
			Color:   ColorConfig{R: 0, G: 0, B: 0, A: 1},
		},
	}
}

// LoadConfig 加载配置
//
// 以 "data/" 开头且已嵌入的路径从 embedded 读取，其余从磁盘读取。
// 文件中缺失的字段保留默认值。
func LoadConfig(path string) (*Config, error) {
	var (
		data []byte
		err  error
	)
	if embedded.IsEmbeddedPath(path) && embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig 解析 YAML 配置并验证
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	r := c.Rain
	switch {
	case r.Width <= 0 || r.Height <= 0:
		return fmt.Errorf("rain canvas must be positive: %dx%d", r.Width, r.Height)
	case r.Texts == "":
		return fmt.Errorf("rain texts must not be empty")
	case r.FontSize <= 0:
		return fmt.Errorf("rain fontSize must be positive: %d", r.FontSize)
	case r.GradientGrade <= 0:
		return fmt.Errorf("rain gradientGrade must be positive: %d", r.GradientGrade)
	case r.Speed.Min <= 0:
		return fmt.Errorf("rain speed must be positive: %v", r.Speed)
	case r.SpawnIntervalMs <= 0:
		return fmt.Errorf("rain spawnIntervalMs must be positive: %d", r.SpawnIntervalMs)
	}

	e := c.Extract
	switch {
	case e.FontSize <= 0:
		return fmt.Errorf("extract fontSize must be positive: %d", e.FontSize)
	case e.Columns < 0:
		return fmt.Errorf("extract columns must not be negative: %d", e.Columns)
	case e.Image == "" && utf8.RuneCountInString(e.Text) == 0:
		return fmt.Errorf("extract needs text or image")
	}

	m := c.Matrix
	if m.Space <= 0 || m.Radius <= 0 {
		return fmt.Errorf("matrix space and radius must be positive: space=%.1f radius=%.1f", m.Space, m.Radius)
	}
	return nil
}
