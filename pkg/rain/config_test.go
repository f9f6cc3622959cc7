package rain

import (
	"testing"
	"time"

	"github.com/gonewx/glyphrain/internal/particle"
	"github.com/gonewx/glyphrain/pkg/config"
	"github.com/gonewx/glyphrain/pkg/game"
)

func TestNewFromConfigUsesSettings(t *testing.T) {
	cfg := config.DefaultConfig().Rain
	cfg.Texts = "ab"
	cfg.Width, cfg.Height = 200, 100
	cfg.GradientGrade = 10

	settings := &game.RainSettings{
		Speed:           particle.Range{Min: 3, Max: 5},
		SpawnIntervalMs: 250,
		Color:           config.ColorConfig{R: 255, A: 1},
	}

	r, err := NewFromConfig(cfg, settings, game.NewScheduler(), nil)
	if err != nil {
		t.Fatalf("NewFromConfig() error: %v", err)
	}
	if r.SpawnInterval() != 250*time.Millisecond {
		t.Errorf("SpawnInterval() = %v, want 250ms", r.SpawnInterval())
	}
	opts := r.Pool().Options()
	if opts.Width != 200 || opts.Height != 100 || opts.Speed != settings.Speed {
		t.Errorf("pool options = %+v", opts)
	}
	sheet := r.Pool().Sheet()
	if sheet.Rows() != 2 || sheet.Grade() != 10 {
		t.Errorf("sheet rows=%d grade=%d", sheet.Rows(), sheet.Grade())
	}
	if got := sheet.Options().Color.String(); got != "rgba(255,0,0,1)" {
		t.Errorf("sheet colour = %s, want settings colour", got)
	}
	if r.Running() {
		t.Error("rain should start stopped")
	}
}

func TestNewFromConfigWithoutSettings(t *testing.T) {
	cfg := config.DefaultConfig().Rain
	r, err := NewFromConfig(cfg, nil, game.NewScheduler(), nil)
	if err != nil {
		t.Fatalf("NewFromConfig() error: %v", err)
	}
	if r.SpawnInterval() != cfg.SpawnInterval() {
		t.Errorf("SpawnInterval() = %v, want %v", r.SpawnInterval(), cfg.SpawnInterval())
	}
	if r.Pool().Options().Speed != cfg.Speed {
		t.Errorf("Speed = %v", r.Pool().Options().Speed)
	}
}

func TestNewFromConfigBadFont(t *testing.T) {
	cfg := config.DefaultConfig().Rain
	cfg.FontFamily = "no-such-font"
	if _, err := NewFromConfig(cfg, nil, game.NewScheduler(), nil); err == nil {
		t.Error("unknown font should fail")
	}
}
