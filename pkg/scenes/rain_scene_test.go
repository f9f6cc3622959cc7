package scenes

import (
	"testing"
	"time"

	"github.com/gonewx/glyphrain/internal/particle"
	"github.com/gonewx/glyphrain/pkg/config"
	"github.com/gonewx/glyphrain/pkg/game"
	"github.com/gonewx/glyphrain/pkg/rain"
)

func newTestRainScene(t *testing.T) (*RainScene, *game.Scheduler) {
	t.Helper()
	cfg := config.DefaultConfig().Rain
	cfg.Width, cfg.Height = 64, 64
	cfg.FontSize = 8
	cfg.GradientGrade = 4
	cfg.Seed = 1

	settings := game.NewSettingsManager(nil, game.RainSettingsFrom(cfg))
	scheduler := game.NewScheduler()
	r, err := rain.NewFromConfig(cfg, settings.GetSettings(), scheduler, nil)
	if err != nil {
		t.Fatalf("NewFromConfig() error: %v", err)
	}
	return NewRainScene(r, settings), scheduler
}

func TestRainSceneDrawsIntoCanvas(t *testing.T) {
	s, scheduler := newTestRainScene(t)
	if w, h := s.Target().Canvas().Bounds().Dx(), s.Target().Canvas().Bounds().Dy(); w != 64 || h != 64 {
		t.Fatalf("canvas = %dx%d, want 64x64", w, h)
	}

	s.apply(actionToggle)
	if !s.Rain().Running() {
		t.Fatal("toggle should start the rain")
	}

	start := time.Unix(0, 0)
	scheduler.Advance(start)
	scheduler.Advance(start.Add(600 * time.Millisecond)) // 生成一个粒子并渲染
	scheduler.Advance(start.Add(616 * time.Millisecond))
	if s.Target().Drawn() == 0 {
		t.Error("rain frames should draw onto the canvas")
	}

	s.apply(actionClear)
	if s.Rain().Pool().Len() != 0 || s.Target().Drawn() != 0 {
		t.Errorf("clear: pool=%d drawn=%d", s.Rain().Pool().Len(), s.Target().Drawn())
	}
}

func TestRainSceneSpeedKeys(t *testing.T) {
	s, _ := newTestRainScene(t)

	s.apply(actionFaster)
	if got := s.Rain().Pool().Options().Speed; got != particle.Fixed(2.5) {
		t.Errorf("faster speed = %v, want 2.5", got)
	}
	s.apply(actionSlower)
	if got := s.Rain().Pool().Options().Speed; got != particle.Fixed(2) {
		t.Errorf("slower speed = %v, want 2", got)
	}
}

func TestRainSceneSpawnKeys(t *testing.T) {
	s, _ := newTestRainScene(t)

	s.apply(actionSpawnMore)
	if s.Rain().SpawnInterval() != 250*time.Millisecond {
		t.Errorf("SpawnInterval() = %v, want 250ms", s.Rain().SpawnInterval())
	}
	s.apply(actionSpawnLess)
	s.apply(actionSpawnLess)
	if s.Rain().SpawnInterval() != time.Second {
		t.Errorf("SpawnInterval() = %v, want 1s", s.Rain().SpawnInterval())
	}

	s.apply(actionReset)
	if s.Rain().SpawnInterval() != 500*time.Millisecond {
		t.Errorf("reset SpawnInterval() = %v, want 500ms", s.Rain().SpawnInterval())
	}
}

func TestRainScenePausesWhenLeft(t *testing.T) {
	s, _ := newTestRainScene(t)

	// 未运行时切换不应启动
	s.OnLeave()
	s.OnEnter()
	if s.Rain().Running() {
		t.Fatal("a stopped rain should stay stopped across a scene switch")
	}

	s.Rain().Start()
	s.OnLeave()
	if s.Rain().Running() {
		t.Error("leaving the scene should pause the rain")
	}
	s.OnEnter()
	if !s.Rain().Running() {
		t.Error("entering the scene should resume the rain")
	}
}

func TestRainSceneSaveOnExitWithoutGdata(t *testing.T) {
	s, _ := newTestRainScene(t)
	if !s.SaveOnExit() {
		t.Error("SaveOnExit() without gdata should succeed")
	}
	if !NewRainScene(s.Rain(), nil).SaveOnExit() {
		t.Error("SaveOnExit() without settings should succeed")
	}
}

func TestRainSceneStatusLine(t *testing.T) {
	s, _ := newTestRainScene(t)
	if got := s.statusLine(); len(got) == 0 || got[:6] != "paused" {
		t.Errorf("statusLine() = %q", got)
	}
}

func TestRainSceneSpawnAtPointer(t *testing.T) {
	s, _ := newTestRainScene(t)
	s.spawnAt(12)
	st := s.Rain().Pool().Snapshot()
	if len(st) != 1 || st[0].X != 12 {
		t.Errorf("Snapshot() = %+v", st)
	}
}
