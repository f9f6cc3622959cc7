// Package main provides termrain, the text rain in a terminal.
//
// The same particle pool and scheduler as the desktop application run on a
// ticker; one terminal cell is one canvas unit.
//
// Usage:
//
//	go run ./cmd/termrain [flags]
//
// Controls:
//
//	Space        Pause / resume
//	Up/Down      Faster / slower
//	c            Clear particles
//	q, Esc       Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/glyphrain/internal/particle"
	"github.com/gonewx/glyphrain/pkg/config"
	"github.com/gonewx/glyphrain/pkg/game"
	"github.com/gonewx/glyphrain/pkg/rain"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

var (
	configFlag  = flag.String("config", "", "Path to a glyphrain config file")
	textsFlag   = flag.String("texts", "", "Characters to rain (overrides config)")
	speedFlag   = flag.String("speed", "[0.2 0.6]", "Cells per frame, \"0.4\" or \"[min max]\"")
	spawnFlag   = flag.Duration("spawn", 60*time.Millisecond, "Spawn interval")
	verboseFlag = flag.Bool("verbose", false, "Log to termrain.log")
)

// termRain 终端文字雨
type termRain struct {
	screen    tcell.Screen
	scheduler *game.Scheduler
	rain      *rain.Rain
	target    *termTarget
}

// newTermRain 按屏幕大小创建文字雨，粒子池画布 = 终端单元格
func newTermRain(screen tcell.Screen, cfg config.RainConfig) (*termRain, error) {
	w, h := screen.Size()
	cfg.Width, cfg.Height = max(w, 1), max(h, 1)
	// 精灵表只用于分级，单元格大小无关紧要
	cfg.FontSize = 1

	scheduler := game.NewScheduler()
	r, err := rain.NewFromConfig(cfg, nil, scheduler, nil)
	if err != nil {
		return nil, err
	}
	target := newTermTarget(screen, r.Pool().Sheet())
	r.SetTarget(target)

	return &termRain{
		screen:    screen,
		scheduler: scheduler,
		rain:      r,
		target:    target,
	}, nil
}

// handleEvent 处理一个终端事件，返回 false 表示退出
func (t *termRain) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			t.scaleSpeed(1.25)
		case tcell.KeyDown:
			t.scaleSpeed(0.8)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				t.rain.Toggle()
			case 'c':
				t.rain.Pool().Clear()
				t.target.Clear()
			}
		}
	case *tcell.EventResize:
		w, h := t.screen.Size()
		if err := t.rain.Pool().Resize(max(w, 1), max(h, 1)); err != nil {
			log.Printf("[TermRain] resize failed: %v", err)
		}
		t.screen.Sync()
	}
	return true
}

func (t *termRain) scaleSpeed(factor float64) {
	r := t.rain.Pool().Options().Speed
	r.Min *= factor
	r.Max *= factor
	if err := t.rain.Pool().SetSpeed(r); err != nil {
		log.Printf("[TermRain] speed change rejected: %v", err)
	}
}

// frame 推进调度器并刷新屏幕
func (t *termRain) frame(now time.Time) {
	t.scheduler.Advance(now)
	t.screen.Show()
}

// run 主循环：事件在独立 goroutine 中读取，其余都在本 goroutine 上执行
func (t *termRain) run(ctx context.Context) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				// Fini 之后返回 nil
				return
			}
			events <- ev
		}
	}()

	t.rain.Start()
	defer t.rain.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if !t.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			t.frame(now)
		}
	}
}

// setFlags 返回命令行中显式给出的参数名
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// loadRainConfig 合并配置文件和命令行参数
//
// 给了 --config 时，--speed/--spawn 只在显式指定时覆盖文件中的值；
// 没有配置文件时使用这两个参数的终端默认值（单位是字符格）。
func loadRainConfig(set map[string]bool) (config.RainConfig, error) {
	cfg := config.DefaultConfig()
	if *configFlag != "" {
		loaded, err := config.LoadConfig(*configFlag)
		if err != nil {
			return config.RainConfig{}, err
		}
		cfg = loaded
	}
	rc := cfg.Rain
	useFlag := func(name string) bool { return *configFlag == "" || set[name] }

	if *textsFlag != "" {
		rc.Texts = *textsFlag
	}
	if useFlag("speed") {
		speed, err := particle.ParseValue(*speedFlag)
		if err != nil {
			return config.RainConfig{}, fmt.Errorf("invalid --speed: %w", err)
		}
		rc.Speed = speed
	}
	if useFlag("spawn") {
		rc.SpawnIntervalMs = int(spawnFlag.Milliseconds())
	}
	return rc, nil
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *verboseFlag {
		f, err := os.OpenFile("termrain.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			defer f.Close()
			log.SetOutput(f)
		}
	}

	rc, err := loadRainConfig(setFlags(flag.CommandLine))
	if err != nil {
		fmt.Fprintf(os.Stderr, "termrain: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	tr, err := newTermRain(screen, rc)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "termrain: %v\n", err)
		os.Exit(1)
	}

	tr.run(context.Background())
	screen.Fini()
}
