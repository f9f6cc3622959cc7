package rain

import (
	"log"
	"time"

	"github.com/gonewx/glyphrain/pkg/game"
	"github.com/gonewx/glyphrain/pkg/sprite"
)

// DefaultSpawnInterval 默认每 500ms 生成一个粒子
const DefaultSpawnInterval = 500 * time.Millisecond

// Rain 文字雨
//
// 组合粒子池、一个生成定时器和一个动画循环：定时器按固定周期生成粒子，
// 动画循环每帧清空画布、推进并绘制粒子。Start/Stop 可以反复调用，
// Stop 会同时取消定时器和待执行的帧。
type Rain struct {
	pool      *Pool
	scheduler *game.Scheduler
	loop      *game.AnimationLoop
	target    sprite.Target

	spawnEvery time.Duration
	spawnTimer game.TimerID
}

// New creates a stopped rain drawing pool onto target.
func New(pool *Pool, scheduler *game.Scheduler, target sprite.Target, spawnEvery time.Duration) *Rain {
	if spawnEvery <= 0 {
		spawnEvery = DefaultSpawnInterval
	}
	r := &Rain{
		pool:       pool,
		scheduler:  scheduler,
		target:     target,
		spawnEvery: spawnEvery,
	}
	r.loop = game.NewAnimationLoop(scheduler, r.render)
	return r
}

// Start (re)starts spawning and rendering.
func (r *Rain) Start() {
	r.stopTimer()
	r.spawnTimer = r.scheduler.SetInterval(r.spawnEvery, r.spawn)
	r.loop.Start()
	log.Printf("[Rain] 开始: 生成间隔 %v, 粒子 %d", r.spawnEvery, r.pool.Len())
}

// Stop halts spawning and rendering. Particles stay where they are.
func (r *Rain) Stop() {
	r.stopTimer()
	r.loop.Stop()
	log.Printf("[Rain] 停止: 粒子 %d", r.pool.Len())
}

// Toggle starts a stopped rain and stops a running one.
func (r *Rain) Toggle() {
	if r.Running() {
		r.Stop()
	} else {
		r.Start()
	}
}

// Running reports whether the animation loop is running.
func (r *Rain) Running() bool { return r.loop.Running() }

// SetSpawnInterval changes the spawn period; a running timer is restarted.
func (r *Rain) SetSpawnInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	r.spawnEvery = d
	if r.spawnTimer != 0 {
		r.stopTimer()
		r.spawnTimer = r.scheduler.SetInterval(r.spawnEvery, r.spawn)
	}
}

// SpawnInterval returns the spawn period.
func (r *Rain) SpawnInterval() time.Duration { return r.spawnEvery }

// SetTarget replaces the draw target for the following frames.
func (r *Rain) SetTarget(t sprite.Target) { r.target = t }

// Pool returns the particle pool.
func (r *Rain) Pool() *Pool { return r.pool }

// Frames returns the number of rendered frames.
func (r *Rain) Frames() uint64 { return r.loop.Frames() }

func (r *Rain) stopTimer() {
	if r.spawnTimer != 0 {
		r.scheduler.ClearInterval(r.spawnTimer)
		r.spawnTimer = 0
	}
}

func (r *Rain) spawn() {
	if _, err := r.pool.Spawn(); err != nil {
		log.Printf("[Rain] 生成粒子失败: %v", err)
	}
}

func (r *Rain) render(time.Time) {
	if c, ok := r.target.(sprite.Clearer); ok {
		c.Clear()
	}
	r.pool.Update()
	if r.target != nil {
		r.pool.Draw(r.target)
	}
}
