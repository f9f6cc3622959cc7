package game

import "time"

// RenderFunc 每帧渲染回调
type RenderFunc func(now time.Time)

// AnimationLoop 可反复启停的动画循环
//
// 状态：Stopped（初始）/ Running。Running 时每次 Advance 调用一次渲染
// 回调，回调返回后若仍在运行才预约下一帧；任何时候最多只有一个待执行
// 的帧请求。
type AnimationLoop struct {
	scheduler *Scheduler
	render    RenderFunc
	running   bool
	pending   FrameID
	frames    uint64
}

// NewAnimationLoop 创建动画循环，初始为 Stopped
func NewAnimationLoop(s *Scheduler, render RenderFunc) *AnimationLoop {
	return &AnimationLoop{
		scheduler: s,
		render:    render,
	}
}

// Start enters Running and schedules the next frame, replacing any frame
// already scheduled.
func (l *AnimationLoop) Start() {
	l.cancelPending()
	l.running = true
	l.schedule()
}

// Stop enters Stopped and cancels the scheduled frame. Safe to call from
// inside the render callback.
func (l *AnimationLoop) Stop() {
	l.running = false
	l.cancelPending()
}

// SetRender replaces the callback; the next frame uses it.
func (l *AnimationLoop) SetRender(fn RenderFunc) {
	l.render = fn
}

// Running reports whether the loop is Running.
func (l *AnimationLoop) Running() bool { return l.running }

// Frames returns the number of rendered frames.
func (l *AnimationLoop) Frames() uint64 { return l.frames }

func (l *AnimationLoop) schedule() {
	l.pending = l.scheduler.RequestFrame(l.tick)
}

func (l *AnimationLoop) cancelPending() {
	if l.pending != 0 {
		l.scheduler.CancelFrame(l.pending)
		l.pending = 0
	}
}

func (l *AnimationLoop) tick(now time.Time) {
	l.pending = 0
	// 停止后触发的帧什么也不做
	if !l.running {
		return
	}

	l.frames++
	if l.render != nil {
		l.render(now)
	}

	// 回调里可能调用了 Stop 或 Start
	if l.running && l.pending == 0 {
		l.schedule()
	}
}
