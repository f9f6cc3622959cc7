package game

import (
	"context"
	"time"
)

// FrameFunc 帧回调，参数为本次 Advance 的时间
type FrameFunc func(now time.Time)

// FrameID 帧请求标识，0 表示无效
type FrameID uint64

// TimerID 定时器标识，0 表示无效
type TimerID uint64

// MinInterval is the shortest interval SetInterval accepts; shorter ones are raised to it.
const MinInterval = time.Millisecond

type frameRequest struct {
	id        FrameID
	fn        FrameFunc
	cancelled bool
}

type interval struct {
	id      TimerID
	every   time.Duration
	fn      func()
	next    time.Time
	cleared bool
}

// Scheduler 单线程帧调度器
//
// 提供"下一帧回调"和"固定周期回调"两种原语，由宿主在每个显示刷新
// 时调用 Advance 驱动（ebiten 的 Update、终端循环的 ticker 或 Run）。
// Scheduler 不做任何加锁，所有方法必须在驱动它的同一个 goroutine 上调用。
type Scheduler struct {
	nextFrame FrameID
	nextTimer TimerID

	frames  []*frameRequest
	running []*frameRequest
	timers  []*interval

	now time.Time
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// RequestFrame queues fn for the next Advance. Each request runs at most once.
func (s *Scheduler) RequestFrame(fn FrameFunc) FrameID {
	s.nextFrame++
	s.frames = append(s.frames, &frameRequest{id: s.nextFrame, fn: fn})
	return s.nextFrame
}

// CancelFrame drops a queued frame request. It also works from inside a
// frame callback for requests of the same batch that have not run yet.
// It reports whether a pending request was cancelled.
func (s *Scheduler) CancelFrame(id FrameID) bool {
	if id == 0 {
		return false
	}
	for i, req := range s.frames {
		if req.id == id {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			return true
		}
	}
	for _, req := range s.running {
		if req.id == id && !req.cancelled {
			req.cancelled = true
			return true
		}
	}
	return false
}

// SetInterval calls fn every d, checked on each Advance. A late Advance
// fires fn once, not once per missed period.
func (s *Scheduler) SetInterval(d time.Duration, fn func()) TimerID {
	if d < MinInterval {
		d = MinInterval
	}
	s.nextTimer++
	iv := &interval{id: s.nextTimer, every: d, fn: fn}
	if !s.now.IsZero() {
		iv.next = s.now.Add(d)
	}
	s.timers = append(s.timers, iv)
	return s.nextTimer
}

// ClearInterval stops a timer. It reports whether the timer was active.
func (s *Scheduler) ClearInterval(id TimerID) bool {
	for i, iv := range s.timers {
		if iv.id == id {
			iv.cleared = true
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance runs everything due at now: first the intervals, then the frame
// requests queued before this call. Requests made by the callbacks wait for
// the next Advance.
func (s *Scheduler) Advance(now time.Time) {
	if now.Before(s.now) {
		now = s.now
	}
	s.now = now

	timers := make([]*interval, len(s.timers))
	copy(timers, s.timers)
	for _, iv := range timers {
		if iv.cleared {
			continue
		}
		// 首次 Advance 之前设置的定时器从这里开始计时
		if iv.next.IsZero() {
			iv.next = now.Add(iv.every)
			continue
		}
		if now.Before(iv.next) {
			continue
		}
		iv.next = iv.next.Add(iv.every)
		if !iv.next.After(now) {
			iv.next = now.Add(iv.every)
		}
		iv.fn()
	}

	s.running = s.frames
	s.frames = nil
	for _, req := range s.running {
		if req.cancelled {
			continue
		}
		req.cancelled = true
		req.fn(now)
	}
	s.running = nil
}

// Pending returns the number of queued frame requests.
func (s *Scheduler) Pending() int { return len(s.frames) }

// Intervals returns the number of active timers.
func (s *Scheduler) Intervals() int { return len(s.timers) }

// Now returns the time of the last Advance.
func (s *Scheduler) Now() time.Time { return s.now }

// Run drives Advance from a ticker until ctx is done. It must be the only
// goroutine using s while it runs.
func (s *Scheduler) Run(ctx context.Context, tick time.Duration) error {
	if tick <= 0 {
		tick = time.Second / 60
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			s.Advance(now)
		}
	}
}
