package game

import (
	"context"
	"errors"
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

func TestRequestFrameRunsOnce(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.RequestFrame(func(time.Time) { calls++ })

	if s.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", s.Pending())
	}
	s.Advance(at(0))
	s.Advance(at(16))
	if calls != 1 {
		t.Errorf("frame ran %d times, want 1", calls)
	}
}

func TestRequestFrameFromCallbackWaits(t *testing.T) {
	s := NewScheduler()
	calls := 0
	var fn FrameFunc
	fn = func(time.Time) {
		calls++
		s.RequestFrame(fn)
	}
	s.RequestFrame(fn)

	s.Advance(at(0))
	if calls != 1 {
		t.Fatalf("calls = %d after first Advance, want 1", calls)
	}
	s.Advance(at(16))
	if calls != 2 {
		t.Errorf("calls = %d after second Advance, want 2", calls)
	}
}

func TestCancelFrame(t *testing.T) {
	s := NewScheduler()
	ran := false
	id := s.RequestFrame(func(time.Time) { ran = true })

	if !s.CancelFrame(id) {
		t.Error("CancelFrame() should report a pending request")
	}
	if s.CancelFrame(id) {
		t.Error("second CancelFrame() should report nothing")
	}
	s.Advance(at(0))
	if ran {
		t.Error("cancelled frame ran")
	}

	// 同一批次中被前一个回调取消
	var second FrameID
	secondRan := false
	s.RequestFrame(func(time.Time) { s.CancelFrame(second) })
	second = s.RequestFrame(func(time.Time) { secondRan = true })
	s.Advance(at(16))
	if secondRan {
		t.Error("frame cancelled by an earlier callback of the same batch ran")
	}
}

func TestSetInterval(t *testing.T) {
	s := NewScheduler()
	s.Advance(at(0))

	fired := 0
	id := s.SetInterval(500*time.Millisecond, func() { fired++ })

	s.Advance(at(499))
	if fired != 0 {
		t.Fatalf("fired early: %d", fired)
	}
	s.Advance(at(500))
	if fired != 1 {
		t.Fatalf("fired = %d at 500ms, want 1", fired)
	}
	// 落后很多也只触发一次
	s.Advance(at(3000))
	if fired != 2 {
		t.Fatalf("fired = %d after long gap, want 2", fired)
	}
	s.Advance(at(3499))
	if fired != 2 {
		t.Fatalf("fired = %d before next period, want 2", fired)
	}
	s.Advance(at(3500))
	if fired != 3 {
		t.Fatalf("fired = %d, want 3", fired)
	}

	if !s.ClearInterval(id) {
		t.Error("ClearInterval() should report an active timer")
	}
	s.Advance(at(10000))
	if fired != 3 {
		t.Errorf("cleared interval fired: %d", fired)
	}
	if s.Intervals() != 0 {
		t.Errorf("Intervals() = %d", s.Intervals())
	}
}

func TestSetIntervalBeforeFirstAdvance(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.SetInterval(0, func() { fired++ }) // 提升到 MinInterval

	s.Advance(at(0))
	if fired != 0 {
		t.Fatalf("timer should start counting on first Advance, fired %d", fired)
	}
	s.Advance(at(1))
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestClearIntervalFromCallback(t *testing.T) {
	s := NewScheduler()
	s.Advance(at(0))

	var a, b TimerID
	bFired := false
	a = s.SetInterval(10*time.Millisecond, func() {
		s.ClearInterval(a)
		s.ClearInterval(b)
	})
	b = s.SetInterval(10*time.Millisecond, func() { bFired = true })

	s.Advance(at(10))
	if bFired {
		t.Error("timer cleared during the same Advance should not fire")
	}
	if s.Intervals() != 0 {
		t.Errorf("Intervals() = %d", s.Intervals())
	}
}

func TestAdvanceIgnoresClockGoingBack(t *testing.T) {
	s := NewScheduler()
	s.Advance(at(100))
	s.Advance(at(50))
	if !s.Now().Equal(at(100)) {
		t.Errorf("Now() = %v, want %v", s.Now(), at(100))
	}
}

func TestRun(t *testing.T) {
	s := NewScheduler()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames := 0
	var fn FrameFunc
	fn = func(time.Time) {
		frames++
		if frames == 3 {
			cancel()
			return
		}
		s.RequestFrame(fn)
	}
	s.RequestFrame(fn)

	err := s.Run(ctx, time.Millisecond)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
}
