package game

import (
	"testing"
	"time"
)

func TestAnimationLoopStartStop(t *testing.T) {
	s := NewScheduler()
	renders := 0
	loop := NewAnimationLoop(s, func(time.Time) { renders++ })

	if loop.Running() {
		t.Fatal("loop should start Stopped")
	}
	loop.Start()
	if renders != 0 {
		t.Fatal("Start should only schedule, not render")
	}

	for i := 0; i < 3; i++ {
		s.Advance(at(i * 16))
	}
	if renders != 3 || loop.Frames() != 3 {
		t.Fatalf("renders = %d frames = %d, want 3", renders, loop.Frames())
	}

	loop.Stop()
	if s.Pending() != 0 {
		t.Errorf("Stop should cancel the scheduled frame, Pending() = %d", s.Pending())
	}
	s.Advance(at(100))
	if renders != 3 {
		t.Errorf("rendered after Stop: %d", renders)
	}
}

func TestAnimationLoopRestartDoesNotDoubleSchedule(t *testing.T) {
	s := NewScheduler()
	renders := 0
	loop := NewAnimationLoop(s, func(time.Time) { renders++ })

	loop.Start()
	loop.Start()
	loop.Start()
	if s.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", s.Pending())
	}
	s.Advance(at(0))
	if renders != 1 {
		t.Errorf("renders = %d, want 1", renders)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d after tick, want 1", s.Pending())
	}
}

func TestAnimationLoopStopBeforeTick(t *testing.T) {
	s := NewScheduler()
	renders := 0
	loop := NewAnimationLoop(s, func(time.Time) { renders++ })

	loop.Start()
	loop.Stop()
	s.Advance(at(0))
	if renders != 0 {
		t.Errorf("tick after Stop rendered %d times", renders)
	}

	loop.Start()
	s.Advance(at(16))
	if renders != 1 {
		t.Errorf("restart renders = %d, want 1", renders)
	}
}

func TestAnimationLoopStopFromRender(t *testing.T) {
	s := NewScheduler()
	var loop *AnimationLoop
	renders := 0
	loop = NewAnimationLoop(s, func(time.Time) {
		renders++
		if renders == 2 {
			loop.Stop()
		}
	})

	loop.Start()
	for i := 0; i < 5; i++ {
		s.Advance(at(i * 16))
	}
	if renders != 2 {
		t.Errorf("renders = %d, want 2", renders)
	}
	if loop.Running() || s.Pending() != 0 {
		t.Error("loop should be stopped with nothing pending")
	}
}

func TestAnimationLoopRestartFromRender(t *testing.T) {
	s := NewScheduler()
	var loop *AnimationLoop
	loop = NewAnimationLoop(s, func(time.Time) { loop.Start() })

	loop.Start()
	s.Advance(at(0))
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, want exactly 1", s.Pending())
	}
}

func TestAnimationLoopSetRender(t *testing.T) {
	s := NewScheduler()
	first, second := 0, 0
	loop := NewAnimationLoop(s, func(time.Time) { first++ })
	loop.Start()
	s.Advance(at(0))

	loop.SetRender(func(time.Time) { second++ })
	s.Advance(at(16))
	if first != 1 || second != 1 {
		t.Errorf("first = %d second = %d, want 1/1", first, second)
	}

	loop.SetRender(nil)
	s.Advance(at(32))
	if loop.Frames() != 3 || !loop.Running() {
		t.Errorf("nil render should still tick, frames = %d", loop.Frames())
	}
}
