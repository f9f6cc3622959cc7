package systems

import (
	"testing"

	"github.com/gonewx/glyphrain/internal/motion"
	"github.com/gonewx/glyphrain/pkg/components"
	"github.com/gonewx/glyphrain/pkg/ecs"
	"github.com/gonewx/glyphrain/pkg/sprite"
)

type drawCall struct {
	frame sprite.Frame
	x, y  float64
}

type recordingTarget struct {
	calls []drawCall
}

func (r *recordingTarget) DrawFrame(f sprite.Frame, x, y float64) {
	r.calls = append(r.calls, drawCall{frame: f, x: x, y: y})
}

func newSheet(t *testing.T) *sprite.GradientText {
	t.Helper()
	opts := sprite.DefaultOptions()
	opts.Texts = "01"
	opts.FontSize = 10
	opts.GradientGrade = 10
	sheet, err := sprite.New(opts)
	if err != nil {
		t.Fatalf("sprite.New() error = %v", err)
	}
	return sheet
}

func TestRainRenderSystemDraw(t *testing.T) {
	em := ecs.NewEntityManager()
	sheet := newSheet(t)
	motions := NewMotionSystem(em)
	render := NewRainRenderSystem(em, sheet)

	addMotion(t, em, motion.Vertical(20, 100), 50)
	b := addMotion(t, em, motion.Vertical(40, 100), 10)
	em.AddComponent(b, &components.GlyphComponent{Row: 1})

	motions.Update()

	target := &recordingTarget{}
	if n := render.Draw(target); n != 2 {
		t.Fatalf("Draw() = %d, want 2", n)
	}

	// a: progress 0.5 → grade 5；b: progress 0.1 → grade 9
	first, second := target.calls[0], target.calls[1]
	if first.frame.Grade != 5 || first.frame.Row != 0 || first.x != 20 || first.y != 50 {
		t.Errorf("first call = %+v", first)
	}
	if first.frame.Src.Min.X != 50 {
		t.Errorf("first column x = %d, want 50", first.frame.Src.Min.X)
	}
	if second.frame.Grade != 9 || second.frame.Row != 1 || second.y != 10 {
		t.Errorf("second call = %+v", second)
	}
}

func TestRainRenderSystemDrawsFinishedOnce(t *testing.T) {
	em := ecs.NewEntityManager()
	motions := NewMotionSystem(em)
	render := NewRainRenderSystem(em, newSheet(t))
	addMotion(t, em, motion.Vertical(0, 10), 20)

	motions.Update()
	target := &recordingTarget{}
	render.Draw(target)
	if len(target.calls) != 1 || target.calls[0].frame.Grade != 0 || target.calls[0].y != 10 {
		t.Fatalf("finished particle should draw once at column 0, got %+v", target.calls)
	}

	motions.Update()
	target.calls = nil
	render.Draw(target)
	if len(target.calls) != 0 {
		t.Errorf("removed particle drawn again: %+v", target.calls)
	}
}

func TestRainRenderSystemNilTarget(t *testing.T) {
	em := ecs.NewEntityManager()
	render := NewRainRenderSystem(em, newSheet(t))
	if n := render.Draw(nil); n != 0 {
		t.Errorf("Draw(nil) = %d", n)
	}
}
