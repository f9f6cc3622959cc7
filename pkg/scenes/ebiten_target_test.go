package scenes

import (
	"testing"

	"github.com/gonewx/glyphrain/pkg/sprite"
)

func TestEbitenTargetDrawAndClear(t *testing.T) {
	opts := sprite.DefaultOptions()
	opts.GradientGrade = 4
	sheet, err := sprite.New(opts)
	if err != nil {
		t.Fatalf("sprite.New() error: %v", err)
	}

	target := NewEbitenTarget(sheet, 32, 16)
	var _ sprite.Target = target
	var _ sprite.Clearer = target

	if b := target.Canvas().Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Fatalf("canvas bounds = %v", b)
	}

	target.DrawFrame(sheet.Frame(0, 0), 0, 0)
	target.DrawFrame(sheet.Frame(1, 0.5), 10.4, 3.6)
	if target.Drawn() != 2 {
		t.Errorf("Drawn() = %d, want 2", target.Drawn())
	}

	target.Clear()
	if target.Drawn() != 0 {
		t.Errorf("Drawn() after Clear = %d", target.Drawn())
	}
}
