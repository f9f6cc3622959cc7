package raster

import "testing"

func TestColorSettersClamp(t *testing.T) {
	c := NewColor(300, -5, 128, 2.5)
	if c.R != 255 || c.G != 0 || c.B != 128 {
		t.Errorf("channels: got (%d,%d,%d), want (255,0,128)", c.R, c.G, c.B)
	}
	if c.A != 1 {
		t.Errorf("alpha: got %v, want 1", c.A)
	}

	c.SetA(-1)
	if c.A != 0 {
		t.Errorf("negative alpha: got %v, want 0", c.A)
	}
}

func TestColorString(t *testing.T) {
	c := NewColor(0, 180, 0, 0.25)
	if got, want := c.String(), "rgba(0,180,0,0.25)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := White.String(), "rgba(255,255,255,1)"; got != want {
		t.Errorf("White.String() = %q, want %q", got, want)
	}
}

func TestOpacityConversion(t *testing.T) {
	tests := []struct {
		frac OpacityFraction
		want OpacityByte
	}{
		{0, 0},
		{1, 255},
		{0.5, 128},
		{1.7, 255},
		{-0.2, 0},
	}
	for _, tt := range tests {
		if got := tt.frac.Byte(); got != tt.want {
			t.Errorf("OpacityFraction(%v).Byte() = %d, want %d", tt.frac, got, tt.want)
		}
	}

	if got := OpacityByte(255).Fraction(); got != 1 {
		t.Errorf("OpacityByte(255).Fraction() = %v, want 1", got)
	}
	if got := OpacityByte(0).Fraction(); got != 0 {
		t.Errorf("OpacityByte(0).Fraction() = %v, want 0", got)
	}
}

func TestWithAlphaLeavesOriginal(t *testing.T) {
	base := NewColor(10, 20, 30, 1)
	faded := base.WithAlpha(0.1)
	if base.A != 1 {
		t.Errorf("base alpha changed to %v", base.A)
	}
	if faded.A != 0.1 {
		t.Errorf("faded alpha = %v, want 0.1", faded.A)
	}
	if n := faded.NRGBA(); n.R != 10 || n.G != 20 || n.B != 30 || n.A != 26 {
		t.Errorf("NRGBA() = %+v", n)
	}
}
