package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gonewx/glyphrain/internal/raster"
)

// writeSheet 写一个 2 格的位图：第一格全白，第二格全黑
func writeSheet(t *testing.T, size int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2*size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < 2*size; x++ {
			c := color.NRGBA{A: 255}
			if x < size {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "sheet.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunImageJSON(t *testing.T) {
	sheet := writeSheet(t, 4)
	var out, errOut bytes.Buffer
	if err := run([]string{"--image", sheet, "--text", "AB", "--font-size", "4"}, &out, &errOut); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	var got map[string][][]int
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(got) != 2 || len(got["A"]) != 4 || len(got["A"][0]) != 4 {
		t.Fatalf("unexpected shape: %v", got)
	}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if got["A"][r][c] != 1 || got["B"][r][c] != 0 {
				t.Fatalf("cell (%d,%d): A=%d B=%d", r, c, got["A"][r][c], got["B"][r][c])
			}
		}
	}
}

func TestRunImageTextMismatch(t *testing.T) {
	sheet := writeSheet(t, 4)
	var out, errOut bytes.Buffer
	err := run([]string{"--image", sheet, "--text", "A", "--font-size", "4"}, &out, &errOut)
	if err == nil {
		t.Fatal("a bitmap with more tiles than characters should fail")
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be written on error, got %q", out.String())
	}
}

func TestRunTextFormat(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run([]string{"--text", "I", "--font-size", "12", "--format", "text"}, &out, &errOut); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if lines[0] != `0 "I"` {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 13 {
		t.Errorf("got %d lines, want header + 12 rows", len(lines))
	}
	if !strings.Contains(out.String(), "#") {
		t.Error("'I' should have ink")
	}
}

func TestRunPreviewPNG(t *testing.T) {
	sheet := writeSheet(t, 4)
	preview := filepath.Join(t.TempDir(), "preview.png")
	var out, errOut bytes.Buffer
	args := []string{"--image", sheet, "--text", "AB", "--font-size", "4", "--png", preview}
	if err := run(args, &out, &errOut); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	img, err := raster.LoadImage(preview)
	if err != nil {
		t.Fatalf("LoadImage() error: %v", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Errorf("preview bounds = %v", img.Bounds())
	}
}

func TestRunBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"--format", "xml"}},
		{"zero font size", []string{"--font-size", "-1"}},
		{"missing image", []string{"--image", "/nonexistent/sheet.png", "--text", "A"}},
		{"unknown flag", []string{"--nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			if err := run(tt.args, &out, &errOut); err == nil {
				t.Error("expected error")
			}
		})
	}
}
