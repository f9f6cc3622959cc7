package app

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gonewx/glyphrain/pkg/config"
	"github.com/gonewx/glyphrain/pkg/game"
	"github.com/gonewx/glyphrain/pkg/scenes"
)

const testConfig = `
rain:
  width: 120
  height: 90
  fontSize: 8
  gradientGrade: 8
  spawnIntervalMs: 100
  seed: 7
extract:
  text: "Go"
  fontSize: 12
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestApp(t *testing.T, scene string) *App {
	t.Helper()
	a, err := NewApp(Config{
		Verbose:    true,
		ConfigPath: writeFile(t, "glyphrain.yaml", testConfig),
		Scene:      scene,
		NoPersist:  true,
	})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	return a
}

func TestNewApp(t *testing.T) {
	a := newTestApp(t, "")

	if w, h := a.Layout(1024, 768); w != 120 || h != 90 {
		t.Errorf("Layout() = %dx%d, want 120x90", w, h)
	}
	if got := a.GetSceneManager().Names(); len(got) != 2 || got[0] != SceneRain || got[1] != SceneMatrix {
		t.Errorf("scenes = %v", got)
	}
	if a.GetSceneManager().CurrentName() != SceneRain {
		t.Errorf("start scene = %q", a.GetSceneManager().CurrentName())
	}
	if !a.rain.Running() {
		t.Error("rain should be running after NewApp")
	}
}

func TestAppStepDrivesRain(t *testing.T) {
	a := newTestApp(t, "")

	now := time.Unix(100, 0)
	a.now = func() time.Time { return now }
	for i := 0; i < 30; i++ {
		a.step(1.0 / 60.0)
		now = now.Add(16 * time.Millisecond)
	}

	if a.rain.Frames() == 0 {
		t.Error("stepping should render rain frames")
	}
	if a.rain.Pool().Len() == 0 {
		t.Error("stepping for ~480ms at 100ms should spawn particles")
	}

	rs := a.GetSceneManager().GetCurrentScene().(*scenes.RainScene)
	if rs.Target().Drawn() == 0 {
		t.Error("frames should be drawn onto the rain canvas")
	}
}

func TestAppStartInMatrixScene(t *testing.T) {
	a := newTestApp(t, SceneMatrix)
	if a.GetSceneManager().CurrentName() != SceneMatrix {
		t.Fatalf("start scene = %q", a.GetSceneManager().CurrentName())
	}
	if a.rain.Running() {
		t.Error("rain should pause while the matrix scene is shown")
	}

	a.GetSceneManager().Next()
	if !a.rain.Running() {
		t.Error("rain should resume when switching back")
	}
}

func TestAppUnknownScene(t *testing.T) {
	_, err := NewApp(Config{
		Verbose:    true,
		ConfigPath: writeFile(t, "glyphrain.yaml", testConfig),
		Scene:      "menu",
		NoPersist:  true,
	})
	if err == nil {
		t.Error("unknown start scene should fail")
	}
}

func TestAppMissingConfig(t *testing.T) {
	_, err := NewApp(Config{
		Verbose:    true,
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		NoPersist:  true,
	})
	if err == nil {
		t.Error("missing config should fail")
	}
}

func TestAppClose(t *testing.T) {
	a := newTestApp(t, "")
	a.Close()
	if a.rain.Running() {
		t.Error("Close() should stop the rain")
	}
}

func TestLoadMatricesFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.White)
		}
	}
	path := filepath.Join(t.TempDir(), "glyphs.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	mm, err := loadMatrices(config.ExtractConfig{Text: "ab", FontSize: 8, Image: path}, game.NewMatrixCache(nil))
	if err != nil {
		t.Fatalf("loadMatrices() error: %v", err)
	}
	a, _ := mm.Lookup('a')
	b, _ := mm.Lookup('b')
	if a.InkCount() != 64 || b.InkCount() != 0 {
		t.Errorf("ink a=%d b=%d, want 64 and 0", a.InkCount(), b.InkCount())
	}
}

func TestLoadMatricesFromText(t *testing.T) {
	mm, err := loadMatrices(config.ExtractConfig{Text: "Hi", FontSize: 16, FontFamily: "goregular"}, game.NewMatrixCache(nil))
	if err != nil {
		t.Fatalf("loadMatrices() error: %v", err)
	}
	if mm.Len() != 2 || mm.Text() != "Hi" {
		t.Errorf("Len()=%d Text()=%q", mm.Len(), mm.Text())
	}
}
