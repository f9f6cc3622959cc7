// Package main provides glyphmatrix, a tool that extracts per-character
// point matrices from rendered text or from a glyph bitmap.
//
// Usage:
//
//	go run ./cmd/glyphmatrix [flags]
//
// Flags:
//
//	--text <s>         Text to extract (one character per tile)
//	--image <path>     Read tiles from a bitmap instead of rendering text
//	--font-size <n>    Tile size in pixels
//	--font <name>      goregular, gomono or a TTF/OTF path
//	--columns <n>      Characters per sheet row when rendering (0 = one row)
//	--format <f>       json (default) or text
//	--png <path>       Also write a point preview PNG
//	--config <path>    Take defaults from a glyphrain config file
//	--cache            Cache rendered matrices via gdata
//	--verbose          Enable logging
//
// Examples:
//
//	go run ./cmd/glyphmatrix --text "雨" --font /path/to/cjk.ttf --font-size 24 --format text
//	go run ./cmd/glyphmatrix --image sheet.png --text "ABCD" --font-size 16 > abcd.json
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"

	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/glyphrain/internal/glyph"
	"github.com/gonewx/glyphrain/internal/raster"
	"github.com/gonewx/glyphrain/pkg/config"
	"github.com/gonewx/glyphrain/pkg/game"
)

// options 命令行参数
type options struct {
	extract config.ExtractConfig
	matrix  config.MatrixConfig
	format  string
	pngPath string
	cache   bool
	verbose bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "glyphmatrix: %v\n", err)
		os.Exit(1)
	}
}

// run 解析参数、提取点阵并写出结果
func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if !opts.verbose {
		log.SetOutput(io.Discard)
	} else {
		log.SetOutput(stderr)
	}

	var cache *game.MatrixCache
	if opts.cache && opts.extract.Image == "" {
		gdataManager, err := gdata.Open(gdata.Config{AppName: "glyphrain"})
		if err != nil {
			log.Printf("[GlyphMatrix] Warning: gdata unavailable: %v", err)
		}
		cache = game.NewMatrixCache(gdataManager)
	}

	mm, err := extract(opts.extract, cache)
	if err != nil {
		return err
	}
	log.Printf("[GlyphMatrix] 提取完成: %d 个字符", mm.Len())

	if err := writeMatrices(stdout, mm, opts.format); err != nil {
		return err
	}
	if opts.pngPath != "" {
		if err := writePreview(opts.pngPath, mm, opts.matrix); err != nil {
			return err
		}
		log.Printf("[GlyphMatrix] 预览已保存: %s", opts.pngPath)
	}
	return nil
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("glyphmatrix", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "Take defaults from a glyphrain config file")
	text := fs.String("text", "", "Text to extract (one character per tile)")
	imagePath := fs.String("image", "", "Read tiles from a bitmap instead of rendering text")
	fontSize := fs.Int("font-size", 0, "Tile size in pixels")
	fontFamily := fs.String("font", "", "goregular, gomono or a TTF/OTF path")
	columns := fs.Int("columns", -1, "Characters per sheet row when rendering (0 = one row)")
	format := fs.String("format", "json", "Output format: json or text")
	pngPath := fs.String("png", "", "Also write a point preview PNG")
	useCache := fs.Bool("cache", false, "Cache rendered matrices via gdata")
	verbose := fs.Bool("verbose", false, "Enable verbose logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// 命令行参数覆盖配置文件
	if *text != "" {
		cfg.Extract.Text = *text
	}
	if *imagePath != "" {
		cfg.Extract.Image = *imagePath
	}
	if *fontSize != 0 {
		cfg.Extract.FontSize = *fontSize
	}
	if *fontFamily != "" {
		cfg.Extract.FontFamily = *fontFamily
	}
	if *columns >= 0 {
		cfg.Extract.Columns = *columns
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch *format {
	case "json", "text":
	default:
		return nil, fmt.Errorf("unknown format %q (want json or text)", *format)
	}

	return &options{
		extract: cfg.Extract,
		matrix:  cfg.Matrix,
		format:  *format,
		pngPath: *pngPath,
		cache:   *useCache,
		verbose: *verbose,
	}, nil
}

// extract 从位图或渲染的文本中提取点阵
func extract(ec config.ExtractConfig, cache *game.MatrixCache) (*glyph.MatrixMap, error) {
	if ec.Image != "" {
		img, err := raster.LoadImage(ec.Image)
		if err != nil {
			return nil, err
		}
		return glyph.BuildExact(ec.Text, glyph.PixelBufferFromImage(img), ec.FontSize)
	}

	build := func() (*glyph.MatrixMap, error) {
		face, err := raster.LoadFace(ec.FontFamily, float64(ec.FontSize))
		if err != nil {
			return nil, err
		}
		defer face.Close()
		return glyph.ExtractText(ec.Text, face, ec.FontSize, ec.Columns)
	}
	if cache == nil {
		return build()
	}
	return cache.GetOrBuild(ec.Text, ec.FontFamily, ec.FontSize, build)
}

// writeMatrices 输出点阵：json 为 {"字符": [[0,1,...],...]}，text 为 #/. 字符画
func writeMatrices(w io.Writer, mm *glyph.MatrixMap, format string) error {
	if format == "json" {
		data, err := json.Marshal(mm)
		if err != nil {
			return fmt.Errorf("failed to marshal matrices: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}

	for _, e := range mm.Entries() {
		if _, err := fmt.Fprintf(w, "%d %q\n%s\n\n", e.Index, string(e.Char), e.Matrix); err != nil {
			return err
		}
	}
	return nil
}

// writePreview 把所有字符的点阵横向排列画成 PNG（白底）
func writePreview(path string, mm *glyph.MatrixMap, mc config.MatrixConfig) error {
	if mm.Len() == 0 {
		return fmt.Errorf("nothing to preview")
	}
	first, _ := mm.At(0)
	blockW := float64(first.Matrix.Cols()+2) * mc.Space
	blockH := float64(first.Matrix.Rows()+2) * mc.Space

	w := int(mc.OffsetX*2 + blockW*float64(mm.Len()))
	h := int(mc.OffsetY*2 + blockH)
	s := raster.NewSurface(w, h)
	s.SetFillColor(raster.White)
	s.FillRect(s.Bounds())

	s.SetFillColor(mc.Color.Color())
	for i, e := range mm.Entries() {
		glyph.DrawPointMatrix(s, e.Matrix, mc.OffsetX+float64(i)*blockW, mc.OffsetY, mc.Space, mc.Radius)
	}

	return savePNG(path, s.Image())
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
