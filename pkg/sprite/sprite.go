// Package sprite builds the gradient text sprite sheet used by the rain.
//
// The sheet has one row per character and one column per opacity grade:
// the cell at (grade g, row i) holds character i drawn with alpha
// g/GradientGrade. Picking a column by progress gives a fading trail
// without any per-frame alpha blending.
package sprite

import (
	"errors"
	"fmt"
	"image"
	"math"
	"unicode/utf8"

	"golang.org/x/image/font"

	"github.com/gonewx/glyphrain/internal/raster"
)

// ErrInvalidSheet is returned for options that cannot produce a sheet.
var ErrInvalidSheet = errors.New("sprite: invalid sheet options")

// Options 精灵表参数
type Options struct {
	Texts         string
	FontFamily    string
	FontSize      int
	Color         raster.Color
	GradientGrade int
}

// DefaultOptions returns white goregular text at 12px with 100 grades.
func DefaultOptions() Options {
	return Options{
		Texts:         "01",
		FontFamily:    "goregular",
		FontSize:      12,
		Color:         raster.White,
		GradientGrade: 100,
	}
}

// Validate checks the options before rendering.
func (o Options) Validate() error {
	switch {
	case o.Texts == "":
		return fmt.Errorf("%w: empty text", ErrInvalidSheet)
	case o.FontSize <= 0:
		return fmt.Errorf("%w: font size %d", ErrInvalidSheet, o.FontSize)
	case o.GradientGrade <= 0:
		return fmt.Errorf("%w: gradient grade %d", ErrInvalidSheet, o.GradientGrade)
	}
	return nil
}

// Frame addresses one cell of the sheet.
type Frame struct {
	Row   int
	Grade int
	Src   image.Rectangle
}

// GradientText 渐变文字精灵表，构造后只读
type GradientText struct {
	opts    Options
	surface *raster.Surface
	rows    int
}

// New loads opts.FontFamily and renders the sheet.
func New(opts Options) (*GradientText, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	face, err := raster.LoadFace(opts.FontFamily, float64(opts.FontSize))
	if err != nil {
		return nil, fmt.Errorf("sprite: load font: %w", err)
	}
	defer face.Close()
	return NewWithFace(opts, face)
}

// NewWithFace renders the sheet with an already loaded face.
//
// The surface is FontSize*GradientGrade wide and FontSize*len(Texts) tall.
// Character i at grade g is drawn with its baseline at
// (g*FontSize, (i+1)*FontSize).
func NewWithFace(opts Options, face font.Face) (*GradientText, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if face == nil {
		return nil, fmt.Errorf("%w: nil font face", ErrInvalidSheet)
	}

	fs := opts.FontSize
	grade := opts.GradientGrade
	rows := utf8.RuneCountInString(opts.Texts)

	s := raster.NewSurface(fs*grade, fs*rows)
	s.SetFont(face)

	i := 0
	for _, r := range opts.Texts {
		ch := string(r)
		for g := 0; g < grade; g++ {
			s.SetFillColor(opts.Color.WithAlpha(float64(g) / float64(grade)))
			s.FillText(ch, float64(g*fs), float64((i+1)*fs))
		}
		i++
	}

	return &GradientText{opts: opts, surface: s, rows: rows}, nil
}

// GradeFor maps travel progress to a column: round((1-progress)*grade),
// clamped to an existing column. A fresh particle (progress 0) gets the
// most opaque column and a finished one column 0.
func (g *GradientText) GradeFor(progress float64) int {
	if math.IsNaN(progress) {
		return 0
	}
	grade := int(math.Round((1 - progress) * float64(g.opts.GradientGrade)))
	if grade < 0 {
		return 0
	}
	if grade > g.opts.GradientGrade-1 {
		return g.opts.GradientGrade - 1
	}
	return grade
}

// ColumnX returns the left edge in pixels of the column for progress.
func (g *GradientText) ColumnX(progress float64) int {
	return g.GradeFor(progress) * g.opts.FontSize
}

// FrameRect returns the source rectangle of cell (row, grade).
func (g *GradientText) FrameRect(row, grade int) image.Rectangle {
	fs := g.opts.FontSize
	return image.Rect(grade*fs, row*fs, (grade+1)*fs, (row+1)*fs)
}

// Frame returns the cell for a particle on row at the given progress.
// Rows outside the sheet wrap around.
func (g *GradientText) Frame(row int, progress float64) Frame {
	row %= g.rows
	if row < 0 {
		row += g.rows
	}
	grade := g.GradeFor(progress)
	return Frame{Row: row, Grade: grade, Src: g.FrameRect(row, grade)}
}

// Image returns the rendered sheet.
func (g *GradientText) Image() *image.RGBA { return g.surface.Image() }

// Surface returns the sheet surface.
func (g *GradientText) Surface() *raster.Surface { return g.surface }

// Width returns FontSize*GradientGrade.
func (g *GradientText) Width() int { return g.surface.Width() }

// Height returns FontSize*Rows.
func (g *GradientText) Height() int { return g.surface.Height() }

// Rows returns the number of characters in the sheet.
func (g *GradientText) Rows() int { return g.rows }

// FontSize returns the cell size.
func (g *GradientText) FontSize() int { return g.opts.FontSize }

// Grade returns the number of opacity columns.
func (g *GradientText) Grade() int { return g.opts.GradientGrade }

// Options returns the options the sheet was built with.
func (g *GradientText) Options() Options { return g.opts }
