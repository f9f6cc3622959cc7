package glyph

import (
	"errors"
	"fmt"
)

// ErrInputShape is the sentinel behind every InputShapeError.
var ErrInputShape = errors.New("glyph: input shape mismatch")

// InputShapeError reports a pixel buffer or text that cannot be split into
// whole glyph tiles.
type InputShapeError struct {
	Width    int
	Height   int
	FontSize int
	TextLen  int
	Tiles    int
	Reason   string
}

func (e *InputShapeError) Error() string {
	return fmt.Sprintf("glyph: %s (width=%d height=%d fontSize=%d text=%d tiles=%d)",
		e.Reason, e.Width, e.Height, e.FontSize, e.TextLen, e.Tiles)
}

func (e *InputShapeError) Unwrap() error { return ErrInputShape }
