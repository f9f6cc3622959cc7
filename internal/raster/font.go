package raster

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ErrUnknownFont is returned when a font family is neither built in nor a readable font file.
var ErrUnknownFont = errors.New("raster: unknown font")

// builtinFonts maps family names to embedded Go fonts.
// Generic CSS families resolve to the closest Go font.
var builtinFonts = map[string][]byte{
	"goregular":  goregular.TTF,
	"gomono":     gomono.TTF,
	"serif":      goregular.TTF,
	"sans-serif": goregular.TTF,
	"monospace":  gomono.TTF,
}

// LoadFace returns a face for family at size pixels (72 DPI, so 1pt == 1px).
//
// family is a built-in name (goregular, gomono, serif, sans-serif, monospace)
// or a path to a TTF/OTF file. An empty family means goregular.
func LoadFace(family string, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("raster: invalid font size %v", size)
	}

	data, err := fontData(family)
	if err != nil {
		return nil, err
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("raster: parse font %q: %w", family, err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("raster: create face %q: %w", family, err)
	}
	return face, nil
}

func fontData(family string) ([]byte, error) {
	name := strings.ToLower(strings.TrimSpace(family))
	if name == "" {
		return goregular.TTF, nil
	}
	if data, ok := builtinFonts[name]; ok {
		return data, nil
	}

	data, err := os.ReadFile(family)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnknownFont, family, err)
	}
	return data, nil
}
