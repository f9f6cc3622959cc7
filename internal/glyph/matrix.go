package glyph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Matrix is a glyph's point matrix; true marks an ink pixel.
type Matrix [][]bool

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the width of the widest row.
func (m Matrix) Cols() int {
	cols := 0
	for _, row := range m {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// InkCount returns the number of ink cells.
func (m Matrix) InkCount() int {
	n := 0
	for _, row := range m {
		for _, ink := range row {
			if ink {
				n++
			}
		}
	}
	return n
}

// Strings renders each row as '#' (ink) and '.' (background).
func (m Matrix) Strings() []string {
	out := make([]string, len(m))
	for r, row := range m {
		var sb strings.Builder
		sb.Grow(len(row))
		for _, ink := range row {
			if ink {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		out[r] = sb.String()
	}
	return out
}

func (m Matrix) String() string {
	return strings.Join(m.Strings(), "\n")
}

// ParseMatrix is the inverse of Strings.
func ParseMatrix(rows []string) (Matrix, error) {
	m := make(Matrix, len(rows))
	for r, line := range rows {
		m[r] = make([]bool, len(line))
		for c := 0; c < len(line); c++ {
			switch line[c] {
			case '#':
				m[r][c] = true
			case '.':
			default:
				return nil, fmt.Errorf("glyph: invalid matrix cell %q at row %d col %d", line[c], r, c)
			}
		}
	}
	return m, nil
}

// MarshalJSON writes the matrix as rows of 1/0 numbers.
func (m Matrix) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for r, row := range m {
		if r > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('[')
		for c, ink := range row {
			if c > 0 {
				buf.WriteByte(',')
			}
			if ink {
				buf.WriteByte('1')
			} else {
				buf.WriteByte('0')
			}
		}
		buf.WriteByte(']')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Entry pairs a text position with its character and matrix.
type Entry struct {
	Index  int
	Char   rune
	Matrix Matrix
}

// MatrixMap holds one matrix per text position, in text order.
//
// Repeated characters keep every position's matrix; Lookup by character
// returns the last one.
type MatrixMap struct {
	entries []Entry
	byChar  map[rune]int
}

// NewMatrixMap returns an empty map with room for n entries.
func NewMatrixMap(n int) *MatrixMap {
	return &MatrixMap{
		entries: make([]Entry, 0, n),
		byChar:  make(map[rune]int, n),
	}
}

// Append adds the next text position.
func (mm *MatrixMap) Append(char rune, m Matrix) {
	mm.byChar[char] = len(mm.entries)
	mm.entries = append(mm.entries, Entry{Index: len(mm.entries), Char: char, Matrix: m})
}

// Len returns the number of text positions.
func (mm *MatrixMap) Len() int { return len(mm.entries) }

// At returns the entry for text position i.
func (mm *MatrixMap) At(i int) (Entry, bool) {
	if i < 0 || i >= len(mm.entries) {
		return Entry{}, false
	}
	return mm.entries[i], true
}

// Entries returns all entries in text order.
func (mm *MatrixMap) Entries() []Entry {
	out := make([]Entry, len(mm.entries))
	copy(out, mm.entries)
	return out
}

// Lookup returns the matrix of the last occurrence of char.
func (mm *MatrixMap) Lookup(char rune) (Matrix, bool) {
	i, ok := mm.byChar[char]
	if !ok {
		return nil, false
	}
	return mm.entries[i].Matrix, true
}

// Chars returns the distinct characters in order of first appearance.
func (mm *MatrixMap) Chars() []rune {
	seen := make(map[rune]bool, len(mm.byChar))
	out := make([]rune, 0, len(mm.byChar))
	for _, e := range mm.entries {
		if !seen[e.Char] {
			seen[e.Char] = true
			out = append(out, e.Char)
		}
	}
	return out
}

// Text returns the characters of every position joined back into a string.
func (mm *MatrixMap) Text() string {
	var sb strings.Builder
	for _, e := range mm.entries {
		sb.WriteRune(e.Char)
	}
	return sb.String()
}

// MarshalJSON writes a character-keyed object in order of first appearance.
// A repeated character appears once with its last matrix.
func (mm *MatrixMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range mm.Chars() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(r))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		m, _ := mm.Lookup(r)
		val, err := m.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Build extracts one point matrix per character of text from buf.
//
// buf must split into whole fontSize tiles and text may not have more
// characters than there are tiles; otherwise an InputShapeError is returned
// and nothing is extracted. Tile i belongs to the i-th character of text.
// Tiles past the end of text are ignored.
func Build(text string, buf PixelBuffer, fontSize int) (*MatrixMap, error) {
	return build(text, buf, fontSize, false)
}

// BuildExact is Build but also rejects text shorter than the tile count.
func BuildExact(text string, buf PixelBuffer, fontSize int) (*MatrixMap, error) {
	return build(text, buf, fontSize, true)
}

func build(text string, buf PixelBuffer, fontSize int, exact bool) (*MatrixMap, error) {
	if err := CheckShape(buf, fontSize); err != nil {
		return nil, err
	}

	tileCount := TileCount(buf.Width, buf.Height, fontSize)
	textLen := utf8.RuneCountInString(text)
	if textLen > tileCount || (exact && textLen != tileCount) {
		return nil, &InputShapeError{
			Width:    buf.Width,
			Height:   buf.Height,
			FontSize: fontSize,
			TextLen:  textLen,
			Tiles:    tileCount,
			Reason:   "text length does not match tile count",
		}
	}

	tiles := Tiles(buf, fontSize)
	result := NewMatrixMap(textLen)
	i := 0
	for _, char := range text {
		result.Append(char, sample(tiles[i]))
		i++
	}
	return result, nil
}

func sample(t Tile) Matrix {
	m := make(Matrix, len(t.Rows))
	for r, row := range t.Rows {
		m[r] = make([]bool, len(row))
		for c, px := range row {
			m[r][c] = IsInk(px)
		}
	}
	return m
}
