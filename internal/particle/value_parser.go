// Package particle parses the numeric value syntax used by particle
// settings: a fixed value ("2") or a uniform random range ("[1.5 3]").
package particle

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Range is a closed interval [Min, Max]. A fixed value has Min == Max.
type Range struct {
	Min float64
	Max float64
}

// Fixed returns the range holding only v.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// IsFixed reports whether the range holds a single value.
func (r Range) IsFixed() bool {
	return r.Min == r.Max
}

// Sample returns a uniform value from the range. A nil rng uses the
// package-level source.
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Min >= r.Max {
		return r.Min
	}
	if rng == nil {
		return RandomInRange(r.Min, r.Max)
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// String formats the range in the syntax ParseValue accepts.
func (r Range) String() string {
	if r.IsFixed() {
		return strconv.FormatFloat(r.Min, 'g', -1, 64)
	}
	return "[" + strconv.FormatFloat(r.Min, 'g', -1, 64) + " " + strconv.FormatFloat(r.Max, 'g', -1, 64) + "]"
}

// MarshalYAML writes the range in value syntax.
func (r Range) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// UnmarshalYAML accepts a plain number or a value-syntax string.
func (r *Range) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseValue(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseValue parses a value string.
// Supports:
//   - Fixed value: "1500" → {1500, 1500}
//   - Range: "[0.7 0.9]" → {0.7, 0.9}
//   - Single bracketed value: "[2]" → {2, 2}
//
// A reversed range such as "[3 1]" is normalised to {1, 3}.
func ParseValue(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("particle: empty value")
	}

	if strings.HasPrefix(s, "[") || strings.HasSuffix(s, "]") {
		if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
			return Range{}, fmt.Errorf("particle: unbalanced brackets in %q", s)
		}
		parts := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"))
		switch len(parts) {
		case 1:
			v, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return Range{}, fmt.Errorf("particle: parse %q: %w", s, err)
			}
			return Fixed(v), nil
		case 2:
			lo, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return Range{}, fmt.Errorf("particle: parse %q: %w", s, err)
			}
			hi, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return Range{}, fmt.Errorf("particle: parse %q: %w", s, err)
			}
			if lo > hi {
				lo, hi = hi, lo
			}
			return Range{Min: lo, Max: hi}, nil
		default:
			return Range{}, fmt.Errorf("particle: range %q needs 1 or 2 numbers, got %d", s, len(parts))
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Range{}, fmt.Errorf("particle: parse %q: %w", s, err)
	}
	return Fixed(v), nil
}

// RandomInRange returns a random float64 in the range [min, max].
func RandomInRange(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + rand.Float64()*(max-min)
}
