// Package motion moves a point along a piecewise-linear path at constant speed.
package motion

import "math"

// Waypoint 路径上的一个点
type Waypoint struct {
	X, Y float64
}

// Path is an ordered list of waypoints. A usable path has at least two.
type Path []Waypoint

// Segment is the straight piece between two consecutive waypoints.
type Segment struct {
	From   Waypoint
	To     Waypoint
	Length float64
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Waypoint) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// PathLength returns the sum of all segment lengths.
func PathLength(p Path) float64 {
	total := 0.0
	for i := 1; i < len(p); i++ {
		total += Distance(p[i-1], p[i])
	}
	return total
}

// Segments splits p into its segments. A path with fewer than two
// waypoints has none.
func (p Path) Segments() []Segment {
	if len(p) < 2 {
		return nil
	}
	segs := make([]Segment, len(p)-1)
	for i := range segs {
		segs[i] = Segment{From: p[i], To: p[i+1], Length: Distance(p[i], p[i+1])}
	}
	return segs
}

// Lerp returns the point at fraction t of the way from From to To.
func (s Segment) Lerp(t float64) Waypoint {
	return Waypoint{
		X: s.From.X + (s.To.X-s.From.X)*t,
		Y: s.From.Y + (s.To.Y-s.From.Y)*t,
	}
}

// Vertical returns the two-point path from (x, 0) straight down to (x, height).
func Vertical(x, height float64) Path {
	return Path{{X: x, Y: 0}, {X: x, Y: height}}
}

func finite(w Waypoint) bool {
	return !math.IsNaN(w.X) && !math.IsInf(w.X, 0) && !math.IsNaN(w.Y) && !math.IsInf(w.Y, 0)
}
