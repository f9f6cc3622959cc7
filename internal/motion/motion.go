package motion

import "math"

// Kind 运动类型
type Kind int

const (
	// KindRectilinear is constant-speed travel along straight segments.
	KindRectilinear Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindRectilinear:
		return "rectilinear"
	default:
		return "unknown"
	}
}

// PathMotion is a point travelling along a Path by a fixed distance per Step.
//
// It starts Active at the first waypoint and becomes Finished once a step
// runs past the end of the last segment. Finished is terminal.
type PathMotion struct {
	path     Path
	segments []Segment
	speed    float64

	x, y          float64
	segmentIndex  int
	segmentMoved  float64
	movedDistance float64
	totalDistance float64
	finished      bool
}

// New creates an Active motion at path[0].
func New(path Path, speed float64) (*PathMotion, error) {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed <= 0 {
		return nil, &InvalidSpeedError{Speed: speed}
	}
	if len(path) < 2 {
		return nil, &DegeneratePathError{Waypoints: len(path), Segment: -1}
	}
	for _, w := range path {
		if !finite(w) {
			return nil, &DegeneratePathError{Waypoints: len(path), Segment: -1}
		}
	}

	p := make(Path, len(path))
	copy(p, path)
	m := &PathMotion{
		path:     p,
		segments: p.Segments(),
		speed:    speed,
		x:        p[0].X,
		y:        p[0].Y,
	}
	for _, s := range m.segments {
		m.totalDistance += s.Length
	}
	return m, nil
}

// Step advances the motion by Speed.
//
// While more than Speed remains on the current segment the point stays on
// it. Otherwise, if another segment follows, the overshoot is carried into
// it and MovedDistance grows by the full Speed (so it may run ahead of the
// distance actually covered). On the last segment the point snaps to the
// end, MovedDistance becomes TotalDistance and the motion is Finished.
//
// Stepping onto a zero-length segment returns a DegeneratePathError and
// leaves the state untouched.
func (m *PathMotion) Step() error {
	if m.finished {
		return ErrFinished
	}

	idx := m.segmentIndex
	seg := m.segments[idx]
	remaining := seg.Length - m.segmentMoved

	segMoved := m.segmentMoved
	moved := m.movedDistance
	finished := false

	switch {
	case remaining > m.speed:
		segMoved += m.speed
		moved += m.speed
	case idx+1 < len(m.segments):
		segMoved = m.speed - remaining
		idx++
		moved += m.speed
	default:
		segMoved = seg.Length
		moved = m.totalDistance
		finished = true
	}

	target := m.segments[idx]
	if target.Length == 0 {
		return &DegeneratePathError{Waypoints: len(m.path), Segment: idx}
	}
	pos := target.Lerp(segMoved / target.Length)

	m.segmentIndex = idx
	m.segmentMoved = segMoved
	m.movedDistance = moved
	m.finished = finished
	m.x, m.y = pos.X, pos.Y
	return nil
}

// Kind returns the motion shape.
func (m *PathMotion) Kind() Kind { return KindRectilinear }

// X returns the current horizontal position.
func (m *PathMotion) X() float64 { return m.x }

// Y returns the current vertical position.
func (m *PathMotion) Y() float64 { return m.y }

// Position returns the current position as a waypoint.
func (m *PathMotion) Position() Waypoint { return Waypoint{X: m.x, Y: m.y} }

// Path returns a copy of the travelled path.
func (m *PathMotion) Path() Path {
	p := make(Path, len(m.path))
	copy(p, m.path)
	return p
}

// Speed returns the distance covered per Step.
func (m *PathMotion) Speed() float64 { return m.speed }

// SetSpeed changes the per-step distance for the following steps.
func (m *PathMotion) SetSpeed(speed float64) error {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed <= 0 {
		return &InvalidSpeedError{Speed: speed}
	}
	m.speed = speed
	return nil
}

// SegmentIndex returns the index of the segment the point is on.
func (m *PathMotion) SegmentIndex() int { return m.segmentIndex }

// SegmentMoved returns the distance travelled within the current segment.
func (m *PathMotion) SegmentMoved() float64 { return m.segmentMoved }

// MovedDistance returns the cumulative distance counter.
func (m *PathMotion) MovedDistance() float64 { return m.movedDistance }

// TotalDistance returns the path length.
func (m *PathMotion) TotalDistance() float64 { return m.totalDistance }

// Finished reports whether the last waypoint was reached.
func (m *PathMotion) Finished() bool { return m.finished }

// Progress returns MovedDistance/TotalDistance, or 1 for a zero-length path.
// It is not clamped: the overshoot carry can push it past 1 before the end.
func (m *PathMotion) Progress() float64 {
	if m.totalDistance == 0 {
		return 1
	}
	return m.movedDistance / m.totalDistance
}
