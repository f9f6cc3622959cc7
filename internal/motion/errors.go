package motion

import (
	"errors"
	"fmt"
)

var (
	// ErrDegeneratePath is wrapped by every DegeneratePathError.
	ErrDegeneratePath = errors.New("motion: degenerate path")
	// ErrInvalidSpeed is wrapped by every InvalidSpeedError.
	ErrInvalidSpeed = errors.New("motion: invalid speed")
	// ErrFinished is returned when stepping a motion that already reached its last waypoint.
	ErrFinished = errors.New("motion: already finished")
)

// DegeneratePathError reports a path that cannot be travelled: fewer than
// two waypoints, a non-finite coordinate, or a zero-length segment reached
// while stepping (Segment >= 0).
type DegeneratePathError struct {
	Waypoints int
	Segment   int
}

func (e *DegeneratePathError) Error() string {
	if e.Segment >= 0 {
		return fmt.Sprintf("motion: zero-length segment %d in %d-waypoint path", e.Segment, e.Waypoints)
	}
	return fmt.Sprintf("motion: path needs at least 2 finite waypoints, got %d", e.Waypoints)
}

func (e *DegeneratePathError) Unwrap() error { return ErrDegeneratePath }

// InvalidSpeedError reports a speed that is not a positive finite number.
type InvalidSpeedError struct {
	Speed float64
}

func (e *InvalidSpeedError) Error() string {
	return fmt.Sprintf("motion: speed must be positive, got %v", e.Speed)
}

func (e *InvalidSpeedError) Unwrap() error { return ErrInvalidSpeed }
