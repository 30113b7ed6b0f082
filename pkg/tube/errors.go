package tube

import "errors"

// Tube building errors.
var (
	// ErrInvalidInput reports a trajectory or mesh parameter the builders
	// cannot work with: too few points, all points coincident, a
	// non-positive radius or fewer than three radial vertices.
	ErrInvalidInput = errors.New("invalid tube input")

	// ErrEmptySequence reports a mesh build without sections, typically
	// before any successful SetTrajectory.
	ErrEmptySequence = errors.New("empty section sequence")
)
