package automaton

import "errors"

var (
	// ErrOutOfBounds is returned by SetCell for a coordinate outside [0,D) on any axis.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidDimension is returned when constructing a lattice with D <= 0.
	ErrInvalidDimension = errors.New("invalid lattice dimension")
	// ErrInvalidRules is returned for thresholds outside [0,26] or decreasing windows.
	ErrInvalidRules = errors.New("invalid rule thresholds")
)
