package shadow

import "errors"

// Precondition violations reported at the package boundary. Callers wrap
// these with coordinates, so compare with errors.Is.
var (
	ErrEmptyGrid         = errors.New("shadow: grid dimensions must be positive")
	ErrRegionOutOfBounds = errors.New("shadow: region outside grid")
	ErrCellOutOfBounds   = errors.New("shadow: cell outside grid")
	ErrBadBlockSize      = errors.New("shadow: block size must be positive and finite")
	ErrBadRadius         = errors.New("shadow: radius must be positive and finite")
	ErrBadLayout         = errors.New("shadow: malformed layout")
)
