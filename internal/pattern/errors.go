package pattern

import "errors"

// Error kinds reported by the pipeline. Callers distinguish them with
// errors.Is; every failure is a value, never a panic.
var (
	// ErrImageDecode marks an unreadable or zero-pixel source image.
	ErrImageDecode = errors.New("image decode failed")

	// ErrSize marks requested grid dimensions that are non-positive or
	// exceed MaxGridDim.
	ErrSize = errors.New("invalid grid size")

	// ErrIndex marks a row or column reference outside the grid.
	ErrIndex = errors.New("index out of range")

	// ErrPaletteMismatch marks an edit referencing a color that is not part
	// of the grid's color set.
	ErrPaletteMismatch = errors.New("color not in pattern palette")
)
