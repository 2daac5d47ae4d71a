package kmscon

import "errors"

// Sentinel errors for the compositor.
var (
	// ErrInvalidGeometry is returned by Set when the display reports a
	// zero width or height surface. The renderer stays unset.
	ErrInvalidGeometry = errors.New("kmscon: display has zero width or height")

	// ErrNotSet is returned when a frame operation is called before Set,
	// or after Unset.
	ErrNotSet = errors.New("kmscon: renderer has no geometry set")

	// ErrBatchFull is returned when the blit request batch has no free
	// slot. The frame should be dropped or retried by the caller; the
	// renderer itself stays usable.
	ErrBatchFull = errors.New("kmscon: blit request batch is full")
)
