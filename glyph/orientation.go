package glyph

// Orientation selects the rotation of the rendered output relative to the
// terminal grid. It affects both the glyph bitmap transform and the mapping
// of grid coordinates to surface pixels.
type Orientation int

const (
	// OrientNormal renders the grid unrotated.
	OrientNormal Orientation = iota

	// OrientRight rotates the output 90 degrees clockwise.
	OrientRight

	// OrientUpsideDown rotates the output 180 degrees.
	OrientUpsideDown

	// OrientLeft rotates the output 90 degrees counter-clockwise.
	OrientLeft
)

// Swapped reports whether the orientation exchanges the horizontal and
// vertical axes of the surface.
func (o Orientation) Swapped() bool {
	return o == OrientRight || o == OrientLeft
}

// String returns a human-readable name for the orientation.
func (o Orientation) String() string {
	switch o {
	case OrientNormal:
		return "normal"
	case OrientRight:
		return "right"
	case OrientUpsideDown:
		return "upside-down"
	case OrientLeft:
		return "left"
	}
	return "unknown"
}
