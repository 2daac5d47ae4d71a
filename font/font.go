// Package font rasterizes fixed-cell glyph bitmaps for the compositor.
//
// A Face wraps any golang.org/x/image/font.Face and renders every glyph
// into a fixed cell grid: one cell for narrow runes, two for wide (East
// Asian) runes. The default faces are the Inconsolata bitmap fonts shipped
// with golang.org/x/image; bold really is a separate font variant, which is
// why the compositor keeps separate caches per weight.
package font

import "errors"

// Sentinel errors for the font package.
var (
	// ErrNoGlyph is returned when the face has no glyph for a rune. The
	// compositor recovers by rendering the invalid-glyph placeholder.
	ErrNoGlyph = errors.New("font: no glyph for rune")

	// ErrBadFace is returned when a face reports degenerate cell metrics.
	ErrBadFace = errors.New("font: face has degenerate cell metrics")

	// ErrReleased is returned by a shared-cache handle whose cache has
	// been released by all consumers.
	ErrReleased = errors.New("font: shared render cache released")
)
