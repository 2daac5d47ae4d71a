package kmscon

import "github.com/michaelburch/kmscon/glyph"

// Display is the output surface the compositor renders to. Implementations
// are expected to be double buffered; the damage bookkeeping below exists so
// the compositor can resynchronize a stale back buffer.
type Display interface {
	// Width and Height return the surface dimensions in pixels.
	Width() int
	Height() int

	// Blend composites a batch of glyph blit requests into the current
	// back buffer. Each request's grey bitmap selects between the
	// request's background (0x00) and foreground (0xff) colors.
	Blend(reqs []BlitRequest) error

	// SupportsDamage reports whether the display honors partial damage
	// regions. When false the compositor skips damage computation.
	SupportsDamage() bool

	// SetDamage hands the display the merged damage rectangles for the
	// frame about to be presented. The slice is only valid until the
	// next Prepare.
	SetDamage(rects []Rect)

	// NeedsRedraw reports that the display wants a full repaint, for
	// example after a mode switch.
	NeedsRedraw() bool

	// HasDamage reports that the current back buffer is missing content
	// presented from the other buffer in an earlier frame.
	HasDamage() bool

	// Fill paints a solid rectangle in the current back buffer.
	Fill(c RGB, x, y, w, h int) error
}

// FontRenderer is the font rasterizer collaborator. Render results are
// unrotated; the compositor applies the orientation transform and caches the
// result itself.
//
// The style set by SetStyle is mutable shared state on the renderer, read at
// render time. The compositor sets it before every lookup; other callers
// sharing the renderer must do the same.
type FontRenderer interface {
	// CellSize returns the glyph cell dimensions in pixels.
	CellSize() (w, h int)

	// SetStyle sets the underline and italic attributes applied to
	// subsequent renders.
	SetStyle(underline, italic bool)

	// Render rasterizes the given codepoints into a single glyph bitmap.
	// A failure is recoverable: the compositor falls back to
	// RenderInvalid.
	Render(id uint64, chs []rune) (*glyph.Bitmap, error)

	// RenderEmpty rasterizes an empty cell.
	RenderEmpty() (*glyph.Bitmap, error)

	// RenderInvalid rasterizes the invalid-glyph placeholder.
	RenderInvalid() (*glyph.Bitmap, error)
}
