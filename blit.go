package kmscon

import "github.com/michaelburch/kmscon/glyph"

// Rect is an axis-aligned rectangle in destination-surface pixel
// coordinates. X2 and Y2 are exclusive.
type Rect struct {
	X1, Y1 int
	X2, Y2 int
}

// union grows r to cover o.
func (r *Rect) union(o Rect) {
	r.X1 = min(r.X1, o.X1)
	r.Y1 = min(r.Y1, o.Y1)
	r.X2 = max(r.X2, o.X2)
	r.Y2 = max(r.Y2, o.Y2)
}

// BlitRequest positions one glyph bitmap on the destination surface with
// resolved foreground and background colors. Buf is borrowed from the glyph
// cache for the duration of the render call; the display must not retain it
// across frames.
type BlitRequest struct {
	Buf  *glyph.Bitmap
	X, Y int
	Fg   RGB
	Bg   RGB
}
