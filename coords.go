package kmscon

import "github.com/michaelburch/kmscon/glyph"

// cellToPixel returns the top-left pixel of a grid cell in destination
// surface coordinates for the current orientation.
func (r *Renderer) cellToPixel(posx, posy int) (x, y int) {
	fw, fh := r.font.CellSize()

	switch r.orientation {
	case glyph.OrientUpsideDown:
		return r.sw - (posx+1)*fw, r.sh - (posy+1)*fh
	case glyph.OrientRight:
		return r.sw - (posy+1)*fh, posx * fw
	case glyph.OrientLeft:
		return posy * fh, r.sh - (posx+1)*fw
	default:
		return posx * fw, posy * fh
	}
}
