package kmscon

import "github.com/michaelburch/kmscon/glyph"

// pointerRune is the sentinel glyph drawn as the pointer sprite.
const pointerRune = 'I'

// DrawPointer places the pointer sprite centered at the given raw pixel
// coordinates of the unrotated surface. The coordinates are clamped so the
// sprite stays fully on the surface, and the up-to-four grid cells under it
// are marked damaged so the next frame repaints them once the pointer moves
// on.
//
// DrawPointer fails with ErrBatchFull when the batch's reserved pointer
// slot is already taken.
func (r *Renderer) DrawPointer(x, y int) error {
	if r.prev == nil {
		return ErrNotSet
	}
	if len(r.reqs) == cap(r.reqs) {
		return ErrBatchFull
	}

	fw, fh := r.font.CellSize()
	x = max(0, min(x, r.cols*fw-fw/2))
	y = max(0, min(y, r.rows*fh-fh/2))

	r.markPointerDamage(x, y)

	g, err := r.findGlyph(uint64(pointerRune), []rune{pointerRune}, r.attr)
	if err != nil {
		return err
	}

	px, py := r.pointerCoordinate(x, y)
	// The sprite keeps the default colors as-is, even when the default
	// style is inverse video.
	r.reqs = append(r.reqs, BlitRequest{Buf: g, X: px, Y: py, Fg: r.attr.Fg, Bg: r.attr.Bg})
	return nil
}

// markPointerDamage damages the cell under the pointer center and its
// right, lower and lower-right neighbors, each only if within bounds.
func (r *Renderer) markPointerDamage(x, y int) {
	fw, fh := r.font.CellSize()
	hw := (fw + 1) / 2
	hh := (fh + 1) / 2

	posx, posy := 0, 0
	if x > hw {
		posx = (x - hw) / fw
	}
	if y > hh {
		posy = (y - hh) / fh
	}
	posx = min(posx, r.cols-1)
	posy = min(posy, r.rows-1)

	off := posx + posy*r.cols
	r.damageCell(off)
	if posx+1 < r.cols {
		r.damageCell(off + 1)
	}
	if posy+1 < r.rows {
		r.damageCell(off + r.cols)
	}
	if posx+1 < r.cols && posy+1 < r.rows {
		r.damageCell(off + 1 + r.cols)
	}
}

// pointerCoordinate maps the pointer center from unrotated surface space to
// the top-left blit position in destination space, clamped so the sprite
// never leaves the surface.
func (r *Renderer) pointerCoordinate(px, py int) (int, int) {
	fw, fh := r.font.CellSize()
	var hw, hh int
	if r.orientation.Swapped() {
		hw = (fh + 1) / 2
		hh = (fw + 1) / 2
	} else {
		hw = (fw + 1) / 2
		hh = (fh + 1) / 2
	}

	var x, y int
	switch r.orientation {
	case glyph.OrientUpsideDown:
		x, y = r.sw-px, r.sh-py
	case glyph.OrientRight:
		x, y = r.sw-py, px
	case glyph.OrientLeft:
		x, y = py, r.sh-px
	default:
		x, y = px, py
	}

	x = max(hw, min(x, r.sw-hw))
	y = max(hh, min(y, r.sh-hh))
	return x - hw, y - hh
}
