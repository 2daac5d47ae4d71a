package kmscon

import "github.com/michaelburch/kmscon/glyph"

// blankID is the glyph identity used when the screen model requests a wide
// cell but the font only has a narrow glyph, and the neighbor cell must be
// blanked.
const blankID uint64 = ' '

// Draw composites one grid cell. id identifies the glyph (codepoint plus
// render-variant bits), chs are the codepoints making up the cell content
// (empty for a blank cell), width is the cell width the screen model
// requested (0 for the right half of a wide glyph, else 1 or 2), and posx,
// posy address the cell.
//
// Draw calls must arrive in row-major order within a frame: the skip
// decision for a cell can depend on the record its left neighbor wrote
// earlier in the same frame.
//
// A cell whose identity and style match the previous frame emits nothing
// unless it carries stale damage, in which case the blit is re-emitted to
// resynchronize the back buffer.
func (r *Renderer) Draw(id uint64, chs []rune, width, posx, posy int, attr Attr) error {
	if r.prev == nil {
		return ErrNotSet
	}
	if posx < 0 || posx >= r.cols || posy < 0 || posy >= r.rows {
		return nil
	}

	offset := posx + posy*r.cols
	lastCol := posx == r.cols-1

	if width == 0 {
		// Right-half placeholder of a wide glyph: covered by the left
		// neighbor unless that neighbor lost its overflow, in which
		// case the cell is drawn as empty below.
		chs = nil
		width = 1
	}
	if len(chs) == 0 && posx > 0 &&
		(r.prev[offset-1].overflow || r.prev[offset-1].blanked) {
		return nil
	}

	prev := &r.prev[offset]

	if prev.id == id && prev.attr == attr {
		if (prev.overflow || width == 2) && !lastCol {
			if r.damages[offset] || r.damages[offset+1] ||
				r.prev[offset+1].id == idDamaged {
				r.damages[offset] = false
				if r.prev[offset+1].id == idOverflow {
					r.damages[offset+1] = false
				}
				r.prev[offset+1].id = idOverflow
			} else {
				return nil
			}
		} else {
			if !r.damages[offset] {
				return nil
			}
			r.damages[offset] = false
		}
	} else {
		r.damages[offset] = true
		if (prev.overflow || width == 2) && !lastCol {
			r.damageCell(offset + 1)
		}
	}

	prev.id = id
	prev.attr = attr

	g, err := r.findGlyph(id, chs, attr)
	if err != nil {
		return err
	}

	// Overflow is never set on the last column: wide glyphs do not wrap.
	if g.CellWidth == 2 && !lastCol {
		prev.overflow = true
		r.prev[offset+1].overflow = false
	} else {
		prev.overflow = false
	}
	prev.blanked = width == 2 && g.CellWidth == 1 && !lastCol

	drawx := posx
	if prev.overflow &&
		(r.orientation == glyph.OrientLeft || r.orientation == glyph.OrientUpsideDown) {
		// The rotated wide bitmap has its visual origin in the right
		// cell, so start there and end on this cell.
		drawx = posx + 1
	}
	x, y := r.cellToPixel(drawx, posy)
	if err := r.pushReq(g, x, y, attr); err != nil {
		return err
	}

	if prev.blanked {
		// The screen model thinks this glyph is wide but the font only
		// has a narrow one. Blank the next cell to avoid a graphical
		// glitch; the neighbor's record is settled here so its own
		// placeholder draw does not spend a second request on it.
		blank, err := r.findGlyph(blankID, nil, attr)
		if err != nil {
			return err
		}
		x, y = r.cellToPixel(posx+1, posy)
		if err := r.pushReq(blank, x, y, attr); err != nil {
			return err
		}
		r.prev[offset+1].id = idOverflow
		r.prev[offset+1].overflow = false
	}
	return nil
}
