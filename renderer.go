package kmscon

import (
	"github.com/michaelburch/kmscon/glyph"
)

// Cell content sentinels. idDamaged marks a cell whose stored identity must
// not match any incoming draw; idOverflow marks the right half of a wide
// glyph.
const (
	idDamaged  uint64 = 0xd41146edd41146ed
	idOverflow uint64 = 0x0c34f10110c34f10
)

// damageMergeLen is the maximum number of undamaged cells between two
// damaged cells in a row that still end up in one damage rectangle.
const damageMergeLen = 3

// cell is the previous-frame record for one grid position.
type cell struct {
	id       uint64
	attr     Attr
	overflow bool

	// blanked marks a cell whose right neighbor was blank-filled because
	// the screen model requested a wide cell but the font glyph is
	// narrow. The neighbor's placeholder draw is then already covered.
	blanked bool
}

// Renderer is the bulk compositor. It tracks per-cell state across frames,
// batches blit requests and computes damage rectangles for the display.
//
// Renderer is not safe for concurrent use; a single goroutine drives the
// Prepare/Draw/Render cycle.
type Renderer struct {
	font     FontRenderer
	boldFont FontRenderer

	orientation glyph.Orientation
	cacheCap    int

	disp Display

	// Geometry generation, allocated by Set.
	cols, rows int
	sw, sh     int
	cells      int

	reqs        []BlitRequest
	attr        Attr
	glyphs      *glyph.Cache
	boldGlyphs  *glyph.Cache
	prev        []cell
	damages     []bool
	lastDamages []bool
	damageRects []Rect

	// redrawMargin counts down full repaints after a default-color
	// change, one per buffer of a double-buffered display.
	redrawMargin uint8
}

// Option configures a Renderer during creation.
type Option func(*Renderer)

// WithBoldFont sets the font variant used for bold cells. Without it, bold
// cells render from the regular font.
func WithBoldFont(f FontRenderer) Option {
	return func(r *Renderer) {
		if f != nil {
			r.boldFont = f
		}
	}
}

// WithOrientation sets the initial output orientation.
func WithOrientation(o glyph.Orientation) Option {
	return func(r *Renderer) { r.orientation = o }
}

// WithCacheCapacity bounds the per-weight glyph bitmap caches.
func WithCacheCapacity(n int) Option {
	return func(r *Renderer) { r.cacheCap = n }
}

// New creates a renderer drawing with the given font. The renderer holds no
// geometry until Set is called.
func New(f FontRenderer, opts ...Option) *Renderer {
	r := &Renderer{
		font:     f,
		boldFont: f,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Orientation returns the current output orientation.
func (r *Renderer) Orientation() glyph.Orientation { return r.orientation }

// Cols returns the number of grid columns of the current geometry.
func (r *Renderer) Cols() int { return r.cols }

// Rows returns the number of grid rows of the current geometry.
func (r *Renderer) Rows() int { return r.rows }

// Set binds the renderer to a display and computes the grid geometry from
// the surface size and the font cell size. Any prior geometry is torn down
// first, so repeated calls do not leak; every cell of the new geometry
// starts out damaged.
//
// Set fails with ErrInvalidGeometry if the surface has zero width or
// height, leaving the renderer unset.
func (r *Renderer) Set(d Display) error {
	r.Unset()

	sw, sh := d.Width(), d.Height()
	if sw == 0 || sh == 0 {
		return ErrInvalidGeometry
	}

	fw, fh := r.font.CellSize()
	if r.orientation.Swapped() {
		r.cols = sh / fw
		r.rows = sw / fh
	} else {
		r.cols = sw / fw
		r.rows = sh / fh
	}

	r.disp = d
	r.sw, r.sh = sw, sh
	r.cells = r.cols * r.rows

	// One spare request slot for the pointer overlay.
	r.reqs = make([]BlitRequest, 0, r.cells+1)
	r.prev = make([]cell, r.cells)
	r.damages = make([]bool, r.cells)
	r.lastDamages = make([]bool, r.cells)
	maxRects := r.rows * ((r.cols + damageMergeLen) / (damageMergeLen + 1))
	r.damageRects = make([]Rect, 0, maxRects)

	for i := range r.prev {
		r.damageCell(i)
	}

	r.glyphs = glyph.NewCache(r.cacheCap)
	r.boldGlyphs = glyph.NewCache(r.cacheCap)

	Logger().Debug("geometry set",
		"cols", r.cols, "rows", r.rows,
		"surface_w", sw, "surface_h", sh,
		"orientation", r.orientation.String())
	return nil
}

// Unset releases all per-generation resources. The display binding itself
// survives so that Rotate can rebuild; call Set again to start a new
// generation.
func (r *Renderer) Unset() {
	r.reqs = nil
	r.prev = nil
	r.damages = nil
	r.lastDamages = nil
	r.damageRects = nil
	r.glyphs = nil
	r.boldGlyphs = nil
	r.cols, r.rows, r.cells = 0, 0, 0
	r.sw, r.sh = 0, 0
	r.attr = Attr{}
	r.redrawMargin = 0
}

// Rotate switches the output orientation. All orientation-dependent state
// (glyph caches, cell table, geometry) is invalidated and rebuilt.
func (r *Renderer) Rotate(o glyph.Orientation) error {
	if r.disp == nil {
		return ErrNotSet
	}
	r.orientation = o
	return r.Set(r.disp)
}

// Prepare starts a new frame with the given default style. The blit batch
// and damage list reset to empty. A change of default colors, or a display
// that asks for a full repaint, damages every cell and clears the whole
// surface; otherwise leftover damage reported by the display is carried
// over so the stale cells get re-blitted.
func (r *Renderer) Prepare(attr Attr) error {
	if r.prev == nil {
		return ErrNotSet
	}

	r.reqs = r.reqs[:0]
	r.damageRects = r.damageRects[:0]

	if r.attr != attr {
		// Repaint both buffers with the new default background.
		r.redrawMargin = 2
	}
	r.attr = attr

	if r.redrawMargin > 0 || r.disp.NeedsRedraw() {
		if err := r.disp.Fill(attr.Bg, 0, 0, r.sw, r.sh); err != nil {
			return err
		}
		for i := range r.prev {
			r.damageCell(i)
		}
	} else if r.disp.HasDamage() {
		Logger().Debug("carrying over damage from previous frame")
		for i, d := range r.lastDamages {
			if d {
				r.damages[i] = true
			}
		}
	}
	if r.redrawMargin > 0 {
		r.redrawMargin--
	}
	return nil
}

// Render submits the accumulated blit requests to the display and, if the
// display supports partial damage, the merged damage rectangles. The damage
// bitmap is consumed: cells blitted this frame count as presented.
func (r *Renderer) Render() error {
	if r.prev == nil {
		return ErrNotSet
	}

	err := r.disp.Blend(r.reqs)
	if r.disp.SupportsDamage() {
		r.computeDamage()
		r.disp.SetDamage(r.damageRects)
	}
	copy(r.lastDamages, r.damages)
	for i := range r.damages {
		r.damages[i] = false
	}
	return err
}

// damageCell marks a cell damaged and resets its identity so the next draw
// cannot match it.
func (r *Renderer) damageCell(off int) {
	r.prev[off].id = idDamaged
	r.damages[off] = true
}

// pushReq appends one blit request, resolving inverse video.
func (r *Renderer) pushReq(g *glyph.Bitmap, x, y int, attr Attr) error {
	if len(r.reqs) == cap(r.reqs) {
		return ErrBatchFull
	}
	req := BlitRequest{Buf: g, X: x, Y: y, Fg: attr.Fg, Bg: attr.Bg}
	if attr.Inverse {
		req.Fg, req.Bg = req.Bg, req.Fg
	}
	r.reqs = append(r.reqs, req)
	return nil
}

// findGlyph resolves a glyph bitmap for id through the weight-appropriate
// cache, rendering and rotating it on a miss. A font render failure falls
// back to the invalid-glyph placeholder; only the placeholder's own failure
// propagates.
func (r *Renderer) findGlyph(id uint64, chs []rune, attr Attr) (*glyph.Bitmap, error) {
	cache, fnt := r.glyphs, r.font
	if attr.Bold {
		cache, fnt = r.boldGlyphs, r.boldFont
	}

	fnt.SetStyle(attr.Underline, attr.Italic)

	if g := cache.Get(id); g != nil {
		return g, nil
	}

	var src *glyph.Bitmap
	var err error
	if len(chs) == 0 {
		src, err = fnt.RenderEmpty()
	} else {
		src, err = fnt.Render(id, chs)
	}
	if err != nil {
		Logger().Warn("glyph render failed, using placeholder", "id", id, "err", err)
		src, err = fnt.RenderInvalid()
		if err != nil {
			return nil, err
		}
	}

	g := glyph.Rotate(src, r.orientation, 1)
	cache.Put(id, g)
	return g, nil
}
