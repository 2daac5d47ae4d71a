package font

import (
	"fmt"
	"image"

	"github.com/mattn/go-runewidth"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"

	"github.com/michaelburch/kmscon/glyph"
)

// Face renders fixed-cell glyph bitmaps from an x/image font face.
//
// The Underline and Italic attributes set via SetStyle are mutable state
// read at render time; callers sharing a Face must set them before every
// render. Face is not safe for concurrent use; wrap it in Shared when
// multiple compositor instances use one font.
type Face struct {
	face   xfont.Face
	cellW  int
	cellH  int
	ascent int

	// embolden smears strokes one pixel to the right, for synthesizing
	// bold from a face without a bold variant.
	embolden bool

	underline bool
	italic    bool
}

// FaceOption configures a Face during creation.
type FaceOption func(*Face)

// WithEmbolden smears glyph strokes to synthesize bold. Use it when no bold
// font variant is available.
func WithEmbolden() FaceOption {
	return func(f *Face) { f.embolden = true }
}

// New wraps an x/image font face. The cell width is the advance of '0' and
// the cell height is ascent plus descent; faces reporting zero for either
// fail with ErrBadFace.
func New(face xfont.Face, opts ...FaceOption) (*Face, error) {
	m := face.Metrics()
	adv, ok := face.GlyphAdvance('0')
	if !ok {
		adv = m.Height
	}

	f := &Face{
		face:   face,
		cellW:  adv.Ceil(),
		cellH:  (m.Ascent + m.Descent).Ceil(),
		ascent: m.Ascent.Ceil(),
	}
	if f.cellW <= 0 || f.cellH <= 0 {
		return nil, ErrBadFace
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// NewInconsolata returns the default regular face, an 8x16 bitmap font.
func NewInconsolata() *Face {
	f, err := New(inconsolata.Regular8x16)
	if err != nil {
		// The bundled face has known-good metrics.
		panic(err)
	}
	return f
}

// NewInconsolataBold returns the default bold face.
func NewInconsolataBold() *Face {
	f, err := New(inconsolata.Bold8x16)
	if err != nil {
		panic(err)
	}
	return f
}

// CellSize returns the glyph cell dimensions in pixels.
func (f *Face) CellSize() (w, h int) {
	return f.cellW, f.cellH
}

// SetStyle sets the underline and italic attributes applied to subsequent
// renders.
func (f *Face) SetStyle(underline, italic bool) {
	f.underline = underline
	f.italic = italic
}

// Render rasterizes the cell content into a grey bitmap. The first rune
// decides the cell width (wide runes get a two-cell bitmap); remaining
// runes are combining marks drawn over it. Runes the face has no glyph for
// fail with ErrNoGlyph.
func (f *Face) Render(id uint64, chs []rune) (*glyph.Bitmap, error) {
	if len(chs) == 0 {
		return f.RenderEmpty()
	}
	if _, ok := f.face.GlyphAdvance(chs[0]); !ok {
		return nil, fmt.Errorf("%w: %U", ErrNoGlyph, chs[0])
	}

	cells := runewidth.RuneWidth(chs[0])
	if cells < 1 {
		cells = 1
	} else if cells > 2 {
		cells = 2
	}

	bmp := glyph.NewBitmap(cells*f.cellW, f.cellH, 1, cells)
	f.drawRunes(bmp, chs)
	f.applyStyle(bmp)
	return bmp, nil
}

// RenderEmpty rasterizes a blank single cell. Underline still applies, so
// underlined blanks connect with their neighbors.
func (f *Face) RenderEmpty() (*glyph.Bitmap, error) {
	bmp := glyph.NewBitmap(f.cellW, f.cellH, 1, 1)
	f.applyStyle(bmp)
	return bmp, nil
}

// RenderInvalid rasterizes the invalid-glyph placeholder: U+FFFD if the
// face covers it, else a synthesized hollow box. It does not fail.
func (f *Face) RenderInvalid() (*glyph.Bitmap, error) {
	if _, ok := f.face.GlyphAdvance('�'); ok {
		bmp := glyph.NewBitmap(f.cellW, f.cellH, 1, 1)
		f.drawRunes(bmp, []rune{'�'})
		f.applyStyle(bmp)
		return bmp, nil
	}

	bmp := glyph.NewBitmap(f.cellW, f.cellH, 1, 1)
	for x := 1; x < f.cellW-1; x++ {
		bmp.Set(x, 1, 0xff)
		bmp.Set(x, f.cellH-2, 0xff)
	}
	for y := 1; y < f.cellH-1; y++ {
		bmp.Set(1, y, 0xff)
		bmp.Set(f.cellW-2, y, 0xff)
	}
	f.applyStyle(bmp)
	return bmp, nil
}

// drawRunes rasterizes chs over each other at the cell origin and copies
// the coverage into bmp.
func (f *Face) drawRunes(bmp *glyph.Bitmap, chs []rune) {
	mask := image.NewAlpha(image.Rect(0, 0, bmp.Width, bmp.Height))
	d := &xfont.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: f.face,
	}
	for _, r := range chs {
		// Combining marks carry zero advance, so restarting the dot
		// stacks them over the base rune.
		d.Dot = fixed.P(0, f.ascent)
		d.DrawString(string(r))
	}

	for y := 0; y < bmp.Height; y++ {
		copy(bmp.Data[y*bmp.Stride:y*bmp.Stride+bmp.Width],
			mask.Pix[y*mask.Stride:y*mask.Stride+bmp.Width])
	}
}

// applyStyle applies italic shear, synthetic bold and underline to a
// rendered cell, in that order.
func (f *Face) applyStyle(bmp *glyph.Bitmap) {
	if f.italic {
		for y := 0; y < bmp.Height; y++ {
			shift := (bmp.Height - 1 - y) / 4
			if shift == 0 {
				continue
			}
			row := bmp.Data[y*bmp.Stride : y*bmp.Stride+bmp.Width]
			copy(row[shift:], row[:bmp.Width-shift])
			for x := 0; x < shift; x++ {
				row[x] = 0
			}
		}
	}
	if f.embolden {
		for y := 0; y < bmp.Height; y++ {
			row := bmp.Data[y*bmp.Stride : y*bmp.Stride+bmp.Width]
			for x := bmp.Width - 1; x > 0; x-- {
				row[x] |= row[x-1]
			}
		}
	}
	if f.underline {
		row := bmp.Data[(bmp.Height-1)*bmp.Stride:]
		for x := 0; x < bmp.Width; x++ {
			row[x] = 0xff
		}
	}
}
