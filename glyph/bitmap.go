// Package glyph provides rasterized glyph bitmaps, orientation transforms
// and the bounded bitmap cache used by the bulk compositor.
package glyph

// Bitmap is a rasterized glyph image in single-channel grey format, one byte
// per pixel. The buffer is owned by the bitmap; rows are Stride bytes apart,
// which may exceed Width when an alignment was requested.
type Bitmap struct {
	// Width and Height are the pixel dimensions of the glyph.
	Width  int
	Height int

	// Stride is the row pitch in bytes. Stride >= Width.
	Stride int

	// CellWidth is the logical width in terminal cells: 1 for a narrow
	// glyph, 2 for a wide (double-width) glyph.
	CellWidth int

	// Data holds Stride*Height grey pixels, row-major.
	Data []byte
}

// NewBitmap allocates a zeroed bitmap. The stride is width rounded up to a
// multiple of align; align values below 1 are treated as 1.
func NewBitmap(width, height, align, cellWidth int) *Bitmap {
	if align < 1 {
		align = 1
	}
	stride := align * ((width + align - 1) / align)
	return &Bitmap{
		Width:     width,
		Height:    height,
		Stride:    stride,
		CellWidth: cellWidth,
		Data:      make([]byte, stride*height),
	}
}

// At returns the pixel value at (x, y). Coordinates outside the bitmap
// return zero.
func (b *Bitmap) At(x, y int) byte {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return 0
	}
	return b.Data[y*b.Stride+x]
}

// Set writes the pixel value at (x, y). Coordinates outside the bitmap are
// ignored.
func (b *Bitmap) Set(x, y int, v byte) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	b.Data[y*b.Stride+x] = v
}
