package glyph

// Rotate produces a new bitmap holding src transformed to the given
// orientation. For OrientRight and OrientLeft the width and height are
// swapped. The destination stride is the resulting width rounded up to a
// multiple of align. The source is left untouched and the result owns its
// buffer.
//
// All orientations are total functions of valid input geometry; there are no
// failure modes beyond allocation.
func Rotate(src *Bitmap, o Orientation, align int) *Bitmap {
	w, h := src.Width, src.Height
	if o.Swapped() {
		w, h = h, w
	}
	dst := NewBitmap(w, h, align, src.CellWidth)

	switch o {
	case OrientRight:
		// Source row i becomes destination column w-i-1.
		for i := 0; i < src.Height; i++ {
			srow := i * src.Stride
			for j := 0; j < src.Width; j++ {
				dst.Data[j*dst.Stride+(w-i-1)] = src.Data[srow+j]
			}
		}
	case OrientUpsideDown:
		// Read the source bottom-to-top, right-to-left.
		for i := 0; i < src.Height; i++ {
			srow := (src.Height - 1 - i) * src.Stride
			drow := i * dst.Stride
			for j := 0; j < src.Width; j++ {
				dst.Data[drow+j] = src.Data[srow+src.Width-1-j]
			}
		}
	case OrientLeft:
		// Source row i becomes destination column i, bottom-up.
		for i := 0; i < src.Height; i++ {
			srow := i * src.Stride
			for j := 0; j < src.Width; j++ {
				dst.Data[(h-1-j)*dst.Stride+i] = src.Data[srow+j]
			}
		}
	default:
		for i := 0; i < src.Height; i++ {
			copy(dst.Data[i*dst.Stride:i*dst.Stride+src.Width],
				src.Data[i*src.Stride:i*src.Stride+src.Width])
		}
	}
	return dst
}
