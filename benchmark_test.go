package kmscon

import "testing"

func benchRenderer(b *testing.B) *Renderer {
	b.Helper()
	r := New(newFakeFont())
	if err := r.Set(newFakeDisplay(640, 384)); err != nil {
		b.Fatalf("Set: %v", err)
	}
	return r
}

func benchFullGrid(b *testing.B, r *Renderer) {
	b.Helper()
	for row := 0; row < r.Rows(); row++ {
		for col := 0; col < r.Cols(); col++ {
			id := uint64('a' + (col+row)%26)
			if err := r.Draw(id, []rune{rune(id)}, 1, col, row, Attr{}); err != nil {
				b.Fatalf("Draw: %v", err)
			}
		}
	}
}

// BenchmarkDrawFullGrid measures a full 80x24 repaint with warm glyph
// caches.
func BenchmarkDrawFullGrid(b *testing.B) {
	r := benchRenderer(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		for j := range r.prev {
			r.damageCell(j)
		}
		_ = r.Prepare(Attr{})
		b.StartTimer()

		benchFullGrid(b, r)

		b.StopTimer()
		_ = r.Render()
		b.StartTimer()
	}
}

// BenchmarkDrawUnchanged measures the incremental-skip fast path: a full
// replay of a frame that matches the previous one.
func BenchmarkDrawUnchanged(b *testing.B) {
	r := benchRenderer(b)

	_ = r.Prepare(Attr{})
	benchFullGrid(b, r)
	_ = r.Render()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Prepare(Attr{})
		benchFullGrid(b, r)
		_ = r.Render()
	}
}

// BenchmarkComputeDamage measures rectangle merging over a sparse bitmap.
func BenchmarkComputeDamage(b *testing.B) {
	r := benchRenderer(b)
	for i := range r.damages {
		r.damages[i] = i%7 == 0
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.damageRects = r.damageRects[:0]
		r.computeDamage()
	}
}
