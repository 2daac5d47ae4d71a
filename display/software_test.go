package display

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/michaelburch/kmscon"
	"github.com/michaelburch/kmscon/font"
	"github.com/michaelburch/kmscon/glyph"
)

func solidGlyph(w, h int, v byte) *glyph.Bitmap {
	g := glyph.NewBitmap(w, h, 1, 1)
	for i := range g.Data {
		g.Data[i] = v
	}
	return g
}

func pixel(s *Software, x, y int) kmscon.RGB {
	img := s.Back()
	i := y*img.Stride + x*4
	return kmscon.RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
}

// TestBlendColors verifies the grey interpolation between background and
// foreground.
func TestBlendColors(t *testing.T) {
	s := NewSoftware(32, 32)
	fg := kmscon.RGB{R: 255, G: 0, B: 0}
	bg := kmscon.RGB{R: 0, G: 0, B: 255}

	err := s.Blend([]kmscon.BlitRequest{
		{Buf: solidGlyph(4, 4, 0xff), X: 0, Y: 0, Fg: fg, Bg: bg},
		{Buf: solidGlyph(4, 4, 0x00), X: 8, Y: 0, Fg: fg, Bg: bg},
		{Buf: solidGlyph(4, 4, 0x80), X: 16, Y: 0, Fg: fg, Bg: bg},
	})
	if err != nil {
		t.Fatalf("Blend: %v", err)
	}

	if got := pixel(s, 0, 0); got != fg {
		t.Errorf("full coverage: got %v, want %v", got, fg)
	}
	if got := pixel(s, 8, 0); got != bg {
		t.Errorf("zero coverage: got %v, want %v", got, bg)
	}
	mid := pixel(s, 16, 0)
	if mid.R < 120 || mid.R > 136 || mid.B < 120 || mid.B > 136 {
		t.Errorf("half coverage: got %v, want near-even mix", mid)
	}
}

// TestBlendClips verifies that off-surface requests do not panic and only
// touch the visible part.
func TestBlendClips(t *testing.T) {
	s := NewSoftware(16, 16)
	fg := kmscon.RGB{R: 255, G: 255, B: 255}

	err := s.Blend([]kmscon.BlitRequest{
		{Buf: solidGlyph(8, 8, 0xff), X: -4, Y: -4, Fg: fg},
		{Buf: solidGlyph(8, 8, 0xff), X: 12, Y: 12, Fg: fg},
		{Buf: nil, X: 0, Y: 0, Fg: fg},
	})
	if err != nil {
		t.Fatalf("Blend: %v", err)
	}
	if got := pixel(s, 0, 0); got != fg {
		t.Errorf("clipped top-left: got %v", got)
	}
	if got := pixel(s, 15, 15); got != fg {
		t.Errorf("clipped bottom-right: got %v", got)
	}
	if got := pixel(s, 8, 8); (got != kmscon.RGB{}) {
		t.Errorf("untouched pixel changed: %v", got)
	}
}

// TestDoubleBufferStaleness verifies the HasDamage handshake across flips.
func TestDoubleBufferStaleness(t *testing.T) {
	s := NewSoftware(16, 16)

	if s.HasDamage() {
		t.Fatal("fresh display reports damage")
	}
	if !s.NeedsRedraw() {
		t.Fatal("fresh display does not request a full repaint")
	}

	// Frame 1 draws and flips: the other buffer missed it.
	_ = s.Blend([]kmscon.BlitRequest{{Buf: solidGlyph(4, 4, 0xff)}})
	s.Flip()
	if !s.HasDamage() {
		t.Error("back buffer not stale after a drawing flip")
	}

	// Resynchronizing blend clears the staleness.
	_ = s.Blend([]kmscon.BlitRequest{{Buf: solidGlyph(4, 4, 0xff)}})
	if s.HasDamage() {
		t.Error("back buffer still stale after resync blend")
	}

	// An empty frame flip leaves nothing stale.
	s.Flip()
	if s.HasDamage() {
		t.Error("empty flip marked the other buffer stale")
	}
}

// TestFillAndRedraw verifies Fill clipping and the NeedsRedraw reset.
func TestFillAndRedraw(t *testing.T) {
	s := NewSoftware(16, 16)
	c := kmscon.RGB{R: 10, G: 20, B: 30}

	if err := s.Fill(c, -4, -4, 100, 100); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if s.NeedsRedraw() {
		t.Error("NeedsRedraw still set after Fill")
	}
	if got := pixel(s, 0, 0); got != c {
		t.Errorf("fill origin: got %v", got)
	}
	if got := pixel(s, 15, 15); got != c {
		t.Errorf("fill corner: got %v", got)
	}

	s.Resize(8, 8)
	if !s.NeedsRedraw() {
		t.Error("Resize did not request a repaint")
	}
	if s.Width() != 8 || s.Height() != 8 {
		t.Errorf("size after resize: %dx%d", s.Width(), s.Height())
	}
}

// TestWithoutDamage verifies the capability flag.
func TestWithoutDamage(t *testing.T) {
	if NewSoftware(8, 8).SupportsDamage() != true {
		t.Error("damage support off by default")
	}
	if NewSoftware(8, 8, WithoutDamage()).SupportsDamage() {
		t.Error("WithoutDamage ignored")
	}
}

// TestSavePNG verifies the error before the first flip and the round-trip
// after it.
func TestSavePNG(t *testing.T) {
	s := NewSoftware(8, 8)
	path := filepath.Join(t.TempDir(), "frame.png")

	if err := s.SavePNG(path); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("SavePNG before flip: got %v, want ErrNoFrame", err)
	}

	_ = s.Fill(kmscon.RGB{R: 1, G: 2, B: 3}, 0, 0, 8, 8)
	_ = s.Blend([]kmscon.BlitRequest{{Buf: solidGlyph(2, 2, 0xff)}})
	s.Flip()
	if err := s.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Errorf("decoded size: %v", img.Bounds())
	}
}

// TestCompositorFrameLoop drives a real compositor and font through the
// full frame cycle and checks that damage converges across the double
// buffer.
func TestCompositorFrameLoop(t *testing.T) {
	s := NewSoftware(640, 384)
	r := kmscon.New(font.NewInconsolata(),
		kmscon.WithBoldFont(font.NewInconsolataBold()))
	if err := r.Set(s); err != nil {
		t.Fatalf("Set: %v", err)
	}

	white := kmscon.Attr{Fg: kmscon.RGB{R: 255, G: 255, B: 255}}

	// frame replays the whole grid the way a terminal does: the text on
	// row 0, blanks everywhere else.
	frame := func(text string) {
		t.Helper()
		if err := r.Prepare(white); err != nil {
			t.Fatalf("Prepare: %v", err)
		}
		runes := []rune(text)
		for row := 0; row < r.Rows(); row++ {
			for col := 0; col < r.Cols(); col++ {
				id, chs := uint64(' '), []rune(nil)
				if row == 0 && col < len(runes) {
					id, chs = uint64(runes[col]), runes[col:col+1]
				}
				if err := r.Draw(id, chs, 1, col, row, white); err != nil {
					t.Fatalf("Draw: %v", err)
				}
			}
		}
		if err := r.Render(); err != nil {
			t.Fatalf("Render: %v", err)
		}
		s.Flip()
	}

	// Frames 1 and 2 repaint fully: the default style changed on the
	// first Prepare, and the repaint covers both buffers.
	frame("hello")
	if len(s.LastDamage()) == 0 {
		t.Fatal("frame 1 produced no damage")
	}
	frame("hello")
	if len(s.LastDamage()) == 0 {
		t.Fatal("frame 2 produced no damage")
	}

	// Frame 3 resynchronizes the buffer that missed frame 2's blits, but
	// the content is identical so no new damage is reported.
	frame("hello")
	if got := len(s.LastDamage()); got != 0 {
		t.Errorf("frame 3 damage rects: got %d, want 0", got)
	}

	// Frame 4 is fully settled.
	frame("hello")
	if got := len(s.LastDamage()); got != 0 {
		t.Errorf("frame 4 damage rects: got %d, want 0", got)
	}

	// A one-cell content change damages exactly one rectangle, and the
	// resync frame after it is again damage-free.
	frame("hellp")
	if got := len(s.LastDamage()); got != 1 {
		t.Errorf("changed frame damage rects: got %d, want 1", got)
	}
	frame("hellp")
	if got := len(s.LastDamage()); got != 0 {
		t.Errorf("settled frame damage rects: got %d, want 0", got)
	}
}
