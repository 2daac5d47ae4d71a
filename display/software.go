// Package display provides a software display backend for the compositor.
//
// Software implements the compositor's Display contract on a pair of
// in-memory RGBA buffers, including the damage bookkeeping a real
// double-buffered backend performs. It backs the package tests and the
// bbulkdemo tool; porting to a real scanout path means implementing the
// same contract against DRM or a framebuffer.
package display

import (
	"errors"
	"image"
	"image/png"
	"os"

	"github.com/michaelburch/kmscon"
)

// ErrNoFrame is returned when saving before any frame was presented.
var ErrNoFrame = errors.New("display: no frame presented yet")

// Software is a double-buffered in-memory display surface.
// It is not safe for concurrent use.
type Software struct {
	w, h int
	bufs [2]*image.RGBA

	// back is the buffer currently being drawn into; the other one holds
	// the last presented frame.
	back int

	// stale marks a buffer that missed content presented from the other
	// buffer.
	stale [2]bool
	drew  bool

	supportsDamage bool
	needsRedraw    bool
	lastDamage     []kmscon.Rect
	flips          int
}

// SoftwareOption configures a Software display.
type SoftwareOption func(*Software)

// WithoutDamage makes the display report no partial-damage support, forcing
// the compositor down the full-blit path.
func WithoutDamage() SoftwareOption {
	return func(s *Software) { s.supportsDamage = false }
}

// NewSoftware creates a software display of the given pixel size.
func NewSoftware(w, h int, opts ...SoftwareOption) *Software {
	s := &Software{
		w:              w,
		h:              h,
		supportsDamage: true,
		needsRedraw:    true,
	}
	s.bufs[0] = image.NewRGBA(image.Rect(0, 0, w, h))
	s.bufs[1] = image.NewRGBA(image.Rect(0, 0, w, h))
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Width returns the surface width in pixels.
func (s *Software) Width() int { return s.w }

// Height returns the surface height in pixels.
func (s *Software) Height() int { return s.h }

// SupportsDamage reports whether partial damage regions are honored.
func (s *Software) SupportsDamage() bool { return s.supportsDamage }

// NeedsRedraw reports that the whole surface must be repainted, which is
// the case after creation and after Resize.
func (s *Software) NeedsRedraw() bool { return s.needsRedraw }

// HasDamage reports that the current back buffer missed content presented
// from the other buffer.
func (s *Software) HasDamage() bool { return s.stale[s.back] }

// SetDamage records the damage rectangles for the frame about to be
// presented.
func (s *Software) SetDamage(rects []kmscon.Rect) {
	s.lastDamage = append(s.lastDamage[:0], rects...)
}

// LastDamage returns the damage rectangles of the last rendered frame.
func (s *Software) LastDamage() []kmscon.Rect { return s.lastDamage }

// Fill paints a solid rectangle in the back buffer.
func (s *Software) Fill(c kmscon.RGB, x, y, w, h int) error {
	img := s.bufs[s.back]
	x0, y0 := max(0, x), max(0, y)
	x1, y1 := min(s.w, x+w), min(s.h, y+h)
	for py := y0; py < y1; py++ {
		row := img.Pix[py*img.Stride:]
		for px := x0; px < x1; px++ {
			i := px * 4
			row[i+0] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
			row[i+3] = 0xff
		}
	}
	s.needsRedraw = false
	return nil
}

// Blend composites a batch of glyph blit requests into the back buffer.
// Each grey source pixel interpolates between the request's background and
// foreground colors. Requests are clipped to the surface.
func (s *Software) Blend(reqs []kmscon.BlitRequest) error {
	img := s.bufs[s.back]
	for _, req := range reqs {
		g := req.Buf
		if g == nil {
			continue
		}
		for gy := 0; gy < g.Height; gy++ {
			py := req.Y + gy
			if py < 0 || py >= s.h {
				continue
			}
			srow := g.Data[gy*g.Stride:]
			drow := img.Pix[py*img.Stride:]
			for gx := 0; gx < g.Width; gx++ {
				px := req.X + gx
				if px < 0 || px >= s.w {
					continue
				}
				a := int(srow[gx])
				i := px * 4
				drow[i+0] = mix(req.Bg.R, req.Fg.R, a)
				drow[i+1] = mix(req.Bg.G, req.Fg.G, a)
				drow[i+2] = mix(req.Bg.B, req.Fg.B, a)
				drow[i+3] = 0xff
			}
		}
	}
	if len(reqs) > 0 {
		s.drew = true
	}
	// The compositor has now resynchronized this buffer.
	s.stale[s.back] = false
	s.needsRedraw = false
	return nil
}

// Flip presents the back buffer. If the presented frame drew anything, the
// other buffer becomes stale until the compositor resynchronizes it.
func (s *Software) Flip() {
	if s.drew {
		s.stale[1-s.back] = true
	}
	s.drew = false
	s.back = 1 - s.back
	s.flips++
}

// Front returns the last presented frame, or nil before the first Flip.
func (s *Software) Front() *image.RGBA {
	if s.flips == 0 {
		return nil
	}
	return s.bufs[1-s.back]
}

// Back returns the buffer currently being drawn into.
func (s *Software) Back() *image.RGBA { return s.bufs[s.back] }

// Resize reallocates both buffers and requests a full repaint. The bound
// compositor must be Set again afterwards.
func (s *Software) Resize(w, h int) {
	s.w, s.h = w, h
	s.bufs[0] = image.NewRGBA(image.Rect(0, 0, w, h))
	s.bufs[1] = image.NewRGBA(image.Rect(0, 0, w, h))
	s.stale[0], s.stale[1] = false, false
	s.drew = false
	s.needsRedraw = true
}

// SavePNG writes the last presented frame to a PNG file.
func (s *Software) SavePNG(path string) error {
	front := s.Front()
	if front == nil {
		return ErrNoFrame
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, front)
}

func mix(bg, fg uint8, a int) uint8 {
	return uint8((int(fg)*a + int(bg)*(255-a)) / 255)
}
