package font

import (
	"sync"

	"github.com/michaelburch/kmscon/glyph"
)

// Reserved cache identities for the empty and invalid renders. Real glyph
// ids come from codepoints and never reach the top of the id space.
const (
	emptyID   = ^uint64(0)
	invalidID = ^uint64(0) - 1
)

// renderKey identifies one cached render variant.
type renderKey struct {
	id        uint64
	underline bool
	italic    bool
}

// Shared wraps a Face with a lock-protected render cache that multiple
// compositor instances can use concurrently. Consumers obtain a Handle via
// Acquire and must Release it; the cache is dropped when the last handle is
// released.
type Shared struct {
	mu    sync.Mutex
	refs  int
	face  *Face
	cache map[renderKey]*glyph.Bitmap
}

// NewShared creates a shared render cache around face. The face must not be
// used directly while the shared cache is alive.
func NewShared(face *Face) *Shared {
	return &Shared{face: face}
}

// Acquire returns a new handle on the shared cache. Acquiring after all
// handles were released starts a fresh cache generation.
func (s *Shared) Acquire() *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache == nil {
		s.cache = make(map[renderKey]*glyph.Bitmap)
	}
	s.refs++
	return &Handle{shared: s}
}

// render looks up or renders one variant under the lock. The face's mutable
// style attributes are set while the lock is held, so concurrent handles
// with different styles never interleave.
func (s *Shared) render(key renderKey, fn func(*Face) (*glyph.Bitmap, error)) (*glyph.Bitmap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache == nil {
		return nil, ErrReleased
	}
	if g, ok := s.cache[key]; ok {
		return g, nil
	}
	s.face.SetStyle(key.underline, key.italic)
	g, err := fn(s.face)
	if err != nil {
		return nil, err
	}
	s.cache[key] = g
	return g, nil
}

// Handle is one consumer's view of a Shared cache. It satisfies the
// compositor's FontRenderer contract; the style set by SetStyle is local to
// the handle and becomes part of the cache key.
type Handle struct {
	shared    *Shared
	underline bool
	italic    bool
	released  bool
}

// CellSize returns the glyph cell dimensions in pixels.
func (h *Handle) CellSize() (w, hgt int) {
	return h.shared.face.CellSize()
}

// SetStyle sets the underline and italic attributes for subsequent renders
// through this handle.
func (h *Handle) SetStyle(underline, italic bool) {
	h.underline = underline
	h.italic = italic
}

// Render looks up or rasterizes the cell content in the shared cache.
func (h *Handle) Render(id uint64, chs []rune) (*glyph.Bitmap, error) {
	if h.released {
		return nil, ErrReleased
	}
	key := renderKey{id: id, underline: h.underline, italic: h.italic}
	return h.shared.render(key, func(f *Face) (*glyph.Bitmap, error) {
		return f.Render(id, chs)
	})
}

// RenderEmpty looks up or rasterizes the empty cell.
func (h *Handle) RenderEmpty() (*glyph.Bitmap, error) {
	if h.released {
		return nil, ErrReleased
	}
	key := renderKey{id: emptyID, underline: h.underline, italic: h.italic}
	return h.shared.render(key, (*Face).RenderEmpty)
}

// RenderInvalid looks up or rasterizes the invalid-glyph placeholder.
func (h *Handle) RenderInvalid() (*glyph.Bitmap, error) {
	if h.released {
		return nil, ErrReleased
	}
	key := renderKey{id: invalidID, underline: h.underline, italic: h.italic}
	return h.shared.render(key, (*Face).RenderInvalid)
}

// Release drops this handle's reference. When the last handle releases, the
// cached bitmaps are dropped. Release is idempotent per handle.
func (h *Handle) Release() {
	if h.released {
		return
	}
	h.released = true

	s := h.shared
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		s.cache = nil
	}
}
