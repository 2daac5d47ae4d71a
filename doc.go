// Package kmscon implements a damage-tracked bulk text compositor for
// virtual-terminal character grids.
//
// # Overview
//
// The compositor turns per-cell draw calls from a terminal screen model into
// a single batch of glyph blit requests plus a minimal set of damage
// rectangles for the display backend. Cells whose content and style did not
// change since the last presented frame are skipped entirely, so a mostly
// static screen costs almost nothing to repaint.
//
// # Quick Start
//
//	face := font.NewInconsolata()
//	bold := font.NewInconsolataBold()
//	r := kmscon.New(face, kmscon.WithBoldFont(bold))
//
//	if err := r.Set(disp); err != nil { ... }
//	for each frame {
//		r.Prepare(defaults)
//		for each cell {
//			r.Draw(id, chs, width, col, row, attr)
//		}
//		r.Render()
//	}
//
// # Architecture
//
// The module is organized into:
//   - Public API: Renderer, Attr, BlitRequest, Rect, the Display and
//     FontRenderer collaborator interfaces
//   - glyph: bitmaps, orientation transforms, bounded bitmap cache
//   - font: fixed-cell rasterizer over golang.org/x/image font faces
//   - display: software display backend for tests and tools
//
// # Coordinate System
//
// Grid coordinates are (column, row) with (0,0) top-left. Surface
// coordinates are pixels with (0,0) top-left. The renderer's orientation
// decides how one maps to the other; see glyph.Orientation.
//
// # Concurrency
//
// A Renderer is single-threaded: one goroutine drives the full
// prepare/draw/render cycle per output frame. Only the shared font render
// cache (font.Shared) is safe for use from multiple compositor instances.
package kmscon
