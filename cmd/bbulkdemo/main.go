// Command bbulkdemo renders a few frames through the bulk compositor into a
// software display and writes them out as PNG files, logging the blit and
// damage counts per frame.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-runewidth"

	"github.com/michaelburch/kmscon"
	"github.com/michaelburch/kmscon/display"
	"github.com/michaelburch/kmscon/font"
	"github.com/michaelburch/kmscon/glyph"
)

// modelCell is one cell of the toy screen model driving the compositor.
type modelCell struct {
	id    uint64
	chs   []rune
	width int
	attr  kmscon.Attr
}

// model is a toy terminal screen: a grid of cells replayed into the
// compositor in row-major order every frame, the way a real terminal state
// machine does.
type model struct {
	cols, rows int
	cells      []modelCell
}

func newModel(cols, rows int, defaults kmscon.Attr) *model {
	m := &model{cols: cols, rows: rows, cells: make([]modelCell, cols*rows)}
	for i := range m.cells {
		m.cells[i] = modelCell{id: ' ', width: 1, attr: defaults}
	}
	return m
}

func (m *model) write(col, row int, s string, attr kmscon.Attr) {
	for _, r := range s {
		if col >= m.cols {
			break
		}
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		m.cells[row*m.cols+col] = modelCell{id: uint64(r), chs: []rune{r}, width: w, attr: attr}
		if w == 2 && col+1 < m.cols {
			// Right half of a wide glyph.
			m.cells[row*m.cols+col+1] = modelCell{id: uint64(r), width: 0, attr: attr}
		}
		col += w
	}
}

func (m *model) replay(r *kmscon.Renderer) error {
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			c := m.cells[row*m.cols+col]
			if err := r.Draw(c.id, c.chs, c.width, col, row, c.attr); err != nil {
				return err
			}
		}
	}
	return nil
}

func frame(r *kmscon.Renderer, disp *display.Software, m *model, defaults kmscon.Attr, out string) error {
	if err := r.Prepare(defaults); err != nil {
		return err
	}
	if err := m.replay(r); err != nil {
		return err
	}
	if err := r.Render(); err != nil {
		return err
	}
	disp.Flip()
	slog.Info("frame rendered", "out", out, "damage_rects", len(disp.LastDamage()))
	return disp.SavePNG(out)
}

func run() error {
	kmscon.SetLogger(slog.Default())

	disp := display.NewSoftware(640, 384)
	r := kmscon.New(font.NewInconsolata(),
		kmscon.WithBoldFont(font.NewInconsolataBold()))
	if err := r.Set(disp); err != nil {
		return err
	}

	pal := kmscon.DefaultPalette()
	defaults := kmscon.Attr{Fg: pal[7], Bg: pal[0]}

	m := newModel(r.Cols(), r.Rows(), defaults)
	m.write(2, 1, "kmscon bbulk compositor", kmscon.Attr{Fg: pal[11], Bg: pal[0], Bold: true})
	m.write(2, 3, "damage-tracked double-buffered blitting", defaults)
	m.write(2, 5, "wide glyphs: 漢字", kmscon.Attr{Fg: pal[14], Bg: pal[0]})

	if err := frame(r, disp, m, defaults, "frame1.png"); err != nil {
		return err
	}

	// Change one line; the second frame should damage little else.
	m.write(2, 7, "only this line changed", kmscon.Attr{Fg: pal[0], Bg: pal[7], Inverse: false})
	if err := frame(r, disp, m, defaults, "frame2.png"); err != nil {
		return err
	}

	// Rotate the output and render the same content sideways.
	if err := r.Rotate(glyph.OrientRight); err != nil {
		return err
	}
	mr := newModel(r.Cols(), r.Rows(), defaults)
	mr.write(2, 1, "rotated 90 degrees clockwise", defaults)
	return frame(r, disp, mr, defaults, "frame3.png")
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "bbulkdemo:", err)
		os.Exit(1)
	}
}
