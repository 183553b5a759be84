// Package framebuffer implements the frame differ (C6): it interprets a
// decoded zrdl.Document into a cell grid, diffs it against the
// previously emitted grid, and writes the minimal ANSI byte sequence
// needed to bring the terminal to the new state, per spec.md §4.6.
//
// It is grounded on tui/screen.go's Buffer/Screen pair: two same-shaped
// cell grids (front/back there, previous/current here), a
// cursor-chasing writer that only repositions when the next dirty cell
// isn't adjacent to the last one written, and style-escape coalescing
// so a run of same-styled cells emits one SGR sequence. Unlike the
// teacher's single flat rune+basement.Style cell, a Cell here holds a
// full grapheme cluster (internal/grapheme) and carries a width so wide
// glyphs correctly occupy a continuation slot.
package framebuffer

import (
	"hash/fnv"

	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/zrdl"
)

// Grid is a two-dimensional cell buffer, analogous to tui.Buffer.
type Grid struct {
	W, H  int
	Cells []geom.Cell
}

// NewGrid allocates a blank grid of default cells.
func NewGrid(w, h int) *Grid {
	g := &Grid{W: w, H: h, Cells: make([]geom.Cell, w*h)}
	blank := geom.DefaultCell()
	for i := range g.Cells {
		g.Cells[i] = blank
	}
	return g
}

// Get returns the cell at x,y, or the zero Cell if out of bounds.
func (g *Grid) Get(x, y int) geom.Cell {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return geom.Cell{}
	}
	return g.Cells[y*g.W+x]
}

// Set writes a cell at x,y, silently clipping out-of-bounds writes.
func (g *Grid) Set(x, y int, c geom.Cell) {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return
	}
	g.Cells[y*g.W+x] = c
}

// Resize reallocates the grid, preserving the overlapping region, per
// tui.Buffer.Resize.
func (g *Grid) Resize(w, h int) {
	next := make([]geom.Cell, w*h)
	blank := geom.DefaultCell()
	for i := range next {
		next[i] = blank
	}
	minW, minH := min(g.W, w), min(g.H, h)
	for y := 0; y < minH; y++ {
		copy(next[y*w:y*w+minW], g.Cells[y*g.W:y*g.W+minW])
	}
	g.W, g.H, g.Cells = w, h, next
}

// RowHash returns the 32-bit FNV-1a hash of row y's cells, per spec.md
// §3/§4.6, used to skip unchanged rows without a full cell-by-cell
// compare.
func (g *Grid) RowHash(y int) uint32 {
	h := fnv.New32a()
	row := g.Cells[y*g.W : y*g.W+g.W]
	for _, c := range row {
		h.Write([]byte(c.Grapheme))
		h.Write([]byte{c.Width, byte(c.Style.Fg.Kind), c.Style.Fg.Index, c.Style.Fg.R, c.Style.Fg.G, c.Style.Fg.B,
			byte(c.Style.Bg.Kind), c.Style.Bg.Index, c.Style.Bg.R, c.Style.Bg.G, c.Style.Bg.B,
			byte(c.Style.Attrs), byte(c.Style.Attrs >> 8)})
	}
	return h.Sum32()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Framebuffer holds the previous and current frames plus cursor state.
type Framebuffer struct {
	Prev, Cur *Grid
	Caps      geom.Capabilities

	cursorX, cursorY int
	cursorVisible    bool
	cursorShape      uint8
}

// New creates a Framebuffer sized to the given viewport.
func New(w, h int, caps geom.Capabilities) *Framebuffer {
	return &Framebuffer{Prev: NewGrid(w, h), Cur: NewGrid(w, h), Caps: caps, cursorVisible: true}
}

// Resize grows or shrinks both grids and forces a full redraw by
// blanking Prev, matching tui.Screen.handleResize's front-buffer
// invalidation.
func (f *Framebuffer) Resize(w, h int) {
	f.Prev.Resize(w, h)
	f.Cur.Resize(w, h)
	blank := geom.Cell{}
	for i := range f.Prev.Cells {
		f.Prev.Cells[i] = blank
	}
}
