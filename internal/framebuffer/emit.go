package framebuffer

import (
	"bufio"
	"bytes"
	"strconv"

	"github.com/rezi-tui/rezi/internal/geom"
)

// EmitBytes runs Emit against an in-memory buffer and returns the
// resulting bytes, for callers (internal/orchestrator) that hand the
// differ's output to a Backend.SubmitFrame rather than writing straight
// to a terminal's stdout.
func (f *Framebuffer) EmitBytes() []byte {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	f.Emit(w)
	return buf.Bytes()
}

// Emit diffs f.Cur against f.Prev row by row (skipping rows whose
// FNV-1a hash is unchanged) and writes the minimal cursor-chasing ANSI
// sequence to out, then copies Cur into Prev. It generalizes
// tui.Screen.renderUnlocked's single style-active/lastStyle tracking
// loop with the row-hash pre-filter and truecolor-capability-aware
// color encoding.
func (f *Framebuffer) Emit(out *bufio.Writer) {
	w, h := f.Cur.W, f.Cur.H
	curX, curY := -1, -1
	var lastStyle geom.TextStyle
	styleActive := false

	for y := 0; y < h; y++ {
		if f.Prev.H == h && f.Prev.W == w && f.Cur.RowHash(y) == f.Prev.RowHash(y) {
			continue
		}
		for x := 0; x < w; x++ {
			cur := f.Cur.Get(x, y)
			prev := f.Prev.Get(x, y)
			if cur.IsContinuation() {
				continue
			}
			if cellEqual(cur, prev) {
				continue
			}

			if curX != x || curY != y {
				writeCursorPos(out, y+1, x+1)
				curX, curY = x, y
			}
			if !styleActive || cur.Style != lastStyle {
				if styleActive {
					out.WriteString("\x1b[0m")
				}
				writeStyle(out, cur.Style, f.Caps)
				lastStyle = cur.Style
				styleActive = true
			}

			g := cur.Grapheme
			if g == "" {
				g = " "
			}
			out.WriteString(g)
			curX += int(max1(cur.Width))
		}
	}

	if styleActive {
		out.WriteString("\x1b[0m")
	}

	f.writeCursor(out)
	out.Flush()

	f.Prev.W, f.Prev.H = f.Cur.W, f.Cur.H
	f.Prev.Cells = append(f.Prev.Cells[:0], f.Cur.Cells...)
}

func cellEqual(a, b geom.Cell) bool {
	return a.Grapheme == b.Grapheme && a.Width == b.Width && a.Style == b.Style && a.LinkID == b.LinkID
}

func max1(w uint8) uint8 {
	if w == 0 {
		return 1
	}
	return w
}

func (f *Framebuffer) writeCursor(out *bufio.Writer) {
	if f.cursorVisible {
		writeCursorPos(out, f.cursorY+1, f.cursorX+1)
		out.WriteString("\x1b[?25h")
	} else {
		out.WriteString("\x1b[?25l")
	}
}

func writeCursorPos(out *bufio.Writer, row, col int) {
	buf := make([]byte, 0, 16)
	buf = append(buf, '\x1b', '[')
	buf = strconv.AppendInt(buf, int64(row), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col), 10)
	buf = append(buf, 'H')
	out.Write(buf)
}

// writeStyle emits the SGR sequence for st, downgrading truecolor to
// the 256-color palette when caps.ColorDepth doesn't support it. There
// is no 16-color downgrade path.
func writeStyle(out *bufio.Writer, st geom.TextStyle, caps geom.Capabilities) {
	if st.Attrs.Has(geom.AttrBold) {
		out.WriteString("\x1b[1m")
	}
	if st.Attrs.Has(geom.AttrDim) {
		out.WriteString("\x1b[2m")
	}
	if st.Attrs.Has(geom.AttrItalic) {
		out.WriteString("\x1b[3m")
	}
	if st.Attrs.Has(geom.AttrUnderline) {
		out.WriteString("\x1b[4m")
	}
	if st.Attrs.Has(geom.AttrBlink) {
		out.WriteString("\x1b[5m")
	}
	if st.Attrs.Has(geom.AttrInverse) {
		out.WriteString("\x1b[7m")
	}
	if st.Attrs.Has(geom.AttrStrikethrough) {
		out.WriteString("\x1b[9m")
	}
	if st.Attrs.Has(geom.AttrOverline) {
		out.WriteString("\x1b[53m")
	}
	writeColor(out, st.Fg, caps, false)
	writeColor(out, st.Bg, caps, true)
}

func writeColor(out *bufio.Writer, c geom.Color, caps geom.Capabilities, bg bool) {
	if c.Kind == geom.ColorDefault {
		return
	}
	base := 38
	if bg {
		base = 48
	}
	switch {
	case c.Kind == geom.ColorRGB && caps.ColorDepth >= geom.TierBTruecolor:
		out.WriteString("\x1b[" + strconv.Itoa(base) + ";2;" +
			strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B)) + "m")
	case c.Kind == geom.ColorRGB:
		idx := downgradeToIndexed(c)
		out.WriteString("\x1b[" + strconv.Itoa(base) + ";5;" + strconv.Itoa(int(idx)) + "m")
	case c.Kind == geom.ColorIndexed:
		out.WriteString("\x1b[" + strconv.Itoa(base) + ";5;" + strconv.Itoa(int(c.Index)) + "m")
	}
}

// downgradeToIndexed approximates a truecolor value in the 6x6x6 color
// cube of the 256-color palette (indices 16..231), per spec.md §6's
// truecolor-to-256 downgrade path.
func downgradeToIndexed(c geom.Color) uint8 {
	toStep := func(v uint8) int {
		return int(v) * 5 / 255
	}
	r, g, b := toStep(c.R), toStep(c.G), toStep(c.B)
	return uint8(16 + 36*r + 6*g + b)
}
