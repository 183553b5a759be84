package framebuffer

import (
	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/grapheme"
	"github.com/rezi-tui/rezi/internal/zrdl"
)

// Interpret paints f.Cur from doc, replacing its prior contents. It
// walks the command stream in order, maintaining a clip-rect stack for
// push_clip/pop_clip the way tui.Screen.Frame's draw callback relies on
// Buffer.Set's bounds check, generalized here to an arbitrary clip
// rectangle rather than just the grid edges.
func (f *Framebuffer) Interpret(doc zrdl.Document) {
	blank := geom.DefaultCell()
	for i := range f.Cur.Cells {
		f.Cur.Cells[i] = blank
	}
	f.cursorVisible = false

	clipStack := []geom.Rect{{X: 0, Y: 0, W: f.Cur.W, H: f.Cur.H}}
	top := func() geom.Rect { return clipStack[len(clipStack)-1] }

	for _, c := range doc.Commands {
		switch c.Op {
		case zrdl.OpClear:
			for i := range f.Cur.Cells {
				f.Cur.Cells[i] = blank
			}
		case zrdl.OpPushClip:
			clipStack = append(clipStack, top().Intersect(c.ClipRect))
		case zrdl.OpPopClip:
			if len(clipStack) > 1 {
				clipStack = clipStack[:len(clipStack)-1]
			}
		case zrdl.OpFillRect:
			f.fillRect(int(c.X), int(c.Y), int(c.W), int(c.H), c.Style, top())
		case zrdl.OpDrawText:
			text := resolveStringRef(doc, c.StringRef)
			f.drawText(int(c.X), int(c.Y), text, c.Style, top())
		case zrdl.OpDrawTextRun:
			text := resolveBlobRef(doc, c.BlobRef)
			f.drawText(int(c.X), int(c.Y), string(text), c.Style, top())
		case zrdl.OpSetCursor:
			f.cursorX, f.cursorY = int(c.X), int(c.Y)
			f.cursorVisible = c.CursorVisible
			f.cursorShape = c.CursorShape
		case zrdl.OpDrawCanvas, zrdl.OpDrawImage:
			// Sub-cell/inline-graphics payloads are opaque to the cell grid;
			// the backend's terminal-graphics path consumes the blob
			// directly from the Document rather than through Grid cells.
		}
	}
}

func resolveStringRef(doc zrdl.Document, ref zrdl.StringRef) string {
	if int(ref.Index) >= len(doc.Strings) {
		return ""
	}
	b := doc.Strings[ref.Index].Bytes
	end := int(ref.ByteOff) + int(ref.ByteLen)
	if end > len(b) {
		end = len(b)
	}
	if int(ref.ByteOff) > len(b) {
		return ""
	}
	return string(b[ref.ByteOff:end])
}

func resolveBlobRef(doc zrdl.Document, idx uint32) []byte {
	if int(idx) >= len(doc.Blobs) {
		return nil
	}
	return doc.Blobs[idx].Bytes
}

func (f *Framebuffer) fillRect(x, y, w, h int, style geom.TextStyle, clip geom.Rect) {
	r := geom.Rect{X: x, Y: y, W: w, H: h}.Intersect(clip)
	if r.Empty() {
		return
	}
	for row := r.Y; row < r.Y+r.H; row++ {
		for col := r.X; col < r.X+r.W; col++ {
			f.Cur.Set(col, row, geom.Cell{Grapheme: " ", Width: 1, Style: style})
		}
	}
}

func (f *Framebuffer) drawText(x, y int, text string, style geom.TextStyle, clip geom.Rect) {
	col := x
	for _, cluster := range grapheme.Segment(text) {
		w := cluster.Width
		if w == 0 {
			w = 1
		}
		if col >= clip.X && col < clip.X+clip.W && y >= clip.Y && y < clip.Y+clip.H {
			f.Cur.Set(col, y, geom.Cell{Grapheme: cluster.Text, Width: uint8(w), Style: style})
			for k := 1; k < w; k++ {
				f.Cur.Set(col+k, y, geom.Cell{Grapheme: geom.ContinuationSentinel, Width: 0, Style: style})
			}
		}
		col += w
	}
}
