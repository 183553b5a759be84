package framebuffer

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/zrdl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docWithText(t *testing.T, x, y int, text string, style geom.TextStyle) zrdl.Document {
	t.Helper()
	b := zrdl.NewBuilder()
	idx := b.InternString(text)
	b.Append(zrdl.DrawText(x, y, zrdl.StringRef{Index: idx, ByteLen: uint32(len(text))}, style))
	return b.Build()
}

func TestInterpretPaintsTextIntoGrid(t *testing.T) {
	fb := New(10, 3, geom.Capabilities{ColorDepth: geom.TierBTruecolor})
	doc := docWithText(t, 2, 1, "hi", geom.TextStyle{})
	fb.Interpret(doc)

	assert.Equal(t, "h", fb.Cur.Get(2, 1).Grapheme)
	assert.Equal(t, "i", fb.Cur.Get(3, 1).Grapheme)
}

func TestEmitOnlyWritesChangedCells(t *testing.T) {
	fb := New(10, 3, geom.Capabilities{ColorDepth: geom.TierBTruecolor})
	fb.Interpret(docWithText(t, 0, 0, "a", geom.TextStyle{}))

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	fb.Emit(w)
	require.NotEmpty(t, buf.String())

	buf.Reset()
	fb.Interpret(docWithText(t, 0, 0, "a", geom.TextStyle{}))
	w = bufio.NewWriter(&buf)
	fb.Emit(w)
	assert.NotContains(t, buf.String(), "a", "repeating an identical frame should not re-emit unchanged cells")
}

func TestDowngradeToIndexedMapsBlackAndWhite(t *testing.T) {
	assert.Equal(t, uint8(16), downgradeToIndexed(geom.RGB(0, 0, 0)))
	assert.Equal(t, uint8(231), downgradeToIndexed(geom.RGB(255, 255, 255)))
}

func TestResizeInvalidatesPreviousFrame(t *testing.T) {
	fb := New(5, 5, geom.Capabilities{})
	fb.Interpret(docWithText(t, 0, 0, "x", geom.TextStyle{}))
	fb.Prev.Cells[0] = fb.Cur.Cells[0]

	fb.Resize(8, 8)
	assert.NotEqual(t, fb.Cur.Cells[0], fb.Prev.Get(0, 0), "resize should blank Prev to force a full redraw")
}
