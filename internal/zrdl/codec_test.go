package zrdl

import (
	"testing"

	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripCodec(t *testing.T) {
	b := NewBuilder()
	ref := b.InternString("hello")
	b.Append(Clear())
	b.Append(FillRect(1, 2, 3, 4, geom.TextStyle{Fg: geom.RGB(1, 2, 3), Attrs: geom.AttrBold}))
	b.Append(DrawText(0, 0, StringRef{Index: ref, ByteOff: 0, ByteLen: 5}, geom.TextStyle{}))
	b.Append(PushClip(geom.Rect{X: 0, Y: 0, W: 10, H: 10}))
	b.Append(PopClip())
	b.Append(SetCursor(5, 5, 1, true, false))
	blobRef := b.InternBlob([]byte{1, 2, 3, 4})
	b.Append(DrawCanvas(0, 0, 4, 2, 8, 8, blobRef, BlitterBraille))
	b.Append(DrawImage(0, 0, 4, 2, 8, 8, blobRef, 42, ImageFormatPNG, ImageProtocolKitty, 1, FitContain))
	b.Append(DefString(ref))
	b.Append(FreeString(ref))

	doc := b.Build()
	encoded, err := Encode(doc)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	require.Len(t, decoded.Commands, len(doc.Commands))
	for i := range doc.Commands {
		assert.Equal(t, doc.Commands[i].Op, decoded.Commands[i].Op, "command %d", i)
	}
	assert.Equal(t, doc.Strings, decoded.Strings)
	assert.Equal(t, doc.Blobs, decoded.Blobs)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := Decode([]byte("nope, not a drawlist at all, far too short"))
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownOpcode(t *testing.T) {
	b := NewBuilder()
	b.Append(Clear())
	encoded, err := b.Encode()
	require.NoError(t, err)

	// Corrupt the single command's opcode (first two bytes after the
	// container header) to an opcode outside the valid range.
	encoded[ContainerHeaderSize] = 0xFF
	encoded[ContainerHeaderSize+1] = 0xFF

	_, err = Decode(encoded)
	assert.Error(t, err)
}

func TestIdempotentEncodeIsDeterministic(t *testing.T) {
	b := NewBuilder()
	b.Append(Clear())
	b.Append(FillRect(0, 0, 1, 1, geom.TextStyle{}))
	a, err := b.Encode()
	require.NoError(t, err)
	c, err := b.Encode()
	require.NoError(t, err)
	assert.Equal(t, a, c)
}
