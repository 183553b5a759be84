package zrev

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermDecoderPlainChar(t *testing.T) {
	d := NewTermDecoder()
	evs := d.Feed([]byte("a"))
	require.Len(t, evs, 1)
	assert.Equal(t, "a", evs[0].Key.KeyName)
	assert.Equal(t, ModNone, evs[0].Key.Mods)
}

func TestTermDecoderArrowKey(t *testing.T) {
	d := NewTermDecoder()
	evs := d.Feed([]byte("\x1b[A"))
	require.Len(t, evs, 1)
	assert.Equal(t, "arrowup", evs[0].Key.KeyName)
}

func TestTermDecoderArrowKeyWithCtrlModifier(t *testing.T) {
	d := NewTermDecoder()
	evs := d.Feed([]byte("\x1b[1;5A"))
	require.Len(t, evs, 1)
	assert.Equal(t, "arrowup", evs[0].Key.KeyName)
	assert.Equal(t, ModCtrl, evs[0].Key.Mods)
}

func TestTermDecoderTildeNavKey(t *testing.T) {
	d := NewTermDecoder()
	evs := d.Feed([]byte("\x1b[3~"))
	require.Len(t, evs, 1)
	assert.Equal(t, "delete", evs[0].Key.KeyName)
}

func TestTermDecoderSS3FunctionKey(t *testing.T) {
	d := NewTermDecoder()
	evs := d.Feed([]byte("\x1bOP"))
	require.Len(t, evs, 1)
	assert.Equal(t, "f1", evs[0].Key.KeyName)
}

func TestTermDecoderCtrlChar(t *testing.T) {
	d := NewTermDecoder()
	evs := d.Feed([]byte{0x01}) // Ctrl+A
	require.Len(t, evs, 1)
	assert.Equal(t, ModCtrl, evs[0].Key.Mods)
	assert.Equal(t, "ctrl+a", evs[0].Key.KeyName)
}

func TestTermDecoderIncompleteEscapeWaitsThenFlushes(t *testing.T) {
	d := NewTermDecoder()
	evs := d.Feed([]byte{0x1b})
	assert.Empty(t, evs, "a lone ESC byte should not resolve until Flush")

	flushed := d.Flush()
	require.Len(t, flushed, 1)
	assert.Equal(t, "escape", flushed[0].Key.KeyName)
}
