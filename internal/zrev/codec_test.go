package zrev

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	batch := Batch{Events: []Event{
		{Kind: EventKey, Key: KeyEvent{KeyName: "enter", Mods: ModCtrl, Repeat: 1}},
		{Kind: EventMouse, Mouse: MouseEvent{X: 3, Y: 4, Button: ButtonLeft, Action: MousePress, Mods: ModShift, WheelDelta: -1}},
		{Kind: EventPaste, Paste: PasteEvent{Text: "hello world"}},
		{Kind: EventResize, Resize: ResizeEvent{Cols: 80, Rows: 24}},
		{Kind: EventFocusChange, Focus: FocusChangeEvent{Focused: true}},
	}}

	b, err := Encode(batch)
	require.NoError(t, err)

	got, err := Decode(b)
	require.NoError(t, err)
	require.Len(t, got.Events, len(batch.Events))

	assert.Equal(t, "enter", got.Events[0].Key.KeyName)
	assert.Equal(t, ModCtrl, got.Events[0].Key.Mods)
	assert.Equal(t, 3, got.Events[1].Mouse.X)
	assert.Equal(t, "hello world", got.Events[2].Paste.Text)
	assert.Equal(t, 80, got.Events[3].Resize.Cols)
	assert.True(t, got.Events[4].Focus.Focused)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	b, err := Encode(Batch{})
	require.NoError(t, err)
	b[0] = 'X'
	_, err = Decode(b)
	assert.Error(t, err)
}

func TestDecodeRejectsTruncatedPayload(t *testing.T) {
	b, err := Encode(Batch{Events: []Event{{Kind: EventResize, Resize: ResizeEvent{Cols: 1, Rows: 1}}}})
	require.NoError(t, err)
	_, err = Decode(b[:len(b)-2])
	assert.Error(t, err)
}
