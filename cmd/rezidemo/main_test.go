package main

import (
	"bytes"
	"testing"

	"github.com/rezi-tui/rezi/internal/zrev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRecordedBatchRoundTripsThroughLengthPrefixFraming(t *testing.T) {
	var buf bytes.Buffer
	batch := zrev.Batch{Events: []zrev.Event{
		{Kind: zrev.EventKey, Key: zrev.KeyEvent{KeyName: "a"}},
		{Kind: zrev.EventResize, Resize: zrev.ResizeEvent{Cols: 100, Rows: 40}},
	}}

	writeRecordedBatch(&buf, batch)

	data := buf.Bytes()
	n := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
	require.EqualValues(t, len(data)-4, n)

	decoded, err := zrev.Decode(data[4:])
	require.NoError(t, err)
	require.Len(t, decoded.Events, 2)
	assert.Equal(t, "a", decoded.Events[0].Key.KeyName)
	assert.Equal(t, 100, decoded.Events[1].Resize.Cols)
}

func TestAckingSinkCountsFramesAndReportsDefaultSize(t *testing.T) {
	sink := &ackingSink{}
	require.NoError(t, sink.SubmitFrame(1, []byte("x")))
	assert.Equal(t, 1, sink.frames)
	caps := sink.Capabilities()
	assert.Equal(t, 80, caps.Cols)
}
