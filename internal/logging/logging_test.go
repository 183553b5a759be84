package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNonTTYEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Zap.Info("hello")
	_ = l.Zap.Sync()
	assert.NotNil(t, l.Slog)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "hello", line["msg"])
}

func TestFatalEventLogsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.FatalEvent("depth_exceeded", "root/box[2]/text", 42, assertErr{})
	_ = l.Zap.Sync()

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "depth_exceeded", line["kind"])
	assert.Equal(t, "root/box[2]/text", line["node_path"])
	assert.Equal(t, float64(42), line["frame_seq"])
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

func TestDiscardDoesNotPanic(t *testing.T) {
	l := Discard()
	l.FatalEvent("k", "p", 1, assertErr{})
	l.Sync()
}
