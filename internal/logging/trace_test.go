package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracerRecordsOneLinePerFrameWithUniqueIDs(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(&buf)

	require.NoError(t, tr.Record(1, 128, 2*time.Millisecond, time.Millisecond))
	require.NoError(t, tr.Record(2, 256, time.Millisecond, time.Millisecond))

	scanner := bufio.NewScanner(&buf)
	var seen []FrameTrace
	for scanner.Scan() {
		var rec FrameTrace
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		seen = append(seen, rec)
	}
	require.Len(t, seen, 2)
	assert.Equal(t, uint64(1), seen[0].FrameSeq)
	assert.Equal(t, uint64(2), seen[1].FrameSeq)
	assert.NotEqual(t, seen[0].TraceID, seen[1].TraceID)
	assert.NotEmpty(t, seen[0].TraceID)
}
