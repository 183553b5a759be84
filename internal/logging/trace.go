package logging

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FrameTrace is one NDJSON record in the per-frame audit trace spec.md §6
// gates behind a tracing flag: a correlation id plus the frame's sequence
// number, byte count, and build/submit timings.
type FrameTrace struct {
	TraceID    string        `json:"trace_id"`
	FrameSeq   uint64        `json:"frame_seq"`
	BytesEmitted int         `json:"bytes_emitted"`
	BuildTook  time.Duration `json:"build_took_ns"`
	SubmitTook time.Duration `json:"submit_took_ns"`
	Timestamp  time.Time     `json:"timestamp"`
}

// Tracer writes FrameTrace records as newline-delimited JSON, one per
// frame, each carrying a fresh uuid so a record can be correlated across
// the audit log and any external replay capture sharing the same id.
type Tracer struct {
	mu  sync.Mutex
	out io.Writer
	enc *json.Encoder
}

// NewTracer wraps w. Pass io.Discard when spec.md §6's tracing flag is off.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{out: w, enc: json.NewEncoder(w)}
}

// Record emits one FrameTrace, stamping it with a new correlation id and
// the current time.
func (t *Tracer) Record(frameSeq uint64, bytesEmitted int, buildTook, submitTook time.Duration) error {
	rec := FrameTrace{
		TraceID:      uuid.NewString(),
		FrameSeq:     frameSeq,
		BytesEmitted: bytesEmitted,
		BuildTook:    buildTook,
		SubmitTook:   submitTook,
		Timestamp:    time.Now(),
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enc.Encode(rec)
}
