// Package orchestrator implements the frame orchestrator (C9): the
// single-threaded cooperative idle/building/submitting state machine
// that drives view → reconcile → layout → build → diff → submit each
// frame, per spec.md §4.9/§5.
//
// It is grounded on tui/screen.go's Frame/Render pair (clear → draw →
// diff+flush under one lock) generalized from "draw straight into a
// buffer" to "run the whole five-stage pipeline", and on
// internal/reactive.Batch's coalescing idiom (spec.md §5's "updates
// from the same tick apply in enqueue order, the next frame sees
// them") applied at the frame level: a state change, timer, or event
// arriving while a frame is already building or submitting doesn't
// start a second pipeline run, it just marks the current one stale so
// exactly one more run happens once the in-flight one finishes.
package orchestrator

import (
	"sync"
	"time"

	"github.com/rezi-tui/rezi/internal/drawbuild"
	"github.com/rezi-tui/rezi/internal/focus"
	"github.com/rezi-tui/rezi/internal/framebuffer"
	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/layout"
	"github.com/rezi-tui/rezi/internal/reconcile"
	"github.com/rezi-tui/rezi/internal/vnode"
	"github.com/rezi-tui/rezi/internal/zrdl"
	"github.com/rezi-tui/rezi/internal/zrev"
)

// State is one of the three states spec.md §4.9 names for C9.
type State uint8

const (
	StateIdle State = iota
	StateBuilding
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuilding:
		return "building"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Backend is the subset of the Core→Backend/Backend→Core API (spec.md
// §6) the orchestrator needs to submit frames; internal/backend
// supplies the concrete TTY implementation.
type Backend interface {
	SubmitFrame(seq uint64, bytes []byte) error
	Capabilities() geom.Capabilities
}

// Config tunes the orchestrator's scheduling policy.
type Config struct {
	// MaxFPS caps how often a built frame may be submitted; frames
	// requested above the cap are dropped (latest-wins), per spec.md
	// §4.9. Zero means uncapped.
	MaxFPS int
	// AckTimeout is stored but not read by the orchestrator: no timer
	// runs while submitting. Leaving submitting on a missed ack happens
	// only when a caller invokes Orchestrator.AckTimeout.
	AckTimeout time.Duration
}

// Orchestrator owns the reconciler, layout engine, drawlist builder,
// framebuffer differ, focus index, and router, and threads a view
// function through all of them each frame.
type Orchestrator struct {
	mu sync.Mutex

	view    func() *vnode.VNode
	backend Backend
	cfg     Config

	reconciler *reconcile.Reconciler
	layoutEng  *layout.Engine
	fb         *framebuffer.Framebuffer
	ring       *focus.Ring
	router     *zrev.Router

	state      State
	coalesced  bool
	seq        uint64
	lastSubmit time.Time
	fullInvalidate bool

	viewportW, viewportH int

	onWarn func(string)
	onLog  func(frameSeq uint64, cmdCount int, byteLen int)
}

// New creates an Orchestrator. viewportW/H seed the first layout pass;
// Resize updates them on a resize event.
func New(view func() *vnode.VNode, backend Backend, viewportW, viewportH int, cfg Config) *Orchestrator {
	caps := backend.Capabilities()
	o := &Orchestrator{
		view:       view,
		backend:    backend,
		cfg:        cfg,
		reconciler: reconcile.New(),
		layoutEng:  layout.New(),
		fb:         framebuffer.New(viewportW, viewportH, caps),
		router:     zrev.NewRouter(),
		viewportW:  viewportW,
		viewportH:  viewportH,
		onWarn:     func(string) {},
		onLog:      func(uint64, int, int) {},
	}
	o.reconciler.OnWarn(o.warn)
	o.layoutEng.OnWarn(o.warn)
	o.router.Invalidate = func(cols, rows int) { o.Resize(cols, rows) }
	return o
}

func (o *Orchestrator) warn(msg string) { o.onWarn(msg) }

// OnWarn installs a callback for non-fatal structural warnings raised
// by the reconciler or layout engine.
func (o *Orchestrator) OnWarn(fn func(string)) { o.onWarn = fn }

// OnFrameBuilt installs an audit callback invoked after each frame is
// built, before submission, for the tracing NDJSON record of spec.md §6.
func (o *Orchestrator) OnFrameBuilt(fn func(frameSeq uint64, cmdCount int, byteLen int)) { o.onLog = fn }

// Router returns the event router so the backend's input loop can feed
// decoded ZREV events into it.
func (o *Orchestrator) Router() *zrev.Router { return o.router }

// State reports the orchestrator's current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// RequestFrame moves idle → building and runs the pipeline, or, if a
// frame is already building/submitting, marks the in-flight frame
// stale so exactly one more run happens once it completes — spec.md
// §4.9's "only the latest state is ever submitted" coalescing rule.
func (o *Orchestrator) RequestFrame() {
	o.mu.Lock()
	if o.state != StateIdle {
		o.coalesced = true
		o.mu.Unlock()
		return
	}
	if o.cfg.MaxFPS > 0 {
		minInterval := time.Second / time.Duration(o.cfg.MaxFPS)
		if since := time.Since(o.lastSubmit); since < minInterval {
			o.coalesced = true
			o.mu.Unlock()
			return
		}
	}
	o.state = StateBuilding
	o.mu.Unlock()

	o.runPipeline()
}

// Resize updates the viewport and forces a full invalidation at the
// next frame, per spec.md §4.8 dispatch rule 1.
func (o *Orchestrator) Resize(cols, rows int) {
	o.mu.Lock()
	o.viewportW, o.viewportH = cols, rows
	o.fb.Resize(cols, rows)
	o.fullInvalidate = true
	o.mu.Unlock()
	o.RequestFrame()
}

// DispatchEvents routes an already-decoded ZREV batch's events, then
// requests a new frame if any handler ran (state mutations are queued
// by reactive.Batch and become visible on the frame this triggers).
func (o *Orchestrator) DispatchEvents(batch zrev.Batch) {
	any := false
	for _, ev := range batch.Events {
		if o.router.Dispatch(ev) {
			any = true
		}
	}
	if any {
		o.RequestFrame()
	}
}

// AckFrame signals that seq was written to the terminal, moving
// submitting → idle. If a frame was coalesced while this one was
// in flight, it immediately starts the next one.
func (o *Orchestrator) AckFrame(seq uint64) {
	o.mu.Lock()
	if o.state != StateSubmitting {
		o.mu.Unlock()
		return
	}
	o.state = StateIdle
	o.lastSubmit = time.Now()
	pending := o.coalesced
	o.coalesced = false
	o.mu.Unlock()

	if pending {
		o.RequestFrame()
	}
}

// AckTimeout should be called by the backend's ack-deadline timer if
// AckFrame wasn't called in time; it resumes to idle and forces a full
// invalidation on the next frame, per spec.md §5.
func (o *Orchestrator) AckTimeout() {
	o.mu.Lock()
	o.state = StateIdle
	o.fullInvalidate = true
	o.mu.Unlock()
	o.RequestFrame()
}

// Stop drains the orchestrator to idle and unmounts the entire
// instance tree, running every hook's release effect in post-order
// (children before parents, i.e. reverse mount order), per spec.md
// §4.9's shutdown semantics. It reuses Reconcile(nil), which already
// walks the tree post-order disposing hooks when a node disappears.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reconciler.Reconcile(nil)
	o.state = StateIdle
}

// runPipeline runs one view → reconcile → layout → build → diff pass
// and submits the result, transitioning building → submitting. A
// failure at any stage (reconcile/layout error) logs a warning and
// drops straight back to idle rather than submitting a partial frame,
// per spec.md §5's "partially-built frames are discarded".
func (o *Orchestrator) runPipeline() {
	next := o.view()

	root, err := o.reconciler.Reconcile(next)
	if err != nil {
		o.onWarn(err.Error())
		o.abortBuild()
		return
	}

	o.mu.Lock()
	w, h := o.viewportW, o.viewportH
	o.mu.Unlock()

	if err := o.layoutEng.Layout(root, w, h); err != nil {
		o.onWarn(err.Error())
		o.abortBuild()
		return
	}

	ring := focus.Build(root, o.ring)
	ht := focus.BuildHitTest(root)
	o.mu.Lock()
	o.ring = ring
	o.mu.Unlock()
	o.router.SetIndex(ring, ht)

	builder := zrdl.NewBuilder()
	dc := drawbuild.New(builder)
	dc.Build(root)
	doc := builder.Build()

	o.mu.Lock()
	forceFull := o.fullInvalidate
	o.fullInvalidate = false
	o.mu.Unlock()
	if forceFull {
		o.fb.Resize(o.fb.Cur.W, o.fb.Cur.H)
	}

	o.fb.Interpret(doc)
	bytes := o.fb.EmitBytes()

	o.mu.Lock()
	o.state = StateSubmitting
	o.seq++
	seq := o.seq
	o.mu.Unlock()

	o.onLog(seq, len(doc.Commands), len(bytes))

	if err := o.backend.SubmitFrame(seq, bytes); err != nil {
		o.onWarn(err.Error())
	}
}

// abortBuild drops a failed build straight back to idle without
// submitting, preserving any frame that was coalesced in the meantime
// so the next RequestFrame (or AckFrame of a still-pending submission)
// picks it up.
func (o *Orchestrator) abortBuild() {
	o.mu.Lock()
	o.state = StateIdle
	o.mu.Unlock()
}
