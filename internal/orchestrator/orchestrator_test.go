package orchestrator

import (
	"testing"

	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/vnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	frames [][]byte
	seqs   []uint64
}

func (f *fakeBackend) SubmitFrame(seq uint64, bytes []byte) error {
	f.seqs = append(f.seqs, seq)
	f.frames = append(f.frames, bytes)
	return nil
}

func (f *fakeBackend) Capabilities() geom.Capabilities {
	return geom.Capabilities{ColorDepth: geom.TierBTruecolor, Cols: 20, Rows: 5}
}

func view() *vnode.VNode {
	return vnode.Col(vnode.Text("hello"))
}

func TestRequestFrameSubmitsAndReturnsToIdle(t *testing.T) {
	be := &fakeBackend{}
	o := New(view, be, 20, 5, Config{})

	o.RequestFrame()
	require.Len(t, be.seqs, 1)
	assert.Equal(t, uint64(1), be.seqs[0])
	assert.Equal(t, StateSubmitting, o.State())

	o.AckFrame(1)
	assert.Equal(t, StateIdle, o.State())
}

func TestRequestFrameWhileSubmittingCoalescesAndRunsOnAck(t *testing.T) {
	be := &fakeBackend{}
	o := New(view, be, 20, 5, Config{})

	o.RequestFrame()
	require.Len(t, be.seqs, 1)

	o.RequestFrame() // still submitting: should coalesce, not submit again
	assert.Len(t, be.seqs, 1)

	o.AckFrame(1)
	assert.Len(t, be.seqs, 2, "coalesced request should fire once the in-flight frame is acked")
	assert.Equal(t, uint64(2), be.seqs[1])
}

func TestResizeForcesInvalidationAndSubmits(t *testing.T) {
	be := &fakeBackend{}
	o := New(view, be, 20, 5, Config{})
	o.Resize(40, 10)
	require.Len(t, be.seqs, 1)
	assert.Equal(t, 40, o.viewportW)
	assert.Equal(t, 10, o.viewportH)
}

func TestStopUnmountsTree(t *testing.T) {
	be := &fakeBackend{}
	o := New(view, be, 10, 2, Config{})
	o.RequestFrame()
	o.Stop()
	assert.Equal(t, StateIdle, o.State())
	assert.Nil(t, o.reconciler.Root(), "Stop should unmount the tree back to nil")
}
