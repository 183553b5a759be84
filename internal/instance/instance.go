// Package instance defines the Runtime instance type of spec.md §3: the
// reconciled, persistent counterpart of a VNode. internal/reconcile
// builds and mutates instance trees; internal/layout, internal/focus,
// and internal/drawbuild all walk them read-mostly after reconciliation.
package instance

import (
	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/vnode"
)

// DirtyFlag marks what about an instance changed since it was last
// fully processed, per spec.md §3's Runtime instance invariant.
type DirtyFlag uint8

const (
	DirtyLayout DirtyFlag = 1 << iota
	DirtyPaint
	DirtyMetadata
)

// HookSlot is one positional hook-state cell on a composite instance,
// per spec.md §9's "(composite id, hook index)" identity model.
type HookSlot struct {
	Value interface{}
	// Dispose, when non-nil, is an effect cleanup registered by the hook
	// that owns this slot; it runs when the instance unmounts or when
	// the effect's dependencies change and it re-runs.
	Dispose func()
}

// Instance is the persistent runtime counterpart of a VNode.
type Instance struct {
	Kind   vnode.Kind
	Key    interface{}
	ID     string
	Parent *Instance
	Children []*Instance

	VNode *vnode.VNode

	Hooks    []HookSlot
	HookPos  int // reset to 0 at the start of each composite render

	// RenderedHookCount is the HookPos reached at the end of the last
	// successful render, or -1 if this composite instance has never
	// rendered. The reconciler compares HookPos to it on each render to
	// detect a hook_order_mismatch per spec.md §4.4/§7.
	RenderedHookCount int

	Rect        geom.Rect
	ClipRect    geom.Rect
	StabilitySig uint64
	Dirty       DirtyFlag

	// ScrollX/ScrollY shift this instance's children during arrange
	// (box, overlay, focusable leaf and stack instances); the offset is
	// applied whatever the instance's Overflow setting is.
	ScrollX, ScrollY int

	// broken is set by the reconciler when a hook-order mismatch or an
	// update-during-render violation was detected; the instance is kept
	// (not unmounted) but excluded from further rendering until it is
	// naturally unmounted, per spec.md §7.
	broken bool
}

// New creates a freshly-mounted Instance for vn.
func New(vn *vnode.VNode) *Instance {
	return &Instance{
		Kind:              vn.Kind,
		Key:               vn.Key,
		ID:                vn.ID,
		VNode:             vn,
		RenderedHookCount: -1,
		Dirty:             DirtyLayout | DirtyPaint | DirtyMetadata,
	}
}

// MarkDirty ORs f into the instance's dirty bitset.
func (n *Instance) MarkDirty(f DirtyFlag) { n.Dirty |= f }

// IsDirty reports whether any of f is set.
func (n *Instance) IsDirty(f DirtyFlag) bool { return n.Dirty&f != 0 }

// ClearDirty resets the dirty bitset after a frame fully processes it.
func (n *Instance) ClearDirty() { n.Dirty = 0 }

// Broken reports whether this instance was marked unusable by a fatal,
// non-tree-aborting reconciliation error.
func (n *Instance) Broken() bool { return n.broken }

// MarkBroken flags the instance as broken, per spec.md §7's
// hook_order_mismatch policy ("instance marked broken until unmount").
func (n *Instance) MarkBroken() { n.broken = true }

// Walk visits n and all descendants in document (pre-)order.
func Walk(n *Instance, visit func(*Instance)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// WalkPostOrder visits descendants before their parent, matching the
// "release effects in post-order" rule of spec.md §4.4.
func WalkPostOrder(n *Instance, visit func(*Instance)) {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		WalkPostOrder(c, visit)
	}
	visit(n)
}

// Depth returns the nesting depth of n (root is depth 0), used for the
// depth_exceeded checks of spec.md §4.3.
func Depth(n *Instance) int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}
