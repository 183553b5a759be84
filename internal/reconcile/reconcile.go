// Package reconcile implements the reconciler (spec.md §4, component C4):
// it diffs a freshly produced VNode tree against the previous frame's
// instance tree, mounting/updating/moving/unmounting instances in place,
// expanding composites by invoking their Render functions, and detecting
// the fatal frame-aborting conditions of spec.md §7 (duplicate_id,
// hook_order_mismatch, update_during_render, depth_exceeded).
//
// The child-matching algorithm is grounded on the teacher's
// tui/layout_engine.go tree-walk shape, generalized from a pure
// measure/arrange pass into a stateful diff: each new VNode child is
// looked up in the old instance's children by an "effective key" (the
// VNode's explicit Key if set, else its position in the child slice),
// requiring a Kind match too. Instances that go unmatched are unmounted
// in post-order so child effects clean up before parents.
package reconcile

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rezi-tui/rezi/internal/instance"
	"github.com/rezi-tui/rezi/internal/rezierr"
	"github.com/rezi-tui/rezi/internal/vnode"
)

// MaxCompositeDepth is the hard failure threshold of spec.md §4.3/§7: a
// composite chain nested deeper than this aborts the frame.
const MaxCompositeDepth = 100

// SoftWarnDepth is the depth at which the reconciler should log a
// warning but continue, per spec.md §7.
const SoftWarnDepth = 200

// Reconciler holds the previous frame's instance tree and the running
// state needed to reconcile the next one.
type Reconciler struct {
	root    *instance.Instance
	idSeen  map[string]bool
	onWarn  func(msg string)
}

// New creates an empty Reconciler with no prior tree.
func New() *Reconciler {
	return &Reconciler{onWarn: func(string) {}}
}

// OnWarn installs a callback for non-fatal structural warnings (e.g.
// soft depth threshold crossed), normally wired to internal/logging.
func (r *Reconciler) OnWarn(fn func(msg string)) { r.onWarn = fn }

// Root returns the current instance tree, or nil before the first
// Reconcile call.
func (r *Reconciler) Root() *instance.Instance { return r.root }

// Reconcile diffs next against the previously held tree, mutating and
// returning the new root instance. It recovers from the panics raised
// by acquireSlot/UseState/composite expansion on fatal conditions and
// returns them as a normal *rezierr.Error, matching the teacher's
// general "don't let one frame take down the process" posture.
func (r *Reconciler) Reconcile(next *vnode.VNode) (inst *instance.Instance, err error) {
	defer func() {
		if p := recover(); p != nil {
			if rerr, ok := p.(*rezierr.Error); ok {
				err = rerr
				return
			}
			panic(p)
		}
	}()

	r.idSeen = make(map[string]bool)
	newRoot := r.reconcileNode(r.root, next, 0)
	r.root = newRoot
	return newRoot, nil
}

// reconcileNode reconciles old (possibly nil) against next (possibly
// nil), returning the instance to keep in that slot (possibly nil).
func (r *Reconciler) reconcileNode(old *instance.Instance, next *vnode.VNode, depth int) *instance.Instance {
	if next == nil {
		if old != nil {
			r.unmount(old)
		}
		return nil
	}

	if depth == SoftWarnDepth {
		r.onWarn(fmt.Sprintf("instance tree depth %d exceeds soft warning threshold", depth))
	}
	if depth > MaxCompositeDepth && next.IsComposite() {
		panic(rezierr.New(rezierr.DepthExceeded, next.ID, errors.Errorf("composite nesting exceeded %d levels", MaxCompositeDepth)))
	}

	if next.ID != "" {
		if r.idSeen[next.ID] {
			panic(rezierr.New(rezierr.DuplicateID, next.ID, errors.Errorf("duplicate instance id %q within one frame", next.ID)))
		}
		r.idSeen[next.ID] = true
	}

	var inst *instance.Instance
	reused := old != nil && old.Kind == next.Kind && !old.Broken()
	if reused {
		inst = old
		inst.VNode = next
		inst.Key = next.Key
		inst.ID = next.ID
		inst.MarkDirty(instance.DirtyLayout | instance.DirtyPaint)
	} else {
		if old != nil {
			r.unmount(old)
		}
		inst = instance.New(next)
	}

	if next.IsComposite() {
		r.renderComposite(inst, next, depth)
		return inst
	}

	oldForChildren := inst
	if !reused {
		oldForChildren = nil
	}
	inst.Children = r.reconcileChildren(inst, oldForChildren, next.Children, depth+1)
	return inst
}

// renderComposite invokes next.Render under the active-instance guard,
// then reconciles the returned tree as inst's single synthetic child,
// detecting hook-order mismatches per spec.md §4.4/§7.
func (r *Reconciler) renderComposite(inst *instance.Instance, next *vnode.VNode, depth int) {
	prevActive := activeInstance
	activeInstance = inst
	inst.HookPos = 0

	var rendered *vnode.VNode
	func() {
		defer func() { activeInstance = prevActive }()
		rendered = next.Render(next.Props)
	}()

	if inst.RenderedHookCount != -1 && inst.RenderedHookCount != inst.HookPos {
		inst.MarkBroken()
		panic(rezierr.New(rezierr.HookOrderMismatch, next.ID,
			errors.Errorf("composite called %d hooks, previously called %d", inst.HookPos, inst.RenderedHookCount)))
	}
	inst.RenderedHookCount = inst.HookPos

	var oldChild *instance.Instance
	if len(inst.Children) == 1 {
		oldChild = inst.Children[0]
	}
	child := r.reconcileNode(oldChild, rendered, depth+1)
	if child != nil {
		child.Parent = inst
		inst.Children = []*instance.Instance{child}
	} else {
		inst.Children = nil
	}
}

// reconcileChildren matches nextChildren against old's children by
// effective key + Kind, mounts/updates matches in the new order, and
// unmounts anything left over in old that didn't match.
func (r *Reconciler) reconcileChildren(inst, old *instance.Instance, nextChildren []*vnode.VNode, depth int) []*instance.Instance {
	var oldChildren []*instance.Instance
	if old != nil {
		oldChildren = old.Children
	}

	byKey := make(map[interface{}][]*instance.Instance, len(oldChildren))
	for i, c := range oldChildren {
		k := effectiveKey(c.Key, i)
		byKey[k] = append(byKey[k], c)
	}

	matched := make(map[*instance.Instance]bool, len(oldChildren))
	result := make([]*instance.Instance, len(nextChildren))
	for i, nc := range nextChildren {
		k := effectiveKey(nc.Key, i)
		var oc *instance.Instance
		if cands := byKey[k]; len(cands) > 0 {
			for j, cand := range cands {
				if cand.Kind == nc.Kind {
					oc = cand
					byKey[k] = append(cands[:j], cands[j+1:]...)
					break
				}
			}
		}
		if oc != nil {
			matched[oc] = true
		}
		result[i] = r.reconcileNode(oc, nc, depth)
		if result[i] != nil {
			result[i].Parent = inst
		}
	}

	for _, c := range oldChildren {
		if !matched[c] {
			r.unmount(c)
		}
	}
	return result
}

// effectiveKey returns the VNode key that determines matching identity:
// the explicit key when set, else the child's position.
func effectiveKey(key interface{}, pos int) interface{} {
	if key != nil {
		return key
	}
	return pos
}

// unmount disposes effects in post-order. It does not unlink the
// subtree from its parent.
func (r *Reconciler) unmount(n *instance.Instance) {
	instance.WalkPostOrder(n, func(inst *instance.Instance) {
		for _, slot := range inst.Hooks {
			if slot.Dispose != nil {
				slot.Dispose()
			}
		}
	})
}
