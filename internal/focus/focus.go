// Package focus implements the focus and hit-test index (C7): the
// ordered focus ring, focus-trap stack, and pointer hit-test lookup
// built from a reconciled, laid-out instance tree, per spec.md §4.7.
//
// It is grounded on the same tree-walk shape as tui/layout_engine.go
// and internal/layout (a single recursive descent collecting results
// into a slice), generalized from "walk every node and size it" to
// "walk every node and decide whether it is a focus/hit-test target".
// C9 decides when to call Build (only after reconciliation or layout
// marked the tree dirty); this package does not cache anything itself.
package focus

import (
	"sort"

	"github.com/rezi-tui/rezi/internal/instance"
	"github.com/rezi-tui/rezi/internal/vnode"
)

// Ring is the ordered set of focusable instances for one frame, plus
// the currently focused entry and the active trap stack.
type Ring struct {
	order   []*instance.Instance
	focused *instance.Instance
	traps   []*instance.Instance
}

// Build walks root in document order and collects every enabled,
// visible KindFocusableLeaf instance into the ring, ordered per
// spec.md §4.7: explicit positive tab indices first (ascending, ties
// broken by document order), then document order for the rest
// (tab index 0, the "document order" default). prev may be nil (first
// frame); when given, the previously focused instance carries forward
// into the new ring as long as its pointer identity still appears in
// it — the reconciler preserves identity for reused nodes, so a widget
// that survives a re-render keeps its focus without the router having
// to re-derive "who was focused" from scratch each frame.
func Build(root *instance.Instance, prev *Ring) *Ring {
	var all []*instance.Instance
	instance.Walk(root, func(n *instance.Instance) {
		if n.Broken() || n.Kind != vnode.KindFocusableLeaf {
			return
		}
		if n.VNode.Focusable.Disabled || n.VNode.Focusable.Hidden {
			return
		}
		all = append(all, n)
	})

	docPos := make(map[*instance.Instance]int, len(all))
	for i, n := range all {
		docPos[n] = i
	}

	sort.SliceStable(all, func(i, j int) bool {
		ti, tj := all[i].VNode.Focusable.TabIndex, all[j].VNode.Focusable.TabIndex
		ri, rj := tabRank(ti), tabRank(tj)
		if ri != rj {
			return ri < rj
		}
		if ri == 0 && ti != tj { // both explicit positive indices
			return ti < tj
		}
		return docPos[all[i]] < docPos[all[j]]
	})

	r := &Ring{order: all}
	if prev != nil && prev.focused != nil {
		for _, n := range all {
			if n == prev.focused {
				r.focused = n
				break
			}
		}
		r.traps = prev.traps
	}
	return r
}

// tabRank puts explicit positive tab indices (rank 0) ahead of the
// document-order group (rank 1, tab index <= 0), matching browser tab
// order semantics.
func tabRank(tabIndex int) int {
	if tabIndex > 0 {
		return 0
	}
	return 1
}

// Len reports how many focusable instances the ring holds.
func (r *Ring) Len() int { return len(r.order) }

// Focused returns the currently focused instance, or nil.
func (r *Ring) Focused() *instance.Instance { return r.focused }

// At returns the nth ring entry (bounds-checked), used by the router
// after a mouse press to check whether a clicked target is focusable.
func (r *Ring) At(i int) *instance.Instance {
	if i < 0 || i >= len(r.order) {
		return nil
	}
	return r.order[i]
}

// IndexOf returns n's position in the ring, or -1 if n isn't in it.
func (r *Ring) IndexOf(n *instance.Instance) int {
	for i, c := range r.order {
		if c == n {
			return i
		}
	}
	return -1
}

// PushTrap confines subsequent Next/Prev traversal to root's
// descendant subtree, per spec.md §4.7's modal/dialog trap stack.
func (r *Ring) PushTrap(root *instance.Instance) { r.traps = append(r.traps, root) }

// PopTrap removes the topmost trap scope.
func (r *Ring) PopTrap() {
	if len(r.traps) > 0 {
		r.traps = r.traps[:len(r.traps)-1]
	}
}

// TrapRoot returns the topmost active trap's subtree root, or nil if
// no trap is active. Exported so internal/zrev's router can confine a
// mouse drag to the same scope Next/Prev traversal already respects.
func (r *Ring) TrapRoot() *instance.Instance { return r.activeTrap() }

func (r *Ring) activeTrap() *instance.Instance {
	if len(r.traps) == 0 {
		return nil
	}
	return r.traps[len(r.traps)-1]
}

func isDescendant(n, root *instance.Instance) bool {
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

// Next moves focus to the next ring entry after the current one,
// wrapping and skipping entries outside the active trap. It returns
// the newly focused instance, or nil if the ring has no eligible
// entries.
func (r *Ring) Next() *instance.Instance { return r.step(1) }

// Prev moves focus to the previous eligible ring entry.
func (r *Ring) Prev() *instance.Instance { return r.step(-1) }

func (r *Ring) step(dir int) *instance.Instance {
	if len(r.order) == 0 {
		return nil
	}
	trap := r.activeTrap()
	start := r.IndexOf(r.focused) // -1 if nothing focused yet
	for i := 0; i < len(r.order); i++ {
		idx := mod(start+dir*(i+1), len(r.order))
		cand := r.order[idx]
		if trap != nil && !isDescendant(cand, trap) {
			continue
		}
		r.SetFocused(cand)
		return cand
	}
	return nil
}

// SetFocused focuses n directly (e.g. resolved from a mouse press),
// firing OnFocus(false) on the previously focused instance and
// OnFocus(true) on n.
func (r *Ring) SetFocused(n *instance.Instance) {
	if r.focused == n {
		return
	}
	if r.focused != nil {
		fireFocus(r.focused, false)
	}
	r.focused = n
	if n != nil {
		fireFocus(n, true)
	}
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func fireFocus(n *instance.Instance, focused bool) {
	if h := n.VNode.Handlers.OnFocus; h != nil {
		h(focused)
	}
}
