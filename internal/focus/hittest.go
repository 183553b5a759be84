package focus

import (
	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/instance"
	"github.com/rezi-tui/rezi/internal/vnode"
)

// HitTest maps cell coordinates to the deepest instance with a
// registered hit region, per spec.md §4.7.
type HitTest struct {
	root *instance.Instance
}

// BuildHitTest captures root for later point queries. Unlike Ring,
// which flattens into a slice up front, hit-testing descends the tree
// on each query: internal/layout's arrange pass already translated
// every child Rect into viewport space (subtracting a scrolled Box's
// ScrollX/ScrollY when it positioned children, see arrangeBox), so a
// plain top-down Rect-containment walk here already honors scrolled
// viewports without any extra coordinate translation at query time.
func BuildHitTest(root *instance.Instance) *HitTest { return &HitTest{root: root} }

// hasHitRegion reports whether n is a valid hit-test target: a
// focusable leaf, or any node that registered a press/key handler.
func hasHitRegion(n *instance.Instance) bool {
	if n.VNode == nil {
		return false
	}
	return n.VNode.Capabilities()&vnode.CapInteractive != 0
}

// At returns the deepest instance whose clip rect contains (x, y) and
// that declared a hit region, or nil if none does. Traversal stops
// descending into a subtree once x,y falls outside its ClipRect, since
// nothing under a clipped-out ancestor can be visible there.
func (h *HitTest) At(x, y int) *instance.Instance {
	return hitTestWalk(h.root, x, y, nil)
}

func hitTestWalk(n *instance.Instance, x, y int, best *instance.Instance) *instance.Instance {
	if n == nil || n.Broken() {
		return best
	}
	if !n.ClipRect.Empty() && !containsPoint(n.ClipRect, x, y) {
		return best
	}
	if containsPoint(n.Rect, x, y) && hasHitRegion(n) {
		best = n
	}
	for _, c := range n.Children {
		best = hitTestWalk(c, x, y, best)
	}
	return best
}

func containsPoint(r geom.Rect, x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
