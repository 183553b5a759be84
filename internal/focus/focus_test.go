package focus

import (
	"testing"

	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/instance"
	"github.com/rezi-tui/rezi/internal/vnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(x, y, w, h int) geom.Rect { return geom.Rect{X: x, Y: y, W: w, H: h} }

func focusable(id string, tabIndex int, disabled bool) *instance.Instance {
	vn := &vnode.VNode{
		Kind: vnode.KindFocusableLeaf,
		ID:   id,
		Focusable: vnode.FocusableProps{
			TabIndex: tabIndex,
			Disabled: disabled,
			Widget:   "button",
		},
	}
	return &instance.Instance{Kind: vn.Kind, ID: id, VNode: vn, RenderedHookCount: -1}
}

func withChildren(root *instance.Instance, children ...*instance.Instance) *instance.Instance {
	root.Children = children
	for _, c := range children {
		c.Parent = root
	}
	return root
}

func TestBuildOrdersByDocumentPositionWhenNoTabIndex(t *testing.T) {
	a, b, c := focusable("a", 0, false), focusable("b", 0, false), focusable("c", 0, false)
	root := withChildren(&instance.Instance{RenderedHookCount: -1}, a, b, c)

	ring := Build(root, nil)
	require.Equal(t, 3, ring.Len())
	assert.Equal(t, a, ring.At(0))
	assert.Equal(t, b, ring.At(1))
	assert.Equal(t, c, ring.At(2))
}

func TestBuildSkipsDisabled(t *testing.T) {
	a, b := focusable("a", 0, false), focusable("b", 0, true)
	root := withChildren(&instance.Instance{RenderedHookCount: -1}, a, b)

	ring := Build(root, nil)
	assert.Equal(t, 1, ring.Len())
	assert.Equal(t, a, ring.At(0))
}

func TestBuildOrdersExplicitTabIndexFirst(t *testing.T) {
	a, b, c := focusable("a", 0, false), focusable("b", 2, false), focusable("c", 1, false)
	root := withChildren(&instance.Instance{RenderedHookCount: -1}, a, b, c)

	ring := Build(root, nil)
	require.Equal(t, 3, ring.Len())
	assert.Equal(t, c, ring.At(0)) // tab index 1
	assert.Equal(t, b, ring.At(1)) // tab index 2
	assert.Equal(t, a, ring.At(2)) // document order, no explicit index
}

func TestNextWrapsAndPrevWraps(t *testing.T) {
	a, b := focusable("a", 0, false), focusable("b", 0, false)
	root := withChildren(&instance.Instance{RenderedHookCount: -1}, a, b)
	ring := Build(root, nil)

	assert.Equal(t, a, ring.Next())
	assert.Equal(t, b, ring.Next())
	assert.Equal(t, a, ring.Next(), "Next should wrap back to the first entry")
	assert.Equal(t, b, ring.Prev(), "Prev should wrap back to the last entry")
}

func TestBuildCarriesForwardFocusedInstanceByIdentity(t *testing.T) {
	a, b := focusable("a", 0, false), focusable("b", 0, false)
	root := withChildren(&instance.Instance{RenderedHookCount: -1}, a, b)
	ring := Build(root, nil)
	ring.SetFocused(b)

	next := Build(root, ring)
	assert.Equal(t, b, next.Focused(), "re-render without unmounting b should keep it focused")
}

func TestTrapConfinesTraversal(t *testing.T) {
	inTrap := focusable("in", 0, false)
	outTrap := focusable("out", 0, false)
	trapRoot := withChildren(&instance.Instance{RenderedHookCount: -1}, inTrap)
	root := withChildren(&instance.Instance{RenderedHookCount: -1}, trapRoot, outTrap)

	ring := Build(root, nil)
	ring.PushTrap(trapRoot)

	assert.Equal(t, inTrap, ring.Next())
	assert.Equal(t, inTrap, ring.Next(), "traversal should stay confined to the trap even with only one eligible entry")
}

func TestHitTestFindsDeepestInteractiveTarget(t *testing.T) {
	leaf := focusable("leaf", 0, false)
	leaf.Rect = rect(2, 2, 4, 2)
	leaf.ClipRect = leaf.Rect
	root := withChildren(&instance.Instance{RenderedHookCount: -1}, leaf)
	root.Rect = rect(0, 0, 10, 10)
	root.ClipRect = root.Rect

	ht := BuildHitTest(root)
	assert.Equal(t, leaf, ht.At(3, 2))
	assert.Nil(t, ht.At(0, 0))
}
