package reconcile

import (
	"testing"

	"github.com/rezi-tui/rezi/internal/vnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(key interface{}, content string) *vnode.VNode {
	return &vnode.VNode{Kind: vnode.KindText, Key: key, Text: vnode.TextProps{Content: content}}
}

func TestReconcileMountsFreshTree(t *testing.T) {
	r := New()
	tree := &vnode.VNode{Kind: vnode.KindStack, Children: []*vnode.VNode{text(nil, "a"), text(nil, "b")}}

	root, err := r.Reconcile(tree)
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	assert.Equal(t, vnode.KindText, root.Children[0].Kind)
}

func TestReconcileKeepsInstanceIdentityByKey(t *testing.T) {
	r := New()
	first := &vnode.VNode{Kind: vnode.KindStack, Children: []*vnode.VNode{text("x", "a"), text("y", "b")}}
	root1, err := r.Reconcile(first)
	require.NoError(t, err)
	xInst := root1.Children[0]

	second := &vnode.VNode{Kind: vnode.KindStack, Children: []*vnode.VNode{text("y", "b"), text("x", "a")}}
	root2, err := r.Reconcile(second)
	require.NoError(t, err)

	assert.Same(t, xInst, root2.Children[1], "reordering by key should move the same instance, not remount it")
}

func TestReconcileUnmountsRemovedChildren(t *testing.T) {
	r := New()
	disposed := false
	withHook := &vnode.VNode{
		Kind: vnode.KindComposite,
		Key:  "comp",
		Render: func(interface{}) *vnode.VNode {
			UseEffect(func() func() {
				return func() { disposed = true }
			}, nil)
			return text(nil, "child")
		},
	}
	first := &vnode.VNode{Kind: vnode.KindStack, Children: []*vnode.VNode{withHook}}
	_, err := r.Reconcile(first)
	require.NoError(t, err)
	assert.False(t, disposed)

	second := &vnode.VNode{Kind: vnode.KindStack}
	_, err = r.Reconcile(second)
	require.NoError(t, err)
	assert.True(t, disposed, "removing a composite child should run its effect cleanup")
}

func TestReconcileDetectsDuplicateID(t *testing.T) {
	r := New()
	tree := &vnode.VNode{Kind: vnode.KindStack, Children: []*vnode.VNode{
		{Kind: vnode.KindFocusableLeaf, ID: "dup"},
		{Kind: vnode.KindFocusableLeaf, ID: "dup"},
	}}

	_, err := r.Reconcile(tree)
	require.Error(t, err)
}

func TestReconcileDetectsHookOrderMismatch(t *testing.T) {
	r := New()
	calls := 0
	comp := &vnode.VNode{
		Kind: vnode.KindComposite,
		Render: func(interface{}) *vnode.VNode {
			calls++
			if calls == 1 {
				UseState(0)
			} else {
				UseState(0)
				UseState(0)
			}
			return text(nil, "x")
		},
	}

	_, err := r.Reconcile(&vnode.VNode{Kind: vnode.KindStack, Children: []*vnode.VNode{comp}})
	require.NoError(t, err)

	_, err = r.Reconcile(&vnode.VNode{Kind: vnode.KindStack, Children: []*vnode.VNode{comp}})
	require.Error(t, err)
}

func TestUseStateOutsideRenderPanicsAsError(t *testing.T) {
	assert.Panics(t, func() {
		UseState(0)
	})
}
