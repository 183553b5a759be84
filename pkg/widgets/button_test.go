package widgets

import (
	"testing"

	"github.com/rezi-tui/rezi/internal/reconcile"
	"github.com/rezi-tui/rezi/internal/vnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonFiresOnPressAndRendersAsFocusableLeaf(t *testing.T) {
	r := reconcile.New()
	presses := 0

	tree := &vnode.VNode{Kind: vnode.KindStack, Children: []*vnode.VNode{
		Button("go", ButtonProps{Label: "Go", OnPress: func() { presses++ }}),
	}}

	root, err := r.Reconcile(tree)
	require.NoError(t, err)

	btn := root.Children[0]
	require.Equal(t, vnode.KindFocusableLeaf, btn.VNode.Kind)
	assert.Equal(t, "Go", btn.VNode.Text.Content)

	require.NotNil(t, btn.VNode.Handlers.OnPress)
	btn.VNode.Handlers.OnPress()
	assert.Equal(t, 1, presses)
}

func TestButtonDisabledSuppressesOnPress(t *testing.T) {
	r := reconcile.New()
	presses := 0

	tree := &vnode.VNode{Kind: vnode.KindStack, Children: []*vnode.VNode{
		Button("go", ButtonProps{Label: "Go", Disabled: true, OnPress: func() { presses++ }}),
	}}
	root, err := r.Reconcile(tree)
	require.NoError(t, err)

	root.Children[0].VNode.Handlers.OnPress()
	assert.Equal(t, 0, presses)
}
