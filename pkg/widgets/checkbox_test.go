package widgets

import (
	"testing"

	"github.com/rezi-tui/rezi/internal/reconcile"
	"github.com/rezi-tui/rezi/internal/vnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckboxTogglesOnPressAndSpace(t *testing.T) {
	r := reconcile.New()
	var last bool
	changes := 0

	tree := &vnode.VNode{Kind: vnode.KindStack, Children: []*vnode.VNode{
		Checkbox("agree", CheckboxProps{Label: "I agree", OnChange: func(c bool) { last = c; changes++ }}),
	}}
	root, err := r.Reconcile(tree)
	require.NoError(t, err)

	cb := root.Children[0]
	assert.Equal(t, "[ ] I agree", cb.VNode.Text.Content)

	cb.VNode.Handlers.OnPress()
	assert.True(t, last)
	assert.Equal(t, 1, changes)

	root, err = r.Reconcile(tree)
	require.NoError(t, err)
	cb = root.Children[0]
	assert.Equal(t, "[x] I agree", cb.VNode.Text.Content)

	consumed := cb.VNode.Handlers.OnKey(" ", 0)
	assert.True(t, consumed)
	assert.Equal(t, 2, changes)
	assert.False(t, last)
}
