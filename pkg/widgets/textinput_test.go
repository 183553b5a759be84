package widgets

import (
	"testing"

	"github.com/rezi-tui/rezi/internal/reconcile"
	"github.com/rezi-tui/rezi/internal/vnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextInputInsertsBackspacesAndSubmits(t *testing.T) {
	r := reconcile.New()
	var submitted string

	tree := &vnode.VNode{Kind: vnode.KindStack, Children: []*vnode.VNode{
		TextInput("name", TextInputProps{
			Placeholder: "name",
			OnSubmit:    func(v string) { submitted = v },
		}),
	}}

	root, err := r.Reconcile(tree)
	require.NoError(t, err)
	input := root.Children[0]
	assert.Equal(t, "name", input.VNode.Text.Content, "empty value shows the placeholder")

	for _, r2 := range "hi" {
		input.VNode.Handlers.OnKey(string(r2), 0)
		root, err = r.Reconcile(tree)
		require.NoError(t, err)
		input = root.Children[0]
	}
	assert.Equal(t, "hi", input.VNode.Text.Content)

	input.VNode.Handlers.OnKey("backspace", 0)
	root, err = r.Reconcile(tree)
	require.NoError(t, err)
	input = root.Children[0]
	assert.Equal(t, "h", input.VNode.Text.Content)

	input.VNode.Handlers.OnKey("enter", 0)
	assert.Equal(t, "h", submitted)
}
