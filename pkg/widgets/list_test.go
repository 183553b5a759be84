package widgets

import (
	"testing"

	"github.com/rezi-tui/rezi/internal/reconcile"
	"github.com/rezi-tui/rezi/internal/vnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMovesCursorAndFiresOnSelect(t *testing.T) {
	r := reconcile.New()
	var selectedIndex int
	var selectedItem string

	tree := &vnode.VNode{Kind: vnode.KindStack, Children: []*vnode.VNode{
		List("menu", ListProps{
			Items: []string{"alpha", "beta", "gamma"},
			OnSelect: func(i int, item string) {
				selectedIndex = i
				selectedItem = item
			},
		}),
	}}

	root, err := r.Reconcile(tree)
	require.NoError(t, err)
	stack := root.Children[0]
	require.Len(t, stack.Children, 4, "cursor row plus 3 item rows")
	assert.Equal(t, "> alpha", stack.Children[1].VNode.Text.Content)

	cursorRow := stack.Children[0]
	cursorRow.VNode.Handlers.OnKey("arrowdown", 0)
	root, err = r.Reconcile(tree)
	require.NoError(t, err)
	stack = root.Children[0]
	assert.Equal(t, "> beta", stack.Children[2].VNode.Text.Content)

	stack.Children[0].VNode.Handlers.OnKey("enter", 0)
	assert.Equal(t, 1, selectedIndex)
	assert.Equal(t, "beta", selectedItem)
}
