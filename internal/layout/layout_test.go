package layout

import (
	"testing"

	"github.com/rezi-tui/rezi/internal/instance"
	"github.com/rezi-tui/rezi/internal/vnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leafInst(w, h int, content string) *instance.Instance {
	vn := &vnode.VNode{Kind: vnode.KindText, Text: vnode.TextProps{Content: content}}
	if w > 0 {
		vn.Layout.Width = vnode.Fixed(w)
	}
	if h > 0 {
		vn.Layout.Height = vnode.Fixed(h)
	}
	inst := instance.New(vn)
	return inst
}

func TestLayoutFixedChildrenInRow(t *testing.T) {
	rowVN := &vnode.VNode{Kind: vnode.KindStack, Stack: vnode.StackProps{Direction: vnode.StackRow}}
	root := instance.New(rowVN)
	a := leafInst(5, 1, "aaaaa")
	b := leafInst(10, 1, "bbbbbbbbbb")
	root.Children = []*instance.Instance{a, b}

	eng := New()
	require.NoError(t, eng.Layout(root, 80, 24))

	assert.Equal(t, 0, a.Rect.X)
	assert.Equal(t, 5, b.Rect.X)
	assert.Equal(t, 5, a.Rect.W)
	assert.Equal(t, 10, b.Rect.W)
}

func TestLayoutFlexChildSharesRemainingSpace(t *testing.T) {
	rowVN := &vnode.VNode{Kind: vnode.KindStack, Stack: vnode.StackProps{Direction: vnode.StackRow}}
	root := instance.New(rowVN)
	fixed := leafInst(10, 1, "0123456789")
	flexVN := &vnode.VNode{Kind: vnode.KindText, Layout: vnode.LayoutProps{Width: vnode.Flex(1)}}
	flex := instance.New(flexVN)
	root.Children = []*instance.Instance{fixed, flex}

	eng := New()
	require.NoError(t, eng.Layout(root, 50, 10))

	assert.Equal(t, 40, flex.Rect.W)
	assert.Equal(t, 10, flex.Rect.X)
}

func TestLayoutWrapsTextByWord(t *testing.T) {
	vn := &vnode.VNode{Kind: vnode.KindText, Text: vnode.TextProps{Content: "hello there world", Wrap: vnode.TextWrapWord}}
	root := instance.New(vn)
	eng := New()
	require.NoError(t, eng.Layout(root, 8, 10))
	assert.True(t, root.Rect.H >= 2, "text longer than the width should wrap onto multiple lines")
}

func TestLayoutBoxDeductsPaddingAndBorder(t *testing.T) {
	boxVN := &vnode.VNode{
		Kind:   vnode.KindBox,
		Layout: vnode.LayoutProps{Padding: vnode.UniformInsets(1), Border: vnode.BorderSingle},
	}
	root := instance.New(boxVN)
	child := leafInst(0, 0, "x")
	root.Children = []*instance.Instance{child}

	eng := New()
	require.NoError(t, eng.Layout(root, 20, 20))

	assert.Equal(t, 2, child.Rect.X)
	assert.Equal(t, 2, child.Rect.Y)
}
