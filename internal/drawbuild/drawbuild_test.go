package drawbuild

import (
	"testing"

	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/instance"
	"github.com/rezi-tui/rezi/internal/layout"
	"github.com/rezi-tui/rezi/internal/vnode"
	"github.com/rezi-tui/rezi/internal/zrdl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmitsClearAndText(t *testing.T) {
	tree := vnode.Col(vnode.Text("hello"))
	root := instance.New(tree)
	root.Children = []*instance.Instance{instance.New(tree.Children[0])}

	eng := layout.New()
	require.NoError(t, eng.Layout(root, 20, 5))

	out := zrdl.NewBuilder()
	New(out).Build(root)

	doc := out.Build()
	require.NotEmpty(t, doc.Commands)
	assert.Equal(t, zrdl.OpClear, doc.Commands[0].Op)

	var sawText bool
	for _, c := range doc.Commands {
		if c.Op == zrdl.OpDrawText {
			sawText = true
		}
	}
	assert.True(t, sawText)
}

func TestBuildPaintsBoxBackground(t *testing.T) {
	tree := &vnode.VNode{Kind: vnode.KindBox, Box: vnode.BoxProps{BG: geom.Indexed(4)}}
	root := instance.New(tree)

	eng := layout.New()
	require.NoError(t, eng.Layout(root, 10, 4))

	out := zrdl.NewBuilder()
	New(out).Build(root)

	doc := out.Build()
	var sawFill bool
	for _, c := range doc.Commands {
		if c.Op == zrdl.OpFillRect {
			sawFill = true
		}
	}
	assert.True(t, sawFill)
}
