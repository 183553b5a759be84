package markup

import (
	"testing"

	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaderBoldAndHole(t *testing.T) {
	root := Parse("# Hello **World** %v")
	require.Len(t, root.Children, 1)

	block := root.Children[0]
	assert.Equal(t, NodeHeader, block.Type)
	assert.True(t, block.Style.Attrs.Has(geom.AttrInverse)) // level 1 header is reversed

	require.Len(t, block.Children, 4)
	assert.Equal(t, NodeText, block.Children[0].Type)
	assert.Equal(t, "Hello ", block.Children[0].Content)
	assert.Equal(t, NodeStyle, block.Children[1].Type)
	assert.Equal(t, NodeHole, block.Children[3].Type)
	assert.Equal(t, 0, block.Children[3].HoleID)
}

func TestToVNodeBuildsOneRowPerLine(t *testing.T) {
	root := Parse("plain text\n\nsecond paragraph")
	v := ToVNode(root, nil)
	assert.NotNil(t, v)
	assert.True(t, len(v.Children) >= 2)
}
