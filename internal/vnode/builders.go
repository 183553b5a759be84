package vnode

import "github.com/rezi-tui/rezi/internal/geom"

// Builder-style constructors, generalizing tui/layout_api.go's Row/Col/Box
// free functions to the full VNode union.

// Row creates a horizontal stack, per spec.md §4.3.
func Row(children ...*VNode) *VNode {
	return &VNode{Kind: KindStack, Stack: StackProps{Direction: StackRow}, Children: children, Layout: LayoutProps{Width: Auto(), Height: Auto()}}
}

// Col creates a vertical stack.
func Col(children ...*VNode) *VNode {
	return &VNode{Kind: KindStack, Stack: StackProps{Direction: StackColumn}, Children: children, Layout: LayoutProps{Width: Auto(), Height: Auto()}}
}

// Box wraps a single child with optional border and padding.
func Box(child *VNode, border BorderStyle, padding int) *VNode {
	return &VNode{
		Kind:     KindBox,
		Layout:   LayoutProps{Width: Auto(), Height: Auto(), Padding: UniformInsets(padding), Border: border},
		Children: []*VNode{child},
	}
}

// Text creates a text leaf.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: TextProps{Content: content}, Layout: LayoutProps{Width: Auto(), Height: Auto()}}
}

// Spacer creates a flexible blank leaf.
func Spacer() *VNode {
	return &VNode{Kind: KindLeaf, Leaf: LeafProps{Leaf: LeafSpacer}, Layout: LayoutProps{Width: Flex(1), Height: Flex(1)}}
}

// Divider creates a horizontal rule leaf.
func Divider() *VNode {
	return &VNode{Kind: KindLeaf, Leaf: LeafProps{Leaf: LeafDivider}, Layout: LayoutProps{Width: Auto(), Height: Fixed(1)}}
}

// Overlay wraps a child so it paints after its non-overlay siblings,
// per spec.md §8's static overlay ordering property.
func Overlay(child *VNode) *VNode {
	return &VNode{Kind: KindOverlay, Children: []*VNode{child}, Layout: LayoutProps{Position: PositionAbsolute}}
}

// WithKey sets the reconciliation key.
func (n *VNode) WithKey(key interface{}) *VNode { n.Key = key; return n }

// WithID sets the focusable id.
func (n *VNode) WithID(id string) *VNode { n.ID = id; return n }

// WithSize sets width/height constraints.
func (n *VNode) WithSize(w, h Size) *VNode { n.Layout.Width, n.Layout.Height = w, h; return n }

// WithStyle sets the node's own style.
func (n *VNode) WithStyle(s geom.TextStyle) *VNode { n.Style = s; return n }
