// Package vnode defines the VNode discriminated union produced by a view
// function each frame, per spec.md §3. It generalizes the teacher's
// tui.LayoutNode (which only knew Row/Column/Box) into the full kind set
// and capability-trait model described in spec.md §9.
package vnode

import "github.com/rezi-tui/rezi/internal/geom"

// Kind discriminates the VNode variant, per spec.md §3.
type Kind uint8

const (
	KindText Kind = iota
	KindBox
	KindStack
	KindGrid
	KindLeaf
	KindOverlay
	KindFocusableLeaf
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBox:
		return "box"
	case KindStack:
		return "stack"
	case KindGrid:
		return "grid"
	case KindLeaf:
		return "leaf"
	case KindOverlay:
		return "overlay"
	case KindFocusableLeaf:
		return "focusable-leaf"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Capability is a trait a VNode kind may declare, replacing the
// inheritance hierarchy a source widget tree would use — spec.md §9.
type Capability uint8

const (
	CapFocusable Capability = 1 << iota
	CapInteractive
	CapHasTextContent
	CapPaintsBackground
)

// Capabilities reports which traits a VNode's Kind supports. The
// reconciler and router query this instead of a type hierarchy.
func (n *VNode) Capabilities() Capability {
	var c Capability
	if n.Box.BG != geom.Default || n.Kind == KindBox {
		c |= CapPaintsBackground
	}
	switch n.Kind {
	case KindFocusableLeaf:
		c |= CapFocusable | CapInteractive
	case KindText, KindLeaf:
		c |= CapHasTextContent
	}
	if n.Handlers.OnPress != nil || n.Handlers.OnKey != nil {
		c |= CapInteractive
	}
	return c
}

// StackDirection selects row/column flow for KindStack, per spec.md §4.3.
type StackDirection uint8

const (
	StackRow StackDirection = iota
	StackColumn
)

// WrapPolicy controls stack wrapping, per spec.md §4.3.
type WrapPolicy uint8

const (
	WrapNone WrapPolicy = iota
	WrapWrap
	WrapWrapReverse
)

// TextWrapPolicy controls leaf text wrapping, per spec.md §4.3.
type TextWrapPolicy uint8

const (
	TextWrapNone TextWrapPolicy = iota
	TextWrapChar
	TextWrapWord
	TextWrapGrapheme
)

// Overflow controls clipping/scrolling of a Box, per spec.md §4.3.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
)

// Position selects relative vs absolute positioning, per spec.md §3.
type Position uint8

const (
	PositionRelative Position = iota
	PositionAbsolute
)

// SizeKind is how a dimension is resolved, generalizing the teacher's
// tui.SizeType.
type SizeKind uint8

const (
	SizeAuto SizeKind = iota
	SizeFixed
	SizeFlex
	SizePercent
)

// Size is a single-dimension constraint.
type Size struct {
	Kind  SizeKind
	Value float64 // cells for Fixed, weight for Flex, 0..100 for Percent
}

func Fixed(n int) Size    { return Size{Kind: SizeFixed, Value: float64(n)} }
func Flex(weight int) Size { return Size{Kind: SizeFlex, Value: float64(weight)} }
func Percent(p float64) Size { return Size{Kind: SizePercent, Value: p} }
func Auto() Size { return Size{Kind: SizeAuto} }

// EdgeInsets is padding/margin/border width per side.
type EdgeInsets struct{ Top, Right, Bottom, Left int }

func UniformInsets(n int) EdgeInsets { return EdgeInsets{n, n, n, n} }

// BorderStyle names the Unicode box-drawing glyph set used for a Box's
// border, decoupled from child style inheritance per spec.md §4.2.
type BorderStyle uint8

const (
	BorderNone BorderStyle = iota
	BorderSingle
	BorderDouble
	BorderRounded
	BorderThick
)

// LayoutProps holds the layout-relevant properties common to most kinds,
// generalizing tui.LayoutNode's Direction/Width/Height/Padding/Border.
type LayoutProps struct {
	Width, Height   Size
	FlexGrow        float64
	FlexShrink      float64
	FlexBasis       Size
	Gap             int
	Padding         EdgeInsets
	Margin          EdgeInsets
	Border          BorderStyle
	Overflow        Overflow
	Position        Position
	AlignSelf       Align
	Left, Top       *int // set only when Position == PositionAbsolute
}

// Align controls cross-axis alignment ("items") or main-axis
// distribution ("justify"), per spec.md §4.3.
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
	AlignSpaceBetween
	AlignSpaceAround
)

// StackProps is KindStack-specific.
type StackProps struct {
	Direction StackDirection
	Wrap      WrapPolicy
	Items     Align // cross-axis
	Justify   Align // main-axis
}

// GridTrack is one explicit track size for KindGrid.
type GridTrack struct {
	Size Size
}

// GridPlacement is a child's explicit grid position.
type GridPlacement struct {
	RowStart, RowSpan       int
	ColumnStart, ColumnSpan int
	AutoPlace               bool
}

// GridProps is KindGrid-specific.
type GridProps struct {
	Rows    []GridTrack
	Columns []GridTrack
}

// BoxProps is KindBox-specific: a single child with its own background.
type BoxProps struct {
	BG geom.Color
}

// LeafKind distinguishes spacer/divider leaves.
type LeafKind uint8

const (
	LeafSpacer LeafKind = iota
	LeafDivider
)

// LeafProps is KindLeaf-specific.
type LeafProps struct {
	Leaf LeafKind
}

// TextProps is KindText-specific.
type TextProps struct {
	Content string
	Wrap    TextWrapPolicy
	// Lang, when non-empty, marks this text node as a fenced code block
	// to be rendered through internal/drawbuild/highlight instead of a
	// single flat style.
	Lang string
}

// FocusableProps is KindFocusableLeaf-specific: buttons, inputs, etc.
type FocusableProps struct {
	TabIndex int // explicit tab order; 0 means "document order"
	Disabled bool
	Hidden   bool
	Widget   string // catalog widget name (e.g. "button", "input") — opaque to the core
}

// CanvasProps is the opaque sub-cell raster payload for a Leaf/Box node
// that paints a canvas (braille/sextant/quadrant/halfblock/ASCII).
type CanvasProps struct {
	PxW, PxH int
	Payload  []byte
	Blitter  uint8
}

// ImageProps is the opaque inline-graphics payload.
type ImageProps struct {
	PxW, PxH      int
	Payload       []byte
	ImageID       uint32
	Format        uint8
	Protocol      uint8
	Fit           uint8
}

// Handlers holds references to event handlers a VNode registers. The
// core never inspects their bodies; it only knows whether a slot is
// populated (for capability/consumption purposes).
type Handlers struct {
	OnPress func()
	OnKey   func(key string, mods uint16) bool // returns true if consumed
	OnFocus func(focused bool)
}

// RenderFunc is a composite node's render body: given props, it returns
// a fresh child VNode tree.
type RenderFunc func(props interface{}) *VNode

// VNode is the discriminated variant described in spec.md §3.
type VNode struct {
	Kind Kind
	Key  interface{} // optional; nil means "use position as implicit key"
	ID   string       // optional; must be unique across the tree for focusable kinds

	Layout LayoutProps
	Style  geom.TextStyle

	Stack     StackProps
	Grid      GridProps
	Box       BoxProps
	Leaf      LeafProps
	Text      TextProps
	Focusable FocusableProps
	Canvas    *CanvasProps
	Image     *ImageProps
	Placement GridPlacement

	Handlers Handlers
	Children []*VNode

	// Composite-only fields.
	Render     RenderFunc
	Props      interface{}
	IdentityID string // stable identity across renders for the same composite call site
}

// IsComposite reports whether n is a composite node (has a Render body).
func (n *VNode) IsComposite() bool { return n.Kind == KindComposite && n.Render != nil }
