package geom

// Attr is a bitset of text attributes, generalizing the teacher's
// basement.Style boolean fields (Bold/Dim/Italic/Underline/Strike/Reverse/
// Blink) into the single bitset spec.md §3 calls for, plus Overline and
// Inverse which the teacher did not have.
type Attr uint16

const (
	AttrBold Attr = 1 << iota
	AttrItalic
	AttrUnderline
	AttrStrikethrough
	AttrOverline
	AttrBlink
	AttrDim
	AttrInverse
)

func (a Attr) Has(f Attr) bool { return a&f != 0 }
func (a Attr) With(f Attr) Attr { return a | f }
func (a Attr) Without(f Attr) Attr { return a &^ f }

// TextStyle is the union of color, attribute bitset, and an optional
// hyperlink target, per spec.md §3.
type TextStyle struct {
	Fg, Bg  Color
	Attrs   Attr
	LinkURI string // OSC 8 target, empty when not a hyperlink
}

// Merge layers child over parent the way the teacher's tui/render.go
// mergeStyles did for nested style spans: attributes OR together, colors
// and the hyperlink fall back to the parent when unset on the child.
func (parent TextStyle) Merge(child TextStyle) TextStyle {
	out := TextStyle{
		Fg:      child.Fg,
		Bg:      child.Bg,
		Attrs:   parent.Attrs | child.Attrs,
		LinkURI: child.LinkURI,
	}
	if out.Fg == (Color{}) {
		out.Fg = parent.Fg
	}
	if out.Bg == (Color{}) {
		out.Bg = parent.Bg
	}
	if out.LinkURI == "" {
		out.LinkURI = parent.LinkURI
	}
	return out
}

// Rect is an integer cell rectangle, closed-open: columns [X, X+W), rows
// [Y, Y+H).
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether other is fully inside r.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.W <= r.X+r.W && other.Y+other.H <= r.Y+r.H
}

// Intersect returns the intersection of r and o; the result may have
// non-positive W/H if they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
