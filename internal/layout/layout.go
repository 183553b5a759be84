// Package layout implements the constraint-based layout engine (C3):
// a two-pass measure/arrange walk over an instance tree that fills in
// each Instance's Rect, ClipRect, and StabilitySig, per spec.md §4.3.
//
// It generalizes the teacher's tui/layout_engine.go Measure/Draw pair:
// the fixed/auto/flex three-bucket sizing pass and the running-cursor
// child placement are kept, but extended from a single Row/Column
// LayoutNode to the full KindStack/KindGrid/KindBox/KindLeaf/
// KindOverlay/KindFocusableLeaf shape of internal/vnode, plus gap,
// alignment/justification, wrapping, padding+border box model, overflow
// clipping, scrollable viewports, absolute positioning, and per-instance
// layout stability signatures.
package layout

import (
	"hash/fnv"

	"github.com/pkg/errors"
	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/grapheme"
	"github.com/rezi-tui/rezi/internal/instance"
	"github.com/rezi-tui/rezi/internal/rezierr"
	"github.com/rezi-tui/rezi/internal/vnode"
)

// MaxTreeDepth is the hard failure threshold for total instance-tree
// nesting (distinct from reconcile.MaxCompositeDepth, which counts only
// composite expansions), per spec.md §4.3/§7.
const MaxTreeDepth = 500

// SoftWarnTreeDepth is the point at which layout logs a warning but
// keeps going.
const SoftWarnTreeDepth = 200

// Engine runs the measure/arrange pass over a reconciled instance tree.
type Engine struct {
	onWarn    func(msg string)
	sizeCache map[*instance.Instance]box
}

// New creates a layout Engine.
func New() *Engine {
	return &Engine{onWarn: func(string) {}, sizeCache: make(map[*instance.Instance]box)}
}

// OnWarn installs the soft-depth-threshold warning callback.
func (e *Engine) OnWarn(fn func(msg string)) { e.onWarn = fn }

// Layout measures and arranges root within a viewport of the given
// size, writing Rect/ClipRect/StabilitySig into every visited Instance.
func (e *Engine) Layout(root *instance.Instance, viewportW, viewportH int) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if rerr, ok := p.(*rezierr.Error); ok {
				err = rerr
				return
			}
			panic(p)
		}
	}()
	if root == nil {
		return nil
	}
	e.sizeCache = make(map[*instance.Instance]box)
	clip := geom.Rect{X: 0, Y: 0, W: viewportW, H: viewportH}
	e.measure(root, viewportW, viewportH, 0)
	e.arrange(root, 0, 0, clip, 0)
	return nil
}

type box struct{ w, h int }

// measure computes each instance's own content box size bottom-up,
// returning it. Composite instances transparently measure their single
// synthetic child and adopt its size.
func (e *Engine) measure(n *instance.Instance, constraintW, constraintH, depth int) box {
	checkDepth(e, depth)

	vn := n.VNode
	if vn == nil {
		return box{}
	}

	var sz box
	switch {
	case vn.IsComposite():
		if len(n.Children) == 1 {
			sz = e.measure(n.Children[0], constraintW, constraintH, depth+1)
		}
	case vn.Kind == vnode.KindText || vn.Kind == vnode.KindLeaf:
		sz = e.measureLeaf(n, constraintW, constraintH)
	case vn.Kind == vnode.KindBox || vn.Kind == vnode.KindOverlay || vn.Kind == vnode.KindFocusableLeaf:
		sz = e.measureBox(n, constraintW, constraintH, depth)
	case vn.Kind == vnode.KindStack:
		sz = e.measureStack(n, constraintW, constraintH, depth)
	case vn.Kind == vnode.KindGrid:
		sz = e.measureGrid(n, constraintW, constraintH, depth)
	}
	n.StabilitySig = childSig(n)
	e.sizeCache[n] = sz
	return sz
}

func checkDepth(e *Engine, depth int) {
	if depth == SoftWarnTreeDepth {
		e.onWarn("layout tree depth exceeds soft warning threshold")
	}
	if depth > MaxTreeDepth {
		panic(rezierr.New(rezierr.DepthExceeded, "", errors.Errorf("instance tree depth exceeded %d", MaxTreeDepth)))
	}
}

func (e *Engine) measureLeaf(n *instance.Instance, constraintW, constraintH int) box {
	vn := n.VNode
	if vn.Kind == vnode.KindLeaf {
		switch vn.Leaf.Leaf {
		case vnode.LeafDivider:
			return resolveSize(vn.Layout.Width, vn.Layout.Height, constraintW, constraintH, box{constraintW, 1})
		default: // spacer
			return resolveSize(vn.Layout.Width, vn.Layout.Height, constraintW, constraintH, box{0, 0})
		}
	}
	lines := wrapText(vn.Text.Content, vn.Text.Wrap, constraintW)
	w := 0
	for _, l := range lines {
		if lw := grapheme.StringWidth(l); lw > w {
			w = lw
		}
	}
	h := len(lines)
	return resolveSize(vn.Layout.Width, vn.Layout.Height, constraintW, constraintH, box{w, h})
}

func wrapText(s string, policy vnode.TextWrapPolicy, maxW int) []string {
	if maxW <= 0 {
		maxW = 1 << 30
	}
	var out []string
	for _, raw := range splitLines(s) {
		if policy == vnode.TextWrapNone || grapheme.StringWidth(raw) <= maxW {
			out = append(out, raw)
			continue
		}
		out = append(out, wrapLine(raw, policy, maxW)...)
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func wrapLine(s string, policy vnode.TextWrapPolicy, maxW int) []string {
	var lines []string
	switch policy {
	case vnode.TextWrapWord:
		words := splitWords(s)
		cur := ""
		curW := 0
		for _, w := range words {
			ww := grapheme.StringWidth(w)
			sep := 0
			if cur != "" {
				sep = 1
			}
			if curW+sep+ww > maxW && cur != "" {
				lines = append(lines, cur)
				cur, curW = w, ww
				continue
			}
			if cur != "" {
				cur += " "
				curW++
			}
			cur += w
			curW += ww
		}
		if cur != "" {
			lines = append(lines, cur)
		}
	default: // char / grapheme
		clusters := grapheme.Segment(s)
		cur := ""
		curW := 0
		for _, c := range clusters {
			if curW+c.Width > maxW && cur != "" {
				lines = append(lines, cur)
				cur, curW = "", 0
			}
			cur += c.Text
			curW += c.Width
		}
		if cur != "" || len(lines) == 0 {
			lines = append(lines, cur)
		}
	}
	return lines
}

func splitWords(s string) []string {
	var words []string
	cur := ""
	for _, r := range s {
		if r == ' ' {
			if cur != "" {
				words = append(words, cur)
				cur = ""
			}
			continue
		}
		cur += string(r)
	}
	if cur != "" {
		words = append(words, cur)
	}
	return words
}

// resolveSize applies explicit Width/Height overrides over a measured
// natural content size.
func resolveSize(w, h vnode.Size, constraintW, constraintH int, natural box) box {
	out := natural
	switch w.Kind {
	case vnode.SizeFixed:
		out.w = int(w.Value)
	case vnode.SizePercent:
		out.w = int(float64(constraintW) * w.Value / 100)
	case vnode.SizeFlex:
		out.w = constraintW
	}
	switch h.Kind {
	case vnode.SizeFixed:
		out.h = int(h.Value)
	case vnode.SizePercent:
		out.h = int(float64(constraintH) * h.Value / 100)
	case vnode.SizeFlex:
		out.h = constraintH
	}
	if out.w > constraintW && w.Kind != vnode.SizeFixed {
		out.w = constraintW
	}
	if out.h > constraintH && h.Kind != vnode.SizeFixed {
		out.h = constraintH
	}
	if out.w < 0 {
		out.w = 0
	}
	if out.h < 0 {
		out.h = 0
	}
	return out
}

func (e *Engine) measureBox(n *instance.Instance, constraintW, constraintH, depth int) box {
	vn := n.VNode
	pad := vn.Layout.Padding
	borderW := 0
	if vn.Layout.Border != vnode.BorderNone {
		borderW = 1
	}
	hDeduct := pad.Left + pad.Right + 2*borderW
	vDeduct := pad.Top + pad.Bottom + 2*borderW

	innerW := max0(constraintW - hDeduct)
	innerH := max0(constraintH - vDeduct)

	var contentW, contentH int
	for _, c := range n.Children {
		sz := e.measure(c, innerW, innerH, depth+1)
		if sz.w > contentW {
			contentW = sz.w
		}
		if sz.h > contentH {
			contentH = sz.h
		}
	}

	natural := box{contentW + hDeduct, contentH + vDeduct}
	return resolveSize(vn.Layout.Width, vn.Layout.Height, constraintW, constraintH, natural)
}

func (e *Engine) measureStack(n *instance.Instance, constraintW, constraintH, depth int) box {
	vn := n.VNode
	pad := vn.Layout.Padding
	borderW := 0
	if vn.Layout.Border != vnode.BorderNone {
		borderW = 1
	}
	hDeduct := pad.Left + pad.Right + 2*borderW
	vDeduct := pad.Top + pad.Bottom + 2*borderW
	innerW := max0(constraintW - hDeduct)
	innerH := max0(constraintH - vDeduct)

	row := vn.Stack.Direction == vnode.StackRow
	gap := vn.Layout.Gap

	sizes := make([]box, len(n.Children))
	var totalMain, maxCross int
	var totalFlexWeight float64
	gapTotal := 0
	if len(n.Children) > 1 {
		gapTotal = gap * (len(n.Children) - 1)
	}

	mainAvail := innerW
	if !row {
		mainAvail = innerH
	}
	mainAvail = max0(mainAvail - gapTotal)

	for i, c := range n.Children {
		cv := c.VNode
		flexSize := vnode.Auto()
		if cv != nil {
			if row {
				flexSize = cv.Layout.Width
			} else {
				flexSize = cv.Layout.Height
			}
		}
		if flexSize.Kind == vnode.SizeFlex {
			totalFlexWeight += flexSize.Value
			continue
		}
		cw, ch := innerW, innerH
		if row {
			cw = mainAvail
		} else {
			ch = mainAvail
		}
		sz := e.measure(c, cw, ch, depth+1)
		sizes[i] = sz
		if row {
			totalMain += sz.w
			if sz.h > maxCross {
				maxCross = sz.h
			}
		} else {
			totalMain += sz.h
			if sz.w > maxCross {
				maxCross = sz.w
			}
		}
	}

	remaining := max0(mainAvail - totalMain)
	for i, c := range n.Children {
		cv := c.VNode
		flexSize := vnode.Auto()
		if cv != nil {
			if row {
				flexSize = cv.Layout.Width
			} else {
				flexSize = cv.Layout.Height
			}
		}
		if flexSize.Kind != vnode.SizeFlex {
			continue
		}
		share := 0
		if totalFlexWeight > 0 {
			share = int(float64(remaining) * flexSize.Value / totalFlexWeight)
		}
		cw, ch := innerW, innerH
		if row {
			cw = share
		} else {
			ch = share
		}
		sz := e.measure(c, cw, ch, depth+1)
		sizes[i] = sz
		if row {
			totalMain += sz.w
			if sz.h > maxCross {
				maxCross = sz.h
			}
		} else {
			totalMain += sz.h
			if sz.w > maxCross {
				maxCross = sz.w
			}
		}
	}

	var natural box
	if row {
		natural = box{totalMain + gapTotal + hDeduct, maxCross + vDeduct}
	} else {
		natural = box{maxCross + hDeduct, totalMain + gapTotal + vDeduct}
	}
	return resolveSize(vn.Layout.Width, vn.Layout.Height, constraintW, constraintH, natural)
}

func (e *Engine) measureGrid(n *instance.Instance, constraintW, constraintH, depth int) box {
	vn := n.VNode
	cols := vn.Grid.Columns
	rows := vn.Grid.Rows
	if len(cols) == 0 {
		cols = []vnode.GridTrack{{Size: vnode.Flex(1)}}
	}
	colW := make([]int, len(cols))
	fixedW := 0
	flexTotal := 0.0
	for i, t := range cols {
		if t.Size.Kind == vnode.SizeFixed {
			colW[i] = int(t.Size.Value)
			fixedW += colW[i]
		} else {
			flexTotal += t.Size.Value
		}
	}
	remaining := max0(constraintW - fixedW)
	for i, t := range cols {
		if t.Size.Kind == vnode.SizeFlex {
			if flexTotal > 0 {
				colW[i] = int(float64(remaining) * t.Size.Value / flexTotal)
			}
		}
	}

	rowCount := len(rows)
	if rowCount == 0 {
		rowCount = (len(n.Children) + len(cols) - 1) / max1(len(cols))
	}
	rowH := make([]int, rowCount)
	for i := range rowH {
		if i < len(rows) && rows[i].Size.Kind == vnode.SizeFixed {
			rowH[i] = int(rows[i].Size.Value)
		} else {
			rowH[i] = 1
		}
	}

	sizes := make([]box, len(n.Children))
	autoIdx := 0
	for i, c := range n.Children {
		col, rowI := gridCellFor(c.VNode, i, len(cols), &autoIdx)
		cw := 1
		if col < len(colW) {
			cw = colW[col]
		}
		ch := 1
		if rowI < len(rowH) {
			ch = rowH[rowI]
		}
		sz := e.measure(c, cw, ch, depth+1)
		sizes[i] = sz
		if rowI < len(rowH) && sz.h > rowH[rowI] {
			rowH[rowI] = sz.h
		}
	}
	totalW := 0
	for _, w := range colW {
		totalW += w
	}
	totalH := 0
	for _, h := range rowH {
		totalH += h
	}
	return resolveSize(vn.Layout.Width, vn.Layout.Height, constraintW, constraintH, box{totalW, totalH})
}

func gridCellFor(vn *vnode.VNode, childIdx, numCols int, autoIdx *int) (col, row int) {
	if vn != nil && !vn.Placement.AutoPlace && (vn.Placement.ColumnStart != 0 || vn.Placement.RowStart != 0) {
		return vn.Placement.ColumnStart, vn.Placement.RowStart
	}
	c := *autoIdx % numCols
	r := *autoIdx / numCols
	*autoIdx++
	return c, r
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// childSig computes the FNV-1a stability signature of n from its kind,
// its key (when the key is a string), and the kinds of its direct
// children. Layout props, measured sizes and the viewport are not part
// of the hash.
func childSig(n *instance.Instance) uint64 {
	h := fnv.New64a()
	h.Write([]byte{byte(n.Kind)})
	if n.Key != nil {
		h.Write([]byte(toStr(n.Key)))
	}
	for _, c := range n.Children {
		h.Write([]byte{byte(c.Kind)})
	}
	return h.Sum64()
}

func toStr(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
