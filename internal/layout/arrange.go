package layout

import (
	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/instance"
	"github.com/rezi-tui/rezi/internal/vnode"
)

// arrange assigns n.Rect/n.ClipRect from the already-measured size cache
// and recurses into children, placing them according to the node's kind,
// matching the cursor-advance placement of the teacher's LayoutNode.Draw
// but generalized with gap, alignment/justification, absolute
// positioning, and overflow clipping.
func (e *Engine) arrange(n *instance.Instance, x, y int, parentClip geom.Rect, depth int) {
	checkDepth(e, depth)

	sz := e.sizeCache[n]
	n.Rect = geom.Rect{X: x, Y: y, W: sz.w, H: sz.h}

	vn := n.VNode
	if vn == nil {
		return
	}

	clip := parentClip
	if vn.Layout.Overflow != vnode.OverflowVisible {
		clip = parentClip.Intersect(n.Rect)
	}
	n.ClipRect = clip

	if vn.IsComposite() {
		if len(n.Children) == 1 {
			e.arrange(n.Children[0], x, y, clip, depth+1)
		}
		return
	}

	switch vn.Kind {
	case vnode.KindBox, vnode.KindOverlay, vnode.KindFocusableLeaf:
		e.arrangeBox(n, x, y, clip, depth)
	case vnode.KindStack:
		e.arrangeStack(n, x, y, clip, depth)
	case vnode.KindGrid:
		e.arrangeGrid(n, x, y, clip, depth)
	}
}

func (e *Engine) arrangeBox(n *instance.Instance, x, y int, clip geom.Rect, depth int) {
	vn := n.VNode
	pad := vn.Layout.Padding
	borderW := 0
	if vn.Layout.Border != vnode.BorderNone {
		borderW = 1
	}
	cx, cy := x+pad.Left+borderW, y+pad.Top+borderW
	for _, c := range n.Children {
		cvn := c.VNode
		if cvn != nil && cvn.Layout.Position == vnode.PositionAbsolute {
			ax, ay := x, y
			if cvn.Layout.Left != nil {
				ax = x + *cvn.Layout.Left
			}
			if cvn.Layout.Top != nil {
				ay = y + *cvn.Layout.Top
			}
			e.arrange(c, ax, ay, clip, depth+1)
			continue
		}
		e.arrange(c, cx-n.ScrollX, cy-n.ScrollY, clip, depth+1)
	}
}

func (e *Engine) arrangeStack(n *instance.Instance, x, y int, clip geom.Rect, depth int) {
	vn := n.VNode
	pad := vn.Layout.Padding
	borderW := 0
	if vn.Layout.Border != vnode.BorderNone {
		borderW = 1
	}
	startX, startY := x+pad.Left+borderW, y+pad.Top+borderW
	row := vn.Stack.Direction == vnode.StackRow
	gap := vn.Layout.Gap

	// total main extent actually used, for justify distribution
	totalMain := 0
	var maxCross int
	for _, c := range n.Children {
		sz := e.sizeCache[c]
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
	if len(n.Children) > 1 {
		totalMain += gap * (len(n.Children) - 1)
	}

	innerW := n.Rect.W - pad.Left - pad.Right - 2*borderW
	innerH := n.Rect.H - pad.Top - pad.Bottom - 2*borderW
	mainAvail := innerW
	if !row {
		mainAvail = innerH
	}
	leftover := max0(mainAvail - totalMain)

	cursorOffset, gapExtra := justifyOffsets(vn.Stack.Justify, leftover, len(n.Children))

	cur := cursorOffset
	for i, c := range n.Children {
		sz := e.sizeCache[c]
		cross := crossOffset(vn.Stack.Items, maxCross, crossExtent(row, sz))
		var cx, cy int
		if row {
			cx, cy = startX+cur, startY+cross
		} else {
			cx, cy = startX+cross, startY+cur
		}
		e.arrange(c, cx-n.ScrollX, cy-n.ScrollY, clip, depth+1)

		adv := sz.w
		if !row {
			adv = sz.h
		}
		cur += adv + gap
		if i < gapExtra {
			cur++
		}
	}
}

func crossExtent(row bool, sz box) int {
	if row {
		return sz.h
	}
	return sz.w
}

func crossOffset(align vnode.Align, max, extent int) int {
	switch align {
	case vnode.AlignCenter:
		return (max - extent) / 2
	case vnode.AlignEnd:
		return max - extent
	default:
		return 0
	}
}

// justifyOffsets returns a leading offset and an integer number of gaps
// that should receive one extra cell, approximating space-between/
// space-around distribution with integer cell arithmetic.
func justifyOffsets(j vnode.Align, leftover, n int) (offset, extraGaps int) {
	switch j {
	case vnode.AlignCenter:
		return leftover / 2, 0
	case vnode.AlignEnd:
		return leftover, 0
	case vnode.AlignSpaceBetween:
		if n > 1 {
			return 0, leftover
		}
		return 0, 0
	case vnode.AlignSpaceAround:
		if n > 0 {
			return leftover / (n * 2), leftover
		}
		return 0, 0
	default:
		return 0, 0
	}
}

func (e *Engine) arrangeGrid(n *instance.Instance, x, y int, clip geom.Rect, depth int) {
	vn := n.VNode
	cols := vn.Grid.Columns
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
	remaining := max0(n.Rect.W - fixedW)
	for i, t := range cols {
		if t.Size.Kind == vnode.SizeFlex && flexTotal > 0 {
			colW[i] = int(float64(remaining) * t.Size.Value / flexTotal)
		}
	}
	colX := make([]int, len(colW))
	acc := 0
	for i, w := range colW {
		colX[i] = acc
		acc += w
	}

	type placement struct{ col, row int }
	placements := make([]placement, len(n.Children))
	autoIdx := 0
	for i, c := range n.Children {
		col, r := gridCellFor(c.VNode, i, len(cols), &autoIdx)
		placements[i] = placement{col, r}
	}

	rowH := map[int]int{}
	for i, c := range n.Children {
		sz := e.sizeCache[c]
		r := placements[i].row
		if sz.h > rowH[r] {
			rowH[r] = sz.h
		}
	}
	rowY := map[int]int{}
	accY := 0
	maxRow := -1
	for r := range rowH {
		if r > maxRow {
			maxRow = r
		}
	}
	for r := 0; r <= maxRow; r++ {
		rowY[r] = accY
		h := rowH[r]
		if h == 0 {
			h = 1
		}
		accY += h
	}

	for i, c := range n.Children {
		col, r := placements[i].col, placements[i].row
		cx := x
		if col < len(colX) {
			cx = x + colX[col]
		}
		cy := y + rowY[r]
		e.arrange(c, cx, cy, clip, depth+1)
	}
}
