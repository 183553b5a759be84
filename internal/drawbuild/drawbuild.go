// Package drawbuild implements the drawlist renderer (C5): a stack-based
// depth-first walk of a laid-out instance tree that emits ZRDL commands
// into a zrdl.Builder, per spec.md §4.5.
//
// The walk order and clip-region push/pop are grounded on the teacher's
// tui/render.go renderNode: a recursive descent that threads a cursor
// position down through block/style/text nodes. Here the cursor is
// replaced by the already-computed instance.Rect/ClipRect from
// internal/layout, and the single flat Screen.Back buffer write is
// replaced by emission of portable zrdl.Command values a backend
// interprets later.
package drawbuild

import (
	"github.com/rezi-tui/rezi/internal/drawbuild/highlight"
	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/grapheme"
	"github.com/rezi-tui/rezi/internal/instance"
	"github.com/rezi-tui/rezi/internal/vnode"
	"github.com/rezi-tui/rezi/internal/zrdl"
)

// Builder walks an instance tree and appends ZRDL commands describing
// it into an underlying zrdl.Builder.
type Builder struct {
	out *zrdl.Builder
}

// New creates a drawlist Builder writing into out.
func New(out *zrdl.Builder) *Builder {
	return &Builder{out: out}
}

// Build appends a full frame (clear + the subtree under root) to the
// underlying zrdl.Builder. It does not Reset the builder; callers
// control frame boundaries.
func (b *Builder) Build(root *instance.Instance) {
	b.out.Append(zrdl.Clear())
	if root == nil {
		return
	}
	b.walk(root, geom.TextStyle{})
}

func (b *Builder) walk(n *instance.Instance, inherited geom.TextStyle) {
	if n == nil || n.Broken() {
		return
	}
	vn := n.VNode
	if vn == nil {
		return
	}

	style := inherited.Merge(vn.Style)

	pushedClip := false
	if vn.Layout.Overflow != vnode.OverflowVisible && !n.ClipRect.Empty() {
		b.out.Append(zrdl.PushClip(n.ClipRect))
		pushedClip = true
	}

	if vn.Kind == vnode.KindBox || vn.Kind == vnode.KindOverlay || vn.Kind == vnode.KindFocusableLeaf {
		if vn.Box.BG != geom.Default {
			b.out.Append(zrdl.FillRect(n.Rect.X, n.Rect.Y, n.Rect.W, n.Rect.H, geom.TextStyle{Bg: vn.Box.BG}))
		}
		if vn.Layout.Border != vnode.BorderNone {
			b.drawBorder(n.Rect, vn.Layout.Border, style)
		}
	}

	switch vn.Kind {
	case vnode.KindText:
		b.drawText(n, style)
	case vnode.KindLeaf:
		if vn.Leaf.Leaf == vnode.LeafDivider {
			b.drawDivider(n, style)
		}
	}

	if vn.Canvas != nil {
		blobRef := b.out.InternBlob(vn.Canvas.Payload)
		b.out.Append(zrdl.DrawCanvas(n.Rect.X, n.Rect.Y, n.Rect.W, n.Rect.H, vn.Canvas.PxW, vn.Canvas.PxH, blobRef, zrdl.BlitterCode(vn.Canvas.Blitter)))
	}
	if vn.Image != nil {
		blobRef := b.out.InternBlob(vn.Image.Payload)
		b.out.Append(zrdl.DrawImage(n.Rect.X, n.Rect.Y, n.Rect.W, n.Rect.H, vn.Image.PxW, vn.Image.PxH, blobRef,
			vn.Image.ImageID, zrdl.ImageFormatCode(vn.Image.Format), zrdl.ImageProtocolCode(vn.Image.Protocol), 0, zrdl.FitCode(vn.Image.Fit)))
	}

	// Overlay children paint after their non-overlay siblings, whatever
	// their position in the child list.
	for _, c := range n.Children {
		if c == nil || c.Kind != vnode.KindOverlay {
			b.walk(c, style)
		}
	}
	for _, c := range n.Children {
		if c != nil && c.Kind == vnode.KindOverlay {
			b.walk(c, style)
		}
	}

	if pushedClip {
		b.out.Append(zrdl.PopClip())
	}
}

func (b *Builder) drawText(n *instance.Instance, style geom.TextStyle) {
	vn := n.VNode
	content := vn.Text.Content
	if content == "" {
		return
	}

	if vn.Text.Lang != "" {
		b.drawHighlighted(n, content, vn.Text.Lang, style)
		return
	}

	for i, line := range splitLines(content) {
		if line == "" {
			continue
		}
		ref := internFull(b.out, line)
		b.out.Append(zrdl.DrawText(n.Rect.X, n.Rect.Y+i, ref, style))
	}
}

func (b *Builder) drawHighlighted(n *instance.Instance, content, lang string, style geom.TextStyle) {
	spans := highlight.Highlight(content, lang)
	x, y := n.Rect.X, n.Rect.Y
	for _, span := range spans {
		for i, part := range splitLines(span.Text) {
			if i > 0 {
				y++
				x = n.Rect.X
			}
			if part == "" {
				continue
			}
			merged := style.Merge(span.Style)
			ref := internFull(b.out, part)
			b.out.Append(zrdl.DrawText(x, y, ref, merged))
			x += grapheme.StringWidth(part)
		}
	}
}

func (b *Builder) drawDivider(n *instance.Instance, style geom.TextStyle) {
	line := make([]rune, n.Rect.W)
	for i := range line {
		line[i] = '─'
	}
	ref := internFull(b.out, string(line))
	b.out.Append(zrdl.DrawText(n.Rect.X, n.Rect.Y, ref, style))
}

func (b *Builder) drawBorder(r geom.Rect, style vnode.BorderStyle, ts geom.TextStyle) {
	glyphs := borderGlyphs(style)
	if r.W < 2 || r.H < 2 {
		return
	}
	top := string(glyphs.tl) + repeat(glyphs.h, r.W-2) + string(glyphs.tr)
	bot := string(glyphs.bl) + repeat(glyphs.h, r.W-2) + string(glyphs.br)

	b.out.Append(zrdl.DrawText(r.X, r.Y, internFull(b.out, top), ts))
	b.out.Append(zrdl.DrawText(r.X, r.Y+r.H-1, internFull(b.out, bot), ts))
	for y := r.Y + 1; y < r.Y+r.H-1; y++ {
		b.out.Append(zrdl.DrawText(r.X, y, internFull(b.out, string(glyphs.v)), ts))
		b.out.Append(zrdl.DrawText(r.X+r.W-1, y, internFull(b.out, string(glyphs.v)), ts))
	}
}

type borderRunes struct{ tl, tr, bl, br, h, v rune }

func borderGlyphs(s vnode.BorderStyle) borderRunes {
	switch s {
	case vnode.BorderDouble:
		return borderRunes{'╔', '╗', '╚', '╝', '═', '║'}
	case vnode.BorderRounded:
		return borderRunes{'╭', '╮', '╰', '╯', '─', '│'}
	case vnode.BorderThick:
		return borderRunes{'┏', '┓', '┗', '┛', '━', '┃'}
	default:
		return borderRunes{'┌', '┐', '└', '┘', '─', '│'}
	}
}

func repeat(r rune, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
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
	return append(lines, s[start:])
}

func internFull(b *zrdl.Builder, s string) zrdl.StringRef {
	idx := b.InternString(s)
	return zrdl.StringRef{Index: idx, ByteOff: 0, ByteLen: uint32(len(s))}
}
