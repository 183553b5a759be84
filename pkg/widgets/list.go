package widgets

import (
	"github.com/rezi-tui/rezi/internal/reconcile"
	"github.com/rezi-tui/rezi/internal/vnode"
)

// ListProps configures List.
type ListProps struct {
	Items      []string
	OnSelect   func(index int, item string)
	TabIndex   int
}

// List renders a stack of items with one focusable cursor row (the
// stack does not scroll); arrowup/arrowdown move the cursor, enter
// fires OnSelect. It builds one
// KindStack of plain text rows rather than one focusable leaf per item,
// since only the cursor row itself needs to be a tab stop.
func List(id string, props ListProps) *vnode.VNode {
	return &vnode.VNode{
		Kind:       vnode.KindComposite,
		IdentityID: id,
		Props:      props,
		Render: func(p interface{}) *vnode.VNode {
			lp := p.(ListProps)
			cursor, setCursor := reconcile.UseState(0)

			onKey := func(key string, mods uint16) bool {
				switch key {
				case "arrowup":
					if cursor > 0 {
						setCursor(cursor - 1)
					}
					return true
				case "arrowdown":
					if cursor < len(lp.Items)-1 {
						setCursor(cursor + 1)
					}
					return true
				case "enter":
					if lp.OnSelect != nil && cursor < len(lp.Items) {
						lp.OnSelect(cursor, lp.Items[cursor])
					}
					return true
				}
				return false
			}

			rows := make([]*vnode.VNode, len(lp.Items))
			for i, item := range lp.Items {
				prefix := "  "
				if i == cursor {
					prefix = "> "
				}
				rows[i] = &vnode.VNode{
					Kind: vnode.KindText,
					Text: vnode.TextProps{Content: prefix + item},
				}
			}

			cursorRow := &vnode.VNode{
				Kind: vnode.KindFocusableLeaf,
				ID:   id,
				Focusable: vnode.FocusableProps{
					TabIndex: lp.TabIndex,
					Widget:   "list_cursor",
				},
				Handlers: vnode.Handlers{OnKey: onKey},
			}

			return &vnode.VNode{
				Kind:     vnode.KindStack,
				Stack:    vnode.StackProps{Direction: vnode.StackColumn},
				Children: append([]*vnode.VNode{cursorRow}, rows...),
			}
		},
	}
}
