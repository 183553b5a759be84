// Package widgets is a small catalog of ready-made composite views built
// on top of internal/vnode/internal/reconcile's hooks: Button, Checkbox,
// TextInput, List. It sits outside internal/ because nothing in the core
// render pipeline depends on it — a view function can just as well build
// its own KindFocusableLeaf nodes directly, the way internal/vnode's own
// tests do.
package widgets

import (
	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/reconcile"
	"github.com/rezi-tui/rezi/internal/vnode"
)

// ButtonProps configures Button.
type ButtonProps struct {
	Label    string
	OnPress  func()
	Disabled bool
	TabIndex int
}

// Button renders a single-line focusable, pressable label, the
// composite-node analogue of the teacher's inline "(Press 'q' ...)"
// hint text but wired through a real focusable/interactive node instead
// of being a static string.
func Button(id string, props ButtonProps) *vnode.VNode {
	return &vnode.VNode{
		Kind:       vnode.KindComposite,
		IdentityID: id,
		Props:      props,
		Render: func(p interface{}) *vnode.VNode {
			bp := p.(ButtonProps)
			pressed, setPressed := reconcile.UseState(false)

			style := geom.TextStyle{}
			if pressed {
				style.Attrs |= geom.AttrInverse
			}
			if bp.Disabled {
				style.Attrs |= geom.AttrDim
			}

			return &vnode.VNode{
				Kind: vnode.KindFocusableLeaf,
				ID:   id,
				Style: style,
				Text: vnode.TextProps{Content: bp.Label},
				Focusable: vnode.FocusableProps{
					TabIndex: bp.TabIndex,
					Disabled: bp.Disabled,
					Widget:   "button",
				},
				Handlers: vnode.Handlers{
					OnPress: func() {
						if bp.Disabled {
							return
						}
						setPressed(true)
						if bp.OnPress != nil {
							bp.OnPress()
						}
						setPressed(false)
					},
				},
			}
		},
	}
}
