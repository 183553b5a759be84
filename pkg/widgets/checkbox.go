package widgets

import (
	"github.com/rezi-tui/rezi/internal/reconcile"
	"github.com/rezi-tui/rezi/internal/vnode"
)

// CheckboxProps configures Checkbox.
type CheckboxProps struct {
	Label    string
	Checked  bool
	OnChange func(checked bool)
	Disabled bool
	TabIndex int
}

// Checkbox renders a focusable leaf toggled by a press or the space key,
// owning its own checked state unless the caller drives it externally
// through CheckboxProps.Checked across renders.
func Checkbox(id string, props CheckboxProps) *vnode.VNode {
	return &vnode.VNode{
		Kind:       vnode.KindComposite,
		IdentityID: id,
		Props:      props,
		Render: func(p interface{}) *vnode.VNode {
			cp := p.(CheckboxProps)
			checked, setChecked := reconcile.UseState(cp.Checked)

			mark := "[ ]"
			if checked {
				mark = "[x]"
			}

			toggle := func() {
				if cp.Disabled {
					return
				}
				next := !checked
				setChecked(next)
				if cp.OnChange != nil {
					cp.OnChange(next)
				}
			}

			return &vnode.VNode{
				Kind: vnode.KindFocusableLeaf,
				ID:   id,
				Text: vnode.TextProps{Content: mark + " " + cp.Label},
				Focusable: vnode.FocusableProps{
					TabIndex: cp.TabIndex,
					Disabled: cp.Disabled,
					Widget:   "checkbox",
				},
				Handlers: vnode.Handlers{
					OnPress: toggle,
					OnKey: func(key string, mods uint16) bool {
						if key == " " {
							toggle()
							return true
						}
						return false
					},
				},
			}
		},
	}
}
