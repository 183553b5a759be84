package widgets

import (
	"github.com/rezi-tui/rezi/internal/reconcile"
	"github.com/rezi-tui/rezi/internal/vnode"
)

// TextInputProps configures TextInput.
type TextInputProps struct {
	Placeholder string
	OnChange    func(value string)
	OnSubmit    func(value string)
	Disabled    bool
	TabIndex    int
}

// TextInput renders a single-line editable field. It owns the value and
// caret position (a byte offset) as hook state; single-byte key names
// insert at the caret (multi-byte runes are not inserted), backspace
// deletes behind it, and enter fires OnSubmit.
func TextInput(id string, props TextInputProps) *vnode.VNode {
	return &vnode.VNode{
		Kind:       vnode.KindComposite,
		IdentityID: id,
		Props:      props,
		Render: func(p interface{}) *vnode.VNode {
			tp := p.(TextInputProps)
			value, setValue := reconcile.UseState("")
			caret, setCaret := reconcile.UseState(0)

			display := value
			if display == "" {
				display = tp.Placeholder
			}

			onKey := func(key string, mods uint16) bool {
				if tp.Disabled {
					return false
				}
				switch key {
				case "backspace":
					if caret == 0 {
						return true
					}
					setValue(value[:caret-1] + value[caret:])
					setCaret(caret - 1)
					if tp.OnChange != nil {
						tp.OnChange(value[:caret-1] + value[caret:])
					}
					return true
				case "delete":
					if caret >= len(value) {
						return true
					}
					setValue(value[:caret] + value[caret+1:])
					if tp.OnChange != nil {
						tp.OnChange(value[:caret] + value[caret+1:])
					}
					return true
				case "arrowleft":
					if caret > 0 {
						setCaret(caret - 1)
					}
					return true
				case "arrowright":
					if caret < len(value) {
						setCaret(caret + 1)
					}
					return true
				case "enter":
					if tp.OnSubmit != nil {
						tp.OnSubmit(value)
					}
					return true
				}
				if len(key) == 1 {
					next := value[:caret] + key + value[caret:]
					setValue(next)
					setCaret(caret + 1)
					if tp.OnChange != nil {
						tp.OnChange(next)
					}
					return true
				}
				return false
			}

			return &vnode.VNode{
				Kind: vnode.KindFocusableLeaf,
				ID:   id,
				Text: vnode.TextProps{Content: display},
				Focusable: vnode.FocusableProps{
					TabIndex: tp.TabIndex,
					Disabled: tp.Disabled,
					Widget:   "text_input",
				},
				Handlers: vnode.Handlers{
					OnKey: onKey,
				},
			}
		},
	}
}
