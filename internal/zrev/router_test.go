package zrev

import (
	"testing"

	"github.com/rezi-tui/rezi/internal/focus"
	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/instance"
	"github.com/rezi-tui/rezi/internal/vnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func button(id string, rect geom.Rect, onPress func()) *instance.Instance {
	vn := &vnode.VNode{
		Kind:      vnode.KindFocusableLeaf,
		ID:        id,
		Focusable: vnode.FocusableProps{Widget: "button"},
		Handlers:  vnode.Handlers{OnPress: onPress},
	}
	inst := &instance.Instance{Kind: vn.Kind, ID: id, VNode: vn, RenderedHookCount: -1}
	inst.Rect, inst.ClipRect = rect, rect
	return inst
}

func rootWith(children ...*instance.Instance) *instance.Instance {
	root := &instance.Instance{RenderedHookCount: -1, Children: children}
	root.Rect = geom.Rect{X: 0, Y: 0, W: 20, H: 20}
	root.ClipRect = root.Rect
	for _, c := range children {
		c.Parent = root
	}
	return root
}

func TestDispatchMousePressReleaseFiresOnPress(t *testing.T) {
	pressed := false
	btn := button("ok", geom.Rect{X: 0, Y: 0, W: 4, H: 1}, func() { pressed = true })
	root := rootWith(btn)
	ring := focus.Build(root, nil)
	ht := focus.BuildHitTest(root)

	r := NewRouter()
	r.SetIndex(ring, ht)

	require.True(t, r.Dispatch(Event{Kind: EventMouse, Mouse: MouseEvent{X: 1, Y: 0, Action: MousePress, Button: ButtonLeft}}))
	require.True(t, r.Dispatch(Event{Kind: EventMouse, Mouse: MouseEvent{X: 1, Y: 0, Action: MouseRelease, Button: ButtonLeft}}))
	assert.True(t, pressed)
}

func TestDispatchMouseReleaseOnDifferentTargetDoesNotFire(t *testing.T) {
	var pressedA, pressedB bool
	a := button("a", geom.Rect{X: 0, Y: 0, W: 2, H: 1}, func() { pressedA = true })
	b := button("b", geom.Rect{X: 5, Y: 0, W: 2, H: 1}, func() { pressedB = true })
	root := rootWith(a, b)
	r := NewRouter()
	r.SetIndex(focus.Build(root, nil), focus.BuildHitTest(root))

	r.Dispatch(Event{Kind: EventMouse, Mouse: MouseEvent{X: 0, Y: 0, Action: MousePress}})
	r.Dispatch(Event{Kind: EventMouse, Mouse: MouseEvent{X: 5, Y: 0, Action: MouseRelease}})
	assert.False(t, pressedA)
	assert.False(t, pressedB)
}

func TestDispatchKeyGoesToFocusedWidgetFirst(t *testing.T) {
	var got string
	vn := &vnode.VNode{Kind: vnode.KindFocusableLeaf, ID: "input", Focusable: vnode.FocusableProps{Widget: "input"}}
	vn.Handlers.OnKey = func(key string, mods uint16) bool { got = key; return true }
	inst := &instance.Instance{Kind: vn.Kind, ID: "input", VNode: vn, RenderedHookCount: -1}
	root := rootWith(inst)

	ring := focus.Build(root, nil)
	ring.SetFocused(inst)
	r := NewRouter()
	r.SetIndex(ring, focus.BuildHitTest(root))

	consumed := r.Dispatch(Event{Kind: EventKey, Key: KeyEvent{KeyName: "a"}})
	assert.True(t, consumed)
	assert.Equal(t, "a", got)
}

func TestDispatchKeyFallsThroughToKeybindingWhenNoWidgetIsFocused(t *testing.T) {
	fired := false
	r := NewRouter()
	r.PushMode(&Mode{Name: "global", Bindings: map[string]func() bool{
		"ctrl+s": func() bool { fired = true; return true },
	}})

	consumed := r.Dispatch(Event{Kind: EventKey, Key: KeyEvent{KeyName: "s", Mods: ModCtrl}})
	assert.True(t, consumed)
	assert.True(t, fired)
}

func TestDispatchResizeCallsInvalidate(t *testing.T) {
	var cols, rows int
	r := NewRouter()
	r.Invalidate = func(c, ro int) { cols, rows = c, ro }
	r.Dispatch(Event{Kind: EventResize, Resize: ResizeEvent{Cols: 100, Rows: 40}})
	assert.Equal(t, 100, cols)
	assert.Equal(t, 40, rows)
}

func TestDragCancelsAtTrapBoundary(t *testing.T) {
	inTrap := button("in", geom.Rect{X: 0, Y: 0, W: 2, H: 1}, nil)
	outTrap := button("out", geom.Rect{X: 10, Y: 0, W: 2, H: 1}, nil)
	trapRoot := rootWith(inTrap)
	root := rootWith(trapRoot, outTrap)
	root.Rect = geom.Rect{X: 0, Y: 0, W: 20, H: 20}
	root.ClipRect = root.Rect
	trapRoot.Rect = geom.Rect{X: 0, Y: 0, W: 5, H: 5}
	trapRoot.ClipRect = trapRoot.Rect

	ring := focus.Build(root, nil)
	ring.PushTrap(trapRoot)
	r := NewRouter()
	r.SetIndex(ring, focus.BuildHitTest(root))

	r.Dispatch(Event{Kind: EventMouse, Mouse: MouseEvent{X: 0, Y: 0, Action: MousePress}})
	consumed := r.Dispatch(Event{Kind: EventMouse, Mouse: MouseEvent{X: 10, Y: 0, Action: MouseDrag}})
	assert.False(t, consumed, "drag leaving the trapped subtree should cancel")
}
