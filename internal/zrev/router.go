package zrev

import (
	"time"

	"github.com/rezi-tui/rezi/internal/focus"
	"github.com/rezi-tui/rezi/internal/instance"
)

// ChordTimeout is how long the router waits for the next stroke of a
// multi-key chord before clearing the pending buffer, per spec.md
// §4.8's "pending-chord buffer cleared by a timeout".
const ChordTimeout = 500 * time.Millisecond

// DoubleClickWindow bounds how close together two presses on the same
// target must land to count as a double click, per spec.md §4.8.
const DoubleClickWindow = 400 * time.Millisecond

// Mode is one entry of the router's keybinding mode stack (e.g. a
// modal's local bindings layered over the app's global ones). Handler
// returns true if it consumed the chord.
type Mode struct {
	Name     string
	Bindings map[string]func() bool
}

// chordKey renders one keystroke as the string a Mode.Bindings map
// matches on, combining the normalized key name with its modifiers.
func chordKey(ev KeyEvent) string {
	s := ""
	if ev.Mods.Has(ModCtrl) {
		s += "ctrl+"
	}
	if ev.Mods.Has(ModAlt) {
		s += "alt+"
	}
	if ev.Mods.Has(ModShift) {
		s += "shift+"
	}
	return s + ev.KeyName
}

// Router dispatches decoded events to the focused widget, then active
// keybindings, then the hit-test map, per spec.md §4.8's ordered rule
// list. It holds no rendering state of its own; Ring/HitTest are
// rebuilt by C9 after each reconcile+layout pass and handed in.
type Router struct {
	Ring    *focus.Ring
	HitTest *focus.HitTest

	modes    []*Mode
	chordBuf []string
	chordAt  time.Time

	pressTarget  *instance.Instance
	pressAt      time.Time
	lastClick    *instance.Instance
	lastClickAt  time.Time
	dragTarget   *instance.Instance
	dragTrapRoot *instance.Instance

	// Invalidate is called on a resize event to force the next frame to
	// fully redraw, per spec.md §4.8 rule 1.
	Invalidate func(cols, rows int)
	// OnCapabilityUpdate is called when the backend reports a
	// capability change mid-session (e.g. truecolor negotiated late).
	OnCapabilityUpdate func()
}

// NewRouter creates a Router with no modes and no focus/hit-test state
// yet; SetIndex must be called once C7 has produced them for the frame.
func NewRouter() *Router { return &Router{} }

// SetIndex installs this frame's focus ring and hit-test map.
func (r *Router) SetIndex(ring *focus.Ring, ht *focus.HitTest) {
	r.Ring = ring
	r.HitTest = ht
}

// PushMode layers m on top of the keybinding stack; Dispatch offers a
// key to the topmost mode first.
func (r *Router) PushMode(m *Mode) { r.modes = append(r.modes, m) }

// PopMode removes the topmost mode.
func (r *Router) PopMode() {
	if len(r.modes) > 0 {
		r.modes = r.modes[:len(r.modes)-1]
	}
}

// Dispatch routes a single decoded event per spec.md §4.8's rule list
// and reports whether some handler consumed it.
func (r *Router) Dispatch(ev Event) bool {
	switch ev.Kind {
	case EventResize:
		if r.Invalidate != nil {
			r.Invalidate(ev.Resize.Cols, ev.Resize.Rows)
		}
		return true
	case EventCapabilityUpdate:
		if r.OnCapabilityUpdate != nil {
			r.OnCapabilityUpdate()
		}
		return true
	case EventKey:
		return r.dispatchKey(ev.Key)
	case EventPaste:
		return r.dispatchPaste(ev.Paste)
	case EventMouse:
		return r.dispatchMouse(ev.Mouse)
	case EventFocusChange:
		return true
	default:
		return false
	}
}

func (r *Router) dispatchKey(ev KeyEvent) bool {
	if r.clearStaleChord(); r.focusedOnKey(ev) {
		return true
	}
	return r.dispatchChord(ev)
}

func (r *Router) focusedOnKey(ev KeyEvent) bool {
	if r.Ring == nil {
		return false
	}
	target := r.Ring.Focused()
	if target == nil || target.VNode == nil || target.VNode.Handlers.OnKey == nil {
		return false
	}
	return target.VNode.Handlers.OnKey(ev.KeyName, uint16(ev.Mods))
}

func (r *Router) dispatchPaste(ev PasteEvent) bool {
	if r.Ring == nil {
		return false
	}
	target := r.Ring.Focused()
	if target == nil || target.VNode == nil || target.VNode.Handlers.OnKey == nil {
		return false
	}
	return target.VNode.Handlers.OnKey(ev.Text, uint16(ModNone))
}

// clearStaleChord drops the pending chord buffer once ChordTimeout has
// elapsed since the last stroke, per spec.md §4.8.
func (r *Router) clearStaleChord() {
	if len(r.chordBuf) > 0 && time.Since(r.chordAt) > ChordTimeout {
		r.chordBuf = nil
	}
}

// dispatchChord offers ev to the mode stack in reverse order (topmost
// mode first), accumulating a chord buffer across calls so multi-stroke
// bindings like "ctrl+k ctrl+s" resolve across two key events.
func (r *Router) dispatchChord(ev KeyEvent) bool {
	r.chordBuf = append(r.chordBuf, chordKey(ev))
	r.chordAt = time.Now()
	chord := joinChord(r.chordBuf)

	for i := len(r.modes) - 1; i >= 0; i-- {
		if fn, ok := r.modes[i].Bindings[chord]; ok {
			r.chordBuf = nil
			return fn()
		}
	}
	if !chordIsPrefix(r.modes, chord) {
		r.chordBuf = nil
	}
	return false
}

func chordIsPrefix(modes []*Mode, chord string) bool {
	for _, m := range modes {
		for k := range m.Bindings {
			if len(k) > len(chord) && k[:len(chord)] == chord && (k[len(chord)] == ' ') {
				return true
			}
		}
	}
	return false
}

func joinChord(strokes []string) string {
	out := strokes[0]
	for _, s := range strokes[1:] {
		out += " " + s
	}
	return out
}

func (r *Router) dispatchMouse(ev MouseEvent) bool {
	if ev.Action == MouseWheel {
		target := r.hitTarget(ev.X, ev.Y)
		return fireKey(target, "wheel", ev.Mods)
	}

	target := r.hitTarget(ev.X, ev.Y)

	switch ev.Action {
	case MousePress:
		r.pressTarget = target
		r.pressAt = time.Now()
		r.dragTarget = target
		r.dragTrapRoot = r.activeTrapRoot()
		if target != nil && r.Ring != nil {
			if idx := r.Ring.IndexOf(target); idx >= 0 {
				r.Ring.SetFocused(target)
			}
		}
		return target != nil
	case MouseDrag:
		if r.dragTarget == nil {
			return false
		}
		if r.dragTrapRoot != nil && !isDescendantInstance(target, r.dragTrapRoot) {
			// Drag crosses out of the active focus trap; cancel rather
			// than let it reach an obscured background widget.
			r.dragTarget = nil
			return false
		}
		return true
	case MouseRelease:
		consumed := false
		if target != nil && target == r.pressTarget {
			consumed = firePress(target)
			if r.isDoubleClick(target) {
				consumed = fireKey(target, "dblclick", ev.Mods) || consumed
			}
			r.lastClick = target
			r.lastClickAt = time.Now()
		}
		r.pressTarget = nil
		r.dragTarget = nil
		r.dragTrapRoot = nil
		return consumed
	case MouseMove:
		return false
	default:
		return false
	}
}

func (r *Router) isDoubleClick(target *instance.Instance) bool {
	return r.lastClick == target && time.Since(r.lastClickAt) <= DoubleClickWindow
}

func (r *Router) hitTarget(x, y int) *instance.Instance {
	if r.HitTest == nil {
		return nil
	}
	return r.HitTest.At(x, y)
}

func (r *Router) activeTrapRoot() *instance.Instance {
	if r.Ring == nil {
		return nil
	}
	// Ring exposes trap state only through Next/Prev's own bookkeeping;
	// mouse drags consult the same topmost scope via the ring's public
	// surface so focus.Ring remains the single source of trap truth.
	return r.Ring.TrapRoot()
}

func isDescendantInstance(n, root *instance.Instance) bool {
	if n == nil {
		return false
	}
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

func firePress(n *instance.Instance) bool {
	if n == nil || n.VNode == nil || n.VNode.Handlers.OnPress == nil {
		return false
	}
	n.VNode.Handlers.OnPress()
	return true
}

func fireKey(n *instance.Instance, name string, mods Modifier) bool {
	if n == nil || n.VNode == nil || n.VNode.Handlers.OnKey == nil {
		return false
	}
	return n.VNode.Handlers.OnKey(name, uint16(mods))
}
