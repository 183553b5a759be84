package reconcile

import (
	"github.com/rezi-tui/rezi/internal/instance"
	"github.com/rezi-tui/rezi/internal/reactive"
	"github.com/rezi-tui/rezi/internal/rezierr"
)

// activeInstance is the composite instance currently inside its Render
// call, or nil outside of rendering. It is single-threaded-cooperative
// state, per spec.md §5: the core never runs two renders concurrently.
var activeInstance *instance.Instance

// rendering reports whether a Render call is currently on the stack,
// used to detect update_during_render (spec.md §7).
func rendering() bool { return activeInstance != nil }

// UseState returns the hook's current value and a setter. The setter is
// the only sanctioned way to schedule a state update from inside a
// composite; calling it synchronously during Render is fatal.
func UseState[T any](initial T) (T, func(T)) {
	inst := activeInstance
	if inst == nil {
		panic(rezierr.New(rezierr.UpdateDuringRender, "", errOutsideRender))
	}
	slot := acquireSlot(inst)
	if slot.Value == nil {
		sig := reactive.NewSignal(initial)
		slot.Value = sig
		inst.Hooks[inst.HookPos-1] = *slot
	}
	sig := slot.Value.(*reactive.Signal[T])
	val := sig.Peek()
	setter := func(next T) {
		if rendering() {
			panic(rezierr.New(rezierr.UpdateDuringRender, "", errDuringRender))
		}
		sig.Set(next)
	}
	return val, setter
}

// UseEffect registers fn to run after mount and after any render whose
// deps differ from the previous call's deps (shallow comparison by
// length + element equality via reactive's signal identity is not
// attempted here; rezi's effects re-run once per render that reaches
// them with a changed deps slice, compared elementwise).
func UseEffect(fn func() func(), deps []interface{}) {
	inst := activeInstance
	if inst == nil {
		panic(rezierr.New(rezierr.UpdateDuringRender, "", errOutsideRender))
	}
	slot := acquireSlot(inst)
	type effectState struct {
		deps    []interface{}
		cleanup func()
	}
	prev, _ := slot.Value.(*effectState)
	changed := prev == nil || !depsEqual(prev.deps, deps)
	if changed {
		if prev != nil && prev.cleanup != nil {
			prev.cleanup()
		}
		cleanup := fn()
		state := &effectState{deps: deps, cleanup: cleanup}
		slot.Value = state
		slot.Dispose = cleanup
		inst.Hooks[inst.HookPos-1] = *slot
	}
}

func depsEqual(a, b []interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func acquireSlot(inst *instance.Instance) *instance.HookSlot {
	if inst.HookPos < len(inst.Hooks) {
		inst.HookPos++
		return &inst.Hooks[inst.HookPos-1]
	}
	inst.Hooks = append(inst.Hooks, instance.HookSlot{})
	inst.HookPos++
	return &inst.Hooks[inst.HookPos-1]
}

var errOutsideRender = hookError("hooks may only be called from inside a composite render function")
var errDuringRender = hookError("state setter invoked synchronously during render")

type hookError string

func (e hookError) Error() string { return string(e) }
