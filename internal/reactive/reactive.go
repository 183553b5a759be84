// Package reactive implements the dependency-tracked Signal/Computed/
// Effect primitives that back the reconciler's useState/useEffect hooks.
// It is adapted from the teacher's signals package: the tracking
// mechanism (an active-subscriber stack, dependency sets, batched
// notification) is unchanged: an Effect re-runs as soon as one of its
// dependencies is updated, and Batch is what defers those updates so
// that writes made inside it are flushed together when it returns.
package reactive

import (
	"reflect"
	"sync"
)

// Getter is a type-erased interface for Signals and Computeds.
type Getter interface {
	GetValue() interface{}
}

// Dependency is anything that can be depended on (Signal, Computed).
type Dependency interface {
	subscribe(s Subscriber)
	unsubscribe(s Subscriber)
}

// Subscriber is anything that depends on others (Effect, Computed).
type Subscriber interface {
	onDependencyUpdated()
	addDependency(d Dependency)
}

var (
	activeSubscriber Subscriber
	activeMu         sync.Mutex

	batchDepth int
	batchQueue map[Subscriber]struct{}
	batchMu    sync.Mutex
)

// Batch executes fn with notifications deferred until the outermost
// Batch call returns, matching the "state updates during a frame are
// visible to the next frame" ordering guarantee of spec.md §5.
func Batch(fn func()) {
	batchMu.Lock()
	batchDepth++
	batchMu.Unlock()

	defer func() {
		batchMu.Lock()
		batchDepth--
		if batchDepth == 0 && len(batchQueue) > 0 {
			queue := batchQueue
			batchQueue = nil
			batchMu.Unlock()
			for sub := range queue {
				sub.onDependencyUpdated()
			}
		} else {
			batchMu.Unlock()
		}
	}()

	fn()
}

// Signal is a reactive value cell.
type Signal[T any] struct {
	value       T
	subscribers map[Subscriber]struct{}
	mu          sync.RWMutex
}

// NewSignal creates a Signal with an initial value.
func NewSignal[T any](val T) *Signal[T] {
	return &Signal[T]{value: val, subscribers: make(map[Subscriber]struct{})}
}

func (s *Signal[T]) subscribe(sub Subscriber)   { s.mu.Lock(); defer s.mu.Unlock(); s.subscribers[sub] = struct{}{} }
func (s *Signal[T]) unsubscribe(sub Subscriber) { s.mu.Lock(); defer s.mu.Unlock(); delete(s.subscribers, sub) }

func (s *Signal[T]) GetValue() interface{} { return s.Get() }

// Get returns the current value, registering the active subscriber (if
// any) as a dependent.
func (s *Signal[T]) Get() T {
	activeMu.Lock()
	current := activeSubscriber
	activeMu.Unlock()

	if current != nil {
		current.addDependency(s)
		s.subscribe(current)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Peek reads the value without registering a dependency.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies subscribers if it changed. Inside a
// Batch, notification is deferred.
func (s *Signal[T]) Set(val T) {
	s.mu.Lock()
	if reflect.DeepEqual(s.value, val) {
		s.mu.Unlock()
		return
	}
	s.value = val
	subs := make([]Subscriber, 0, len(s.subscribers))
	for sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	notify(subs)
}

func notify(subs []Subscriber) {
	batchMu.Lock()
	if batchDepth > 0 {
		if batchQueue == nil {
			batchQueue = make(map[Subscriber]struct{})
		}
		for _, sub := range subs {
			batchQueue[sub] = struct{}{}
		}
		batchMu.Unlock()
		return
	}
	batchMu.Unlock()

	for _, sub := range subs {
		sub.onDependencyUpdated()
	}
}

// Computed is a derived, memoized value.
type Computed[T any] struct {
	fn           func() T
	value        T
	dirty        bool
	dependencies map[Dependency]struct{}
	subscribers  map[Subscriber]struct{}
	mu           sync.Mutex
}

// NewComputed creates a Computed that lazily evaluates fn on first Get.
func NewComputed[T any](fn func() T) *Computed[T] {
	return &Computed[T]{fn: fn, dirty: true, dependencies: make(map[Dependency]struct{}), subscribers: make(map[Subscriber]struct{})}
}

func (c *Computed[T]) subscribe(sub Subscriber)   { c.mu.Lock(); defer c.mu.Unlock(); c.subscribers[sub] = struct{}{} }
func (c *Computed[T]) unsubscribe(sub Subscriber) { c.mu.Lock(); defer c.mu.Unlock(); delete(c.subscribers, sub) }
func (c *Computed[T]) addDependency(d Dependency)  { c.mu.Lock(); defer c.mu.Unlock(); c.dependencies[d] = struct{}{} }

func (c *Computed[T]) onDependencyUpdated() {
	c.mu.Lock()
	if c.dirty {
		c.mu.Unlock()
		return
	}
	c.dirty = true
	subs := make([]Subscriber, 0, len(c.subscribers))
	for sub := range c.subscribers {
		subs = append(subs, sub)
	}
	c.mu.Unlock()
	notify(subs)
}

func (c *Computed[T]) GetValue() interface{} { return c.Get() }

// Get returns the current value, recomputing it first if stale.
func (c *Computed[T]) Get() T {
	activeMu.Lock()
	current := activeSubscriber
	activeMu.Unlock()
	if current != nil {
		current.addDependency(c)
		c.subscribe(current)
	}

	c.mu.Lock()
	if c.dirty {
		for dep := range c.dependencies {
			dep.unsubscribe(c)
		}
		c.dependencies = make(map[Dependency]struct{})

		activeMu.Lock()
		prev := activeSubscriber
		activeSubscriber = c
		activeMu.Unlock()

		c.mu.Unlock()
		val := c.fn()
		c.mu.Lock()

		c.value = val
		c.dirty = false

		activeMu.Lock()
		activeSubscriber = prev
		activeMu.Unlock()
	}
	defer c.mu.Unlock()
	return c.value
}

// Effect is a side effect re-run whenever one of its dependencies
// changes.
type Effect struct {
	fn           func()
	dependencies map[Dependency]struct{}
	mu           sync.Mutex
	disposed     bool
	pending      bool
}

// NewEffect creates and immediately runs an Effect.
func NewEffect(fn func()) *Effect {
	e := &Effect{fn: fn, dependencies: make(map[Dependency]struct{})}
	e.Run()
	return e
}

func (e *Effect) addDependency(d Dependency) { e.mu.Lock(); defer e.mu.Unlock(); e.dependencies[d] = struct{}{} }

func (e *Effect) onDependencyUpdated() {
	e.mu.Lock()
	e.pending = true
	e.mu.Unlock()
	e.Run()
}

// Pending reports whether a dependency fired since the last Run, without
// clearing the flag.
func (e *Effect) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

// Run re-executes the effect body, re-subscribing to whatever
// dependencies it reads this time.
func (e *Effect) Run() {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	oldDeps := e.dependencies
	e.dependencies = make(map[Dependency]struct{})
	e.pending = false
	e.mu.Unlock()

	for dep := range oldDeps {
		dep.unsubscribe(e)
	}

	activeMu.Lock()
	prev := activeSubscriber
	activeSubscriber = e
	activeMu.Unlock()

	e.fn()

	activeMu.Lock()
	activeSubscriber = prev
	activeMu.Unlock()
}

// Dispose unsubscribes the effect from all dependencies and prevents
// further runs.
func (e *Effect) Dispose() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return
	}
	e.disposed = true
	for dep := range e.dependencies {
		dep.unsubscribe(e)
	}
	e.dependencies = nil
}
