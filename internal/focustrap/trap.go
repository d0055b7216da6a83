// Package focustrap keeps keyboard focus cycling inside a container.
//
// A Trap never caches the focusable set: every call re-reads the container
// and re-applies the interactable predicate, so elements that appear,
// disappear or get disabled while the trap is active are handled.
package focustrap

// Container lists focusable descendants in tab order.
type Container[E comparable] interface {
	Focusables() []E
}

// ContainerFunc adapts a plain function to Container.
type ContainerFunc[E comparable] func() []E

// Focusables calls f.
func (f ContainerFunc[E]) Focusables() []E {
	return f()
}

// Trap computes focus targets for a closed tab loop.
type Trap[E comparable] struct {
	container    Container[E]
	interactable func(E) bool
}

// New creates a trap. A nil predicate treats every element as interactable.
func New[E comparable](c Container[E], interactable func(E) bool) *Trap[E] {
	if interactable == nil {
		interactable = func(E) bool { return true }
	}
	return &Trap[E]{container: c, interactable: interactable}
}

// Candidates returns the currently interactable elements in order.
func (t *Trap[E]) Candidates() []E {
	if t.container == nil {
		return nil
	}
	all := t.container.Focusables()
	out := make([]E, 0, len(all))
	for _, e := range all {
		if t.interactable(e) {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first interactable element.
func (t *Trap[E]) First() (E, bool) {
	c := t.Candidates()
	if len(c) == 0 {
		var zero E
		return zero, false
	}
	return c[0], true
}

// Last returns the last interactable element.
func (t *Trap[E]) Last() (E, bool) {
	c := t.Candidates()
	if len(c) == 0 {
		var zero E
		return zero, false
	}
	return c[len(c)-1], true
}

// Next returns the element that should receive focus after a tab press
// from current. Forward from the last element wraps to the first and
// backward from the first wraps to the last. When current is not part of
// the loop, focus enters at the first (forward) or last (backward)
// element. It reports false when there is nothing to focus.
func (t *Trap[E]) Next(current E, backward bool) (E, bool) {
	c := t.Candidates()
	n := len(c)
	if n == 0 {
		var zero E
		return zero, false
	}

	idx := -1
	for i, e := range c {
		if e == current {
			idx = i
			break
		}
	}

	if idx < 0 {
		if backward {
			return c[n-1], true
		}
		return c[0], true
	}

	if backward {
		return c[(idx-1+n)%n], true
	}
	return c[(idx+1)%n], true
}
