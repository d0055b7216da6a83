// Package modal implements the open/close lifecycle of a dialog: focus
// capture and restore, background scroll lock, and a closed tab loop over
// the dialog's interactable descendants.
//
// Everything applied on Open is undone on every exit path, including
// Teardown of the hosting view while the dialog is still open.
package modal

import (
	"sync"

	"github.com/Zachkp/portfolio/internal/focustrap"
)

// State is the dialog visibility.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// Reason records what triggered a transition.
type Reason int

const (
	ReasonOpen Reason = iota
	ReasonExplicit
	ReasonCancelKey
	ReasonBackdrop
	ReasonTeardown
)

func (r Reason) String() string {
	switch r {
	case ReasonOpen:
		return "open"
	case ReasonExplicit:
		return "close"
	case ReasonCancelKey:
		return "cancel-key"
	case ReasonBackdrop:
		return "backdrop"
	case ReasonTeardown:
		return "teardown"
	}
	return "unknown"
}

// FocusManager reads and moves host focus.
type FocusManager[E comparable] interface {
	// Focused returns the currently focused element, if any.
	Focused() (E, bool)
	Focus(E)
}

// ScrollLocker prevents the page behind the dialog from scrolling.
// Lock returns a func that restores whatever scroll behaviour was in
// effect before the call.
type ScrollLocker interface {
	Lock() (release func())
}

// Scheduler runs fn after the host has painted the opened dialog.
type Scheduler interface {
	AfterPaint(fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(fn func())

// AfterPaint calls f.
func (f SchedulerFunc) AfterPaint(fn func()) { f(fn) }

// Immediate runs scheduled work synchronously.
var Immediate Scheduler = SchedulerFunc(func(fn func()) { fn() })

// Options wires a Controller to its host.
type Options[E comparable] struct {
	Focus        FocusManager[E]
	Scroll       ScrollLocker
	Content      focustrap.Container[E]
	Interactable func(E) bool
	Scheduler    Scheduler
}

// Controller owns the dialog state. It is safe for use from multiple
// goroutines, but OnChange callbacks run with no lock held on the calling
// goroutine.
type Controller[E comparable] struct {
	focus     FocusManager[E]
	scroll    ScrollLocker
	trap      *focustrap.Trap[E]
	scheduler Scheduler

	mu        sync.Mutex
	state     State
	gen       uint64
	anchor    E
	hasAnchor bool
	release   func()
	onChange  func(State, Reason)
}

// New builds a controller in the Closed state.
func New[E comparable](opts Options[E]) *Controller[E] {
	if opts.Scheduler == nil {
		opts.Scheduler = Immediate
	}
	return &Controller[E]{
		focus:     opts.Focus,
		scroll:    opts.Scroll,
		trap:      focustrap.New(opts.Content, opts.Interactable),
		scheduler: opts.Scheduler,
	}
}

// OnChange registers a hook called after every transition.
func (c *Controller[E]) OnChange(fn func(State, Reason)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// State returns the current state.
func (c *Controller[E]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsOpen reports whether the dialog is open.
func (c *Controller[E]) IsOpen() bool {
	return c.State() == Open
}

// Open moves Closed to Open. It is a no-op when already open.
func (c *Controller[E]) Open() {
	c.mu.Lock()
	if c.state == Open {
		c.mu.Unlock()
		return
	}

	c.state = Open
	c.gen++
	gen := c.gen

	var zero E
	c.anchor, c.hasAnchor = zero, false
	if c.focus != nil {
		c.anchor, c.hasAnchor = c.focus.Focused()
	}
	if c.scroll != nil {
		c.release = c.scroll.Lock()
	}
	hook := c.onChange
	c.mu.Unlock()

	if hook != nil {
		hook(Open, ReasonOpen)
	}

	c.scheduler.AfterPaint(func() {
		c.mu.Lock()
		live := c.state == Open && c.gen == gen
		c.mu.Unlock()
		if !live || c.focus == nil {
			return
		}
		if first, ok := c.trap.First(); ok {
			c.focus.Focus(first)
		}
	})
}

// Close handles the explicit close action.
func (c *Controller[E]) Close() { c.exit(ReasonExplicit) }

// Cancel handles the cancellation key.
func (c *Controller[E]) Cancel() { c.exit(ReasonCancelKey) }

// Dismiss handles a pointer interaction outside the dialog content.
func (c *Controller[E]) Dismiss() { c.exit(ReasonBackdrop) }

// Teardown releases everything when the hosting view goes away.
func (c *Controller[E]) Teardown() { c.exit(ReasonTeardown) }

func (c *Controller[E]) exit(reason Reason) {
	c.mu.Lock()
	if c.state != Open {
		c.mu.Unlock()
		return
	}

	c.state = Closed
	c.gen++

	release := c.release
	c.release = nil
	anchor, hasAnchor := c.anchor, c.hasAnchor
	var zero E
	c.anchor, c.hasAnchor = zero, false
	hook := c.onChange
	c.mu.Unlock()

	if release != nil {
		release()
	}
	if hook != nil {
		hook(Closed, reason)
	}
	if hasAnchor && c.focus != nil {
		c.focus.Focus(anchor)
	}
}

// Tab moves focus one step around the dialog's focus loop. It reports
// whether the key press was consumed; it is never consumed while closed.
// With nothing interactable inside the dialog the press is swallowed and
// focus stays where it is.
func (c *Controller[E]) Tab(backward bool) bool {
	if !c.IsOpen() {
		return false
	}
	if c.focus == nil {
		return true
	}

	current, _ := c.focus.Focused()
	next, ok := c.trap.Next(current, backward)
	if !ok {
		return true
	}
	if next != current {
		c.focus.Focus(next)
	}
	return true
}
