package resume

import (
	"context"
	"sync"
)

// VerdictProber is the probing dependency of a Cell.
type VerdictProber interface {
	Probe(ctx context.Context, locator string) Verdict
}

// Cell holds the verdict for one hosting view. The probe runs once when
// the view mounts; the verdict reads as Unknown until it resolves and is
// immutable afterwards. After Teardown a late result is discarded.
type Cell struct {
	prober  VerdictProber
	locator string

	mu        sync.Mutex
	verdict   Verdict
	resolved  bool
	mounted   bool
	torn      bool
	alive     bool
	onResolve func(Verdict)
	done      chan struct{}
}

// NewCell creates an unmounted cell for locator.
func NewCell(p VerdictProber, locator string) *Cell {
	return &Cell{
		prober:  p,
		locator: locator,
		done:    make(chan struct{}),
	}
}

// OnResolve registers fn to be called once with the verdict, provided the
// cell is still mounted when the probe finishes. Register before Mount.
func (c *Cell) OnResolve(fn func(Verdict)) {
	c.mu.Lock()
	c.onResolve = fn
	c.mu.Unlock()
}

// Mount starts the probe in the background. Only the first call has any
// effect, and none after Teardown.
func (c *Cell) Mount(ctx context.Context) {
	c.mu.Lock()
	if c.mounted || c.torn {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	c.alive = true
	c.mu.Unlock()

	go func() {
		defer close(c.done)
		v := c.prober.Probe(ctx, c.locator)

		c.mu.Lock()
		if !c.alive {
			c.mu.Unlock()
			return
		}
		c.verdict = v
		c.resolved = true
		hook := c.onResolve
		c.mu.Unlock()

		if hook != nil {
			hook(v)
		}
	}()
}

// Teardown marks the hosting view as gone. Any probe still in flight is
// abandoned and its result ignored. The cell cannot be mounted again.
func (c *Cell) Teardown() {
	c.mu.Lock()
	c.torn = true
	c.alive = false
	c.mu.Unlock()
}

// Verdict returns the latest verdict.
func (c *Cell) Verdict() Verdict {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verdict
}

// Resolved reports whether the probe has finished while mounted.
func (c *Cell) Resolved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolved
}

// Done is closed when the probe goroutine exits, whether or not its
// result was kept.
func (c *Cell) Done() <-chan struct{} {
	return c.done
}
