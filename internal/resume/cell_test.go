package resume

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// gatedProber blocks until release is closed.
type gatedProber struct {
	release chan struct{}
	verdict Verdict
	calls   atomic.Int32
}

func (p *gatedProber) Probe(ctx context.Context, locator string) Verdict {
	p.calls.Add(1)
	<-p.release
	return p.verdict
}

func waitDone(t *testing.T, c *Cell) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("probe goroutine did not finish")
	}
}

func TestCell_ResolvesOnce(t *testing.T) {
	p := &gatedProber{release: make(chan struct{}), verdict: Confirmed}
	c := NewCell(p, DocumentPath)

	var hooks atomic.Int32
	c.OnResolve(func(v Verdict) {
		hooks.Add(1)
		if v != Confirmed {
			t.Errorf("OnResolve verdict = %v, want confirmed", v)
		}
	})

	c.Mount(context.Background())
	c.Mount(context.Background())

	if got := c.Verdict(); got != Unknown {
		t.Errorf("Verdict() while pending = %v, want unknown", got)
	}

	close(p.release)
	waitDone(t, c)

	if got := c.Verdict(); got != Confirmed {
		t.Errorf("Verdict() = %v, want confirmed", got)
	}
	if !c.Resolved() {
		t.Error("Resolved() = false after probe finished")
	}
	if n := p.calls.Load(); n != 1 {
		t.Errorf("probe calls = %d, want 1", n)
	}
	if n := hooks.Load(); n != 1 {
		t.Errorf("OnResolve calls = %d, want 1", n)
	}
}

func TestCell_TeardownBeforeResolve(t *testing.T) {
	p := &gatedProber{release: make(chan struct{}), verdict: Rejected}
	c := NewCell(p, DocumentPath)

	var hooks atomic.Int32
	c.OnResolve(func(Verdict) { hooks.Add(1) })

	c.Mount(context.Background())
	c.Teardown()
	close(p.release)
	waitDone(t, c)

	if got := c.Verdict(); got != Unknown {
		t.Errorf("Verdict() after teardown = %v, want unknown (no mutation)", got)
	}
	if c.Resolved() {
		t.Error("Resolved() = true after teardown")
	}
	if n := hooks.Load(); n != 0 {
		t.Errorf("OnResolve called %d times after teardown", n)
	}
}

func TestCell_VerdictBeforeMount(t *testing.T) {
	c := NewCell(&gatedProber{release: make(chan struct{})}, DocumentPath)
	if got := c.Verdict(); got != Unknown {
		t.Errorf("Verdict() = %v, want unknown", got)
	}
	c.Teardown()
}

func TestCell_MountAfterTeardownIsIgnored(t *testing.T) {
	p := &gatedProber{release: make(chan struct{}), verdict: Rejected}
	c := NewCell(p, DocumentPath)

	var hooks atomic.Int32
	c.OnResolve(func(Verdict) { hooks.Add(1) })

	c.Mount(context.Background())
	c.Teardown()
	c.Mount(context.Background())
	close(p.release)
	waitDone(t, c)

	if got := c.Verdict(); got != Unknown {
		t.Errorf("Verdict() after teardown and remount = %v, want unknown", got)
	}
	if c.Resolved() {
		t.Error("Resolved() = true after teardown and remount")
	}
	if n := p.calls.Load(); n != 1 {
		t.Errorf("probe calls = %d, want 1", n)
	}
	if n := hooks.Load(); n != 0 {
		t.Errorf("OnResolve called %d times after teardown", n)
	}
}

func TestCell_TeardownBeforeMount(t *testing.T) {
	p := &gatedProber{release: make(chan struct{})}
	c := NewCell(p, DocumentPath)

	c.Teardown()
	c.Mount(context.Background())

	if n := p.calls.Load(); n != 0 {
		t.Errorf("probe calls = %d, want 0", n)
	}
}
