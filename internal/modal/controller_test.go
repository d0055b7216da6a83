package modal

import (
	"testing"

	"github.com/Zachkp/portfolio/internal/focustrap"
)

type element struct {
	name   string
	hidden bool
}

// fakePage models a document body with an overflow style and a focused
// element.
type fakePage struct {
	overflow string
	focused  *element
	locks    int
	releases int
	history  []string
}

func (p *fakePage) Focused() (*element, bool) {
	return p.focused, p.focused != nil
}

func (p *fakePage) Focus(e *element) {
	p.focused = e
	p.history = append(p.history, e.name)
}

func (p *fakePage) Lock() func() {
	p.locks++
	prev := p.overflow
	p.overflow = "hidden"
	return func() {
		p.releases++
		p.overflow = prev
	}
}

func newController(page *fakePage, content ...*element) *Controller[*element] {
	return New(Options[*element]{
		Focus:        page,
		Scroll:       page,
		Content:      focustrap.ContainerFunc[*element](func() []*element { return content }),
		Interactable: func(e *element) bool { return !e.hidden },
	})
}

func TestController_OpenCapturesAndFocusesFirst(t *testing.T) {
	trigger := &element{name: "resume-button"}
	closeBtn, download := &element{name: "close"}, &element{name: "download"}
	page := &fakePage{overflow: "auto", focused: trigger}

	c := newController(page, closeBtn, download)
	c.Open()

	if c.State() != Open {
		t.Fatalf("State() = %v, want open", c.State())
	}
	if page.overflow != "hidden" {
		t.Errorf("overflow = %q, want hidden", page.overflow)
	}
	if page.focused != closeBtn {
		t.Errorf("focused = %v, want first focusable", page.focused)
	}

	c.Open()
	if page.locks != 1 {
		t.Errorf("locks = %d, want 1 (re-open is a no-op)", page.locks)
	}
}

func TestController_AllExitPathsRevert(t *testing.T) {
	exits := map[string]func(*Controller[*element]){
		"explicit": (*Controller[*element]).Close,
		"cancel":   (*Controller[*element]).Cancel,
		"backdrop": (*Controller[*element]).Dismiss,
		"teardown": (*Controller[*element]).Teardown,
	}

	for name, exit := range exits {
		t.Run(name, func(t *testing.T) {
			trigger := &element{name: "trigger"}
			page := &fakePage{overflow: "scroll", focused: trigger}
			c := newController(page, &element{name: "close"})

			c.Open()
			exit(c)

			if c.State() != Closed {
				t.Errorf("State() = %v, want closed", c.State())
			}
			if page.overflow != "scroll" {
				t.Errorf("overflow = %q, want restored %q", page.overflow, "scroll")
			}
			if page.releases != 1 {
				t.Errorf("releases = %d, want 1", page.releases)
			}
			if page.focused != trigger {
				t.Errorf("focused = %v, want anchor restored", page.focused)
			}

			exit(c)
			if page.releases != 1 {
				t.Errorf("second exit released again: %d", page.releases)
			}
		})
	}
}

func TestController_ExitReasons(t *testing.T) {
	page := &fakePage{}
	c := newController(page)

	var got []Reason
	c.OnChange(func(s State, r Reason) { got = append(got, r) })

	c.Open()
	c.Cancel()
	c.Open()
	c.Dismiss()
	c.Open()
	c.Close()

	want := []Reason{ReasonOpen, ReasonCancelKey, ReasonOpen, ReasonBackdrop, ReasonOpen, ReasonExplicit}
	if len(got) != len(want) {
		t.Fatalf("reasons = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("reason[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestController_NoFocusedElement(t *testing.T) {
	page := &fakePage{overflow: ""}
	c := newController(page, &element{name: "close"})

	c.Open()
	if page.focused == nil || page.focused.name != "close" {
		t.Fatalf("focused = %v, want close", page.focused)
	}

	page.history = nil
	c.Close()

	if len(page.history) != 0 {
		t.Errorf("close moved focus %v with no anchor captured", page.history)
	}
	if page.overflow != "" {
		t.Errorf("overflow = %q, want empty", page.overflow)
	}
}

func TestController_TabSingleElementPinned(t *testing.T) {
	only := &element{name: "download"}
	page := &fakePage{}
	c := newController(page, only)
	c.Open()

	for _, backward := range []bool{false, true, false, true} {
		if !c.Tab(backward) {
			t.Fatal("Tab() not consumed while open")
		}
		if page.focused != only {
			t.Errorf("focused = %v after Tab(backward=%v), want pinned", page.focused, backward)
		}
	}
}

func TestController_TabWrapsAndSkipsHidden(t *testing.T) {
	a, b, c3 := &element{name: "a"}, &element{name: "b", hidden: true}, &element{name: "c"}
	page := &fakePage{}
	c := newController(page, a, b, c3)
	c.Open()

	c.Tab(false)
	if page.focused != c3 {
		t.Errorf("focused = %v, want c", page.focused.name)
	}
	c.Tab(false)
	if page.focused != a {
		t.Errorf("focused = %v, want wrap to a", page.focused.name)
	}
	c.Tab(true)
	if page.focused != c3 {
		t.Errorf("focused = %v, want wrap back to c", page.focused.name)
	}
}

func TestController_TabEmptyContent(t *testing.T) {
	anchor := &element{name: "anchor"}
	page := &fakePage{focused: anchor}
	c := newController(page)
	c.Open()

	if !c.Tab(false) {
		t.Error("Tab() should swallow the key while open")
	}
	if page.focused != anchor {
		t.Errorf("focused = %v, want unchanged", page.focused)
	}
}

func TestController_TabWhileClosed(t *testing.T) {
	c := newController(&fakePage{}, &element{name: "a"})
	if c.Tab(false) {
		t.Error("Tab() consumed while closed")
	}
}

func TestController_DeferredFocusSkippedAfterClose(t *testing.T) {
	first := &element{name: "first"}
	anchor := &element{name: "anchor"}
	page := &fakePage{focused: anchor}

	var pending []func()
	c := New(Options[*element]{
		Focus:     page,
		Scroll:    page,
		Content:   focustrap.ContainerFunc[*element](func() []*element { return []*element{first} }),
		Scheduler: SchedulerFunc(func(fn func()) { pending = append(pending, fn) }),
	})

	c.Open()
	c.Close()
	for _, fn := range pending {
		fn()
	}

	if page.focused != anchor {
		t.Errorf("focused = %v, want anchor (stale paint callback must not steal focus)", page.focused.name)
	}
}

func TestController_NilHostParts(t *testing.T) {
	c := New(Options[*element]{})
	c.Open()
	c.Tab(false)
	c.Teardown()
	if c.IsOpen() {
		t.Error("IsOpen() = true after teardown")
	}
}
