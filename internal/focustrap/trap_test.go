package focustrap

import "testing"

type node struct {
	name     string
	disabled bool
}

func list(nodes ...*node) ContainerFunc[*node] {
	return func() []*node { return nodes }
}

func enabled(n *node) bool { return !n.disabled }

func TestTrap_Next_Cycles(t *testing.T) {
	a, b, c := &node{name: "a"}, &node{name: "b"}, &node{name: "c"}
	trap := New[*node](list(a, b, c), enabled)

	tests := []struct {
		name     string
		current  *node
		backward bool
		want     *node
	}{
		{"forward middle", a, false, b},
		{"forward wraps", c, false, a},
		{"backward middle", c, true, b},
		{"backward wraps", a, true, c},
		{"outside forward", &node{name: "x"}, false, a},
		{"outside backward", &node{name: "x"}, true, c},
		{"nil current", nil, false, a},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := trap.Next(tt.current, tt.backward)
			if !ok {
				t.Fatal("Next() ok = false")
			}
			if got != tt.want {
				t.Errorf("Next() = %s, want %s", got.name, tt.want.name)
			}
		})
	}
}

func TestTrap_Next_SingleElementPinned(t *testing.T) {
	only := &node{name: "only"}
	trap := New[*node](list(only), enabled)

	for _, backward := range []bool{false, true} {
		got, ok := trap.Next(only, backward)
		if !ok || got != only {
			t.Errorf("Next(backward=%v) = %v, %v; want pinned element", backward, got, ok)
		}
	}
}

func TestTrap_Empty(t *testing.T) {
	trap := New[*node](list(), enabled)

	if _, ok := trap.Next(nil, false); ok {
		t.Error("Next() on empty set should report false")
	}
	if _, ok := trap.First(); ok {
		t.Error("First() on empty set should report false")
	}
	if _, ok := trap.Last(); ok {
		t.Error("Last() on empty set should report false")
	}

	if got := New[*node](nil, nil).Candidates(); len(got) != 0 {
		t.Errorf("Candidates() = %v, want empty", got)
	}
}

func TestTrap_SkipsNonInteractable(t *testing.T) {
	a, b, c := &node{name: "a"}, &node{name: "b", disabled: true}, &node{name: "c"}
	trap := New[*node](list(a, b, c), enabled)

	got, _ := trap.Next(a, false)
	if got != c {
		t.Errorf("Next(a) = %s, want c", got.name)
	}
	last, _ := trap.Last()
	if last != c {
		t.Errorf("Last() = %s, want c", last.name)
	}
}

func TestTrap_ReevaluatesDynamicSet(t *testing.T) {
	a, b := &node{name: "a"}, &node{name: "b"}
	nodes := []*node{a}
	trap := New[*node](ContainerFunc[*node](func() []*node { return nodes }), enabled)

	if got, _ := trap.Next(a, false); got != a {
		t.Fatalf("Next() = %s, want a", got.name)
	}

	nodes = append(nodes, b)
	if got, _ := trap.Next(a, false); got != b {
		t.Errorf("Next() after growth = %s, want b", got.name)
	}

	a.disabled = true
	if got, _ := trap.Next(b, true); got != b {
		t.Errorf("Next() after disabling a = %s, want b", got.name)
	}
}
