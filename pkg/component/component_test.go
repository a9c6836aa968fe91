package component

import (
	"testing"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

type widget struct {
	Base
}

func (w *widget) Render(Props, State, any) any { return nil }

type recordingUpdater struct {
	states []State
	forced int
	cbs    int
}

func (u *recordingUpdater) EnqueueSetState(fn func(State, Props) State, cbs []func()) {
	u.states = append(u.states, fn(State{"n": 1}, nil))
	u.cbs += len(cbs)
}

func (u *recordingUpdater) EnqueueForceUpdate(cbs []func()) {
	u.forced++
	u.cbs += len(cbs)
}

func TestInstantiate(t *testing.T) {
	tests := []struct {
		name     string
		typ      *Type
		wantErr  bool
		wantFunc bool
	}{
		{"class", Class("W", func(Props, any) Instance { return &widget{} }), false, false},
		{"function", Func("F", func(Props, any) any { return nil }), false, true},
		{"nil type", nil, true, false},
		{"empty type", &Type{Name: "Empty"}, true, false},
		{"class returning nil", Class("Nil", func(Props, any) Instance { return nil }), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := Instantiate(tt.typ, Props{}, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Instantiate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, "R006") {
					t.Errorf("error code = %v, want R006", err)
				}
				return
			}
			_, isFunc := inst.(*funcInstance)
			if isFunc != tt.wantFunc {
				t.Errorf("function shim = %v, want %v", isFunc, tt.wantFunc)
			}
		})
	}
}

func TestFunctionInstanceHasOnlyRender(t *testing.T) {
	inst, _ := Instantiate(Func("F", func(p Props, ctx any) any { return ctx }), nil, nil)
	if _, ok := inst.(DidMounter); ok {
		t.Error("function shim should not implement DidMounter")
	}
	if _, ok := inst.(ShouldUpdater); ok {
		t.Error("function shim should not implement ShouldUpdater")
	}
	if got := inst.Render(nil, nil, "ctx"); got != "ctx" {
		t.Errorf("Render() = %v, want ctx", got)
	}
}

func TestComponentName(t *testing.T) {
	var nilType *Type
	if got := nilType.ComponentName(); got != "Anonymous" {
		t.Errorf("ComponentName() = %q, want Anonymous", got)
	}
	if got := Fragment.ComponentName(); got != "Fragment" {
		t.Errorf("ComponentName() = %q, want Fragment", got)
	}
	if Fragment.IsClass() {
		t.Error("Fragment should be a function component")
	}
}

func TestFragmentRendersChildren(t *testing.T) {
	kids := []*vdom.VNode{vdom.Text("a"), nil}
	got, _ := Fragment.Func(Props{vdom.ChildrenProp: kids}, nil).([]*vdom.VNode)
	if len(got) != 2 {
		t.Errorf("len(Fragment()) = %d, want 2", len(got))
	}
}

func TestSetStateBeforeMount(t *testing.T) {
	w := &widget{}
	w.SetState(State{"a": 1})
	w.SetStateFunc(func(prev State, _ Props) State {
		return State{"b": prev["a"].(int) + 1}
	})
	w.SetStateFunc(func(State, Props) State { return nil })
	if w.State["a"] != 1 || w.State["b"] != 2 {
		t.Errorf("State = %v, want a=1 b=2", w.State)
	}
	// No updater bound: nothing to schedule.
	w.ForceUpdate()
}

func TestSetStateDelegatesToUpdater(t *testing.T) {
	u := &recordingUpdater{}
	w := &widget{}
	w.Bind(u)
	if w.Updater() != u {
		t.Fatal("Updater() did not return the bound updater")
	}

	w.SetState(State{"x": true}, func() {})
	w.ForceUpdate(func() {}, func() {})

	if len(u.states) != 1 || u.states[0]["x"] != true {
		t.Errorf("staged states = %v", u.states)
	}
	if u.forced != 1 {
		t.Errorf("forced = %d, want 1", u.forced)
	}
	if u.cbs != 3 {
		t.Errorf("callbacks = %d, want 3", u.cbs)
	}
	if w.State != nil {
		t.Errorf("State written directly after mount: %v", w.State)
	}
}

func TestStateHelpers(t *testing.T) {
	s := State{"a": 1}
	c := s.Clone()
	c.Merge(State{"a": 2, "b": 3})
	if s["a"] != 1 {
		t.Error("Clone() shares storage")
	}
	if c["a"] != 2 || c["b"] != 3 {
		t.Errorf("Merge() = %v", c)
	}
	m := ContextMap{"k": 1}.Clone()
	m["j"] = 2
	if len(m) != 2 {
		t.Errorf("len(ContextMap.Clone()) = %d, want 2", len(m))
	}
}
