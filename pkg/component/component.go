package component

import (
	"fmt"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Props are the inputs a component is rendered with.
type Props = vdom.Props

// State is a component's own data.
type State map[string]any

// Clone returns a shallow copy of s. A nil State clones to an empty map.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge copies every entry of update into s.
func (s State) Merge(update State) {
	for k, v := range update {
		s[k] = v
	}
}

// ContextMap is the ambient context passed down the tree. Entries keyed by
// a Context ID hold that context's Provider; other entries come from
// GetChildContext.
type ContextMap map[string]any

// Clone returns a shallow copy of m.
func (m ContextMap) Clone() ContextMap {
	out := make(ContextMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Instance is a live component.
//
// ctx is the value of the component's ContextType when it declares one,
// otherwise the ambient ContextMap.
type Instance interface {
	Core() *Base
	Render(props Props, state State, ctx any) any
}

// Type describes a component implementation.
type Type struct {
	// Name is used in diagnostics.
	Name string

	// New builds a class instance. Types without New are function components.
	New func(props Props, ctx any) Instance

	// Func renders a function component.
	Func func(props Props, ctx any) any

	// DeriveState returns state to merge into the staged state before every
	// render. When set, ComponentWillMount and ComponentWillReceiveProps are
	// not called.
	DeriveState func(props Props, state State) State

	// DeriveStateFromError makes the component an error boundary: the
	// returned state is applied when a descendant fails.
	DeriveStateFromError func(err error) State

	// ContextType selects the context whose value is passed as ctx.
	ContextType *Context
}

// ComponentName implements vdom.ComponentType.
func (t *Type) ComponentName() string {
	if t == nil || t.Name == "" {
		return "Anonymous"
	}
	return t.Name
}

// IsClass reports whether t builds stateful instances.
func (t *Type) IsClass() bool {
	return t != nil && t.New != nil
}

// Class declares a class component type.
func Class(name string, newFn func(props Props, ctx any) Instance) *Type {
	return &Type{Name: name, New: newFn}
}

// Func declares a function component type.
func Func(name string, render func(props Props, ctx any) any) *Type {
	return &Type{Name: name, Func: render}
}

// Instantiate builds the backing instance for t.
func Instantiate(t *Type, props Props, ctx any) (Instance, error) {
	switch {
	case t == nil:
		return nil, errors.New("R006").WithDetail("nil component type")
	case t.New != nil:
		inst := t.New(props, ctx)
		if inst == nil || inst.Core() == nil {
			return nil, errors.New("R006").WithNode(t.ComponentName()).
				WithDetail(fmt.Sprintf("%s.New returned no instance", t.ComponentName()))
		}
		return inst, nil
	case t.Func != nil:
		return &funcInstance{render: t.Func}, nil
	default:
		return nil, errors.New("R006").WithNode(t.ComponentName()).
			WithSuggestion("Set either New or Func on the component type")
	}
}

// funcInstance backs a function component. Render is its only capability.
type funcInstance struct {
	Base
	render func(props Props, ctx any) any
}

func (f *funcInstance) Render(props Props, _ State, ctx any) any {
	return f.render(props, ctx)
}

// Fragment renders its children without a wrapper.
var Fragment = Func("Fragment", func(props Props, _ any) any {
	return vdom.ChildrenOf(props)
})
