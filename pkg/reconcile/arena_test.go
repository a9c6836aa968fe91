package reconcile

import (
	"testing"

	"github.com/vango-dev/reconcile/pkg/component"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

func TestArenaRecyclesHandles(t *testing.T) {
	a := newArena()
	h1 := a.Alloc(vdom.Div(), 0)
	h2 := a.Alloc(vdom.Span(), h1)
	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.Len())
	}
	if got := a.get(h2).depth; got != 1 {
		t.Errorf("child depth = %d, want 1", got)
	}

	a.Release(h2)
	a.Release(h2)
	if a.Live(h2) || a.Len() != 1 {
		t.Errorf("after release: Live = %v, Len = %d", a.Live(h2), a.Len())
	}
	if h3 := a.Alloc(vdom.P(), 0); h3 != h2 {
		t.Errorf("Alloc() = %d, want recycled handle %d", h3, h2)
	}
	a.Release(0)
	if a.Live(0) {
		t.Error("placeholder reported live")
	}
}

func TestArenaResolve(t *testing.T) {
	typ := component.Func("F", func(component.Props, any) any { return nil })
	tests := []struct {
		name  string
		v     *vdom.VNode
		kind  variant
		ctype *component.Type
	}{
		{"nil", nil, variantInvalid, nil},
		{"text", vdom.Text("x"), variantText, nil},
		{"element", vdom.Div(), variantElement, nil},
		{"fragment", vdom.Fragment(), variantComponent, component.Fragment},
		{"component", vdom.C(typ, nil), variantComponent, typ},
		{"unknown component type", &vdom.VNode{Kind: vdom.KindComponent, Type: foreignType{}}, variantInvalid, nil},
		{"element without tag", &vdom.VNode{Kind: vdom.KindElement}, variantInvalid, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ctype, _ := resolve(tt.v)
			if kind != tt.kind || ctype != tt.ctype {
				t.Errorf("resolve() = %v, %v, want %v, %v", kind, ctype, tt.kind, tt.ctype)
			}
		})
	}
}

type foreignType struct{}

func (foreignType) ComponentName() string { return "Foreign" }

func TestArenaMatches(t *testing.T) {
	a := newArena()
	f := component.Func("F", func(component.Props, any) any { return nil })
	g := component.Func("G", func(component.Props, any) any { return nil })

	div := a.Alloc(vdom.Div(vdom.Key("k")), 0)
	text := a.Alloc(vdom.Text("x"), 0)
	comp := a.Alloc(vdom.C(f, nil), 0)

	tests := []struct {
		name string
		h    Handle
		v    *vdom.VNode
		want bool
	}{
		{"same tag and key", div, vdom.Div(vdom.Key("k")), true},
		{"different key", div, vdom.Div(vdom.Key("j")), false},
		{"different tag", div, vdom.Span(vdom.Key("k")), false},
		{"text to text", text, vdom.Text("y"), true},
		{"text to element", text, vdom.Span(), false},
		{"same component", comp, vdom.C(f, nil), true},
		{"other component", comp, vdom.C(g, nil), false},
		{"placeholder", 0, vdom.Div(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Matches(tt.h, tt.v); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
