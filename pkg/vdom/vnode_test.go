package vdom

import (
	"testing"

	"github.com/vango-dev/reconcile/internal/errors"
)

type testType string

func (t testType) ComponentName() string { return string(t) }

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{VKind(0), "Unknown"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		node    *VNode
		wantErr bool
	}{
		{"nil", nil, true},
		{"text", Text("x"), false},
		{"element", Div(), false},
		{"element without tag", &VNode{Kind: KindElement}, true},
		{"fragment", Fragment(), false},
		{"component", C(testType("T"), nil), false},
		{"component without type", &VNode{Kind: KindComponent}, true},
		{"zero kind", &VNode{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, "R005") {
				t.Errorf("Validate() error code = %v, want R005", err)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		node *VNode
		want string
	}{
		{nil, "<nil>"},
		{Text("x"), "#text"},
		{Span(), "span"},
		{Fragment(), "Fragment"},
		{C(testType("Counter"), nil), "Counter"},
	}
	for _, tt := range tests {
		if got := tt.node.Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}

func TestVNodeIsInteractive(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want bool
	}{
		{"nil node", nil, false},
		{"text node", Text("hello"), false},
		{"element without handlers", Div(Class("test")), false},
		{"element with onclick", Button(OnClick(func() {})), true},
		{"fragment node", Fragment(), false},
		{"prop named on", &VNode{Kind: KindElement, Tag: "x", Props: Props{"on": 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsInteractive(); got != tt.want {
				t.Errorf("IsInteractive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInnerHTML(t *testing.T) {
	n := Div(DangerouslySetInnerHTML("<b>x</b>"))
	h, ok := n.InnerHTML()
	if !ok || h.HTML != "<b>x</b>" {
		t.Errorf("InnerHTML() = %v, %v, want <b>x</b>, true", h, ok)
	}

	n = Div(Attr{Key: InnerHTMLProp, Value: &RawHTML{HTML: "y"}})
	if h, ok := n.InnerHTML(); !ok || h.HTML != "y" {
		t.Errorf("InnerHTML() pointer form = %v, %v", h, ok)
	}

	if _, ok := Div().InnerHTML(); ok {
		t.Error("InnerHTML() on plain div should report false")
	}
}

func TestSame(t *testing.T) {
	f := func() {}
	g := func() {}
	m := map[string]any{"a": 1}
	s := []int{1, 2}

	type holder struct{ v any }

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil nil", nil, nil, true},
		{"nil value", nil, 1, false},
		{"equal ints", 1, 1, true},
		{"different types", 1, "1", false},
		{"same func", f, f, false},
		{"different funcs", f, g, false},
		{"same map", m, m, true},
		{"different map", m, map[string]any{"a": 1}, false},
		{"same slice", s, s, true},
		{"resliced", s, s[:1], false},
		{"struct with func", holder{f}, holder{f}, false},
		{"raw html", RawHTML{HTML: "a"}, RawHTML{HTML: "a"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Same(tt.a, tt.b); got != tt.want {
				t.Errorf("Same() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPropsClone(t *testing.T) {
	p := Props{"a": 1}
	c := p.Clone()
	c["b"] = 2
	if _, ok := p["b"]; ok {
		t.Error("Clone() shares storage with the original")
	}
	if Props(nil).Clone() == nil {
		t.Error("Clone() of nil props should be an empty map")
	}
}

func TestSameRef(t *testing.T) {
	a := NewRef()
	b := NewRef()
	fn := RefFunc(func(any) {})

	tests := []struct {
		name string
		x, y Ref
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", a, nil, false},
		{"same object", a, a, true},
		{"different objects", a, b, false},
		{"func refs never match", fn, fn, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameRef(tt.x, tt.y); got != tt.want {
				t.Errorf("SameRef() = %v, want %v", got, tt.want)
			}
		})
	}
}
