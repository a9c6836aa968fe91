package vdom

import (
	"testing"
	"time"
)

func TestFlatten(t *testing.T) {
	a := Text("a")
	b := Span()

	tests := []struct {
		name  string
		in    any
		kinds []VKind // 0 marks a hole
	}{
		{"nil", nil, []VKind{0}},
		{"false", false, []VKind{0}},
		{"node", a, []VKind{KindText}},
		{"typed nil node", (*VNode)(nil), []VKind{0}},
		{"slice", []*VNode{a, nil, b}, []VKind{KindText, 0, KindElement}},
		{"nested any", []any{"x", []any{1, b}, nil}, []VKind{KindText, KindText, KindElement, 0}},
		{"float", 1.5, []VKind{KindText}},
		{"stringer", time.Second, []VKind{KindText}},
		{"unknown", struct{}{}, []VKind{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tt.in)
			if len(got) != len(tt.kinds) {
				t.Fatalf("len(Flatten()) = %d, want %d", len(got), len(tt.kinds))
			}
			for i, k := range tt.kinds {
				if k == 0 {
					if got[i] != nil {
						t.Errorf("Flatten()[%d] = %v, want hole", i, got[i])
					}
					continue
				}
				if got[i] == nil || got[i].Kind != k {
					t.Errorf("Flatten()[%d] = %v, want kind %v", i, got[i], k)
				}
			}
		})
	}

	if got := Flatten(42)[0].Text; got != "42" {
		t.Errorf("Flatten(42) text = %q, want 42", got)
	}
}

func TestFragment(t *testing.T) {
	f := Fragment(Key("k"), Text("a"), "b")
	if f.Kind != KindFragment {
		t.Fatalf("Kind = %v, want Fragment", f.Kind)
	}
	if f.Key != "k" {
		t.Errorf("Key = %q, want k", f.Key)
	}
	if len(ChildrenOf(f.Props)) != 2 {
		t.Errorf("len(ChildrenOf()) = %d, want 2", len(ChildrenOf(f.Props)))
	}
}

func TestC(t *testing.T) {
	ref := NewRef()
	n := C(testType("Item"), Props{"key": 3, "ref": ref, "label": "x"}, Text("child"))
	if n.Key != "3" {
		t.Errorf("Key = %q, want 3", n.Key)
	}
	if n.Ref != ref {
		t.Error("ref not lifted")
	}
	if n.Props["label"] != "x" {
		t.Errorf("label = %v, want x", n.Props["label"])
	}
	if _, ok := n.Props["key"]; ok {
		t.Error("key should not remain in props")
	}
	kids := ChildrenOf(n.Props)
	if len(kids) != 1 || kids[0].Text != "child" {
		t.Errorf("children = %v, want [child]", kids)
	}

	if _, ok := C(testType("Bare"), nil).Props[ChildrenProp]; ok {
		t.Error("children prop set without children")
	}
}

func TestChildrenOf(t *testing.T) {
	if ChildrenOf(Props{}) != nil {
		t.Error("ChildrenOf(empty) should be nil")
	}
	if got := ChildrenOf(Props{ChildrenProp: Text("x")}); len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
	if got := ChildrenOf(Props{ChildrenProp: "x"}); len(got) != 1 || got[0].Text != "x" {
		t.Errorf("ChildrenOf(string) = %v", got)
	}
}

func TestConditionals(t *testing.T) {
	n := Text("x")
	if If(true, n) != n || If(false, n) != nil {
		t.Error("If() mismatch")
	}
	if IfElse(false, nil, n) != n {
		t.Error("IfElse() mismatch")
	}
	called := false
	When(false, func() *VNode { called = true; return n })
	if called {
		t.Error("When(false) evaluated its body")
	}
	got := Range([]string{"a", "b"}, func(s string, i int) *VNode {
		return If(i == 0, Text(s))
	})
	if len(got) != 2 || got[1] != nil {
		t.Errorf("Range() = %v, want [a <nil>]", got)
	}
}

func TestClasses(t *testing.T) {
	a := Classes("x", []string{"y", ""}, map[string]bool{"b": true, "a": true, "c": false})
	if a.Value != "x y a b" {
		t.Errorf("Classes() = %q, want %q", a.Value, "x y a b")
	}
	if !ClassIf(false, "x").IsEmpty() {
		t.Error("ClassIf(false) should be empty")
	}
}
