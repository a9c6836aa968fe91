package fixture

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/host/memhost"
	"github.com/vango-dev/reconcile/pkg/reconcile"
	"github.com/vango-dev/reconcile/pkg/render"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

func quiet() reconcile.Option {
	return reconcile.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func html(t *testing.T, s *Session) string {
	t.Helper()
	out, err := render.NewRenderer(render.Config{}).RenderChildren(s.Container)
	if err != nil {
		t.Fatalf("RenderChildren error: %v", err)
	}
	return out
}

func count(muts []memhost.Mutation, op memhost.Op) int {
	n := 0
	for _, m := range muts {
		if m.Op == op {
			n++
		}
	}
	return n
}

func TestSessionPlaysCounterFixture(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "counter.yaml"), Demo())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if f.Name != "counter" || len(f.Steps) != 3 {
		t.Fatalf("Load = %q with %d steps, want counter with 3", f.Name, len(f.Steps))
	}

	s := NewSession(f, Demo(), quiet())

	if _, err := s.Step(); err != nil {
		t.Fatalf("mount error: %v", err)
	}
	want := `<main class="app"><div class="counter" id="c"><button id="c-dec">-</button>` +
		`<span class="count">1</span><button id="c-inc">+</button></div>` +
		`<p class="static">first</p><ul><li>a</li><li>b</li><li>c</li></ul></main>`
	if got := html(t, s); got != want {
		t.Errorf("after mount:\n got %s\nwant %s", got, want)
	}

	muts, err := s.Step()
	if err != nil {
		t.Fatalf("increment error: %v", err)
	}
	if got := count(muts, memhost.OpSetText); got != 1 {
		t.Errorf("increment SetText = %d, want 1", got)
	}
	if got := s.FindByID("c").TextContent(); got != "-3+" {
		t.Errorf("counter text = %q, want %q", got, "-3+")
	}

	muts, err = s.Step()
	if err != nil {
		t.Fatalf("reorder error: %v", err)
	}
	if got := count(muts, memhost.OpCreateElement); got != 0 {
		t.Errorf("reorder CreateElement = %d, want 0", got)
	}
	if got := count(muts, memhost.OpRemove); got != 1 {
		t.Errorf("reorder Remove = %d, want 1", got)
	}
	want = `<main class="app"><div class="counter" id="c"><button id="c-dec">-</button>` +
		`<span class="count">3</span><button id="c-inc">+</button></div>` +
		`<p class="static">first</p><ul><li>c</li><li>a</li></ul></main>`
	if got := html(t, s); got != want {
		t.Errorf("after reorder:\n got %s\nwant %s", got, want)
	}

	if !s.Done() {
		t.Error("Done() = false after last step")
	}
	if _, err := s.Step(); !errors.Is(err, "V171") {
		t.Errorf("Step past end = %v, want V171", err)
	}
}

func TestSessionDispatchByNodeID(t *testing.T) {
	f, err := Parse([]byte(`
steps:
  - tree: {component: counter}
`), Demo())
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	s := NewSession(f, Demo(), quiet())
	if err := s.Run(); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	dec := s.FindByID("counter-dec")
	if dec == nil {
		t.Fatal("missing counter-dec button")
	}
	if _, err := s.Dispatch(dec.ID(), "click", ""); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if got := s.FindByID("counter").TextContent(); got != "--1+" {
		t.Errorf("counter text = %q, want %q", got, "--1+")
	}

	if _, err := s.Dispatch(99999, "click", ""); !errors.Is(err, "V170") {
		t.Errorf("Dispatch(unknown) = %v, want V170", err)
	}
	if _, err := s.Dispatch(dec.ID(), "keydown", ""); !errors.Is(err, "V170") {
		t.Errorf("Dispatch(no listener) = %v, want V170", err)
	}
}

func TestSessionDispatchMissingTarget(t *testing.T) {
	f, err := Parse([]byte(`
steps:
  - tree: {tag: div}
  - dispatch: {id: nope, event: click}
`), Demo())
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	s := NewSession(f, Demo(), quiet())
	if err := s.Run(); !errors.Is(err, "F104") {
		t.Errorf("Run = %v, want F104", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		code string
	}{
		{"bad yaml", "steps: [", "F100"},
		{"no steps", "name: x", "F101"},
		{"empty step", "steps: [{name: a}]", "F101"},
		{"tree and dispatch", "steps: [{tree: {tag: p}, dispatch: {id: a, event: click}}]", "F101"},
		{"dispatch without event", "steps: [{dispatch: {id: a}}]", "F101"},
		{"unknown component", "steps: [{tree: {component: nope}}]", "F102"},
		{"no kind", "steps: [{tree: {key: a}}]", "F103"},
		{"two kinds", "steps: [{tree: {tag: p, text: hi}}]", "F103"},
		{"nested bad child", "steps: [{tree: {tag: p, children: [{tag: b, fragment: true}]}}]", "F103"},
		{"html with children", "steps: [{tree: {tag: p, html: '<b>x</b>', children: [{text: y}]}}]", "F103"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), Demo())
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestNodeBuild(t *testing.T) {
	f, err := Parse([]byte(`
steps:
  - tree:
      fragment: true
      children:
        - tag: p
          key: first
          props: {id: x, hidden: true}
          children:
            - text: ""
            - text: hello
        - tag: div
          html: "<em>raw</em>"
        - component: list
          key: l
          props: {items: [1, 2], ordered: true}
`), Demo())
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	v := f.Steps[0].Tree.Build(Demo())

	if v.Kind != vdom.KindFragment || len(v.Children) != 3 {
		t.Fatalf("root = %v with %d children, want fragment with 3", v.Kind, len(v.Children))
	}
	p := v.Children[0]
	if p.Key != "first" || p.Props["id"] != "x" || p.Props["hidden"] != true {
		t.Errorf("p = key %q props %v", p.Key, p.Props)
	}
	if len(p.Children) != 2 || p.Children[0].Text != "" || p.Children[1].Text != "hello" {
		t.Errorf("p children = %v", p.Children)
	}
	if raw, ok := v.Children[1].InnerHTML(); !ok || raw.HTML != "<em>raw</em>" {
		t.Errorf("div inner html = %v, %v", raw, ok)
	}
	if c := v.Children[2]; c.Kind != vdom.KindComponent || c.Key != "l" {
		t.Errorf("list = kind %v key %q", c.Kind, c.Key)
	}

	got, err := render.ToString(v, quiet())
	if err != nil {
		t.Fatalf("ToString error: %v", err)
	}
	want := `<p hidden id="x">hello</p><div><em>raw</em></div><ol><li>1</li><li>2</li></ol>`
	if got != want {
		t.Errorf("ToString =\n %s\nwant %s", got, want)
	}
}
