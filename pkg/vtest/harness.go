package vtest

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/reconcile/pkg/host/memhost"
	"github.com/vango-dev/reconcile/pkg/reconcile"
	"github.com/vango-dev/reconcile/pkg/render"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

func quiet() reconcile.Option {
	return reconcile.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// Harness drives a Renderer over an in-memory document for a test.
type Harness struct {
	tb        testing.TB
	Doc       *memhost.Document
	Container *memhost.Node
	Renderer  *reconcile.Renderer

	// Failures collects every failure reported since the harness was built.
	Failures []*reconcile.Failure

	last []memhost.Mutation
}

// New builds a harness. Failures are recorded and then handled by the
// default error boundaries, with logging discarded; opts may override both.
func New(tb testing.TB, opts ...reconcile.Option) *Harness {
	tb.Helper()
	h := &Harness{tb: tb, Doc: memhost.NewDocument()}
	h.Container = h.Doc.Element("body")
	base := []reconcile.Option{
		quiet(),
		reconcile.WithHooks(reconcile.Hooks{
			OnError: func(f *reconcile.Failure) { h.Failures = append(h.Failures, f) },
		}),
	}
	h.Renderer = reconcile.New(h.Doc, append(base, opts...)...)
	h.Doc.Drain()
	return h
}

// Render reconciles v into the container.
func (h *Harness) Render(v *vdom.VNode) *Harness {
	h.Renderer.Render(h.Container, v)
	h.last = h.Doc.Drain()
	return h
}

// Hydrate parses markup into the container and hydrates v over it.
func (h *Harness) Hydrate(markup string, v *vdom.VNode) *Harness {
	h.tb.Helper()
	parsed, err := h.Doc.Parse("body", markup)
	if err != nil {
		h.tb.Fatalf("parse %q: %v", markup, err)
	}
	h.Container = parsed
	h.Doc.Drain()
	h.Renderer.Hydrate(h.Container, v)
	h.last = h.Doc.Drain()
	return h
}

// Flush runs queued re-renders.
func (h *Harness) Flush() *Harness {
	h.Renderer.Flush()
	h.last = h.Doc.Drain()
	return h
}

// Unmount tears the tree down.
func (h *Harness) Unmount() *Harness {
	h.Renderer.Unmount(h.Container)
	h.last = h.Doc.Drain()
	return h
}

// Find returns the element whose id attribute is id, failing the test when
// there is none.
func (h *Harness) Find(id string) *memhost.Node {
	h.tb.Helper()
	if n := find(h.Container, id); n != nil {
		return n
	}
	h.tb.Fatalf("no element with id %q in:\n%s", id, truncate(h.HTML(), 500))
	return nil
}

func find(n *memhost.Node, id string) *memhost.Node {
	for _, c := range n.Children() {
		if v, ok := c.Attr("id"); ok && v == id {
			return c
		}
		if found := find(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Dispatch fires event with arg on the element with the given id and
// flushes the re-renders it caused.
func (h *Harness) Dispatch(id, event string, arg any) *Harness {
	h.tb.Helper()
	if err := h.Find(id).Dispatch(event, arg); err != nil {
		h.tb.Fatalf("dispatch %s on #%s: %v", event, id, err)
	}
	return h.Flush()
}

// Click dispatches a click.
func (h *Harness) Click(id string) *Harness {
	h.tb.Helper()
	return h.Dispatch(id, "click", nil)
}

// HTML serializes the container's children with sorted attributes.
func (h *Harness) HTML() string {
	out, err := render.NewRenderer(render.Config{}).RenderChildren(h.Container)
	if err != nil {
		h.tb.Fatalf("render: %v", err)
	}
	return out
}

// Mutations returns the host mutations of the last action.
func (h *Harness) Mutations() []memhost.Mutation { return h.last }

// ExpectHTML asserts the exact serialized container content.
func (h *Harness) ExpectHTML(want string) {
	h.tb.Helper()
	if got := h.HTML(); got != want {
		h.tb.Errorf("HTML =\n%s\nwant\n%s", got, want)
	}
}

// ExpectContains asserts that the serialized container contains s.
func (h *Harness) ExpectContains(s string) {
	h.tb.Helper()
	if got := h.HTML(); !strings.Contains(got, s) {
		h.tb.Errorf("expected rendered output to contain %q, got:\n%s", s, truncate(got, 500))
	}
}

// ExpectText asserts the text content of the element with the given id.
func (h *Harness) ExpectText(id, want string) {
	h.tb.Helper()
	if got := h.Find(id).TextContent(); got != want {
		h.tb.Errorf("text of #%s = %q, want %q", id, got, want)
	}
}

// ExpectMutations asserts how many mutations of kind op the last action
// caused.
func (h *Harness) ExpectMutations(op memhost.Op, want int) {
	h.tb.Helper()
	got := 0
	for _, m := range h.last {
		if m.Op == op {
			got++
		}
	}
	if got != want {
		h.tb.Errorf("%v mutations = %d, want %d", op, got, want)
	}
}

// ExpectNoFailures asserts that nothing failed so far.
func (h *Harness) ExpectNoFailures() {
	h.tb.Helper()
	for _, f := range h.Failures {
		h.tb.Errorf("unexpected failure: %v", f)
	}
}

// ExpectFailure asserts that exactly one failure of the given phase was
// reported and returns it.
func (h *Harness) ExpectFailure(phase reconcile.Phase) *reconcile.Failure {
	h.tb.Helper()
	var match []*reconcile.Failure
	for _, f := range h.Failures {
		if f.Phase == phase {
			match = append(match, f)
		}
	}
	if len(match) != 1 {
		h.tb.Errorf("%s failures = %d, want 1 (all: %v)", phase, len(match), h.Failures)
		return nil
	}
	return match[0]
}
