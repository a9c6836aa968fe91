package reconcile

import (
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/vango-dev/reconcile/pkg/component"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/host/memhost"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// setup returns a renderer over a fresh document and an empty container.
func setup(t *testing.T, opts ...Option) (*Renderer, *memhost.Document, *memhost.Node) {
	t.Helper()
	doc := memhost.NewDocument()
	container := doc.Element("main")
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	r := New(doc, opts...)
	doc.Drain()
	return r, doc, container
}

// markup serializes the children of n with attributes sorted by name.
func markup(n *memhost.Node) string {
	var b strings.Builder
	for _, c := range n.Children() {
		writeNode(&b, c)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *memhost.Node) {
	if n.NodeType() == host.TextNode {
		b.WriteString(n.Data())
		return
	}
	b.WriteString("<" + n.LocalName())
	attrs := n.Attributes()
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
	for _, a := range attrs {
		b.WriteString(" " + a.Name + `="` + a.Value + `"`)
	}
	b.WriteString(">")
	for _, c := range n.Children() {
		writeNode(b, c)
	}
	b.WriteString("</" + n.LocalName() + ">")
}

// child returns the i-th child of n as a concrete node.
func child(n *memhost.Node, i int) *memhost.Node {
	kids := n.Children()
	if i >= len(kids) {
		return nil
	}
	return kids[i]
}

// probe is a class component that records every lifecycle call.
type probe struct {
	component.Base
	name   string
	log    *[]string
	render func(p *probe) any
	scu    func(next component.Props, nextState component.State) bool
	mount  func(p *probe)
}

func (p *probe) rec(event string) {
	if p.log != nil {
		*p.log = append(*p.log, p.name+":"+event)
	}
}

func (p *probe) Render(component.Props, component.State, any) any {
	p.rec("Render")
	if p.render == nil {
		return nil
	}
	return p.render(p)
}

func (p *probe) ComponentWillMount() { p.rec("WillMount") }

func (p *probe) ComponentDidMount() {
	p.rec("DidMount")
	if p.mount != nil {
		p.mount(p)
	}
}

func (p *probe) ComponentWillReceiveProps(component.Props, any) { p.rec("WillReceiveProps") }

func (p *probe) ShouldComponentUpdate(next component.Props, nextState component.State, _ any) bool {
	p.rec("ShouldUpdate")
	if p.scu != nil {
		return p.scu(next, nextState)
	}
	return true
}

func (p *probe) ComponentWillUpdate(component.Props, component.State, any) { p.rec("WillUpdate") }

func (p *probe) GetSnapshotBeforeUpdate(component.Props, component.State) any {
	p.rec("Snapshot")
	return p.name + "-snap"
}

func (p *probe) ComponentDidUpdate(_ component.Props, _ component.State, snapshot any) {
	p.rec("DidUpdate(" + snapshot.(string) + ")")
}

func (p *probe) ComponentWillUnmount() { p.rec("WillUnmount") }

// probeType declares a probe component. Every instance it builds is also
// stored in *last.
func probeType(name string, log *[]string, last **probe, render func(p *probe) any) *component.Type {
	return component.Class(name, func(component.Props, any) component.Instance {
		p := &probe{name: name, log: log, render: render}
		if last != nil {
			*last = p
		}
		return p
	})
}

// label is a function component rendering its "text" prop in a span.
var label = component.Func("Label", func(props component.Props, _ any) any {
	s, _ := props["text"].(string)
	return vdom.Span(s)
})

// failingErrors records failures instead of walking boundaries.
type failingErrors struct {
	failures []*Failure
}

func (f *failingErrors) HandleError(_ *Renderer, fail *Failure) {
	f.failures = append(f.failures, fail)
}
