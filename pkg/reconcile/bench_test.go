package reconcile

import (
	"io"
	"log/slog"
	"strconv"
	"testing"

	"github.com/vango-dev/reconcile/pkg/component"
	"github.com/vango-dev/reconcile/pkg/host/memhost"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

func benchSetup(b *testing.B) (*Renderer, *memhost.Document, *memhost.Node) {
	b.Helper()
	doc := memhost.NewDocument()
	container := doc.Element("main")
	r := New(doc, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	doc.Drain()
	return r, doc, container
}

func keyedList(ids []int) *vdom.VNode {
	return vdom.Ul(vdom.Range(ids, func(id int, _ int) *vdom.VNode {
		return vdom.Li(vdom.Key(id), strconv.Itoa(id))
	}))
}

func ids(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// BenchmarkMountList benchmarks mounting a 1000 item list from scratch.
func BenchmarkMountList(b *testing.B) {
	items := ids(1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		r, doc, container := benchSetup(b)
		b.StartTimer()
		r.Render(container, keyedList(items))
		doc.Drain()
	}
}

// BenchmarkKeyedReverse benchmarks reversing a 1000 item keyed list.
func BenchmarkKeyedReverse(b *testing.B) {
	forward := ids(1000)
	reverse := make([]int, len(forward))
	for i, id := range forward {
		reverse[len(forward)-1-i] = id
	}
	r, doc, container := benchSetup(b)
	r.Render(container, keyedList(forward))
	doc.Drain()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			r.Render(container, keyedList(reverse))
		} else {
			r.Render(container, keyedList(forward))
		}
		doc.Drain()
	}
}

// BenchmarkComponentRerender benchmarks re-rendering 100 function
// components whose props change every pass.
func BenchmarkComponentRerender(b *testing.B) {
	r, doc, container := benchSetup(b)
	tree := func(n int) *vdom.VNode {
		kids := make([]any, 100)
		for i := range kids {
			kids[i] = vdom.C(label, component.Props{"text": strconv.Itoa(n + i)})
		}
		return vdom.Div(kids...)
	}
	r.Render(container, tree(0))
	doc.Drain()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Render(container, tree(i+1))
		doc.Drain()
	}
}
