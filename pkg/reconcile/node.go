package reconcile

import (
	"github.com/vango-dev/reconcile/pkg/component"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Node is a read-only view of one reconciled position, handed to hooks and
// error handlers. A Node is only meaningful while its handle is live; do not
// retain it past the callback it was passed to.
type Node struct {
	r *Renderer
	h Handle
}

func (r *Renderer) view(h Handle) Node {
	return Node{r: r, h: h}
}

// Handle returns the arena handle behind n.
func (n Node) Handle() Handle { return n.h }

// Valid reports whether n refers to a live position.
func (n Node) Valid() bool {
	return n.r != nil && n.r.arena.Live(n.h)
}

var emptySlot = &slot{}

func (n Node) slot() *slot {
	if n.r == nil {
		return emptySlot
	}
	return n.r.arena.get(n.h)
}

// VNode returns the description n was rendered from.
func (n Node) VNode() *vdom.VNode { return n.slot().src }

// Name returns a short label such as "div", "#text" or a component name.
func (n Node) Name() string {
	if !n.Valid() {
		return "<none>"
	}
	s := n.slot()
	if s.kind == variantComponent {
		return s.ctype.ComponentName()
	}
	return s.node.Name()
}

// Kind returns the description kind.
func (n Node) Kind() vdom.VKind { return n.slot().node.Kind }

// Key returns the reconciliation key.
func (n Node) Key() string { return n.slot().node.Key }

// Dom returns the first host node owned by n.
func (n Node) Dom() host.Node { return n.slot().dom }

// Depth is the distance from the root.
func (n Node) Depth() int { return n.slot().depth }

// Parent returns the enclosing position; it is invalid at the root.
func (n Node) Parent() Node {
	if !n.Valid() {
		return Node{}
	}
	return Node{r: n.r, h: n.slot().parent}
}

// Children returns views of the reconciled children, holes included.
func (n Node) Children() []Node {
	kids := n.slot().children
	out := make([]Node, len(kids))
	for i, c := range kids {
		out[i] = Node{r: n.r, h: c}
	}
	return out
}

// Type returns the component type, or nil for host positions.
func (n Node) Type() *component.Type { return n.slot().ctype }

// Instance returns the component instance, or nil for host positions.
func (n Node) Instance() component.Instance {
	if in := n.slot().inst; in != nil {
		return in.self
	}
	return nil
}
