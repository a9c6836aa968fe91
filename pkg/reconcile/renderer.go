package reconcile

import (
	"log/slog"

	"github.com/vango-dev/reconcile/pkg/component"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// autoAnchor asks the child reconciler to derive the anchor itself: the
// first adoptable host node, else the first host node of the old children.
type autoAnchor struct{ host.Node }

// AutoAnchor is the anchor passed when a position starts a fresh host
// parent.
var AutoAnchor host.Node = autoAnchor{}

// Renderer reconciles description trees into containers of a host
// document. A Renderer is not safe for concurrent use.
type Renderer struct {
	doc      host.Document
	arena    *Arena
	hooks    Hooks
	errors   ErrorHandler
	children ChildReconciler
	props    PropsDiffer
	log      *slog.Logger
	debounce func(flush func())

	roots map[host.Node]Handle
	dirty []*instance

	depth        int // nesting of Render, Unmount and Flush
	flushPending bool
}

// New creates a Renderer writing to doc.
func New(doc host.Document, opts ...Option) *Renderer {
	r := &Renderer{
		doc:      doc,
		arena:    newArena(),
		errors:   Boundaries{},
		children: Keyed{},
		props:    DOMProps{},
		roots:    make(map[host.Node]Handle),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	return r
}

// Document returns the host document.
func (r *Renderer) Document() host.Document { return r.doc }

// Arena exposes the bookkeeping arena to child reconcilers.
func (r *Renderer) Arena() *Arena { return r.arena }

// Logger returns the renderer's logger.
func (r *Renderer) Logger() *slog.Logger { return r.log }

// Root returns a view of the tree rendered into container.
func (r *Renderer) Root(container host.Node) Node {
	return r.view(r.roots[container])
}

// Render reconciles v into container against whatever was rendered there
// before. On the first render the container's existing children may be
// adopted. Commit callbacks run before Render returns.
func (r *Renderer) Render(container host.Node, v *vdom.VNode) {
	r.render(container, v, false)
}

// Hydrate attaches v to markup already present in container. Host nodes
// are adopted in order and props are not diffed; only listeners are bound.
func (r *Renderer) Hydrate(container host.Node, v *vdom.VNode) {
	r.render(container, v, true)
}

func (r *Renderer) render(container host.Node, v *vdom.VNode, hydrating bool) {
	r.enter()
	defer r.leave()

	prev := r.roots[container]
	old := prev
	if hydrating {
		old = 0
	}
	var pool []host.Node
	if old == 0 {
		if kids := container.ChildNodes(); len(kids) > 0 {
			pool = kids
		}
	}

	root := r.arena.Alloc(vdom.Fragment(v), 0)
	r.roots[container] = root
	q := &CommitQueue{}
	r.diff(container, root, old, component.ContextMap{}, svgParent(container), pool, q, AutoAnchor, hydrating)
	if old == 0 && prev != 0 {
		// Hydrating over an earlier render: the old tree no longer owns
		// the host nodes.
		r.unmount(prev, prev, true)
	} else {
		r.arena.Release(old)
	}
	r.commitRoot(q, root)
}

// Unmount tears down the tree rendered into container and removes its host
// nodes.
func (r *Renderer) Unmount(container host.Node) {
	h, ok := r.roots[container]
	if !ok {
		return
	}
	r.enter()
	defer r.leave()
	delete(r.roots, container)
	r.unmount(h, h, false)
}

// Diff reconciles the position nh against oh. It is the entry point child
// reconcilers use for each child and returns the host node now
// representing nh.
func (r *Renderer) Diff(parentDom host.Node, nh, oh Handle, ctx component.ContextMap,
	svg bool, pool []host.Node, q *CommitQueue, anchor host.Node, hydrating bool) host.Node {
	return r.diff(parentDom, nh, oh, ctx, svg, pool, q, anchor, hydrating)
}

// Teardown unmounts the position h. Failures are reported against the
// position against. With skipRemove the host nodes are left attached.
func (r *Renderer) Teardown(h, against Handle, skipRemove bool) {
	r.unmount(h, against, skipRemove)
}

// ApplyRef hands value to ref, reporting a failure against the position
// against.
func (r *Renderer) ApplyRef(ref vdom.Ref, value any, against Handle) {
	r.applyRef(ref, value, against)
}

func (r *Renderer) enter() {
	r.depth++
}

func (r *Renderer) leave() {
	r.depth--
	if r.depth == 0 && r.flushPending {
		r.flushPending = false
		r.Flush()
	}
}

// fail routes a failure to the observers and then to the error handler.
func (r *Renderer) fail(f *Failure) {
	if r.hooks.OnError != nil {
		if err := invoke(func() { r.hooks.OnError(f) }); err != nil {
			r.log.Error("error hook failed", "error", err)
		}
	}
	r.errors.HandleError(r, f)
}

// hook runs a node observer if it is set.
func (r *Renderer) hook(fn func(Node), h Handle) {
	if fn != nil {
		fn(r.view(h))
	}
}
