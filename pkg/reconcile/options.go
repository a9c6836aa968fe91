package reconcile

import (
	"log/slog"

	"github.com/vango-dev/reconcile/pkg/component"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// ChildReconciler matches the children of a new position against those of
// the old one. The default is Keyed.
//
// It must fill the children of newParent from Arena.Pending(newParent),
// diff each against its match, place host nodes under parentDom, record
// the first host node (and, for components, the last one), unmount every
// unmatched old child and apply changed refs.
type ChildReconciler interface {
	ReconcileChildren(r *Renderer, parentDom host.Node, newParent, oldParent Handle,
		ctx component.ContextMap, svg bool, pool []host.Node, q *CommitQueue,
		anchor host.Node, hydrating bool)
}

// PropsDiffer applies the difference between two prop sets to a host
// element. The default is DOMProps.
type PropsDiffer interface {
	DiffProps(dom host.Node, next, prev vdom.Props, svg, hydrating bool)
}

// PropsDifferFunc adapts a function to PropsDiffer.
type PropsDifferFunc func(dom host.Node, next, prev vdom.Props, svg, hydrating bool)

// DiffProps implements PropsDiffer.
func (f PropsDifferFunc) DiffProps(dom host.Node, next, prev vdom.Props, svg, hydrating bool) {
	f(dom, next, prev, svg, hydrating)
}

// ErrorHandler decides what happens to a failure. The default is
// Boundaries.
type ErrorHandler interface {
	HandleError(r *Renderer, f *Failure)
}

// ErrorHandlerFunc adapts a function to ErrorHandler.
type ErrorHandlerFunc func(r *Renderer, f *Failure)

// HandleError implements ErrorHandler.
func (f ErrorHandlerFunc) HandleError(r *Renderer, fail *Failure) { f(r, fail) }

// Option configures a Renderer.
type Option func(*Renderer)

// WithHooks adds a hook set. Sets compose in the order they are added.
func WithHooks(h Hooks) Option {
	return func(r *Renderer) {
		r.hooks = ComposeHooks(r.hooks, h)
	}
}

// WithErrorHandler replaces the error boundary policy.
func WithErrorHandler(h ErrorHandler) Option {
	return func(r *Renderer) {
		r.errors = h
	}
}

// WithChildReconciler replaces the child matching policy.
func WithChildReconciler(c ChildReconciler) Option {
	return func(r *Renderer) {
		r.children = c
	}
}

// WithPropsDiffer replaces the attribute mapping.
func WithPropsDiffer(p PropsDiffer) Option {
	return func(r *Renderer) {
		r.props = p
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		r.log = l
	}
}

// WithDebounce installs a scheduler that is handed Flush whenever the
// re-render queue becomes non-empty. Without one, callers call Flush.
func WithDebounce(schedule func(flush func())) Option {
	return func(r *Renderer) {
		r.debounce = schedule
	}
}
