package reconcile

import (
	"github.com/vango-dev/reconcile/pkg/component"
	"github.com/vango-dev/reconcile/pkg/host"
)

// trigger records why an instance is being re-rendered.
type trigger uint8

const (
	triggerParent trigger = iota // the parent re-rendered
	triggerState                 // SetState
	triggerForce                 // ForceUpdate
)

// instance is the reconciler-private record behind a component.Instance.
type instance struct {
	r    *Renderer
	typ  *component.Type
	self component.Instance
	base *component.Base

	nextState component.State
	staged    bool // nextState is a private copy, not base.State

	ambient    component.ContextMap
	dirty      bool
	callbacks  []func()
	processing error // the error a boundary is re-rendering for
	pending    error // the error a boundary has accepted
	trigger    trigger

	hostBase  host.Node // first host node of the last render
	parentDom host.Node
	vnode     Handle
	provider  component.Provider
	unmounted bool
}

var (
	_ component.Updater    = (*instance)(nil)
	_ component.Subscriber = (*instance)(nil)
)

func newInstance(r *Renderer, typ *component.Type, self component.Instance) *instance {
	return &instance{r: r, typ: typ, self: self, base: self.Core()}
}

// stage returns the next state, copying the committed state first so that
// staged changes are never visible before commit.
func (in *instance) stage() component.State {
	if in.nextState == nil {
		in.nextState = in.base.State
		in.staged = false
	}
	if !in.staged {
		in.nextState = in.nextState.Clone()
		in.staged = true
	}
	return in.nextState
}

// commitState makes the staged state current.
func (in *instance) commitState() {
	if in.nextState != nil {
		in.base.State = in.nextState
	}
	if in.base.State == nil {
		in.base.State = component.State{}
	}
	in.nextState = in.base.State
	in.staged = false
}

// EnqueueSetState implements component.Updater.
func (in *instance) EnqueueSetState(update func(prev component.State, props component.Props) component.State, callbacks []func()) {
	s := in.stage()
	u := update(s, in.base.Props)
	if u == nil {
		return
	}
	s.Merge(u)
	if in.unmounted || in.vnode == 0 {
		return
	}
	if in.trigger != triggerForce {
		in.trigger = triggerState
	}
	in.callbacks = append(in.callbacks, callbacks...)
	in.r.enqueue(in)
}

// EnqueueForceUpdate implements component.Updater.
func (in *instance) EnqueueForceUpdate(callbacks []func()) {
	if in.unmounted || in.vnode == 0 {
		return
	}
	in.trigger = triggerForce
	in.callbacks = append(in.callbacks, callbacks...)
	in.r.enqueue(in)
}

// ContextChanged implements component.Subscriber.
func (in *instance) ContextChanged(value any) {
	if in.unmounted {
		return
	}
	in.base.Context = value
	in.r.enqueue(in)
}

// CommitQueue collects the instances with callbacks pending for one
// commit, in the order they were queued.
type CommitQueue struct {
	items []*instance
}

func (q *CommitQueue) push(in *instance) {
	q.items = append(q.items, in)
}

// Len returns the number of queued instances.
func (q *CommitQueue) Len() int { return len(q.items) }
