package reconcile

import (
	"github.com/vango-dev/reconcile/pkg/component"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// diffComponent runs the lifecycle of the component at nh and reconciles
// what it renders.
func (r *Renderer) diffComponent(parentDom host.Node, nh, oh Handle, ctx component.ContextMap,
	svg bool, pool []host.Node, q *CommitQueue, anchor host.Node, hydrating bool) {
	ns, os := r.arena.get(nh), r.arena.get(oh)
	typ := ns.ctype
	props := ns.props

	// Resolve context. A ContextType component sees its provider's value,
	// everything else sees the ambient map.
	var cctx any = ctx
	var prov component.Provider
	if typ.ContextType != nil {
		cctx, prov = typ.ContextType.Resolve(ctx)
	}

	// Construct or reuse.
	var in *instance
	isNew := false
	clearProcessing := false
	if os.inst != nil {
		in = os.inst
		in.processing = in.pending
		clearProcessing = in.pending != nil
		if prov != in.provider {
			if in.provider != nil {
				in.provider.Unsubscribe(in)
			}
			if prov != nil {
				prov.Subscribe(in)
			}
			in.provider = prov
		}
	} else {
		self, err := component.Instantiate(typ, props, cctx)
		if err != nil {
			panic(err)
		}
		in = newInstance(r, typ, self)
		if prov != nil {
			prov.Subscribe(in)
			in.provider = prov
		}
		in.base.Props = props
		if in.base.State == nil {
			in.base.State = component.State{}
		}
		in.base.Context = cctx
		in.base.Bind(in)
		in.dirty = true
		isNew = true
	}
	ns.inst = in
	in.vnode = nh
	in.ambient = ctx

	// Derive state.
	if in.nextState == nil {
		in.nextState = in.base.State
		in.staged = false
	}
	if typ.DeriveState != nil {
		s := in.stage()
		s.Merge(typ.DeriveState(props, s))
	}

	oldProps, oldState := in.base.Props, in.base.State
	var snapshot any

	if isNew {
		if m, ok := in.self.(component.WillMounter); ok && typ.DeriveState == nil {
			m.ComponentWillMount()
		}
		if m, ok := in.self.(component.DidMounter); ok {
			in.callbacks = append(in.callbacks, m.ComponentDidMount)
		}
	} else {
		if m, ok := in.self.(component.WillReceivePropser); ok && typ.DeriveState == nil && in.trigger == triggerParent {
			m.ComponentWillReceiveProps(props, cctx)
		}
		if m, ok := in.self.(component.ShouldUpdater); ok && in.trigger != triggerForce &&
			!m.ShouldComponentUpdate(props, in.nextState, cctx) {
			r.skipComponent(nh, oh, in, props, q)
			return
		}
		if m, ok := in.self.(component.WillUpdater); ok {
			m.ComponentWillUpdate(props, in.nextState, cctx)
		}
		if m, ok := in.self.(component.DidUpdater); ok {
			in.callbacks = append(in.callbacks, func() {
				m.ComponentDidUpdate(oldProps, oldState, snapshot)
			})
		}
	}

	// Render.
	in.base.Context = cctx
	in.base.Props = props
	in.commitState()
	r.hook(r.hooks.BeforeRender, nh)
	in.dirty = false
	in.parentDom = parentDom
	out := in.self.Render(in.base.Props, in.base.State, in.base.Context)
	ns.pending = vdom.Flatten(unwrapFragment(out))

	if cc, ok := in.self.(component.ChildContexter); ok {
		merged := ctx.Clone()
		for k, v := range cc.GetChildContext() {
			merged[k] = v
		}
		ctx = merged
	}
	if m, ok := in.self.(component.SnapshotGetter); ok && !isNew {
		snapshot = m.GetSnapshotBeforeUpdate(oldProps, oldState)
	}

	r.reconcileChildren(parentDom, nh, oh, ctx, svg, pool, q, anchor, hydrating)

	in.hostBase = ns.dom
	if len(in.callbacks) > 0 {
		q.push(in)
	}
	if clearProcessing {
		in.pending, in.processing = nil, nil
	}
	in.trigger = triggerParent
}

// skipComponent commits props and state without rendering and keeps the
// previous output in place.
func (r *Renderer) skipComponent(nh, oh Handle, in *instance, props component.Props, q *CommitQueue) {
	ns, os := r.arena.get(nh), r.arena.get(oh)
	in.base.Props = props
	in.commitState()
	in.dirty = false
	in.trigger = triggerParent
	ns.dom = os.dom
	r.arena.adoptChildren(nh, oh)
	ns.reconciled = true
	ns.tail = r.arena.lastDom(nh)
	if len(in.callbacks) > 0 {
		q.push(in)
	}
}

// unwrapFragment replaces an un-keyed top-level fragment with its children.
func unwrapFragment(out any) any {
	v, ok := out.(*vdom.VNode)
	if !ok || v == nil || v.Key != "" {
		return out
	}
	switch {
	case v.Kind == vdom.KindFragment && v.Props[vdom.ChildrenProp] == nil:
		return v.Children
	case v.Kind == vdom.KindFragment, v.Kind == vdom.KindComponent && v.Type == component.Fragment:
		return vdom.ChildrenOf(v.Props)
	}
	return out
}
