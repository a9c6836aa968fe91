package reconcile

import (
	"github.com/vango-dev/reconcile/pkg/component"
	"github.com/vango-dev/reconcile/pkg/host"
)

// unmount tears down the position h and everything below it. Failures are
// reported against the position against. When skipRemove is set an
// ancestor's host node is being removed, so descendants stay attached to it.
func (r *Renderer) unmount(h, against Handle, skipRemove bool) {
	if !r.arena.Live(h) {
		return
	}
	s := r.arena.get(h)

	if r.hooks.OnUnmount != nil {
		if err := invoke(func() { r.hooks.OnUnmount(r.view(h)) }); err != nil {
			r.fail(&Failure{Phase: PhaseUnmount, Node: r.view(against), Cause: err})
		}
	}
	if ref := s.node.Ref; ref != nil {
		r.applyRef(ref, nil, against)
	}

	var dom host.Node
	if !skipRemove && s.kind != variantComponent {
		dom = s.dom
		skipRemove = dom != nil
	}
	s.dom, s.tail = nil, nil

	if in := s.inst; in != nil {
		if m, ok := in.self.(component.WillUnmounter); ok {
			if err := invoke(m.ComponentWillUnmount); err != nil {
				r.fail(&Failure{Phase: PhaseUnmount, Node: r.view(against), Cause: err})
			}
		}
		if in.provider != nil {
			in.provider.Unsubscribe(in)
			in.provider = nil
		}
		in.hostBase, in.parentDom = nil, nil
		in.unmounted = true
		in.dirty = false
		in.vnode = 0
	}

	for _, c := range s.children {
		if c != 0 {
			r.unmount(c, against, skipRemove)
		}
	}
	s.children = nil

	if dom != nil {
		host.Remove(dom)
	}
	r.arena.Release(h)
}
