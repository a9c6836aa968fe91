package reconcile

import (
	"github.com/vango-dev/reconcile/pkg/component"
	"github.com/vango-dev/reconcile/pkg/host"
)

// diff reconciles the position nh against oh (0 for none) and returns the
// host node now representing nh. It never panics: failures are recovered,
// reported and the best known host node is returned.
func (r *Renderer) diff(parentDom host.Node, nh, oh Handle, ctx component.ContextMap,
	svg bool, pool []host.Node, q *CommitQueue, anchor host.Node, hydrating bool) host.Node {
	ns := r.arena.get(nh)
	if ns.kind == variantInvalid {
		return nil
	}

	err := invoke(func() {
		r.hook(r.hooks.BeforeDiff, nh)
		if ns.kind == variantComponent {
			r.diffComponent(parentDom, nh, oh, ctx, svg, pool, q, anchor, hydrating)
		} else {
			r.diffElementNodes(nh, oh, ctx, svg, pool, q, hydrating)
		}
		r.hook(r.hooks.AfterDiff, nh)
	})
	if err != nil {
		r.recoverSlot(nh, oh)
		r.fail(&Failure{Phase: PhaseRender, Node: r.view(nh), Old: r.view(oh), Cause: err})
	}
	return ns.dom
}

// recoverSlot keeps host ownership intact after a failed diff: when the
// new position never reached its children, it takes over the old
// position's host nodes and children.
func (r *Renderer) recoverSlot(nh, oh Handle) {
	ns, os := r.arena.get(nh), r.arena.get(oh)
	if oh == 0 || ns.reconciled {
		return
	}
	if ns.dom == nil {
		ns.dom = os.dom
	}
	r.arena.adoptChildren(nh, oh)
	if ns.kind == variantComponent {
		ns.tail = r.arena.lastDom(nh)
		if in := ns.inst; in != nil && in.hostBase == nil {
			in.hostBase = ns.dom
		}
	}
}

// reconcileChildren hands the pending children of nh to the child
// reconciler.
func (r *Renderer) reconcileChildren(parentDom host.Node, nh, oh Handle, ctx component.ContextMap,
	svg bool, pool []host.Node, q *CommitQueue, anchor host.Node, hydrating bool) {
	r.arena.get(nh).reconciled = true
	r.children.ReconcileChildren(r, parentDom, nh, oh, ctx, svg, pool, q, anchor, hydrating)
}
