package reconcile

import (
	"github.com/vango-dev/reconcile/pkg/component"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Keyed is the default ChildReconciler. Each new child is matched with the
// old child at the same index when key and type agree, otherwise with the
// first old child that does. Host nodes are moved only when they are not
// already where they belong.
type Keyed struct{}

type refUpdate struct {
	ref     vdom.Ref
	value   any
	against Handle
}

// ReconcileChildren implements ChildReconciler.
func (Keyed) ReconcileChildren(r *Renderer, parentDom host.Node, newParent, oldParent Handle,
	ctx component.ContextMap, svg bool, pool []host.Node, q *CommitQueue,
	anchor host.Node, hydrating bool) {
	a := r.Arena()
	old := append([]Handle(nil), a.Children(oldParent)...)
	oldLen := len(old)
	used := make([]bool, oldLen)

	if anchor == AutoAnchor {
		switch {
		case len(pool) > 0:
			anchor = firstPooled(pool)
		case oldLen > 0:
			anchor = a.DomSibling(oldParent, 0)
		default:
			anchor = nil
		}
	}

	pending := a.Pending(newParent)
	kids := make([]Handle, len(pending))
	var first host.Node
	var refs []refUpdate
	isComponent := a.IsComponent(newParent)

	for i, v := range pending {
		if v == nil {
			continue
		}
		child := a.Alloc(v, newParent)
		kids[i] = child

		// An old hole at the same index pairs with the placeholder.
		var match Handle
		if i < oldLen && !used[i] && (old[i] == 0 || a.Matches(old[i], v)) {
			match = old[i]
			used[i] = true
		} else {
			for j := 0; j < oldLen; j++ {
				if !used[j] && old[j] != 0 && a.Matches(old[j], v) {
					match = old[j]
					used[j] = true
					break
				}
			}
		}

		dom := r.Diff(parentDom, child, match, ctx, svg, pool, q, anchor, hydrating)

		if oldRef := a.Ref(match); oldRef != nil && !vdom.SameRef(oldRef, v.Ref) {
			refs = append(refs, refUpdate{ref: oldRef, against: child})
		}
		if v.Ref != nil && !vdom.SameRef(a.Ref(match), v.Ref) {
			refs = append(refs, refUpdate{ref: v.Ref, value: a.RefValue(child), against: child})
		}
		a.Release(match)

		if dom == nil {
			continue
		}
		if first == nil {
			first = dom
		}
		if tail := a.TakeTail(child); tail != nil {
			// A component placed its own host nodes.
			dom = tail
		} else if dom != anchor || dom.ParentNode() == nil {
			place(parentDom, dom, anchor, oldLen)
		}
		anchor = dom.NextSibling()
		if isComponent {
			a.SetTail(newParent, dom)
		}
	}

	a.SetChildren(newParent, kids)
	a.SetDom(newParent, first)

	if pool != nil && !isComponent {
		for i := len(pool) - 1; i >= 0; i-- {
			if pool[i] != nil {
				host.Remove(pool[i])
			}
		}
	}

	for i := oldLen - 1; i >= 0; i-- {
		if !used[i] && old[i] != 0 {
			r.Teardown(old[i], old[i], false)
		}
	}

	for _, u := range refs {
		r.ApplyRef(u.ref, u.value, u.against)
	}
}

// place inserts dom before anchor unless it already sits a little further
// along, in which case the nodes in between will be moved instead.
func place(parentDom, dom, anchor host.Node, oldLen int) {
	if anchor == nil || anchor.ParentNode() != parentDom {
		parentDom.AppendChild(dom)
		return
	}
	sib := anchor
	for j := 0; j < oldLen; j += 2 {
		if sib = sib.NextSibling(); sib == nil {
			break
		}
		if sib == dom {
			return
		}
	}
	parentDom.InsertBefore(dom, anchor)
}

// firstPooled returns the first pool entry not yet adopted, or nil.
func firstPooled(pool []host.Node) host.Node {
	for _, n := range pool {
		if n != nil {
			return n
		}
	}
	return nil
}
