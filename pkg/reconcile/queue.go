package reconcile

import (
	"sort"

	"github.com/vango-dev/reconcile/pkg/host"
)

// enqueue marks in dirty and schedules it for Flush.
func (r *Renderer) enqueue(in *instance) {
	if in.dirty {
		return
	}
	in.dirty = true
	r.dirty = append(r.dirty, in)
	if len(r.dirty) == 1 && r.debounce != nil {
		r.debounce(r.Flush)
	}
}

// Pending returns the number of components waiting to re-render.
func (r *Renderer) Pending() int { return len(r.dirty) }

// Flush re-renders every dirty component, shallowest first. Components
// that became dirty while flushing are rendered in the same call. A Flush
// requested while a render is in progress runs when it finishes.
func (r *Renderer) Flush() {
	if r.depth > 0 {
		r.flushPending = true
		return
	}
	r.enter()
	defer r.leave()

	for len(r.dirty) > 0 {
		batch := r.dirty
		r.dirty = nil
		sort.SliceStable(batch, func(i, j int) bool {
			return r.arena.get(batch[i].vnode).depth < r.arena.get(batch[j].vnode).depth
		})
		r.log.Debug("flushing re-render queue", "components", len(batch))
		for _, in := range batch {
			if !in.dirty || in.unmounted {
				continue
			}
			if err := invoke(func() { r.renderComponent(in) }); err != nil {
				in.dirty = false
				r.fail(&Failure{Phase: PhaseRerender, Node: r.view(in.vnode), Cause: err})
			}
		}
	}
}

// renderComponent re-renders one instance in place, against its own
// previous output.
func (r *Renderer) renderComponent(in *instance) {
	old := in.vnode
	parentDom := in.parentDom
	if parentDom == nil || !r.arena.Live(old) {
		in.dirty = false
		return
	}
	prevDom := r.arena.Dom(old)
	anchor := prevDom
	if anchor == nil {
		anchor = r.arena.DomSibling(r.arena.get(old).parent, r.arena.indexOf(r.arena.get(old).parent, old)+1)
	}

	nh := r.arena.clone(old)
	parent := r.arena.get(old).parent
	if parent != 0 {
		r.arena.replaceChild(parent, old, nh)
	} else {
		for c, h := range r.roots {
			if h == old {
				r.roots[c] = nh
			}
		}
	}

	q := &CommitQueue{}
	ambient := in.ambient
	dom := r.diff(parentDom, nh, old, ambient, svgParent(parentDom), nil, q, anchor, false)
	r.arena.Release(old)
	r.commitRoot(q, nh)

	if dom != prevDom {
		r.updateParentDomPointers(nh)
	}
}

// svgParent reports whether children of parentDom are created in the SVG
// namespace.
func svgParent(parentDom host.Node) bool {
	return host.IsSVG(parentDom) && parentDom.LocalName() != "foreignObject"
}

// updateParentDomPointers re-points the first host node of every enclosing
// component after a re-render changed it.
func (r *Renderer) updateParentDomPointers(h Handle) {
	for p := r.arena.get(h).parent; p != 0; p = r.arena.get(p).parent {
		s := r.arena.get(p)
		if s.inst == nil {
			return
		}
		s.dom = nil
		for _, c := range s.children {
			if c != 0 {
				if d := r.arena.get(c).dom; d != nil {
					s.dom = d
					break
				}
			}
		}
		s.inst.hostBase = s.dom
	}
}
