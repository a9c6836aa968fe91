package reconcile

import "github.com/vango-dev/reconcile/pkg/vdom"

// applyRef hands value to ref. A panicking ref callback is reported
// against the position against.
func (r *Renderer) applyRef(ref vdom.Ref, value any, against Handle) {
	err := invoke(func() {
		switch x := ref.(type) {
		case vdom.RefFunc:
			x(value)
		case *vdom.RefObject:
			x.Current = value
		}
	})
	if err != nil {
		r.fail(&Failure{Phase: PhaseRef, Node: r.view(against), Cause: err})
	}
}
