package reconcile

import (
	"github.com/vango-dev/reconcile/pkg/component"
)

// Boundaries is the default ErrorHandler. Starting at the parent of the
// failing position it looks for the nearest component that is not already
// recovering and either has DeriveStateFromError or implements
// component.DidCatcher. That component is re-rendered with the error
// pending. If its own handler panics, the search goes on with the new
// error. A failure nobody accepts is logged once and dropped.
type Boundaries struct{}

// HandleError implements ErrorHandler.
func (Boundaries) HandleError(r *Renderer, f *Failure) {
	err := f.Cause
	for p := f.Node.Parent(); p.Valid(); p = p.Parent() {
		in := r.arena.get(p.h).inst
		if in == nil || in.unmounted || in.processing != nil {
			continue
		}
		accepted := false
		herr := invoke(func() {
			if derive := in.typ.DeriveStateFromError; derive != nil {
				in.EnqueueSetState(func(component.State, component.Props) component.State {
					return derive(err)
				}, nil)
				accepted = true
			} else if c, ok := in.self.(component.DidCatcher); ok {
				c.ComponentDidCatch(err)
				accepted = true
			}
		})
		if herr != nil {
			err = herr
			continue
		}
		if !accepted {
			continue
		}
		in.pending = err
		r.enqueue(in)
		return
	}
	r.log.Error("unhandled reconcile failure",
		"phase", f.Phase.String(),
		"node", f.Node.Name(),
		"error", err)
}
