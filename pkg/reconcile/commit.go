package reconcile

// commitRoot drains the commit queue once. A panicking callback abandons
// the rest of that instance's callbacks; later instances still run.
func (r *Renderer) commitRoot(q *CommitQueue, root Handle) {
	if r.hooks.BeforeCommit != nil {
		views := make([]Node, len(q.items))
		for i, in := range q.items {
			views[i] = r.view(in.vnode)
		}
		if err := invoke(func() { r.hooks.BeforeCommit(r.view(root), views) }); err != nil {
			r.fail(&Failure{Phase: PhaseCallback, Node: r.view(root), Cause: err})
		}
	}

	items := q.items
	q.items = nil
	for _, in := range items {
		cbs := in.callbacks
		in.callbacks = nil
		err := invoke(func() {
			for _, cb := range cbs {
				cb()
			}
		})
		if err != nil {
			r.fail(&Failure{Phase: PhaseCallback, Node: r.view(in.vnode), Cause: err})
		}
	}
}
