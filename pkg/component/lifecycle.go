package component

// Optional lifecycle methods. The reconciler calls whichever of these an
// Instance implements.

type WillMounter interface {
	ComponentWillMount()
}

type DidMounter interface {
	ComponentDidMount()
}

type WillReceivePropser interface {
	ComponentWillReceiveProps(next Props, ctx any)
}

// ShouldUpdater can veto a re-render. Returning false keeps the existing
// output and skips ComponentWillUpdate, Render and ComponentDidUpdate.
type ShouldUpdater interface {
	ShouldComponentUpdate(next Props, nextState State, ctx any) bool
}

type WillUpdater interface {
	ComponentWillUpdate(next Props, nextState State, ctx any)
}

// DidUpdater receives the props and state from before the update, plus the
// value returned by GetSnapshotBeforeUpdate, if implemented.
type DidUpdater interface {
	ComponentDidUpdate(prevProps Props, prevState State, snapshot any)
}

// SnapshotGetter is called after Render and before the children are
// reconciled.
type SnapshotGetter interface {
	GetSnapshotBeforeUpdate(prevProps Props, prevState State) any
}

type WillUnmounter interface {
	ComponentWillUnmount()
}

// ChildContexter adds entries to the context seen by descendants.
type ChildContexter interface {
	GetChildContext() ContextMap
}

// DidCatcher marks an error boundary.
type DidCatcher interface {
	ComponentDidCatch(err error)
}
