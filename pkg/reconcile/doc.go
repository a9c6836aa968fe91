// Package reconcile applies virtual node trees to a mutable host tree.
//
// A Renderer compares the tree produced by a render pass with the one it
// rendered before and patches the host document in place. Host nodes are
// reused whenever a position keeps its kind, component instances keep their
// identity across renders, and lifecycle methods run in a fixed order.
//
// # Entry Points
//
// Render diffs a tree into a container, Hydrate attaches to markup that is
// already there, Unmount tears the container down, and Flush re-renders
// components that called SetState or ForceUpdate:
//
//	r := reconcile.New(doc, reconcile.WithLogger(logger))
//	r.Render(container, vdom.C(App, nil))
//	r.Flush()
//
// # Bookkeeping
//
// Every diffed position owns a slot in an Arena, addressed by a Handle.
// Handle 0 stands for "no old node". Hooks and error handlers see slots
// through the read-only Node view.
//
// # Commit
//
// ComponentDidMount, ComponentDidUpdate and setState callbacks are queued
// during the diff and run once the whole tree was reconciled.
//
// # Failures
//
// Panics from render, refs, ComponentWillUnmount and commit callbacks are
// recovered into *Failure values. Each failure goes to the OnError hooks and
// then to the ErrorHandler; the default, Boundaries, hands it to the nearest
// ancestor that declares DeriveStateFromError or ComponentDidCatch. A failure
// never stops siblings or callbacks queued by other components.
//
// # Collaborators
//
// Child matching (ChildReconciler) and attribute updates (PropsDiffer) are
// pluggable. Keyed and DOMProps are the defaults.
package reconcile
