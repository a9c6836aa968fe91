package reconcile

// Hooks observe reconciliation. Every field is optional.
type Hooks struct {
	// BeforeDiff runs before a node is diffed.
	BeforeDiff func(n Node)
	// BeforeRender runs right before a component renders.
	BeforeRender func(n Node)
	// AfterDiff runs after a node was diffed without failure.
	AfterDiff func(n Node)
	// OnUnmount runs before a node is torn down.
	OnUnmount func(n Node)
	// BeforeCommit runs once per commit, before callbacks are drained.
	BeforeCommit func(root Node, queue []Node)
	// OnError observes every failure before the ErrorHandler sees it.
	OnError func(f *Failure)
}

// ComposeHooks merges hook sets. Each callback runs in the order the sets
// were given.
func ComposeHooks(sets ...Hooks) Hooks {
	var out Hooks
	for _, h := range sets {
		out.BeforeDiff = chainNode(out.BeforeDiff, h.BeforeDiff)
		out.BeforeRender = chainNode(out.BeforeRender, h.BeforeRender)
		out.AfterDiff = chainNode(out.AfterDiff, h.AfterDiff)
		out.OnUnmount = chainNode(out.OnUnmount, h.OnUnmount)
		out.BeforeCommit = chainCommit(out.BeforeCommit, h.BeforeCommit)
		out.OnError = chainError(out.OnError, h.OnError)
	}
	return out
}

func chainNode(a, b func(Node)) func(Node) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(n Node) {
		a(n)
		b(n)
	}
}

func chainCommit(a, b func(Node, []Node)) func(Node, []Node) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(root Node, q []Node) {
		a(root, q)
		b(root, q)
	}
}

func chainError(a, b func(*Failure)) func(*Failure) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(f *Failure) {
		a(f)
		b(f)
	}
}
