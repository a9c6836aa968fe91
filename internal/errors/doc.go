// Package errors provides structured, actionable error values for reconcile.
//
// Every error raised outside the reconciliation hot path (configuration,
// fixtures, snapshot storage, the CLI) is a *ReconcileError carrying a
// registered code, a category and an optional hint:
//
//	err := errors.New("F101").
//	    WithDetail("step 2 has no tree").
//	    WithSuggestion("Add a 'tree' key to every step")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR F101: Fixture step is empty
//	//
//	//   step 2 has no tree
//	//
//	//   Hint: Add a 'tree' key to every step
//
// # Error Categories
//
//   - reconcile: failures raised by user code during a diff (render, refs,
//     unmount hooks, commit callbacks)
//   - fixture: malformed YAML fixtures
//   - config: invalid reconcile.json files
//   - snapshot: snapshot store failures
//   - cli: command line usage errors
//
// Panics recovered from user code are wrapped in *PanicError, which keeps
// the recovered value and the goroutine stack at the point of recovery.
package errors
