// Package vtest provides testing helpers for components rendered through a
// reconcile.Renderer.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.New(t)
//	    h.Render(vdom.C(fixture.Counter, vdom.Props{"id": "c"}))
//	    h.Click("c-inc")
//	    h.ExpectText("c", "-1+")
//	    h.ExpectNoFailures()
//	}
//
// # Harness
//
// A Harness owns an in-memory document, a container and a Renderer whose
// failures are collected instead of logged. Every action (Render, Flush,
// Click, Dispatch) drains the mutation log, so assertions about mutations
// always refer to the last action:
//
//	h.Render(list("a", "b", "c"))
//	h.Render(list("a", "c"))
//	h.ExpectMutations(memhost.OpRemove, 1)
//	h.ExpectMutations(memhost.OpCreateElement, 0)
//
// # Render Assertions
//
// For one-shot checks of a description, without keeping a tree around:
//
//	vtest.ExpectContains(t, comp, "Welcome Admin")
//	vtest.ExpectNotContains(t, comp, "Login")
package vtest
