// Package vdom provides the render descriptions that reconcile diffs.
//
// A VNode is an immutable description of one position in the tree: a text
// run, a host element, a fragment, or a component invocation. Descriptions
// carry no reconciliation state; the reconciler keeps that in its own arena
// so the same VNode may be rendered more than once.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	    OnClick(handler),
//	)
//
// A typed nil *VNode argument is kept as an empty child position so that
// conditional children do not shift their siblings.
//
// # Components
//
// C builds a component invocation. Children passed to C travel to the
// component as Props["children"].
package vdom
