// Package render serializes host trees to HTML.
//
// It walks any host.Node tree, so the same code prints the container of a
// reconcile.Renderer, the snapshot sent to a live preview client and the
// golden output of the CLI:
//
//   - text and attribute escaping
//   - void elements (input, br, img, ...) without closing tags
//   - boolean attributes written by name only
//   - raw text in script and style left unescaped
//   - optional pretty printing and node id markers
//
// # Basic Usage
//
//	r := render.NewRenderer(render.Config{Pretty: true})
//	html, err := r.RenderChildren(container)
//
// To server-render a description directly:
//
//	html, err := render.ToString(vdom.Div(vdom.H1("Hello")))
package render
