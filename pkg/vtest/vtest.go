package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/reconcile/pkg/render"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// RenderToString renders a description to HTML. It returns "" when the
// tree fails to render.
//
// Example:
//
//	html := vtest.RenderToString(MyComponent())
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(node *vdom.VNode) string {
	html, err := render.ToString(node, quiet())
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, comp.Render(), "Welcome Admin")
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, comp.Render(), "class", "btn-primary")
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
