package reconcile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// DOMProps is the default PropsDiffer.
//
//   - children, key, ref and dangerouslySetInnerHTML are never written
//   - on* props bind listeners for the lower-cased event name
//   - value and checked are left to the element reconciler; selected is a property
//   - style takes a CSS string or a map of declarations
//   - className is written as class
//   - true sets an empty attribute; false and nil remove it
//
// During hydration only listeners are bound.
type DOMProps struct{}

// DiffProps implements PropsDiffer.
func (DOMProps) DiffProps(dom host.Node, next, prev vdom.Props, svg, hydrating bool) {
	for name, old := range prev {
		if _, ok := next[name]; !ok {
			setProp(dom, name, nil, old)
		}
	}
	for name, v := range next {
		if name == "value" || name == "checked" {
			continue
		}
		if hydrating && !vdom.IsEventProp(name) {
			continue
		}
		if old, ok := prev[name]; !ok || !vdom.Same(old, v) {
			setProp(dom, name, v, prev[name])
		}
	}
}

func setProp(dom host.Node, name string, value, old any) {
	switch name {
	case vdom.ChildrenProp, "key", "ref", vdom.InnerHTMLProp:
		return
	case "className":
		name = "class"
	case "style":
		css, prevCSS := styleString(value), styleString(old)
		switch {
		case css == "":
			dom.RemoveAttribute("style")
		case css != prevCSS:
			dom.SetAttribute("style", css)
		}
		return
	case "selected":
		dom.SetProperty(name, value == true)
		return
	case "value":
		// Only reached when the prop was removed.
		dom.SetProperty(name, "")
		return
	case "checked":
		dom.SetProperty(name, false)
		return
	}

	if vdom.IsEventProp(name) {
		event := strings.ToLower(name[2:])
		if value == nil {
			dom.SetListener(event, nil)
			return
		}
		dom.SetListener(event, value)
		return
	}

	switch v := value.(type) {
	case nil:
		dom.RemoveAttribute(name)
	case bool:
		if v {
			dom.SetAttribute(name, "")
		} else {
			dom.RemoveAttribute(name)
		}
	default:
		if isFunc(value) {
			return
		}
		dom.SetAttribute(name, propToString(value))
	}
}

// styleString serializes a style prop. Maps are written in key order.
func styleString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case map[string]any:
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, k := range keys {
			val := s[k]
			if val == nil || val == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%s: %s;", k, styleValue(k, val))
		}
		return b.String()
	case map[string]string:
		m := make(map[string]any, len(s))
		for k, x := range s {
			m[k] = x
		}
		return styleString(m)
	default:
		return propToString(v)
	}
}

// styleValue appends px to bare numbers, except for unitless properties.
func styleValue(name string, v any) string {
	switch n := v.(type) {
	case int:
		if unitless[name] || n == 0 {
			return strconv.Itoa(n)
		}
		return strconv.Itoa(n) + "px"
	case float64:
		if unitless[name] || n == 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		return strconv.FormatFloat(n, 'f', -1, 64) + "px"
	default:
		return propToString(v)
	}
}

var unitless = map[string]bool{
	"flex":        true,
	"flex-grow":   true,
	"flex-shrink": true,
	"font-weight": true,
	"line-height": true,
	"opacity":     true,
	"order":       true,
	"z-index":     true,
	"zoom":        true,
}

// propToString converts an attribute value to a string.
func propToString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func isFunc(v any) bool {
	return strings.HasPrefix(fmt.Sprintf("%T", v), "func")
}
