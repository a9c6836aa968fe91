package vdom

import (
	"fmt"
	"strconv"
)

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Fragment groups children without a wrapper element. A Key attribute
// keys the fragment itself.
func Fragment(args ...any) *VNode {
	node := &VNode{
		Kind:  KindFragment,
		Props: make(Props),
	}
	node.Children = applyArgs(node, args)
	node.Props[ChildrenProp] = node.Children
	return node
}

// C creates a component invocation. The "key" and "ref" props are lifted
// onto the node; children are passed to the component as
// Props["children"].
func C(t ComponentType, props Props, children ...any) *VNode {
	node := &VNode{
		Kind:  KindComponent,
		Type:  t,
		Props: make(Props, len(props)+1),
	}
	for k, v := range props {
		switch k {
		case "key":
			node.Key = fmt.Sprint(v)
		case "ref":
			if r, ok := v.(Ref); ok {
				node.Ref = r
			}
		default:
			node.Props[k] = v
		}
	}
	if len(children) > 0 {
		node.Props[ChildrenProp] = Flatten(children)
	}
	return node
}

// ChildrenOf returns the children passed to a component through its props.
func ChildrenOf(props Props) []*VNode {
	switch c := props[ChildrenProp].(type) {
	case []*VNode:
		return c
	case *VNode:
		return []*VNode{c}
	case nil:
		return nil
	default:
		return Flatten(c)
	}
}

// Flatten normalizes a render result into a flat child list. Nested slices
// are spliced in place; strings and numbers become text nodes; nil, false
// and unknown values become holes (nil entries) so positions stay stable.
func Flatten(v any) []*VNode {
	return flatten(v, nil)
}

func flatten(v any, out []*VNode) []*VNode {
	switch c := v.(type) {
	case nil, bool:
		return append(out, nil)
	case *VNode:
		return append(out, c)
	case []*VNode:
		return append(out, c...)
	case []any:
		for _, x := range c {
			out = flatten(x, out)
		}
		return out
	case string:
		return append(out, Text(c))
	case int:
		return append(out, Text(strconv.Itoa(c)))
	case int64:
		return append(out, Text(strconv.FormatInt(c, 10)))
	case float64:
		return append(out, Text(strconv.FormatFloat(c, 'f', -1, 64)))
	case fmt.Stringer:
		return append(out, Text(c.String()))
	default:
		return append(out, nil)
	}
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// IfElse returns the first node if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Range maps a slice to VNodes. Nil results are kept as holes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		result = append(result, fn(item, i))
	}
	return result
}

// Key creates a key attribute for reconciliation.
// The key is converted to a string using fmt.Sprintf.
func Key(key any) Attr {
	return Attr{Key: "key", Value: fmt.Sprintf("%v", key)}
}
