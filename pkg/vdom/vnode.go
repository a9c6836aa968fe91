package vdom

import (
	"fmt"
	"reflect"

	"github.com/vango-dev/reconcile/internal/errors"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota + 1 // <div>, <button>, etc.
	KindText                       // Plain text node
	KindFragment                   // Grouping without wrapper
	KindComponent                  // Component invocation
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// ChildrenProp is the props key component children travel under.
const ChildrenProp = "children"

// InnerHTMLProp is the props key holding a RawHTML value.
const InnerHTMLProp = "dangerouslySetInnerHTML"

// ComponentType identifies a component implementation. It is satisfied by
// *component.Type; vdom only needs a name for diagnostics.
type ComponentType interface {
	ComponentName() string
}

// VNode is a render description.
type VNode struct {
	Kind     VKind         // Node type
	Tag      string        // Element tag name (e.g., "div")
	Type     ComponentType // For KindComponent
	Props    Props         // Attributes, event handlers or component props
	Children []*VNode      // Element and fragment children; nil entries are holes
	Key      string        // Reconciliation key
	Ref      Ref           // Ref receiving the host node or instance
	Text     string        // For KindText
}

// Props holds attributes and event handlers.
type Props map[string]any

// Clone returns a shallow copy of p. A nil Props clones to an empty map.
func (p Props) Clone() Props {
	out := make(Props, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// RawHTML is the value of the dangerouslySetInnerHTML prop.
type RawHTML struct {
	HTML string
}

// Validate reports whether v is a well-formed description.
func (v *VNode) Validate() error {
	if v == nil {
		return errors.New("R005").WithDetail("nil vnode")
	}
	switch v.Kind {
	case KindText, KindFragment:
		return nil
	case KindElement:
		if v.Tag == "" {
			return errors.New("R005").WithDetail("element without a tag")
		}
		return nil
	case KindComponent:
		if v.Type == nil {
			return errors.New("R005").WithDetail("component without a type")
		}
		return nil
	default:
		return errors.New("R005").WithDetail(fmt.Sprintf("unknown kind %d", v.Kind))
	}
}

// Name returns a short human readable label for v.
func (v *VNode) Name() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case KindText:
		return "#text"
	case KindElement:
		return v.Tag
	case KindFragment:
		return "Fragment"
	case KindComponent:
		if v.Type != nil {
			return v.Type.ComponentName()
		}
	}
	return "Unknown"
}

// IsInteractive returns true if this node has event handlers.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if IsEventProp(key) {
			return true
		}
	}
	return false
}

// InnerHTML returns the raw markup carried by v, if any.
func (v *VNode) InnerHTML() (RawHTML, bool) {
	if v == nil {
		return RawHTML{}, false
	}
	switch h := v.Props[InnerHTMLProp].(type) {
	case RawHTML:
		return h, true
	case *RawHTML:
		if h != nil {
			return *h, true
		}
	}
	return RawHTML{}, false
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}

// IsEventProp reports whether key names an event handler prop.
func IsEventProp(key string) bool {
	return len(key) > 2 && key[0] == 'o' && key[1] == 'n'
}

// Same reports whether a and b are the same value. Unlike ==, it never
// panics: maps and slices compare by identity. Functions are never the
// same, since closures built from one literal share a code pointer.
func Same(a, b any) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		// Structs holding uncomparable dynamic values still panic on ==.
		defer func() {
			if recover() != nil {
				same = false
			}
		}()
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Func:
		return false
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	default:
		return false
	}
}
