package reconcile

import (
	"github.com/vango-dev/reconcile/pkg/component"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Handle addresses one reconciled position in an Arena. The zero Handle is
// the empty placeholder used when there is no old node.
type Handle uint32

// variant is the resolved shape of a description.
type variant uint8

const (
	variantInvalid variant = iota
	variantText
	variantElement
	variantComponent
)

// slot is the bookkeeping for one handle.
type slot struct {
	node  vdom.VNode  // description, held by value
	src   *vdom.VNode // the description pointer the slot was created from
	kind  variant
	ctype *component.Type
	props vdom.Props // resolved props (component props, or element props)

	dom  host.Node // first host node this position owns
	tail host.Node // last host node placed under a component, consumed by the parent

	children   []Handle      // 0 entries are holes
	pending    []*vdom.VNode // normalized children awaiting reconciliation
	reconciled bool          // children have been (or are being) reconciled

	inst   *instance
	parent Handle
	depth  int
	live   bool
}

// Arena owns every slot of a Renderer. Slots are recycled through a free
// list once released.
type Arena struct {
	slots []*slot
	free  []Handle
}

func newArena() *Arena {
	// Index 0 is the placeholder and is never written.
	return &Arena{slots: []*slot{{}}}
}

func (a *Arena) get(h Handle) *slot {
	if int(h) >= len(a.slots) {
		return a.slots[0]
	}
	return a.slots[h]
}

// Alloc creates a slot for v under parent.
func (a *Arena) Alloc(v *vdom.VNode, parent Handle) Handle {
	var h Handle
	if n := len(a.free); n > 0 {
		h = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, &slot{})
		h = Handle(len(a.slots) - 1)
	}
	s := a.slots[h]
	*s = slot{src: v, parent: parent, live: true}
	if v != nil {
		s.node = *v
	}
	if parent != 0 {
		s.depth = a.get(parent).depth + 1
	}
	s.kind, s.ctype, s.props = resolve(v)
	return h
}

// resolve maps a description onto its variant once. Fragments resolve to
// the built-in fragment component.
func resolve(v *vdom.VNode) (variant, *component.Type, vdom.Props) {
	if v == nil || v.Validate() != nil {
		return variantInvalid, nil, nil
	}
	switch v.Kind {
	case vdom.KindText:
		return variantText, nil, nil
	case vdom.KindElement:
		return variantElement, nil, v.Props
	case vdom.KindFragment:
		props := v.Props
		if _, ok := props[vdom.ChildrenProp]; !ok {
			props = props.Clone()
			props[vdom.ChildrenProp] = v.Children
		}
		return variantComponent, component.Fragment, props
	default:
		t, ok := v.Type.(*component.Type)
		if !ok {
			return variantInvalid, nil, nil
		}
		props := v.Props
		if props == nil {
			props = vdom.Props{}
		}
		return variantComponent, t, props
	}
}

// clone copies the description, parent and instance of h into a new slot.
// Used to re-render a component against its own previous output.
func (a *Arena) clone(h Handle) Handle {
	old := a.get(h)
	n := a.Alloc(old.src, old.parent)
	s := a.slots[n]
	s.node = old.node
	s.kind, s.ctype, s.props = old.kind, old.ctype, old.props
	s.depth = old.depth
	s.inst = old.inst
	return n
}

// Release returns h to the free list. Children are not released.
func (a *Arena) Release(h Handle) {
	if h == 0 || int(h) >= len(a.slots) || !a.slots[h].live {
		return
	}
	*a.slots[h] = slot{}
	a.free = append(a.free, h)
}

// Live reports whether h addresses an allocated slot.
func (a *Arena) Live(h Handle) bool {
	return h != 0 && int(h) < len(a.slots) && a.slots[h].live
}

// Len returns the number of live slots.
func (a *Arena) Len() int {
	return len(a.slots) - 1 - len(a.free)
}

// Desc returns the description h was created from.
func (a *Arena) Desc(h Handle) *vdom.VNode {
	return a.get(h).src
}

// Matches reports whether v may be diffed against the node at h: same key
// and same element tag, component type or text-ness.
func (a *Arena) Matches(h Handle, v *vdom.VNode) bool {
	s := a.get(h)
	if !s.live || v == nil || s.node.Key != v.Key {
		return false
	}
	kind, ctype, _ := resolve(v)
	if kind != s.kind {
		return false
	}
	switch kind {
	case variantElement:
		return s.node.Tag == v.Tag
	case variantComponent:
		return s.ctype == ctype
	default:
		return true
	}
}

// IsComponent reports whether h is a component or fragment position.
func (a *Arena) IsComponent(h Handle) bool {
	return a.get(h).kind == variantComponent
}

// Children returns the child handles of h.
func (a *Arena) Children(h Handle) []Handle {
	return a.get(h).children
}

// SetChildren replaces the child handles of h and re-parents them.
func (a *Arena) SetChildren(h Handle, children []Handle) {
	if h == 0 {
		return
	}
	s := a.get(h)
	s.children = children
	for _, c := range children {
		if c != 0 {
			cs := a.get(c)
			cs.parent = h
			cs.depth = s.depth + 1
		}
	}
}

// Pending returns the normalized children of h that await reconciliation.
func (a *Arena) Pending(h Handle) []*vdom.VNode {
	return a.get(h).pending
}

// Dom returns the first host node owned by h.
func (a *Arena) Dom(h Handle) host.Node {
	return a.get(h).dom
}

// SetDom records the first host node of a component position.
func (a *Arena) SetDom(h Handle, n host.Node) {
	if h != 0 {
		a.get(h).dom = n
	}
}

// TakeTail returns and clears the last host node placed under h.
func (a *Arena) TakeTail(h Handle) host.Node {
	if h == 0 {
		return nil
	}
	s := a.get(h)
	t := s.tail
	s.tail = nil
	return t
}

// SetTail records the last host node placed under a component position.
func (a *Arena) SetTail(h Handle, n host.Node) {
	if h != 0 {
		a.get(h).tail = n
	}
}

// Ref returns the ref of the description at h.
func (a *Arena) Ref(h Handle) vdom.Ref {
	return a.get(h).node.Ref
}

// RefValue is what a ref at h receives: the instance for components and
// the host node otherwise.
func (a *Arena) RefValue(h Handle) any {
	s := a.get(h)
	if s.inst != nil {
		return s.inst.self
	}
	if s.dom == nil {
		return nil
	}
	return s.dom
}

// adoptChildren moves the children of from to to.
func (a *Arena) adoptChildren(to, from Handle) {
	f := a.get(from)
	kids := f.children
	f.children = nil
	a.SetChildren(to, kids)
}

// DomSibling returns the first host node at or after child index i of h,
// continuing past h into its parent when h is a component.
func (a *Arena) DomSibling(h Handle, i int) host.Node {
	for h != 0 {
		s := a.get(h)
		for ; i < len(s.children); i++ {
			if c := s.children[i]; c != 0 {
				if d := a.get(c).dom; d != nil {
					return d
				}
			}
		}
		if s.kind != variantComponent || s.parent == 0 {
			return nil
		}
		i = a.indexOf(s.parent, h) + 1
		h = s.parent
	}
	return nil
}

// lastDom returns the last host node owned by the subtree at h.
func (a *Arena) lastDom(h Handle) host.Node {
	s := a.get(h)
	if s.kind != variantComponent {
		return s.dom
	}
	for i := len(s.children) - 1; i >= 0; i-- {
		if c := s.children[i]; c != 0 {
			if d := a.lastDom(c); d != nil {
				return d
			}
		}
	}
	return nil
}

func (a *Arena) indexOf(parent, child Handle) int {
	for i, c := range a.get(parent).children {
		if c == child {
			return i
		}
	}
	return -1
}

// replaceChild swaps old for n in the children of parent.
func (a *Arena) replaceChild(parent, old, n Handle) bool {
	s := a.get(parent)
	for i, c := range s.children {
		if c == old {
			s.children[i] = n
			return true
		}
	}
	return false
}
