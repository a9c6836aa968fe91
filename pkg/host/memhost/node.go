package memhost

import (
	"fmt"
	"strings"

	"github.com/vango-dev/reconcile/pkg/host"
)

// Node is an in-memory host node.
type Node struct {
	id        uint64
	doc       *Document
	typ       host.NodeType
	tag       string
	ns        string
	data      string
	attrs     []host.Attr
	props     map[string]any
	listeners map[string]any
	parent    *Node
	children  []*Node
}

var _ host.Node = (*Node)(nil)

// ID returns the node's document-unique id.
func (n *Node) ID() uint64 { return n.id }

// NodeType implements host.Node.
func (n *Node) NodeType() host.NodeType { return n.typ }

// LocalName implements host.Node.
func (n *Node) LocalName() string { return n.tag }

// Namespace implements host.Node.
func (n *Node) Namespace() string { return n.ns }

// ParentNode implements host.Node.
func (n *Node) ParentNode() host.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// FirstChild implements host.Node.
func (n *Node) FirstChild() host.Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// NextSibling implements host.Node.
func (n *Node) NextSibling() host.Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// ChildNodes implements host.Node.
func (n *Node) ChildNodes() []host.Node {
	out := make([]host.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Children returns the concrete children.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// AppendChild implements host.Node.
func (n *Node) AppendChild(child host.Node) {
	n.InsertBefore(child, nil)
}

// InsertBefore implements host.Node. Inserting a node that already has a
// parent moves it.
func (n *Node) InsertBefore(child, ref host.Node) {
	c := mustNode(child)
	var r *Node
	if ref != nil {
		r = mustNode(ref)
	}
	if c.parent != nil {
		c.parent.detach(c)
	}
	c.parent = n

	idx := len(n.children)
	if r != nil {
		if i := n.indexOf(r); i >= 0 {
			idx = i
		} else {
			r = nil
		}
	}
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = c

	m := Mutation{Op: OpInsert, Target: c.id, Parent: n.id}
	if r != nil {
		m.Before = r.id
	}
	n.doc.record(m)
}

// RemoveChild implements host.Node.
func (n *Node) RemoveChild(child host.Node) {
	c := mustNode(child)
	if c.parent != n {
		return
	}
	n.detach(c)
	c.parent = nil
	n.doc.record(Mutation{Op: OpRemove, Target: c.id, Parent: n.id})
}

// Data implements host.Node.
func (n *Node) Data() string { return n.data }

// SetData implements host.Node.
func (n *Node) SetData(data string) {
	if n.typ != host.TextNode {
		return
	}
	n.data = data
	n.doc.record(Mutation{Op: OpSetText, Target: n.id, Value: data})
}

// Attributes implements host.Node.
func (n *Node) Attributes() []host.Attr {
	out := make([]host.Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttribute implements host.Node.
func (n *Node) SetAttribute(name, value string) {
	if n.typ != host.ElementNode {
		return
	}
	found := false
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			found = true
			break
		}
	}
	if !found {
		n.attrs = append(n.attrs, host.Attr{Name: name, Value: value})
	}
	n.doc.record(Mutation{Op: OpSetAttr, Target: n.id, Name: name, Value: value})
}

// RemoveAttribute implements host.Node.
func (n *Node) RemoveAttribute(name string) {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			n.doc.record(Mutation{Op: OpRemoveAttr, Target: n.id, Name: name})
			return
		}
	}
}

// Property implements host.Node.
func (n *Node) Property(name string) any {
	return n.props[name]
}

// SetProperty implements host.Node.
func (n *Node) SetProperty(name string, value any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value
	n.doc.record(Mutation{Op: OpSetProp, Target: n.id, Name: name, Value: fmt.Sprint(value)})
}

// SetListener implements host.Node.
func (n *Node) SetListener(event string, handler any) {
	if handler == nil {
		if _, ok := n.listeners[event]; ok {
			delete(n.listeners, event)
			n.doc.record(Mutation{Op: OpRemoveListener, Target: n.id, Name: event})
		}
		return
	}
	if n.listeners == nil {
		n.listeners = make(map[string]any)
	}
	n.listeners[event] = handler
	n.doc.record(Mutation{Op: OpSetListener, Target: n.id, Name: event})
}

// Listener returns the handler bound to event, or nil.
func (n *Node) Listener(event string) any {
	return n.listeners[event]
}

// Dispatch invokes the listener bound to event with arg.
// Supported handler shapes are func(), func(any) and func(string).
func (n *Node) Dispatch(event string, arg any) error {
	h, ok := n.listeners[event]
	if !ok {
		return fmt.Errorf("memhost: node %d has no %q listener", n.id, event)
	}
	switch fn := h.(type) {
	case func():
		fn()
	case func(any):
		fn(arg)
	case func(string):
		s, _ := arg.(string)
		fn(s)
	default:
		return fmt.Errorf("memhost: unsupported %q handler %T", event, h)
	}
	return nil
}

// SetInnerHTML implements host.Node.
func (n *Node) SetInnerHTML(markup string) {
	if n.typ != host.ElementNode {
		return
	}
	n.doc.record(Mutation{Op: OpSetInnerHTML, Target: n.id, Value: markup})
	prev := n.doc.paused
	n.doc.paused = true
	defer func() { n.doc.paused = prev }()
	if err := n.parseChildren(strings.NewReader(markup)); err != nil {
		// x/net/html only fails on reader errors; a strings.Reader has none.
		panic(err)
	}
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n.typ == host.TextNode {
		return n.data
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

func (n *Node) indexOf(c *Node) int {
	for i, x := range n.children {
		if x == c {
			return i
		}
	}
	return -1
}

func (n *Node) detach(c *Node) {
	if i := n.indexOf(c); i >= 0 {
		n.children = append(n.children[:i], n.children[i+1:]...)
	}
}

func mustNode(n host.Node) *Node {
	m, ok := n.(*Node)
	if !ok {
		panic(fmt.Sprintf("memhost: foreign host node %T", n))
	}
	return m
}
