// Package host defines the mutable rendering surface that reconcile writes to.
//
// A host surface is a tree of stateful native nodes: elements carrying
// attributes, properties and event listeners, and text nodes carrying a
// string payload. reconcile never builds host nodes itself; it asks a
// Document to create them and then mutates them through the Node interface.
//
// The memhost sub-package provides an in-memory implementation that records
// every mutation, used by tests, the CLI and the live preview server.
package host

// NodeType discriminates host nodes. The values follow the DOM's nodeType.
type NodeType uint8

const (
	ElementNode NodeType = 1
	TextNode    NodeType = 3
)

// SVGNamespace is the namespace used for elements created inside <svg>.
const SVGNamespace = "http://www.w3.org/2000/svg"

// Attr is a single host attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is one native node of the host surface.
//
// Text-only methods (Data, SetData) are no-ops on elements and element-only
// methods are no-ops on text nodes. Navigation methods return a nil
// interface, never a typed nil, when there is nothing to return.
type Node interface {
	NodeType() NodeType
	// LocalName is the tag name of an element, "" for text nodes.
	LocalName() string
	Namespace() string

	ParentNode() Node
	FirstChild() Node
	NextSibling() Node
	// ChildNodes returns a snapshot of the current children.
	ChildNodes() []Node

	AppendChild(child Node)
	// InsertBefore inserts child before ref. A nil ref appends.
	InsertBefore(child, ref Node)
	RemoveChild(child Node)

	Data() string
	SetData(data string)

	Attributes() []Attr
	SetAttribute(name, value string)
	RemoveAttribute(name string)

	// Property reads a live property such as "value" or "checked".
	Property(name string) any
	SetProperty(name string, value any)

	// SetListener binds handler to event, replacing any previous handler.
	// A nil handler removes the listener.
	SetListener(event string, handler any)

	// SetInnerHTML replaces every child with the parsed markup.
	SetInnerHTML(markup string)
}

// Document creates host nodes.
type Document interface {
	CreateElement(tag string) Node
	CreateElementNS(namespace, tag string) Node
	CreateTextNode(data string) Node
}

// Remove detaches n from its parent, if it has one.
func Remove(n Node) {
	if n == nil {
		return
	}
	if p := n.ParentNode(); p != nil {
		p.RemoveChild(n)
	}
}

// IsSVG reports whether n lives in the SVG namespace.
func IsSVG(n Node) bool {
	return n != nil && n.Namespace() == SVGNamespace
}
