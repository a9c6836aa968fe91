// Package memhost is an in-memory host surface.
//
// It implements host.Document and host.Node with plain Go structs, records
// every mutation in order, and parses raw markup with golang.org/x/net/html.
// It is not safe for concurrent use.
package memhost

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/reconcile/pkg/host"
)

// Document owns every node it creates and the mutation log.
type Document struct {
	nextID uint64
	nodes  map[uint64]*Node
	log    []Mutation
	paused bool
}

var _ host.Document = (*Document)(nil)

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{nodes: make(map[uint64]*Node)}
}

// CreateElement implements host.Document.
func (d *Document) CreateElement(tag string) host.Node {
	return d.Element(tag)
}

// CreateElementNS implements host.Document.
func (d *Document) CreateElementNS(namespace, tag string) host.Node {
	n := d.newNode(host.ElementNode)
	n.tag = tag
	n.ns = namespace
	d.record(Mutation{Op: OpCreateElement, Target: n.id, Name: tag, Value: namespace})
	return n
}

// CreateTextNode implements host.Document.
func (d *Document) CreateTextNode(data string) host.Node {
	n := d.newNode(host.TextNode)
	n.data = data
	d.record(Mutation{Op: OpCreateText, Target: n.id, Value: data})
	return n
}

// Element creates an element and returns the concrete node, which is handy
// for containers.
func (d *Document) Element(tag string) *Node {
	n := d.newNode(host.ElementNode)
	n.tag = tag
	d.record(Mutation{Op: OpCreateElement, Target: n.id, Name: tag})
	return n
}

// NodeByID returns the node with the given id, or nil.
func (d *Document) NodeByID(id uint64) *Node {
	return d.nodes[id]
}

// Mutations returns a copy of the mutation log.
func (d *Document) Mutations() []Mutation {
	out := make([]Mutation, len(d.log))
	copy(out, d.log)
	return out
}

// Drain returns the mutation log and clears it.
func (d *Document) Drain() []Mutation {
	out := d.log
	d.log = nil
	return out
}

// Count returns how many recorded mutations have the given op.
func (d *Document) Count(op Op) int {
	n := 0
	for _, m := range d.log {
		if m.Op == op {
			n++
		}
	}
	return n
}

// Silently runs fn without recording mutations. Used to build fixtures
// such as server-rendered markup before a hydration pass.
func (d *Document) Silently(fn func()) {
	prev := d.paused
	d.paused = true
	defer func() { d.paused = prev }()
	fn()
}

// Parse parses markup as the children of a new container element with the
// given tag. The container is detached and nothing is recorded.
func (d *Document) Parse(tag, markup string) (*Node, error) {
	var container *Node
	var err error
	d.Silently(func() {
		container = d.Element(tag)
		err = container.parseChildren(strings.NewReader(markup))
	})
	return container, err
}

func (d *Document) newNode(typ host.NodeType) *Node {
	d.nextID++
	n := &Node{id: d.nextID, doc: d, typ: typ}
	d.nodes[n.id] = n
	return n
}

func (d *Document) record(m Mutation) {
	if d.paused {
		return
	}
	d.log = append(d.log, m)
}

// parseChildren replaces n's children with the parsed markup.
func (n *Node) parseChildren(r io.Reader) error {
	ctx := &html.Node{Type: html.ElementNode, Data: n.tag, DataAtom: atom.Lookup([]byte(n.tag))}
	parsed, err := html.ParseFragment(r, ctx)
	if err != nil {
		return fmt.Errorf("memhost: parse markup: %w", err)
	}
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	for _, p := range parsed {
		if c := n.doc.fromHTML(p); c != nil {
			c.parent = n
			n.children = append(n.children, c)
		}
	}
	return nil
}

func (d *Document) fromHTML(p *html.Node) *Node {
	switch p.Type {
	case html.TextNode:
		n := d.newNode(host.TextNode)
		n.data = p.Data
		return n
	case html.ElementNode:
		n := d.newNode(host.ElementNode)
		n.tag = p.Data
		if p.Namespace == "svg" {
			n.ns = host.SVGNamespace
		}
		for _, a := range p.Attr {
			n.attrs = append(n.attrs, host.Attr{Name: a.Key, Value: a.Val})
		}
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if child := d.fromHTML(c); child != nil {
				child.parent = n
				n.children = append(n.children, child)
			}
		}
		return n
	default:
		return nil
	}
}
