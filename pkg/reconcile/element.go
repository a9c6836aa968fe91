package reconcile

import (
	"github.com/vango-dev/reconcile/pkg/component"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// diffElementNodes reconciles a text or element position. The host node is
// recorded on the slot as soon as it is known.
func (r *Renderer) diffElementNodes(nh, oh Handle, ctx component.ContextMap,
	svg bool, pool []host.Node, q *CommitQueue, hydrating bool) {
	ns, os := r.arena.get(nh), r.arena.get(oh)
	n := &ns.node
	isText := ns.kind == variantText
	svg = svg || (!isText && n.Tag == "svg")

	dom := os.dom
	if dom == nil && pool != nil {
		for i, c := range pool {
			if c == nil {
				continue
			}
			if (isText && c.NodeType() == host.TextNode) || (!isText && c.LocalName() == n.Tag) {
				dom = c
				pool[i] = nil
				break
			}
		}
	}

	if dom == nil {
		if isText {
			ns.dom = r.doc.CreateTextNode(n.Text)
			return
		}
		if svg {
			dom = r.doc.CreateElementNS(host.SVGNamespace, n.Tag)
		} else {
			dom = r.doc.CreateElement(n.Tag)
		}
		// Nothing below a fresh element can be adopted.
		pool = nil
	}
	ns.dom = dom

	if isText {
		for i, c := range pool {
			if c == dom {
				pool[i] = nil
			}
		}
		if (os.kind != variantText || os.node.Text != n.Text) && dom.Data() != n.Text {
			dom.SetData(n.Text)
		}
		return
	}

	if ns.src != nil && ns.src == os.src {
		// Same description object: nothing below can have changed.
		r.arena.adoptChildren(nh, oh)
		ns.reconciled = true
		return
	}

	if pool != nil {
		pool = dom.ChildNodes()
	}

	var oldProps vdom.Props
	if oh != 0 {
		oldProps = os.props
	}
	newHTML, hasNew := n.InnerHTML()
	oldHTML, hasOld := os.node.InnerHTML()

	if !hydrating {
		if oh == 0 {
			oldProps = attributeProps(dom)
		}
		if hasNew || hasOld {
			if !hasNew || !hasOld || newHTML.HTML != oldHTML.HTML {
				dom.SetInnerHTML(newHTML.HTML)
			}
		}
	}

	r.props.DiffProps(dom, n.Props, oldProps, svg, hydrating)

	if !hasNew {
		ns.pending = n.Children
		r.reconcileChildren(dom, nh, oh, ctx, svg && n.Tag != "foreignObject", pool, q, AutoAnchor, hydrating)
	} else {
		// Raw markup replaced whatever the old children rendered.
		ns.reconciled = true
		for _, c := range r.arena.Children(oh) {
			if c != 0 {
				r.unmount(c, c, true)
			}
		}
		r.arena.get(oh).children = nil
	}

	if !hydrating {
		if v, ok := n.Props["value"]; ok {
			if v == nil {
				v = ""
			}
			if !vdom.Same(dom.Property("value"), v) {
				dom.SetProperty("value", v)
			}
		}
		if v, ok := n.Props["checked"]; ok && v != nil {
			if !vdom.Same(dom.Property("checked"), v) {
				dom.SetProperty("checked", v)
			}
		}
	}
}

// attributeProps reads the attributes of an adopted host node back as the
// props it was rendered with.
func attributeProps(dom host.Node) vdom.Props {
	attrs := dom.Attributes()
	props := make(vdom.Props, len(attrs))
	for _, a := range attrs {
		props[a.Name] = a.Value
	}
	return props
}
