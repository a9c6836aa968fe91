package render

import (
	"bufio"
	"bytes"
	"io"
	"sort"
	"strconv"

	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/host/memhost"
	"github.com/vango-dev/reconcile/pkg/reconcile"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Config configures the HTML renderer.
type Config struct {
	// Pretty enables indented output. Inline elements stay on one line.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string

	// NodeIDs adds a data-rid attribute carrying the host node id to every
	// element whose node exposes one. Live preview clients use it to map
	// mutation targets onto their DOM.
	NodeIDs bool
}

// Renderer writes host trees as HTML.
type Renderer struct {
	config Config
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

type identified interface {
	ID() uint64
}

// RenderNode writes n and its descendants to w.
func (r *Renderer) RenderNode(w io.Writer, n host.Node) error {
	bw := bufio.NewWriter(w)
	r.node(bw, n, 0)
	return bw.Flush()
}

// RenderChildren returns the HTML of n's children, without n itself.
func (r *Renderer) RenderChildren(n host.Node) (string, error) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	for _, c := range n.ChildNodes() {
		r.node(bw, c, 0)
	}
	if err := bw.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) node(w *bufio.Writer, n host.Node, depth int) {
	if n.NodeType() == host.TextNode {
		if p := n.ParentNode(); p != nil && rawTextElements[p.LocalName()] {
			w.WriteString(n.Data())
		} else {
			w.WriteString(escapeHTML(n.Data()))
		}
		return
	}
	r.element(w, n, depth)
}

func (r *Renderer) element(w *bufio.Writer, n host.Node, depth int) {
	tag := n.LocalName()
	pretty := r.config.Pretty && !isInlineElement(tag)

	if pretty && depth > 0 {
		r.writeIndent(w, depth)
	}
	w.WriteByte('<')
	w.WriteString(tag)
	r.attributes(w, n)
	w.WriteByte('>')

	if isVoidElement(tag) {
		if pretty {
			w.WriteByte('\n')
		}
		return
	}

	kids := n.ChildNodes()
	block := pretty && hasElementChild(kids)
	if block {
		w.WriteByte('\n')
	}
	for _, c := range kids {
		if block && (c.NodeType() == host.TextNode || isInlineElement(c.LocalName())) {
			r.writeIndent(w, depth+1)
			r.node(w, c, depth+1)
			w.WriteByte('\n')
			continue
		}
		r.node(w, c, depth+1)
	}
	if block {
		r.writeIndent(w, depth)
	}

	w.WriteString("</")
	w.WriteString(tag)
	w.WriteByte('>')
	if pretty {
		w.WriteByte('\n')
	}
}

// attributes writes the attributes of n sorted by name, for deterministic
// output.
func (r *Renderer) attributes(w *bufio.Writer, n host.Node) {
	attrs := n.Attributes()
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })

	for _, a := range attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		if a.Value == "" && isBooleanAttr(a.Name) {
			continue
		}
		w.WriteString(`="`)
		w.WriteString(escapeAttr(a.Value))
		w.WriteByte('"')
	}

	if r.config.NodeIDs {
		if id, ok := n.(identified); ok {
			w.WriteString(` data-rid="`)
			w.WriteString(strconv.FormatUint(id.ID(), 10))
			w.WriteByte('"')
		}
	}
}

func hasElementChild(kids []host.Node) bool {
	for _, c := range kids {
		if c.NodeType() == host.ElementNode {
			return true
		}
	}
	return false
}

func (r *Renderer) writeIndent(w *bufio.Writer, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(r.config.Indent)
	}
}

// ToString server-renders v: it reconciles v into a fresh in-memory
// container and returns the container's HTML. The first failure recovered
// while rendering is returned as a coded error alongside whatever markup
// was produced.
func ToString(v *vdom.VNode, opts ...reconcile.Option) (string, error) {
	var first *reconcile.Failure
	opts = append(opts, reconcile.WithHooks(reconcile.Hooks{
		OnError: func(f *reconcile.Failure) {
			if first == nil {
				first = f
			}
		},
	}))

	doc := memhost.NewDocument()
	container := doc.Element("body")
	reconcile.New(doc, opts...).Render(container, v)

	html, err := NewRenderer(Config{}).RenderChildren(container)
	if err != nil {
		return "", err
	}
	if first != nil {
		return html, first.Coded()
	}
	return html, nil
}
