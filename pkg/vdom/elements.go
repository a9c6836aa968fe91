package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, EventHandler, *VNode, []*VNode,
// string or any other value Flatten accepts as a child.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: make(Props),
	}
	node.Children = applyArgs(node, args)
	return node
}

// applyArgs copies attributes onto node and returns the child list.
func applyArgs(node *VNode, args []any) []*VNode {
	var children []*VNode
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore untyped nil (allows conditional attributes)
			continue

		case Attr:
			setAttr(node, v)

		case []Attr:
			for _, a := range v {
				setAttr(node, a)
			}

		case EventHandler:
			node.Props[v.Event] = v.Handler

		default:
			children = flatten(v, children)
		}
	}
	return children
}

func setAttr(node *VNode, a Attr) {
	switch a.Key {
	case "":
		return
	case "key":
		if s, ok := a.Value.(string); ok {
			node.Key = s
		}
	case "ref":
		if r, ok := a.Value.(Ref); ok {
			node.Ref = r
		}
	default:
		node.Props[a.Key] = a.Value
	}
}

// H creates an element with an arbitrary tag.
func H(tag string, args ...any) *VNode { return createElement(tag, args) }

// Sectioning and text content

func Html(args ...any) *VNode    { return createElement("html", args) }
func Body(args ...any) *VNode    { return createElement("body", args) }
func Header(args ...any) *VNode  { return createElement("header", args) }
func Footer(args ...any) *VNode  { return createElement("footer", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Nav(args ...any) *VNode     { return createElement("nav", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func Article(args ...any) *VNode { return createElement("article", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }
func H2(args ...any) *VNode      { return createElement("h2", args) }
func H3(args ...any) *VNode      { return createElement("h3", args) }
func Div(args ...any) *VNode     { return createElement("div", args) }
func P(args ...any) *VNode       { return createElement("p", args) }
func Span(args ...any) *VNode    { return createElement("span", args) }
func Pre(args ...any) *VNode     { return createElement("pre", args) }
func Ul(args ...any) *VNode      { return createElement("ul", args) }
func Ol(args ...any) *VNode      { return createElement("ol", args) }
func Li(args ...any) *VNode      { return createElement("li", args) }
func Hr(args ...any) *VNode      { return createElement("hr", args) }
func Br(args ...any) *VNode      { return createElement("br", args) }

// Inline text semantics

func A(args ...any) *VNode      { return createElement("a", args) }
func Strong(args ...any) *VNode { return createElement("strong", args) }
func Em(args ...any) *VNode     { return createElement("em", args) }
func B(args ...any) *VNode      { return createElement("b", args) }
func I(args ...any) *VNode      { return createElement("i", args) }
func Code(args ...any) *VNode   { return createElement("code", args) }
func Small(args ...any) *VNode  { return createElement("small", args) }

// Form elements

func Form(args ...any) *VNode     { return createElement("form", args) }
func Input(args ...any) *VNode    { return createElement("input", args) }
func Textarea(args ...any) *VNode { return createElement("textarea", args) }
func Select(args ...any) *VNode   { return createElement("select", args) }
func Option(args ...any) *VNode   { return createElement("option", args) }
func Button(args ...any) *VNode   { return createElement("button", args) }
func Label(args ...any) *VNode    { return createElement("label", args) }

// Table elements

func Table(args ...any) *VNode { return createElement("table", args) }
func Tbody(args ...any) *VNode { return createElement("tbody", args) }
func Tr(args ...any) *VNode    { return createElement("tr", args) }
func Td(args ...any) *VNode    { return createElement("td", args) }
func Th(args ...any) *VNode    { return createElement("th", args) }

// Media elements

func Img(args ...any) *VNode { return createElement("img", args) }

// SVG elements. The reconciler creates these in the SVG namespace when they
// appear below an <svg> element.

func Svg(args ...any) *VNode           { return createElement("svg", args) }
func G(args ...any) *VNode             { return createElement("g", args) }
func Circle(args ...any) *VNode        { return createElement("circle", args) }
func Rect(args ...any) *VNode          { return createElement("rect", args) }
func Path(args ...any) *VNode          { return createElement("path", args) }
func ForeignObject(args ...any) *VNode { return createElement("foreignObject", args) }
