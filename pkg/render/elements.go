package render

// voidElements cannot have children and have no closing tag.
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

func isVoidElement(tag string) bool {
	return voidElements[tag]
}

// inlineElements don't need newlines in pretty-printed output.
var inlineElements = map[string]bool{
	"a":      true,
	"abbr":   true,
	"b":      true,
	"br":     true,
	"cite":   true,
	"code":   true,
	"em":     true,
	"i":      true,
	"kbd":    true,
	"label":  true,
	"mark":   true,
	"q":      true,
	"s":      true,
	"small":  true,
	"span":   true,
	"strong": true,
	"sub":    true,
	"sup":    true,
	"time":   true,
	"u":      true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

// booleanAttrs are rendered as just the attribute name when present.
var booleanAttrs = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"hidden":          true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"novalidate":      true,
	"open":            true,
	"readonly":        true,
	"required":        true,
	"reversed":        true,
	"selected":        true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}

// rawTextElements hold text that must not be escaped.
var rawTextElements = map[string]bool{
	"script": true,
	"style":  true,
}
