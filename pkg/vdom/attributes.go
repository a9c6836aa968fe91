package vdom

import (
	"sort"
	"strings"
)

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute from a CSS string.
func StyleAttr(style string) Attr { return attr("style", style) }

// StyleMap sets the style attribute from individual declarations.
func StyleMap(decls map[string]any) Attr { return attr("style", decls) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// TitleAttr sets the title attribute (named to avoid conflict with Title element).
func TitleAttr(title string) Attr { return attr("title", title) }

// Hidden sets the hidden attribute.
func Hidden() Attr { return attr("hidden", true) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// Form attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the controlled value of a form field. The reconciler writes it
// as a live property after the attribute pass.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Disabled sets the disabled attribute.
func Disabled() Attr { return attr("disabled", true) }

// Checked sets the controlled checked state of a checkbox or radio.
func Checked(checked bool) Attr { return attr("checked", checked) }

// Selected sets the selected attribute.
func Selected() Attr { return attr("selected", true) }

// SVG attributes

// ViewBox sets the viewBox attribute.
func ViewBox(box string) Attr { return attr("viewBox", box) }

// Fill sets the fill attribute.
func Fill(color string) Attr { return attr("fill", color) }

// Raw markup

// DangerouslySetInnerHTML replaces the element's children with markup.
// Children passed alongside it are ignored.
func DangerouslySetInnerHTML(markup string) Attr {
	return attr(InnerHTMLProp, RawHTML{HTML: markup})
}

// Conditional attributes

// ClassIf adds a class conditionally.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return attr("class", class)
	}
	return Attr{} // Empty attr, will be ignored
}

// AttrIf adds any attribute conditionally.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}

// Classes merges multiple class values.
// Accepts string, []string, and map[string]bool; map entries are sorted.
func Classes(classes ...any) Attr {
	var result []string
	for _, c := range classes {
		switch v := c.(type) {
		case string:
			if v != "" {
				result = append(result, v)
			}
		case []string:
			for _, s := range v {
				if s != "" {
					result = append(result, s)
				}
			}
		case map[string]bool:
			keys := make([]string, 0, len(v))
			for class, include := range v {
				if include && class != "" {
					keys = append(keys, class)
				}
			}
			sort.Strings(keys)
			result = append(result, keys...)
		}
	}
	return attr("class", strings.Join(result, " "))
}
