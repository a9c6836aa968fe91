package fixture

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/reconcile/pkg/component"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Demo returns the built-in demo components: counter, list and static.
func Demo() Registry {
	return Registry{
		"counter": Counter,
		"list":    List,
		"static":  Static,
	}
}

// Counter is a stateful counter with increment and decrement buttons.
//
// Props: id (prefix of the button ids, default "counter"), start, step.
var Counter = component.Class("Counter", func(props component.Props, _ any) component.Instance {
	c := &counter{}
	c.State = component.State{"count": intProp(props, "start", 0)}
	return c
})

type counter struct {
	component.Base
}

func (c *counter) add(delta int) func() {
	return func() {
		c.SetStateFunc(func(prev component.State, props component.Props) component.State {
			n, _ := prev["count"].(int)
			return component.State{"count": n + delta*intProp(props, "step", 1)}
		})
	}
}

func (c *counter) Render(props component.Props, state component.State, _ any) any {
	id := stringProp(props, "id", "counter")
	count, _ := state["count"].(int)
	return vdom.Div(vdom.Class("counter"), vdom.ID(id),
		vdom.Button(vdom.ID(id+"-dec"), vdom.OnClick(c.add(-1)), "-"),
		vdom.Span(vdom.Class("count"), strconv.Itoa(count)),
		vdom.Button(vdom.ID(id+"-inc"), vdom.OnClick(c.add(1)), "+"),
	)
}

// List renders its items as keyed list entries.
//
// Props: items (list of scalars, each its own key), ordered.
var List = component.Func("List", func(props component.Props, _ any) any {
	items, _ := props["items"].([]any)
	lis := make([]*vdom.VNode, 0, len(items))
	for _, it := range items {
		s := fmt.Sprint(it)
		lis = append(lis, vdom.Li(vdom.Key(s), s))
	}
	if ordered, _ := props["ordered"].(bool); ordered {
		return vdom.Ol(lis)
	}
	return vdom.Ul(lis)
})

// Static renders its text once and refuses every later update.
var Static = component.Class("Static", func(component.Props, any) component.Instance {
	return &static{}
})

type static struct {
	component.Base
}

func (*static) ShouldComponentUpdate(component.Props, component.State, any) bool { return false }

func (*static) Render(props component.Props, _ component.State, _ any) any {
	return vdom.P(vdom.Class("static"), stringProp(props, "text", ""))
}

func intProp(props component.Props, key string, def int) int {
	switch v := props[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func stringProp(props component.Props, key, def string) string {
	if v, ok := props[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return def
}
