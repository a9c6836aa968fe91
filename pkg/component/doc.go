// Package component defines what a reconciled component is.
//
// A component type is either a class, built by Type.New into a stateful
// Instance that embeds Base, or a plain render function. Both are driven
// through the same Instance interface; optional lifecycle methods are
// discovered by interface assertion:
//
//	type Counter struct {
//	    component.Base
//	}
//
//	func (c *Counter) Render(props component.Props, state component.State, ctx any) any {
//	    n, _ := state["n"].(int)
//	    return vdom.Button(vdom.OnClick(func() {
//	        c.SetState(component.State{"n": n + 1})
//	    }), vdom.Textf("%d", n))
//	}
//
//	func (c *Counter) ComponentDidMount() { ... }
//
//	var CounterType = component.Class("Counter", func(component.Props, any) component.Instance {
//	    return &Counter{}
//	})
//
// Contexts created with CreateContext carry a value from a Provider down
// to every Consumer (or ContextType component) below it.
package component
