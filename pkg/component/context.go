package component

import (
	"strconv"
	"sync/atomic"

	"github.com/vango-dev/reconcile/pkg/vdom"
)

var contextSeq atomic.Uint64

// Context carries a value from a Provider to the Consumers below it.
type Context struct {
	// ID keys the provider in the ambient ContextMap.
	ID string
	// Default is seen by consumers with no provider above them.
	Default any

	Provider *Type
	Consumer *Type
}

// Subscriber is notified when the value of the provider it consumes from
// changes.
type Subscriber interface {
	ContextChanged(value any)
}

// Provider is what a context ID resolves to in the ambient ContextMap.
type Provider interface {
	Value() any
	Subscribe(s Subscriber)
	Unsubscribe(s Subscriber)
}

// CreateContext returns a new context with the given default value.
func CreateContext(def any) *Context {
	c := &Context{
		ID:      "__cC" + strconv.FormatUint(contextSeq.Add(1), 10),
		Default: def,
	}
	c.Provider = Class("Context.Provider", func(Props, any) Instance {
		return &provider{ctx: c}
	})
	c.Consumer = &Type{
		Name:        "Context.Consumer",
		ContextType: c,
		Func: func(props Props, value any) any {
			if fn, ok := props["render"].(func(any) any); ok {
				return fn(value)
			}
			return nil
		},
	}
	return c
}

// Provide renders children with value as c's current value.
func (c *Context) Provide(value any, children ...any) *vdom.VNode {
	return vdom.C(c.Provider, Props{"value": value}, children...)
}

// Consume renders fn with the nearest provided value of c.
func (c *Context) Consume(fn func(value any) any) *vdom.VNode {
	return vdom.C(c.Consumer, Props{"render": fn})
}

// Resolve returns the value of c seen through ambient along with the
// provider it came from, which is nil when the default applies.
func (c *Context) Resolve(ambient ContextMap) (any, Provider) {
	if p, ok := ambient[c.ID].(Provider); ok {
		return p.Value(), p
	}
	return c.Default, nil
}

type provider struct {
	Base
	ctx  *Context
	subs []Subscriber
}

func (p *provider) Value() any { return p.Props["value"] }

func (p *provider) Subscribe(s Subscriber) {
	for _, x := range p.subs {
		if x == s {
			return
		}
	}
	p.subs = append(p.subs, s)
}

func (p *provider) Unsubscribe(s Subscriber) {
	for i, x := range p.subs {
		if x == s {
			p.subs = append(p.subs[:i], p.subs[i+1:]...)
			return
		}
	}
}

func (p *provider) GetChildContext() ContextMap {
	return ContextMap{p.ctx.ID: p}
}

// ShouldComponentUpdate pushes a changed value to subscribers. It never
// vetoes the update itself.
func (p *provider) ShouldComponentUpdate(next Props, _ State, _ any) bool {
	if v := next["value"]; !vdom.Same(p.Props["value"], v) {
		subs := make([]Subscriber, len(p.subs))
		copy(subs, p.subs)
		for _, s := range subs {
			s.ContextChanged(v)
		}
	}
	return true
}

func (p *provider) Render(props Props, _ State, _ any) any {
	return vdom.ChildrenOf(props)
}
