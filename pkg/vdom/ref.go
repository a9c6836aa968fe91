package vdom

// Ref receives the host node of an element or the instance of a component
// once it is mounted, and nil once it is unmounted.
type Ref interface {
	isRef()
}

// RefObject is a ref whose Current field is assigned.
type RefObject struct {
	Current any
}

func (*RefObject) isRef() {}

// NewRef returns an empty RefObject.
func NewRef() *RefObject {
	return &RefObject{}
}

// RefFunc is a ref invoked with the value.
type RefFunc func(value any)

func (RefFunc) isRef() {}

// SameRef reports whether a and b are the same ref. Only the same
// *RefObject counts; function refs are never considered equal so they
// are re-applied on every render.
func SameRef(a, b Ref) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, ok := a.(*RefObject)
	if !ok {
		return false
	}
	rb, ok := b.(*RefObject)
	return ok && ra == rb
}

// WithRef attaches a ref to an element, fragment or component.
func WithRef(r Ref) Attr {
	return Attr{Key: "ref", Value: r}
}
