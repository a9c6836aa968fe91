package reconcile

import (
	"fmt"

	"github.com/vango-dev/reconcile/internal/errors"
)

// Phase says where a failure was recovered.
type Phase uint8

const (
	// PhaseRender covers render, lifecycle methods and prop diffing inside diff.
	PhaseRender Phase = iota + 1
	// PhaseRef covers ref callbacks.
	PhaseRef
	// PhaseUnmount covers ComponentWillUnmount.
	PhaseUnmount
	// PhaseCallback covers commit callbacks (did-mount, did-update, setState callbacks).
	PhaseCallback
	// PhaseRerender covers a queued re-render outside of diff.
	PhaseRerender
)

// String returns the string representation of the Phase.
func (p Phase) String() string {
	switch p {
	case PhaseRender:
		return "render"
	case PhaseRef:
		return "ref"
	case PhaseUnmount:
		return "unmount"
	case PhaseCallback:
		return "callback"
	case PhaseRerender:
		return "rerender"
	default:
		return "unknown"
	}
}

// Code returns the registered error code of the phase.
func (p Phase) Code() string {
	switch p {
	case PhaseRef:
		return "R002"
	case PhaseUnmount:
		return "R003"
	case PhaseCallback:
		return "R004"
	default:
		return "R001"
	}
}

// Failure is a panic recovered from user code, together with where it
// happened. Old is only set for PhaseRender failures of an update.
type Failure struct {
	Phase Phase
	Node  Node
	Old   Node
	Cause error
}

// Error implements error.
func (f *Failure) Error() string {
	return fmt.Sprintf("reconcile: %s failed at %s: %v", f.Phase, f.Node.Name(), f.Cause)
}

// Unwrap returns the cause.
func (f *Failure) Unwrap() error { return f.Cause }

// Coded returns the failure as a registered error for reporting.
func (f *Failure) Coded() *errors.ReconcileError {
	return errors.New(f.Phase.Code()).WithNode(f.Node.Name()).Wrap(f.Cause)
}

// invoke runs fn and converts a panic into an error.
func invoke(fn func()) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = errors.Recovered(v)
		}
	}()
	fn()
	return nil
}
