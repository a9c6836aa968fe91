package errors

import (
	"fmt"
	"runtime"
	"strings"
)

// PanicError represents a panic recovered from user code.
type PanicError struct {
	// Value is the value passed to panic().
	Value any
	// Stack is the call stack captured at recovery time.
	Stack string
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return "panic: " + err.Error()
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Recovered converts a value returned by recover() into an error.
// It returns nil for a nil value.
func Recovered(v any) error {
	if v == nil {
		return nil
	}
	return &PanicError{Value: v, Stack: CaptureStack()}
}

// CaptureStack returns the current goroutine stack, trimmed of the
// runtime frames that lead into the deferred recover.
func CaptureStack() string {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	stack := string(buf[:n])
	if i := strings.Index(stack, "panic("); i > 0 {
		if j := strings.Index(stack[i:], "\n"); j > 0 {
			stack = stack[i+j+1:]
		}
	}
	return stack
}
