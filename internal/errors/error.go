package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryReconcile Category = "reconcile"
	CategoryFixture   Category = "fixture"
	CategoryConfig    Category = "config"
	CategorySnapshot  Category = "snapshot"
	CategoryServer    Category = "server"
	CategoryCLI       Category = "cli"
)

// ReconcileError is a structured error with a registered code and a hint.
type ReconcileError struct {
	// Code is a unique error identifier (e.g., "R001").
	Code string

	// Category is the error type (reconcile, fixture, ...).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Node names the virtual node involved, if any ("<ul>", "Counter", "#text").
	Node string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ReconcileError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ReconcileError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ReconcileError) WithSuggestion(s string) *ReconcileError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ReconcileError) WithDetail(d string) *ReconcileError {
	e.Detail = d
	return e
}

// WithNode records the name of the node the error refers to.
func (e *ReconcileError) WithNode(name string) *ReconcileError {
	e.Node = name
	return e
}

// Wrap wraps another error.
func (e *ReconcileError) Wrap(err error) *ReconcileError {
	e.Wrapped = err
	return e
}

// New creates a ReconcileError from a registered error code.
func New(code string) *ReconcileError {
	template, ok := registry[code]
	if !ok {
		return &ReconcileError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ReconcileError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new ReconcileError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ReconcileError {
	return &ReconcileError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a ReconcileError.
func FromError(err error, code string) *ReconcileError {
	if err == nil {
		return nil
	}
	if re, ok := err.(*ReconcileError); ok {
		return re
	}
	return New(code).Wrap(err)
}

// Is reports whether err carries the given registered code anywhere in its chain.
func Is(err error, code string) bool {
	for err != nil {
		if re, ok := err.(*ReconcileError); ok && re.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
