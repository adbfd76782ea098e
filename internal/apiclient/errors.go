package apiclient

import (
	"errors"
	"fmt"
)

// Kind classifies a failed API interaction so callers can decide how to
// surface it without inspecting status codes.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindConflict
	KindNotFound
	KindTimeout
	KindUnreachable
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not found"
	case KindTimeout:
		return "timeout"
	case KindUnreachable:
		return "unreachable"
	case KindServer:
		return "server error"
	}
	return "unknown"
}

// Error is the single error type returned by the client for failed requests.
// Message carries the backend-provided message when one was present.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	RequestID  string
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a client-local error of the given kind, used by lifecycle
// services for failures detected before any request is issued.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	if kind == KindValidation {
		var v *ValidationError
		return errors.As(err, &v)
	}
	return false
}

// KindOf extracts the kind from err, KindUnknown if it is not a client error.
func KindOf(err error) Kind {
	var v *ValidationError
	if errors.As(err, &v) {
		return KindValidation
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// ValidationError collects field level problems detected locally, before any
// network call is made.
type ValidationError struct {
	Fields map[string]string
}

func (v *ValidationError) Error() string {
	return "validation failed"
}

// Add records a problem against a field, keeping the first message per field.
func (v *ValidationError) Add(field, message string) {
	if v.Fields == nil {
		v.Fields = make(map[string]string)
	}
	if _, ok := v.Fields[field]; !ok {
		v.Fields[field] = message
	}
}

// HasErrors reports whether any field problem was recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.Fields) > 0
}

// ErrOrNil returns the receiver as an error when problems were recorded.
func (v *ValidationError) ErrOrNil() error {
	if v.HasErrors() {
		return v
	}
	return nil
}
