package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageUnauthorized         = "unauthorized"
	MessageSuccessPing          = "pong, its works"

	ErrUnauthorized     = errors.New("unauthorized")
	ErrTokenNotFound    = errors.New("token not found")
	ErrTokenInvalid     = errors.New("token invalid")
	ErrTokenExpired     = errors.New("token expired")
	ErrStoreUnavailable = errors.New("document store unavailable")
)

type (
	// AuthContext is the identity resolved from a verified session artifact.
	// It is built once per request by the auth middleware and passed explicitly
	// into every service call that needs an owner.
	AuthContext struct {
		UserID string `json:"id"`
		Name   string `json:"name"`
		Email  string `json:"email"`
	}

	// ValidationError lists every field that failed a constraint, keyed by
	// the JSON field name.
	ValidationError struct {
		Fields map[string]string `json:"fields"`
	}
)

func (a AuthContext) IsZero() bool {
	return a.UserID == ""
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = message
}

func (e *ValidationError) Merge(fields map[string]string) {
	for field, message := range fields {
		e.Add(field, message)
	}
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns nil when no field failed, so callers can `return verr.OrNil()`.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError reports whether err is (or wraps) a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
