package domain

import (
	"errors"
	"fmt"
)

// Classification sentinels. Callers match with errors.Is; the gateway wraps
// every failure in an *APIError that unwraps to exactly one of these.
var (
	ErrValidation   = errors.New("request rejected")
	ErrUnauthorized = errors.New("session expired")
	ErrForbidden    = errors.New("access denied")
	ErrNotFound     = errors.New("resource not found")
	ErrServer       = errors.New("server error")
	ErrNetwork      = errors.New("network error")
)

// Session errors
var (
	ErrNoAdminAccess = errors.New("no admin access")
	ErrNotLoggedIn   = errors.New("not logged in")
)

// Storage errors
var (
	ErrKeyNotFound = errors.New("storage key not found")
)

// ErrorKind names the classified failure category.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindServer       ErrorKind = "server"
	KindNetwork      ErrorKind = "network"
)

// APIError is a failure already classified and surfaced by the gateway.
// Message is human-readable; callers must not toast it again.
type APIError struct {
	Kind    ErrorKind
	Status  int    // transport status, 0 when no response arrived
	Code    int    // envelope code, 0 for transport-level failures
	Message string // user-facing text, already shown once
	Err     error  // underlying transport error, if any
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: %s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

// Unwrap maps the kind onto its sentinel so errors.Is works, while also
// exposing the wrapped transport error.
func (e *APIError) Unwrap() []error {
	sentinel := map[ErrorKind]error{
		KindValidation:   ErrValidation,
		KindUnauthorized: ErrUnauthorized,
		KindForbidden:    ErrForbidden,
		KindNotFound:     ErrNotFound,
		KindServer:       ErrServer,
		KindNetwork:      ErrNetwork,
	}[e.Kind]
	if e.Err != nil {
		return []error{sentinel, e.Err}
	}
	return []error{sentinel}
}

// AsAPIError extracts the classified failure from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
