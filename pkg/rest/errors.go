package rest

import (
	"fmt"
	"net/http"
)

// AuthError is returned when the server rejects the supplied token
// (HTTP 401 or 403).
type AuthError struct {
	StatusCode int
	Detail     string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("bugout: authorization failed (status %d): %s", e.StatusCode, e.Detail)
}

// NotFoundError is returned when the requested resource does not exist
// (HTTP 404).
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bugout: resource not found: %s", e.Detail)
}

// ValidationError is returned for malformed parameters. StatusCode is 400
// or 422 when the server reported the failure, and 0 when the client
// rejected the parameters locally before any request was made.
type ValidationError struct {
	StatusCode int
	Detail     string
}

func (e *ValidationError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("bugout: invalid parameters: %s", e.Detail)
	}
	return fmt.Sprintf("bugout: invalid parameters (status %d): %s", e.StatusCode, e.Detail)
}

// RemoteError is returned for any other non-2xx status, and for 2xx
// responses whose payload does not match the expected shape.
type RemoteError struct {
	StatusCode int
	Detail     string
}

func (e *RemoteError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("bugout: unexpected response: %s", e.Detail)
	}
	return fmt.Sprintf("bugout: server error (status %d): %s", e.StatusCode, e.Detail)
}

// TransportError is returned when no HTTP response was received at all:
// connection refused, DNS failure, timeout. It wraps the underlying error.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bugout: request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewValidationError wraps a local parameter-validation failure. It is
// used by the resource clients before any network call is attempted.
func NewValidationError(err error) *ValidationError {
	return &ValidationError{Detail: err.Error()}
}

// statusError maps a non-2xx status code and the server-provided detail
// to the matching error kind.
func statusError(statusCode int, detail string) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{StatusCode: statusCode, Detail: detail}
	case http.StatusNotFound:
		return &NotFoundError{Detail: detail}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{StatusCode: statusCode, Detail: detail}
	default:
		return &RemoteError{StatusCode: statusCode, Detail: detail}
	}
}
