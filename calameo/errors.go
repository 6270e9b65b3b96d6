package calameo

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidCredentials indicates an incomplete API key/secret pair
	ErrInvalidCredentials = errors.New("invalid calameo credentials")
	// ErrMissingField indicates a required action field was not supplied
	ErrMissingField = errors.New("missing required field")
	// ErrUnrecognizedResponse indicates a body that does not match the expected envelope
	ErrUnrecognizedResponse = errors.New("unrecognized response")
)

// HTTPError is returned when the API answers with a status other than 200.
type HTTPError struct {
	Action     string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("calameo %s: unexpected status %d", e.Action, e.StatusCode)
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound checks if the error indicates a not found response
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// RemoteError is returned when the envelope status is not "ok".
type RemoteError struct {
	Action  string
	Status  string
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("calameo %s: status %q: %s (code %s)", e.Action, e.Status, e.Message, e.Code)
	}
	return fmt.Sprintf("calameo %s: status %q", e.Action, e.Status)
}

// DecodeError is returned when a response body cannot be mapped onto the
// structure the action expects.
type DecodeError struct {
	Action string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil && !errors.Is(e.Err, ErrUnrecognizedResponse) {
		return fmt.Sprintf("calameo %s: %s: %v", e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("calameo %s: %s", e.Action, e.Reason)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnrecognizedResponse}
	}
	return []error{ErrUnrecognizedResponse, e.Err}
}

// PaginationError is returned when a page of a FetchAll* call fails.
// Pagination stops at the failing page.
type PaginationError struct {
	Action string
	Start  int
	Err    error
}

func (e *PaginationError) Error() string {
	return fmt.Sprintf("calameo %s: page at start %d failed: %v", e.Action, e.Start, e.Err)
}

func (e *PaginationError) Unwrap() error {
	return e.Err
}
