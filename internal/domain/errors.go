package domain

import (
	"errors"
	"fmt"
)

// ErrCredentialsMissing means a required external-service credential was not
// configured. Always maps to HTTP 500 at the edge; never retried.
var ErrCredentialsMissing = errors.New("service credentials not configured")

// ErrUnparseableCompletion means the completion service returned text from
// which no well-formed JSON value could be extracted. The caller fails closed
// rather than guessing.
var ErrUnparseableCompletion = errors.New("completion contained no parseable JSON")

// UpstreamError records a non-success response from an external collaborator.
// The upstream status code is propagated to the caller for primary queries;
// the upstream body is logged but never echoed verbatim.
type UpstreamError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Service, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
}

// NewUpstreamError builds an UpstreamError for the named service.
func NewUpstreamError(service string, statusCode int, message string) *UpstreamError {
	return &UpstreamError{Service: service, StatusCode: statusCode, Message: message}
}

// UpstreamStatus extracts the upstream HTTP status from err, if it wraps an
// UpstreamError.
func UpstreamStatus(err error) (int, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.StatusCode, true
	}
	return 0, false
}
