package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	// Rejected before any query compilation or network call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates a provider credential is missing.
	// The affected client declines the operation; the process keeps running.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrProviderRequest indicates a transport failure, a non-success
	// status or a malformed response body from a provider.
	ErrProviderRequest = errors.New("provider request failed")

	// ErrEnrichmentFailed indicates the secondary provider could not enrich
	// a result set. It is logged and never returned from a combined search.
	ErrEnrichmentFailed = errors.New("enrichment failed")

	// ErrUnsupportedType indicates an unknown result kind or search mode.
	ErrUnsupportedType = errors.New("unsupported type")
)

// Provider refusal causes. Transports return errors matching these so
// callers can tell a refusal from an outage; they always arrive wrapped in
// an ErrProviderRequest SearchError.
var (
	ErrRateLimited   = errors.New("provider rate limit exceeded")
	ErrUnauthorized  = errors.New("provider rejected credentials")
	ErrQueryRejected = errors.New("provider rejected query")
)

// SearchError is the failure type returned by the search clients.
// Kind is one of the sentinel errors above; Err is the underlying cause.
type SearchError struct {
	Op   string
	Kind error
	Err  error
}

// NewSearchError builds a SearchError for the given operation.
func NewSearchError(op string, kind, err error) *SearchError {
	return &SearchError{Op: op, Kind: kind, Err: err}
}

func (e *SearchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *SearchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfiguration reports whether err is caused by a missing credential.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// IsNetwork reports whether err is a provider transport failure.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrProviderRequest)
}

// IsRateLimited reports whether the provider refused err's call for quota.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsUnauthorized reports whether the provider rejected the credential.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsQueryRejected reports whether the provider refused the compiled query.
func IsQueryRejected(err error) bool {
	return errors.Is(err, ErrQueryRejected)
}
