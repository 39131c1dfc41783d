package manager

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUpstream           = errors.New("upstream request failed")
	ErrInvalidCoordinates = errors.New("coordinates out of range")
)

// NotFoundError reports a free-text query that matched no place.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return "City not found: " + e.Query
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UpstreamError reports an unsuccessful call to one of the providers.
// Error returns only the user-facing message; the cause is kept for logs.
type UpstreamError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
