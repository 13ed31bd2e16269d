package shipping

import "fmt"

// ValidationError rejects a request before any outbound call is made. The
// message is returned to the caller verbatim, so it must name the offending
// field.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

// UpstreamError wraps any transport or protocol failure from the FBA API into
// a single uniform kind so raw client errors never leak to callers.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Amazon FBA API Error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
