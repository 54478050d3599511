package domain

import "errors"

// Domain errors describe why a probe failed.
// Every one of them maps to exit code 1; they exist for messages and history.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown engine type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Connectivity Errors.

	// ErrUnreachable indicates the engine could not be reached at the transport level.
	ErrUnreachable = errors.New("service unreachable")

	// ErrTimeout indicates the engine did not answer within the configured timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrAuthInvalid indicates the engine rejected the supplied credentials.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrUnexpectedStatus indicates the engine answered with a non-success status.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrMalformedResponse indicates the info payload could not be decoded.
	ErrMalformedResponse = errors.New("malformed response")
)

// IsRetryable reports whether a failed probe may succeed if attempted again.
// Credential and input problems are permanent; transport problems are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrAuthInvalid),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrUnsupportedType):
		return false
	default:
		return true
	}
}
