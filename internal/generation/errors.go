package generation

import "errors"

var (
	// ErrModelUnavailable is returned once every attempt at a model call failed.
	ErrModelUnavailable = errors.New("generation unavailable")

	// ErrModelTimeout marks a model call that exceeded its deadline.
	ErrModelTimeout = errors.New("model call timed out")

	// ErrModelRejected marks a request the provider refused. It is never retried.
	ErrModelRejected = errors.New("model rejected the request")

	// ErrMalformedOutput is returned when structured output cannot be parsed.
	ErrMalformedOutput = errors.New("malformed model output")

	// ErrInvalidInput is returned for requests missing a required field.
	ErrInvalidInput = errors.New("invalid input")
)
