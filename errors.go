package bridge

import "errors"

var (
	// ErrHandlerNil is returned by New when no handler is configured.
	ErrHandlerNil = errors.New("handler cannot be nil")

	// ErrHostCall indicates that a waPC host invocation failed.
	ErrHostCall = errors.New("host call failed")

	// ErrHostResponseInvalid signals that the host returned an invalid or unexpected payload.
	ErrHostResponseInvalid = errors.New("host response is invalid or unexpected")
)
