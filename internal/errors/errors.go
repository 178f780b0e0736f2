package errors

import "errors"

// Sentinel errors shared by the service and store layers. The API layer maps
// them to HTTP status codes with errors.Is, so nothing below the handlers
// needs to know about HTTP.

var (
	// ErrNotFound signifies that a session or message could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that client input failed validation, including
	// history imports that are not valid JSON. Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that the operation conflicts with current state.
	// Mapped to 409 Conflict.
	ErrConflict = errors.New("resource conflict")

	// ErrUpstream signifies that the hosted model API failed for both the
	// primary and the fallback model. Mapped to 502 Bad Gateway.
	ErrUpstream = errors.New("upstream model unavailable")

	// ErrInternal signifies an unexpected error on the server.
	// Mapped to 500 Internal Server Error.
	ErrInternal = errors.New("internal server error")
)
