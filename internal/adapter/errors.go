package adapter

import "errors"

// Remote errors, one per handled HTTP status class.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrUnauthorized  = errors.New("client unauthorized")
	ErrForbidden     = errors.New("access forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrUnprocessable = errors.New("unprocessable entity")
	// ErrServerUnavailable covers every 5xx response. The sync scheduler backs
	// off after it.
	ErrServerUnavailable = errors.New("server unavailable")
	// ErrInvalidResponse is returned when a 2xx body cannot be decoded or
	// breaks the paging contract.
	ErrInvalidResponse = errors.New("invalid response")
)
