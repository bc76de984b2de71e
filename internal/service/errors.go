package service

import "errors"

var (
	// ErrShareKeyNotFound is returned when a share has no key for the
	// requested rotation, even after a refresh from the remote.
	ErrShareKeyNotFound = errors.New("share key not found")
	// ErrInactiveUserKey is returned when a share key is addressed to an
	// account key that is unknown or no longer active.
	ErrInactiveUserKey = errors.New("share key is sealed to an inactive user key")
	// ErrKeyUnavailable marks an item whose share key could not be obtained.
	// The item stays stored encrypted and is decrypted on a later read.
	ErrKeyUnavailable = errors.New("item key unavailable")

	ErrShareMismatch   = errors.New("share id does not match")
	ErrAllSharesFailed = errors.New("every share failed to sync")
)
