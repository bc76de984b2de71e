package client

import "errors"

var (
	// ErrNoSession is returned when neither the configuration nor the local
	// store holds a bearer token.
	ErrNoSession = errors.New("no session: set ADAPTER_TOKEN")

	// ErrSessionExpired is returned when the bearer token is past its exp
	// claim.
	ErrSessionExpired = errors.New("session token expired")

	// ErrUnreadableItems is reported by the vault index task when some items
	// cannot be decrypted yet.
	ErrUnreadableItems = errors.New("items without an available key")
)
