package crypto

import "errors"

var (
	// ErrDecrypt is returned when a ciphertext fails authentication or is
	// malformed.
	ErrDecrypt = errors.New("decryption failed")
	// ErrInvalidKey is returned when key material has the wrong size.
	ErrInvalidKey = errors.New("invalid key material")
	// ErrUnknownAccountKey is returned when a share key is addressed to an
	// account key the key ring does not hold.
	ErrUnknownAccountKey = errors.New("unknown account key")
	// ErrInactiveAccountKey is returned when a share key is addressed to an
	// account key that is no longer active.
	ErrInactiveAccountKey = errors.New("inactive account key")
)
