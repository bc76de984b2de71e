// Package crypto holds all client-side cryptography of the sync engine.
//
// Three kinds of keys are involved:
//
//	local key    = Argon2id(passphrase, salt)   seals everything persisted locally
//	account keys = X25519 key pairs               open share keys (NaCl sealed boxes)
//	share keys   = 32-byte AES-256 keys            open item contents (AES-GCM)
//
// Keys are never generated for shares or items here; they only come from the
// remote, wrapped for the account.
package crypto

// LocalCipher seals and opens data at rest with the local key.
// Blobs have the layout nonce ‖ ciphertext.
type LocalCipher interface {
	// Seal encrypts plaintext with AES-256-GCM under the local key.
	Seal(plaintext []byte) ([]byte, error)

	// Open reverses Seal. Returns [ErrDecrypt] (wrapped) when the blob was
	// not produced under the same local key or was tampered with.
	Open(blob []byte) ([]byte, error)
}

// KeyRing opens share keys that the remote sealed to one of the account's
// public keys.
type KeyRing interface {
	// OpenShareKey decodes the base64 sealed box sealedKey and opens it with
	// the account key identified by userKeyID.
	//
	// Returns [ErrUnknownAccountKey] when no such key exists,
	// [ErrInactiveAccountKey] when the key is not active, and [ErrDecrypt]
	// when the box does not open.
	OpenShareKey(userKeyID, sealedKey string) ([]byte, error)
}
