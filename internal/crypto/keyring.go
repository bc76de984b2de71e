// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/MKhiriev/go-pass-sync/models"
	"golang.org/x/crypto/nacl/box"
)

type accountKeyRing struct {
	keys map[string]models.AccountKey
}

// NewAccountKeyRing builds a [KeyRing] from the account's key pairs.
// Every key must carry 32-byte public and private halves.
func NewAccountKeyRing(keys []models.AccountKey) (KeyRing, error) {
	ring := &accountKeyRing{keys: make(map[string]models.AccountKey, len(keys))}
	for _, k := range keys {
		if len(k.PublicKey) != 32 || len(k.PrivateKey) != 32 {
			return nil, fmt.Errorf("%w: account key %q", ErrInvalidKey, k.KeyID)
		}
		ring.keys[k.KeyID] = k
	}
	return ring, nil
}

// LoadAccountKeyRing reads a JSON array of [models.AccountKey] from path.
func LoadAccountKeyRing(path string) (KeyRing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read account key file: %w", err)
	}

	var keys []models.AccountKey
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("decode account key file: %w", err)
	}

	return NewAccountKeyRing(keys)
}

// OpenShareKey implements [KeyRing].
func (r *accountKeyRing) OpenShareKey(userKeyID, sealedKey string) ([]byte, error) {
	accountKey, ok := r.keys[userKeyID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAccountKey, userKeyID)
	}
	if !accountKey.Active {
		return nil, fmt.Errorf("%w: %q", ErrInactiveAccountKey, userKeyID)
	}

	sealed, err := base64.StdEncoding.DecodeString(sealedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %w", ErrDecrypt, err)
	}

	var pub, priv [32]byte
	copy(pub[:], accountKey.PublicKey)
	copy(priv[:], accountKey.PrivateKey)

	key, ok := box.OpenAnonymous(nil, sealed, &pub, &priv)
	if !ok {
		return nil, fmt.Errorf("%w: share key sealed box", ErrDecrypt)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: share key has %d bytes", ErrInvalidKey, len(key))
	}

	return key, nil
}

// GenerateAccountKey creates a fresh active X25519 key pair.
func GenerateAccountKey(keyID string) (models.AccountKey, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return models.AccountKey{}, fmt.Errorf("generate account key: %w", err)
	}

	return models.AccountKey{
		KeyID:      keyID,
		PublicKey:  pub[:],
		PrivateKey: priv[:],
		Active:     true,
	}, nil
}

// SealShareKey seals key to publicKey and returns it base64-encoded, the
// way the remote delivers share keys.
func SealShareKey(publicKey, key []byte) (string, error) {
	if len(publicKey) != 32 {
		return "", fmt.Errorf("%w: public key", ErrInvalidKey)
	}

	var pub [32]byte
	copy(pub[:], publicKey)

	sealed, err := box.SealAnonymous(nil, key, &pub, rand.Reader)
	if err != nil {
		return "", fmt.Errorf("seal share key: %w", err)
	}

	return base64.StdEncoding.EncodeToString(sealed), nil
}
