// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the size of the salt the local key is derived with.
const SaltSize = 16

// localKeyChain is the private implementation of [LocalCipher].
type localKeyChain struct {
	key []byte
}

// Argon2id parameters recommended by OWASP (2024).
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // 64 MiB
	argonThreads = 4
)

// NewLocalKeyChain derives the local at-rest key from passphrase and salt
// with Argon2id and returns a [LocalCipher] bound to it. The same passphrase
// and salt always yield the same key, so data sealed in one process run can
// be opened in the next.
func NewLocalKeyChain(passphrase string, salt []byte) (LocalCipher, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("%w: empty passphrase", ErrInvalidKey)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes", ErrInvalidKey, SaltSize)
	}

	key := argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, KeySize)
	return &localKeyChain{key: key}, nil
}

// Seal implements [LocalCipher].
func (k *localKeyChain) Seal(plaintext []byte) ([]byte, error) {
	return sealGCM(k.key, plaintext)
}

// Open implements [LocalCipher].
func (k *localKeyChain) Open(blob []byte) ([]byte, error) {
	return openGCM(k.key, blob)
}

// LoadOrCreateSalt reads the local key salt from path. When the file does not
// exist a fresh random salt is generated and written with 0600 permissions.
// The salt is not secret; losing it makes every locally sealed value
// unreadable, which the store recovers from by resyncing.
func LoadOrCreateSalt(path string) ([]byte, error) {
	salt, err := os.ReadFile(path)
	if err == nil {
		if len(salt) != SaltSize {
			return nil, fmt.Errorf("%w: salt file %s has %d bytes", ErrInvalidKey, path, len(salt))
		}
		return salt, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read salt file: %w", err)
	}

	salt = make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	if err := os.WriteFile(path, salt, 0o600); err != nil {
		return nil, fmt.Errorf("write salt file: %w", err)
	}

	return salt, nil
}
