package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Sealer encrypts values before they reach the settings table.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(blob []byte) ([]byte, error)
}

// SecureSetting is a typed value persisted in the settings table as JSON
// sealed under the local key.
//
//	session := store.NewSecureSetting[models.Session](st, cipher, "session")
//	s, err := session.Get(ctx)
type SecureSetting[T any] struct {
	repo   SettingsRepository
	sealer Sealer
	key    string
}

func NewSecureSetting[T any](repo SettingsRepository, sealer Sealer, key string) *SecureSetting[T] {
	return &SecureSetting[T]{repo: repo, sealer: sealer, key: key}
}

// Get returns the stored value, or [ErrSettingNotFound] when it was never set.
func (s *SecureSetting[T]) Get(ctx context.Context) (T, error) {
	var value T

	blob, err := s.repo.GetSetting(ctx, s.key)
	if err != nil {
		return value, err
	}

	plaintext, err := s.sealer.Open(blob)
	if err != nil {
		return value, fmt.Errorf("open setting %q: %w", s.key, err)
	}

	if err = json.Unmarshal(plaintext, &value); err != nil {
		return value, fmt.Errorf("decode setting %q: %w", s.key, err)
	}

	return value, nil
}

// Set seals and stores value, replacing the previous one.
func (s *SecureSetting[T]) Set(ctx context.Context, value T) error {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %q: %w", s.key, err)
	}

	blob, err := s.sealer.Seal(plaintext)
	if err != nil {
		return fmt.Errorf("seal setting %q: %w", s.key, err)
	}

	return s.repo.SetSetting(ctx, s.key, blob)
}
