// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/crypto"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/models"
	"golang.org/x/sync/singleflight"
)

// KeySet is the result of one remote key fetch of a share.
type KeySet struct {
	ShareID string
	// Stored holds the opened keys re-sealed under the local key, ready to
	// be persisted. Stored[i] and Decrypted[i] describe the same rotation.
	Stored    []models.StoredShareKey
	Decrypted []models.DecryptedShareKey
	// Failed maps rotations that could not be opened to the reason.
	Failed map[int64]error
}

// Find returns the opened key of rotation.
func (s KeySet) Find(rotation int64) (models.DecryptedShareKey, bool) {
	for _, k := range s.Decrypted {
		if k.KeyRotation == rotation {
			return k, true
		}
	}
	return models.DecryptedShareKey{}, false
}

// Latest returns the opened key with the highest rotation.
func (s KeySet) Latest() (models.DecryptedShareKey, bool) {
	if len(s.Decrypted) == 0 {
		return models.DecryptedShareKey{}, false
	}
	return s.Decrypted[len(s.Decrypted)-1], true
}

type keyManager struct {
	keys   store.ShareKeyRepository
	remote adapter.RemoteAdapter
	ring   crypto.KeyRing
	local  crypto.LocalCipher

	mu    sync.RWMutex
	cache map[models.ShareKeyCacheKey]models.DecryptedShareKey

	// concurrent fetches of the same share share one remote round trip
	fetches singleflight.Group

	logger *logger.Logger
}

// NewKeyManager creates a [KeyManager] backed by keys for persistence,
// remote for fetching, ring for opening remote keys and local for sealing
// keys at rest.
func NewKeyManager(keys store.ShareKeyRepository, remote adapter.RemoteAdapter, ring crypto.KeyRing, local crypto.LocalCipher, logger *logger.Logger) KeyManager {
	return &keyManager{
		keys:   keys,
		remote: remote,
		ring:   ring,
		local:  local,
		cache:  make(map[models.ShareKeyCacheKey]models.DecryptedShareKey),
		logger: logger,
	}
}

func (k *keyManager) ShareKey(ctx context.Context, shareID string, rotation int64) (models.DecryptedShareKey, error) {
	if key, ok := k.cached(shareID, rotation); ok {
		return key, nil
	}

	key, err := k.loadLocal(ctx, shareID, rotation)
	if err == nil {
		k.Remember(key)
		return key, nil
	}
	if !errors.Is(err, store.ErrShareKeyNotFound) {
		k.logger.ForContext(ctx).Warn().Err(err).
			Str("func", "keyManager.ShareKey").
			Str("share_id", shareID).
			Int64("key_rotation", rotation).
			Msg("stored share key is unusable, refetching")
	}

	set, err := k.refresh(ctx, shareID)
	if err != nil {
		return models.DecryptedShareKey{}, err
	}

	if key, ok := set.Find(rotation); ok {
		return key, nil
	}
	if reason, ok := set.Failed[rotation]; ok {
		return models.DecryptedShareKey{}, reason
	}
	return models.DecryptedShareKey{}, fmt.Errorf("%w: share %s rotation %d", ErrShareKeyNotFound, shareID, rotation)
}

func (k *keyManager) LatestShareKey(ctx context.Context, shareID string) (models.DecryptedShareKey, error) {
	stored, err := k.keys.GetShareKeys(ctx, shareID)
	if err != nil {
		return models.DecryptedShareKey{}, fmt.Errorf("read stored share keys: %w", err)
	}
	if len(stored) > 0 {
		return k.ShareKey(ctx, shareID, stored[len(stored)-1].KeyRotation)
	}

	set, err := k.refresh(ctx, shareID)
	if err != nil {
		return models.DecryptedShareKey{}, err
	}
	if key, ok := set.Latest(); ok {
		return key, nil
	}
	return models.DecryptedShareKey{}, fmt.Errorf("%w: share %s has no keys", ErrShareKeyNotFound, shareID)
}

func (k *keyManager) HasLocalKey(ctx context.Context, shareID string, rotation int64) bool {
	if _, ok := k.cached(shareID, rotation); ok {
		return true
	}

	key, err := k.loadLocal(ctx, shareID, rotation)
	if err != nil {
		return false
	}
	k.Remember(key)
	return true
}

func (k *keyManager) FetchKeys(ctx context.Context, shareID string) (KeySet, error) {
	v, err, _ := k.fetches.Do(shareID, func() (any, error) {
		return k.fetch(ctx, shareID)
	})
	if err != nil {
		return KeySet{}, err
	}
	return v.(KeySet), nil
}

func (k *keyManager) RefreshKeys(ctx context.Context, shareID string) error {
	_, err := k.refresh(ctx, shareID)
	return err
}

func (k *keyManager) Remember(keys ...models.DecryptedShareKey) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for _, key := range keys {
		k.cache[models.ShareKeyCacheKey{ShareID: key.ShareID, KeyRotation: key.KeyRotation}] = key
	}
}

func (k *keyManager) Evict(shareID string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for ck := range k.cache {
		if ck.ShareID == shareID {
			delete(k.cache, ck)
		}
	}
}

func (k *keyManager) cached(shareID string, rotation int64) (models.DecryptedShareKey, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	key, ok := k.cache[models.ShareKeyCacheKey{ShareID: shareID, KeyRotation: rotation}]
	return key, ok
}

func (k *keyManager) loadLocal(ctx context.Context, shareID string, rotation int64) (models.DecryptedShareKey, error) {
	stored, err := k.keys.GetShareKey(ctx, shareID, rotation)
	if err != nil {
		return models.DecryptedShareKey{}, err
	}

	plain, err := k.local.Open(stored.EncryptedKey)
	if err != nil {
		return models.DecryptedShareKey{}, fmt.Errorf("open stored share key: %w", err)
	}

	return models.DecryptedShareKey{ShareID: shareID, KeyRotation: rotation, KeyData: plain}, nil
}

// refresh fetches, persists and caches every remote key of the share.
func (k *keyManager) refresh(ctx context.Context, shareID string) (KeySet, error) {
	set, err := k.FetchKeys(ctx, shareID)
	if err != nil {
		return KeySet{}, err
	}

	if len(set.Stored) > 0 {
		if err := k.keys.SaveShareKeys(ctx, set.Stored...); err != nil {
			return KeySet{}, fmt.Errorf("persist share keys: %w", err)
		}
	}
	k.Remember(set.Decrypted...)

	return set, nil
}

func (k *keyManager) fetch(ctx context.Context, shareID string) (KeySet, error) {
	log := k.logger.ForContext(ctx)

	remoteKeys, err := k.remote.GetShareKeys(ctx, shareID)
	if err != nil {
		return KeySet{}, fmt.Errorf("fetch share keys: %w", err)
	}

	slices.SortFunc(remoteKeys, func(a, b models.ShareKey) int {
		return cmp.Compare(a.KeyRotation, b.KeyRotation)
	})

	set := KeySet{ShareID: shareID, Failed: make(map[int64]error)}
	var lastErr error
	for _, rk := range remoteKeys {
		plain, err := k.ring.OpenShareKey(rk.UserKeyID, rk.Key)
		if err != nil {
			lastErr = mapKeyError(err)
			set.Failed[rk.KeyRotation] = lastErr
			log.Warn().Err(err).
				Str("func", "keyManager.fetch").
				Str("share_id", shareID).
				Int64("key_rotation", rk.KeyRotation).
				Str("user_key_id", rk.UserKeyID).
				Msg("cannot open share key")
			continue
		}

		sealed, err := k.local.Seal(plain)
		if err != nil {
			return KeySet{}, fmt.Errorf("seal share key: %w", err)
		}

		set.Stored = append(set.Stored, models.StoredShareKey{
			ShareID:      shareID,
			KeyRotation:  rk.KeyRotation,
			UserKeyID:    rk.UserKeyID,
			EncryptedKey: sealed,
			CreateTime:   rk.CreateTime,
		})
		set.Decrypted = append(set.Decrypted, models.DecryptedShareKey{
			ShareID:     shareID,
			KeyRotation: rk.KeyRotation,
			KeyData:     plain,
		})
	}

	if len(set.Decrypted) == 0 && lastErr != nil {
		return KeySet{}, lastErr
	}

	return set, nil
}
