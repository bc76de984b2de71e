package service

import (
	"context"
	"crypto/rand"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/crypto"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/models"
	"github.com/stretchr/testify/require"
)

// vaultFixture bundles a real SQLite store with the key material the remote
// would hand out: one account key pair and one share key per rotation,
// shared by every test share.
type vaultFixture struct {
	t         *testing.T
	store     store.LocalStore
	account   models.AccountKey
	ring      crypto.KeyRing
	local     crypto.LocalCipher
	shareKeys map[int64][]byte
}

func newVaultFixture(t *testing.T) *vaultFixture {
	t.Helper()

	storages, err := store.NewClientStorages(context.Background(), config.ClientStorage{
		DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "vault.db")},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	account, err := crypto.GenerateAccountKey("user-key-1")
	require.NoError(t, err)
	ring, err := crypto.NewAccountKeyRing([]models.AccountKey{account})
	require.NoError(t, err)

	local, err := crypto.NewLocalKeyChain("correct horse battery staple", make([]byte, crypto.SaltSize))
	require.NoError(t, err)

	return &vaultFixture{
		t:         t,
		store:     storages.LocalStore,
		account:   account,
		ring:      ring,
		local:     local,
		shareKeys: make(map[int64][]byte),
	}
}

// shareKey returns the plaintext key of rotation, creating it on first use.
func (f *vaultFixture) shareKey(rotation int64) []byte {
	if key, ok := f.shareKeys[rotation]; ok {
		return key
	}
	key := make([]byte, crypto.KeySize)
	_, err := rand.Read(key)
	require.NoError(f.t, err)
	f.shareKeys[rotation] = key
	return key
}

// remoteKeys returns share keys as the remote serves them, sealed to the
// fixture account.
func (f *vaultFixture) remoteKeys(rotations ...int64) []models.ShareKey {
	keys := make([]models.ShareKey, 0, len(rotations))
	for _, r := range rotations {
		sealed, err := crypto.SealShareKey(f.account.PublicKey, f.shareKey(r))
		require.NoError(f.t, err)
		keys = append(keys, models.ShareKey{
			KeyRotation: r,
			Key:         sealed,
			UserKeyID:   f.account.KeyID,
			CreateTime:  r * 100,
		})
	}
	return keys
}

// storedKey returns a share key sealed under the local key, as persisted.
func (f *vaultFixture) storedKey(shareID string, rotation int64) models.StoredShareKey {
	sealed, err := f.local.Seal(f.shareKey(rotation))
	require.NoError(f.t, err)
	return models.StoredShareKey{
		ShareID:      shareID,
		KeyRotation:  rotation,
		UserKeyID:    f.account.KeyID,
		EncryptedKey: sealed,
		CreateTime:   rotation * 100,
	}
}

func (f *vaultFixture) item(shareID, itemID string, revision, rotation int64, plaintext string) models.Item {
	content, err := crypto.SealItemContent(f.shareKey(rotation), []byte(plaintext))
	require.NoError(f.t, err)
	return models.Item{
		ShareID:     shareID,
		ItemID:      itemID,
		Revision:    revision,
		KeyRotation: rotation,
		Content:     content,
		State:       models.ItemStateActive,
		CreateTime:  1,
		ModifyTime:  revision,
	}
}

// seedShare commits a synced share at eventID with the key of rotation 1
// and the given items, the way a finished full sync leaves it.
func (f *vaultFixture) seedShare(shareID, eventID string, items ...models.Item) {
	f.t.Helper()

	share := testShare(shareID, 1)
	require.NoError(f.t, f.store.ApplyBatch(context.Background(), models.StoreBatch{
		ShareID:      shareID,
		UpsertShare:  &share,
		ReplaceItems: true,
		UpsertItems:  items,
		UpsertKeys:   []models.StoredShareKey{f.storedKey(shareID, 1)},
		Cursor:       &models.SyncCursor{ShareID: shareID, LastEventID: eventID, KeyRotation: 1},
	}))
}

func (f *vaultFixture) cursor(shareID string) models.SyncCursor {
	f.t.Helper()

	c, err := f.store.GetCursor(context.Background(), shareID)
	require.NoError(f.t, err)
	return c
}

func ptr[T any](v T) *T { return &v }

func testShare(shareID string, rotation int64) models.Share {
	return models.Share{
		ShareID:            shareID,
		VaultID:            "vault-" + shareID,
		TargetType:         models.TargetTypeVault,
		Permission:         models.PermissionRead,
		Content:            ptr("share-envelope"),
		ContentKeyRotation: ptr(rotation),
		CreateTime:         1,
	}
}

func itemIDs(items []models.Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ItemID)
	}
	return ids
}
