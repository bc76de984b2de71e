package store

import (
	"context"

	"github.com/MKhiriev/go-pass-sync/models"
)

// ShareRepository reads share metadata.
type ShareRepository interface {
	GetShares(ctx context.Context) ([]models.Share, error)
	GetShare(ctx context.Context, shareID string) (models.Share, error)
}

// ItemRepository reads stored (still encrypted) items.
type ItemRepository interface {
	GetItem(ctx context.Context, shareID, itemID string) (models.Item, error)
	GetItems(ctx context.Context, shareID string) ([]models.Item, error)
}

// ShareKeyRepository persists share keys sealed under the local key.
type ShareKeyRepository interface {
	GetShareKey(ctx context.Context, shareID string, rotation int64) (models.StoredShareKey, error)
	GetShareKeys(ctx context.Context, shareID string) ([]models.StoredShareKey, error)
	SaveShareKeys(ctx context.Context, keys ...models.StoredShareKey) error
}

// CursorRepository reads sync cursors. Cursors are only written through
// [BatchWriter.ApplyBatch].
type CursorRepository interface {
	GetCursor(ctx context.Context, shareID string) (models.SyncCursor, error)
}

// BatchWriter is the single write path of the sync engine.
type BatchWriter interface {
	// ApplyBatch commits every mutation of batch in one transaction.
	// Item upserts never lower a stored revision and the cursor is only
	// moved from batch.ExpectedEventID; a mismatch returns
	// [ErrCursorConflict] and commits nothing.
	ApplyBatch(ctx context.Context, batch models.StoreBatch) error

	// RemoveShare deletes a share with its items, keys and cursor in one
	// transaction.
	RemoveShare(ctx context.Context, shareID string) error
}

// SettingsRepository stores opaque encrypted values by key.
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) ([]byte, error)
	SetSetting(ctx context.Context, key string, value []byte) error
}

// LocalStore is the local encrypted store of the client.
type LocalStore interface {
	ShareRepository
	ItemRepository
	ShareKeyRepository
	CursorRepository
	BatchWriter
	SettingsRepository
}
