package service

import (
	"context"

	"github.com/MKhiriev/go-pass-sync/models"
)

//go:generate mockgen -destination=../mock/service_mock.go -package=mock github.com/MKhiriev/go-pass-sync/internal/service StatusSink,Synchronizer

// KeyManager resolves plaintext share keys by (share, rotation). Keys are
// served from an in-memory cache first, then from the local store (sealed
// under the local key) and finally from the remote, where they arrive sealed
// to one of the account keys.
type KeyManager interface {
	// ShareKey returns the key of the given rotation. On a full miss every key
	// of the share is refetched, persisted and cached.
	// Returns ErrShareKeyNotFound when the remote has no such rotation and
	// ErrInactiveUserKey when the rotation is sealed to an inactive or unknown
	// account key.
	ShareKey(ctx context.Context, shareID string, rotation int64) (models.DecryptedShareKey, error)

	// LatestShareKey returns the key with the highest rotation known for the
	// share, refreshing from the remote when nothing is known locally.
	LatestShareKey(ctx context.Context, shareID string) (models.DecryptedShareKey, error)

	// HasLocalKey reports whether the rotation can be served without the
	// remote, warming the cache from the local store when needed.
	HasLocalKey(ctx context.Context, shareID string, rotation int64) bool

	// FetchKeys fetches and opens every remote key of the share without
	// persisting or caching anything. The sync engine commits the returned
	// keys inside its own batch and calls Remember afterwards.
	FetchKeys(ctx context.Context, shareID string) (KeySet, error)

	// RefreshKeys refetches every remote key of the share, persists them and
	// replaces the cached entries.
	RefreshKeys(ctx context.Context, shareID string) error

	// Remember caches already persisted plaintext keys.
	Remember(keys ...models.DecryptedShareKey)

	// Evict removes every cached key of the share.
	Evict(shareID string)
}

// EventApplier turns one page of share events into a single atomic store
// batch.
type EventApplier interface {
	// Apply commits events on top of cursor. snapshot carries the fresh item
	// set of the share when events.FullRefresh is set and is ignored
	// otherwise. Returns the cursor that was committed.
	Apply(ctx context.Context, cursor models.SyncCursor, events models.SyncEvents, snapshot []models.Item) (models.SyncCursor, error)
}

// ShareSyncer brings one share up to date with the remote.
type ShareSyncer interface {
	// FullSync downloads a share that is unknown locally and commits the
	// share, its keys, its items and its cursor at once.
	FullSync(ctx context.Context, share models.Share) error

	// IncrementalSync drains the event stream of a known share from the
	// stored cursor. It reports whether any page carried changes.
	IncrementalSync(ctx context.Context, share models.Share) (hasNewEvents bool, err error)
}

// Synchronizer runs one sync pass over every share of the account.
type Synchronizer interface {
	// Sync compares the remote share list with the local one and syncs each
	// share. A failure to list remote shares fails the pass; per-share
	// failures are returned in SyncResult.FailedShares and only fail the pass
	// when every share failed.
	Sync(ctx context.Context) (models.SyncResult, error)

	// RemoveShare deletes a share together with its items, keys and cursor
	// and evicts its cached keys.
	RemoveShare(ctx context.Context, shareID string) error
}

// ItemReader serves decrypted items from the local store.
type ItemReader interface {
	// GetItem returns one decrypted item. The error wraps ErrKeyUnavailable
	// when the item's share key cannot be obtained.
	GetItem(ctx context.Context, shareID, itemID string) (models.DecryptedItem, error)

	// ListItems returns every item of the share. Items whose key is
	// unavailable are returned without plaintext and with Err wrapping
	// ErrKeyUnavailable.
	ListItems(ctx context.Context, shareID string) ([]models.DecryptedItem, error)
}

// StatusSink receives sync status notifications from the scheduler.
// Implementations must not block for long: they are called from the sync
// loop goroutine.
type StatusSink interface {
	OnSyncStarted()
	OnSyncSkipped(reason models.SkipReason)
	OnSyncFinished(hasNewEvents bool)
	OnSyncFailed(err error)
	OnShareSyncFailed(shareID string, err error)
	OnAdditionalTaskFailed(label string, err error)
}
