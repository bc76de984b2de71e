package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/models"
)

type eventApplier struct {
	batches store.BatchWriter
	keys    KeyManager
	now     func() time.Time
	logger  *logger.Logger
}

// NewEventApplier creates an [EventApplier] that writes through batches and
// resolves missing share keys through keys.
func NewEventApplier(batches store.BatchWriter, keys KeyManager, logger *logger.Logger) EventApplier {
	return &eventApplier{
		batches: batches,
		keys:    keys,
		now:     time.Now,
		logger:  logger,
	}
}

// Apply implements [EventApplier].
//
// The page is committed even when share keys cannot be fetched: items are
// stored as ciphertext with their rotation and opened on read.
func (a *eventApplier) Apply(ctx context.Context, cursor models.SyncCursor, events models.SyncEvents, snapshot []models.Item) (models.SyncCursor, error) {
	shareID := cursor.ShareID

	batch := models.StoreBatch{
		ShareID:         shareID,
		ExpectedEventID: cursor.LastEventID,
		LastUseItems:    events.LastUseItems,
	}

	if events.UpdatedShare != nil {
		if events.UpdatedShare.ShareID != shareID {
			return cursor, fmt.Errorf("%w: page updates %s, cursor belongs to %s", ErrShareMismatch, events.UpdatedShare.ShareID, shareID)
		}
		share := *events.UpdatedShare
		batch.UpsertShare = &share
	}

	if events.FullRefresh {
		// the snapshot is authoritative, deletes of this page are already in it
		batch.ReplaceItems = true
		batch.UpsertItems = latestRevisions(shareID, append(slices.Clone(snapshot), events.UpdatedItems...))
	} else {
		batch.UpsertItems = latestRevisions(shareID, events.UpdatedItems)
		batch.DeleteItemIDs = events.DeletedItemIDs
	}

	rotation := cursor.KeyRotation
	if events.NewKeyRotation != nil {
		rotation = max(rotation, *events.NewKeyRotation)
	}

	keys := a.collectKeys(ctx, shareID, events.NewKeyRotation, batch.UpsertItems)
	batch.UpsertKeys = keys.Stored

	next := models.SyncCursor{
		ShareID:     shareID,
		LastEventID: events.LatestEventID,
		KeyRotation: rotation,
		UpdateTime:  a.now().Unix(),
	}
	batch.Cursor = &next

	if err := a.batches.ApplyBatch(ctx, batch); err != nil {
		return cursor, fmt.Errorf("apply events page: %w", err)
	}
	a.keys.Remember(keys.Decrypted...)

	return next, nil
}

// collectKeys fetches the share keys when the page rotates the share key or
// references a rotation that is not available locally. A failed fetch yields
// an empty set.
func (a *eventApplier) collectKeys(ctx context.Context, shareID string, newRotation *int64, items []models.Item) KeySet {
	var rotations []int64
	if newRotation != nil {
		rotations = append(rotations, *newRotation)
	}
	for _, item := range items {
		if !slices.Contains(rotations, item.KeyRotation) {
			rotations = append(rotations, item.KeyRotation)
		}
	}

	missing := slices.DeleteFunc(rotations, func(r int64) bool {
		return a.keys.HasLocalKey(ctx, shareID, r)
	})
	if len(missing) == 0 {
		return KeySet{}
	}

	log := a.logger.ForContext(ctx)

	set, err := a.keys.FetchKeys(ctx, shareID)
	if err != nil {
		log.Warn().Err(err).
			Str("func", "eventApplier.collectKeys").
			Str("share_id", shareID).
			Ints64("key_rotations", missing).
			Msg("share keys unavailable, items stay encrypted until read")
		return KeySet{}
	}

	for _, r := range missing {
		if _, ok := set.Find(r); !ok {
			log.Warn().
				Str("func", "eventApplier.collectKeys").
				Str("share_id", shareID).
				Int64("key_rotation", r).
				Msg("remote has no usable key for rotation")
		}
	}

	return set
}

// latestRevisions stamps items with shareID and keeps the highest revision of
// every item id, in first-seen order.
func latestRevisions(shareID string, items []models.Item) []models.Item {
	if len(items) == 0 {
		return nil
	}

	index := make(map[string]int, len(items))
	out := make([]models.Item, 0, len(items))
	for _, item := range items {
		item.ShareID = shareID
		if i, ok := index[item.ItemID]; ok {
			if item.Revision >= out[i].Revision {
				out[i] = item
			}
			continue
		}
		index[item.ItemID] = len(out)
		out = append(out, item)
	}

	return out
}
