// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/models"
)

type shareSyncer struct {
	store    store.LocalStore
	remote   adapter.RemoteAdapter
	keys     KeyManager
	applier  EventApplier
	maxPages int
	now      func() time.Time
	logger   *logger.Logger
}

// NewShareSyncer creates a [ShareSyncer]. maxPages bounds the number of event
// pages drained per share in one call of IncrementalSync; the remaining
// events are picked up by the next pass from the committed cursor.
func NewShareSyncer(localStore store.LocalStore, remote adapter.RemoteAdapter, keys KeyManager, applier EventApplier, maxPages int, logger *logger.Logger) ShareSyncer {
	return &shareSyncer{
		store:    localStore,
		remote:   remote,
		keys:     keys,
		applier:  applier,
		maxPages: max(maxPages, 1),
		now:      time.Now,
		logger:   logger,
	}
}

// FullSync implements [ShareSyncer].
//
// The last event id is read before the items so that events racing with the
// download are replayed by the next incremental sync. Nothing is written
// until every fetch has succeeded.
func (s *shareSyncer) FullSync(ctx context.Context, share models.Share) error {
	shareID := share.ShareID
	log := s.logger.ForContext(ctx)

	lastEventID, err := s.remote.GetLastEventID(ctx, shareID)
	if err != nil {
		return fmt.Errorf("fetch last event id: %w", err)
	}
	if lastEventID == "" {
		return fmt.Errorf("%w: empty last event id", adapter.ErrInvalidResponse)
	}

	keys, err := s.keys.FetchKeys(ctx, shareID)
	if err != nil {
		return err
	}
	if share.ContentKeyRotation != nil {
		rotation := *share.ContentKeyRotation
		if _, ok := keys.Find(rotation); !ok {
			if reason, failed := keys.Failed[rotation]; failed {
				return reason
			}
			return fmt.Errorf("%w: share %s rotation %d", ErrShareKeyNotFound, shareID, rotation)
		}
	}

	items, err := s.remote.GetItems(ctx, shareID)
	if err != nil {
		return fmt.Errorf("fetch items: %w", err)
	}

	rotation := share.KeyRotation()
	if latest, ok := keys.Latest(); ok {
		rotation = max(rotation, latest.KeyRotation)
	}

	batch := models.StoreBatch{
		ShareID:      shareID,
		UpsertShare:  &share,
		ReplaceItems: true,
		UpsertItems:  latestRevisions(shareID, items),
		UpsertKeys:   keys.Stored,
		Cursor: &models.SyncCursor{
			ShareID:     shareID,
			LastEventID: lastEventID,
			KeyRotation: rotation,
			UpdateTime:  s.now().Unix(),
		},
	}
	if err := s.store.ApplyBatch(ctx, batch); err != nil {
		return fmt.Errorf("commit full sync: %w", err)
	}
	s.keys.Remember(keys.Decrypted...)

	log.Info().
		Str("func", "shareSyncer.FullSync").
		Str("share_id", shareID).
		Int("items", len(batch.UpsertItems)).
		Int("keys", len(batch.UpsertKeys)).
		Str("last_event_id", lastEventID).
		Msg("share downloaded")

	return nil
}

// IncrementalSync implements [ShareSyncer].
func (s *shareSyncer) IncrementalSync(ctx context.Context, share models.Share) (bool, error) {
	shareID := share.ShareID
	log := s.logger.ForContext(ctx)

	cursor, err := s.store.GetCursor(ctx, shareID)
	if errors.Is(err, store.ErrCursorNotFound) {
		log.Warn().
			Str("func", "shareSyncer.IncrementalSync").
			Str("share_id", shareID).
			Msg("share has no cursor, downloading it again")
		err = s.FullSync(ctx, share)
		return err == nil, err
	}
	if err != nil {
		return false, fmt.Errorf("read cursor: %w", err)
	}

	// the share list is older than any UpdatedShare the drain may apply
	if err = s.store.ApplyBatch(ctx, models.StoreBatch{ShareID: shareID, UpsertShare: &share}); err != nil {
		return false, fmt.Errorf("refresh share metadata: %w", err)
	}

	hasNewEvents := false
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return hasNewEvents, err
		}

		events, err := s.remote.GetEvents(ctx, shareID, cursor.LastEventID)
		if err != nil {
			return hasNewEvents, fmt.Errorf("fetch events: %w", err)
		}

		if events.LatestEventID == "" {
			log.Warn().
				Str("func", "shareSyncer.IncrementalSync").
				Str("share_id", shareID).
				Msg("events page without event id, stopping drain")
			return hasNewEvents, nil
		}

		stalled := events.LatestEventID == cursor.LastEventID
		if stalled && !events.HasChanges() {
			if events.EventsPending {
				log.Warn().
					Str("func", "shareSyncer.IncrementalSync").
					Str("share_id", shareID).
					Str("event_id", cursor.LastEventID).
					Msg("remote reports pending events without advancing, stopping drain")
			}
			return hasNewEvents, nil
		}

		var snapshot []models.Item
		if events.FullRefresh {
			snapshot, err = s.remote.GetItems(ctx, shareID)
			if err != nil {
				return hasNewEvents, fmt.Errorf("fetch items for full refresh: %w", err)
			}
		}

		cursor, err = s.applier.Apply(ctx, cursor, events, snapshot)
		if err != nil {
			return hasNewEvents, err
		}
		hasNewEvents = hasNewEvents || events.HasChanges()

		if !events.EventsPending {
			return hasNewEvents, nil
		}
		if stalled {
			log.Warn().
				Str("func", "shareSyncer.IncrementalSync").
				Str("share_id", shareID).
				Str("event_id", cursor.LastEventID).
				Msg("remote reports pending events without advancing, stopping drain")
			return hasNewEvents, nil
		}
		if page >= s.maxPages {
			log.Info().
				Str("func", "shareSyncer.IncrementalSync").
				Str("share_id", shareID).
				Int("pages", page).
				Msg("event page bound reached, resuming next pass")
			return hasNewEvents, nil
		}
	}
}
