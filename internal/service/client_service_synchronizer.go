package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/models"
	"golang.org/x/sync/errgroup"
)

type synchronizer struct {
	store       store.LocalStore
	remote      adapter.RemoteAdapter
	shares      ShareSyncer
	keys        KeyManager
	concurrency int
	logger      *logger.Logger
}

// NewSynchronizer creates a [Synchronizer] syncing at most concurrency shares
// at a time.
func NewSynchronizer(localStore store.LocalStore, remote adapter.RemoteAdapter, shares ShareSyncer, keys KeyManager, concurrency int, logger *logger.Logger) Synchronizer {
	return &synchronizer{
		store:       localStore,
		remote:      remote,
		shares:      shares,
		keys:        keys,
		concurrency: max(concurrency, 1),
		logger:      logger,
	}
}

// Sync implements [Synchronizer].
//
// Shares that exist locally but are missing from the remote list are left
// untouched; they are only dropped through RemoveShare.
func (s *synchronizer) Sync(ctx context.Context) (models.SyncResult, error) {
	log := s.logger.ForContext(ctx)

	remoteShares, err := s.remote.GetShares(ctx)
	if err != nil {
		log.Err(err).Str("func", "synchronizer.Sync").Msg("failed to list remote shares")
		return models.SyncResult{}, fmt.Errorf("fetch remote shares: %w", err)
	}

	localShares, err := s.store.GetShares(ctx)
	if err != nil {
		log.Err(err).Str("func", "synchronizer.Sync").Msg("failed to list local shares")
		return models.SyncResult{}, fmt.Errorf("read local shares: %w", err)
	}

	known := make(map[string]struct{}, len(localShares))
	for _, share := range localShares {
		known[share.ShareID] = struct{}{}
	}

	var (
		mu           sync.Mutex
		hasNewEvents bool
		synced       int
		failed       = make(map[string]error)
	)

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, share := range remoteShares {
		if ctx.Err() != nil {
			break
		}

		_, isKnown := known[share.ShareID]
		g.Go(func() error {
			changed, err := s.syncShare(ctx, share, isKnown)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				failed[share.ShareID] = err
				log.Err(err).
					Str("func", "synchronizer.Sync").
					Str("share_id", share.ShareID).
					Bool("full_sync", !isKnown).
					Msg("share sync failed")
				return nil
			}
			synced++
			hasNewEvents = hasNewEvents || changed
			return nil
		})
	}
	_ = g.Wait()

	result := models.SyncResult{
		HasNewEvents: hasNewEvents,
		SyncedShares: synced,
		FailedShares: failed,
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("sync pass interrupted: %w", err)
	}

	if len(remoteShares) > 0 && len(failed) == len(remoteShares) {
		ids := make([]string, 0, len(failed))
		for id := range failed {
			ids = append(ids, id)
		}
		slices.Sort(ids)

		errs := []error{ErrAllSharesFailed}
		for _, id := range ids {
			errs = append(errs, fmt.Errorf("share %s: %w", id, failed[id]))
		}
		return result, errors.Join(errs...)
	}

	return result, nil
}

func (s *synchronizer) syncShare(ctx context.Context, share models.Share, known bool) (bool, error) {
	if !known {
		if err := s.shares.FullSync(ctx, share); err != nil {
			return false, err
		}
		return true, nil
	}
	return s.shares.IncrementalSync(ctx, share)
}

// RemoveShare implements [Synchronizer].
func (s *synchronizer) RemoveShare(ctx context.Context, shareID string) error {
	if err := s.store.RemoveShare(ctx, shareID); err != nil {
		return err
	}
	s.keys.Evict(shareID)

	s.logger.ForContext(ctx).Info().
		Str("func", "synchronizer.RemoveShare").
		Str("share_id", shareID).
		Msg("share removed locally")

	return nil
}
