// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/models"
)

// ApplyBatch implements [BatchWriter].
//
// Statements run in this order inside one transaction: cursor check, share
// upsert, item wipe (ReplaceItems), key upserts, item upserts, item deletes,
// last-use updates, cursor upsert. Readers on other connections observe the
// state either before or after the whole batch.
//
// A batch that has started is not cancelled together with ctx; only ctx's
// values are used.
func (l *localStore) ApplyBatch(ctx context.Context, batch models.StoreBatch) error {
	if batch.IsEmpty() {
		return nil
	}

	ctx = context.WithoutCancel(ctx)
	log := logger.FromContext(ctx)

	err := l.DB.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		if batch.Cursor != nil {
			if err := checkCursor(ctx, tx, batch.ShareID, batch.ExpectedEventID); err != nil {
				return err
			}
		}

		if batch.UpsertShare != nil {
			if err := execBuilt(ctx, tx, "upsert share", func() (string, []any, error) {
				return buildUpsertShareQuery(*batch.UpsertShare)
			}); err != nil {
				return err
			}
		}

		if batch.ReplaceItems {
			if err := execBuilt(ctx, tx, "wipe items", func() (string, []any, error) {
				return buildDeleteAllItemsQuery(batch.ShareID)
			}); err != nil {
				return err
			}
		}

		if len(batch.UpsertKeys) > 0 {
			if err := upsertShareKeys(ctx, tx, batch.UpsertKeys); err != nil {
				return err
			}
		}

		for start := 0; start < len(batch.UpsertItems); start += itemsInsertChunk {
			chunk := batch.UpsertItems[start:min(start+itemsInsertChunk, len(batch.UpsertItems))]
			if err := execBuilt(ctx, tx, "upsert items", func() (string, []any, error) {
				return buildUpsertItemsQuery(batch.ShareID, chunk)
			}); err != nil {
				return err
			}
		}

		if len(batch.DeleteItemIDs) > 0 {
			if err := execBuilt(ctx, tx, "delete items", func() (string, []any, error) {
				return buildDeleteItemsQuery(batch.ShareID, batch.DeleteItemIDs)
			}); err != nil {
				return err
			}
		}

		for _, u := range batch.LastUseItems {
			if err := execBuilt(ctx, tx, "touch item", func() (string, []any, error) {
				return buildTouchItemQuery(batch.ShareID, u)
			}); err != nil {
				return err
			}
		}

		if batch.Cursor != nil {
			cursor := *batch.Cursor
			cursor.ShareID = batch.ShareID
			if err := execBuilt(ctx, tx, "upsert cursor", func() (string, []any, error) {
				return buildUpsertCursorQuery(cursor)
			}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrCursorConflict) {
			log.Err(err).
				Str("func", "localStore.ApplyBatch").
				Str("share_id", batch.ShareID).
				Int("items", len(batch.UpsertItems)).
				Int("deletes", len(batch.DeleteItemIDs)).
				Msg("failed to apply store batch")
		}
		return fmt.Errorf("apply batch (share_id=%s): %w", batch.ShareID, err)
	}

	log.Debug().
		Str("func", "localStore.ApplyBatch").
		Str("share_id", batch.ShareID).
		Int("items", len(batch.UpsertItems)).
		Int("deletes", len(batch.DeleteItemIDs)).
		Bool("replace", batch.ReplaceItems).
		Msg("store batch committed")

	return nil
}

// RemoveShare implements [BatchWriter].
func (l *localStore) RemoveShare(ctx context.Context, shareID string) error {
	err := l.DB.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		for _, stmt := range buildRemoveShareQueries(shareID) {
			if err := execBuilt(ctx, tx, "remove share", stmt.ToSql); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.RemoveShare").
			Str("share_id", shareID).
			Msg("failed to remove share")
		return fmt.Errorf("remove share (share_id=%s): %w", shareID, err)
	}

	return nil
}

func checkCursor(ctx context.Context, tx DBTX, shareID, expected string) error {
	query, args, err := buildSelectCursorQuery(shareID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	stored, err := queryOne(ctx, tx, query, args, scanCursor, ErrCursorNotFound)
	switch {
	case errors.Is(err, ErrCursorNotFound):
		if expected != "" {
			return fmt.Errorf("%w: expected %q, share has no cursor", ErrCursorConflict, expected)
		}
		return nil
	case err != nil:
		return err
	case stored.LastEventID != expected:
		return fmt.Errorf("%w: expected %q, stored %q", ErrCursorConflict, expected, stored.LastEventID)
	}

	return nil
}

func execBuilt(ctx context.Context, tx DBTX, what string, build func() (string, []any, error)) error {
	query, args, err := build()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBuildingSQLQuery, what, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExecutingStatement, what, err)
	}

	return nil
}
