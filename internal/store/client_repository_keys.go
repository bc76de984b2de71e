package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/models"
)

func (l *localStore) GetShareKey(ctx context.Context, shareID string, rotation int64) (models.StoredShareKey, error) {
	query, args, err := buildSelectShareKeyQuery(shareID, rotation)
	if err != nil {
		return models.StoredShareKey{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return queryOne(ctx, l.DB, query, args, scanShareKey, ErrShareKeyNotFound)
}

func (l *localStore) GetShareKeys(ctx context.Context, shareID string) ([]models.StoredShareKey, error) {
	query, args, err := buildSelectShareKeysQuery(shareID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return queryAll(ctx, l.DB, query, args, scanShareKey)
}

// SaveShareKeys upserts keys outside of a sync batch. Used when a key is
// fetched on the read path.
func (l *localStore) SaveShareKeys(ctx context.Context, keys ...models.StoredShareKey) error {
	if len(keys) == 0 {
		return nil
	}

	if err := upsertShareKeys(ctx, l.DB, keys); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.SaveShareKeys").
			Str("share_id", keys[0].ShareID).
			Int("count", len(keys)).
			Msg("failed to save share keys")
		return err
	}

	return nil
}

func upsertShareKeys(ctx context.Context, db DBTX, keys []models.StoredShareKey) error {
	query, args, err := buildUpsertShareKeysQuery(keys)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: upsert share keys: %w", ErrExecutingStatement, err)
	}

	return nil
}
