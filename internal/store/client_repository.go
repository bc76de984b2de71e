package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/models"
)

type localStore struct {
	*DB
	logger *logger.Logger
}

// NewLocalStore returns the SQLite implementation of [LocalStore].
func NewLocalStore(db *DB, logger *logger.Logger) LocalStore {
	return &localStore{
		DB:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShare(row rowScanner) (models.Share, error) {
	var s models.Share
	err := row.Scan(
		&s.ShareID,
		&s.VaultID,
		&s.AddressID,
		&s.TargetType,
		&s.TargetID,
		&s.Permission,
		&s.Owner,
		&s.Content,
		&s.ContentKeyRotation,
		&s.CreateTime,
		&s.ExpireTime,
	)
	return s, err
}

func scanItem(row rowScanner) (models.Item, error) {
	var it models.Item
	err := row.Scan(
		&it.ShareID,
		&it.ItemID,
		&it.Revision,
		&it.KeyRotation,
		&it.Content,
		&it.ItemKey,
		&it.State,
		&it.Pinned,
		&it.CreateTime,
		&it.ModifyTime,
		&it.LastUseTime,
	)
	return it, err
}

func scanShareKey(row rowScanner) (models.StoredShareKey, error) {
	var k models.StoredShareKey
	err := row.Scan(&k.ShareID, &k.KeyRotation, &k.UserKeyID, &k.EncryptedKey, &k.CreateTime)
	return k, err
}

func scanCursor(row rowScanner) (models.SyncCursor, error) {
	var c models.SyncCursor
	err := row.Scan(&c.ShareID, &c.LastEventID, &c.KeyRotation, &c.UpdateTime)
	return c, err
}

// queryAll runs a SELECT and scans every row with scan.
func queryAll[T any](ctx context.Context, db DBTX, query string, args []any, scan func(rowScanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		v, scanErr := scan(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		result = append(result, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

// queryOne runs a single-row SELECT; sql.ErrNoRows is reported as notFound.
func queryOne[T any](ctx context.Context, db DBTX, query string, args []any, scan func(rowScanner) (T, error), notFound error) (T, error) {
	v, err := scan(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return v, notFound
	}
	if err != nil {
		return v, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return v, nil
}

func (l *localStore) GetShares(ctx context.Context) ([]models.Share, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectSharesQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	shares, err := queryAll(ctx, l.DB, query, args, scanShare)
	if err != nil {
		log.Err(err).
			Str("func", "localStore.GetShares").
			Msg("failed to get local shares")
		return nil, err
	}

	return shares, nil
}

func (l *localStore) GetShare(ctx context.Context, shareID string) (models.Share, error) {
	query, args, err := buildSelectShareQuery(shareID)
	if err != nil {
		return models.Share{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	share, err := queryOne(ctx, l.DB, query, args, scanShare, ErrShareNotFound)
	if err != nil && !errors.Is(err, ErrShareNotFound) {
		logger.FromContext(ctx).Err(err).
			Str("func", "localStore.GetShare").
			Str("share_id", shareID).
			Msg("failed to get local share")
	}

	return share, err
}

func (l *localStore) GetItem(ctx context.Context, shareID, itemID string) (models.Item, error) {
	query, args, err := buildSelectItemQuery(shareID, itemID)
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return queryOne(ctx, l.DB, query, args, scanItem, ErrItemNotFound)
}

func (l *localStore) GetItems(ctx context.Context, shareID string) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectItemsQuery(shareID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	items, err := queryAll(ctx, l.DB, query, args, scanItem)
	if err != nil {
		log.Err(err).
			Str("func", "localStore.GetItems").
			Str("share_id", shareID).
			Msg("failed to get local items")
		return nil, err
	}

	return items, nil
}

func (l *localStore) GetCursor(ctx context.Context, shareID string) (models.SyncCursor, error) {
	query, args, err := buildSelectCursorQuery(shareID)
	if err != nil {
		return models.SyncCursor{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return queryOne(ctx, l.DB, query, args, scanCursor, ErrCursorNotFound)
}
