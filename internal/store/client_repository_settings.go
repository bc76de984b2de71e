package store

import (
	"context"
	"fmt"
	"time"
)

func (l *localStore) GetSetting(ctx context.Context, key string) ([]byte, error) {
	query, args, err := buildSelectSettingQuery(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return queryOne(ctx, l.DB, query, args, func(row rowScanner) ([]byte, error) {
		var value []byte
		err := row.Scan(&value)
		return value, err
	}, ErrSettingNotFound)
}

func (l *localStore) SetSetting(ctx context.Context, key string, value []byte) error {
	return execBuilt(ctx, l.DB, "set setting", func() (string, []any, error) {
		return buildUpsertSettingQuery(key, value, time.Now().Unix())
	})
}
