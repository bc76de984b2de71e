// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pass-sync/models"
)

// itemsInsertChunk keeps multi-row item upserts below SQLite's bound
// parameter limit.
const itemsInsertChunk = 200

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var shareColumns = []string{
	"share_id",
	"vault_id",
	"address_id",
	"target_type",
	"target_id",
	"permission",
	"owner",
	"content",
	"content_key_rotation",
	"create_time",
	"expire_time",
}

var itemColumns = []string{
	"share_id",
	"item_id",
	"revision",
	"key_rotation",
	"content",
	"item_key",
	"state",
	"pinned",
	"create_time",
	"modify_time",
	"last_use_time",
}

var shareKeyColumns = []string{
	"share_id",
	"key_rotation",
	"user_key_id",
	"encrypted_key",
	"create_time",
}

var cursorColumns = []string{
	"share_id",
	"last_event_id",
	"key_rotation",
	"update_time",
}

const (
	upsertShareSuffix = `ON CONFLICT(share_id) DO UPDATE SET
		vault_id = excluded.vault_id,
		address_id = excluded.address_id,
		target_type = excluded.target_type,
		target_id = excluded.target_id,
		permission = excluded.permission,
		owner = excluded.owner,
		content = excluded.content,
		content_key_rotation = excluded.content_key_rotation,
		create_time = excluded.create_time,
		expire_time = excluded.expire_time`

	// a stored item is only replaced by an equal or newer revision
	upsertItemSuffix = `ON CONFLICT(share_id, item_id) DO UPDATE SET
		revision = excluded.revision,
		key_rotation = excluded.key_rotation,
		content = excluded.content,
		item_key = excluded.item_key,
		state = excluded.state,
		pinned = excluded.pinned,
		create_time = excluded.create_time,
		modify_time = excluded.modify_time,
		last_use_time = COALESCE(excluded.last_use_time, items.last_use_time)
	WHERE excluded.revision >= items.revision`

	upsertShareKeySuffix = `ON CONFLICT(share_id, key_rotation) DO UPDATE SET
		user_key_id = excluded.user_key_id,
		encrypted_key = excluded.encrypted_key,
		create_time = excluded.create_time`

	upsertCursorSuffix = `ON CONFLICT(share_id) DO UPDATE SET
		last_event_id = excluded.last_event_id,
		key_rotation = MAX(sync_cursors.key_rotation, excluded.key_rotation),
		update_time = excluded.update_time`

	upsertSettingSuffix = `ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		update_time = excluded.update_time`
)

func buildSelectSharesQuery() (string, []any, error) {
	return qb.Select(shareColumns...).
		From("shares").
		OrderBy("create_time", "share_id").
		ToSql()
}

func buildSelectShareQuery(shareID string) (string, []any, error) {
	return qb.Select(shareColumns...).
		From("shares").
		Where(sq.Eq{"share_id": shareID}).
		ToSql()
}

func buildUpsertShareQuery(s models.Share) (string, []any, error) {
	return qb.Insert("shares").
		Columns(shareColumns...).
		Values(
			s.ShareID,
			s.VaultID,
			s.AddressID,
			s.TargetType,
			s.TargetID,
			s.Permission,
			s.Owner,
			s.Content,
			s.ContentKeyRotation,
			s.CreateTime,
			s.ExpireTime,
		).
		Suffix(upsertShareSuffix).
		ToSql()
}

func buildSelectItemsQuery(shareID string) (string, []any, error) {
	return qb.Select(itemColumns...).
		From("items").
		Where(sq.Eq{"share_id": shareID}).
		OrderBy("create_time", "item_id").
		ToSql()
}

func buildSelectItemQuery(shareID, itemID string) (string, []any, error) {
	return qb.Select(itemColumns...).
		From("items").
		Where(sq.Eq{"share_id": shareID, "item_id": itemID}).
		ToSql()
}

func buildUpsertItemsQuery(shareID string, items []models.Item) (string, []any, error) {
	insert := qb.Insert("items").Columns(itemColumns...)
	for _, it := range items {
		insert = insert.Values(
			shareID,
			it.ItemID,
			it.Revision,
			it.KeyRotation,
			it.Content,
			it.ItemKey,
			it.State,
			it.Pinned,
			it.CreateTime,
			it.ModifyTime,
			it.LastUseTime,
		)
	}
	return insert.Suffix(upsertItemSuffix).ToSql()
}

func buildDeleteItemsQuery(shareID string, itemIDs []string) (string, []any, error) {
	return qb.Delete("items").
		Where(sq.Eq{"share_id": shareID, "item_id": itemIDs}).
		ToSql()
}

func buildDeleteAllItemsQuery(shareID string) (string, []any, error) {
	return qb.Delete("items").
		Where(sq.Eq{"share_id": shareID}).
		ToSql()
}

func buildTouchItemQuery(shareID string, u models.LastUseItem) (string, []any, error) {
	return qb.Update("items").
		Set("last_use_time", u.LastUseTime).
		Where(sq.Eq{"share_id": shareID, "item_id": u.ItemID}).
		Where(sq.Or{
			sq.Eq{"last_use_time": nil},
			sq.Lt{"last_use_time": u.LastUseTime},
		}).
		ToSql()
}

func buildSelectShareKeyQuery(shareID string, rotation int64) (string, []any, error) {
	return qb.Select(shareKeyColumns...).
		From("share_keys").
		Where(sq.Eq{"share_id": shareID, "key_rotation": rotation}).
		ToSql()
}

func buildSelectShareKeysQuery(shareID string) (string, []any, error) {
	return qb.Select(shareKeyColumns...).
		From("share_keys").
		Where(sq.Eq{"share_id": shareID}).
		OrderBy("key_rotation").
		ToSql()
}

func buildUpsertShareKeysQuery(keys []models.StoredShareKey) (string, []any, error) {
	insert := qb.Insert("share_keys").Columns(shareKeyColumns...)
	for _, k := range keys {
		insert = insert.Values(k.ShareID, k.KeyRotation, k.UserKeyID, k.EncryptedKey, k.CreateTime)
	}
	return insert.Suffix(upsertShareKeySuffix).ToSql()
}

func buildSelectCursorQuery(shareID string) (string, []any, error) {
	return qb.Select(cursorColumns...).
		From("sync_cursors").
		Where(sq.Eq{"share_id": shareID}).
		ToSql()
}

func buildUpsertCursorQuery(c models.SyncCursor) (string, []any, error) {
	return qb.Insert("sync_cursors").
		Columns(cursorColumns...).
		Values(c.ShareID, c.LastEventID, c.KeyRotation, c.UpdateTime).
		Suffix(upsertCursorSuffix).
		ToSql()
}

// buildRemoveShareQueries returns the statements deleting every row that
// belongs to shareID, children first.
func buildRemoveShareQueries(shareID string) []sq.Sqlizer {
	where := sq.Eq{"share_id": shareID}
	return []sq.Sqlizer{
		qb.Delete("items").Where(where),
		qb.Delete("share_keys").Where(where),
		qb.Delete("sync_cursors").Where(where),
		qb.Delete("shares").Where(where),
	}
}

func buildSelectSettingQuery(key string) (string, []any, error) {
	return qb.Select("value").
		From("settings").
		Where(sq.Eq{"key": key}).
		ToSql()
}

func buildUpsertSettingQuery(key string, value []byte, updateTime int64) (string, []any, error) {
	return qb.Insert("settings").
		Columns("key", "value", "update_time").
		Values(key, value, updateTime).
		Suffix(upsertSettingSuffix).
		ToSql()
}
