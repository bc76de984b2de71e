package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-sync/internal/crypto"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/models"
)

type itemReader struct {
	items  store.ItemRepository
	keys   KeyManager
	logger *logger.Logger
}

// NewItemReader creates an [ItemReader] that opens stored items with share
// keys resolved by keys.
func NewItemReader(items store.ItemRepository, keys KeyManager, logger *logger.Logger) ItemReader {
	return &itemReader{items: items, keys: keys, logger: logger}
}

func (r *itemReader) GetItem(ctx context.Context, shareID, itemID string) (models.DecryptedItem, error) {
	item, err := r.items.GetItem(ctx, shareID, itemID)
	if err != nil {
		return models.DecryptedItem{}, err
	}

	key, err := r.keys.ShareKey(ctx, shareID, item.KeyRotation)
	if err != nil {
		return models.DecryptedItem{Item: item}, fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}

	decrypted := openItem(item, key)
	return decrypted, decrypted.Err
}

func (r *itemReader) ListItems(ctx context.Context, shareID string) ([]models.DecryptedItem, error) {
	items, err := r.items.GetItems(ctx, shareID)
	if err != nil {
		return nil, err
	}

	// one lookup per rotation, a failed rotation is not retried within the listing
	keys := make(map[int64]models.DecryptedShareKey)
	failures := make(map[int64]error)

	out := make([]models.DecryptedItem, 0, len(items))
	for _, item := range items {
		if reason, ok := failures[item.KeyRotation]; ok {
			out = append(out, models.DecryptedItem{Item: item, Err: reason})
			continue
		}

		key, ok := keys[item.KeyRotation]
		if !ok {
			key, err = r.keys.ShareKey(ctx, shareID, item.KeyRotation)
			if err != nil {
				reason := fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
				failures[item.KeyRotation] = reason
				r.logger.ForContext(ctx).Warn().Err(err).
					Str("func", "itemReader.ListItems").
					Str("share_id", shareID).
					Int64("key_rotation", item.KeyRotation).
					Msg("share key unavailable for items")
				out = append(out, models.DecryptedItem{Item: item, Err: reason})
				continue
			}
			keys[item.KeyRotation] = key
		}

		out = append(out, openItem(item, key))
	}

	return out, nil
}

func openItem(item models.Item, key models.DecryptedShareKey) models.DecryptedItem {
	plain, err := crypto.OpenItem(item, key.KeyData)
	if err != nil {
		return models.DecryptedItem{Item: item, Err: fmt.Errorf("open item %s: %w", item.ItemID, err)}
	}
	return models.DecryptedItem{Item: item, Plaintext: plain}
}
