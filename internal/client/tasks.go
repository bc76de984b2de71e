package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/service"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/internal/utils"
	"github.com/MKhiriev/go-pass-sync/internal/workers"
)

const (
	sessionCheckTask = "session-check"
	vaultIndexTask   = "vault-index"
)

// newSessionCheckTask reports an expired bearer token after each pass so it
// shows up before the remote starts rejecting requests.
func newSessionCheckTask(remote adapter.RemoteAdapter, now func() time.Time) workers.Task {
	return func(context.Context) error {
		if utils.IsTokenExpired(remote.Token(), now()) {
			return ErrSessionExpired
		}
		return nil
	}
}

// newVaultIndexTask decrypts every stored item and reports how many still
// lack a share key. Those items are retried on the next pass.
func newVaultIndexTask(shares store.ShareRepository, items service.ItemReader, log *logger.Logger) workers.Task {
	return func(ctx context.Context) error {
		l := log.ForContext(ctx)

		localShares, err := shares.GetShares(ctx)
		if err != nil {
			return fmt.Errorf("list local shares: %w", err)
		}

		var total, unreadable, sharesAffected int
		for _, share := range localShares {
			decrypted, err := items.ListItems(ctx, share.ShareID)
			if err != nil {
				return fmt.Errorf("list items of share %s: %w", share.ShareID, err)
			}

			missing := 0
			for _, item := range decrypted {
				if errors.Is(item.Err, service.ErrKeyUnavailable) {
					missing++
				}
			}
			if missing > 0 {
				sharesAffected++
			}
			total += len(decrypted)
			unreadable += missing
		}

		l.Debug().
			Str("func", "vaultIndexTask").
			Int("shares", len(localShares)).
			Int("items", total).
			Int("unreadable", unreadable).
			Msg("vault indexed")

		if unreadable > 0 {
			return fmt.Errorf("%w: %d in %d shares", ErrUnreadableItems, unreadable, sharesAffected)
		}
		return nil
	}
}
