package service

import (
	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/crypto"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
)

type SyncServices struct {
	Keys         KeyManager
	Applier      EventApplier
	Shares       ShareSyncer
	Synchronizer Synchronizer
	Items        ItemReader
	BackOff      *BackOffManager
}

func NewSyncServices(
	localStore store.LocalStore,
	remote adapter.RemoteAdapter,
	ring crypto.KeyRing,
	local crypto.LocalCipher,
	cfg config.ClientWorkers,
	logger *logger.Logger,
) *SyncServices {
	keys := NewKeyManager(localStore, remote, ring, local, logger)
	applier := NewEventApplier(localStore, keys, logger)
	shares := NewShareSyncer(localStore, remote, keys, applier, cfg.MaxEventPages, logger)

	return &SyncServices{
		Keys:         keys,
		Applier:      applier,
		Shares:       shares,
		Synchronizer: NewSynchronizer(localStore, remote, shares, keys, cfg.ShareConcurrency, logger),
		Items:        NewItemReader(localStore, keys, logger),
		BackOff:      NewBackOffManager(),
	}
}
