// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/service"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/internal/workers"
	"github.com/MKhiriev/go-pass-sync/models"
)

// App is the sync client process: a reachability monitor and a sync loop
// running until the process is signalled.
type App struct {
	storages *store.ClientStorages
	workers  *workers.Workers
	session  models.Session
	logger   *logger.Logger
}

var _ Client = (*App)(nil)

// NewApp resolves the session, hands its token to remote and prepares the
// background workers. Nothing runs until [App.Run].
func NewApp(
	ctx context.Context,
	storages *store.ClientStorages,
	remote adapter.RemoteAdapter,
	services *service.SyncServices,
	sealer store.Sealer,
	cfg *config.ClientConfig,
	log *logger.Logger,
) (*App, error) {
	return newApp(ctx, storages, remote, services, sealer, cfg, os.Stdout, log)
}

func newApp(
	ctx context.Context,
	storages *store.ClientStorages,
	remote adapter.RemoteAdapter,
	services *service.SyncServices,
	sealer store.Sealer,
	cfg *config.ClientConfig,
	out io.Writer,
	log *logger.Logger,
) (*App, error) {
	setting := store.NewSecureSetting[models.Session](storages.LocalStore, sealer, sessionSettingKey)
	session, err := resolveSession(ctx, setting, cfg.Adapter.Token, time.Now())
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	remote.SetToken(session.Token)

	monitor, err := workers.NewReachabilityMonitor(cfg.Adapter.HTTPAddress, cfg.Workers.ReachabilityInterval, log)
	if err != nil {
		return nil, fmt.Errorf("create reachability monitor: %w", err)
	}

	sink := newRevokingSink(newConsoleSink(out), services.Synchronizer, log)
	loop := workers.NewSyncLoop(services.Synchronizer, monitor, services.BackOff, sink, cfg.Workers.SyncInterval, log)

	if err = loop.AddTask(sessionCheckTask, newSessionCheckTask(remote, time.Now)); err != nil {
		return nil, err
	}
	if err = loop.AddTask(vaultIndexTask, newVaultIndexTask(storages.LocalStore, services.Items, log)); err != nil {
		return nil, err
	}

	// the monitor probes once before the loop's first tick
	return &App{
		storages: storages,
		workers:  workers.NewWorkers(monitor, loop),
		session:  session,
		logger:   log,
	}, nil
}

// Run starts the workers and blocks until SIGTERM, SIGINT or SIGQUIT. The
// pass in flight is cancelled and the store is closed before Run returns.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	a.logger.Info().
		Str("func", "App.Run").
		Str("account_id", a.session.AccountID).
		Msg("sync client started")

	a.workers.Start(ctx)
	<-ctx.Done()

	a.logger.Info().Str("func", "App.Run").Msg("shutting down sync client")
	a.workers.Stop()

	if err := a.storages.Close(); err != nil {
		return fmt.Errorf("close storages: %w", err)
	}
	return nil
}
