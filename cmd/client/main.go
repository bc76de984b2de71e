package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/client"
	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/crypto"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/service"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
	printBuildInfo(info)

	ctx := context.Background()
	log := logger.NewClientLogger("go-pass-sync")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	localStorage, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	// the salt lives next to the database; both go together
	salt, err := crypto.LoadOrCreateSalt(filepath.Clean(cfg.Storage.DB.DSN) + ".salt")
	if err != nil {
		log.Fatal().Err(err).Msg("load local key salt")
	}

	localKey, err := crypto.NewLocalKeyChain(cfg.App.LocalKeyPassphrase, salt)
	if err != nil {
		log.Fatal().Err(err).Msg("derive local key")
	}

	keyRing, err := crypto.LoadAccountKeyRing(cfg.App.AccountKeyFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load account keys")
	}

	remoteAdapter, err := adapter.NewHTTPRemoteAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote adapter")
	}

	services := service.NewSyncServices(localStorage.LocalStore, remoteAdapter, keyRing, localKey, cfg.Workers, log)

	app, err := client.NewApp(ctx, localStorage, remoteAdapter, services, localKey, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
