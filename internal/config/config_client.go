package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] to unset fields.
const (
	DefaultRequestTimeout       = 15 * time.Second
	DefaultPageSize             = 100
	DefaultSyncInterval         = 30 * time.Second
	DefaultShareConcurrency     = 4
	DefaultMaxEventPages        = 50
	DefaultReachabilityInterval = 10 * time.Second
)

// ClientApp holds client-side key settings.
type ClientApp struct {
	// LocalKeyPassphrase derives the local at-rest key.
	LocalKeyPassphrase string
	// AccountKeyFile is the path of the account key ring file.
	AccountKeyFile string
}

// ClientAdapter holds network settings used by the remote client.
type ClientAdapter struct {
	// HTTPAddress is the remote API base address.
	HTTPAddress string
	// RequestTimeout is the timeout for outbound requests.
	RequestTimeout time.Duration
	// PageSize is used for key and item listings.
	PageSize int
	// Token is the fallback bearer token.
	Token string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the sync scheduler ticks.
	SyncInterval time.Duration
	// ShareConcurrency bounds parallel share syncs within a pass.
	ShareConcurrency int
	// MaxEventPages bounds event pages drained per share per pass.
	MaxEventPages int
	// ReachabilityInterval defines how often the remote host is probed.
	ReachabilityInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			LocalKeyPassphrase: cfg.App.LocalKeyPassphrase,
			AccountKeyFile:     cfg.App.AccountKeyFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			PageSize:       cfg.Adapter.PageSize,
			Token:          cfg.Adapter.Token,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			SyncInterval:         cfg.Workers.SyncInterval,
			ShareConcurrency:     cfg.Workers.ShareConcurrency,
			MaxEventPages:        cfg.Workers.MaxEventPages,
			ReachabilityInterval: cfg.Workers.ReachabilityInterval,
		},
	}
	clientCfg.applyDefaults()

	return clientCfg
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.PageSize == 0 {
		cfg.Adapter.PageSize = DefaultPageSize
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if cfg.Workers.ShareConcurrency == 0 {
		cfg.Workers.ShareConcurrency = DefaultShareConcurrency
	}
	if cfg.Workers.MaxEventPages == 0 {
		cfg.Workers.MaxEventPages = DefaultMaxEventPages
	}
	if cfg.Workers.ReachabilityInterval == 0 {
		cfg.Workers.ReachabilityInterval = DefaultReachabilityInterval
	}
}
