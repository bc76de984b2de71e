// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of the
// go-pass-sync client. It aggregates all sub-configurations and is populated
// by merging values from command-line flags, environment variables and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds key material locations used to open the local store and the
	// account key ring.
	App App `envPrefix:"APP_"`

	// Storage holds configuration of the local encrypted store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds settings of the remote pass API client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds scheduler and reachability settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level secrets and key locations.
type App struct {
	// LocalKeyPassphrase is the passphrase the local at-rest key is derived
	// from (Argon2id). Everything the client persists that is not already
	// ciphertext from the remote is sealed with that key.
	// Env: APP_LOCAL_KEY_PASSPHRASE
	LocalKeyPassphrase string `env:"LOCAL_KEY_PASSPHRASE"`

	// AccountKeyFile is the path of a JSON file holding the account's
	// X25519 key pairs used to open share keys.
	// Env: APP_ACCOUNT_KEY_FILE
	AccountKeyFile string `env:"ACCOUNT_KEY_FILE"`
}

// Storage groups the configuration of the local store.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite database file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds configuration of the remote pass API client.
type Adapter struct {
	// HTTPAddress is the base URL of the remote API
	// (e.g. "https://pass.example.com" or "localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single remote request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// PageSize is the page size used for paginated key and item listings.
	// Env: ADAPTER_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`

	// Token is the bearer token used when no session is stored locally.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Workers holds configuration of the background workers.
type Workers struct {
	// SyncInterval is the fixed tick interval of the sync scheduler.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ShareConcurrency bounds how many shares are synchronized in parallel
	// within one pass.
	// Env: WORKERS_SHARE_CONCURRENCY
	ShareConcurrency int `env:"SHARE_CONCURRENCY"`

	// MaxEventPages bounds how many event pages of one share are drained
	// within one pass.
	// Env: WORKERS_MAX_EVENT_PAGES
	MaxEventPages int `env:"MAX_EVENT_PAGES"`

	// ReachabilityInterval is how often the remote host is probed.
	// Env: WORKERS_REACHABILITY_INTERVAL
	ReachabilityInterval time.Duration `env:"REACHABILITY_INTERVAL"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources. For every field the first non-zero value wins, in this order:
//  1. Command-line flags
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags().
		withEnv().
		withJSON().
		build()
}
