// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks the merged [StructuredConfig] before it is used.
// Only values that are wrong regardless of the runtime are rejected here;
// required-ness is checked on the client view.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.PageSize < 0 || cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Workers.SyncInterval < 0 ||
		cfg.Workers.ShareConcurrency < 0 ||
		cfg.Workers.MaxEventPages < 0 ||
		cfg.Workers.ReachabilityInterval < 0 {
		return ErrInvalidWorkerConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.PageSize <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 ||
		cfg.Workers.ShareConcurrency <= 0 ||
		cfg.Workers.MaxEventPages <= 0 ||
		cfg.Workers.ReachabilityInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.LocalKeyPassphrase == "" || cfg.App.AccountKeyFile == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
