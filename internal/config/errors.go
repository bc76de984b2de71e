package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid remote client settings
	// (for example, missing address or a non-positive page size).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates missing key settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero sync interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
