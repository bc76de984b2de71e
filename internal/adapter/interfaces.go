// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for reading the
// remote pass API.
//
// The primary abstraction is [RemoteAdapter], which decouples the sync
// services from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPRemoteAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrServerUnavailable] for 5xx, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pass-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_adapter_mock.go -package=mock

// RemoteAdapter defines read access to the remote source of truth.
// Every response is treated as a snapshot that may already be stale; no
// method retries on its own.
type RemoteAdapter interface {
	// SetToken stores the bearer token attached to all subsequent requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// GetShares lists every share the account has access to.
	GetShares(ctx context.Context) ([]models.Share, error)

	// GetLastEventID returns the id of the newest event of a share. A full
	// sync stores it as the cursor it continues from.
	GetLastEventID(ctx context.Context, shareID string) (string, error)

	// GetEvents returns the page of events following lastEventID.
	GetEvents(ctx context.Context, shareID, lastEventID string) (models.SyncEvents, error)

	// GetShareKeys returns every key rotation of a share, walking all pages.
	GetShareKeys(ctx context.Context, shareID string) ([]models.ShareKey, error)

	// GetItems returns the current revision of every item of a share,
	// walking all pages. Returned items carry shareID.
	GetItems(ctx context.Context, shareID string) ([]models.Item, error)
}
