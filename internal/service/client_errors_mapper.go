// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/crypto"
)

// mapKeyError translates a key ring failure into a service business error
func mapKeyError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, crypto.ErrInactiveAccountKey),
		errors.Is(err, crypto.ErrUnknownAccountKey):
		return fmt.Errorf("%w: %w", ErrInactiveUserKey, err)
	}

	return err
}

// IsServerFailure reports whether err means the remote is unavailable, which
// is the only failure that opens a back-off window.
func IsServerFailure(err error) bool {
	return errors.Is(err, adapter.ErrServerUnavailable)
}
