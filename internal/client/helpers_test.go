package client

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/crypto"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestStorages(t *testing.T) *store.ClientStorages {
	t.Helper()
	storages, err := store.NewClientStorages(context.Background(), config.ClientStorage{
		DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "vault.db")},
	}, logger.Nop())
	require.NoError(t, err)
	return storages
}

func newTestCipher(t *testing.T) crypto.LocalCipher {
	t.Helper()
	local, err := crypto.NewLocalKeyChain("correct horse battery staple", make([]byte, crypto.SaltSize))
	require.NoError(t, err)
	return local
}

// bearerToken signs a token for accountID expiring at exp; a zero exp leaves
// the claim out.
func bearerToken(t *testing.T, accountID string, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: accountID}
	if !exp.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("remote-only-key"))
	require.NoError(t, err)
	return token
}
