package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/store"
	"github.com/MKhiriev/go-pass-sync/internal/utils"
	"github.com/MKhiriev/go-pass-sync/models"
)

const sessionSettingKey = "session"

type sessionSetting interface {
	Get(ctx context.Context) (models.Session, error)
	Set(ctx context.Context, session models.Session) error
}

// resolveSession picks the session the client syncs with. A configured token
// replaces the persisted session; otherwise the persisted one is reused.
func resolveSession(ctx context.Context, setting sessionSetting, configuredToken string, now time.Time) (models.Session, error) {
	if configuredToken != "" {
		accountID, err := utils.ParseAccountIDFromToken(configuredToken)
		if err != nil {
			return models.Session{}, fmt.Errorf("parse configured token: %w", err)
		}
		if utils.IsTokenExpired(configuredToken, now) {
			return models.Session{}, ErrSessionExpired
		}

		session := models.Session{AccountID: accountID, Token: configuredToken}
		if err = setting.Set(ctx, session); err != nil {
			return models.Session{}, fmt.Errorf("persist session: %w", err)
		}
		return session, nil
	}

	session, err := setting.Get(ctx)
	if errors.Is(err, store.ErrSettingNotFound) {
		return models.Session{}, ErrNoSession
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}
	if utils.IsTokenExpired(session.Token, now) {
		return models.Session{}, ErrSessionExpired
	}

	return session, nil
}
