package client

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/service"
)

const removeShareTimeout = 10 * time.Second

// revokingSink forwards every notification and removes a share from the
// local store once the remote answers 403 or 404 for it. A share merely
// missing from the share list is kept.
type revokingSink struct {
	service.StatusSink

	synchronizer service.Synchronizer
	logger       *logger.Logger
}

func newRevokingSink(next service.StatusSink, synchronizer service.Synchronizer, logger *logger.Logger) *revokingSink {
	return &revokingSink{StatusSink: next, synchronizer: synchronizer, logger: logger}
}

func (s *revokingSink) OnShareSyncFailed(shareID string, err error) {
	s.StatusSink.OnShareSyncFailed(shareID, err)

	if !errors.Is(err, adapter.ErrForbidden) && !errors.Is(err, adapter.ErrNotFound) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), removeShareTimeout)
	defer cancel()

	if removeErr := s.synchronizer.RemoveShare(ctx, shareID); removeErr != nil {
		s.logger.Err(removeErr).
			Str("func", "revokingSink.OnShareSyncFailed").
			Str("share_id", shareID).
			Msg("failed to remove revoked share")
		return
	}

	s.logger.Info().
		Str("func", "revokingSink.OnShareSyncFailed").
		Str("share_id", shareID).
		Msg("share access revoked, local copy removed")
}
