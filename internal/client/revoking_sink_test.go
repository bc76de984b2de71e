package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/mock"
	"github.com/MKhiriev/go-pass-sync/internal/workers"
	"github.com/MKhiriev/go-pass-sync/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRevokingSink_RemovesShareOnAccessLoss(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		remove bool
	}{
		{name: "forbidden", err: fmt.Errorf("get events: %w", adapter.ErrForbidden), remove: true},
		{name: "not found", err: adapter.ErrNotFound, remove: true},
		{name: "server unavailable", err: adapter.ErrServerUnavailable},
		{name: "other", err: errors.New("decrypt failed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			synchronizer := mock.NewMockSynchronizer(ctrl)
			next := workers.NewChannelSink(4)
			sink := newRevokingSink(next, synchronizer, logger.Nop())

			if tt.remove {
				synchronizer.EXPECT().RemoveShare(gomock.Any(), "s1").Return(nil)
			}

			sink.OnShareSyncFailed("s1", tt.err)

			st := <-next.Updates()
			assert.Equal(t, models.ShareSyncFailed, st.Kind)
			assert.Equal(t, "s1", st.ShareID)
			assert.ErrorIs(t, st.Err, tt.err)
		})
	}
}

func TestRevokingSink_RemoveFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	synchronizer := mock.NewMockSynchronizer(ctrl)
	next := workers.NewChannelSink(4)
	sink := newRevokingSink(next, synchronizer, logger.Nop())

	synchronizer.EXPECT().RemoveShare(gomock.Any(), "s1").Return(errors.New("disk full"))

	sink.OnShareSyncFailed("s1", adapter.ErrForbidden)
	assert.Len(t, next.Updates(), 1)
}

func TestRevokingSink_ForwardsOtherNotifications(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := workers.NewChannelSink(4)
	sink := newRevokingSink(next, mock.NewMockSynchronizer(ctrl), logger.Nop())

	sink.OnSyncStarted()
	sink.OnSyncFinished(true)

	assert.Equal(t, models.SyncStarted, (<-next.Updates()).Kind)
	st := <-next.Updates()
	assert.Equal(t, models.SyncFinished, st.Kind)
	assert.True(t, st.HasNewEvents)
}
