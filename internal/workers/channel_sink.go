package workers

import (
	"sync/atomic"

	"github.com/MKhiriev/go-pass-sync/models"
)

// ChannelSink is a [service.StatusSink] that delivers notifications as
// [models.SyncStatus] values on a buffered channel. Sends never block the
// sync loop: when the buffer is full the notification is dropped and
// counted.
type ChannelSink struct {
	updates chan models.SyncStatus
	dropped atomic.Int64
}

func NewChannelSink(buffer int) *ChannelSink {
	return &ChannelSink{updates: make(chan models.SyncStatus, buffer)}
}

// Updates returns the notification stream.
func (s *ChannelSink) Updates() <-chan models.SyncStatus {
	return s.updates
}

// Dropped returns the number of notifications lost to a full buffer.
func (s *ChannelSink) Dropped() int64 {
	return s.dropped.Load()
}

// Close closes the stream. It must only be called once the sync loop has
// been stopped.
func (s *ChannelSink) Close() {
	close(s.updates)
}

func (s *ChannelSink) OnSyncStarted() {
	s.send(models.SyncStatus{Kind: models.SyncStarted})
}

func (s *ChannelSink) OnSyncSkipped(reason models.SkipReason) {
	s.send(models.SyncStatus{Kind: models.SyncSkipped, SkipReason: reason})
}

func (s *ChannelSink) OnSyncFinished(hasNewEvents bool) {
	s.send(models.SyncStatus{Kind: models.SyncFinished, HasNewEvents: hasNewEvents})
}

func (s *ChannelSink) OnSyncFailed(err error) {
	s.send(models.SyncStatus{Kind: models.SyncFailed, Err: err})
}

func (s *ChannelSink) OnShareSyncFailed(shareID string, err error) {
	s.send(models.SyncStatus{Kind: models.ShareSyncFailed, ShareID: shareID, Err: err})
}

func (s *ChannelSink) OnAdditionalTaskFailed(label string, err error) {
	s.send(models.SyncStatus{Kind: models.AdditionalTaskFailed, TaskLabel: label, Err: err})
}

func (s *ChannelSink) send(status models.SyncStatus) {
	select {
	case s.updates <- status:
	default:
		s.dropped.Add(1)
	}
}
