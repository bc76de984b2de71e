package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/mock"
	"github.com/MKhiriev/go-pass-sync/internal/service"
	"github.com/MKhiriev/go-pass-sync/internal/utils"
	"github.com/MKhiriev/go-pass-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const waitTimeout = 2 * time.Second

type stubNetwork struct{ down atomic.Bool }

func (n *stubNetwork) IsNetworkAvailable() bool { return !n.down.Load() }

func newTestLoop(t *testing.T, interval time.Duration) (*SyncLoop, *mock.MockSynchronizer, *ChannelSink, *stubNetwork) {
	t.Helper()
	ctrl := gomock.NewController(t)
	synchronizer := mock.NewMockSynchronizer(ctrl)
	sink := NewChannelSink(128)
	network := &stubNetwork{}

	loop := NewSyncLoop(synchronizer, network, service.NewBackOffManager(), sink, interval, logger.Nop())
	t.Cleanup(loop.Stop)
	return loop, synchronizer, sink, network
}

// waitFor reads statuses until one of kind arrives.
func waitFor(t *testing.T, sink *ChannelSink, kind models.SyncStatusKind) models.SyncStatus {
	t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case st := <-sink.Updates():
			if st.Kind == kind {
				return st
			}
		case <-deadline:
			t.Fatalf("no status of kind %d within %s", kind, waitTimeout)
		}
	}
}

// blockingSync returns a Sync implementation that waits for release or for
// the pass to be cancelled.
func blockingSync(release <-chan struct{}) func(context.Context) (models.SyncResult, error) {
	return func(ctx context.Context) (models.SyncResult, error) {
		select {
		case <-release:
			return models.SyncResult{HasNewEvents: true}, nil
		case <-ctx.Done():
			return models.SyncResult{}, ctx.Err()
		}
	}
}

// ── ticks ────────────────────────────────────────────────────────────────────

func TestSyncLoop_NoConnectivitySkipsWithoutNetworkCalls(t *testing.T) {
	loop, _, sink, network := newTestLoop(t, time.Hour)
	network.down.Store(true)

	// no expectations on the synchronizer: any call fails the test
	loop.Start(context.Background())

	st := waitFor(t, sink, models.SyncSkipped)
	assert.Equal(t, models.SkipNoInternetConnection, st.SkipReason)
	assert.False(t, loop.ForceSync())
}

func TestSyncLoop_FirstTickRunsImmediately(t *testing.T) {
	loop, synchronizer, sink, _ := newTestLoop(t, time.Hour)

	synchronizer.EXPECT().Sync(gomock.Any()).Return(models.SyncResult{HasNewEvents: true, SyncedShares: 1}, nil)

	loop.Start(context.Background())

	waitFor(t, sink, models.SyncStarted)
	st := waitFor(t, sink, models.SyncFinished)
	assert.True(t, st.HasNewEvents)
}

// A pass longer than the interval makes the next tick skip; once it is done
// ticks proceed again.
func TestSyncLoop_LongPassSkipsNextTick(t *testing.T) {
	loop, synchronizer, sink, _ := newTestLoop(t, 20*time.Millisecond)
	release := make(chan struct{})

	gomock.InOrder(
		synchronizer.EXPECT().Sync(gomock.Any()).DoAndReturn(blockingSync(release)),
		synchronizer.EXPECT().Sync(gomock.Any()).Return(models.SyncResult{}, nil).AnyTimes(),
	)

	loop.Start(context.Background())
	waitFor(t, sink, models.SyncStarted)

	st := waitFor(t, sink, models.SyncSkipped)
	assert.Equal(t, models.SkipPreviousLoopNotFinished, st.SkipReason)

	close(release)
	waitFor(t, sink, models.SyncFinished)

	waitFor(t, sink, models.SyncStarted)
	waitFor(t, sink, models.SyncFinished)
}

func TestSyncLoop_ForceSyncWhileInFlight(t *testing.T) {
	loop, synchronizer, sink, _ := newTestLoop(t, time.Hour)
	release := make(chan struct{})

	synchronizer.EXPECT().Sync(gomock.Any()).DoAndReturn(blockingSync(release))

	loop.Start(context.Background())
	waitFor(t, sink, models.SyncStarted)
	require.True(t, loop.IsSyncing())

	assert.False(t, loop.ForceSync())
	st := waitFor(t, sink, models.SyncSkipped)
	assert.Equal(t, models.SkipPreviousLoopNotFinished, st.SkipReason)

	close(release)
	waitFor(t, sink, models.SyncFinished)
	require.Eventually(t, func() bool { return !loop.IsSyncing() }, waitTimeout, 5*time.Millisecond)
}

func TestSyncLoop_ServerFailureBacksOff(t *testing.T) {
	loop, synchronizer, sink, _ := newTestLoop(t, time.Hour)

	synchronizer.EXPECT().Sync(gomock.Any()).Return(models.SyncResult{}, adapter.ErrServerUnavailable).Times(1)

	loop.Start(context.Background())
	st := waitFor(t, sink, models.SyncFailed)
	assert.ErrorIs(t, st.Err, adapter.ErrServerUnavailable)

	require.Eventually(t, func() bool { return !loop.IsSyncing() }, waitTimeout, 5*time.Millisecond)
	assert.False(t, loop.ForceSync())

	st = waitFor(t, sink, models.SyncSkipped)
	assert.Equal(t, models.SkipBackOff, st.SkipReason)
}

func TestSyncLoop_ClientFailureDoesNotBackOff(t *testing.T) {
	loop, synchronizer, sink, _ := newTestLoop(t, time.Hour)

	gomock.InOrder(
		synchronizer.EXPECT().Sync(gomock.Any()).Return(models.SyncResult{}, adapter.ErrUnauthorized),
		synchronizer.EXPECT().Sync(gomock.Any()).Return(models.SyncResult{}, nil),
	)

	loop.Start(context.Background())
	waitFor(t, sink, models.SyncFailed)

	require.Eventually(t, func() bool { return !loop.IsSyncing() }, waitTimeout, 5*time.Millisecond)
	assert.True(t, loop.ForceSync())
	waitFor(t, sink, models.SyncFinished)
}

func TestSyncLoop_ReportsShareFailures(t *testing.T) {
	loop, synchronizer, sink, _ := newTestLoop(t, time.Hour)
	shareErr := errors.New("share broke")

	synchronizer.EXPECT().Sync(gomock.Any()).Return(models.SyncResult{
		SyncedShares: 1,
		FailedShares: map[string]error{"s2": shareErr},
	}, nil)

	loop.Start(context.Background())

	st := waitFor(t, sink, models.ShareSyncFailed)
	assert.Equal(t, "s2", st.ShareID)
	assert.ErrorIs(t, st.Err, shareErr)
	waitFor(t, sink, models.SyncFinished)
}

func TestSyncLoop_PassCarriesSyncID(t *testing.T) {
	loop, synchronizer, sink, _ := newTestLoop(t, time.Hour)

	var syncID atomic.Value
	synchronizer.EXPECT().Sync(gomock.Any()).DoAndReturn(func(ctx context.Context) (models.SyncResult, error) {
		id, ok := utils.GetSyncIDFromContext(ctx)
		if ok {
			syncID.Store(id)
		}
		return models.SyncResult{}, nil
	})

	loop.Start(context.Background())
	waitFor(t, sink, models.SyncFinished)

	id, _ := syncID.Load().(string)
	assert.NotEmpty(t, id)
}

// ── additional tasks ─────────────────────────────────────────────────────────

func TestSyncLoop_AddTask_RejectsDuplicateLabel(t *testing.T) {
	loop, _, _, _ := newTestLoop(t, time.Hour)
	noop := func(context.Context) error { return nil }

	require.NoError(t, loop.AddTask("reindex", noop))
	err := loop.AddTask("reindex", noop)
	assert.ErrorIs(t, err, ErrDuplicateTask)
}

func TestSyncLoop_TaskFailureIsReported(t *testing.T) {
	loop, synchronizer, sink, _ := newTestLoop(t, time.Hour)
	taskErr := errors.New("index rebuild failed")

	var ran atomic.Int32
	require.NoError(t, loop.AddTask("ok", func(context.Context) error {
		ran.Add(1)
		return nil
	}))
	require.NoError(t, loop.AddTask("broken", func(context.Context) error { return taskErr }))

	synchronizer.EXPECT().Sync(gomock.Any()).Return(models.SyncResult{}, nil)

	loop.Start(context.Background())
	waitFor(t, sink, models.SyncFinished)

	st := waitFor(t, sink, models.AdditionalTaskFailed)
	assert.Equal(t, "broken", st.TaskLabel)
	assert.ErrorIs(t, st.Err, taskErr)
	assert.Equal(t, int32(1), ran.Load())
}

func TestSyncLoop_TasksSkippedWhenPassFails(t *testing.T) {
	loop, synchronizer, sink, _ := newTestLoop(t, time.Hour)

	var ran atomic.Bool
	require.NoError(t, loop.AddTask("task", func(context.Context) error {
		ran.Store(true)
		return nil
	}))

	synchronizer.EXPECT().Sync(gomock.Any()).Return(models.SyncResult{}, errors.New("local store broken"))

	loop.Start(context.Background())
	waitFor(t, sink, models.SyncFailed)
	loop.Stop()

	assert.False(t, ran.Load())
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestSyncLoop_StartTwiceIsNoop(t *testing.T) {
	loop, synchronizer, sink, _ := newTestLoop(t, time.Hour)

	synchronizer.EXPECT().Sync(gomock.Any()).Return(models.SyncResult{}, nil).Times(1)

	ctx := context.Background()
	loop.Start(ctx)
	loop.Start(ctx)

	waitFor(t, sink, models.SyncFinished)
	loop.Stop()
}

func TestSyncLoop_StopCancelsPassInFlight(t *testing.T) {
	loop, synchronizer, sink, _ := newTestLoop(t, time.Hour)

	synchronizer.EXPECT().Sync(gomock.Any()).DoAndReturn(blockingSync(make(chan struct{})))

	loop.Start(context.Background())
	waitFor(t, sink, models.SyncStarted)

	done := make(chan struct{})
	go func() {
		loop.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(waitTimeout):
		t.Fatal("Stop did not return")
	}

	st := waitFor(t, sink, models.SyncFailed)
	assert.ErrorIs(t, st.Err, context.Canceled)
	assert.False(t, loop.IsSyncing())
}

func TestSyncLoop_ForceSyncBeforeStart(t *testing.T) {
	loop, _, _, _ := newTestLoop(t, time.Hour)
	assert.False(t, loop.ForceSync())
	assert.False(t, loop.IsSyncing())
}
