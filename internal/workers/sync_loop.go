// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/service"
	"github.com/MKhiriev/go-pass-sync/internal/utils"
	"github.com/MKhiriev/go-pass-sync/models"
)

type labelledTask struct {
	label string
	run   Task
}

// SyncLoop runs sync passes on a fixed interval. At most one pass is in
// flight at any time; a tick that finds a pass still running is skipped and
// reported to the sink.
type SyncLoop struct {
	synchronizer service.Synchronizer
	network      Reachability
	backOff      *service.BackOffManager
	sink         service.StatusSink
	ids          *utils.UUIDGenerator
	interval     time.Duration
	logger       *logger.Logger

	inFlight atomic.Bool

	mu      sync.Mutex
	running bool
	loopCtx context.Context
	cancel  context.CancelFunc
	tasks   []labelledTask

	// wg tracks the ticker goroutine and every pass goroutine
	wg sync.WaitGroup
}

// NewSyncLoop creates an idle SyncLoop; nothing runs until Start.
func NewSyncLoop(
	synchronizer service.Synchronizer,
	network Reachability,
	backOff *service.BackOffManager,
	sink service.StatusSink,
	interval time.Duration,
	logger *logger.Logger,
) *SyncLoop {
	return &SyncLoop{
		synchronizer: synchronizer,
		network:      network,
		backOff:      backOff,
		sink:         sink,
		ids:          utils.NewUUIDGenerator(),
		interval:     interval,
		logger:       logger,
	}
}

// AddTask registers a task run after every successful pass. Labels must be
// unique.
func (l *SyncLoop) AddTask(label string, task Task) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if slices.ContainsFunc(l.tasks, func(t labelledTask) bool { return t.label == label }) {
		return fmt.Errorf("%w: %q", ErrDuplicateTask, label)
	}
	l.tasks = append(l.tasks, labelledTask{label: label, run: task})
	return nil
}

// Start implements [Worker]. The first tick fires immediately; later ticks
// follow every interval until ctx is cancelled or Stop is called. Calling
// Start on a running loop does nothing.
func (l *SyncLoop) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return
	}

	l.loopCtx, l.cancel = context.WithCancel(ctx)
	l.running = true

	l.wg.Add(1)
	go l.loop(l.loopCtx)
}

// Stop implements [Worker]. It cancels the pass in flight and blocks until
// the ticker and the pass have returned.
func (l *SyncLoop) Stop() {
	l.mu.Lock()
	cancel := l.cancel
	l.cancel = nil
	l.running = false
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	l.wg.Wait()
}

// ForceSync runs one tick out of schedule, subject to the same checks as a
// regular tick. It reports whether a pass was started.
func (l *SyncLoop) ForceSync() bool {
	return l.tick()
}

// IsSyncing reports whether a pass is in flight.
func (l *SyncLoop) IsSyncing() bool {
	return l.inFlight.Load()
}

func (l *SyncLoop) loop(ctx context.Context) {
	defer l.wg.Done()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.tick()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.tick()
		}
	}
}

func (l *SyncLoop) tick() bool {
	if !l.network.IsNetworkAvailable() {
		l.skip(models.SkipNoInternetConnection)
		return false
	}

	if !l.inFlight.CompareAndSwap(false, true) {
		l.skip(models.SkipPreviousLoopNotFinished)
		return false
	}

	if !l.backOff.CanProceed() {
		l.inFlight.Store(false)
		l.skip(models.SkipBackOff)
		return false
	}

	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		l.inFlight.Store(false)
		return false
	}
	ctx := l.loopCtx
	tasks := slices.Clone(l.tasks)
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()
		defer l.inFlight.Store(false)

		l.runPass(ctx, tasks)
	}()

	return true
}

func (l *SyncLoop) skip(reason models.SkipReason) {
	l.logger.Debug().
		Str("func", "SyncLoop.tick").
		Str("reason", reason.String()).
		Msg("sync tick skipped")
	l.sink.OnSyncSkipped(reason)
}

func (l *SyncLoop) runPass(ctx context.Context, tasks []labelledTask) {
	syncID := l.ids.Generate()
	ctx, log := l.logger.WithSyncID(utils.WithSyncID(ctx, syncID), syncID)

	l.sink.OnSyncStarted()
	started := time.Now()

	result, err := l.synchronizer.Sync(ctx)

	ids := make([]string, 0, len(result.FailedShares))
	for id := range result.FailedShares {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		l.sink.OnShareSyncFailed(id, result.FailedShares[id])
	}

	if err != nil {
		if l.backOff.RecordFailure(err) {
			log.Warn().
				Str("func", "SyncLoop.runPass").
				Int("failures", l.backOff.Failures()).
				Msg("remote unavailable, backing off")
		}
		log.Err(err).
			Str("func", "SyncLoop.runPass").
			Dur("took", time.Since(started)).
			Msg("sync pass failed")
		l.sink.OnSyncFailed(err)
		return
	}

	l.backOff.RecordSuccess()
	log.Info().
		Str("func", "SyncLoop.runPass").
		Dur("took", time.Since(started)).
		Int("synced_shares", result.SyncedShares).
		Int("failed_shares", len(result.FailedShares)).
		Bool("has_new_events", result.HasNewEvents).
		Msg("sync pass finished")
	l.sink.OnSyncFinished(result.HasNewEvents)

	for _, task := range tasks {
		if err := task.run(ctx); err != nil {
			log.Err(err).
				Str("func", "SyncLoop.runPass").
				Str("task", task.label).
				Msg("additional task failed")
			l.sink.OnAdditionalTaskFailed(task.label, err)
		}
	}
}
