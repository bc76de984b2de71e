package service

import (
	"sync"
	"time"
)

// backOffStrides is indexed by the number of consecutive server failures.
var backOffStrides = []time.Duration{
	0,
	time.Second,
	2 * time.Second,
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
	time.Minute,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
	30 * time.Minute,
}

// BackOffManager throttles sync passes while the remote answers with server
// errors. It is safe for concurrent use.
type BackOffManager struct {
	mu          sync.Mutex
	failures    int
	lastFailure time.Time
	now         func() time.Time
}

func NewBackOffManager() *BackOffManager {
	return &BackOffManager{now: time.Now}
}

// RecordFailure widens the back-off window when err means the remote is
// unavailable and reports whether it did. Other errors leave the window
// unchanged.
func (b *BackOffManager) RecordFailure(err error) bool {
	if !IsServerFailure(err) {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.lastFailure = b.now()
	return true
}

// RecordSuccess closes the back-off window.
func (b *BackOffManager) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	b.lastFailure = time.Time{}
}

// CanProceed reports whether the current back-off window has elapsed.
func (b *BackOffManager) CanProceed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failures == 0 {
		return true
	}
	return !b.now().Before(b.lastFailure.Add(stride(b.failures)))
}

// Failures returns the number of consecutive server failures.
func (b *BackOffManager) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.failures
}

func stride(failures int) time.Duration {
	return backOffStrides[min(failures, len(backOffStrides)-1)]
}
