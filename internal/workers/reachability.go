package workers

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-pass-sync/internal/adapter"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
)

const dialTimeout = 3 * time.Second

// ReachabilityMonitor periodically dials the remote host over TCP and keeps
// the last outcome. The remote is assumed reachable until the first probe
// says otherwise.
type ReachabilityMonitor struct {
	address  string
	interval time.Duration
	dialer   func(ctx context.Context, network, address string) (net.Conn, error)
	logger   *logger.Logger

	available atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewReachabilityMonitor creates a monitor for the host of rawURL. A missing
// port is derived from the scheme.
func NewReachabilityMonitor(rawURL string, interval time.Duration, logger *logger.Logger) (*ReachabilityMonitor, error) {
	address, err := dialAddress(rawURL)
	if err != nil {
		return nil, err
	}

	d := &net.Dialer{Timeout: dialTimeout}
	m := &ReachabilityMonitor{
		address:  address,
		interval: interval,
		dialer:   d.DialContext,
		logger:   logger,
	}
	m.available.Store(true)

	return m, nil
}

// IsNetworkAvailable implements [Reachability].
func (m *ReachabilityMonitor) IsNetworkAvailable() bool {
	return m.available.Load()
}

// Probe dials the remote once and records the outcome.
func (m *ReachabilityMonitor) Probe(ctx context.Context) bool {
	conn, err := m.dialer(ctx, "tcp", m.address)
	reachable := err == nil
	if reachable {
		_ = conn.Close()
	}

	if m.available.Swap(reachable) != reachable {
		ev := m.logger.Info()
		if !reachable {
			ev = m.logger.Warn().Err(err)
		}
		ev.Str("func", "ReachabilityMonitor.Probe").
			Str("address", m.address).
			Bool("reachable", reachable).
			Msg("remote reachability changed")
	}

	return reachable
}

// Start implements [Worker]. The first probe runs before Start returns.
func (m *ReachabilityMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		return
	}

	ctx, m.cancel = context.WithCancel(ctx)
	m.Probe(ctx)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Probe(ctx)
			}
		}
	}()
}

// Stop implements [Worker].
func (m *ReachabilityMonitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

func dialAddress(rawURL string) (string, error) {
	normalized, err := adapter.NormalizeBaseURL(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	u, err := url.Parse(normalized)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}

	return net.JoinHostPort(u.Hostname(), port), nil
}
