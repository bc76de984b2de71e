// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SkipReason explains why a scheduler tick did not start a sync pass.
type SkipReason int

const (
	SkipNoInternetConnection SkipReason = iota + 1
	SkipPreviousLoopNotFinished
	SkipBackOff
)

func (r SkipReason) String() string {
	switch r {
	case SkipNoInternetConnection:
		return "noInternetConnection"
	case SkipPreviousLoopNotFinished:
		return "previousLoopNotFinished"
	case SkipBackOff:
		return "backOff"
	default:
		return "unknown"
	}
}

// SyncStatusKind enumerates sync status notifications.
type SyncStatusKind int

const (
	SyncStarted SyncStatusKind = iota + 1
	SyncSkipped
	SyncFinished
	SyncFailed
	ShareSyncFailed
	AdditionalTaskFailed
)

// SyncStatus is one notification emitted by the scheduler, delivered as a
// value through channel-based sinks.
type SyncStatus struct {
	Kind         SyncStatusKind
	SkipReason   SkipReason
	HasNewEvents bool
	ShareID      string
	TaskLabel    string
	Err          error
}

// SyncResult summarizes one finished sync pass.
type SyncResult struct {
	HasNewEvents bool
	SyncedShares int
	FailedShares map[string]error
}
