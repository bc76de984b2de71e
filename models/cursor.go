// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncCursor is the client's bookmark into a share's event stream.
// LastEventID only moves forward; the cursor is dropped together with the
// share when the share is removed locally.
type SyncCursor struct {
	ShareID     string
	LastEventID string
	KeyRotation int64
	UpdateTime  int64
}
