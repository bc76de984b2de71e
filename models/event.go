// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncEvents is one page of server-issued deltas for a share since a cursor.
type SyncEvents struct {
	UpdatedShare   *Share        `json:"UpdatedShare,omitempty"`
	UpdatedItems   []Item        `json:"UpdatedItems"`
	DeletedItemIDs []string      `json:"DeletedItemIDs"`
	LastUseItems   []LastUseItem `json:"LastUseItems"`
	NewKeyRotation *int64        `json:"NewKeyRotation,omitempty"`
	LatestEventID  string        `json:"LatestEventID"`
	EventsPending  bool          `json:"EventsPending"`
	FullRefresh    bool          `json:"FullRefresh"`
}

// HasChanges reports whether the page carries anything besides a cursor move.
func (e SyncEvents) HasChanges() bool {
	return e.UpdatedShare != nil ||
		len(e.UpdatedItems) > 0 ||
		len(e.DeletedItemIDs) > 0 ||
		len(e.LastUseItems) > 0 ||
		e.NewKeyRotation != nil ||
		e.FullRefresh
}
