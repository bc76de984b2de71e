// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// StoreBatch is the unit of atomic write into the local store. Everything in
// a batch becomes visible to readers at once, or not at all.
type StoreBatch struct {
	ShareID string

	// UpsertShare replaces the share metadata record when set.
	UpsertShare *Share
	// ReplaceItems drops every stored item of the share before UpsertItems
	// are written (snapshot semantics of a full sync or a full refresh).
	ReplaceItems  bool
	UpsertItems   []Item
	DeleteItemIDs []string
	LastUseItems  []LastUseItem
	UpsertKeys    []StoredShareKey
	// Cursor is written last. ExpectedEventID is the LastEventID the batch
	// was computed from ("" for a share without a cursor); the store refuses
	// the whole batch when the stored cursor differs, so a cursor is never
	// rewound by a stale writer.
	Cursor          *SyncCursor
	ExpectedEventID string
}

// IsEmpty reports whether the batch would not change anything.
func (b StoreBatch) IsEmpty() bool {
	return b.UpsertShare == nil &&
		!b.ReplaceItems &&
		len(b.UpsertItems) == 0 &&
		len(b.DeleteItemIDs) == 0 &&
		len(b.LastUseItems) == 0 &&
		len(b.UpsertKeys) == 0 &&
		b.Cursor == nil
}
