// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ItemState is the lifecycle state of an item.
type ItemState int

const (
	ItemStateActive  ItemState = 1
	ItemStateTrashed ItemState = 2
)

// Item is an encrypted entry of exactly one share, identified by
// (ShareID, ItemID). Content stays ciphertext in the local store and is
// decrypted lazily on read with the share key of KeyRotation.
type Item struct {
	ShareID     string    `json:"ShareID"`
	ItemID      string    `json:"ItemID"`
	Revision    int64     `json:"Revision"`
	KeyRotation int64     `json:"KeyRotation"`
	Content     string    `json:"Content"`
	ItemKey     *string   `json:"ItemKey,omitempty"`
	State       ItemState `json:"State"`
	Pinned      bool      `json:"Pinned"`
	CreateTime  int64     `json:"CreateTime"`
	ModifyTime  int64     `json:"ModifyTime"`
	LastUseTime *int64    `json:"LastUseTime,omitempty"`
}

// IsTrashed reports whether the item was moved to trash.
func (i Item) IsTrashed() bool {
	return i.State == ItemStateTrashed
}

// LastUseItem carries a last-use timestamp update for an item.
type LastUseItem struct {
	ItemID      string `json:"ItemID"`
	LastUseTime int64  `json:"LastUseTime"`
}

// DecryptedItem is the read projection of an item with its content opened.
// Err is set, and Plaintext is nil, when the content could not be opened.
type DecryptedItem struct {
	Item
	Plaintext []byte
	Err       error
}
