// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// TargetType describes what a share gives access to.
type TargetType int

const (
	// TargetTypeVault is a share exposing a whole vault.
	TargetTypeVault TargetType = 1
	// TargetTypeItem is a share exposing a single item.
	TargetTypeItem TargetType = 2
)

// Permission is a bit set of share-level rights granted to the account.
type Permission int64

const (
	PermissionRead   Permission = 1 << 0
	PermissionWrite  Permission = 1 << 1
	PermissionAdmin  Permission = 1 << 2
	PermissionManage Permission = 1 << 3
)

// Has reports whether all bits of p2 are set in p.
func (p Permission) Has(p2 Permission) bool {
	return p&p2 == p2
}

// Share is an independently keyed container of items (a vault or an
// item-level share) as known to the client.
//
// Content is the share envelope encrypted under the share key identified by
// ContentKeyRotation; the sync engine never decrypts it, it only stores it.
type Share struct {
	ShareID            string     `json:"ShareID"`
	VaultID            string     `json:"VaultID"`
	AddressID          string     `json:"AddressID"`
	TargetType         TargetType `json:"TargetType"`
	TargetID           string     `json:"TargetID"`
	Permission         Permission `json:"Permission"`
	Owner              bool       `json:"Owner"`
	Content            *string    `json:"Content,omitempty"`
	ContentKeyRotation *int64     `json:"ContentKeyRotation,omitempty"`
	CreateTime         int64      `json:"CreateTime"`
	ExpireTime         *int64     `json:"ExpireTime,omitempty"`
}

// IsVault reports whether the share targets a whole vault.
func (s Share) IsVault() bool {
	return s.TargetType == TargetTypeVault
}

// KeyRotation returns the rotation the share content is encrypted with, or 0
// when the share carries no content.
func (s Share) KeyRotation() int64 {
	if s.ContentKeyRotation == nil {
		return 0
	}
	return *s.ContentKeyRotation
}
