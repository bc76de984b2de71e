// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ShareKey is the encrypted key material of one rotation of a share, exactly
// as returned by the remote. Key is a base64 blob addressed to the account
// key identified by UserKeyID.
type ShareKey struct {
	KeyRotation int64  `json:"KeyRotation"`
	Key         string `json:"Key"`
	UserKeyID   string `json:"UserKeyID"`
	CreateTime  int64  `json:"CreateTime"`
}

// StoredShareKey is the locally persisted form of a share key: the key
// material is re-encrypted under the local at-rest key.
type StoredShareKey struct {
	ShareID      string
	KeyRotation  int64
	UserKeyID    string
	EncryptedKey []byte
	CreateTime   int64
}

// DecryptedShareKey is a plaintext share key for one rotation. It only lives
// in memory.
type DecryptedShareKey struct {
	ShareID     string
	KeyRotation int64
	KeyData     []byte
}

// ShareKeyCacheKey identifies a cached key.
type ShareKeyCacheKey struct {
	ShareID     string
	KeyRotation int64
}
