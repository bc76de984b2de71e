// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AccountKey is one X25519 key pair of the account. Share keys are sealed to
// the public half by the remote; only active keys may open them.
type AccountKey struct {
	KeyID      string `json:"key_id"`
	PublicKey  []byte `json:"public_key"`
	PrivateKey []byte `json:"private_key"`
	Active     bool   `json:"active"`
}

// Session is the locally persisted authenticated session of the account.
type Session struct {
	AccountID string `json:"account_id"`
	Token     string `json:"token"`
}
