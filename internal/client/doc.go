// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client application runtime.
//
// It wires the local store, the remote adapter, the sync services and the
// background workers into a single process lifecycle, and prints sync status
// notifications to the console.
package client
