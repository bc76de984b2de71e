// Package utils provides general-purpose helper utilities
// used across different parts of the client.
// Includes tools for working with context, type-safe keys, HTTP client
// initialization, bearer token inspection and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SyncIDCtxKey is the key used to store the identifier of the running sync
// pass in the context.
//
// Example of writing a value to the context:
//
//	ctx := utils.WithSyncID(ctx, "0192b6c4-...")
var SyncIDCtxKey = contextKey("syncID")

// WithSyncID returns a copy of ctx carrying syncID.
func WithSyncID(ctx context.Context, syncID string) context.Context {
	return context.WithValue(ctx, SyncIDCtxKey, syncID)
}

// GetSyncIDFromContext retrieves the sync pass identifier from the context.
//
// Returns the identifier and an ok flag:
//   - ok == true  — value is found and is a non-empty string
//   - ok == false — value is missing, empty or has an unexpected type
func GetSyncIDFromContext(ctx context.Context) (string, bool) {
	syncID, ok := ctx.Value(SyncIDCtxKey).(string)
	return syncID, ok && syncID != ""
}
