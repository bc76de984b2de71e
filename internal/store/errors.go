package store

import "errors"

// Sentinel errors returned by store methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrShareNotFound is returned when the requested share is not stored
	// locally.
	ErrShareNotFound = errors.New("share was not found")

	// ErrItemNotFound is returned when no item matches (share_id, item_id).
	ErrItemNotFound = errors.New("item was not found")

	// ErrCursorNotFound is returned when a share has no sync cursor yet.
	ErrCursorNotFound = errors.New("sync cursor was not found")

	// ErrShareKeyNotFound is returned when no key of the requested rotation
	// is persisted for a share.
	ErrShareKeyNotFound = errors.New("share key was not found")

	// ErrSettingNotFound is returned when a secure setting was never set.
	ErrSettingNotFound = errors.New("setting was not found")

	// ErrCursorConflict is returned by ApplyBatch when the stored cursor no
	// longer matches the one the batch was computed from. Nothing of the
	// batch is committed.
	ErrCursorConflict = errors.New("sync cursor moved concurrently")
)

// Low-level database operation errors. These are returned (or wrapped) by
// store methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRows is returned when scanning column values fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
