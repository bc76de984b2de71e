package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/migrations"
)

// DB wraps the SQLite connection pool of the local store.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// DBTX is the subset of database/sql used by repository helpers.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// WithTx begins a transaction, runs fn with the transactional handle and
// commits on success. It rolls back when fn returns an error or panics;
// panics are rethrown.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
		}
	}()

	err = fn(ctx, tx)
	return err
}
