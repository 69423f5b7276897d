// Package dbx holds the database/sql seams shared by repositories: DBTX,
// satisfied by both *sql.DB and *sql.Tx, and transaction helpers for
// multi-step writes.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the subset of database/sql used by repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction. It commits when fn returns nil and
// rolls back on error or panic; panics are re-raised after the rollback.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	_, err := InTx(ctx, db, opts, func(ctx context.Context, tx DBTX) (struct{}, error) {
		return struct{}{}, fn(ctx, tx)
	})
	return err
}

// InTx is WithTx for callers that produce a value. Only a non-nil error rolls
// back, so fn can return a rejected outcome in T and still keep its writes:
//
//	outcome, err := dbx.InTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) (error, error) {
//	    if _, err := repos.Credentials(tx).IncrementRecoveryAttempts(ctx, id); err != nil {
//	        return nil, err
//	    }
//	    return common.ErrorInvalidOrExpiredCode, nil
//	})
func InTx[T any](ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) (T, error)) (result T, err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return result, fmt.Errorf("begin tx: %w", err)
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
		if cerr := tx.Commit(); cerr != nil {
			var zero T
			result, err = zero, fmt.Errorf("commit tx: %w", cerr)
		}
	}()

	return fn(ctx, tx)
}
