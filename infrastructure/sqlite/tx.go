package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ErrStorage marks failures of the storage engine itself (begin, commit),
// as opposed to errors returned by the transaction body.
var ErrStorage = errors.New("storage failure")

// WithWriteTx runs fn in an explicit write transaction. Any error or panic
// from fn rolls the whole transaction back; fn's error is returned as is.
func (db *DB) WithWriteTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	if db == nil || db.W == nil {
		return fmt.Errorf("%w: write db is not initialized", ErrStorage)
	}
	return runTx(ctx, db.W, &sql.TxOptions{}, fn)
}

// WithReadTx runs fn in an explicit read transaction.
func (db *DB) WithReadTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	if db == nil || db.R == nil {
		return fmt.Errorf("%w: read db is not initialized", ErrStorage)
	}
	return runTx(ctx, db.R, &sql.TxOptions{ReadOnly: true}, fn)
}

func runTx(ctx context.Context, b *bun.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) (err error) {
	tx, err := b.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", ErrStorage, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		_ = tx.Rollback()
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit tx: %w", ErrStorage, err)
	}
	committed = true
	return nil
}
