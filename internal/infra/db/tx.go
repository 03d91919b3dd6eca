package db

import (
	"context"
	"errors"
	"log/slog"

	"storefront-cart/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrTransactionBegin  = errs.New("failed to begin transaction")
	ErrTransactionCommit = errs.New("failed to commit transaction")
)

// RunInTx runs fn inside a read-only repeatable read transaction so that
// several reads observe one snapshot.
func RunInTx[T any](ctx context.Context, pool *pgxpool.Pool, fn func(tx DBTX) (T, error)) (T, error) {
	var zero T

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return zero, errs.Mark(err, ErrTransactionBegin)
	}

	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback transaction", "error", rollbackErr)
			}
		}
	}()

	result, err := fn(tx)
	if err != nil {
		return zero, err
	}

	if err = tx.Commit(ctx); err != nil {
		return zero, errs.Mark(err, ErrTransactionCommit)
	}

	return result, nil
}
