package db

import (
	"context"
	"database/sql"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/pkg/errors"
)

type TxFn func(boil.ContextExecutor) error

// WithTransaction runs f inside a transaction. The transaction is rolled back when f
// returns an error or panics, and committed otherwise.
func WithTransaction(ctx context.Context, db *sql.DB, f TxFn) error {
	return WithConfiguredTransaction(ctx, db, nil, f)
}

func WithConfiguredTransaction(ctx context.Context, db *sql.DB, options *sql.TxOptions, f TxFn) (err error) {
	tx, err := db.BeginTx(ctx, options)
	if err != nil {
		util.LogFromContext(ctx).Warn().Err(err).Msg("Failed to start transaction")
		return errors.Wrap(err, "failed to start transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			util.LogFromContext(ctx).Error().Interface("p", p).Msg("Recovered from panic, rolling back transaction and panicking again")

			if txErr := tx.Rollback(); txErr != nil {
				util.LogFromContext(ctx).Warn().Err(txErr).Msg("Failed to roll back transaction after recovering from panic")
			}

			panic(p)
		} else if err != nil {
			util.LogFromContext(ctx).Warn().Err(err).Msg("Received error, rolling back transaction")

			if txErr := tx.Rollback(); txErr != nil {
				util.LogFromContext(ctx).Warn().Err(txErr).Msg("Failed to roll back transaction after receiving error")
			}
		} else {
			err = tx.Commit()
			if err != nil {
				util.LogFromContext(ctx).Warn().Err(err).Msg("Failed to commit transaction")
			}
		}
	}()

	err = f(tx)

	return err
}

// ExecutorFromContext returns the transaction attached by ContextWithExecutor, if any.
func ExecutorFromContext(ctx context.Context) (boil.ContextExecutor, bool) {
	exec, ok := ctx.Value(util.CTXKeyPGTx).(boil.ContextExecutor)
	return exec, ok
}

func ContextWithExecutor(ctx context.Context, exec boil.ContextExecutor) context.Context {
	return context.WithValue(ctx, util.CTXKeyPGTx, exec)
}
