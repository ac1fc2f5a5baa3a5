package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ruslan-korneev/lingooru-sub000/internal/platform/logger"
)

// TxFn is a function that executes within a database transaction.
// The transaction is committed if the function returns nil, or rolled back
// if it returns an error.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// TxRunner executes functions within a transactional boundary. Services
// depend on this interface so tests can substitute a pass-through runner.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn TxFn) error
}

// SQLRunner is the production TxRunner backed by a *sql.DB.
type SQLRunner struct {
	db *sql.DB
}

// NewSQLRunner creates a TxRunner over the given database handle.
func NewSQLRunner(db *sql.DB) *SQLRunner {
	if db == nil {
		panic("db cannot be nil")
	}
	return &SQLRunner{db: db}
}

// Ensure SQLRunner implements TxRunner
var _ TxRunner = (*SQLRunner)(nil)

// RunInTransaction implements TxRunner.
func (r *SQLRunner) RunInTransaction(ctx context.Context, fn TxFn) error {
	return RunInTransaction(ctx, r.db, fn)
}

// RunInTransaction executes the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// Otherwise, the transaction is committed. Panics roll back and re-panic.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction",
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if txErr := tx.Rollback(); txErr != nil {
				log.Error("failed to roll back transaction after panic",
					slog.String("error", txErr.Error()),
					slog.Any("panic", p))
			}
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			log.Error("failed to roll back transaction",
				slog.String("rollback_error", rollbackErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf(
				"error rolling back transaction: %v (original error: %w)",
				rollbackErr,
				err,
			)
		}
		log.Debug("rolled back transaction due to error",
			slog.String("error", err.Error()))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction",
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
