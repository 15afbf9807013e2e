package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quidflow/wallet_backend/internal/apperrors"
	portsrepo "github.com/quidflow/wallet_backend/internal/core/ports/repositories"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction with an explicit statement timeout.
// A lock wait or statement exceeding the timeout aborts the transaction and
// surfaces a retryable error to the caller.
func (r *BaseRepository) Begin(ctx context.Context, statementTimeout time.Duration) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	if statementTimeout > 0 {
		// SET LOCAL scopes the timeout to this transaction only.
		_, err = tx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", statementTimeout.Milliseconds()))
		if err != nil {
			_ = tx.Rollback(ctx)
			return nil, apperrors.NewAppError(500, "failed to set statement timeout", err)
		}
	}
	return tx, nil
}

// pgxTxFrom unwraps the port-level transaction handle back to pgx.Tx.
func pgxTxFrom(tx portsrepo.Tx) (pgx.Tx, error) {
	pgxTx, ok := tx.(pgx.Tx)
	if !ok {
		return nil, apperrors.NewAppError(500, "transaction handle is not a pgx transaction", nil)
	}
	return pgxTx, nil
}
