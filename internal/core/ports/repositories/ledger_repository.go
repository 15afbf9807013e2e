package repositories

import (
	"context"
	"time"

	"github.com/quidflow/wallet_backend/internal/core/domain"
)

// LedgerFilter narrows ledger entry queries. Zero-valued fields are ignored.
type LedgerFilter struct {
	WalletIDs []string
	Kind      *domain.EntryKind
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// LedgerRepositoryFacade owns the append-only transactions table.
type LedgerRepositoryFacade interface {
	// AppendEntryInTx inserts one immutable entry inside the caller's open
	// transaction so it commits or rolls back atomically with the balance
	// mutation it documents. Returns ErrDuplicate when the (wallet,
	// reference id) pair was already used.
	AppendEntryInTx(ctx context.Context, tx Tx, entry domain.LedgerEntry) (*domain.LedgerEntry, error)
	// ListEntries returns entries matching the filter, newest first.
	ListEntries(ctx context.Context, filter LedgerFilter) ([]domain.LedgerEntry, error)
	// CountEntries returns the total matching the filter, for pagination.
	CountEntries(ctx context.Context, filter LedgerFilter) (int64, error)
}
