package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the database row representation of a transactions record.
// Rows are append-only and never updated or deleted.
type LedgerEntry struct {
	EntryID         string            `db:"entry_id"`
	WalletID        string            `db:"wallet_id"`
	Kind            string            `db:"kind"`
	Amount          decimal.Decimal   `db:"amount"`
	BalanceSnapshot decimal.Decimal   `db:"balance_snapshot"`
	ReferenceID     string            `db:"reference_id"`
	PerformedBy     string            `db:"performed_by"`
	Role            string            `db:"role"`
	Metadata        map[string]string `db:"metadata"` // JSONB
	CreatedAt       time.Time         `db:"created_at"`
}
