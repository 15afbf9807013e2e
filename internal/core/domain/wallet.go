package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet represents a per-user, per-currency monetary balance record.
// At most one live wallet exists per (owner, currency) pair, and the balance
// is never negative. Balance changes only flow through the transaction
// orchestrator, never through direct writes.
type Wallet struct {
	WalletID string          `json:"walletID"` // Primary Key (UUID)
	UserID   string          `json:"userID"`   // Owning user (opaque id from the identity layer)
	Currency string          `json:"currency"` // 3-letter code from the supported set
	Balance  decimal.Decimal `json:"balance"`
	IsActive bool            `json:"isActive"` // Inactive wallets reject all balance mutations
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete; only set while balance is zero
}
