package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is the database row representation of a wallet.
type Wallet struct {
	WalletID  string          `db:"wallet_id"`
	UserID    string          `db:"user_id"`
	Currency  string          `db:"currency"`
	Balance   decimal.Decimal `db:"balance"`
	IsActive  bool            `db:"is_active"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
	DeletedAt *time.Time      `db:"deleted_at"`
}
