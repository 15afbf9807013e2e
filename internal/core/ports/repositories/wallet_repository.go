package repositories

import (
	"context"
	"time"

	"github.com/quidflow/wallet_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletRepositoryFacade covers wallet reads and lifecycle changes that run
// outside an explicit transaction.
type WalletRepositoryFacade interface {
	// SaveWallet inserts a new wallet row. Returns ErrDuplicate if a live
	// wallet for the same (owner, currency) already exists.
	SaveWallet(ctx context.Context, wallet domain.Wallet) error
	// FindWalletByID retrieves a wallet by its id, excluding soft-deleted rows.
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)
	// FindWalletByOwner retrieves the owner's wallet for a currency. With an
	// empty currency it returns the owner's earliest-created wallet.
	FindWalletByOwner(ctx context.Context, userID, currency string) (*domain.Wallet, error)
	// ListWalletsByOwner returns all live wallets for an owner, optionally
	// filtered by currency, newest first.
	ListWalletsByOwner(ctx context.Context, userID, currency string) ([]domain.Wallet, error)
	// ListAllWallets returns all live wallets, newest first.
	ListAllWallets(ctx context.Context, limit, offset int) ([]domain.Wallet, error)
	// SetWalletStatus flips the active flag.
	SetWalletStatus(ctx context.Context, walletID string, active bool, updatedAt time.Time) error
	// SoftDeleteWallet marks the wallet deleted. Callers must have verified a
	// zero balance first.
	SoftDeleteWallet(ctx context.Context, walletID string, deletedAt time.Time) error
}

// WalletRepositoryWithTx adds the transactional primitives the orchestrator
// uses: begin/lock/mutate inside one store transaction.
type WalletRepositoryWithTx interface {
	WalletRepositoryFacade

	// BeginTx opens a store transaction with the given statement timeout. A
	// lock wait or statement exceeding it aborts the transaction.
	BeginTx(ctx context.Context, statementTimeout time.Duration) (Tx, error)
	// LockWalletForUpdate takes a row-level exclusive lock on the owner's
	// wallet for the currency, blocking other lockers until the enclosing
	// transaction ends.
	LockWalletForUpdate(ctx context.Context, tx Tx, userID, currency string) (*domain.Wallet, error)
	// LockWalletsForUpdate locks the wallets of several owners for one
	// currency in a single statement, ordered by ascending wallet id so that
	// concurrent multi-wallet operations cannot deadlock each other.
	LockWalletsForUpdate(ctx context.Context, tx Tx, userIDs []string, currency string) (map[string]domain.Wallet, error)
	// UpdateBalanceInTx sets the wallet balance. Called only after validation,
	// inside the transaction that holds the row lock.
	UpdateBalanceInTx(ctx context.Context, tx Tx, walletID string, newBalance decimal.Decimal, updatedAt time.Time) error
}
