package services

import (
	"context"

	"github.com/quidflow/wallet_backend/internal/core/domain"
	"github.com/quidflow/wallet_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// ServiceContainer holds all services for injection into the handler layer.
type ServiceContainer struct {
	Wallet      WalletSvcFacade
	Ledger      LedgerSvcFacade
	Transaction TransactionSvcFacade
}

// WalletSvcFacade manages wallet lifecycle: creation, listing, soft deletion
// and activation state. Balance mutation is deliberately absent; that is the
// TransactionSvcFacade's job.
type WalletSvcFacade interface {
	CreateWallet(ctx context.Context, userID, currency string) (*domain.Wallet, error)
	ListOwnWallets(ctx context.Context, userID, currency string) ([]domain.Wallet, error)
	DeleteOwnWallet(ctx context.Context, userID, currency string) error
	GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)
	ListUserWallets(ctx context.Context, userID string) ([]domain.Wallet, error)
	ListAllWallets(ctx context.Context, limit, offset int) ([]domain.Wallet, error)
	SetWalletStatus(ctx context.Context, walletID string, active bool) error
}

// LedgerSvcFacade serves read-only ledger history queries.
type LedgerSvcFacade interface {
	// ListEntriesForUser returns a page of entries across the user's wallets
	// (optionally one currency) plus the unpaginated total. ErrNotFound when
	// the user has no matching wallet.
	ListEntriesForUser(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.LedgerEntry, int64, error)
	// ListAllEntries returns a system-wide page of entries plus the total.
	ListAllEntries(ctx context.Context, params dto.ListTransactionsParams) ([]domain.LedgerEntry, int64, error)
}

// TransactionSvcFacade is the orchestrator for balance-mutating operations.
// txnID is the operation's correlation id, generated by the caller up front so
// failed attempts still correlate in logs and responses. meta carries network
// context recorded on the ledger entry.
type TransactionSvcFacade interface {
	Deposit(ctx context.Context, actor domain.Actor, txnID, currency string, amount decimal.Decimal, referenceID string, meta map[string]string) (*dto.TransactionResult, error)
	Withdraw(ctx context.Context, actor domain.Actor, txnID, currency string, amount decimal.Decimal, referenceID string, meta map[string]string) (*dto.TransactionResult, error)
	Transfer(ctx context.Context, actor domain.Actor, txnID, recipientID, currency string, amount decimal.Decimal, referenceID string, meta map[string]string) (*dto.TransferResult, error)
}
