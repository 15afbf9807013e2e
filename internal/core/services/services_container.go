package services

import (
	portsrepo "github.com/quidflow/wallet_backend/internal/core/ports/repositories"
	portssvc "github.com/quidflow/wallet_backend/internal/core/ports/services"
	"github.com/quidflow/wallet_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The normalizer is shared: wallet creation, history filtering and every
	// balance mutation validate currency and amounts through the same rules.
	normalizer := NewAmountNormalizer(cfg.Wallet)

	container.Wallet = NewWalletService(repos.WalletRepo, normalizer)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.WalletRepo, normalizer)
	container.Transaction = NewTransactionService(repos.WalletRepo, repos.LedgerRepo, normalizer, cfg.Wallet)

	return container
}

// Compile time checks that the concrete services satisfy their facades.
var (
	_ portssvc.WalletSvcFacade      = (*walletService)(nil)
	_ portssvc.LedgerSvcFacade      = (*ledgerService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
)
