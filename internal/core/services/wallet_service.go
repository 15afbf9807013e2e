package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quidflow/wallet_backend/internal/apperrors"
	"github.com/quidflow/wallet_backend/internal/core/domain"
	portsrepo "github.com/quidflow/wallet_backend/internal/core/ports/repositories"
	portssvc "github.com/quidflow/wallet_backend/internal/core/ports/services"
	"github.com/quidflow/wallet_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// walletService manages wallet lifecycle. It never touches balances beyond
// the zero-balance check that gates deletion.
type walletService struct {
	walletRepo portsrepo.WalletRepositoryFacade
	normalizer *AmountNormalizer
}

// NewWalletService creates a new WalletService.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade, normalizer *AmountNormalizer) portssvc.WalletSvcFacade {
	return &walletService{
		walletRepo: walletRepo,
		normalizer: normalizer,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// CreateWallet creates a wallet for the user in the given currency. An empty
// currency resolves to the default. Creating a second live wallet for the
// same (user, currency) pair fails with ErrDuplicate.
func (s *walletService) CreateWallet(ctx context.Context, userID, currency string) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	normalized, err := s.normalizer.NormalizeCurrency(currency)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	wallet := domain.Wallet{
		WalletID: uuid.NewString(),
		UserID:   userID,
		Currency: normalized,
		Balance:  decimal.Zero,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.walletRepo.SaveWallet(ctx, wallet); err != nil {
		logger.Error("Failed to create wallet", "error", err, "currency", normalized)
		return nil, err
	}

	logger.Info("Wallet created", "wallet_id", wallet.WalletID, "currency", normalized)
	return &wallet, nil
}

// ListOwnWallets returns the caller's live wallets, optionally filtered by
// currency.
func (s *walletService) ListOwnWallets(ctx context.Context, userID, currency string) ([]domain.Wallet, error) {
	if currency != "" {
		normalized, err := s.normalizer.NormalizeCurrency(currency)
		if err != nil {
			return nil, err
		}
		currency = normalized
	}
	return s.walletRepo.ListWalletsByOwner(ctx, userID, currency)
}

// DeleteOwnWallet soft-deletes the caller's wallet for the currency. Only a
// zero-balance wallet may be deleted; anything else would orphan money.
func (s *walletService) DeleteOwnWallet(ctx context.Context, userID, currency string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if currency != "" {
		normalized, err := s.normalizer.NormalizeCurrency(currency)
		if err != nil {
			return err
		}
		currency = normalized
	}

	wallet, err := s.walletRepo.FindWalletByOwner(ctx, userID, currency)
	if err != nil {
		return err
	}

	if !wallet.Balance.IsZero() {
		return fmt.Errorf("%w: wallet balance must be zero before deletion, current balance is %s %s",
			apperrors.ErrValidation, wallet.Balance, wallet.Currency)
	}

	if err := s.walletRepo.SoftDeleteWallet(ctx, wallet.WalletID, time.Now()); err != nil {
		logger.Error("Failed to delete wallet", "error", err, "wallet_id", wallet.WalletID)
		return err
	}

	logger.Info("Wallet deleted", "wallet_id", wallet.WalletID, "currency", wallet.Currency)
	return nil
}

// GetWalletByID fetches one wallet by id for administrative views.
func (s *walletService) GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	return s.walletRepo.FindWalletByID(ctx, walletID)
}

// ListUserWallets returns all live wallets of the given user.
func (s *walletService) ListUserWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	return s.walletRepo.ListWalletsByOwner(ctx, userID, "")
}

// ListAllWallets returns a page of every live wallet in the system.
func (s *walletService) ListAllWallets(ctx context.Context, limit, offset int) ([]domain.Wallet, error) {
	return s.walletRepo.ListAllWallets(ctx, limit, offset)
}

// SetWalletStatus activates or deactivates a wallet. Deactivation freezes
// balance mutations but never hides history.
func (s *walletService) SetWalletStatus(ctx context.Context, walletID string, active bool) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.walletRepo.SetWalletStatus(ctx, walletID, active, time.Now()); err != nil {
		logger.Error("Failed to update wallet status", "error", err, "wallet_id", walletID, "active", active)
		return err
	}

	logger.Info("Wallet status updated", "wallet_id", walletID, "active", active)
	return nil
}
