package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/quidflow/wallet_backend/internal/apperrors"
	"github.com/quidflow/wallet_backend/internal/core/domain"
	portsrepo "github.com/quidflow/wallet_backend/internal/core/ports/repositories"
	"github.com/quidflow/wallet_backend/internal/core/services"
	"github.com/quidflow/wallet_backend/internal/dto"
)

func newLedgerServiceForTest() (*MockLedgerRepository, *MockWalletRepository, func(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.LedgerEntry, int64, error)) {
	ledgerRepo := new(MockLedgerRepository)
	walletRepo := new(MockWalletRepository)
	svc := services.NewLedgerService(ledgerRepo, walletRepo, services.NewAmountNormalizer(testWalletSettings()))
	return ledgerRepo, walletRepo, svc.ListEntriesForUser
}

func TestListEntriesForUser(t *testing.T) {
	userID := uuid.NewString()
	walletID := uuid.NewString()
	wallets := []domain.Wallet{{WalletID: walletID, UserID: userID, Currency: "USD"}}

	t.Run("no wallets yields not found", func(t *testing.T) {
		_, walletRepo, list := newLedgerServiceForTest()
		walletRepo.On("ListWalletsByOwner", mock.Anything, userID, "").Return([]domain.Wallet{}, nil)

		_, _, err := list(context.Background(), userID, dto.ListTransactionsParams{})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("defaults limit and scopes to user wallets", func(t *testing.T) {
		ledgerRepo, walletRepo, list := newLedgerServiceForTest()
		walletRepo.On("ListWalletsByOwner", mock.Anything, userID, "").Return(wallets, nil)

		matchFilter := mock.MatchedBy(func(f portsrepo.LedgerFilter) bool {
			return len(f.WalletIDs) == 1 && f.WalletIDs[0] == walletID && f.Limit == 50 && f.Offset == 0
		})
		ledgerRepo.On("ListEntries", mock.Anything, matchFilter).Return([]domain.LedgerEntry{}, nil)
		ledgerRepo.On("CountEntries", mock.Anything, matchFilter).Return(int64(0), nil)

		_, total, err := list(context.Background(), userID, dto.ListTransactionsParams{})

		assert.NoError(t, err)
		assert.Equal(t, int64(0), total)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("caps limit at 100", func(t *testing.T) {
		ledgerRepo, walletRepo, list := newLedgerServiceForTest()
		walletRepo.On("ListWalletsByOwner", mock.Anything, userID, "").Return(wallets, nil)

		matchFilter := mock.MatchedBy(func(f portsrepo.LedgerFilter) bool { return f.Limit == 100 })
		ledgerRepo.On("ListEntries", mock.Anything, matchFilter).Return([]domain.LedgerEntry{}, nil)
		ledgerRepo.On("CountEntries", mock.Anything, matchFilter).Return(int64(0), nil)

		_, _, err := list(context.Background(), userID, dto.ListTransactionsParams{Limit: 500})

		assert.NoError(t, err)
	})

	t.Run("kind filter passed through", func(t *testing.T) {
		ledgerRepo, walletRepo, list := newLedgerServiceForTest()
		walletRepo.On("ListWalletsByOwner", mock.Anything, userID, "").Return(wallets, nil)

		matchFilter := mock.MatchedBy(func(f portsrepo.LedgerFilter) bool {
			return f.Kind != nil && *f.Kind == domain.Credit
		})
		ledgerRepo.On("ListEntries", mock.Anything, matchFilter).Return([]domain.LedgerEntry{}, nil)
		ledgerRepo.On("CountEntries", mock.Anything, matchFilter).Return(int64(0), nil)

		_, _, err := list(context.Background(), userID, dto.ListTransactionsParams{Type: "credit"})

		assert.NoError(t, err)
	})

	t.Run("kind filter accepts any letter case", func(t *testing.T) {
		ledgerRepo, walletRepo, list := newLedgerServiceForTest()
		walletRepo.On("ListWalletsByOwner", mock.Anything, userID, "").Return(wallets, nil)

		matchFilter := mock.MatchedBy(func(f portsrepo.LedgerFilter) bool {
			return f.Kind != nil && *f.Kind == domain.Credit
		})
		ledgerRepo.On("ListEntries", mock.Anything, matchFilter).Return([]domain.LedgerEntry{}, nil)
		ledgerRepo.On("CountEntries", mock.Anything, matchFilter).Return(int64(0), nil)

		_, _, err := list(context.Background(), userID, dto.ListTransactionsParams{Type: "CREDIT"})

		assert.NoError(t, err)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		ledgerRepo, walletRepo, list := newLedgerServiceForTest()
		walletRepo.On("ListWalletsByOwner", mock.Anything, userID, "").Return(wallets, nil)

		_, _, err := list(context.Background(), userID, dto.ListTransactionsParams{Type: "refund"})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		ledgerRepo.AssertNotCalled(t, "ListEntries", mock.Anything, mock.Anything)
	})

	t.Run("invalid currency rejected before wallet lookup", func(t *testing.T) {
		_, walletRepo, list := newLedgerServiceForTest()

		_, _, err := list(context.Background(), userID, dto.ListTransactionsParams{Currency: "XXX"})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		walletRepo.AssertNotCalled(t, "ListWalletsByOwner", mock.Anything, mock.Anything, mock.Anything)
	})
}
