package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/quidflow/wallet_backend/internal/core/domain"
	portsrepo "github.com/quidflow/wallet_backend/internal/core/ports/repositories"
	"github.com/quidflow/wallet_backend/internal/platform/config"
)

// testWalletSettings is the validation config used across the service tests.
func testWalletSettings() config.WalletSettings {
	return config.WalletSettings{
		DecimalPlaces:       2,
		MinAmount:           decimal.RequireFromString("0.01"),
		MaxAmount:           decimal.NewFromInt(1000000),
		SupportedCurrencies: []string{"USD", "EUR", "GBP", "NGN", "KES"},
		LockTimeout:         5 * time.Second,
	}
}

// --- Mock Tx ---
type MockTx struct {
	mock.Mock
}

var _ portsrepo.Tx = (*MockTx)(nil)

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock WalletRepository ---
type MockWalletRepository struct {
	mock.Mock
}

var _ portsrepo.WalletRepositoryWithTx = (*MockWalletRepository)(nil)

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindWalletByOwner(ctx context.Context, userID, currency string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListWalletsByOwner(ctx context.Context, userID, currency string) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListAllWallets(ctx context.Context, limit, offset int) ([]domain.Wallet, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) SetWalletStatus(ctx context.Context, walletID string, active bool, updatedAt time.Time) error {
	args := m.Called(ctx, walletID, active, updatedAt)
	return args.Error(0)
}

func (m *MockWalletRepository) SoftDeleteWallet(ctx context.Context, walletID string, deletedAt time.Time) error {
	args := m.Called(ctx, walletID, deletedAt)
	return args.Error(0)
}

func (m *MockWalletRepository) BeginTx(ctx context.Context, statementTimeout time.Duration) (portsrepo.Tx, error) {
	args := m.Called(ctx, statementTimeout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(portsrepo.Tx), args.Error(1)
}

func (m *MockWalletRepository) LockWalletForUpdate(ctx context.Context, tx portsrepo.Tx, userID, currency string) (*domain.Wallet, error) {
	args := m.Called(ctx, tx, userID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) LockWalletsForUpdate(ctx context.Context, tx portsrepo.Tx, userIDs []string, currency string) (map[string]domain.Wallet, error) {
	args := m.Called(ctx, tx, userIDs, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) UpdateBalanceInTx(ctx context.Context, tx portsrepo.Tx, walletID string, newBalance decimal.Decimal, updatedAt time.Time) error {
	args := m.Called(ctx, tx, walletID, newBalance, updatedAt)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) AppendEntryInTx(ctx context.Context, tx portsrepo.Tx, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, filter portsrepo.LedgerFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) CountEntries(ctx context.Context, filter portsrepo.LedgerFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
