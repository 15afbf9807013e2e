package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quidflow/wallet_backend/internal/apperrors"
	"github.com/quidflow/wallet_backend/internal/core/domain"
	portsrepo "github.com/quidflow/wallet_backend/internal/core/ports/repositories"
	portssvc "github.com/quidflow/wallet_backend/internal/core/ports/services"
	"github.com/quidflow/wallet_backend/internal/dto"
	"github.com/quidflow/wallet_backend/internal/middleware"
	"github.com/quidflow/wallet_backend/internal/platform/config"
)

// transactionService orchestrates every balance mutation. Each operation runs
// inside a single store transaction: lock the wallet rows, validate, update
// balances, append ledger entries, commit. Nothing is ever written outside
// that envelope, so a failure at any step leaves balances and ledger untouched.
type transactionService struct {
	walletRepo portsrepo.WalletRepositoryWithTx
	ledgerRepo portsrepo.LedgerRepositoryFacade
	normalizer *AmountNormalizer
	settings   config.WalletSettings
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(walletRepo portsrepo.WalletRepositoryWithTx, ledgerRepo portsrepo.LedgerRepositoryFacade, normalizer *AmountNormalizer, settings config.WalletSettings) portssvc.TransactionSvcFacade {
	return &transactionService{
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		normalizer: normalizer,
		settings:   settings,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// entryMetadata builds the metadata recorded on a ledger entry: the caller's
// network context plus the operation source and correlation id. extra pairs
// override nothing; they add transfer counterparty fields.
func entryMetadata(base map[string]string, source, txnID string, extra map[string]string) map[string]string {
	meta := make(map[string]string, len(base)+len(extra)+2)
	for k, v := range base {
		meta[k] = v
	}
	meta[domain.MetaSource] = source
	meta[domain.MetaTransactionID] = txnID
	for k, v := range extra {
		meta[k] = v
	}
	return meta
}

// checkMutable rejects mutations against inactive wallets.
func checkMutable(wallet *domain.Wallet) error {
	if !wallet.IsActive {
		return fmt.Errorf("%w: wallet %s is deactivated", apperrors.ErrWalletInactive, wallet.WalletID)
	}
	return nil
}

// Deposit credits the actor's wallet for the currency and appends the
// matching ledger entry atomically.
func (s *transactionService) Deposit(ctx context.Context, actor domain.Actor, txnID, currency string, amount decimal.Decimal, referenceID string, meta map[string]string) (*dto.TransactionResult, error) {
	return s.singleWalletOp(ctx, actor, txnID, currency, amount, referenceID, meta, domain.Credit, "deposit")
}

// Withdraw debits the actor's wallet for the currency. The balance is checked
// under the row lock, so concurrent withdrawals cannot overdraw.
func (s *transactionService) Withdraw(ctx context.Context, actor domain.Actor, txnID, currency string, amount decimal.Decimal, referenceID string, meta map[string]string) (*dto.TransactionResult, error) {
	return s.singleWalletOp(ctx, actor, txnID, currency, amount, referenceID, meta, domain.Debit, "withdrawal")
}

// singleWalletOp is the shared deposit/withdraw path.
func (s *transactionService) singleWalletOp(ctx context.Context, actor domain.Actor, txnID, currency string, amount decimal.Decimal, referenceID string, meta map[string]string, kind domain.EntryKind, source string) (*dto.TransactionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	normalizedAmount, err := s.normalizer.NormalizeAmount(amount)
	if err != nil {
		return nil, err
	}
	normalizedCurrency, err := s.normalizer.NormalizeCurrency(currency)
	if err != nil {
		return nil, err
	}
	if referenceID == "" {
		referenceID = txnID
	}

	tx, err := s.walletRepo.BeginTx(ctx, s.settings.LockTimeout)
	if err != nil {
		logger.Error("Failed to begin transaction", "error", err, "transaction_id", txnID)
		return nil, fmt.Errorf("%w: failed to begin transaction", apperrors.ErrInternal)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	wallet, err := s.walletRepo.LockWalletForUpdate(ctx, tx, actor.UserID, normalizedCurrency)
	if err != nil {
		return nil, err
	}
	if err := checkMutable(wallet); err != nil {
		return nil, err
	}

	var newBalance decimal.Decimal
	if kind == domain.Credit {
		newBalance = wallet.Balance.Add(normalizedAmount)
	} else {
		if wallet.Balance.LessThan(normalizedAmount) {
			return nil, fmt.Errorf("%w: balance is %s %s, requested %s",
				apperrors.ErrInsufficientBalance, wallet.Balance, wallet.Currency, normalizedAmount)
		}
		newBalance = wallet.Balance.Sub(normalizedAmount)
	}

	now := time.Now()
	if err := s.walletRepo.UpdateBalanceInTx(ctx, tx, wallet.WalletID, newBalance, now); err != nil {
		logger.Error("Failed to update balance", "error", err, "transaction_id", txnID, "wallet_id", wallet.WalletID)
		return nil, err
	}

	entry := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		WalletID:        wallet.WalletID,
		Kind:            kind,
		Amount:          normalizedAmount,
		BalanceSnapshot: newBalance,
		ReferenceID:     referenceID,
		PerformedBy:     actor.UserID,
		Role:            actor.PrimaryRole(),
		Metadata:        entryMetadata(meta, source, txnID, nil),
		CreatedAt:       now,
	}
	if _, err := s.ledgerRepo.AppendEntryInTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Failed to commit transaction", "error", err, "transaction_id", txnID)
		return nil, fmt.Errorf("%w: failed to commit transaction", apperrors.ErrInternal)
	}

	logger.Info("Transaction committed",
		"transaction_id", txnID,
		"source", source,
		"wallet_id", wallet.WalletID,
		"amount", normalizedAmount.String(),
		"currency", normalizedCurrency,
	)

	return &dto.TransactionResult{
		TransactionID: txnID,
		Amount:        normalizedAmount,
		Currency:      normalizedCurrency,
		NewBalance:    newBalance,
		ReferenceID:   referenceID,
	}, nil
}

// Transfer moves money between two users' wallets of the same currency. Both
// rows are locked in one statement in ascending wallet id order, so two
// opposite transfers between the same pair cannot deadlock. Two ledger
// entries sharing the reference id record the two sides.
func (s *transactionService) Transfer(ctx context.Context, actor domain.Actor, txnID, recipientID, currency string, amount decimal.Decimal, referenceID string, meta map[string]string) (*dto.TransferResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if recipientID == actor.UserID {
		return nil, fmt.Errorf("%w: cannot transfer to your own wallet", apperrors.ErrValidation)
	}

	normalizedAmount, err := s.normalizer.NormalizeAmount(amount)
	if err != nil {
		return nil, err
	}
	normalizedCurrency, err := s.normalizer.NormalizeCurrency(currency)
	if err != nil {
		return nil, err
	}
	if referenceID == "" {
		referenceID = txnID
	}

	tx, err := s.walletRepo.BeginTx(ctx, s.settings.LockTimeout)
	if err != nil {
		logger.Error("Failed to begin transaction", "error", err, "transaction_id", txnID)
		return nil, fmt.Errorf("%w: failed to begin transaction", apperrors.ErrInternal)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	wallets, err := s.walletRepo.LockWalletsForUpdate(ctx, tx, []string{actor.UserID, recipientID}, normalizedCurrency)
	if err != nil {
		return nil, err
	}
	sender := wallets[actor.UserID]
	recipient := wallets[recipientID]

	if err := checkMutable(&sender); err != nil {
		return nil, err
	}
	if err := checkMutable(&recipient); err != nil {
		return nil, err
	}
	if sender.Balance.LessThan(normalizedAmount) {
		return nil, fmt.Errorf("%w: balance is %s %s, requested %s",
			apperrors.ErrInsufficientBalance, sender.Balance, sender.Currency, normalizedAmount)
	}

	newSenderBalance := sender.Balance.Sub(normalizedAmount)
	newRecipientBalance := recipient.Balance.Add(normalizedAmount)

	now := time.Now()
	if err := s.walletRepo.UpdateBalanceInTx(ctx, tx, sender.WalletID, newSenderBalance, now); err != nil {
		logger.Error("Failed to update sender balance", "error", err, "transaction_id", txnID)
		return nil, err
	}
	if err := s.walletRepo.UpdateBalanceInTx(ctx, tx, recipient.WalletID, newRecipientBalance, now); err != nil {
		logger.Error("Failed to update recipient balance", "error", err, "transaction_id", txnID)
		return nil, err
	}

	debitEntry := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		WalletID:        sender.WalletID,
		Kind:            domain.Debit,
		Amount:          normalizedAmount,
		BalanceSnapshot: newSenderBalance,
		ReferenceID:     referenceID,
		PerformedBy:     actor.UserID,
		Role:            actor.PrimaryRole(),
		Metadata: entryMetadata(meta, "transfer", txnID, map[string]string{
			domain.MetaTransferType:      domain.TransferOutgoing,
			domain.MetaRecipientWalletID: recipient.WalletID,
			domain.MetaRecipientUserID:   recipient.UserID,
		}),
		CreatedAt: now,
	}
	creditEntry := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		WalletID:        recipient.WalletID,
		Kind:            domain.Credit,
		Amount:          normalizedAmount,
		BalanceSnapshot: newRecipientBalance,
		ReferenceID:     referenceID,
		PerformedBy:     actor.UserID,
		Role:            actor.PrimaryRole(),
		Metadata: entryMetadata(meta, "transfer", txnID, map[string]string{
			domain.MetaTransferType:   domain.TransferIncoming,
			domain.MetaSenderWalletID: sender.WalletID,
			domain.MetaSenderUserID:   sender.UserID,
		}),
		CreatedAt: now,
	}

	if _, err := s.ledgerRepo.AppendEntryInTx(ctx, tx, debitEntry); err != nil {
		return nil, err
	}
	if _, err := s.ledgerRepo.AppendEntryInTx(ctx, tx, creditEntry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Failed to commit transfer", "error", err, "transaction_id", txnID)
		return nil, fmt.Errorf("%w: failed to commit transaction", apperrors.ErrInternal)
	}

	logger.Info("Transfer committed",
		"transaction_id", txnID,
		"sender_wallet_id", sender.WalletID,
		"recipient_wallet_id", recipient.WalletID,
		"amount", normalizedAmount.String(),
		"currency", normalizedCurrency,
	)

	return &dto.TransferResult{
		TransactionID:    txnID,
		Amount:           normalizedAmount,
		Currency:         normalizedCurrency,
		SenderBalance:    newSenderBalance,
		RecipientBalance: newRecipientBalance,
		ReferenceID:      referenceID,
	}, nil
}
