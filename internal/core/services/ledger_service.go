package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/quidflow/wallet_backend/internal/apperrors"
	"github.com/quidflow/wallet_backend/internal/core/domain"
	portsrepo "github.com/quidflow/wallet_backend/internal/core/ports/repositories"
	portssvc "github.com/quidflow/wallet_backend/internal/core/ports/services"
	"github.com/quidflow/wallet_backend/internal/dto"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100
)

// ledgerService serves read-only history queries over the append-only ledger.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	walletRepo portsrepo.WalletRepositoryFacade
	normalizer *AmountNormalizer
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, walletRepo portsrepo.WalletRepositoryFacade, normalizer *AmountNormalizer) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		walletRepo: walletRepo,
		normalizer: normalizer,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// clampPage normalizes limit/offset: default limit 50, cap 100, never negative.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// buildFilter converts request params into a repository filter. The type
// filter is matched case-insensitively.
func (s *ledgerService) buildFilter(params dto.ListTransactionsParams, walletIDs []string) (portsrepo.LedgerFilter, error) {
	limit, offset := clampPage(params.Limit, params.Offset)
	filter := portsrepo.LedgerFilter{
		WalletIDs: walletIDs,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Limit:     limit,
		Offset:    offset,
	}
	if params.Type != "" {
		kind := domain.EntryKind(strings.ToLower(params.Type))
		if kind != domain.Credit && kind != domain.Debit {
			return portsrepo.LedgerFilter{}, fmt.Errorf("%w: type must be %q or %q", apperrors.ErrValidation, domain.Credit, domain.Debit)
		}
		filter.Kind = &kind
	}
	return filter, nil
}

// ListEntriesForUser returns a page of the user's ledger entries across their
// wallets, newest first, plus the unpaginated total.
func (s *ledgerService) ListEntriesForUser(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.LedgerEntry, int64, error) {
	currency := params.Currency
	if currency != "" {
		normalized, err := s.normalizer.NormalizeCurrency(currency)
		if err != nil {
			return nil, 0, err
		}
		currency = normalized
	}

	wallets, err := s.walletRepo.ListWalletsByOwner(ctx, userID, currency)
	if err != nil {
		return nil, 0, err
	}
	if len(wallets) == 0 {
		return nil, 0, fmt.Errorf("%w: no wallet found for user", apperrors.ErrNotFound)
	}

	walletIDs := make([]string, len(wallets))
	for i, w := range wallets {
		walletIDs[i] = w.WalletID
	}

	filter, err := s.buildFilter(params, walletIDs)
	if err != nil {
		return nil, 0, err
	}
	entries, err := s.ledgerRepo.ListEntries(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.ledgerRepo.CountEntries(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListAllEntries returns a system-wide page of ledger entries plus the total.
func (s *ledgerService) ListAllEntries(ctx context.Context, params dto.ListTransactionsParams) ([]domain.LedgerEntry, int64, error) {
	filter, err := s.buildFilter(params, nil)
	if err != nil {
		return nil, 0, err
	}
	entries, err := s.ledgerRepo.ListEntries(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.ledgerRepo.CountEntries(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
