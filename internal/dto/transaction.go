package dto

import (
	"time"

	"github.com/quidflow/wallet_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionRequest is the body for deposit and withdraw operations.
type TransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency"`
	ReferenceID string          `json:"referenceId" binding:"omitempty,min=1,max=100"`
}

// TransferRequest is the body for wallet-to-wallet transfers.
type TransferRequest struct {
	RecipientID string          `json:"recipientId" binding:"required,min=1,max=100"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency"`
	ReferenceID string          `json:"referenceId" binding:"omitempty,min=1,max=100"`
}

// TransactionResult is returned by deposit and withdraw.
type TransactionResult struct {
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	NewBalance    decimal.Decimal `json:"newBalance"`
	ReferenceID   string          `json:"referenceId"`
}

// TransferResult is returned by transfer; it carries both new balances.
type TransferResult struct {
	TransactionID    string          `json:"transactionId"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	SenderBalance    decimal.Decimal `json:"senderBalance"`
	RecipientBalance decimal.Decimal `json:"recipientBalance"`
	ReferenceID      string          `json:"referenceId"`
}

// ListTransactionsParams defines query parameters for history queries. Type is
// matched case-insensitively and validated by the ledger service.
type ListTransactionsParams struct {
	Currency  string     `form:"currency"`
	Type      string     `form:"type"`
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit     int        `form:"limit,default=50"`
	Offset    int        `form:"offset,default=0"`
}

// LedgerEntryResponse defines the data returned for one ledger entry.
type LedgerEntryResponse struct {
	ID              string            `json:"id"`
	WalletID        string            `json:"walletId"`
	Type            domain.EntryKind  `json:"type"`
	Amount          decimal.Decimal   `json:"amount"`
	BalanceSnapshot decimal.Decimal   `json:"balanceSnapshot"`
	ReferenceID     string            `json:"referenceId"`
	PerformedBy     string            `json:"performedBy"`
	Role            string            `json:"role"`
	Metadata        map[string]string `json:"metadata"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// Pagination carries limit/offset totals for history responses.
type Pagination struct {
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalCount int64 `json:"totalCount"`
	HasMore    bool  `json:"hasMore"`
}

// TransactionListResponse is a page of ledger entries plus pagination totals.
type TransactionListResponse struct {
	Transactions []LedgerEntryResponse `json:"transactions"`
	Pagination   Pagination            `json:"pagination"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response form.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:              e.EntryID,
		WalletID:        e.WalletID,
		Type:            e.Kind,
		Amount:          e.Amount,
		BalanceSnapshot: e.BalanceSnapshot,
		ReferenceID:     e.ReferenceID,
		PerformedBy:     e.PerformedBy,
		Role:            e.Role,
		Metadata:        e.Metadata,
		CreatedAt:       e.CreatedAt,
	}
}

// ToTransactionListResponse builds the paginated history payload.
func ToTransactionListResponse(entries []domain.LedgerEntry, limit, offset int, total int64) TransactionListResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return TransactionListResponse{
		Transactions: responses,
		Pagination: Pagination{
			Limit:      limit,
			Offset:     offset,
			TotalCount: total,
			HasMore:    int64(offset+limit) < total,
		},
	}
}
