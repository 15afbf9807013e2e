package dto

import (
	"time"

	"github.com/quidflow/wallet_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWalletRequest defines the data needed to create a new wallet.
// Currency defaults to the primary supported currency when omitted.
type CreateWalletRequest struct {
	Currency string `json:"currency"`
}

// WalletResponse defines the data returned for a wallet.
type WalletResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"createdAt"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		ID:          w.WalletID,
		UserID:      w.UserID,
		Currency:    w.Currency,
		Balance:     w.Balance,
		Active:      w.IsActive,
		CreatedAt:   w.CreatedAt,
		LastUpdated: w.LastUpdatedAt,
	}
}

// ToWalletResponses converts a slice of domain.Wallet to responses.
func ToWalletResponses(wallets []domain.Wallet) []WalletResponse {
	res := make([]WalletResponse, len(wallets))
	for i := range wallets {
		res[i] = ToWalletResponse(&wallets[i])
	}
	return res
}

// ListWalletsParams defines query parameters for admin wallet listing.
type ListWalletsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}
