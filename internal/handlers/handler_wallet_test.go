package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/quidflow/wallet_backend/internal/apperrors"
	"github.com/quidflow/wallet_backend/internal/core/domain"
	portssvc "github.com/quidflow/wallet_backend/internal/core/ports/services"
	"github.com/quidflow/wallet_backend/internal/dto"
	"github.com/quidflow/wallet_backend/internal/handlers"
	"github.com/quidflow/wallet_backend/internal/platform/config"
)

type WalletHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockWalletSvc *MockWalletService
	mockLedgerSvc *MockLedgerService
	mockTxnSvc    *MockTransactionService
	userID        string
}

func (suite *WalletHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.userID = uuid.NewString()

	suite.mockWalletSvc = new(MockWalletService)
	suite.mockLedgerSvc = new(MockLedgerService)
	suite.mockTxnSvc = new(MockTransactionService)

	cfg := &config.Config{JWTSecret: testJWTSecret, JWTIssuer: "wallet-test"}
	services := &portssvc.ServiceContainer{
		Wallet:      suite.mockWalletSvc,
		Ledger:      suite.mockLedgerSvc,
		Transaction: suite.mockTxnSvc,
	}
	handlers.RegisterRoutes(suite.router, cfg, services, nil)
}

func (suite *WalletHandlerTestSuite) TestCreateWallet() {
	now := time.Now()
	wallet := &domain.Wallet{
		WalletID: uuid.NewString(),
		UserID:   suite.userID,
		Currency: "USD",
		Balance:  decimal.Zero,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	suite.mockWalletSvc.On("CreateWallet", mock.Anything, suite.userID, "USD").Return(wallet, nil)

	token := generateTestToken(suite.userID, []string{"user"})
	w := doRequest(suite.router, http.MethodPost, "/api/v1/wallet", token, gin.H{"currency": "USD"})

	suite.Equal(http.StatusCreated, w.Code)

	var body map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	suite.Equal(wallet.WalletID, data["id"])
	suite.Equal("USD", data["currency"])
}

func (suite *WalletHandlerTestSuite) TestCreateWalletDuplicate() {
	suite.mockWalletSvc.On("CreateWallet", mock.Anything, suite.userID, "").
		Return(nil, fmt.Errorf("%w: a USD wallet already exists", apperrors.ErrDuplicate))

	token := generateTestToken(suite.userID, []string{"user"})
	w := doRequest(suite.router, http.MethodPost, "/api/v1/wallet", token, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *WalletHandlerTestSuite) TestListWalletsEmpty() {
	suite.mockWalletSvc.On("ListOwnWallets", mock.Anything, suite.userID, "").
		Return([]domain.Wallet{}, nil)

	token := generateTestToken(suite.userID, []string{"user"})
	w := doRequest(suite.router, http.MethodGet, "/api/v1/wallet", token, nil)

	suite.Equal(http.StatusNotFound, w.Code)

	var body map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(false, body["success"])
}

func (suite *WalletHandlerTestSuite) TestDeleteWalletNonZeroBalance() {
	suite.mockWalletSvc.On("DeleteOwnWallet", mock.Anything, suite.userID, "").
		Return(fmt.Errorf("%w: wallet balance must be zero before deletion", apperrors.ErrValidation))

	token := generateTestToken(suite.userID, []string{"user"})
	w := doRequest(suite.router, http.MethodDelete, "/api/v1/wallet", token, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *WalletHandlerTestSuite) TestListTransactions() {
	entries := []domain.LedgerEntry{
		{
			EntryID:         uuid.NewString(),
			WalletID:        uuid.NewString(),
			Kind:            domain.Credit,
			Amount:          decimal.NewFromInt(50),
			BalanceSnapshot: decimal.NewFromInt(50),
			ReferenceID:     "ref-1",
			PerformedBy:     suite.userID,
			Role:            "user",
			CreatedAt:       time.Now(),
		},
	}
	suite.mockLedgerSvc.On("ListEntriesForUser", mock.Anything, suite.userID, mock.AnythingOfType("dto.ListTransactionsParams")).
		Return(entries, int64(1), nil)

	token := generateTestToken(suite.userID, []string{"user"})
	w := doRequest(suite.router, http.MethodGet, "/api/v1/wallet/transactions", token, nil)

	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		Success bool                        `json:"success"`
		Data    dto.TransactionListResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.Success)
	suite.Len(body.Data.Transactions, 1)
	suite.Equal(int64(1), body.Data.Pagination.TotalCount)
	suite.Equal(50, body.Data.Pagination.Limit)
	suite.False(body.Data.Pagination.HasMore)
}

func (suite *WalletHandlerTestSuite) TestListTransactionsNoWallet() {
	suite.mockLedgerSvc.On("ListEntriesForUser", mock.Anything, suite.userID, mock.AnythingOfType("dto.ListTransactionsParams")).
		Return(nil, int64(0), apperrors.NewNotFoundError("no wallet found for user"))

	token := generateTestToken(suite.userID, []string{"user"})
	w := doRequest(suite.router, http.MethodGet, "/api/v1/wallet/transactions", token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *WalletHandlerTestSuite) TestAdminListTransactionsEmpty() {
	suite.mockLedgerSvc.On("ListAllEntries", mock.Anything, mock.AnythingOfType("dto.ListTransactionsParams")).
		Return([]domain.LedgerEntry{}, int64(0), nil)

	token := generateTestToken(suite.userID, []string{"finance_admin"})
	w := doRequest(suite.router, http.MethodGet, "/api/v1/admin/transactions", token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *WalletHandlerTestSuite) TestAdminStatusChangeForbiddenForUser() {
	token := generateTestToken(suite.userID, []string{"user"})
	w := doRequest(suite.router, http.MethodPut, "/api/v1/admin/wallets/"+uuid.NewString()+"/deactivate", token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockWalletSvc.AssertNotCalled(suite.T(), "SetWalletStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletHandlerTestSuite) TestAdminStatusChangeAllowedForFinanceAdmin() {
	walletID := uuid.NewString()
	suite.mockWalletSvc.On("SetWalletStatus", mock.Anything, walletID, false).Return(nil)

	token := generateTestToken(suite.userID, []string{"finance_admin"})
	w := doRequest(suite.router, http.MethodPut, "/api/v1/admin/wallets/"+walletID+"/deactivate", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockWalletSvc.AssertExpectations(suite.T())
}

func TestWalletHandler(t *testing.T) {
	suite.Run(t, new(WalletHandlerTestSuite))
}
