package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quidflow/wallet_backend/internal/core/domain"
	portssvc "github.com/quidflow/wallet_backend/internal/core/ports/services"
	"github.com/quidflow/wallet_backend/internal/dto"
	"github.com/quidflow/wallet_backend/internal/middleware"
	"github.com/quidflow/wallet_backend/internal/utils"
)

// transactionHandler handles the balance-mutating endpoints.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers deposit, withdraw and transfer.
func registerTransactionRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newTransactionHandler(services.Transaction)

	wallet := rg.Group("/wallet")
	{
		wallet.POST("/deposit", middleware.RequirePermission(domain.PermWalletDeposit), h.deposit)
		wallet.POST("/withdraw", middleware.RequirePermission(domain.PermWalletWithdraw), h.withdraw)
		wallet.POST("/transfer", middleware.RequirePermission(domain.PermWalletTransfer), h.transfer)
	}
}

// requestMeta captures the network context recorded on ledger entries.
func requestMeta(c *gin.Context) map[string]string {
	return map[string]string{
		domain.MetaUserAgent: c.Request.UserAgent(),
		domain.MetaIPAddress: c.ClientIP(),
	}
}

// newOperationID generates the correlation id for one money operation. It is
// generated before any work happens so failures still carry it.
func newOperationID(c *gin.Context) (string, bool) {
	txnID, err := utils.GenerateTransactionID()
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to generate transaction id", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return "", false
	}
	return txnID, true
}

// deposit credits the caller's wallet.
func (h *transactionHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, err := middleware.GetActorFromContext(c)
	if err != nil {
		respondError(c, err)
		return
	}

	txnID, ok := newOperationID(c)
	if !ok {
		return
	}

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for deposit", slog.String("error", err.Error()))
		respondOperationError(c, invalidBody(err), txnID)
		return
	}

	result, err := h.transactionService.Deposit(c.Request.Context(), actor, txnID, req.Currency, req.Amount, req.ReferenceID, requestMeta(c))
	if err != nil {
		logger.Warn("Deposit failed", slog.String("error", err.Error()), slog.String("transaction_id", txnID))
		respondOperationError(c, err, txnID)
		return
	}

	c.JSON(http.StatusOK, successResponse("Deposit successful", result))
}

// withdraw debits the caller's wallet.
func (h *transactionHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, err := middleware.GetActorFromContext(c)
	if err != nil {
		respondError(c, err)
		return
	}

	txnID, ok := newOperationID(c)
	if !ok {
		return
	}

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdraw", slog.String("error", err.Error()))
		respondOperationError(c, invalidBody(err), txnID)
		return
	}

	result, err := h.transactionService.Withdraw(c.Request.Context(), actor, txnID, req.Currency, req.Amount, req.ReferenceID, requestMeta(c))
	if err != nil {
		logger.Warn("Withdrawal failed", slog.String("error", err.Error()), slog.String("transaction_id", txnID))
		respondOperationError(c, err, txnID)
		return
	}

	c.JSON(http.StatusOK, successResponse("Withdrawal successful", result))
}

// transfer moves money from the caller's wallet to another user's wallet of
// the same currency.
func (h *transactionHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, err := middleware.GetActorFromContext(c)
	if err != nil {
		respondError(c, err)
		return
	}

	txnID, ok := newOperationID(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		respondOperationError(c, invalidBody(err), txnID)
		return
	}

	result, err := h.transactionService.Transfer(c.Request.Context(), actor, txnID, req.RecipientID, req.Currency, req.Amount, req.ReferenceID, requestMeta(c))
	if err != nil {
		logger.Warn("Transfer failed", slog.String("error", err.Error()), slog.String("transaction_id", txnID))
		respondOperationError(c, err, txnID)
		return
	}

	c.JSON(http.StatusOK, successResponse("Transfer successful", result))
}
