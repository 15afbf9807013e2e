package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quidflow/wallet_backend/internal/apperrors"
	"github.com/quidflow/wallet_backend/internal/core/domain"
	portssvc "github.com/quidflow/wallet_backend/internal/core/ports/services"
	"github.com/quidflow/wallet_backend/internal/dto"
	"github.com/quidflow/wallet_backend/internal/middleware"
)

// adminHandler handles the administrative read and wallet status endpoints.
type adminHandler struct {
	walletService portssvc.WalletSvcFacade
	ledgerService portssvc.LedgerSvcFacade
}

func newAdminHandler(ws portssvc.WalletSvcFacade, ls portssvc.LedgerSvcFacade) *adminHandler {
	return &adminHandler{
		walletService: ws,
		ledgerService: ls,
	}
}

// registerAdminRoutes registers the admin surface. Every route carries its
// own permission gate; RoleAdmin passes all of them implicitly.
func registerAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAdminHandler(services.Wallet, services.Ledger)

	admin := rg.Group("/admin")
	{
		admin.GET("/wallets", middleware.RequirePermission(domain.PermViewAllWallets), h.listAllWallets)
		admin.GET("/wallets/:walletID", middleware.RequirePermission(domain.PermViewAllWallets), h.getWallet)
		admin.PUT("/wallets/:walletID/activate", middleware.RequirePermission(domain.PermManageWalletStatus), h.activateWallet)
		admin.PUT("/wallets/:walletID/deactivate", middleware.RequirePermission(domain.PermManageWalletStatus), h.deactivateWallet)
		admin.GET("/users/:userID/wallets", middleware.RequirePermission(domain.PermViewUserWallets), h.listUserWallets)
		admin.GET("/users/:userID/transactions", middleware.RequirePermission(domain.PermViewAllTxns), h.listUserTransactions)
		admin.GET("/transactions", middleware.RequirePermission(domain.PermViewAllTxns), h.listAllTransactions)
	}
}

// listAllWallets returns a page over every live wallet.
func (h *adminHandler) listAllWallets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListWalletsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listAllWallets", slog.String("error", err.Error()))
		respondError(c, invalidBody(err))
		return
	}

	wallets, err := h.walletService.ListAllWallets(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Wallets retrieved successfully", dto.ToWalletResponses(wallets)))
}

// getWallet returns one wallet by id.
func (h *adminHandler) getWallet(c *gin.Context) {
	wallet, err := h.walletService.GetWalletByID(c.Request.Context(), c.Param("walletID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Wallet retrieved successfully", dto.ToWalletResponse(wallet)))
}

// listUserWallets returns all wallets belonging to the given user.
func (h *adminHandler) listUserWallets(c *gin.Context) {
	wallets, err := h.walletService.ListUserWallets(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse("Wallets retrieved successfully", dto.ToWalletResponses(wallets)))
}

func (h *adminHandler) activateWallet(c *gin.Context) {
	h.setStatus(c, true, "Wallet activated successfully")
}

func (h *adminHandler) deactivateWallet(c *gin.Context) {
	h.setStatus(c, false, "Wallet deactivated successfully")
}

func (h *adminHandler) setStatus(c *gin.Context, active bool, message string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("walletID")

	if err := h.walletService.SetWalletStatus(c.Request.Context(), walletID, active); err != nil {
		logger.Warn("Failed to update wallet status", slog.String("error", err.Error()), slog.String("wallet_id", walletID))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(message, gin.H{"walletId": walletID, "active": active}))
}

// listUserTransactions returns a page of one user's ledger history.
func (h *adminHandler) listUserTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listUserTransactions", slog.String("error", err.Error()))
		respondError(c, invalidBody(err))
		return
	}

	entries, total, err := h.ledgerService.ListEntriesForUser(c.Request.Context(), c.Param("userID"), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Transactions retrieved successfully",
		dto.ToTransactionListResponse(entries, pageLimit(params.Limit), params.Offset, total)))
}

// listAllTransactions returns a system-wide page of ledger history.
func (h *adminHandler) listAllTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listAllTransactions", slog.String("error", err.Error()))
		respondError(c, invalidBody(err))
		return
	}

	entries, total, err := h.ledgerService.ListAllEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(entries) == 0 {
		respondError(c, apperrors.NewNotFoundError("No transactions found"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Transactions retrieved successfully",
		dto.ToTransactionListResponse(entries, pageLimit(params.Limit), params.Offset, total)))
}
