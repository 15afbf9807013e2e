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

// walletHandler handles HTTP requests for the caller's own wallets.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
	ledgerService portssvc.LedgerSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade, ls portssvc.LedgerSvcFacade) *walletHandler {
	return &walletHandler{
		walletService: ws,
		ledgerService: ls,
	}
}

// registerWalletRoutes registers the self-service wallet routes.
func registerWalletRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newWalletHandler(services.Wallet, services.Ledger)

	wallet := rg.Group("/wallet")
	wallet.Use(middleware.RequirePermission(domain.PermManageOwnWallet))
	{
		wallet.POST("", h.createWallet)
		wallet.GET("", h.listWallets)
		wallet.DELETE("", h.deleteWallet)
		wallet.GET("/transactions", middleware.RequirePermission(domain.PermWalletTransactions), h.listTransactions)
	}
}

// createWallet creates a wallet for the authenticated user. The currency is
// optional and defaults to the primary supported currency.
func (h *walletHandler) createWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, err := middleware.GetActorFromContext(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.CreateWalletRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for createWallet", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format: " + err.Error()})
			return
		}
	}

	wallet, err := h.walletService.CreateWallet(c.Request.Context(), actor.UserID, req.Currency)
	if err != nil {
		logger.Warn("Failed to create wallet", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse("Wallet created successfully", dto.ToWalletResponse(wallet)))
}

// listWallets returns the caller's wallets, optionally one currency.
func (h *walletHandler) listWallets(c *gin.Context) {
	actor, err := middleware.GetActorFromContext(c)
	if err != nil {
		respondError(c, err)
		return
	}

	wallets, err := h.walletService.ListOwnWallets(c.Request.Context(), actor.UserID, c.Query("currency"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(wallets) == 0 {
		respondError(c, apperrors.NewNotFoundError("No wallets found for user"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Wallets retrieved successfully", dto.ToWalletResponses(wallets)))
}

// deleteWallet soft-deletes the caller's wallet for the given currency. The
// wallet must hold a zero balance.
func (h *walletHandler) deleteWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, err := middleware.GetActorFromContext(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.walletService.DeleteOwnWallet(c.Request.Context(), actor.UserID, c.Query("currency")); err != nil {
		logger.Warn("Failed to delete wallet", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Wallet deleted successfully", nil))
}

// listTransactions returns a page of the caller's ledger history, newest
// first, across all their wallets unless a currency filter is given.
func (h *walletHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, err := middleware.GetActorFromContext(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, total, err := h.ledgerService.ListEntriesForUser(c.Request.Context(), actor.UserID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse("Transactions retrieved successfully",
		dto.ToTransactionListResponse(entries, pageLimit(params.Limit), params.Offset, total)))
}
