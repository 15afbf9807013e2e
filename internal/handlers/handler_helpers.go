package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quidflow/wallet_backend/internal/apperrors"
)

// successResponse is the envelope every 2xx body uses.
func successResponse(message string, data interface{}) gin.H {
	return gin.H{
		"success": true,
		"message": message,
		"data":    data,
	}
}

// pageLimit clamps a requested page size into the served range, mirroring the
// clamp the ledger service applies to its queries.
func pageLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 100 {
		return 100
	}
	return limit
}

// invalidBody wraps a binding failure so it maps to a 400.
func invalidBody(err error) error {
	return fmt.Errorf("%w: invalid request format: %s", apperrors.ErrValidation, err.Error())
}

// statusForError maps a service error to an HTTP status code.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInsufficientBalance),
		errors.Is(err, apperrors.ErrWalletInactive):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Internal errors never leak their
// message to callers.
func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// respondOperationError is respondError plus the operation's transaction id,
// so failed money operations stay correlatable from the client side.
func respondOperationError(c *gin.Context, err error, txnID string) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	c.JSON(status, gin.H{
		"success":       false,
		"message":       message,
		"transactionId": txnID,
	})
}
