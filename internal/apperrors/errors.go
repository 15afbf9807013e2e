package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientBalance indicates that a wallet cannot cover the requested amount.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrWalletInactive indicates that a balance-mutating operation hit an inactive wallet.
var ErrWalletInactive = errors.New("wallet is not active")

// ErrUnauthorized indicates a missing or invalid identity claim.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller's roles do not grant the required permission.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure that should not leak details to callers.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a message and the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
