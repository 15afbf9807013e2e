package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quidflow/wallet_backend/internal/apperrors"
	"github.com/quidflow/wallet_backend/internal/platform/config"
)

// AmountNormalizer converts raw request amounts and currency codes into their
// canonical forms before any balance math happens. Every mutating operation
// runs its input through here, so the ledger only ever stores amounts already
// rounded to the configured precision.
type AmountNormalizer struct {
	settings config.WalletSettings
}

// NewAmountNormalizer creates an AmountNormalizer bound to the given settings.
func NewAmountNormalizer(settings config.WalletSettings) *AmountNormalizer {
	return &AmountNormalizer{settings: settings}
}

// NormalizeAmount rounds the raw amount to the configured number of decimal
// places (half away from zero) and validates it against the positive and
// min/max bounds. Bounds are checked on the rounded value.
func (n *AmountNormalizer) NormalizeAmount(raw decimal.Decimal) (decimal.Decimal, error) {
	rounded := raw.Round(n.settings.DecimalPlaces)

	if !rounded.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	if rounded.LessThan(n.settings.MinAmount) {
		return decimal.Zero, fmt.Errorf("%w: amount must be at least %s", apperrors.ErrValidation, n.settings.MinAmount)
	}
	if rounded.GreaterThan(n.settings.MaxAmount) {
		return decimal.Zero, fmt.Errorf("%w: amount must not exceed %s", apperrors.ErrValidation, n.settings.MaxAmount)
	}
	return rounded, nil
}

// NormalizeCurrency upper-cases the code and checks it against the supported
// set. An empty code resolves to the first supported currency.
func (n *AmountNormalizer) NormalizeCurrency(raw string) (string, error) {
	if raw == "" {
		if len(n.settings.SupportedCurrencies) == 0 {
			return "", fmt.Errorf("%w: no supported currencies configured", apperrors.ErrValidation)
		}
		return n.settings.SupportedCurrencies[0], nil
	}

	code := strings.ToUpper(strings.TrimSpace(raw))
	for _, c := range n.settings.SupportedCurrencies {
		if code == c {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: unsupported currency %q, supported: %s",
		apperrors.ErrValidation, raw, strings.Join(n.settings.SupportedCurrencies, ", "))
}
