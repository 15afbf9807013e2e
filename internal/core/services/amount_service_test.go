package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/quidflow/wallet_backend/internal/apperrors"
	"github.com/quidflow/wallet_backend/internal/core/services"
)

func TestNormalizeAmount(t *testing.T) {
	n := services.NewAmountNormalizer(testWalletSettings())

	testCases := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{name: "plain amount unchanged", input: "100.50", expected: "100.5"},
		{name: "rounds half away from zero", input: "10.005", expected: "10.01"},
		{name: "rounds down below half", input: "10.004", expected: "10"},
		{name: "exactly min amount", input: "0.01", expected: "0.01"},
		{name: "exactly max amount", input: "1000000", expected: "1000000"},
		{name: "zero rejected", input: "0", expectErr: true},
		{name: "negative rejected", input: "-5", expectErr: true},
		{name: "below min after rounding", input: "0.004", expectErr: true},
		{name: "rounds up into valid range", input: "0.005", expected: "0.01"},
		{name: "above max rejected", input: "1000000.01", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := n.NormalizeAmount(decimal.RequireFromString(tc.input))
			if tc.expectErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			assert.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.expected)),
				"expected %s, got %s", tc.expected, got)
		})
	}
}

func TestNormalizeCurrency(t *testing.T) {
	n := services.NewAmountNormalizer(testWalletSettings())

	t.Run("upper cases supported code", func(t *testing.T) {
		got, err := n.NormalizeCurrency("usd")
		assert.NoError(t, err)
		assert.Equal(t, "USD", got)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		got, err := n.NormalizeCurrency(" eur ")
		assert.NoError(t, err)
		assert.Equal(t, "EUR", got)
	})

	t.Run("empty defaults to first supported", func(t *testing.T) {
		got, err := n.NormalizeCurrency("")
		assert.NoError(t, err)
		assert.Equal(t, "USD", got)
	})

	t.Run("unsupported rejected", func(t *testing.T) {
		_, err := n.NormalizeCurrency("JPY")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
