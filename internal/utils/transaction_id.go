package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateTransactionID generates a cryptographically secure 32-character hex
// identifier used to correlate a money operation across ledger entries and
// API responses, including failed attempts.
func GenerateTransactionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
