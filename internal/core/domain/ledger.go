package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind indicates whether a ledger entry increases or decreases a wallet balance.
type EntryKind string

const (
	Credit EntryKind = "credit"
	Debit  EntryKind = "debit"
)

// LedgerEntry is an immutable record of one balance mutation. Entries are
// append-only: replaying a wallet's entries from zero (credits positive,
// debits negative) reproduces its current balance exactly.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`  // Primary Key (UUID), generated server-side
	WalletID        string          `json:"walletID"` // The single wallet this entry mutates
	Kind            EntryKind       `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`          // Always positive
	BalanceSnapshot decimal.Decimal `json:"balanceSnapshot"` // Wallet balance after this entry applied
	ReferenceID     string          `json:"referenceID"`     // Caller-supplied correlation key; defaults to the operation's transaction id
	PerformedBy     string          `json:"performedBy"`     // Actor subject id
	Role            string          `json:"role"`            // Actor role at operation time
	Metadata        map[string]string `json:"metadata"`      // Source operation, network context, transfer counterparty
	CreatedAt       time.Time       `json:"createdAt"`
}

// Transfer metadata keys. A transfer writes two entries, one per wallet,
// cross-referencing each other through these fields and a shared reference id.
const (
	MetaSource            = "source"
	MetaTransactionID     = "transactionId"
	MetaUserAgent         = "userAgent"
	MetaIPAddress         = "ipAddress"
	MetaTransferType      = "transferType"
	MetaSenderWalletID    = "senderWalletId"
	MetaSenderUserID      = "senderUserId"
	MetaRecipientWalletID = "recipientWalletId"
	MetaRecipientUserID   = "recipientUserId"

	TransferOutgoing = "outgoing"
	TransferIncoming = "incoming"
)
