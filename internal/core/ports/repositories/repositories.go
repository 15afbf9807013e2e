package repositories

import "context"

// RepositoryProvider bundles the repositories the service layer needs.
type RepositoryProvider struct {
	WalletRepo WalletRepositoryWithTx
	LedgerRepo LedgerRepositoryFacade
}

// Tx is the minimal transaction handle the service layer needs. pgx.Tx
// satisfies it; tests substitute a mock. Balance mutations and ledger appends
// only ever happen through a Tx so they commit or roll back as one unit.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
