package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quidflow/wallet_backend/internal/apperrors"
	"github.com/quidflow/wallet_backend/internal/core/domain"
	portsrepo "github.com/quidflow/wallet_backend/internal/core/ports/repositories"
	"github.com/quidflow/wallet_backend/internal/models"
	"github.com/shopspring/decimal"
)

const walletColumns = "wallet_id, user_id, currency, balance, is_active, created_at, updated_at, deleted_at"

type PgxWalletRepository struct {
	BaseRepository
	statementTimeout time.Duration
}

// NewWalletRepository creates a new repository for wallet data.
func NewWalletRepository(pool *pgxpool.Pool, statementTimeout time.Duration) *PgxWalletRepository {
	return &PgxWalletRepository{
		BaseRepository:   BaseRepository{Pool: pool},
		statementTimeout: statementTimeout,
	}
}

// Ensure PgxWalletRepository implements portsrepo.WalletRepositoryWithTx
var _ portsrepo.WalletRepositoryWithTx = (*PgxWalletRepository)(nil)

func toModelWallet(d domain.Wallet) models.Wallet {
	return models.Wallet{
		WalletID:  d.WalletID,
		UserID:    d.UserID,
		Currency:  d.Currency,
		Balance:   d.Balance,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.LastUpdatedAt,
		DeletedAt: d.DeletedAt,
	}
}

func toDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		WalletID: m.WalletID,
		UserID:   m.UserID,
		Currency: m.Currency,
		Balance:  m.Balance,
		IsActive: m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.UpdatedAt,
		},
		DeletedAt: m.DeletedAt,
	}
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var m models.Wallet
	var balance decimal.Decimal
	err := row.Scan(
		&m.WalletID,
		&m.UserID,
		&m.Currency,
		&balance,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	m.Balance = balance
	w := toDomainWallet(m)
	return &w, nil
}

// SaveWallet inserts a new wallet.
func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	m := toModelWallet(wallet)

	query := `
		INSERT INTO wallets (wallet_id, user_id, currency, balance, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.WalletID,
		m.UserID,
		m.Currency,
		m.Balance,
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: a %s wallet already exists for user %s", apperrors.ErrDuplicate, m.Currency, m.UserID)
		}
		return fmt.Errorf("failed to save wallet %s: %w", m.WalletID, err)
	}
	return nil
}

// FindWalletByID retrieves a wallet by its ID, excluding soft-deleted rows.
func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE wallet_id = $1 AND deleted_at IS NULL;
	`
	wallet, err := scanWallet(r.Pool.QueryRow(ctx, query, walletID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find wallet by ID %s: %w", walletID, err)
	}
	return wallet, nil
}

// FindWalletByOwner retrieves the owner's wallet for a currency. With an empty
// currency it returns the owner's earliest-created wallet, deterministic by
// insertion order.
func (r *PgxWalletRepository) FindWalletByOwner(ctx context.Context, userID, currency string) (*domain.Wallet, error) {
	var row pgx.Row
	if currency != "" {
		query := `
			SELECT ` + walletColumns + `
			FROM wallets
			WHERE user_id = $1 AND currency = $2 AND deleted_at IS NULL;
		`
		row = r.Pool.QueryRow(ctx, query, userID, currency)
	} else {
		query := `
			SELECT ` + walletColumns + `
			FROM wallets
			WHERE user_id = $1 AND deleted_at IS NULL
			ORDER BY created_at
			LIMIT 1;
		`
		row = r.Pool.QueryRow(ctx, query, userID)
	}

	wallet, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find wallet for user %s: %w", userID, err)
	}
	return wallet, nil
}

// ListWalletsByOwner returns all live wallets for an owner, newest first.
func (r *PgxWalletRepository) ListWalletsByOwner(ctx context.Context, userID, currency string) ([]domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE user_id = $1 AND deleted_at IS NULL
	`
	args := []interface{}{userID}
	if currency != "" {
		query += ` AND currency = $2`
		args = append(args, currency)
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectWallets(rows)
}

// ListAllWallets returns a paginated list of live wallets, newest first.
func (r *PgxWalletRepository) ListAllWallets(ctx context.Context, limit, offset int) ([]domain.Wallet, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query all wallets: %w", err)
	}
	defer rows.Close()

	return collectWallets(rows)
}

func collectWallets(rows pgx.Rows) ([]domain.Wallet, error) {
	wallets := []domain.Wallet{}
	for rows.Next() {
		var m models.Wallet
		var balance decimal.Decimal
		err := rows.Scan(
			&m.WalletID,
			&m.UserID,
			&m.Currency,
			&balance,
			&m.IsActive,
			&m.CreatedAt,
			&m.UpdatedAt,
			&m.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet row: %w", err)
		}
		m.Balance = balance
		wallets = append(wallets, toDomainWallet(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet rows: %w", err)
	}
	return wallets, nil
}

// SetWalletStatus flips the active flag.
func (r *PgxWalletRepository) SetWalletStatus(ctx context.Context, walletID string, active bool, updatedAt time.Time) error {
	query := `
		UPDATE wallets
		SET is_active = $2, updated_at = $3
		WHERE wallet_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, walletID, active, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update status for wallet %s: %w", walletID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteWallet marks the wallet deleted. The service layer verifies a zero
// balance before calling this.
func (r *PgxWalletRepository) SoftDeleteWallet(ctx context.Context, walletID string, deletedAt time.Time) error {
	query := `
		UPDATE wallets
		SET deleted_at = $2, updated_at = $2
		WHERE wallet_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, walletID, deletedAt)
	if err != nil {
		return fmt.Errorf("failed to delete wallet %s: %w", walletID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// BeginTx opens a store transaction carrying the configured statement timeout.
func (r *PgxWalletRepository) BeginTx(ctx context.Context, statementTimeout time.Duration) (portsrepo.Tx, error) {
	if statementTimeout <= 0 {
		statementTimeout = r.statementTimeout
	}
	return r.Begin(ctx, statementTimeout)
}

// LockWalletForUpdate takes a row-level exclusive lock on the owner's wallet
// for the currency. Must be called inside an open transaction; the lock is
// held until that transaction commits or rolls back.
func (r *PgxWalletRepository) LockWalletForUpdate(ctx context.Context, tx portsrepo.Tx, userID, currency string) (*domain.Wallet, error) {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE user_id = $1 AND currency = $2 AND deleted_at IS NULL
		FOR UPDATE;
	`
	wallet, err := scanWallet(pgxTx.QueryRow(ctx, query, userID, currency))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet for user %s: %w", userID, err)
	}
	return wallet, nil
}

// LockWalletsForUpdate locks the wallets of several owners for one currency in
// a single statement. ORDER BY wallet_id makes the acquisition order canonical
// regardless of argument order, so two concurrent opposite-direction transfers
// cannot deadlock each other.
func (r *PgxWalletRepository) LockWalletsForUpdate(ctx context.Context, tx portsrepo.Tx, userIDs []string, currency string) (map[string]domain.Wallet, error) {
	if len(userIDs) == 0 {
		return map[string]domain.Wallet{}, nil
	}
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE user_id = ANY($1) AND currency = $2 AND deleted_at IS NULL
		ORDER BY wallet_id
		FOR UPDATE;
	`
	rows, err := pgxTx.Query(ctx, query, userIDs, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallets for update: %w", err)
	}
	defer rows.Close()

	wallets, err := collectWallets(rows)
	if err != nil {
		return nil, err
	}

	walletsByUser := make(map[string]domain.Wallet, len(wallets))
	for _, w := range wallets {
		walletsByUser[w.UserID] = w
	}

	if len(walletsByUser) != len(userIDs) {
		missing := []string{}
		for _, id := range userIDs {
			if _, found := walletsByUser[id]; !found {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some wallets requested for update lock were not found", "missing_users", missing, "currency", currency)
		return nil, fmt.Errorf("%w: could not find or lock all requested wallets, missing users: %v", apperrors.ErrNotFound, missing)
	}

	return walletsByUser, nil
}

// UpdateBalanceInTx sets the wallet balance. Called only after validation,
// inside the transaction that holds the row lock.
func (r *PgxWalletRepository) UpdateBalanceInTx(ctx context.Context, tx portsrepo.Tx, walletID string, newBalance decimal.Decimal, updatedAt time.Time) error {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return err
	}

	query := `
		UPDATE wallets
		SET balance = $2, updated_at = $3
		WHERE wallet_id = $1;
	`
	cmdTag, err := pgxTx.Exec(ctx, query, walletID, newBalance, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update balance for wallet %s: %w", walletID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Should not happen with the row locked.
		return fmt.Errorf("%w: wallet %s not found during balance update", apperrors.ErrNotFound, walletID)
	}
	return nil
}
