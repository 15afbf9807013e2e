package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quidflow/wallet_backend/internal/apperrors"
	"github.com/quidflow/wallet_backend/internal/core/domain"
	portsrepo "github.com/quidflow/wallet_backend/internal/core/ports/repositories"
	"github.com/quidflow/wallet_backend/internal/models"
	"github.com/shopspring/decimal"
)

const entryColumns = "entry_id, wallet_id, kind, amount, balance_snapshot, reference_id, performed_by, role, metadata, created_at"

type PgxLedgerRepository struct {
	BaseRepository
}

// NewLedgerRepository creates a new repository for ledger entry data.
func NewLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func toDomainEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:         m.EntryID,
		WalletID:        m.WalletID,
		Kind:            domain.EntryKind(m.Kind),
		Amount:          m.Amount,
		BalanceSnapshot: m.BalanceSnapshot,
		ReferenceID:     m.ReferenceID,
		PerformedBy:     m.PerformedBy,
		Role:            m.Role,
		Metadata:        m.Metadata,
		CreatedAt:       m.CreatedAt,
	}
}

// AppendEntryInTx inserts one immutable ledger entry inside the caller's open
// transaction. The row commits or rolls back atomically with the balance
// mutation it documents; entries are never updated or deleted afterwards.
func (r *PgxLedgerRepository) AppendEntryInTx(ctx context.Context, tx portsrepo.Tx, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO transactions (entry_id, wallet_id, kind, amount, balance_snapshot, reference_id, performed_by, role, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = pgxTx.Exec(ctx, query,
		entry.EntryID,
		entry.WalletID,
		string(entry.Kind),
		entry.Amount,
		entry.BalanceSnapshot,
		entry.ReferenceID,
		entry.PerformedBy,
		entry.Role,
		entry.Metadata,
		entry.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return nil, fmt.Errorf("%w: reference id %s already used for wallet %s", apperrors.ErrDuplicate, entry.ReferenceID, entry.WalletID)
		}
		return nil, fmt.Errorf("failed to append ledger entry %s: %w", entry.EntryID, err)
	}

	return &entry, nil
}

// buildFilterClause assembles the WHERE clause shared by ListEntries and
// CountEntries so both always agree on filter semantics.
func buildFilterClause(filter portsrepo.LedgerFilter) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	if len(filter.WalletIDs) > 0 {
		args = append(args, filter.WalletIDs)
		clauses = append(clauses, "wallet_id = ANY($"+strconv.Itoa(len(args))+")")
	}
	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		clauses = append(clauses, "kind = $"+strconv.Itoa(len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		clauses = append(clauses, "created_at >= $"+strconv.Itoa(len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		clauses = append(clauses, "created_at <= $"+strconv.Itoa(len(args)))
	}

	where := ""
	for i, c := range clauses {
		if i == 0 {
			where = " WHERE " + c
		} else {
			where += " AND " + c
		}
	}
	return where, args
}

// ListEntries returns entries matching the filter, newest first.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, filter portsrepo.LedgerFilter) ([]domain.LedgerEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	where, args := buildFilterClause(filter)
	args = append(args, limit, offset)
	query := "SELECT " + entryColumns + " FROM transactions" + where +
		" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// CountEntries returns the total matching the filter, for pagination totals.
func (r *PgxLedgerRepository) CountEntries(ctx context.Context, filter portsrepo.LedgerFilter) (int64, error) {
	where, args := buildFilterClause(filter)
	query := "SELECT COUNT(*) FROM transactions" + where + ";"

	var count int64
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}
	return count, nil
}

func collectEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		var amount, snapshot decimal.Decimal
		err := rows.Scan(
			&m.EntryID,
			&m.WalletID,
			&m.Kind,
			&amount,
			&snapshot,
			&m.ReferenceID,
			&m.PerformedBy,
			&m.Role,
			&m.Metadata,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		m.Amount = amount
		m.BalanceSnapshot = snapshot
		entries = append(entries, toDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return entries, nil
}
