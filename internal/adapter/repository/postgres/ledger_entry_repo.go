package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/usecase"
)

// LedgerEntryRepository implements usecase.LedgerEntryRepository.
// Entries are append-only: there is no update or delete path.
type LedgerEntryRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerEntryRepository creates a new LedgerEntryRepository.
func NewLedgerEntryRepository(pool *pgxpool.Pool) *LedgerEntryRepository {
	return &LedgerEntryRepository{pool: pool}
}

const createEntrySQL = `
INSERT INTO ledger_entries (id, tenant_id, entity_type, entity_id, direction, amount, description, reference_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Create appends a ledger entry within a transaction.
func (r *LedgerEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, createEntrySQL,
		entry.ID,
		entry.TenantID,
		string(entry.EntityType),
		entry.EntityID,
		string(entry.Direction),
		moneyToNumeric(entry.Amount),
		entry.Description,
		entry.ReferenceID,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

const selectEntriesSQL = `
SELECT id, tenant_id, entity_type, entity_id, direction, amount, description, reference_id, created_at
FROM ledger_entries`

// ListByEntity retrieves an entity's entries ordered by created_at
// ascending.
func (r *LedgerEntryRepository) ListByEntity(ctx context.Context, tenantID string, entityType domain.EntityType, entityID string, filter usecase.EntryFilter) ([]*domain.LedgerEntry, error) {
	conditions := []string{"tenant_id = $1", "entity_type = $2", "entity_id = $3"}
	args := []any{tenantID, string(entityType), entityID}

	query := buildEntryQuery(conditions, args, filter)
	return r.queryEntries(ctx, query.sql, query.args)
}

// ListByTenant retrieves all of a tenant's entries ordered by
// created_at ascending.
func (r *LedgerEntryRepository) ListByTenant(ctx context.Context, tenantID string, filter usecase.EntryFilter) ([]*domain.LedgerEntry, error) {
	conditions := []string{"tenant_id = $1"}
	args := []any{tenantID}

	query := buildEntryQuery(conditions, args, filter)
	return r.queryEntries(ctx, query.sql, query.args)
}

type builtQuery struct {
	sql  string
	args []any
}

func buildEntryQuery(conditions []string, args []any, filter usecase.EntryFilter) builtQuery {
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", len(args)))
	}

	sql := selectEntriesSQL + "\nWHERE " + strings.Join(conditions, " AND ") + "\nORDER BY created_at ASC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sql += fmt.Sprintf("\nLIMIT $%d", len(args))

		args = append(args, filter.Offset)
		sql += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return builtQuery{sql: sql, args: args}
}

func (r *LedgerEntryRepository) queryEntries(ctx context.Context, sql string, args []any) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var (
		entry      domain.LedgerEntry
		entityType string
		direction  string
		amount     pgtype.Numeric
		createdAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID,
		&entry.TenantID,
		&entityType,
		&entry.EntityID,
		&direction,
		&amount,
		&entry.Description,
		&entry.ReferenceID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	entry.EntityType = domain.EntityType(entityType)
	entry.Direction = domain.Direction(direction)
	entry.Amount = numericToMoney(amount)
	entry.CreatedAt = createdAt.Time

	return &entry, nil
}
