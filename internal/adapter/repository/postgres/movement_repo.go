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

// MovementRepository implements usecase.MovementRepository.
// Movements are append-only, same as ledger entries.
type MovementRepository struct {
	pool *pgxpool.Pool
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{pool: pool}
}

const createMovementSQL = `
INSERT INTO inventory_movements (id, tenant_id, product_id, kind, quantity, reason, reference_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Create appends an inventory movement within a transaction.
func (r *MovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.InventoryMovement) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, createMovementSQL,
		movement.ID,
		movement.TenantID,
		movement.ProductID,
		string(movement.Kind),
		movement.Quantity,
		movement.Reason,
		movement.ReferenceID,
		timeToPgTimestamptz(movement.CreatedAt),
	)

	return err
}

const selectMovementsSQL = `
SELECT id, tenant_id, product_id, kind, quantity, reason, reference_id, created_at
FROM inventory_movements`

// ListByProduct retrieves a product's movements ordered by created_at
// ascending.
func (r *MovementRepository) ListByProduct(ctx context.Context, tenantID, productID string, filter usecase.MovementFilter) ([]*domain.InventoryMovement, error) {
	conditions := []string{"tenant_id = $1", "product_id = $2"}
	args := []any{tenantID, productID}

	sql, args := buildMovementQuery(conditions, args, filter)
	return r.queryMovements(ctx, sql, args)
}

// ListByTenant retrieves all of a tenant's movements ordered by
// created_at ascending.
func (r *MovementRepository) ListByTenant(ctx context.Context, tenantID string, filter usecase.MovementFilter) ([]*domain.InventoryMovement, error) {
	conditions := []string{"tenant_id = $1"}
	args := []any{tenantID}

	sql, args := buildMovementQuery(conditions, args, filter)
	return r.queryMovements(ctx, sql, args)
}

func buildMovementQuery(conditions []string, args []any, filter usecase.MovementFilter) (string, []any) {
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", len(args)))
	}

	sql := selectMovementsSQL + "\nWHERE " + strings.Join(conditions, " AND ") + "\nORDER BY created_at ASC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sql += fmt.Sprintf("\nLIMIT $%d", len(args))

		args = append(args, filter.Offset)
		sql += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return sql, args
}

func (r *MovementRepository) queryMovements(ctx context.Context, sql string, args []any) ([]*domain.InventoryMovement, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*domain.InventoryMovement
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}

	return movements, rows.Err()
}

func scanMovement(row pgx.Row) (*domain.InventoryMovement, error) {
	var (
		movement  domain.InventoryMovement
		kind      string
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&movement.ID,
		&movement.TenantID,
		&movement.ProductID,
		&kind,
		&movement.Quantity,
		&movement.Reason,
		&movement.ReferenceID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	movement.Kind = domain.MovementKind(kind)
	movement.CreatedAt = createdAt.Time

	return &movement, nil
}
