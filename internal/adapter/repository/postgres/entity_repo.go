package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/usecase"
)

// EntityRepository implements usecase.EntityRepository.
type EntityRepository struct {
	pool *pgxpool.Pool
}

// NewEntityRepository creates a new EntityRepository.
func NewEntityRepository(pool *pgxpool.Pool) *EntityRepository {
	return &EntityRepository{pool: pool}
}

const createEntitySQL = `
INSERT INTO entities (id, tenant_id, type, name, credit_limit, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Create creates a new entity.
func (r *EntityRepository) Create(ctx context.Context, entity *domain.Entity) error {
	_, err := r.pool.Exec(ctx, createEntitySQL,
		entity.ID,
		entity.TenantID,
		string(entity.Type),
		entity.Name,
		moneyToNumeric(entity.CreditLimit),
		timeToPgTimestamptz(entity.CreatedAt),
		timeToPgTimestamptz(entity.UpdatedAt),
	)

	return err
}

const getEntitySQL = `
SELECT id, tenant_id, type, name, credit_limit, created_at, updated_at
FROM entities
WHERE tenant_id = $1 AND id = $2`

// GetByID retrieves an entity scoped to a tenant.
func (r *EntityRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Entity, error) {
	return r.scanEntity(r.pool.QueryRow(ctx, getEntitySQL, tenantID, id))
}

// GetByIDForUpdate retrieves an entity and locks its row for the
// duration of the transaction. The lock serializes ledger appends per
// entity.
func (r *EntityRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.Entity, error) {
	pgxTx := tx.(*Tx).PgxTx()

	return r.scanEntity(pgxTx.QueryRow(ctx, getEntitySQL+" FOR UPDATE", tenantID, id))
}

const listEntitiesSQL = `
SELECT id, tenant_id, type, name, credit_limit, created_at, updated_at
FROM entities
WHERE tenant_id = $1 AND type = $2
ORDER BY created_at ASC
LIMIT $3 OFFSET $4`

// List retrieves entities of one type with pagination.
func (r *EntityRepository) List(ctx context.Context, tenantID string, entityType domain.EntityType, limit, offset int) ([]*domain.Entity, error) {
	rows, err := r.pool.Query(ctx, listEntitiesSQL, tenantID, string(entityType), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []*domain.Entity
	for rows.Next() {
		entity, err := r.scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}

	return entities, rows.Err()
}

func (r *EntityRepository) scanEntity(row pgx.Row) (*domain.Entity, error) {
	var (
		entity      domain.Entity
		entityType  string
		creditLimit pgtype.Numeric
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&entity.ID,
		&entity.TenantID,
		&entityType,
		&entity.Name,
		&creditLimit,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntityNotFound
		}
		return nil, err
	}

	entity.Type = domain.EntityType(entityType)
	entity.CreditLimit = numericToMoney(creditLimit)
	entity.CreatedAt = createdAt.Time
	entity.UpdatedAt = updatedAt.Time

	return &entity, nil
}
