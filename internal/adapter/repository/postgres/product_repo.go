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

// ProductRepository implements usecase.ProductRepository.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const createProductSQL = `
INSERT INTO products (id, tenant_id, name, sku, unit_price, low_stock_threshold, out_of_stock_threshold, lead_time_days, safety_stock_days, max_order_quantity, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// Create creates a new product.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	_, err := r.pool.Exec(ctx, createProductSQL,
		product.ID,
		product.TenantID,
		product.Name,
		product.SKU,
		moneyToNumeric(product.UnitPrice),
		product.LowStockThreshold,
		product.OutOfStockThreshold,
		product.LeadTimeDays,
		product.SafetyStockDays,
		product.MaxOrderQuantity,
		timeToPgTimestamptz(product.CreatedAt),
		timeToPgTimestamptz(product.UpdatedAt),
	)

	return err
}

const getProductSQL = `
SELECT id, tenant_id, name, sku, unit_price, low_stock_threshold, out_of_stock_threshold, lead_time_days, safety_stock_days, max_order_quantity, created_at, updated_at
FROM products
WHERE tenant_id = $1 AND id = $2`

// GetByID retrieves a product scoped to a tenant.
func (r *ProductRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Product, error) {
	return r.scanProduct(r.pool.QueryRow(ctx, getProductSQL, tenantID, id))
}

// GetByIDForUpdate retrieves a product and locks its row for the
// duration of the transaction. The lock serializes movement appends per
// product.
func (r *ProductRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.Product, error) {
	pgxTx := tx.(*Tx).PgxTx()

	return r.scanProduct(pgxTx.QueryRow(ctx, getProductSQL+" FOR UPDATE", tenantID, id))
}

const listProductsSQL = `
SELECT id, tenant_id, name, sku, unit_price, low_stock_threshold, out_of_stock_threshold, lead_time_days, safety_stock_days, max_order_quantity, created_at, updated_at
FROM products
WHERE tenant_id = $1
ORDER BY created_at ASC
LIMIT $2 OFFSET $3`

// List retrieves a tenant's products with pagination.
func (r *ProductRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func (r *ProductRepository) scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		product   domain.Product
		unitPrice pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&product.ID,
		&product.TenantID,
		&product.Name,
		&product.SKU,
		&unitPrice,
		&product.LowStockThreshold,
		&product.OutOfStockThreshold,
		&product.LeadTimeDays,
		&product.SafetyStockDays,
		&product.MaxOrderQuantity,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	product.UnitPrice = numericToMoney(unitPrice)
	product.CreatedAt = createdAt.Time
	product.UpdatedAt = updatedAt.Time

	return &product, nil
}
