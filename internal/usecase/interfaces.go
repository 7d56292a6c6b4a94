package usecase

import (
	"context"
	"time"

	"github.com/bizledger/bizledger/internal/domain"
)

// EntryFilter narrows ledger entry queries. Zero Limit means no limit;
// nil From/To mean an unbounded range. Results are always ordered by
// created_at ascending.
type EntryFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// MovementFilter narrows inventory movement queries, same semantics as
// EntryFilter.
type MovementFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// EntityRepository defines data access for customers and suppliers.
type EntityRepository interface {
	Create(ctx context.Context, entity *domain.Entity) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Entity, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, tenantID, id string) (*domain.Entity, error)
	List(ctx context.Context, tenantID string, entityType domain.EntityType, limit, offset int) ([]*domain.Entity, error)
}

// LedgerEntryRepository defines data access for ledger entries.
type LedgerEntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	ListByEntity(ctx context.Context, tenantID string, entityType domain.EntityType, entityID string, filter EntryFilter) ([]*domain.LedgerEntry, error)
	ListByTenant(ctx context.Context, tenantID string, filter EntryFilter) ([]*domain.LedgerEntry, error)
}

// ProductRepository defines data access for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Product, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, tenantID, id string) (*domain.Product, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Product, error)
}

// MovementRepository defines data access for inventory movements.
type MovementRepository interface {
	Create(ctx context.Context, tx Transaction, movement *domain.InventoryMovement) error
	ListByProduct(ctx context.Context, tenantID, productID string, filter MovementFilter) ([]*domain.InventoryMovement, error)
	ListByTenant(ctx context.Context, tenantID string, filter MovementFilter) ([]*domain.InventoryMovement, error)
}

// RuleRepository defines data access for pricing configuration. Rule
// sets are loaded fresh per quote and treated as immutable values.
type RuleRepository interface {
	ListDiscountRules(ctx context.Context, tenantID string) ([]domain.DiscountRule, error)
	ListTaxRules(ctx context.Context, tenantID string) ([]domain.TaxRule, error)
	ListDiscountCodes(ctx context.Context, tenantID string) (map[string]domain.DiscountCode, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for derived read models.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
