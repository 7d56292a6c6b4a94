package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/infrastructure/metrics"
)

// LedgerUseCase appends financial facts and derives balances for
// customers and suppliers. Appends are serialized per entity: the
// balance check and the insert run inside one transaction holding the
// entity row lock, so two concurrent writers can never both pass a
// check against a stale fold.
type LedgerUseCase struct {
	txManager  TransactionManager
	entityRepo EntityRepository
	entryRepo  LedgerEntryRepository
	outboxRepo OutboxRepository
	idGen      IDGenerator
	retrier    Retrier
	cache      Cache
	cacheTTL   time.Duration
	metrics    *metrics.Metrics
}

// LedgerConfig groups optional settings for LedgerUseCase.
type LedgerConfig struct {
	Retrier  Retrier
	Cache    Cache
	CacheTTL time.Duration
	Metrics  *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	entityRepo EntityRepository,
	entryRepo LedgerEntryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	cfg LedgerConfig,
) *LedgerUseCase {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = time.Minute
	}

	return &LedgerUseCase{
		txManager:  txManager,
		entityRepo: entityRepo,
		entryRepo:  entryRepo,
		outboxRepo: outboxRepo,
		idGen:      idGen,
		retrier:    cfg.Retrier,
		cache:      cfg.Cache,
		cacheTTL:   cfg.CacheTTL,
		metrics:    cfg.Metrics,
	}
}

// RecordEntryInput represents input for appending a ledger entry.
type RecordEntryInput struct {
	TenantID    string
	EntityType  domain.EntityType
	EntityID    string
	Direction   domain.Direction
	Amount      domain.Money
	Description string
	ReferenceID string
}

// RecordEntry appends a ledger entry after enforcing business rules
// against the balance derived inside the transaction. The whole
// check-then-append transaction is re-run through the retrier on
// deadlock or serialization failure; the rollback of a failed attempt
// leaves nothing behind, so a re-run is safe.
func (uc *LedgerUseCase) RecordEntry(ctx context.Context, input RecordEntryInput) (*domain.LedgerEntry, error) {
	// 0. Validate before starting the transaction
	if !input.EntityType.Valid() {
		return nil, domain.ErrInvalidEntityType
	}
	if !input.Direction.Valid() {
		return nil, domain.ErrInvalidDirection
	}
	if err := domain.ValidateEntryAmount(input.Amount); err != nil {
		return nil, err
	}

	var entry *domain.LedgerEntry
	op := func() error {
		recorded, err := uc.recordEntryTx(ctx, input)
		if err != nil {
			return err
		}
		entry = recorded
		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, op)
	} else {
		err = op()
	}
	if err != nil {
		return nil, err
	}

	uc.invalidateBalance(ctx, input.TenantID, input.EntityType, input.EntityID)

	if uc.metrics != nil {
		uc.metrics.EntriesRecorded.WithLabelValues(string(input.EntityType), string(input.Direction)).Inc()
	}

	return entry, nil
}

// recordEntryTx runs one locked check-then-append attempt.
func (uc *LedgerUseCase) recordEntryTx(ctx context.Context, input RecordEntryInput) (*domain.LedgerEntry, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	// 1. Begin transaction
	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// 2. Lock the entity row (per-entity append serialization)
	entity, err := uc.entityRepo.GetByIDForUpdate(txCtx, tx, input.TenantID, input.EntityID)
	if err != nil {
		return nil, err
	}
	if entity.Type != input.EntityType {
		return nil, domain.ErrEntityNotFound
	}

	now := time.Now().UTC()
	entry := &domain.LedgerEntry{
		ID:          uc.idGen.Generate(),
		TenantID:    input.TenantID,
		EntityType:  input.EntityType,
		EntityID:    input.EntityID,
		Direction:   input.Direction,
		Amount:      input.Amount,
		Description: input.Description,
		ReferenceID: input.ReferenceID,
		CreatedAt:   now,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	// 3. Fold the current balance. The row lock taken above serializes
	// appends, so the committed entry set is complete here.
	existing, err := uc.entryRepo.ListByEntity(txCtx, input.TenantID, input.EntityType, input.EntityID, EntryFilter{})
	if err != nil {
		return nil, err
	}
	balance := domain.FoldBalance(existing)

	// 4. Enforce the business rule for the entry's direction
	if entry.BalanceImpact().IsPositive() {
		if !entity.CanAddCredit(balance, input.Amount) {
			uc.countRejection("credit_limit")
			return nil, domain.ErrCreditLimitExceeded
		}
	} else {
		if !entity.CanMakePayment(balance, input.Amount) {
			uc.countRejection("overpayment")
			return nil, domain.ErrPaymentExceedsBalance
		}
	}

	// 5. Append the entry and the outbox event
	if err := uc.entryRepo.Create(txCtx, tx, entry); err != nil {
		return nil, err
	}

	newBalance := balance.Add(entry.BalanceImpact())
	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   entry.ID,
		AggregateType: domain.AggregateTypeLedgerEntry,
		EventType:     domain.EventTypeEntryRecorded,
		Payload: map[string]any{
			"entry_id":    entry.ID,
			"tenant_id":   entry.TenantID,
			"entity_type": string(entry.EntityType),
			"entity_id":   entry.EntityID,
			"direction":   string(entry.Direction),
			"amount":      entry.Amount.String(),
			"balance":     newBalance.String(),
		},
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	// 6. Commit
	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return entry, nil
}

// GetBalance derives the current balance of an entity, read-through
// cached. The cache is a performance optimization only: it is
// invalidated on every append and the fold stays the ground truth.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, tenantID string, entityType domain.EntityType, entityID string) (domain.Balance, error) {
	key := balanceCacheKey(tenantID, entityType, entityID)

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, key); err == nil && cached != "" {
			if d, derr := decimal.NewFromString(cached); derr == nil {
				return domain.NewBalance(d), nil
			}
		}
	}

	if _, err := uc.entityRepo.GetByID(ctx, tenantID, entityID); err != nil {
		return domain.ZeroBalance, err
	}

	entries, err := uc.entryRepo.ListByEntity(ctx, tenantID, entityType, entityID, EntryFilter{})
	if err != nil {
		return domain.ZeroBalance, err
	}

	balance := domain.FoldBalance(entries)

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, key, balance.String(), uc.cacheTTL)
	}

	return balance, nil
}

// GetSummary derives the financial summary of an entity.
func (uc *LedgerUseCase) GetSummary(ctx context.Context, tenantID string, entityType domain.EntityType, entityID string) (domain.EntitySummary, error) {
	if _, err := uc.entityRepo.GetByID(ctx, tenantID, entityID); err != nil {
		return domain.EntitySummary{}, err
	}

	entries, err := uc.entryRepo.ListByEntity(ctx, tenantID, entityType, entityID, EntryFilter{})
	if err != nil {
		return domain.EntitySummary{}, err
	}

	return domain.SummarizeEntries(entries), nil
}

// ListEntriesInput represents input for listing ledger entries.
type ListEntriesInput struct {
	TenantID   string
	EntityType domain.EntityType
	EntityID   string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// ListEntries lists entries for an entity, ordered by created_at
// ascending.
func (uc *LedgerUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.LedgerEntry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.entryRepo.ListByEntity(ctx, input.TenantID, input.EntityType, input.EntityID, EntryFilter{
		From:   input.From,
		To:     input.To,
		Limit:  limit,
		Offset: offset,
	})
}

// CanAddCredit checks whether a credit of amount would be accepted.
func (uc *LedgerUseCase) CanAddCredit(ctx context.Context, tenantID string, entityType domain.EntityType, entityID string, amount domain.Money) (bool, error) {
	entity, err := uc.entityRepo.GetByID(ctx, tenantID, entityID)
	if err != nil {
		return false, err
	}

	balance, err := uc.GetBalance(ctx, tenantID, entityType, entityID)
	if err != nil {
		return false, err
	}

	return entity.CanAddCredit(balance, amount), nil
}

// CanMakePayment checks whether a payment of amount would be accepted.
func (uc *LedgerUseCase) CanMakePayment(ctx context.Context, tenantID string, entityType domain.EntityType, entityID string, amount domain.Money) (bool, error) {
	entity, err := uc.entityRepo.GetByID(ctx, tenantID, entityID)
	if err != nil {
		return false, err
	}

	balance, err := uc.GetBalance(ctx, tenantID, entityType, entityID)
	if err != nil {
		return false, err
	}

	return entity.CanMakePayment(balance, amount), nil
}

func (uc *LedgerUseCase) invalidateBalance(ctx context.Context, tenantID string, entityType domain.EntityType, entityID string) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, balanceCacheKey(tenantID, entityType, entityID))
}

func (uc *LedgerUseCase) countRejection(reason string) {
	if uc.metrics != nil {
		uc.metrics.BusinessRuleRejections.WithLabelValues(reason).Inc()
	}
}

func balanceCacheKey(tenantID string, entityType domain.EntityType, entityID string) string {
	return fmt.Sprintf("balance:%s:%s:%s", tenantID, entityType, entityID)
}
