package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/infrastructure/metrics"
)

// InventoryUseCase appends stock movements and derives stock levels.
// Like the ledger, appends are serialized per product via a row lock
// so the insufficient-stock check never races a concurrent writer.
type InventoryUseCase struct {
	txManager      TransactionManager
	productRepo    ProductRepository
	movementRepo   MovementRepository
	outboxRepo     OutboxRepository
	idGen          IDGenerator
	retrier        Retrier
	cache          Cache
	cacheTTL       time.Duration
	turnoverWindow time.Duration
	metrics        *metrics.Metrics
}

// InventoryConfig groups optional settings for InventoryUseCase.
type InventoryConfig struct {
	Retrier        Retrier
	Cache          Cache
	CacheTTL       time.Duration
	TurnoverWindow time.Duration
	Metrics        *metrics.Metrics
}

// NewInventoryUseCase creates a new InventoryUseCase.
func NewInventoryUseCase(
	txManager TransactionManager,
	productRepo ProductRepository,
	movementRepo MovementRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	cfg InventoryConfig,
) *InventoryUseCase {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = time.Minute
	}
	if cfg.TurnoverWindow == 0 {
		cfg.TurnoverWindow = DefaultTurnoverWindow
	}

	return &InventoryUseCase{
		txManager:      txManager,
		productRepo:    productRepo,
		movementRepo:   movementRepo,
		outboxRepo:     outboxRepo,
		idGen:          idGen,
		retrier:        cfg.Retrier,
		cache:          cfg.Cache,
		cacheTTL:       cfg.CacheTTL,
		turnoverWindow: cfg.TurnoverWindow,
		metrics:        cfg.Metrics,
	}
}

// RecordMovementInput represents input for appending a stock movement.
type RecordMovementInput struct {
	TenantID    string
	ProductID   string
	Kind        domain.MovementKind
	Quantity    int64
	Reason      string
	ReferenceID string
}

// RecordMovement appends an inventory movement. Outgoing movements
// that would drive stock negative fail with ErrInsufficientStock;
// adjustments skip that check since they reconcile, not sell. The
// check-then-append transaction is re-run through the retrier on
// deadlock or serialization failure.
func (uc *InventoryUseCase) RecordMovement(ctx context.Context, input RecordMovementInput) (*domain.InventoryMovement, error) {
	now := time.Now().UTC()

	movement := &domain.InventoryMovement{
		ID:          uc.idGen.Generate(),
		TenantID:    input.TenantID,
		ProductID:   input.ProductID,
		Kind:        input.Kind,
		Quantity:    input.Quantity,
		Reason:      input.Reason,
		ReferenceID: input.ReferenceID,
		CreatedAt:   now,
	}

	// 0. Validate before starting the transaction
	if err := movement.Validate(); err != nil {
		return nil, err
	}

	op := func() error { return uc.recordMovementTx(ctx, movement) }

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, op)
	} else {
		err = op()
	}
	if err != nil {
		return nil, err
	}

	uc.invalidateStock(ctx, input.TenantID, input.ProductID)

	if uc.metrics != nil {
		uc.metrics.MovementsRecorded.WithLabelValues(string(input.Kind)).Inc()
	}

	return movement, nil
}

// recordMovementTx runs one locked check-then-append attempt. The
// movement keeps its ID across attempts; a failed attempt rolls back,
// so no duplicate can survive.
func (uc *InventoryUseCase) recordMovementTx(ctx context.Context, movement *domain.InventoryMovement) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	// 1. Begin transaction
	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// 2. Lock the product row (per-product append serialization)
	if _, err := uc.productRepo.GetByIDForUpdate(txCtx, tx, movement.TenantID, movement.ProductID); err != nil {
		return err
	}

	// 3. Fold current stock; the row lock makes the committed set complete
	movements, err := uc.movementRepo.ListByProduct(txCtx, movement.TenantID, movement.ProductID, MovementFilter{})
	if err != nil {
		return err
	}
	stock := domain.FoldStock(movements)

	// 4. Outgoing movements must not drive stock negative
	if movement.Kind == domain.MovementOut && stock-movement.Quantity < 0 {
		uc.countRejection("insufficient_stock")
		return domain.ErrInsufficientStock
	}

	// 5. Append the movement and the outbox event
	if err := uc.movementRepo.Create(txCtx, tx, movement); err != nil {
		return err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   movement.ID,
		AggregateType: domain.AggregateTypeInventoryMovement,
		EventType:     domain.EventTypeMovementRecorded,
		Payload: map[string]any{
			"movement_id": movement.ID,
			"tenant_id":   movement.TenantID,
			"product_id":  movement.ProductID,
			"kind":        string(movement.Kind),
			"quantity":    movement.Quantity,
			"stock":       stock + movement.NetEffect(),
		},
		CreatedAt: movement.CreatedAt,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return err
	}

	// 6. Commit
	return tx.Commit(txCtx)
}

// GetStock derives current stock for a product, read-through cached.
func (uc *InventoryUseCase) GetStock(ctx context.Context, tenantID, productID string) (int64, error) {
	key := stockCacheKey(tenantID, productID)

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, key); err == nil && cached != "" {
			if stock, perr := strconv.ParseInt(cached, 10, 64); perr == nil {
				return stock, nil
			}
		}
	}

	if _, err := uc.productRepo.GetByID(ctx, tenantID, productID); err != nil {
		return 0, err
	}

	movements, err := uc.movementRepo.ListByProduct(ctx, tenantID, productID, MovementFilter{})
	if err != nil {
		return 0, err
	}

	stock := domain.FoldStock(movements)

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, key, strconv.FormatInt(stock, 10), uc.cacheTTL)
	}

	return stock, nil
}

// StockLevel is the derived stock picture of one product.
type StockLevel struct {
	ProductID string
	Stock     int64
	Status    domain.StockStatus
}

// GetStockLevel derives stock and its status classification.
func (uc *InventoryUseCase) GetStockLevel(ctx context.Context, tenantID, productID string) (StockLevel, error) {
	product, err := uc.productRepo.GetByID(ctx, tenantID, productID)
	if err != nil {
		return StockLevel{}, err
	}

	stock, err := uc.GetStock(ctx, tenantID, productID)
	if err != nil {
		return StockLevel{}, err
	}

	return StockLevel{
		ProductID: productID,
		Stock:     stock,
		Status:    product.StockStatusFor(stock),
	}, nil
}

// GetTurnover computes the outgoing units/day rate over the configured
// trailing window.
func (uc *InventoryUseCase) GetTurnover(ctx context.Context, tenantID, productID string) (float64, error) {
	if _, err := uc.productRepo.GetByID(ctx, tenantID, productID); err != nil {
		return 0, err
	}

	movements, err := uc.movementRepo.ListByProduct(ctx, tenantID, productID, MovementFilter{})
	if err != nil {
		return 0, err
	}

	return domain.TurnoverRate(movements, time.Now().UTC(), uc.turnoverWindow), nil
}

// GetReorderAdvice derives the replenishment recommendation for a
// product from its trailing usage rate and configured lead times.
func (uc *InventoryUseCase) GetReorderAdvice(ctx context.Context, tenantID, productID string) (domain.ReorderAdvice, error) {
	product, err := uc.productRepo.GetByID(ctx, tenantID, productID)
	if err != nil {
		return domain.ReorderAdvice{}, err
	}

	movements, err := uc.movementRepo.ListByProduct(ctx, tenantID, productID, MovementFilter{})
	if err != nil {
		return domain.ReorderAdvice{}, err
	}

	stock := domain.FoldStock(movements)
	turnover := domain.TurnoverRate(movements, time.Now().UTC(), uc.turnoverWindow)
	point := product.ReorderPoint(turnover)

	return domain.ReorderAdvice{
		ProductID:    productID,
		CurrentStock: stock,
		Status:       product.StockStatusFor(stock),
		TurnoverRate: turnover,
		ReorderPoint: point,
		OrderQty:     product.ReorderQuantity(point, stock),
	}, nil
}

// ListMovementsInput represents input for listing movements.
type ListMovementsInput struct {
	TenantID  string
	ProductID string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// ListMovements lists movements for a product, ordered by created_at
// ascending.
func (uc *InventoryUseCase) ListMovements(ctx context.Context, input ListMovementsInput) ([]*domain.InventoryMovement, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.movementRepo.ListByProduct(ctx, input.TenantID, input.ProductID, MovementFilter{
		From:   input.From,
		To:     input.To,
		Limit:  limit,
		Offset: offset,
	})
}

func (uc *InventoryUseCase) invalidateStock(ctx context.Context, tenantID, productID string) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, stockCacheKey(tenantID, productID))
}

func (uc *InventoryUseCase) countRejection(reason string) {
	if uc.metrics != nil {
		uc.metrics.BusinessRuleRejections.WithLabelValues(reason).Inc()
	}
}

func stockCacheKey(tenantID, productID string) string {
	return fmt.Sprintf("stock:%s:%s", tenantID, productID)
}
