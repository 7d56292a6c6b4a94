package integration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/bizledger/bizledger/internal/adapter/repository/postgres"
	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/usecase"
	"github.com/bizledger/bizledger/tests/testutil"
)

func TestInventoryRecordMovement(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	inventoryUC := newInventoryUC(testDB)

	t.Run("movements fold into stock", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		product := testDB.CreateTestProduct(ctx, "tenant-1", "Widget", "WID-001", domain.MustMoney(25))

		_, err := inventoryUC.RecordMovement(ctx, usecase.RecordMovementInput{
			TenantID:  "tenant-1",
			ProductID: product.ID,
			Kind:      domain.MovementIn,
			Quantity:  100,
			Reason:    "initial stock",
		})
		if err != nil {
			t.Fatalf("failed to record inbound movement: %v", err)
		}

		_, err = inventoryUC.RecordMovement(ctx, usecase.RecordMovementInput{
			TenantID:  "tenant-1",
			ProductID: product.ID,
			Kind:      domain.MovementOut,
			Quantity:  30,
			Reason:    "order shipped",
		})
		if err != nil {
			t.Fatalf("failed to record outbound movement: %v", err)
		}

		_, err = inventoryUC.RecordMovement(ctx, usecase.RecordMovementInput{
			TenantID:  "tenant-1",
			ProductID: product.ID,
			Kind:      domain.MovementAdjustment,
			Quantity:  -5,
			Reason:    "shrinkage",
		})
		if err != nil {
			t.Fatalf("failed to record adjustment: %v", err)
		}

		stock, err := inventoryUC.GetStock(ctx, "tenant-1", product.ID)
		if err != nil {
			t.Fatalf("failed to get stock: %v", err)
		}
		if stock != 65 {
			t.Fatalf("expected stock 65, got %d", stock)
		}
	})

	t.Run("outbound movement cannot oversell", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		product := testDB.CreateTestProduct(ctx, "tenant-1", "Widget", "WID-001", domain.MustMoney(25))

		_, err := inventoryUC.RecordMovement(ctx, usecase.RecordMovementInput{
			TenantID:  "tenant-1",
			ProductID: product.ID,
			Kind:      domain.MovementIn,
			Quantity:  10,
			Reason:    "initial stock",
		})
		if err != nil {
			t.Fatalf("failed to record inbound movement: %v", err)
		}

		_, err = inventoryUC.RecordMovement(ctx, usecase.RecordMovementInput{
			TenantID:  "tenant-1",
			ProductID: product.ID,
			Kind:      domain.MovementOut,
			Quantity:  11,
			Reason:    "order shipped",
		})
		if !errors.Is(err, domain.ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
	})

	t.Run("tenant isolation", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		product := testDB.CreateTestProduct(ctx, "tenant-1", "Widget", "WID-001", domain.MustMoney(25))

		_, err := inventoryUC.RecordMovement(ctx, usecase.RecordMovementInput{
			TenantID:  "tenant-2",
			ProductID: product.ID,
			Kind:      domain.MovementIn,
			Quantity:  1,
			Reason:    "initial stock",
		})
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound for foreign tenant, got %v", err)
		}
	})
}

func TestConcurrentOutMovementsNeverOversell(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	inventoryUC := newInventoryUC(testDB)

	testDB.TruncateAll(ctx)

	// Stock allows exactly 50 outbound movements of 10.
	product := testDB.CreateTestProduct(ctx, "tenant-1", "Widget", "WID-001", domain.MustMoney(25))

	_, err := inventoryUC.RecordMovement(ctx, usecase.RecordMovementInput{
		TenantID:  "tenant-1",
		ProductID: product.ID,
		Kind:      domain.MovementIn,
		Quantity:  500,
		Reason:    "initial stock",
	})
	if err != nil {
		t.Fatalf("failed to seed stock: %v", err)
	}

	numMovements := 100

	var (
		wg            sync.WaitGroup
		successCount  atomic.Int32
		rejectedCount atomic.Int32
	)

	wg.Add(numMovements)

	for range numMovements {
		go func() {
			defer wg.Done()

			_, err := inventoryUC.RecordMovement(ctx, usecase.RecordMovementInput{
				TenantID:  "tenant-1",
				ProductID: product.ID,
				Kind:      domain.MovementOut,
				Quantity:  10,
				Reason:    "order shipped",
			})

			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				rejectedCount.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 50 {
		t.Fatalf("expected exactly 50 movements within available stock, got %d", successCount.Load())
	}
	if rejectedCount.Load() != 50 {
		t.Fatalf("expected 50 rejections, got %d", rejectedCount.Load())
	}

	stock, err := inventoryUC.GetStock(ctx, "tenant-1", product.ID)
	if err != nil {
		t.Fatalf("failed to get stock: %v", err)
	}
	if stock != 0 {
		t.Fatalf("expected stock drained to zero, got %d", stock)
	}
}

func newInventoryUC(testDB *testutil.TestDB) *usecase.InventoryUseCase {
	pool := testDB.Pool

	return usecase.NewInventoryUseCase(
		postgres.NewTxManager(pool),
		postgres.NewProductRepository(pool),
		postgres.NewMovementRepository(pool),
		postgres.NewOutboxRepository(pool),
		postgres.NewULIDGenerator(),
		usecase.InventoryConfig{Retrier: postgres.NewRetrier()},
	)
}
