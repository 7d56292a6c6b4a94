package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/usecase"
	"github.com/bizledger/bizledger/internal/usecase/mocks"
)

func newLedgerFixture() (*mocks.MockTxManager, *mocks.MockEntityRepository, *mocks.MockLedgerEntryRepository, *mocks.MockOutboxRepository, *usecase.LedgerUseCase) {
	txManager := mocks.NewMockTxManager()
	entityRepo := mocks.NewMockEntityRepository()
	entryRepo := mocks.NewMockLedgerEntryRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	idGen := mocks.NewMockIDGenerator()

	uc := usecase.NewLedgerUseCase(txManager, entityRepo, entryRepo, outboxRepo, idGen, usecase.LedgerConfig{})
	return txManager, entityRepo, entryRepo, outboxRepo, uc
}

func seedEntity(t *testing.T, repo *mocks.MockEntityRepository, entityType domain.EntityType, creditLimit float64) *domain.Entity {
	t.Helper()
	entity := &domain.Entity{
		ID:          "ent-1",
		TenantID:    "tenant-1",
		Type:        entityType,
		Name:        "Acme",
		CreditLimit: domain.MustMoney(creditLimit),
	}
	if err := repo.Create(context.Background(), entity); err != nil {
		t.Fatalf("seed entity: %v", err)
	}
	return entity
}

func seedEntry(t *testing.T, repo *mocks.MockLedgerEntryRepository, direction domain.Direction, amount float64) {
	t.Helper()
	err := repo.Create(context.Background(), nil, &domain.LedgerEntry{
		ID:         "seed-" + string(direction),
		TenantID:   "tenant-1",
		EntityType: domain.EntityTypeCustomer,
		EntityID:   "ent-1",
		Direction:  direction,
		Amount:     domain.MustMoney(amount),
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed entry: %v", err)
	}
}

func TestLedgerUseCase_RecordEntry(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.RecordEntryInput
		setup       func(t *testing.T, entityRepo *mocks.MockEntityRepository, entryRepo *mocks.MockLedgerEntryRepository)
		expectError error
	}{
		{
			name: "customer credit within limit",
			input: usecase.RecordEntryInput{
				TenantID:   "tenant-1",
				EntityType: domain.EntityTypeCustomer,
				EntityID:   "ent-1",
				Direction:  domain.DirectionCredit,
				Amount:     domain.MustMoney(100),
			},
			setup: func(t *testing.T, entityRepo *mocks.MockEntityRepository, entryRepo *mocks.MockLedgerEntryRepository) {
				seedEntity(t, entityRepo, domain.EntityTypeCustomer, 1000)
			},
		},
		{
			name: "credit exactly at the limit passes",
			input: usecase.RecordEntryInput{
				TenantID:   "tenant-1",
				EntityType: domain.EntityTypeCustomer,
				EntityID:   "ent-1",
				Direction:  domain.DirectionCredit,
				Amount:     domain.MustMoney(400),
			},
			setup: func(t *testing.T, entityRepo *mocks.MockEntityRepository, entryRepo *mocks.MockLedgerEntryRepository) {
				seedEntity(t, entityRepo, domain.EntityTypeCustomer, 1000)
				seedEntry(t, entryRepo, domain.DirectionCredit, 600)
			},
		},
		{
			name: "credit over the limit is rejected",
			input: usecase.RecordEntryInput{
				TenantID:   "tenant-1",
				EntityType: domain.EntityTypeCustomer,
				EntityID:   "ent-1",
				Direction:  domain.DirectionCredit,
				Amount:     domain.MustMoney(401),
			},
			setup: func(t *testing.T, entityRepo *mocks.MockEntityRepository, entryRepo *mocks.MockLedgerEntryRepository) {
				seedEntity(t, entityRepo, domain.EntityTypeCustomer, 1000)
				seedEntry(t, entryRepo, domain.DirectionCredit, 600)
			},
			expectError: domain.ErrCreditLimitExceeded,
		},
		{
			name: "payment exceeding outstanding balance is rejected",
			input: usecase.RecordEntryInput{
				TenantID:   "tenant-1",
				EntityType: domain.EntityTypeCustomer,
				EntityID:   "ent-1",
				Direction:  domain.DirectionDebit,
				Amount:     domain.MustMoney(150),
			},
			setup: func(t *testing.T, entityRepo *mocks.MockEntityRepository, entryRepo *mocks.MockLedgerEntryRepository) {
				seedEntity(t, entityRepo, domain.EntityTypeCustomer, 1000)
				seedEntry(t, entryRepo, domain.DirectionCredit, 100)
			},
			expectError: domain.ErrPaymentExceedsBalance,
		},
		{
			name: "invalid direction",
			input: usecase.RecordEntryInput{
				TenantID:   "tenant-1",
				EntityType: domain.EntityTypeCustomer,
				EntityID:   "ent-1",
				Direction:  domain.Direction("sideways"),
				Amount:     domain.MustMoney(10),
			},
			setup: func(t *testing.T, entityRepo *mocks.MockEntityRepository, entryRepo *mocks.MockLedgerEntryRepository) {
				seedEntity(t, entityRepo, domain.EntityTypeCustomer, 1000)
			},
			expectError: domain.ErrInvalidDirection,
		},
		{
			name: "zero amount",
			input: usecase.RecordEntryInput{
				TenantID:   "tenant-1",
				EntityType: domain.EntityTypeCustomer,
				EntityID:   "ent-1",
				Direction:  domain.DirectionCredit,
				Amount:     domain.ZeroMoney,
			},
			setup: func(t *testing.T, entityRepo *mocks.MockEntityRepository, entryRepo *mocks.MockLedgerEntryRepository) {
				seedEntity(t, entityRepo, domain.EntityTypeCustomer, 1000)
			},
			expectError: domain.ErrAmountTooSmall,
		},
		{
			name: "unknown entity",
			input: usecase.RecordEntryInput{
				TenantID:   "tenant-1",
				EntityType: domain.EntityTypeCustomer,
				EntityID:   "missing",
				Direction:  domain.DirectionCredit,
				Amount:     domain.MustMoney(10),
			},
			setup:       func(t *testing.T, entityRepo *mocks.MockEntityRepository, entryRepo *mocks.MockLedgerEntryRepository) {},
			expectError: domain.ErrEntityNotFound,
		},
		{
			name: "entity type mismatch",
			input: usecase.RecordEntryInput{
				TenantID:   "tenant-1",
				EntityType: domain.EntityTypeSupplier,
				EntityID:   "ent-1",
				Direction:  domain.DirectionDebit,
				Amount:     domain.MustMoney(10),
			},
			setup: func(t *testing.T, entityRepo *mocks.MockEntityRepository, entryRepo *mocks.MockLedgerEntryRepository) {
				seedEntity(t, entityRepo, domain.EntityTypeCustomer, 1000)
			},
			expectError: domain.ErrEntityNotFound,
		},
		{
			name: "supplier debit records what we owe",
			input: usecase.RecordEntryInput{
				TenantID:   "tenant-1",
				EntityType: domain.EntityTypeSupplier,
				EntityID:   "ent-1",
				Direction:  domain.DirectionDebit,
				Amount:     domain.MustMoney(250),
			},
			setup: func(t *testing.T, entityRepo *mocks.MockEntityRepository, entryRepo *mocks.MockLedgerEntryRepository) {
				seedEntity(t, entityRepo, domain.EntityTypeSupplier, 1000)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, entityRepo, entryRepo, outboxRepo, uc := newLedgerFixture()
			tt.setup(t, entityRepo, entryRepo)

			entry, err := uc.RecordEntry(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				if len(outboxRepo.Events()) != 0 {
					t.Error("rejected entry must not emit an outbox event")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if entry == nil {
				t.Fatal("expected entry, got nil")
			}
			if entry.ID == "" {
				t.Error("expected generated ID")
			}

			events := outboxRepo.Events()
			if len(events) != 1 {
				t.Fatalf("expected 1 outbox event, got %d", len(events))
			}
			if events[0].EventType != domain.EventTypeEntryRecorded {
				t.Errorf("expected event type %q, got %q", domain.EventTypeEntryRecorded, events[0].EventType)
			}
			if events[0].AggregateID != entry.ID {
				t.Errorf("expected aggregate ID %q, got %q", entry.ID, events[0].AggregateID)
			}
		})
	}
}

func TestLedgerUseCase_RecordEntry_CommitsTransaction(t *testing.T) {
	txManager, entityRepo, _, _, uc := newLedgerFixture()
	seedEntity(t, entityRepo, domain.EntityTypeCustomer, 1000)

	_, err := uc.RecordEntry(context.Background(), usecase.RecordEntryInput{
		TenantID:   "tenant-1",
		EntityType: domain.EntityTypeCustomer,
		EntityID:   "ent-1",
		Direction:  domain.DirectionCredit,
		Amount:     domain.MustMoney(50),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if txManager.LastTx == nil || !txManager.LastTx.Committed {
		t.Error("expected transaction to be committed")
	}
}

func TestLedgerUseCase_RecordEntry_RollsBackOnRejection(t *testing.T) {
	txManager, entityRepo, entryRepo, _, uc := newLedgerFixture()
	seedEntity(t, entityRepo, domain.EntityTypeCustomer, 100)
	seedEntry(t, entryRepo, domain.DirectionCredit, 100)

	_, err := uc.RecordEntry(context.Background(), usecase.RecordEntryInput{
		TenantID:   "tenant-1",
		EntityType: domain.EntityTypeCustomer,
		EntityID:   "ent-1",
		Direction:  domain.DirectionCredit,
		Amount:     domain.MustMoney(1),
	})
	if !errors.Is(err, domain.ErrCreditLimitExceeded) {
		t.Fatalf("expected ErrCreditLimitExceeded, got %v", err)
	}

	if txManager.LastTx == nil || !txManager.LastTx.RolledBack {
		t.Error("expected transaction to be rolled back")
	}
}

func TestLedgerUseCase_GetBalance(t *testing.T) {
	_, entityRepo, entryRepo, _, uc := newLedgerFixture()
	seedEntity(t, entityRepo, domain.EntityTypeCustomer, 1000)
	seedEntry(t, entryRepo, domain.DirectionCredit, 100)
	seedEntry(t, entryRepo, domain.DirectionDebit, 40)

	balance, err := uc.GetBalance(context.Background(), "tenant-1", domain.EntityTypeCustomer, "ent-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance.String() != "60.00" {
		t.Errorf("expected balance 60.00, got %s", balance.String())
	}
}

func TestLedgerUseCase_GetBalance_UsesCache(t *testing.T) {
	txManager := mocks.NewMockTxManager()
	entityRepo := mocks.NewMockEntityRepository()
	entryRepo := mocks.NewMockLedgerEntryRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	idGen := mocks.NewMockIDGenerator()
	cache := mocks.NewMockCache()

	uc := usecase.NewLedgerUseCase(txManager, entityRepo, entryRepo, outboxRepo, idGen, usecase.LedgerConfig{
		Cache:    cache,
		CacheTTL: time.Minute,
	})

	seedEntity(t, entityRepo, domain.EntityTypeCustomer, 1000)
	seedEntry(t, entryRepo, domain.DirectionCredit, 75)

	// First read folds and populates the cache.
	balance, err := uc.GetBalance(context.Background(), "tenant-1", domain.EntityTypeCustomer, "ent-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance.String() != "75.00" {
		t.Errorf("expected 75.00, got %s", balance.String())
	}

	// Second read must be served from the cache, not the repository.
	listCalls := 0
	entryRepo.ListByEntityFunc = func(ctx context.Context, tenantID string, entityType domain.EntityType, entityID string, filter usecase.EntryFilter) ([]*domain.LedgerEntry, error) {
		listCalls++
		return nil, nil
	}

	balance, err = uc.GetBalance(context.Background(), "tenant-1", domain.EntityTypeCustomer, "ent-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance.String() != "75.00" {
		t.Errorf("expected cached 75.00, got %s", balance.String())
	}
	if listCalls != 0 {
		t.Errorf("expected 0 repository reads, got %d", listCalls)
	}
}

func TestLedgerUseCase_RecordEntry_InvalidatesCache(t *testing.T) {
	txManager := mocks.NewMockTxManager()
	entityRepo := mocks.NewMockEntityRepository()
	entryRepo := mocks.NewMockLedgerEntryRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	idGen := mocks.NewMockIDGenerator()
	cache := mocks.NewMockCache()

	uc := usecase.NewLedgerUseCase(txManager, entityRepo, entryRepo, outboxRepo, idGen, usecase.LedgerConfig{
		Cache:    cache,
		CacheTTL: time.Minute,
	})

	seedEntity(t, entityRepo, domain.EntityTypeCustomer, 1000)

	if _, err := uc.GetBalance(context.Background(), "tenant-1", domain.EntityTypeCustomer, "ent-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.RecordEntry(context.Background(), usecase.RecordEntryInput{
		TenantID:   "tenant-1",
		EntityType: domain.EntityTypeCustomer,
		EntityID:   "ent-1",
		Direction:  domain.DirectionCredit,
		Amount:     domain.MustMoney(30),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	balance, err := uc.GetBalance(context.Background(), "tenant-1", domain.EntityTypeCustomer, "ent-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance.String() != "30.00" {
		t.Errorf("expected fresh balance 30.00 after append, got %s", balance.String())
	}
}

func TestLedgerUseCase_GetSummary(t *testing.T) {
	_, entityRepo, entryRepo, _, uc := newLedgerFixture()
	seedEntity(t, entityRepo, domain.EntityTypeCustomer, 1000)
	seedEntry(t, entryRepo, domain.DirectionCredit, 100)
	seedEntry(t, entryRepo, domain.DirectionCredit, 50)
	seedEntry(t, entryRepo, domain.DirectionDebit, 30)

	summary, err := uc.GetSummary(context.Background(), "tenant-1", domain.EntityTypeCustomer, "ent-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalCredit.String() != "150.00" {
		t.Errorf("expected total credit 150.00, got %s", summary.TotalCredit.String())
	}
	if summary.TotalDebit.String() != "30.00" {
		t.Errorf("expected total debit 30.00, got %s", summary.TotalDebit.String())
	}
	if summary.Balance.String() != "120.00" {
		t.Errorf("expected balance 120.00, got %s", summary.Balance.String())
	}
	if summary.OrderCount != 3 {
		t.Errorf("expected 3 orders, got %d", summary.OrderCount)
	}
}

func TestLedgerUseCase_CanAddCredit(t *testing.T) {
	_, entityRepo, entryRepo, _, uc := newLedgerFixture()
	seedEntity(t, entityRepo, domain.EntityTypeCustomer, 100)
	seedEntry(t, entryRepo, domain.DirectionCredit, 60)

	ok, err := uc.CanAddCredit(context.Background(), "tenant-1", domain.EntityTypeCustomer, "ent-1", domain.MustMoney(40))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected credit of 40 against headroom 40 to be allowed")
	}

	ok, err = uc.CanAddCredit(context.Background(), "tenant-1", domain.EntityTypeCustomer, "ent-1", domain.MustMoney(41))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected credit of 41 against headroom 40 to be refused")
	}
}

func TestLedgerUseCase_CanMakePayment(t *testing.T) {
	_, entityRepo, entryRepo, _, uc := newLedgerFixture()
	seedEntity(t, entityRepo, domain.EntityTypeCustomer, 100)
	seedEntry(t, entryRepo, domain.DirectionCredit, 60)

	ok, err := uc.CanMakePayment(context.Background(), "tenant-1", domain.EntityTypeCustomer, "ent-1", domain.MustMoney(60))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected payment equal to balance to be allowed")
	}

	ok, err = uc.CanMakePayment(context.Background(), "tenant-1", domain.EntityTypeCustomer, "ent-1", domain.MustMoney(61))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected payment above balance to be refused")
	}
}

func TestLedgerUseCase_RecordEntry_RetriesTransientFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	retrier := mocks.NewMockRetrier(ctrl)
	retrier.EXPECT().Retry(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, op func() error) error {
			// Re-run once on failure, as the backoff retrier would.
			if err := op(); err != nil {
				return op()
			}
			return nil
		})

	txManager := mocks.NewMockTxManager()
	begins := 0
	txManager.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		begins++
		if begins == 1 {
			return nil, errors.New("deadlock detected")
		}
		return &mocks.MockTransaction{}, nil
	}

	entityRepo := mocks.NewMockEntityRepository()
	entryRepo := mocks.NewMockLedgerEntryRepository()
	outboxRepo := mocks.NewMockOutboxRepository()

	uc := usecase.NewLedgerUseCase(txManager, entityRepo, entryRepo, outboxRepo, mocks.NewMockIDGenerator(), usecase.LedgerConfig{
		Retrier: retrier,
	})

	seedEntity(t, entityRepo, domain.EntityTypeCustomer, 1000)

	entry, err := uc.RecordEntry(context.Background(), usecase.RecordEntryInput{
		TenantID:   "tenant-1",
		EntityType: domain.EntityTypeCustomer,
		EntityID:   "ent-1",
		Direction:  domain.DirectionCredit,
		Amount:     domain.MustMoney(100),
	})
	if err != nil {
		t.Fatalf("expected retried append to succeed, got %v", err)
	}
	if entry == nil {
		t.Fatal("expected the recorded entry back")
	}
	if begins != 2 {
		t.Fatalf("expected two transaction attempts, got %d", begins)
	}
}
