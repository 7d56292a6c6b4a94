package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/usecase"
	"github.com/bizledger/bizledger/internal/usecase/mocks"
)

func TestEntityUseCase_CreateEntity(t *testing.T) {
	limit := domain.MustMoney(2500)

	tests := []struct {
		name        string
		input       usecase.CreateEntityInput
		wantLimit   string
		expectError error
	}{
		{
			name: "customer with explicit credit limit",
			input: usecase.CreateEntityInput{
				TenantID:    "tenant-1",
				Type:        domain.EntityTypeCustomer,
				Name:        "Acme Corp",
				CreditLimit: &limit,
			},
			wantLimit: "2500.00",
		},
		{
			name: "supplier falls back to the default limit",
			input: usecase.CreateEntityInput{
				TenantID: "tenant-1",
				Type:     domain.EntityTypeSupplier,
				Name:     "Parts Inc",
			},
			wantLimit: "10000.00",
		},
		{
			name: "invalid type",
			input: usecase.CreateEntityInput{
				TenantID: "tenant-1",
				Type:     domain.EntityType("vendor"),
				Name:     "Acme Corp",
			},
			expectError: domain.ErrInvalidEntityType,
		},
		{
			name: "empty name",
			input: usecase.CreateEntityInput{
				TenantID: "tenant-1",
				Type:     domain.EntityTypeCustomer,
				Name:     "",
			},
			expectError: domain.ErrInvalidName,
		},
		{
			name: "name too long",
			input: usecase.CreateEntityInput{
				TenantID: "tenant-1",
				Type:     domain.EntityTypeCustomer,
				Name:     strings.Repeat("x", 256),
			},
			expectError: domain.ErrInvalidName,
		},
		{
			name: "missing tenant",
			input: usecase.CreateEntityInput{
				Type: domain.EntityTypeCustomer,
				Name: "Acme Corp",
			},
			expectError: domain.ErrInvalidTenantID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockEntityRepository()
			idGen := mocks.NewMockIDGenerator()
			uc := usecase.NewEntityUseCase(repo, idGen, domain.MustMoney(10000))

			entity, err := uc.CreateEntity(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if entity.ID == "" {
				t.Error("expected generated ID")
			}
			if entity.CreditLimit.String() != tt.wantLimit {
				t.Errorf("expected credit limit %s, got %s", tt.wantLimit, entity.CreditLimit.String())
			}
		})
	}
}

func TestEntityUseCase_GetEntity(t *testing.T) {
	repo := mocks.NewMockEntityRepository()
	idGen := mocks.NewMockIDGenerator()
	uc := usecase.NewEntityUseCase(repo, idGen, domain.MustMoney(10000))

	created, err := uc.CreateEntity(context.Background(), usecase.CreateEntityInput{
		TenantID: "tenant-1",
		Type:     domain.EntityTypeCustomer,
		Name:     "Acme Corp",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := uc.GetEntity(context.Background(), "tenant-1", created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Acme Corp" {
		t.Errorf("expected name %q, got %q", "Acme Corp", got.Name)
	}

	// Another tenant must not see it.
	if _, err := uc.GetEntity(context.Background(), "tenant-2", created.ID); !errors.Is(err, domain.ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound for foreign tenant, got %v", err)
	}
}

func TestEntityUseCase_ListEntities(t *testing.T) {
	repo := mocks.NewMockEntityRepository()
	idGen := mocks.NewMockIDGenerator()
	uc := usecase.NewEntityUseCase(repo, idGen, domain.MustMoney(10000))

	if _, err := uc.ListEntities(context.Background(), usecase.ListEntitiesInput{
		TenantID: "tenant-1",
		Type:     domain.EntityType("vendor"),
	}); !errors.Is(err, domain.ErrInvalidEntityType) {
		t.Fatalf("expected ErrInvalidEntityType, got %v", err)
	}

	for _, name := range []string{"A", "B"} {
		if _, err := uc.CreateEntity(context.Background(), usecase.CreateEntityInput{
			TenantID: "tenant-1",
			Type:     domain.EntityTypeCustomer,
			Name:     name,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entities, err := uc.ListEntities(context.Background(), usecase.ListEntitiesInput{
		TenantID: "tenant-1",
		Type:     domain.EntityTypeCustomer,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entities) != 2 {
		t.Errorf("expected 2 entities, got %d", len(entities))
	}
}
