package usecase

import (
	"context"
	"time"

	"github.com/bizledger/bizledger/internal/domain"
)

// EntityUseCase handles customer and supplier management.
type EntityUseCase struct {
	entityRepo         EntityRepository
	idGen              IDGenerator
	defaultCreditLimit domain.Money
}

// NewEntityUseCase creates a new EntityUseCase.
func NewEntityUseCase(entityRepo EntityRepository, idGen IDGenerator, defaultCreditLimit domain.Money) *EntityUseCase {
	return &EntityUseCase{
		entityRepo:         entityRepo,
		idGen:              idGen,
		defaultCreditLimit: defaultCreditLimit,
	}
}

// CreateEntityInput represents input for creating a customer or supplier.
type CreateEntityInput struct {
	TenantID    string
	Type        domain.EntityType
	Name        string
	CreditLimit *domain.Money
}

// CreateEntity creates a new customer or supplier. The configured
// default credit limit applies when none is given.
func (uc *EntityUseCase) CreateEntity(ctx context.Context, input CreateEntityInput) (*domain.Entity, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidEntityType
	}
	if err := domain.ValidateTenantID(input.TenantID); err != nil {
		return nil, err
	}
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	creditLimit := uc.defaultCreditLimit
	if input.CreditLimit != nil {
		creditLimit = *input.CreditLimit
	}

	now := time.Now().UTC()
	entity := &domain.Entity{
		ID:          uc.idGen.Generate(),
		TenantID:    input.TenantID,
		Type:        input.Type,
		Name:        input.Name,
		CreditLimit: creditLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.entityRepo.Create(ctx, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

// GetEntity retrieves an entity by ID.
func (uc *EntityUseCase) GetEntity(ctx context.Context, tenantID, id string) (*domain.Entity, error) {
	return uc.entityRepo.GetByID(ctx, tenantID, id)
}

// ListEntitiesInput represents input for listing entities.
type ListEntitiesInput struct {
	TenantID string
	Type     domain.EntityType
	Limit    int
	Offset   int
}

// ListEntities lists entities of one type with pagination.
func (uc *EntityUseCase) ListEntities(ctx context.Context, input ListEntitiesInput) ([]*domain.Entity, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidEntityType
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.entityRepo.List(ctx, input.TenantID, input.Type, limit, offset)
}
