package usecase

import (
	"context"
	"time"

	"github.com/bizledger/bizledger/internal/domain"
)

// ProductDefaults carries configured per-product fallbacks.
type ProductDefaults struct {
	LowStockThreshold   int64
	OutOfStockThreshold int64
	LeadTimeDays        int64
	SafetyStockDays     int64
	MaxOrderQuantity    int64
}

// ProductUseCase handles product management.
type ProductUseCase struct {
	productRepo ProductRepository
	idGen       IDGenerator
	defaults    ProductDefaults
}

// NewProductUseCase creates a new ProductUseCase.
func NewProductUseCase(productRepo ProductRepository, idGen IDGenerator, defaults ProductDefaults) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		idGen:       idGen,
		defaults:    defaults,
	}
}

// CreateProductInput represents input for creating a product.
type CreateProductInput struct {
	TenantID            string
	Name                string
	SKU                 string
	UnitPrice           domain.Money
	LowStockThreshold   *int64
	OutOfStockThreshold *int64
	LeadTimeDays        *int64
	SafetyStockDays     *int64
	MaxOrderQuantity    *int64
}

// CreateProduct creates a new product, filling configured defaults for
// thresholds and replenishment settings that were not supplied.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if err := domain.ValidateTenantID(input.TenantID); err != nil {
		return nil, err
	}
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateSKU(input.SKU); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:                  uc.idGen.Generate(),
		TenantID:            input.TenantID,
		Name:                input.Name,
		SKU:                 input.SKU,
		UnitPrice:           input.UnitPrice,
		LowStockThreshold:   orDefault(input.LowStockThreshold, uc.defaults.LowStockThreshold),
		OutOfStockThreshold: orDefault(input.OutOfStockThreshold, uc.defaults.OutOfStockThreshold),
		LeadTimeDays:        orDefault(input.LeadTimeDays, uc.defaults.LeadTimeDays),
		SafetyStockDays:     orDefault(input.SafetyStockDays, uc.defaults.SafetyStockDays),
		MaxOrderQuantity:    orDefault(input.MaxOrderQuantity, uc.defaults.MaxOrderQuantity),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID.
func (uc *ProductUseCase) GetProduct(ctx context.Context, tenantID, id string) (*domain.Product, error) {
	return uc.productRepo.GetByID(ctx, tenantID, id)
}

// ListProductsInput represents input for listing products.
type ListProductsInput struct {
	TenantID string
	Limit    int
	Offset   int
}

// ListProducts lists products with pagination.
func (uc *ProductUseCase) ListProducts(ctx context.Context, input ListProductsInput) ([]*domain.Product, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.productRepo.List(ctx, input.TenantID, limit, offset)
}

func orDefault(value *int64, fallback int64) int64 {
	if value != nil {
		return *value
	}
	return fallback
}
