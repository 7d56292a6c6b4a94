package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/usecase"
)

// CreateEntityRequest represents a request to create a customer or
// supplier.
type CreateEntityRequest struct {
	Type        string           `json:"type"`
	Name        string           `json:"name"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntityRequest) ToUseCaseInput(tenantID string) (usecase.CreateEntityInput, error) {
	input := usecase.CreateEntityInput{
		TenantID: tenantID,
		Type:     domain.EntityType(r.Type),
		Name:     r.Name,
	}

	if r.CreditLimit != nil {
		limit, err := domain.NewMoneyFromDecimal(*r.CreditLimit)
		if err != nil {
			return usecase.CreateEntityInput{}, err
		}
		input.CreditLimit = &limit
	}

	return input, nil
}

// RecordEntryRequest represents a request to append a ledger entry.
type RecordEntryRequest struct {
	Direction   string          `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	ReferenceID string          `json:"reference_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordEntryRequest) ToUseCaseInput(tenantID string, entityType domain.EntityType, entityID string) (usecase.RecordEntryInput, error) {
	amount, err := domain.NewMoneyFromDecimal(r.Amount)
	if err != nil {
		return usecase.RecordEntryInput{}, err
	}

	return usecase.RecordEntryInput{
		TenantID:    tenantID,
		EntityType:  entityType,
		EntityID:    entityID,
		Direction:   domain.Direction(r.Direction),
		Amount:      amount,
		Description: r.Description,
		ReferenceID: r.ReferenceID,
	}, nil
}

// CreateProductRequest represents a request to create a product.
type CreateProductRequest struct {
	Name                string          `json:"name"`
	SKU                 string          `json:"sku"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	LowStockThreshold   *int64          `json:"low_stock_threshold,omitempty"`
	OutOfStockThreshold *int64          `json:"out_of_stock_threshold,omitempty"`
	LeadTimeDays        *int64          `json:"lead_time_days,omitempty"`
	SafetyStockDays     *int64          `json:"safety_stock_days,omitempty"`
	MaxOrderQuantity    *int64          `json:"max_order_quantity,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateProductRequest) ToUseCaseInput(tenantID string) (usecase.CreateProductInput, error) {
	price, err := domain.NewMoneyFromDecimal(r.UnitPrice)
	if err != nil {
		return usecase.CreateProductInput{}, err
	}

	return usecase.CreateProductInput{
		TenantID:            tenantID,
		Name:                r.Name,
		SKU:                 r.SKU,
		UnitPrice:           price,
		LowStockThreshold:   r.LowStockThreshold,
		OutOfStockThreshold: r.OutOfStockThreshold,
		LeadTimeDays:        r.LeadTimeDays,
		SafetyStockDays:     r.SafetyStockDays,
		MaxOrderQuantity:    r.MaxOrderQuantity,
	}, nil
}

// RecordMovementRequest represents a request to append a stock
// movement.
type RecordMovementRequest struct {
	Kind        string `json:"kind"`
	Quantity    int64  `json:"quantity"`
	Reason      string `json:"reason,omitempty"`
	ReferenceID string `json:"reference_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordMovementRequest) ToUseCaseInput(tenantID, productID string) usecase.RecordMovementInput {
	return usecase.RecordMovementInput{
		TenantID:    tenantID,
		ProductID:   productID,
		Kind:        domain.MovementKind(r.Kind),
		Quantity:    r.Quantity,
		Reason:      r.Reason,
		ReferenceID: r.ReferenceID,
	}
}

// QuoteItem is one line of a quote request.
type QuoteItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// QuoteRequest represents a request to price a prospective sale.
type QuoteRequest struct {
	Items        []QuoteItem `json:"items"`
	CustomerType string      `json:"customer_type,omitempty"`
	DiscountCode string      `json:"discount_code,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *QuoteRequest) ToUseCaseInput(tenantID string) (usecase.QuoteSaleInput, error) {
	items := make([]domain.LineItem, len(r.Items))
	for i, item := range r.Items {
		price, err := domain.NewMoneyFromDecimal(item.UnitPrice)
		if err != nil {
			return usecase.QuoteSaleInput{}, err
		}
		items[i] = domain.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: price,
		}
	}

	return usecase.QuoteSaleInput{
		TenantID:     tenantID,
		Items:        items,
		CustomerType: r.CustomerType,
		DiscountCode: r.DiscountCode,
	}, nil
}

// PeriodRequest carries a reporting period parsed from query
// parameters.
type PeriodRequest struct {
	From time.Time
	To   time.Time
}

// ToPeriod converts to the domain period.
func (r PeriodRequest) ToPeriod() domain.Period {
	return domain.Period{From: r.From, To: r.To}
}
