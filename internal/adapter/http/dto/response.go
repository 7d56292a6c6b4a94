package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/usecase"
)

// EntityResponse represents a customer or supplier in API responses.
type EntityResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EntityFromDomain converts a domain entity to a response.
func EntityFromDomain(e *domain.Entity) EntityResponse {
	return EntityResponse{
		ID:          e.ID,
		Type:        string(e.Type),
		Name:        e.Name,
		CreditLimit: e.CreditLimit.Decimal(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// EntitiesFromDomain converts a slice of domain entities.
func EntitiesFromDomain(entities []*domain.Entity) []EntityResponse {
	out := make([]EntityResponse, len(entities))
	for i, e := range entities {
		out[i] = EntityFromDomain(e)
	}
	return out
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID          string          `json:"id"`
	EntityType  string          `json:"entity_type"`
	EntityID    string          `json:"entity_id"`
	Direction   string          `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	ReferenceID string          `json:"reference_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain ledger entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		EntityType:  string(e.EntityType),
		EntityID:    e.EntityID,
		Direction:   string(e.Direction),
		Amount:      e.Amount.Decimal(),
		Description: e.Description,
		ReferenceID: e.ReferenceID,
		CreatedAt:   e.CreatedAt,
	}
}

// EntriesFromDomain converts a slice of domain ledger entries.
func EntriesFromDomain(entries []*domain.LedgerEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = EntryFromDomain(e)
	}
	return out
}

// BalanceResponse represents an entity balance.
type BalanceResponse struct {
	EntityID string          `json:"entity_id"`
	Balance  decimal.Decimal `json:"balance"`
}

// SummaryResponse represents aggregate activity for an entity.
type SummaryResponse struct {
	TotalCredit       decimal.Decimal `json:"total_credit"`
	TotalDebit        decimal.Decimal `json:"total_debit"`
	Balance           decimal.Decimal `json:"balance"`
	OrderCount        int             `json:"order_count"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	LastActivityAt    *time.Time      `json:"last_activity_at,omitempty"`
}

// SummaryFromDomain converts a domain entity summary to a response.
func SummaryFromDomain(s domain.EntitySummary) SummaryResponse {
	return SummaryResponse{
		TotalCredit:       s.TotalCredit.Decimal(),
		TotalDebit:        s.TotalDebit.Decimal(),
		Balance:           s.Balance.Decimal(),
		OrderCount:        s.OrderCount,
		AverageOrderValue: s.AverageOrderValue.Decimal(),
		LastActivityAt:    s.LastActivityAt,
	}
}

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	SKU                 string          `json:"sku"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	LowStockThreshold   int64           `json:"low_stock_threshold"`
	OutOfStockThreshold int64           `json:"out_of_stock_threshold"`
	LeadTimeDays        int64           `json:"lead_time_days"`
	SafetyStockDays     int64           `json:"safety_stock_days"`
	MaxOrderQuantity    int64           `json:"max_order_quantity"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ProductFromDomain converts a domain product to a response.
func ProductFromDomain(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:                  p.ID,
		Name:                p.Name,
		SKU:                 p.SKU,
		UnitPrice:           p.UnitPrice.Decimal(),
		LowStockThreshold:   p.LowStockThreshold,
		OutOfStockThreshold: p.OutOfStockThreshold,
		LeadTimeDays:        p.LeadTimeDays,
		SafetyStockDays:     p.SafetyStockDays,
		MaxOrderQuantity:    p.MaxOrderQuantity,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// ProductsFromDomain converts a slice of domain products.
func ProductsFromDomain(products []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ProductFromDomain(p)
	}
	return out
}

// MovementResponse represents a stock movement in API responses.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Kind        string    `json:"kind"`
	Quantity    int64     `json:"quantity"`
	Reason      string    `json:"reason,omitempty"`
	ReferenceID string    `json:"reference_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementFromDomain converts a domain movement to a response.
func MovementFromDomain(m *domain.InventoryMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Kind:        string(m.Kind),
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		ReferenceID: m.ReferenceID,
		CreatedAt:   m.CreatedAt,
	}
}

// MovementsFromDomain converts a slice of domain movements.
func MovementsFromDomain(movements []*domain.InventoryMovement) []MovementResponse {
	out := make([]MovementResponse, len(movements))
	for i, m := range movements {
		out[i] = MovementFromDomain(m)
	}
	return out
}

// StockResponse represents the current stock of a product.
type StockResponse struct {
	ProductID string `json:"product_id"`
	Stock     int64  `json:"stock"`
}

// StockLevelResponse represents stock with its status classification.
type StockLevelResponse struct {
	ProductID string `json:"product_id"`
	Stock     int64  `json:"stock"`
	Status    string `json:"status"`
}

// StockLevelFromUseCase converts a use case stock level to a response.
func StockLevelFromUseCase(level usecase.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ProductID: level.ProductID,
		Stock:     level.Stock,
		Status:    string(level.Status),
	}
}

// TurnoverResponse represents a product's daily turnover rate.
type TurnoverResponse struct {
	ProductID    string  `json:"product_id"`
	TurnoverRate float64 `json:"turnover_rate"`
}

// ReorderAdviceResponse represents replenishment advice for a product.
type ReorderAdviceResponse struct {
	ProductID    string  `json:"product_id"`
	CurrentStock int64   `json:"current_stock"`
	Status       string  `json:"status"`
	TurnoverRate float64 `json:"turnover_rate"`
	ReorderPoint int64   `json:"reorder_point"`
	OrderQty     int64   `json:"order_qty"`
}

// ReorderAdviceFromDomain converts domain reorder advice to a response.
func ReorderAdviceFromDomain(a domain.ReorderAdvice) ReorderAdviceResponse {
	return ReorderAdviceResponse{
		ProductID:    a.ProductID,
		CurrentStock: a.CurrentStock,
		Status:       string(a.Status),
		TurnoverRate: a.TurnoverRate,
		ReorderPoint: a.ReorderPoint,
		OrderQty:     a.OrderQty,
	}
}

// QuoteResponse represents a computed price quote.
type QuoteResponse struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	Tax         decimal.Decimal `json:"tax"`
	FinalTotal  decimal.Decimal `json:"final_total"`
	AppliedRule string          `json:"applied_rule,omitempty"`
}

// QuoteFromDomain converts a domain price quote to a response.
func QuoteFromDomain(q domain.PriceQuote) QuoteResponse {
	return QuoteResponse{
		Subtotal:    q.Subtotal.Decimal(),
		Discount:    q.Discount.Decimal(),
		Tax:         q.Tax.Decimal(),
		FinalTotal:  q.FinalTotal.Decimal(),
		AppliedRule: q.AppliedRule,
	}
}

// ReportResponse represents a financial report for a period.
type ReportResponse struct {
	From                    time.Time       `json:"from"`
	To                      time.Time       `json:"to"`
	TotalRevenue            decimal.Decimal `json:"total_revenue"`
	TotalExpenses           decimal.Decimal `json:"total_expenses"`
	NetProfit               decimal.Decimal `json:"net_profit"`
	GrossMarginPct          float64         `json:"gross_margin_pct"`
	TransactionCount        int             `json:"transaction_count"`
	AverageTransactionValue decimal.Decimal `json:"average_transaction_value"`
	ActiveCustomers         int             `json:"active_customers"`
	CustomerAcquisitionCost decimal.Decimal `json:"customer_acquisition_cost"`
	CustomerLifetimeValue   decimal.Decimal `json:"customer_lifetime_value"`
}

// ReportFromDomain converts a domain financial report to a response.
func ReportFromDomain(r domain.FinancialReport) ReportResponse {
	return ReportResponse{
		From:                    r.Period.From,
		To:                      r.Period.To,
		TotalRevenue:            r.TotalRevenue.Decimal(),
		TotalExpenses:           r.TotalExpenses.Decimal(),
		NetProfit:               r.NetProfit.Decimal(),
		GrossMarginPct:          r.GrossMarginPct,
		TransactionCount:        r.TransactionCount,
		AverageTransactionValue: r.AverageTransactionValue.Decimal(),
		ActiveCustomers:         r.ActiveCustomers,
		CustomerAcquisitionCost: r.CustomerAcquisitionCost.Decimal(),
		CustomerLifetimeValue:   r.CustomerLifetimeValue.Decimal(),
	}
}

// KPIResponse represents key performance indicators.
type KPIResponse struct {
	RevenueGrowthPct    float64 `json:"revenue_growth_pct"`
	ProfitMarginPct     float64 `json:"profit_margin_pct"`
	OperatingEfficiency float64 `json:"operating_efficiency"`
	RetentionRatePct    float64 `json:"retention_rate_pct"`
	InventoryTurnover   float64 `json:"inventory_turnover"`
}

// KPIFromDomain converts a domain KPI report to a response.
func KPIFromDomain(r domain.KPIReport) KPIResponse {
	return KPIResponse{
		RevenueGrowthPct:    r.RevenueGrowthPct,
		ProfitMarginPct:     r.ProfitMarginPct,
		OperatingEfficiency: r.OperatingEfficiency,
		RetentionRatePct:    r.RetentionRatePct,
		InventoryTurnover:   r.InventoryTurnover,
	}
}

// CashFlowDayResponse represents one day in a cash flow statement.
type CashFlowDayResponse struct {
	Date    time.Time       `json:"date"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
}

// CashFlowFromDomain converts domain cash flow days to responses.
func CashFlowFromDomain(days []domain.CashFlowDay) []CashFlowDayResponse {
	out := make([]CashFlowDayResponse, len(days))
	for i, d := range days {
		out[i] = CashFlowDayResponse{
			Date:    d.Date,
			Inflow:  d.Inflow.Decimal(),
			Outflow: d.Outflow.Decimal(),
			Net:     d.Net.Decimal(),
		}
	}
	return out
}

// ForecastPointResponse represents one projected period.
type ForecastPointResponse struct {
	Period     int             `json:"period"`
	Revenue    decimal.Decimal `json:"revenue"`
	Confidence float64         `json:"confidence"`
}

// ForecastFromDomain converts domain forecast points to responses.
func ForecastFromDomain(points []domain.ForecastPoint) []ForecastPointResponse {
	out := make([]ForecastPointResponse, len(points))
	for i, p := range points {
		out[i] = ForecastPointResponse{
			Period:     p.Period,
			Revenue:    p.Revenue.Decimal(),
			Confidence: p.Confidence,
		}
	}
	return out
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ListResponse wraps a paginated collection.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// NewListResponse builds a ListResponse from items.
func NewListResponse[T any](items []T) ListResponse[T] {
	return ListResponse[T]{Items: items, Count: len(items)}
}
