package domain

import (
	"math"
	"time"
)

// MovementKind enumerates supported inventory movements.
type MovementKind string

const (
	// MovementIn is an inbound movement (receiving, purchase).
	MovementIn MovementKind = "in"
	// MovementOut is an outbound movement (sale, consumption).
	MovementOut MovementKind = "out"
	// MovementAdjustment is a signed reconciliation delta. It may move
	// stock in either direction and skips the insufficient-stock check.
	MovementAdjustment MovementKind = "adjustment"
)

// Valid reports whether the movement kind is known.
func (k MovementKind) Valid() bool {
	return k == MovementIn || k == MovementOut || k == MovementAdjustment
}

// InventoryMovement is an immutable stock-change fact. Append-only,
// same lifecycle as LedgerEntry.
type InventoryMovement struct {
	ID          string
	TenantID    string
	ProductID   string
	Kind        MovementKind
	Quantity    int64
	Reason      string
	ReferenceID string
	CreatedAt   time.Time
}

// Validate checks movement invariants before it is appended.
// Quantity must be positive for in/out and non-zero for adjustments.
func (m *InventoryMovement) Validate() error {
	switch m.Kind {
	case MovementIn, MovementOut:
		if m.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	case MovementAdjustment:
		if m.Quantity == 0 {
			return ErrInvalidQuantity
		}
	default:
		return ErrInvalidMovementKind
	}
	return nil
}

// NetEffect returns the signed stock delta of the movement.
func (m *InventoryMovement) NetEffect() int64 {
	if m.Kind == MovementOut {
		return -m.Quantity
	}
	return m.Quantity
}

// FoldStock derives current stock from a movement slice.
func FoldStock(movements []*InventoryMovement) int64 {
	var stock int64
	for _, m := range movements {
		stock += m.NetEffect()
	}
	return stock
}

// StockStatus classifies a stock level against product thresholds.
type StockStatus string

const (
	StockStatusOut    StockStatus = "out"
	StockStatusLow    StockStatus = "low"
	StockStatusNormal StockStatus = "normal"
)

// Product is a stocked item with per-product replenishment settings.
type Product struct {
	ID                  string
	TenantID            string
	Name                string
	SKU                 string
	UnitPrice           Money
	LowStockThreshold   int64
	OutOfStockThreshold int64
	LeadTimeDays        int64
	SafetyStockDays     int64
	MaxOrderQuantity    int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// StockStatusFor classifies stock for this product.
func (p *Product) StockStatusFor(stock int64) StockStatus {
	switch {
	case stock <= p.OutOfStockThreshold:
		return StockStatusOut
	case stock <= p.LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusNormal
	}
}

// TurnoverRate returns outgoing units per day over the trailing window
// ending at now. Zero for a non-positive window.
func TurnoverRate(movements []*InventoryMovement, now time.Time, window time.Duration) float64 {
	if window <= 0 {
		return 0
	}

	cutoff := now.Add(-window)

	var outgoing int64
	for _, m := range movements {
		if m.Kind != MovementOut {
			continue
		}
		if m.CreatedAt.After(cutoff) && !m.CreatedAt.After(now) {
			outgoing += m.Quantity
		}
	}

	days := window.Hours() / 24
	return float64(outgoing) / days
}

// ReorderPoint is the stock level below which replenishment should be
// triggered: average daily usage times lead time plus safety stock,
// rounded up to whole units.
func (p *Product) ReorderPoint(averageDailyUsage float64) int64 {
	if averageDailyUsage <= 0 {
		return 0
	}
	point := averageDailyUsage * float64(p.LeadTimeDays+p.SafetyStockDays)
	return int64(math.Ceil(point))
}

// ReorderQuantity recommends how many units to order: the shortfall to
// the reorder point, capped at MaxOrderQuantity, zero when stock is
// already at or above the reorder point.
func (p *Product) ReorderQuantity(reorderPoint, currentStock int64) int64 {
	if currentStock >= reorderPoint {
		return 0
	}
	qty := reorderPoint - currentStock
	if p.MaxOrderQuantity > 0 && qty > p.MaxOrderQuantity {
		qty = p.MaxOrderQuantity
	}
	return qty
}

// ReorderAdvice is the derived replenishment picture for one product.
type ReorderAdvice struct {
	ProductID    string
	CurrentStock int64
	Status       StockStatus
	TurnoverRate float64
	ReorderPoint int64
	OrderQty     int64
}
