package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityType distinguishes the two sides of the business ledger.
type EntityType string

const (
	// EntityTypeCustomer owes the business money.
	EntityTypeCustomer EntityType = "customer"
	// EntityTypeSupplier is owed money by the business.
	EntityTypeSupplier EntityType = "supplier"
)

// Valid reports whether the entity type is known.
func (t EntityType) Valid() bool {
	return t == EntityTypeCustomer || t == EntityTypeSupplier
}

// Direction is the financial direction of a ledger entry.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// Valid reports whether the direction is known.
func (d Direction) Valid() bool {
	return d == DirectionCredit || d == DirectionDebit
}

// LedgerEntry is an immutable financial fact tied to a customer or
// supplier. Entries are append-only: once written they are never
// mutated or deleted, so the entry stream doubles as the audit trail.
type LedgerEntry struct {
	ID          string
	TenantID    string
	EntityType  EntityType
	EntityID    string
	Direction   Direction
	Amount      Money
	Description string
	ReferenceID string
	CreatedAt   time.Time
}

// Validate checks entry invariants before it is appended.
func (e *LedgerEntry) Validate() error {
	if !e.EntityType.Valid() {
		return ErrInvalidEntityType
	}
	if !e.Direction.Valid() {
		return ErrInvalidDirection
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// BalanceImpact returns the signed effect of the entry on its entity's
// balance. The sign convention differs by entity type:
//   - customer: credit raises the receivable, debit lowers it
//   - supplier: debit raises the payable, credit lowers it
func (e *LedgerEntry) BalanceImpact() Balance {
	positive := e.EntityType == EntityTypeCustomer && e.Direction == DirectionCredit ||
		e.EntityType == EntityTypeSupplier && e.Direction == DirectionDebit
	if positive {
		return e.Amount.AsBalance()
	}
	return e.Amount.AsBalance().Neg()
}

// FoldBalance derives the current balance from an entry slice.
// Pure and idempotent: the same entries always fold to the same balance,
// regardless of order.
func FoldBalance(entries []*LedgerEntry) Balance {
	balance := ZeroBalance
	for _, e := range entries {
		balance = balance.Add(e.BalanceImpact())
	}
	return balance
}

// HasOutstandingBalance reports whether the entity still owes (or is
// owed) anything: balance strictly greater than zero.
func HasOutstandingBalance(balance Balance) bool {
	return balance.IsPositive()
}

// Entity is a customer or supplier whose ledger stream is tracked.
type Entity struct {
	ID          string
	TenantID    string
	Type        EntityType
	Name        string
	CreditLimit Money
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanAddCredit reports whether a credit of amount may be appended given
// the current balance. False if amount is not positive or the resulting
// balance would exceed the entity's credit limit.
func (en *Entity) CanAddCredit(balance Balance, amount Money) bool {
	if !amount.IsPositive() {
		return false
	}
	next := balance.Add(amount.AsBalance())
	return next.Cmp(en.CreditLimit.AsBalance()) <= 0
}

// CanMakePayment reports whether a payment of amount may be appended.
// False if amount is not positive or exceeds the current balance:
// a payment cannot drive the balance past zero.
func (en *Entity) CanMakePayment(balance Balance, amount Money) bool {
	if !amount.IsPositive() {
		return false
	}
	return amount.AsBalance().Cmp(balance) <= 0
}

// EntitySummary is the derived financial summary of one entity.
type EntitySummary struct {
	TotalCredit       Money
	TotalDebit        Money
	Balance           Balance
	OrderCount        int
	AverageOrderValue Money
	LastActivityAt    *time.Time
}

// SummarizeEntries folds an entry slice into an EntitySummary.
// Order count is the number of credit entries; average order value is
// total credit over order count, zero when there are no orders.
func SummarizeEntries(entries []*LedgerEntry) EntitySummary {
	summary := EntitySummary{}

	var lastActivity time.Time
	for _, e := range entries {
		switch e.Direction {
		case DirectionCredit:
			summary.TotalCredit = summary.TotalCredit.Add(e.Amount)
			summary.OrderCount++
		case DirectionDebit:
			summary.TotalDebit = summary.TotalDebit.Add(e.Amount)
		}

		if e.CreatedAt.After(lastActivity) {
			lastActivity = e.CreatedAt
		}
	}

	summary.Balance = FoldBalance(entries)

	if summary.OrderCount > 0 {
		avg, err := summary.TotalCredit.Div(decimal.NewFromInt(int64(summary.OrderCount)))
		if err == nil {
			summary.AverageOrderValue = avg
		}
	}

	if !lastActivity.IsZero() {
		summary.LastActivityAt = &lastActivity
	}

	return summary
}
