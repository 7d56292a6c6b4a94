package domain

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// Money is an immutable, non-negative monetary amount with two fractional
// digits. Construction and every arithmetic operation round half-up (half
// away from zero), so NewMoney(1.005) yields 1.01. Prices, payments and
// entry amounts are Money; signed running totals are Balance.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney is the zero amount.
var ZeroMoney = Money{}

// NewMoney creates Money from a float value.
// Fails with ErrInvalidAmount on NaN, infinite or negative input.
func NewMoney(value float64) (Money, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Money{}, ErrInvalidAmount
	}
	if value < 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{amount: decimal.NewFromFloat(value).Round(2)}, nil
}

// NewMoneyFromDecimal creates Money from a decimal value.
func NewMoneyFromDecimal(value decimal.Decimal) (Money, error) {
	if value.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	return Money{amount: value.Round(2)}, nil
}

// MoneyFromString parses a decimal string into Money.
// Round-trips exactly with String: MoneyFromString(m.String()) == m.
func MoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return NewMoneyFromDecimal(d)
}

// MustMoney creates Money and panics on invalid input. Test helper.
func MustMoney(value float64) Money {
	m, err := NewMoney(value)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts.
// Fails with ErrMoneyUnderflow if the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, ErrMoneyUnderflow
	}
	return Money{amount: result}, nil
}

// Mul returns the amount scaled by a non-negative factor.
func (m Money) Mul(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, ErrInvalidFactor
	}
	return Money{amount: m.amount.Mul(factor).Round(2)}, nil
}

// MulInt returns the amount multiplied by a non-negative integer count.
func (m Money) MulInt(count int64) (Money, error) {
	return m.Mul(decimal.NewFromInt(count))
}

// Div returns the amount divided by a positive divisor.
func (m Money) Div(divisor decimal.Decimal) (Money, error) {
	if divisor.LessThanOrEqual(decimal.Zero) {
		return Money{}, ErrInvalidDivisor
	}
	return Money{amount: m.amount.Div(divisor).Round(2)}, nil
}

// Percentage returns p percent of the amount, 0 <= p <= 100.
func (m Money) Percentage(p decimal.Decimal) (Money, error) {
	if p.IsNegative() || p.GreaterThan(decimal.NewFromInt(100)) {
		return Money{}, ErrInvalidPercentage
	}
	return Money{amount: m.amount.Mul(p).Div(decimal.NewFromInt(100)).Round(2)}, nil
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, 1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// Equal reports whether two amounts are equal.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float. Exact for two-digit decimals.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String formats the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// AsBalance converts the amount into a signed balance.
func (m Money) AsBalance() Balance {
	return Balance{amount: m.amount}
}

// moneyJSON is the wire shape of Money: {"amount": 12.34, "formatted": "12.34"}.
type moneyJSON struct {
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{
		Amount:    m.Float64(),
		Formatted: m.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler. Accepts either the object
// form or a bare number.
func (m *Money) UnmarshalJSON(data []byte) error {
	var obj moneyJSON
	if err := json.Unmarshal(data, &obj); err == nil {
		if obj.Formatted != "" {
			parsed, perr := MoneyFromString(obj.Formatted)
			if perr != nil {
				return perr
			}
			*m = parsed
			return nil
		}
		parsed, perr := NewMoney(obj.Amount)
		if perr != nil {
			return perr
		}
		*m = parsed
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	parsed, err := NewMoney(value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// SumMoney returns the sum of all amounts. Empty input sums to zero.
func SumMoney(amounts []Money) Money {
	total := ZeroMoney
	for _, m := range amounts {
		total = total.Add(m)
	}
	return total
}

// AverageMoney returns the mean of the amounts.
// Fails with ErrEmptySequence on empty input.
func AverageMoney(amounts []Money) (Money, error) {
	if len(amounts) == 0 {
		return Money{}, ErrEmptySequence
	}
	return SumMoney(amounts).Div(decimal.NewFromInt(int64(len(amounts))))
}

// MaxMoney returns the largest amount.
// Fails with ErrEmptySequence on empty input.
func MaxMoney(amounts []Money) (Money, error) {
	if len(amounts) == 0 {
		return Money{}, ErrEmptySequence
	}
	max := amounts[0]
	for _, m := range amounts[1:] {
		if m.GreaterThan(max) {
			max = m
		}
	}
	return max, nil
}

// MinMoney returns the smallest amount.
// Fails with ErrEmptySequence on empty input.
func MinMoney(amounts []Money) (Money, error) {
	if len(amounts) == 0 {
		return Money{}, ErrEmptySequence
	}
	min := amounts[0]
	for _, m := range amounts[1:] {
		if m.LessThan(min) {
			min = m
		}
	}
	return min, nil
}

// Balance is a signed running total derived from ledger or stock folds.
// Unlike Money it may be negative; it carries the same two-digit rounding.
type Balance struct {
	amount decimal.Decimal
}

// ZeroBalance is the zero balance.
var ZeroBalance = Balance{}

// NewBalance creates a Balance from a decimal value.
func NewBalance(value decimal.Decimal) Balance {
	return Balance{amount: value.Round(2)}
}

// Add returns the sum of two balances.
func (b Balance) Add(other Balance) Balance {
	return Balance{amount: b.amount.Add(other.amount)}
}

// Sub returns the difference of two balances.
func (b Balance) Sub(other Balance) Balance {
	return Balance{amount: b.amount.Sub(other.amount)}
}

// Neg returns the balance with its sign flipped.
func (b Balance) Neg() Balance {
	return Balance{amount: b.amount.Neg()}
}

// Sign returns -1, 0 or 1.
func (b Balance) Sign() int {
	return b.amount.Sign()
}

// IsZero reports whether the balance is zero.
func (b Balance) IsZero() bool {
	return b.amount.IsZero()
}

// IsPositive reports whether the balance is greater than zero.
func (b Balance) IsPositive() bool {
	return b.amount.IsPositive()
}

// IsNegative reports whether the balance is less than zero.
func (b Balance) IsNegative() bool {
	return b.amount.IsNegative()
}

// Cmp compares two balances.
func (b Balance) Cmp(other Balance) int {
	return b.amount.Cmp(other.amount)
}

// Equal reports whether two balances are equal.
func (b Balance) Equal(other Balance) bool {
	return b.amount.Equal(other.amount)
}

// Abs returns the magnitude of the balance as Money.
func (b Balance) Abs() Money {
	return Money{amount: b.amount.Abs()}
}

// Decimal returns the underlying decimal value.
func (b Balance) Decimal() decimal.Decimal {
	return b.amount
}

// Float64 returns the balance as a float.
func (b Balance) Float64() float64 {
	f, _ := b.amount.Float64()
	return f
}

// String formats the balance with exactly two fractional digits.
func (b Balance) String() string {
	return b.amount.StringFixed(2)
}

// MarshalJSON implements json.Marshaler.
func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Float64())
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Balance) UnmarshalJSON(data []byte) error {
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*b = NewBalance(decimal.NewFromFloat(value))
	return nil
}
