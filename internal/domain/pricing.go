package domain

import (
	"github.com/shopspring/decimal"
)

// RuleType is how a discount value is interpreted.
type RuleType string

const (
	// RuleTypePercentage discounts a percentage of the subtotal.
	RuleTypePercentage RuleType = "percentage"
	// RuleTypeFixed discounts a flat amount.
	RuleTypeFixed RuleType = "fixed"
)

// LineItem is one line of a prospective sale.
type LineItem struct {
	ProductID string
	Quantity  int64
	UnitPrice Money
}

// DiscountRule is a configured discount with optional eligibility
// conditions. Rules are configuration values, not historical facts:
// changing a rule never alters past sales.
type DiscountRule struct {
	ID              string
	Name            string
	Type            RuleType
	Value           decimal.Decimal
	MinimumQuantity int64
	MinimumAmount   *Money
	CustomerType    string
}

// appliesTo reports whether the rule's conditions are met.
func (r *DiscountRule) appliesTo(totalQuantity int64, subtotal Money, customerType string) bool {
	if r.MinimumQuantity > 0 && totalQuantity < r.MinimumQuantity {
		return false
	}
	if r.MinimumAmount != nil && subtotal.LessThan(*r.MinimumAmount) {
		return false
	}
	if r.CustomerType != "" && r.CustomerType != customerType {
		return false
	}
	return true
}

// TaxRule adds a percentage tax on the discounted subtotal. An empty
// ApplicableTo list applies the rule to every sale; otherwise it
// applies when at least one line item's product is listed.
type TaxRule struct {
	ID           string
	Name         string
	Rate         decimal.Decimal
	ApplicableTo []string
}

// appliesTo reports whether the tax rule covers any of the items.
func (r *TaxRule) appliesTo(items []LineItem) bool {
	if len(r.ApplicableTo) == 0 {
		return true
	}
	covered := make(map[string]bool, len(r.ApplicableTo))
	for _, id := range r.ApplicableTo {
		covered[id] = true
	}
	for _, item := range items {
		if covered[item.ProductID] {
			return true
		}
	}
	return false
}

// DiscountCode is an ad-hoc override: applying a code replaces the
// rule-based discount rather than stacking with it.
type DiscountCode struct {
	Code  string
	Type  RuleType
	Value decimal.Decimal
}

// PricingConfig is the immutable rule set for one quote. It is supplied
// per call and never mutated in place.
type PricingConfig struct {
	Discounts []DiscountRule
	Taxes     []TaxRule
	Codes     map[string]DiscountCode
}

// PriceQuote is the deterministic price breakdown of a prospective sale.
type PriceQuote struct {
	Subtotal    Money
	Discount    Money
	Tax         Money
	FinalTotal  Money
	AppliedRule string
}

// QuoteInput carries everything ComputeQuote needs for one sale.
type QuoteInput struct {
	Items        []LineItem
	CustomerType string
	DiscountCode string
}

// ComputeQuote prices a sale:
//
//  1. subtotal = sum of quantity x unit price per item
//  2. discount = the single best matching discount rule (largest value
//     wins, first in list order on ties); a supplied discount code
//     replaces the rule-based discount entirely
//  3. tax = sum of every applicable tax rule, computed on subtotal
//     minus discount
//  4. final total = discounted subtotal plus tax
//
// Discounts clamp to the subtotal, so the final total is never negative.
// Unknown codes and unmatched rules degrade to zero discount rather
// than failing.
func ComputeQuote(input QuoteInput, cfg PricingConfig) PriceQuote {
	quote := PriceQuote{}

	var totalQuantity int64
	for _, item := range input.Items {
		line, err := item.UnitPrice.MulInt(item.Quantity)
		if err != nil {
			continue
		}
		quote.Subtotal = quote.Subtotal.Add(line)
		totalQuantity += item.Quantity
	}

	if input.DiscountCode != "" {
		quote.Discount, quote.AppliedRule = codeDiscount(input.DiscountCode, quote.Subtotal, cfg)
	} else {
		quote.Discount, quote.AppliedRule = bestRuleDiscount(input, totalQuantity, quote.Subtotal, cfg)
	}

	net, err := quote.Subtotal.Sub(quote.Discount)
	if err != nil {
		net = ZeroMoney
	}

	for _, rule := range cfg.Taxes {
		if !rule.appliesTo(input.Items) {
			continue
		}
		tax, terr := net.Percentage(rule.Rate)
		if terr != nil {
			continue
		}
		quote.Tax = quote.Tax.Add(tax)
	}

	quote.FinalTotal = net.Add(quote.Tax)
	return quote
}

// bestRuleDiscount picks the largest eligible discount. Ties keep the
// earlier rule.
func bestRuleDiscount(input QuoteInput, totalQuantity int64, subtotal Money, cfg PricingConfig) (Money, string) {
	best := ZeroMoney
	applied := ""

	for _, rule := range cfg.Discounts {
		if !rule.appliesTo(totalQuantity, subtotal, input.CustomerType) {
			continue
		}

		value := discountValue(rule.Type, rule.Value, subtotal)
		if value.GreaterThan(best) {
			best = value
			applied = rule.ID
		}
	}

	return best, applied
}

// codeDiscount resolves an override code. An unknown code yields zero
// discount, never an error.
func codeDiscount(code string, subtotal Money, cfg PricingConfig) (Money, string) {
	dc, ok := cfg.Codes[code]
	if !ok {
		return ZeroMoney, ""
	}
	return discountValue(dc.Type, dc.Value, subtotal), "code:" + dc.Code
}

// discountValue evaluates one discount against a subtotal, clamped so
// a fixed discount never exceeds what it discounts.
func discountValue(ruleType RuleType, value decimal.Decimal, subtotal Money) Money {
	var discount Money

	switch ruleType {
	case RuleTypePercentage:
		d, err := subtotal.Percentage(value)
		if err != nil {
			return ZeroMoney
		}
		discount = d
	case RuleTypeFixed:
		d, err := NewMoneyFromDecimal(value)
		if err != nil {
			return ZeroMoney
		}
		discount = d
	default:
		return ZeroMoney
	}

	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}
