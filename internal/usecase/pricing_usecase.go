package usecase

import (
	"context"

	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/infrastructure/metrics"
)

// PricingUseCase prices prospective sales. Rule sets are loaded fresh
// per quote and passed to the pure domain computation as immutable
// values; nothing on this service mutates between calls.
type PricingUseCase struct {
	ruleRepo RuleRepository
	metrics  *metrics.Metrics
}

// NewPricingUseCase creates a new PricingUseCase.
func NewPricingUseCase(ruleRepo RuleRepository, m *metrics.Metrics) *PricingUseCase {
	return &PricingUseCase{ruleRepo: ruleRepo, metrics: m}
}

// QuoteSaleInput represents input for pricing a sale.
type QuoteSaleInput struct {
	TenantID     string
	Items        []domain.LineItem
	CustomerType string
	DiscountCode string
}

// QuoteSale computes the deterministic price breakdown of a sale.
// Rule resolution is lenient: unknown codes and unmatched rules yield
// a zero discount, never an error.
func (uc *PricingUseCase) QuoteSale(ctx context.Context, input QuoteSaleInput) (domain.PriceQuote, error) {
	discounts, err := uc.ruleRepo.ListDiscountRules(ctx, input.TenantID)
	if err != nil {
		return domain.PriceQuote{}, err
	}

	taxes, err := uc.ruleRepo.ListTaxRules(ctx, input.TenantID)
	if err != nil {
		return domain.PriceQuote{}, err
	}

	codes, err := uc.ruleRepo.ListDiscountCodes(ctx, input.TenantID)
	if err != nil {
		return domain.PriceQuote{}, err
	}

	quote := domain.ComputeQuote(domain.QuoteInput{
		Items:        input.Items,
		CustomerType: input.CustomerType,
		DiscountCode: input.DiscountCode,
	}, domain.PricingConfig{
		Discounts: discounts,
		Taxes:     taxes,
		Codes:     codes,
	})

	if uc.metrics != nil {
		uc.metrics.QuotesComputed.Inc()
	}

	return quote, nil
}
