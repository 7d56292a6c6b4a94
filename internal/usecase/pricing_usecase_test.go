package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/usecase"
	"github.com/bizledger/bizledger/internal/usecase/mocks"
)

func TestPricingUseCase_QuoteSale(t *testing.T) {
	ctrl := gomock.NewController(t)
	ruleRepo := mocks.NewMockRuleRepository(ctrl)

	ruleRepo.EXPECT().ListDiscountRules(gomock.Any(), "tenant-1").Return([]domain.DiscountRule{
		{
			ID:    "bulk",
			Name:  "bulk discount",
			Type:  domain.RuleTypePercentage,
			Value: decimal.NewFromInt(10),
		},
	}, nil)
	ruleRepo.EXPECT().ListTaxRules(gomock.Any(), "tenant-1").Return([]domain.TaxRule{
		{
			ID:   "vat",
			Name: "VAT",
			Rate: decimal.NewFromInt(25),
		},
	}, nil)
	ruleRepo.EXPECT().ListDiscountCodes(gomock.Any(), "tenant-1").Return(nil, nil)

	uc := usecase.NewPricingUseCase(ruleRepo, nil)

	quote, err := uc.QuoteSale(context.Background(), usecase.QuoteSaleInput{
		TenantID: "tenant-1",
		Items: []domain.LineItem{
			{ProductID: "prod-1", Quantity: 4, UnitPrice: domain.MustMoney(25)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Subtotal.String() != "100.00" {
		t.Errorf("expected subtotal 100.00, got %s", quote.Subtotal.String())
	}
	if quote.Discount.String() != "10.00" {
		t.Errorf("expected discount 10.00, got %s", quote.Discount.String())
	}
	// Tax applies to the discounted net: 25% of 90.00.
	if quote.Tax.String() != "22.50" {
		t.Errorf("expected tax 22.50, got %s", quote.Tax.String())
	}
	if quote.FinalTotal.String() != "112.50" {
		t.Errorf("expected final total 112.50, got %s", quote.FinalTotal.String())
	}
	if quote.AppliedRule != "bulk" {
		t.Errorf("expected applied rule %q, got %q", "bulk", quote.AppliedRule)
	}
}

func TestPricingUseCase_QuoteSale_DiscountCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	ruleRepo := mocks.NewMockRuleRepository(ctrl)

	// A code replaces the rule set entirely.
	ruleRepo.EXPECT().ListDiscountRules(gomock.Any(), "tenant-1").Return([]domain.DiscountRule{
		{ID: "bulk", Name: "bulk discount", Type: domain.RuleTypePercentage, Value: decimal.NewFromInt(50)},
	}, nil)
	ruleRepo.EXPECT().ListTaxRules(gomock.Any(), "tenant-1").Return(nil, nil)
	ruleRepo.EXPECT().ListDiscountCodes(gomock.Any(), "tenant-1").Return(map[string]domain.DiscountCode{
		"SAVE10": {Code: "SAVE10", Type: domain.RuleTypePercentage, Value: decimal.NewFromInt(10)},
	}, nil)

	uc := usecase.NewPricingUseCase(ruleRepo, nil)

	quote, err := uc.QuoteSale(context.Background(), usecase.QuoteSaleInput{
		TenantID: "tenant-1",
		Items: []domain.LineItem{
			{ProductID: "prod-1", Quantity: 1, UnitPrice: domain.MustMoney(100)},
		},
		DiscountCode: "SAVE10",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Discount.String() != "10.00" {
		t.Errorf("expected code discount 10.00, got %s", quote.Discount.String())
	}
	if quote.AppliedRule != "code:SAVE10" {
		t.Errorf("expected applied rule %q, got %q", "code:SAVE10", quote.AppliedRule)
	}
}

func TestPricingUseCase_QuoteSale_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	ruleRepo := mocks.NewMockRuleRepository(ctrl)

	repoErr := errors.New("connection refused")
	ruleRepo.EXPECT().ListDiscountRules(gomock.Any(), "tenant-1").Return(nil, repoErr)

	uc := usecase.NewPricingUseCase(ruleRepo, nil)

	_, err := uc.QuoteSale(context.Background(), usecase.QuoteSaleInput{
		TenantID: "tenant-1",
		Items: []domain.LineItem{
			{ProductID: "prod-1", Quantity: 1, UnitPrice: domain.MustMoney(10)},
		},
	})
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
