package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizledger/bizledger/internal/domain"
)

// RuleRepository implements usecase.RuleRepository. Pricing rules are
// tenant-scoped configuration rows; they are read in full per quote.
type RuleRepository struct {
	pool *pgxpool.Pool
}

// NewRuleRepository creates a new RuleRepository.
func NewRuleRepository(pool *pgxpool.Pool) *RuleRepository {
	return &RuleRepository{pool: pool}
}

const listDiscountRulesSQL = `
SELECT id, name, type, value, minimum_quantity, minimum_amount, customer_type
FROM discount_rules
WHERE tenant_id = $1
ORDER BY created_at ASC`

// ListDiscountRules retrieves a tenant's discount rules.
func (r *RuleRepository) ListDiscountRules(ctx context.Context, tenantID string) ([]domain.DiscountRule, error) {
	rows, err := r.pool.Query(ctx, listDiscountRulesSQL, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.DiscountRule
	for rows.Next() {
		var (
			rule          domain.DiscountRule
			ruleType      string
			value         pgtype.Numeric
			minimumAmount pgtype.Numeric
		)

		err := rows.Scan(
			&rule.ID,
			&rule.Name,
			&ruleType,
			&value,
			&rule.MinimumQuantity,
			&minimumAmount,
			&rule.CustomerType,
		)
		if err != nil {
			return nil, err
		}

		rule.Type = domain.RuleType(ruleType)
		rule.Value = numericToDecimal(value)
		if minimumAmount.Valid {
			m := numericToMoney(minimumAmount)
			rule.MinimumAmount = &m
		}

		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

const listTaxRulesSQL = `
SELECT id, name, rate, applicable_to
FROM tax_rules
WHERE tenant_id = $1
ORDER BY created_at ASC`

// ListTaxRules retrieves a tenant's tax rules.
func (r *RuleRepository) ListTaxRules(ctx context.Context, tenantID string) ([]domain.TaxRule, error) {
	rows, err := r.pool.Query(ctx, listTaxRulesSQL, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.TaxRule
	for rows.Next() {
		var (
			rule domain.TaxRule
			rate pgtype.Numeric
		)

		if err := rows.Scan(&rule.ID, &rule.Name, &rate, &rule.ApplicableTo); err != nil {
			return nil, err
		}

		rule.Rate = numericToDecimal(rate)
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

const listDiscountCodesSQL = `
SELECT code, type, value
FROM discount_codes
WHERE tenant_id = $1`

// ListDiscountCodes retrieves a tenant's discount codes keyed by code.
func (r *RuleRepository) ListDiscountCodes(ctx context.Context, tenantID string) (map[string]domain.DiscountCode, error) {
	rows, err := r.pool.Query(ctx, listDiscountCodesSQL, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	codes := make(map[string]domain.DiscountCode)
	for rows.Next() {
		var (
			code     domain.DiscountCode
			codeType string
			value    pgtype.Numeric
		)

		if err := rows.Scan(&code.Code, &codeType, &value); err != nil {
			return nil, err
		}

		code.Type = domain.RuleType(codeType)
		code.Value = numericToDecimal(value)
		codes[code.Code] = code
	}

	return codes, rows.Err()
}
