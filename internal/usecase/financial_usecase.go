package usecase

import (
	"context"

	"github.com/bizledger/bizledger/internal/domain"
	"github.com/bizledger/bizledger/internal/infrastructure/metrics"
)

// FinancialUseCase summarizes ledger slices into reports, KPIs,
// cash-flow statements and revenue forecasts. Read-only: it never
// mutates state.
type FinancialUseCase struct {
	entryRepo    LedgerEntryRepository
	movementRepo MovementRepository
	metrics      *metrics.Metrics
}

// NewFinancialUseCase creates a new FinancialUseCase.
func NewFinancialUseCase(entryRepo LedgerEntryRepository, movementRepo MovementRepository, m *metrics.Metrics) *FinancialUseCase {
	return &FinancialUseCase{
		entryRepo:    entryRepo,
		movementRepo: movementRepo,
		metrics:      m,
	}
}

// GenerateReport folds a tenant's period entries into a financial
// report.
func (uc *FinancialUseCase) GenerateReport(ctx context.Context, tenantID string, period domain.Period) (domain.FinancialReport, error) {
	entries, err := uc.listPeriodEntries(ctx, tenantID, period)
	if err != nil {
		return domain.FinancialReport{}, err
	}

	if uc.metrics != nil {
		uc.metrics.ReportsGenerated.Inc()
	}

	return domain.BuildFinancialReport(period, entries), nil
}

// KPIInput represents input for period-over-period KPI computation.
// Prior is the caller-supplied snapshot of the comparison period;
// AverageStock is supplied by the caller since stock-over-time is not
// derivable from the period slice alone.
type KPIInput struct {
	TenantID     string
	Period       domain.Period
	Prior        domain.PeriodMetrics
	AverageStock float64
}

// GetKPIs computes KPIs for a period against a prior-period snapshot.
func (uc *FinancialUseCase) GetKPIs(ctx context.Context, input KPIInput) (domain.KPIReport, error) {
	report, err := uc.GenerateReport(ctx, input.TenantID, input.Period)
	if err != nil {
		return domain.KPIReport{}, err
	}

	current := domain.MetricsFromReport(report)
	current.AverageStock = input.AverageStock

	units, err := uc.unitsSold(ctx, input.TenantID, input.Period)
	if err != nil {
		return domain.KPIReport{}, err
	}
	current.UnitsSold = units

	return domain.ComputeKPIs(current, input.Prior), nil
}

// GetCashFlow nets a tenant's period entries by calendar day.
func (uc *FinancialUseCase) GetCashFlow(ctx context.Context, tenantID string, period domain.Period) ([]domain.CashFlowDay, error) {
	entries, err := uc.listPeriodEntries(ctx, tenantID, period)
	if err != nil {
		return nil, err
	}

	return domain.BuildCashFlow(entries), nil
}

// ForecastInput represents input for revenue forecasting.
type ForecastInput struct {
	TenantID string
	Previous domain.Period
	Latest   domain.Period
	Periods  int
}

// ForecastRevenue projects revenue from the two supplied historical
// periods. The projection is the domain layer's naive compounding
// heuristic; confidence decays per future period.
func (uc *FinancialUseCase) ForecastRevenue(ctx context.Context, input ForecastInput) ([]domain.ForecastPoint, error) {
	previous, err := uc.GenerateReport(ctx, input.TenantID, input.Previous)
	if err != nil {
		return nil, err
	}

	latest, err := uc.GenerateReport(ctx, input.TenantID, input.Latest)
	if err != nil {
		return nil, err
	}

	return domain.ForecastRevenue(previous.TotalRevenue, latest.TotalRevenue, input.Periods), nil
}

func (uc *FinancialUseCase) listPeriodEntries(ctx context.Context, tenantID string, period domain.Period) ([]*domain.LedgerEntry, error) {
	return uc.entryRepo.ListByTenant(ctx, tenantID, EntryFilter{
		From: &period.From,
		To:   &period.To,
	})
}

func (uc *FinancialUseCase) unitsSold(ctx context.Context, tenantID string, period domain.Period) (int64, error) {
	movements, err := uc.movementRepo.ListByTenant(ctx, tenantID, MovementFilter{
		From: &period.From,
		To:   &period.To,
	})
	if err != nil {
		return 0, err
	}

	var units int64
	for _, m := range movements {
		if m.Kind == domain.MovementOut {
			units += m.Quantity
		}
	}
	return units, nil
}
