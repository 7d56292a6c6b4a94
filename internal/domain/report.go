package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Period is a half-open date range [From, To).
type Period struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && t.Before(p.To)
}

// FinancialReport summarizes a ledger slice into business metrics.
// Invariant: TotalRevenue - TotalExpenses == NetProfit.
type FinancialReport struct {
	Period                  Period
	TotalRevenue            Money
	TotalExpenses           Money
	NetProfit               Balance
	GrossMarginPct          float64
	TransactionCount        int
	AverageTransactionValue Money
	ActiveCustomers         int
	CustomerAcquisitionCost Money
	CustomerLifetimeValue   Money
}

// BuildFinancialReport folds period entries into a report. Revenue is
// the sum of customer credits, expenses the sum of supplier debits.
// Acquisition cost and lifetime value divide expenses and revenue by
// the distinct active customer count; both are zero when no customer
// was active. The computation never mutates its inputs.
func BuildFinancialReport(period Period, entries []*LedgerEntry) FinancialReport {
	report := FinancialReport{Period: period}

	customers := make(map[string]bool)
	var amounts []Money

	for _, e := range entries {
		if !period.Contains(e.CreatedAt) {
			continue
		}

		report.TransactionCount++
		amounts = append(amounts, e.Amount)

		switch {
		case e.EntityType == EntityTypeCustomer && e.Direction == DirectionCredit:
			report.TotalRevenue = report.TotalRevenue.Add(e.Amount)
			customers[e.EntityID] = true
		case e.EntityType == EntityTypeSupplier && e.Direction == DirectionDebit:
			report.TotalExpenses = report.TotalExpenses.Add(e.Amount)
		case e.EntityType == EntityTypeCustomer:
			customers[e.EntityID] = true
		}
	}

	report.NetProfit = report.TotalRevenue.AsBalance().Sub(report.TotalExpenses.AsBalance())
	report.ActiveCustomers = len(customers)

	if report.TotalRevenue.IsPositive() {
		margin := report.NetProfit.Decimal().
			Div(report.TotalRevenue.Decimal()).
			Mul(decimal.NewFromInt(100))
		report.GrossMarginPct, _ = margin.Round(2).Float64()
	}

	if len(amounts) > 0 {
		if avg, err := AverageMoney(amounts); err == nil {
			report.AverageTransactionValue = avg
		}
	}

	if report.ActiveCustomers > 0 {
		divisor := decimal.NewFromInt(int64(report.ActiveCustomers))
		if cac, err := report.TotalExpenses.Div(divisor); err == nil {
			report.CustomerAcquisitionCost = cac
		}
		if clv, err := report.TotalRevenue.Div(divisor); err == nil {
			report.CustomerLifetimeValue = clv
		}
	}

	return report
}

// PeriodMetrics is a caller-supplied snapshot of one period, used as
// the comparison base for KPI computation.
type PeriodMetrics struct {
	Revenue         Money
	Expenses        Money
	Profit          Balance
	ActiveCustomers int
	UnitsSold       int64
	AverageStock    float64
}

// MetricsFromReport extracts comparison metrics from a report.
func MetricsFromReport(r FinancialReport) PeriodMetrics {
	return PeriodMetrics{
		Revenue:         r.TotalRevenue,
		Expenses:        r.TotalExpenses,
		Profit:          r.NetProfit,
		ActiveCustomers: r.ActiveCustomers,
	}
}

// KPIReport holds period-over-period key performance indicators.
type KPIReport struct {
	RevenueGrowthPct    float64
	ProfitMarginPct     float64
	OperatingEfficiency float64
	RetentionRatePct    float64
	InventoryTurnover   float64
}

// ComputeKPIs compares the current period against a prior snapshot.
// Every ratio degrades to zero instead of dividing by zero.
func ComputeKPIs(current, prior PeriodMetrics) KPIReport {
	kpi := KPIReport{}

	if prior.Revenue.IsPositive() {
		growth := current.Revenue.Decimal().Sub(prior.Revenue.Decimal()).
			Div(prior.Revenue.Decimal()).
			Mul(decimal.NewFromInt(100))
		kpi.RevenueGrowthPct, _ = growth.Round(2).Float64()
	}

	if current.Revenue.IsPositive() {
		margin := current.Profit.Decimal().
			Div(current.Revenue.Decimal()).
			Mul(decimal.NewFromInt(100))
		kpi.ProfitMarginPct, _ = margin.Round(2).Float64()
	}

	if current.Expenses.IsPositive() {
		eff := current.Revenue.Decimal().Div(current.Expenses.Decimal())
		kpi.OperatingEfficiency, _ = eff.Round(2).Float64()
	}

	if prior.ActiveCustomers > 0 {
		kpi.RetentionRatePct = float64(current.ActiveCustomers) / float64(prior.ActiveCustomers) * 100
	}

	if current.AverageStock > 0 {
		kpi.InventoryTurnover = float64(current.UnitsSold) / current.AverageStock
	}

	return kpi
}

// CashFlowDay nets one calendar day of ledger activity: inflow from
// customer credits against outflow to supplier debits.
type CashFlowDay struct {
	Date    time.Time
	Inflow  Money
	Outflow Money
	Net     Balance
}

// BuildCashFlow groups entries by UTC calendar day, ascending.
func BuildCashFlow(entries []*LedgerEntry) []CashFlowDay {
	byDay := make(map[time.Time]*CashFlowDay)

	for _, e := range entries {
		day := e.CreatedAt.UTC().Truncate(24 * time.Hour)

		flow, ok := byDay[day]
		if !ok {
			flow = &CashFlowDay{Date: day}
			byDay[day] = flow
		}

		switch {
		case e.EntityType == EntityTypeCustomer && e.Direction == DirectionCredit:
			flow.Inflow = flow.Inflow.Add(e.Amount)
		case e.EntityType == EntityTypeSupplier && e.Direction == DirectionDebit:
			flow.Outflow = flow.Outflow.Add(e.Amount)
		}
	}

	days := make([]CashFlowDay, 0, len(byDay))
	for _, flow := range byDay {
		flow.Net = flow.Inflow.AsBalance().Sub(flow.Outflow.AsBalance())
		days = append(days, *flow)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	return days
}

// ForecastPoint is one projected future period.
type ForecastPoint struct {
	Period     int
	Revenue    Money
	Confidence float64
}

// ForecastRevenue projects future revenue by compounding the growth
// rate between exactly two historical observations. Confidence starts
// at 0.9 and decays by 0.1 per period, floored at 0.1. This is a naive
// heuristic, not a statistical model.
func ForecastRevenue(previous, latest Money, periods int) []ForecastPoint {
	if periods <= 0 {
		return nil
	}

	growth := decimal.Zero
	if previous.IsPositive() {
		growth = latest.Decimal().Sub(previous.Decimal()).Div(previous.Decimal())
	}

	factor := decimal.NewFromInt(1).Add(growth)
	projected := latest.Decimal()

	points := make([]ForecastPoint, 0, periods)
	for i := 1; i <= periods; i++ {
		projected = projected.Mul(factor)

		revenue, err := NewMoneyFromDecimal(projected)
		if err != nil {
			revenue = ZeroMoney
		}

		confidence := 0.9 - 0.1*float64(i-1)
		if confidence < 0.1 {
			confidence = 0.1
		}

		points = append(points, ForecastPoint{
			Period:     i,
			Revenue:    revenue,
			Confidence: confidence,
		})
	}

	return points
}
